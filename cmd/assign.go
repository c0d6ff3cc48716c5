package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/andrewstohl/hedgebook"
	"github.com/google/subcommands"
)

type assignCmd struct {
	pos string
}

func (*assignCmd) Name() string     { return "assign" }
func (*assignCmd) Synopsis() string { return "assign transactions to a position" }
func (*assignCmd) Usage() string {
	return `hbk -wallet <address> assign -pos <position> <chain:hash>...

  Links the given transactions to the position. A transaction already
  linked elsewhere is moved; it never belongs to two positions.
`
}

func (c *assignCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pos, "pos", "", "Target position (id, id prefix, or display name).")
}

func (c *assignCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return reassign(c.pos, f, true)
}

type unassignCmd struct {
	pos string
}

func (*unassignCmd) Name() string     { return "unassign" }
func (*unassignCmd) Synopsis() string { return "remove transactions from a position" }
func (*unassignCmd) Usage() string {
	return `hbk -wallet <address> unassign -pos <position> <chain:hash>...
`
}

func (c *unassignCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pos, "pos", "", "Position to remove the transactions from.")
}

func (c *unassignCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return reassign(c.pos, f, false)
}

// reassign is the shared body of assign and unassign.
func reassign(pos string, f *flag.FlagSet, add bool) subcommands.ExitStatus {
	wallet, err := Wallet()
	if err != nil {
		return fail(err)
	}
	if pos == "" {
		return fail(fmt.Errorf("missing -pos"))
	}
	if f.NArg() == 0 {
		return fail(fmt.Errorf("need at least one chain:hash argument"))
	}

	keys := make([]string, 0, f.NArg())
	for _, arg := range f.Args() {
		chain, hash, err := splitTxKey(arg)
		if err != nil {
			return fail(err)
		}
		keys = append(keys, hedgebook.TxKey(chain, hash))
	}

	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	b := hedgebook.Load(store, wallet)
	p, err := resolvePosition(b, pos)
	if err != nil {
		return fail(err)
	}

	verb := "Assigned"
	if add {
		b = b.AddTransactionsToPosition(p.ID, keys...)
	} else {
		b = b.RemoveTransactionsFromPosition(p.ID, keys...)
		verb = "Unassigned"
	}
	if err := hedgebook.Save(store, b); err != nil {
		return fail(err)
	}
	fmt.Printf("%s %d transaction(s) for %q\n", verb, len(keys), p.DisplayName)
	return subcommands.ExitSuccess
}
