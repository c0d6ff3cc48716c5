package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/andrewstohl/hedgebook"
	"github.com/google/subcommands"
)

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a position, releasing its transactions" }
func (*deleteCmd) Usage() string {
	return `hbk -wallet <address> delete <position>

  Deletes the position (by id, id prefix, or display name). Its
  transactions become unassigned again and any strategy allocations to it
  are removed. Hidden transactions stay hidden.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := Wallet()
	if err != nil {
		return fail(err)
	}
	if f.NArg() != 1 {
		return fail(fmt.Errorf("delete takes exactly one position reference"))
	}
	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	b := hedgebook.Load(store, wallet)
	p, err := resolvePosition(b, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := hedgebook.Save(store, b.DeletePosition(p.ID)); err != nil {
		return fail(err)
	}
	fmt.Printf("Deleted position %q, released %d transaction(s)\n", p.DisplayName, len(p.TxKeys))
	return subcommands.ExitSuccess
}
