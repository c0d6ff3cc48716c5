package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/andrewstohl/hedgebook"
	"github.com/google/subcommands"
)

type hideCmd struct {
	reason string
}

func (*hideCmd) Name() string     { return "hide" }
func (*hideCmd) Synopsis() string { return "hide transactions from suggestions and reports" }
func (*hideCmd) Usage() string {
	return `hbk -wallet <address> hide [-reason <text>] <chain:hash>...

  Marks transactions hidden: the inference engine will not group them and
  listings skip them. Hiding does not touch a position link, so an assigned
  transaction stays assigned.
`
}

func (c *hideCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.reason, "reason", "", "Optional reason recorded with the hide.")
}

func (c *hideCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return rehide(f, func(b hedgebook.Book, chain, hash string) hedgebook.Book {
		return b.Hide(chain, hash, c.reason)
	}, "Hid")
}

type unhideCmd struct{}

func (*unhideCmd) Name() string     { return "unhide" }
func (*unhideCmd) Synopsis() string { return "clear the hidden flag on transactions" }
func (*unhideCmd) Usage() string {
	return `hbk -wallet <address> unhide <chain:hash>...
`
}

func (c *unhideCmd) SetFlags(f *flag.FlagSet) {}

func (c *unhideCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return rehide(f, hedgebook.Book.Unhide, "Unhid")
}

// rehide is the shared body of hide and unhide.
func rehide(f *flag.FlagSet, apply func(hedgebook.Book, string, string) hedgebook.Book, verb string) subcommands.ExitStatus {
	wallet, err := Wallet()
	if err != nil {
		return fail(err)
	}
	if f.NArg() == 0 {
		return fail(fmt.Errorf("need at least one chain:hash argument"))
	}
	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	b := hedgebook.Load(store, wallet)
	for _, arg := range f.Args() {
		chain, hash, err := splitTxKey(arg)
		if err != nil {
			return fail(err)
		}
		b = apply(b, chain, hash)
	}
	if err := hedgebook.Save(store, b); err != nil {
		return fail(err)
	}
	fmt.Printf("%s %d transaction(s)\n", verb, f.NArg())
	return subcommands.ExitSuccess
}
