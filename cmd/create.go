package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/andrewstohl/hedgebook"
	"github.com/google/subcommands"
)

type createCmd struct {
	from     int
	name     string
	chain    string
	protocol string
	pair     string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "create a position from a suggestion or manually" }
func (*createCmd) Usage() string {
	return `hbk -wallet <address> create -from <n>
hbk -wallet <address> create -name <name> -chain <chain> -protocol <id> [-pair <a/b>] [chain:hash ...]

  With -from, materializes the n-th row of the current suggest output,
  linking its transactions. Without it, creates an empty position from the
  given metadata; any chain:hash arguments are linked to it.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.from, "from", 0, "Suggestion row number to materialize (1-based).")
	f.StringVar(&c.name, "name", "", "Display name for a manual position.")
	f.StringVar(&c.chain, "chain", "", "Chain of a manual position.")
	f.StringVar(&c.protocol, "protocol", "", "Protocol id of a manual position.")
	f.StringVar(&c.pair, "pair", "", "Token pair of a manual position, e.g. USDC/WETH.")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := Wallet()
	if err != nil {
		return fail(err)
	}
	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	var b hedgebook.Book
	var p hedgebook.Position
	var projects hedgebook.ProjectDict

	if c.from > 0 {
		suggestions, book, activity, err := computeSuggestions(store, wallet)
		if err != nil {
			return fail(err)
		}
		if c.from > len(suggestions) {
			return fail(fmt.Errorf("suggestion %d does not exist, only %d available", c.from, len(suggestions)))
		}
		b, projects = book, activity.Projects
		p = suggestions[c.from-1].ToPosition()
	} else {
		if c.protocol == "" && c.name == "" {
			return fail(fmt.Errorf("create needs -from, or -name/-protocol for a manual position"))
		}
		b = hedgebook.Load(store, wallet)
		p = hedgebook.Position{
			DisplayName: c.name,
			Chain:       c.chain,
			Protocol:    c.protocol,
			TokenPair:   c.pair,
		}
		for _, arg := range f.Args() {
			chain, hash, err := splitTxKey(arg)
			if err != nil {
				return fail(err)
			}
			p.TxKeys = append(p.TxKeys, hedgebook.TxKey(chain, hash))
		}
	}

	b, p = b.CreatePosition(p, projects)
	if err := hedgebook.Save(store, b); err != nil {
		return fail(err)
	}
	fmt.Printf("Created position %q (%s) with %d transaction(s)\n", p.DisplayName, p.ID, len(p.TxKeys))
	return subcommands.ExitSuccess
}
