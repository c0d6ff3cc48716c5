package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/andrewstohl/hedgebook"
	"github.com/andrewstohl/hedgebook/renderer"
	"github.com/google/subcommands"
)

type strategiesCmd struct{}

func (*strategiesCmd) Name() string     { return "strategies" }
func (*strategiesCmd) Synopsis() string { return "list strategies and their allocations" }
func (*strategiesCmd) Usage() string {
	return `hbk -wallet <address> strategies
`
}

func (c *strategiesCmd) SetFlags(f *flag.FlagSet) {}

func (c *strategiesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := Wallet()
	if err != nil {
		return fail(err)
	}
	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	printMarkdown(renderer.StrategiesMarkdown(hedgebook.Load(store, wallet)))
	return subcommands.ExitSuccess
}

type strategyAddCmd struct {
	typ     string
	pos     string
	percent float64
}

func (*strategyAddCmd) Name() string { return "strategy-add" }
func (*strategyAddCmd) Synopsis() string {
	return "create a strategy, or allocate a position to one"
}
func (*strategyAddCmd) Usage() string {
	return `hbk -wallet <address> strategy-add <name> [-type <type>] [-pos <position> -percent <0-100>]

  Creates the named strategy if it does not exist yet. With -pos, also
  allocates the given percentage of that position to it; repeating with the
  same position updates the percentage. Allocation totals above 100% across
  strategies are allowed.
`
}

func (c *strategyAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "", "Strategy type (delta-neutral, yield, directional, arbitrage, custom).")
	f.StringVar(&c.pos, "pos", "", "Position to allocate (id, id prefix, or display name).")
	f.Float64Var(&c.percent, "percent", 100, "Percentage of the position allocated to the strategy.")
}

func (c *strategyAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := Wallet()
	if err != nil {
		return fail(err)
	}
	if f.NArg() != 1 {
		return fail(fmt.Errorf("strategy-add takes exactly one strategy name"))
	}
	name := f.Arg(0)

	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	b := hedgebook.Load(store, wallet)
	s, err := resolveStrategy(b, name)
	switch {
	case errors.Is(err, errNoMatch):
		b, s = b.CreateStrategy(hedgebook.Strategy{Name: name, Type: hedgebook.StrategyType(c.typ)})
		fmt.Printf("Created strategy %q (%s)\n", s.Name, s.ID)
	case err != nil:
		// ambiguous reference: creating here would mint a duplicate
		return fail(err)
	}

	if c.pos != "" {
		p, err := resolvePosition(b, c.pos)
		if err != nil {
			return fail(err)
		}
		b = b.AddPositionToStrategy(s.ID, p.ID, hedgebook.Percent(c.percent))
		fmt.Printf("Allocated %.2f%% of %q to %q\n", c.percent, p.DisplayName, s.Name)
	}

	if err := hedgebook.Save(store, b); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
