package cmd

import (
	"context"
	"flag"

	"github.com/andrewstohl/hedgebook/renderer"
	"github.com/google/subcommands"
)

type suggestCmd struct{}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "group unassigned transactions into candidate positions" }
func (*suggestCmd) Usage() string {
	return `hbk -wallet <address> suggest

  Runs the inference engine over the wallet's stored activity and prints
  candidate position groupings, best candidates first. Use the row number
  with "create -from" to materialize one.
`
}

func (c *suggestCmd) SetFlags(f *flag.FlagSet) {}

func (c *suggestCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := Wallet()
	if err != nil {
		return fail(err)
	}
	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	suggestions, _, _, err := computeSuggestions(store, wallet)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SuggestionsMarkdown(suggestions))
	return subcommands.ExitSuccess
}
