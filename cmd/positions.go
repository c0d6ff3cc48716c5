package cmd

import (
	"context"
	"flag"

	"github.com/andrewstohl/hedgebook"
	"github.com/andrewstohl/hedgebook/renderer"
	"github.com/google/subcommands"
)

type positionsCmd struct{}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "list the wallet's positions" }
func (*positionsCmd) Usage() string {
	return `hbk -wallet <address> positions
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {}

func (c *positionsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := Wallet()
	if err != nil {
		return fail(err)
	}
	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	printMarkdown(renderer.PositionsMarkdown(hedgebook.Load(store, wallet)))
	return subcommands.ExitSuccess
}
