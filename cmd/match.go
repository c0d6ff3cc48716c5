package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/andrewstohl/hedgebook"
	"github.com/andrewstohl/hedgebook/renderer"
	"github.com/google/subcommands"
)

type matchCmd struct{}

func (*matchCmd) Name() string     { return "match" }
func (*matchCmd) Synopsis() string { return "match LP positions against perpetuals and report the hedge" }
func (*matchCmd) Usage() string {
	return `hbk match <positions.json>

  Reads an enriched positions document (LP and perpetual positions with
  current USD values, as produced by a pricing service) and prints the
  per-token hedge matrix. Use "-" to read from stdin. Nothing is persisted.
`
}

// hedgeInput is the enriched positions document consumed by match.
type hedgeInput struct {
	LPPositions       []hedgebook.LPPosition   `json:"lpPositions"`
	PerpPositions     []hedgebook.PerpPosition `json:"perpPositions"`
	WalletRealizedPnl hedgebook.Money          `json:"walletRealizedPnl"`
	WalletFundingPnl  hedgebook.Money          `json:"walletFundingPnl"`
}

func (c *matchCmd) SetFlags(f *flag.FlagSet) {}

func (c *matchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return fail(fmt.Errorf("match takes exactly one positions file"))
	}

	var r io.Reader = os.Stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		r = file
	}

	var input hedgeInput
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return fail(fmt.Errorf("cannot parse positions document: %w", err))
	}

	result := hedgebook.MatchPositions(input.LPPositions, input.PerpPositions, hedgebook.MatchOptions{
		WalletRealizedPnl: input.WalletRealizedPnl,
		WalletFundingPnl:  input.WalletFundingPnl,
	})
	printMarkdown(renderer.MatchMarkdown(result))
	return subcommands.ExitSuccess
}
