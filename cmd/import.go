package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/andrewstohl/hedgebook"
	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "import a provider activity document into the wallet's stored activity"
}
func (*importCmd) Usage() string {
	return `hbk -wallet <address> import <file.json>...

  Reads provider activity documents (history list plus token and project
  dictionaries) and merges them into the activity stored for the wallet.
  Use "-" to read from stdin. Re-importing the same document is harmless:
  transactions are merged by key.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	wallet, err := Wallet()
	if err != nil {
		return fail(err)
	}
	if f.NArg() == 0 {
		return fail(fmt.Errorf("import needs at least one activity file"))
	}

	store, err := OpenStore()
	if err != nil {
		return fail(err)
	}
	defer store.Close()

	for _, name := range f.Args() {
		var r io.Reader = os.Stdin
		if name != "-" {
			file, err := os.Open(name)
			if err != nil {
				return fail(err)
			}
			defer file.Close()
			r = file
		}

		activity, err := hedgebook.ImportActivity(r)
		if err != nil {
			return fail(fmt.Errorf("importing %q: %w", name, err))
		}
		if err := hedgebook.SaveActivity(store, wallet, activity); err != nil {
			return fail(err)
		}
		fmt.Printf("Imported %d transaction(s) from %s\n", len(activity.Transactions), name)
	}
	return subcommands.ExitSuccess
}
