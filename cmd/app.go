// Package cmd implements the hbk CLI application to reconcile wallet
// activity into positions, strategies and hedge reports.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andrewstohl/hedgebook"
	"github.com/andrewstohl/hedgebook/kv"
	"github.com/andrewstohl/hedgebook/kv/sqlitekv"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "activity")
	c.Register(&suggestCmd{}, "activity")
	c.Register(&hideCmd{}, "activity")
	c.Register(&unhideCmd{}, "activity")

	c.Register(&positionsCmd{}, "positions")
	c.Register(&createCmd{}, "positions")
	c.Register(&deleteCmd{}, "positions")
	c.Register(&assignCmd{}, "positions")
	c.Register(&unassignCmd{}, "positions")

	c.Register(&strategiesCmd{}, "strategies")
	c.Register(&strategyAddCmd{}, "strategies")

	c.Register(&matchCmd{}, "hedging")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storePath = flag.String("store", defaultStorePath(), "Path to the hedgebook database file")
var walletFlag = flag.String("wallet", "", "Wallet address to operate on")

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hedgebook.db"
	}
	return filepath.Join(home, ".hedgebook", "book.db")
}

func newLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}

// OpenStore is the central function to open the database behind -store.
func OpenStore() (*sqlitekv.Store, error) {
	return sqlitekv.Open(*storePath, newLogger())
}

// Wallet returns the address behind -wallet, or an error when unset.
func Wallet() (string, error) {
	if *walletFlag == "" {
		return "", fmt.Errorf("missing -wallet: every hbk command operates on a single wallet")
	}
	return *walletFlag, nil
}

// errNoMatch reports that a position or strategy reference matched nothing,
// as opposed to matching ambiguously.
var errNoMatch = errors.New("no match")

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

// resolvePosition finds a position by full id, unique id prefix, or exact
// display name, so users can paste the short ids shown in reports.
func resolvePosition(b hedgebook.Book, ref string) (hedgebook.Position, error) {
	if p, ok := b.Positions[ref]; ok {
		return p, nil
	}
	var found []hedgebook.Position
	for _, p := range b.Positions {
		if strings.HasPrefix(p.ID, ref) || p.DisplayName == ref {
			found = append(found, p)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return hedgebook.Position{}, fmt.Errorf("%w: no position matches %q", errNoMatch, ref)
	default:
		return hedgebook.Position{}, fmt.Errorf("%q is ambiguous, %d positions match", ref, len(found))
	}
}

// resolveStrategy finds a strategy by id, unique id prefix, or exact name.
func resolveStrategy(b hedgebook.Book, ref string) (hedgebook.Strategy, error) {
	if s, ok := b.Strategies[ref]; ok {
		return s, nil
	}
	var found []hedgebook.Strategy
	for _, s := range b.Strategies {
		if strings.HasPrefix(s.ID, ref) || s.Name == ref {
			found = append(found, s)
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return hedgebook.Strategy{}, fmt.Errorf("%w: no strategy matches %q", errNoMatch, ref)
	default:
		return hedgebook.Strategy{}, fmt.Errorf("%q is ambiguous, %d strategies match", ref, len(found))
	}
}

// splitTxKey parses a "chain:hash" command-line argument.
func splitTxKey(arg string) (chain, hash string, err error) {
	chain, hash, ok := strings.Cut(arg, ":")
	if !ok || chain == "" || hash == "" {
		return "", "", fmt.Errorf("invalid transaction key %q: want chain:hash", arg)
	}
	return chain, hash, nil
}

// computeSuggestions loads the book and the stored activity and runs the
// full inference pipeline, lifecycle splitting included. The suggest and
// create commands must see the same numbering, so they both call this.
func computeSuggestions(store kv.Store, wallet string) ([]hedgebook.Suggestion, hedgebook.Book, *hedgebook.Activity, error) {
	b := hedgebook.Load(store, wallet)
	a, err := hedgebook.LoadActivity(store, wallet)
	if err != nil {
		return nil, b, nil, err
	}
	suggestions := hedgebook.SuggestPositions(a.Transactions, b, a.Projects, a.Tokens)
	suggestions = hedgebook.ExpandLifecycles(suggestions, hedgebook.TxIndex(a.Transactions), a.Tokens)
	return suggestions, b, a, nil
}
