package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrewstohl/hedgebook"
)

// PositionsMarkdown renders the book's positions as a markdown table,
// sorted by display name, with a trailing hidden-transaction count.
func PositionsMarkdown(b hedgebook.Book) string {
	var w strings.Builder

	fmt.Fprintf(&w, "# Positions for %s\n\n", b.WalletAddress)

	positions := make([]hedgebook.Position, 0, len(b.Positions))
	for _, p := range b.Positions {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].DisplayName != positions[j].DisplayName {
			return positions[i].DisplayName < positions[j].DisplayName
		}
		return positions[i].ID < positions[j].ID
	})

	if len(positions) == 0 {
		fmt.Fprint(&w, "No positions yet. Run the suggestion engine or create one manually.\n")
	} else {
		fmt.Fprintln(&w, "| Name | Chain | Status | Txs | Opened | Closed | ID |")
		fmt.Fprintln(&w, "|:---|:---|:---|--:|:---|:---|:---|")
		for _, p := range positions {
			fmt.Fprintf(&w, "| %s | %s | %s | %d | %s | %s | %s |\n",
				p.DisplayName,
				p.Chain,
				p.Status,
				len(p.TxKeys),
				day(p.OpenedAt),
				day(p.ClosedAt),
				shortID(p.ID),
			)
		}
	}

	if hidden := len(b.HiddenKeys()); hidden > 0 {
		fmt.Fprintf(&w, "\n%d transaction(s) hidden.\n", hidden)
	}
	return w.String()
}

// shortID keeps ids readable in tables: the first 8 characters of a UUID
// are enough to address a position on the command line by prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
