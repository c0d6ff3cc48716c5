package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrewstohl/hedgebook"
)

// SuggestionsMarkdown renders position suggestions as a markdown table,
// one row per candidate group, in the order the inference engine produced
// them (confidence first).
func SuggestionsMarkdown(suggestions []hedgebook.Suggestion) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Position Suggestions\n\n")
	if len(suggestions) == 0 {
		fmt.Fprint(&b, "No suggestions: every transaction is already assigned, hidden, or too sparse to group.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| # | Confidence | Protocol | Chain | Type | Pair | Txs | Net Value | Flow | Last Activity |")
	fmt.Fprintln(&b, "|--:|:---|:---|:---|:---|:---|--:|---:|:---|:---|")
	for i, s := range suggestions {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %d | %s | %s | %s |\n",
			i+1,
			s.Confidence,
			s.ProtocolName,
			s.Chain,
			s.Type,
			orDash(s.TokenPair),
			s.TransactionCount,
			s.NetValue.SignedString(),
			s.Flow,
			day(s.LatestActivity),
		)
	}
	return b.String()
}

// orDash substitutes a dash for an empty cell.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// day formats a unix timestamp as a UTC date, or a dash when unset.
func day(unix int64) string {
	if unix == 0 {
		return "-"
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02")
}
