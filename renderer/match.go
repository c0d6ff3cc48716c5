package renderer

import (
	"fmt"
	"strings"

	"github.com/andrewstohl/hedgebook"
)

// MatchMarkdown renders a hedge matching report: one section per matched
// LP position with its per-token exposure matrix and P&L decomposition,
// then the perpetuals no pool consumed.
func MatchMarkdown(result hedgebook.MatchResult) string {
	var w strings.Builder

	fmt.Fprint(&w, "# LP / Perp Hedge Report\n\n")
	if len(result.Matched) == 0 {
		fmt.Fprint(&w, "No LP positions to match.\n")
	}

	for _, m := range result.Matched {
		fmt.Fprintf(&w, "## %s %s on %s: %s (%s)\n\n",
			m.LP.Protocol, m.LP.PairLabel(), m.LP.Chain, m.Status, m.HedgeRatio)

		fmt.Fprintln(&w, "| Token | LP Amount | Perp Amount | Net Amount | LP Value | Perp Value | Net Value | Drift |")
		fmt.Fprintln(&w, "|:---|---:|---:|---:|---:|---:|---:|---:|")
		for _, t := range m.Tokens {
			perpAmount, perpValue := "-", "-"
			if t.PerpID != "" {
				perpAmount = t.PerpAmount.String()
				perpValue = t.PerpValue.SignedString()
			}
			fmt.Fprintf(&w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				t.Symbol,
				t.LPCurrentAmount.String(),
				perpAmount,
				t.NetAmount.String(),
				t.LPCurrentValue.String(),
				perpValue,
				t.NetValue.SignedString(),
				t.Drift.SignedString(),
			)
		}
		fmt.Fprint(&w, "\n")

		fmt.Fprintln(&w, "| P&L | Amount |")
		fmt.Fprintln(&w, "|:---|---:|")
		fmt.Fprintf(&w, "| LP P&L | %s |\n", m.TotalLpPnl.SignedString())
		fmt.Fprintf(&w, "| Fees | %s |\n", m.TotalFeesSubtotal.SignedString())
		fmt.Fprintf(&w, "| Perp subtotal | %s |\n", m.TotalPerpSubtotal.SignedString())
		fmt.Fprintf(&w, "| **Grand total** | **%s** |\n", m.GrandTotalPnl.SignedString())
		fmt.Fprintf(&w, "| Gas (not in total) | %s |\n\n", m.GasFees.String())
	}

	if len(result.UnmatchedPerps) > 0 {
		fmt.Fprint(&w, "## Unmatched Perpetuals\n\n")
		fmt.Fprintln(&w, "| Protocol | Token | Side | Size | Value | Unrealized P&L |")
		fmt.Fprintln(&w, "|:---|:---|:---|---:|---:|---:|")
		for _, p := range result.UnmatchedPerps {
			fmt.Fprintf(&w, "| %s | %s | %s | %s | %s | %s |\n",
				p.Protocol, p.BaseSymbol, p.Side, p.Size.String(), p.Value.String(), p.UnrealizedPnl.SignedString())
		}
	}
	return w.String()
}
