package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/andrewstohl/hedgebook"
)

// StrategiesMarkdown renders every strategy in the book with its position
// allocations. Allocation totals are per strategy; a position's total
// across strategies can exceed 100% and that is reported as-is.
func StrategiesMarkdown(b hedgebook.Book) string {
	var w strings.Builder

	fmt.Fprintf(&w, "# Strategies for %s\n\n", b.WalletAddress)

	strategies := make([]hedgebook.Strategy, 0, len(b.Strategies))
	for _, s := range b.Strategies {
		strategies = append(strategies, s)
	}
	sort.Slice(strategies, func(i, j int) bool {
		if strategies[i].Name != strategies[j].Name {
			return strategies[i].Name < strategies[j].Name
		}
		return strategies[i].ID < strategies[j].ID
	})

	if len(strategies) == 0 {
		fmt.Fprint(&w, "No strategies defined.\n")
		return w.String()
	}

	for _, s := range strategies {
		fmt.Fprintf(&w, "## %s (%s, %s)\n\n", s.Name, s.Type, b.CalculateStrategyStatus(s.ID))
		if s.TargetLong != 0 || s.TargetShort != 0 {
			fmt.Fprintf(&w, "Target: %s long / %s short\n\n", s.TargetLong.String(), s.TargetShort.String())
		}
		if len(s.Allocations) == 0 {
			fmt.Fprint(&w, "No positions allocated.\n\n")
			continue
		}

		fmt.Fprintln(&w, "| Position | Status | Allocation | Total Allocated |")
		fmt.Fprintln(&w, "|:---|:---|---:|---:|")
		var total hedgebook.Percent
		for _, a := range s.Allocations {
			name, status := shortID(a.PositionID), "?"
			if p, ok := b.Positions[a.PositionID]; ok {
				name, status = p.DisplayName, string(p.Status)
			}
			total += a.Percent
			fmt.Fprintf(&w, "| %s | %s | %s | %s |\n",
				name, status, a.Percent.String(), b.TotalPositionAllocation(a.PositionID).String())
		}
		fmt.Fprintf(&w, "| **Total** | | **%s** | |\n\n", total.String())
	}
	return w.String()
}
