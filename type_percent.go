package hedgebook

import "fmt"

// Percent is a percentage on the 0-100 scale: hedge ratios, pool shares and
// drift, strategy allocations. It stays a plain float64 because every
// percentage here is either derived for display or an allocation the user
// typed; nothing accumulates enough arithmetic to need decimal.
type Percent float64

// Equal compares two percentages with a fixed precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString renders with an explicit sign; a zero drift reads as "-".
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
