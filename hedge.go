package hedgebook

// The hedge matching engine takes already-enriched LP and perpetual
// positions for one wallet (USD values computed by an external service) and
// produces a per-token, per-position P&L decomposition plus a hedge-ratio
// classification. Everything is derived per call and never persisted.

// LPToken is one side of a liquidity pool, with its initial (at deposit)
// and current amounts and USD values.
type LPToken struct {
	Symbol        string   `json:"symbol"`
	InitialAmount Quantity `json:"initialAmount"`
	CurrentAmount Quantity `json:"currentAmount"`
	InitialValue  Money    `json:"initialValue"`
	CurrentValue  Money    `json:"currentValue"`
}

// LPPosition is an enriched liquidity position, read-only input to the
// matching engine.
type LPPosition struct {
	ID            string  `json:"id"`
	Protocol      string  `json:"protocol"`
	Chain         string  `json:"chain"`
	Token0        LPToken `json:"token0"`
	Token1        LPToken `json:"token1"`
	ClaimedFees   Money   `json:"claimedFees"`
	UnclaimedFees Money   `json:"unclaimedFees"`
	GasFees       Money   `json:"gasFeesUsd"`
}

// CurrentValue is the pool position's current USD value.
func (p LPPosition) CurrentValue() Money {
	return p.Token0.CurrentValue.Add(p.Token1.CurrentValue)
}

// InitialValue is the pool position's USD value at deposit time.
func (p LPPosition) InitialValue() Money {
	return p.Token0.InitialValue.Add(p.Token1.InitialValue)
}

// PairLabel returns "SYM0/SYM1".
func (p LPPosition) PairLabel() string {
	return p.Token0.Symbol + "/" + p.Token1.Symbol
}

// PerpSide is the direction of a perpetual position.
type PerpSide string

const (
	PerpLong  PerpSide = "Long"
	PerpShort PerpSide = "Short"
)

// PerpPosition is an enriched perpetual position, read-only input to the
// matching engine. Size and Value are reported positive regardless of side.
type PerpPosition struct {
	ID            string   `json:"id"`
	Protocol      string   `json:"protocol"`
	BaseSymbol    string   `json:"baseSymbol"`
	Side          PerpSide `json:"side"`
	Size          Quantity `json:"size"`
	Value         Money    `json:"value"`
	Margin        Money    `json:"margin"`
	Leverage      float64  `json:"leverage"`
	UnrealizedPnl Money    `json:"unrealizedPnl"`
}

// MatchOptions carries the optional wallet-level totals apportioned across
// matched perpetuals.
type MatchOptions struct {
	WalletRealizedPnl Money
	WalletFundingPnl  Money
}

// TokenExposure is the per-token decomposition of a matched position: LP
// amounts and values, pool share drift, the matched perpetual leg
// (sign-flipped for shorts), and the P&L split.
type TokenExposure struct {
	Symbol string

	LPInitialAmount Quantity
	LPCurrentAmount Quantity
	LPInitialValue  Money
	LPCurrentValue  Money

	InitialShare Percent // token share of the pool value at deposit
	CurrentShare Percent
	Drift        Percent // CurrentShare - InitialShare

	PerpID     string // empty when no perpetual matched this token
	PerpSide   PerpSide
	PerpAmount Quantity // negative for shorts
	PerpValue  Money    // negative for shorts

	NetAmount Quantity // LP + perp
	NetValue  Money

	LpPnl             Money // current LP value - initial LP value
	Fees              Money // claimed+unclaimed, apportioned by current value ratio
	PerpUnrealizedPnl Money
	PerpRealizedPnl   Money // wallet realized P&L, pro-rata by margin share
	PerpFundingPnl    Money
	PerpSubtotal      Money
}

// HedgeStatus classifies how adequately a position is hedged.
type HedgeStatus string

const (
	Hedged       HedgeStatus = "HEDGED"
	PartialHedge HedgeStatus = "PARTIAL"
	LowHedge     HedgeStatus = "LOW HEDGE"
	Unhedged     HedgeStatus = "UNHEDGED"
	OverHedged   HedgeStatus = "OVERHEDGED"
)

// classifyHedge maps a hedge ratio (percent) to its status band. Bounds:
// 0 → UNHEDGED, (0,70) → LOW HEDGE, [70,90) → PARTIAL, [90,110] → HEDGED,
// above 110 → OVERHEDGED.
func classifyHedge(ratio Percent) HedgeStatus {
	switch {
	case ratio == 0:
		return Unhedged
	case ratio < 70:
		return LowHedge
	case ratio < 90:
		return PartialHedge
	case ratio <= 110:
		return Hedged
	default:
		return OverHedged
	}
}

// MatchedPosition aggregates the two token exposures of one LP position
// into totals and a hedge classification.
type MatchedPosition struct {
	LP     LPPosition
	Tokens []TokenExposure // always two entries, pool token order

	TotalNetValue     Money
	TotalLpPnl        Money
	TotalFeesSubtotal Money
	TotalPerpSubtotal Money

	// GrandTotalPnl = TotalLpPnl + TotalFeesSubtotal + TotalPerpSubtotal.
	// GasFees is carried on the position but not subtracted here: the
	// upstream ledger never subtracted gas from the grand total, and
	// consumers reconcile against that figure. A corrected net would be
	// GrandTotalPnl - GasFees.
	GrandTotalPnl Money
	GasFees       Money

	TotalPerpValue Money
	HedgeRatio     Percent
	Status         HedgeStatus
}

// MatchResult is the output of MatchPositions.
type MatchResult struct {
	Matched        []MatchedPosition
	UnmatchedPerps []PerpPosition
}

// matchPerp returns the first perpetual whose base symbol equals the token
// symbol, or -1. If several perpetuals share a symbol only the first in
// input order is ever matched; a documented limitation, not a tie-break.
func matchPerp(symbol string, perps []PerpPosition) int {
	for i, p := range perps {
		if p.BaseSymbol == symbol {
			return i
		}
	}
	return -1
}

// poolShare returns value/total as a percentage, 0 when total is zero.
func poolShare(value, total Money) Percent {
	if total.IsZero() {
		return 0
	}
	return Percent(value.Ratio(total).Mul(Q(100)).value.InexactFloat64())
}

// MatchPositions correlates each LP position with perpetual positions by
// shared token symbol and decomposes value, drift, fees and P&L per token.
// Perpetuals not consumed by any LP are reported as unmatched.
func MatchPositions(lps []LPPosition, perps []PerpPosition, opts MatchOptions) MatchResult {
	consumed := make([]bool, len(perps))

	// first pass: resolve matches and the total margin across matched
	// perpetual legs, the denominator for the wallet-level P&L split
	type legRef struct{ t0, t1 int }
	legs := make([]legRef, len(lps))
	totalMargin := M(0)
	for i, lp := range lps {
		legs[i] = legRef{matchPerp(lp.Token0.Symbol, perps), matchPerp(lp.Token1.Symbol, perps)}
		for _, j := range []int{legs[i].t0, legs[i].t1} {
			if j >= 0 {
				totalMargin = totalMargin.Add(perps[j].Margin)
				consumed[j] = true
			}
		}
	}

	result := MatchResult{}
	for i, lp := range lps {
		matched := MatchedPosition{LP: lp, GasFees: lp.GasFees}
		poolCurrent := lp.CurrentValue()
		poolInitial := lp.InitialValue()
		totalFees := lp.ClaimedFees.Add(lp.UnclaimedFees)

		sides := []struct {
			token LPToken
			perp  int
		}{
			{lp.Token0, legs[i].t0},
			{lp.Token1, legs[i].t1},
		}

		for _, side := range sides {
			e := TokenExposure{
				Symbol:          side.token.Symbol,
				LPInitialAmount: side.token.InitialAmount,
				LPCurrentAmount: side.token.CurrentAmount,
				LPInitialValue:  side.token.InitialValue,
				LPCurrentValue:  side.token.CurrentValue,
				InitialShare:    poolShare(side.token.InitialValue, poolInitial),
				CurrentShare:    poolShare(side.token.CurrentValue, poolCurrent),
				NetAmount:       side.token.CurrentAmount,
				NetValue:        side.token.CurrentValue,
				LpPnl:           side.token.CurrentValue.Sub(side.token.InitialValue),
			}
			e.Drift = e.CurrentShare - e.InitialShare

			// fee split by current value ratio; an empty pool splits evenly
			if poolCurrent.IsZero() {
				e.Fees = totalFees.Div(Q(2))
			} else {
				e.Fees = totalFees.Mul(side.token.CurrentValue.Ratio(poolCurrent))
			}

			if side.perp >= 0 {
				perp := perps[side.perp]
				e.PerpID = perp.ID
				e.PerpSide = perp.Side
				e.PerpAmount = perp.Size
				e.PerpValue = perp.Value
				if perp.Side == PerpShort {
					e.PerpAmount = e.PerpAmount.Neg()
					e.PerpValue = e.PerpValue.Neg()
				}
				e.NetAmount = e.NetAmount.Add(e.PerpAmount)
				e.NetValue = e.NetValue.Add(e.PerpValue)

				e.PerpUnrealizedPnl = perp.UnrealizedPnl
				if !totalMargin.IsZero() {
					share := perp.Margin.Ratio(totalMargin)
					e.PerpRealizedPnl = opts.WalletRealizedPnl.Mul(share)
					e.PerpFundingPnl = opts.WalletFundingPnl.Mul(share)
				}
				e.PerpSubtotal = e.PerpUnrealizedPnl.Add(e.PerpRealizedPnl).Add(e.PerpFundingPnl)

				matched.TotalPerpValue = matched.TotalPerpValue.Add(e.PerpValue)
			}

			matched.Tokens = append(matched.Tokens, e)
			matched.TotalNetValue = matched.TotalNetValue.Add(e.NetValue)
			matched.TotalLpPnl = matched.TotalLpPnl.Add(e.LpPnl)
			matched.TotalFeesSubtotal = matched.TotalFeesSubtotal.Add(e.Fees)
			matched.TotalPerpSubtotal = matched.TotalPerpSubtotal.Add(e.PerpSubtotal)
		}

		matched.GrandTotalPnl = matched.TotalLpPnl.Add(matched.TotalFeesSubtotal).Add(matched.TotalPerpSubtotal)

		if !poolCurrent.IsZero() {
			matched.HedgeRatio = Percent(matched.TotalPerpValue.Abs().Ratio(poolCurrent).Mul(Q(100)).value.InexactFloat64())
		}
		matched.Status = classifyHedge(matched.HedgeRatio)

		result.Matched = append(result.Matched, matched)
	}

	for j, perp := range perps {
		if !consumed[j] {
			result.UnmatchedPerps = append(result.UnmatchedPerps, perp)
		}
	}
	return result
}
