package hedgebook

import (
	"sort"
	"strings"
)

// Lending and staking positions have no unique external key the way LP NFTs
// do, so one protocol group can hold several successive positions. A
// lifecycle is one deposit → final-withdraw span, detected by tracking the
// running base-asset balance.

// baseAssetSymbols are assets treated as the "real" side of a vault entry
// or exit, as opposed to vault share tokens.
var baseAssetSymbols = map[string]bool{
	"USDC": true, "USDT": true, "DAI": true, "USDS": true, "SUSD": true,
	"FRAX": true, "LUSD": true, "WETH": true, "WBTC": true, "ETH": true,
}

// isBaseAsset reports whether a token is a known base asset.
func isBaseAsset(tokenID string, tokens TokenDict) bool {
	symbol := strings.ToUpper(tokens[tokenID].Symbol)
	return baseAssetSymbols[symbol]
}

// classifyYieldTx classifies a lending/staking transaction as a deposit or
// a withdrawal of a base asset, returning the moved amount and symbol.
// Sending base asset (and receiving none) is a deposit; receiving base
// asset is a withdrawal; when both move, the larger side wins with the
// difference.
func classifyYieldTx(tx Transaction, tokens TokenDict) (action string, amount Quantity, symbol string) {
	var sent, received Quantity
	var sentSym, receivedSym string

	for _, s := range tx.Sends {
		if isBaseAsset(s.TokenID, tokens) {
			sent = Q(s.Amount)
			sentSym = tokens[s.TokenID].Symbol
			break
		}
	}
	for _, r := range tx.Receives {
		if isBaseAsset(r.TokenID, tokens) {
			received = Q(r.Amount)
			receivedSym = tokens[r.TokenID].Symbol
			break
		}
	}

	switch {
	case !sent.IsZero() && received.IsZero():
		return "deposit", sent, sentSym
	case !received.IsZero() && sent.IsZero():
		return "withdraw", received, receivedSym
	case !sent.IsZero() && !received.IsZero():
		if sent.GreaterThan(received) {
			return "deposit", sent.Sub(received), sentSym
		}
		return "withdraw", received.Sub(sent), receivedSym
	default:
		return "unknown", Q(0), ""
	}
}

// Lifecycle is one deposit-to-final-withdraw span of a yield position.
type Lifecycle struct {
	TxKeys   []string
	Status   PositionStatus
	Asset    string
	OpenedAt int64
	ClosedAt int64
}

// closeEpsilon is the residual base-asset balance under which a lifecycle
// counts as fully withdrawn.
var closeEpsilon = Q(0.01)

// SplitLifecycles splits a chronological run of lending/staking
// transactions into separate lifecycles. A lifecycle closes when the
// running base-asset balance drops to (near) zero; any trailing
// transactions form an open lifecycle.
func SplitLifecycles(txs []Transaction, tokens TokenDict) []Lifecycle {
	if len(txs) == 0 {
		return nil
	}
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TimeAt < sorted[j].TimeAt })

	var lifecycles []Lifecycle
	var current []string
	var openedAt int64
	balance := Q(0)
	asset := ""

	for _, tx := range sorted {
		action, amount, sym := classifyYieldTx(tx, tokens)
		if asset == "" && sym != "" {
			asset = sym
		}
		if len(current) == 0 {
			openedAt = tx.TimeAt
		}
		current = append(current, tx.Key())

		switch action {
		case "deposit":
			balance = balance.Add(amount)
		case "withdraw":
			balance = balance.Sub(amount)
			if balance.LessThanOrEqual(closeEpsilon) {
				lifecycles = append(lifecycles, Lifecycle{
					TxKeys:   current,
					Status:   PositionClosed,
					Asset:    asset,
					OpenedAt: openedAt,
					ClosedAt: tx.TimeAt,
				})
				current = nil
				balance = Q(0)
			}
		}
	}

	if len(current) > 0 {
		lifecycles = append(lifecycles, Lifecycle{
			TxKeys:   current,
			Status:   PositionOpen,
			Asset:    asset,
			OpenedAt: openedAt,
		})
	}
	return lifecycles
}

// ExpandLifecycles replaces each lending or staking suggestion that spans
// several lifecycles with one suggestion per lifecycle, carrying the
// detected status and timestamps. Other suggestions pass through untouched.
func ExpandLifecycles(suggestions []Suggestion, txIndex map[string]Transaction, tokens TokenDict) []Suggestion {
	var out []Suggestion
	for _, s := range suggestions {
		if s.Type != TypeLending && s.Type != TypeStaking {
			out = append(out, s)
			continue
		}
		var txs []Transaction
		for _, key := range s.TxKeys {
			if tx, ok := txIndex[key]; ok {
				txs = append(txs, tx)
			}
		}
		lifecycles := SplitLifecycles(txs, tokens)
		if len(lifecycles) <= 1 {
			out = append(out, s)
			continue
		}
		for _, lc := range lifecycles {
			split := s
			split.TxKeys = lc.TxKeys
			split.TransactionCount = len(lc.TxKeys)
			split.Status = lc.Status
			split.OpenedAt = lc.OpenedAt
			split.ClosedAt = lc.ClosedAt

			// each lifecycle carries its own flow totals, not the group's
			var in, outv Money
			for _, key := range lc.TxKeys {
				if tx, ok := txIndex[key]; ok {
					_, i, o := InferFlow(tx, tokens)
					in = in.Add(i)
					outv = outv.Add(o)
				}
			}
			split.TotalIn, split.TotalOut = in, outv
			split.NetValue = in.Sub(outv)
			split.Flow = classifyFlow(split.NetValue)

			out = append(out, split)
		}
	}
	return out
}
