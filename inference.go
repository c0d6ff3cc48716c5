package hedgebook

import (
	"slices"
	"sort"
	"strings"
)

// PositionType classifies what kind of DeFi position a transaction belongs to.
type PositionType string

const (
	TypeLP        PositionType = "lp"
	TypePerpetual PositionType = "perpetual"
	TypeLending   PositionType = "lending"
	TypeStaking   PositionType = "staking"
	TypeBridge    PositionType = "bridge"
	TypeSwap      PositionType = "swap"
	TypeUnknown   PositionType = "unknown"
)

// typeRule maps a protocol-id predicate to a position type. Rules are
// evaluated in order and the first match wins, so the resolution precedence
// is explicit here rather than buried in string matching: perpetual before
// lp before lending before staking before bridge before swap.
type typeRule struct {
	matches func(projectID string) bool
	typ     PositionType
}

// containsAny returns a predicate true when the project id contains any of
// the given substrings.
func containsAny(subs ...string) func(string) bool {
	return func(projectID string) bool {
		for _, s := range subs {
			if strings.Contains(projectID, s) {
				return true
			}
		}
		return false
	}
}

var typeRules = []typeRule{
	{containsAny("gmx", "gains", "kwenta", "perp", "hyperliquid"), TypePerpetual},
	{containsAny("uniswap", "pancake", "sushi", "curve", "balancer", "aero", "velo"), TypeLP},
	{containsAny("aave", "compound", "euler", "silo", "morpho"), TypeLending},
	{containsAny("lido", "rocket", "eigen", "stak"), TypeStaking},
	{containsAny("bridge", "stargate", "hop", "across"), TypeBridge},
	{containsAny("swap", "1inch", "odos", "paraswap"), TypeSwap},
}

// classifyProtocol resolves a project id to a position type using the
// ordered rule table. Unresolved protocols are "unknown".
func classifyProtocol(projectID string) PositionType {
	id := strings.ToLower(projectID)
	for _, r := range typeRules {
		if r.matches(id) {
			return r.typ
		}
	}
	return TypeUnknown
}

// typePriority orders position types for suggestion sorting, most
// interesting first.
var typePriority = map[PositionType]int{
	TypeLP:        0,
	TypePerpetual: 1,
	TypeLending:   2,
	TypeStaking:   3,
	TypeBridge:    4,
	TypeSwap:      5,
	TypeUnknown:   6,
}

// PositionInfo is what ExtractPositionInfo can derive from a single
// transaction without any grouping context.
type PositionInfo struct {
	Type        PositionType
	PositionKey string // received token id containing "nft", if any
	TokenPair   string // up to two symbols joined alphabetically with "/"
}

// spamSymbol filters token symbols that are almost certainly airdropped
// spam: unreasonably long, or carrying a URL.
func spamSymbol(symbol string) bool {
	if len(symbol) > 10 {
		return true
	}
	lower := strings.ToLower(symbol)
	return strings.Contains(lower, ".com") || strings.Contains(lower, "x.com")
}

// transactionSymbols collects the distinct, spam-filtered token symbols
// moved by a transaction, sorted alphabetically.
func transactionSymbols(tx Transaction, tokens TokenDict) []string {
	seen := make(map[string]bool)
	for _, tr := range slices.Concat(tx.Sends, tx.Receives) {
		info, ok := tokens[tr.TokenID]
		if !ok || info.Symbol == "" {
			continue
		}
		if spamSymbol(info.Symbol) {
			continue
		}
		seen[info.Symbol] = true
	}
	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// ExtractPositionInfo derives the position type, external position key and
// token pair of a single transaction.
func ExtractPositionInfo(tx Transaction, tokens TokenDict) PositionInfo {
	info := PositionInfo{Type: classifyProtocol(tx.Project)}

	for _, r := range tx.Receives {
		if strings.Contains(strings.ToLower(r.TokenID), "nft") {
			info.PositionKey = r.TokenID
			break
		}
	}

	switch symbols := transactionSymbols(tx, tokens); len(symbols) {
	case 1:
		info.TokenPair = symbols[0]
	case 2:
		info.TokenPair = symbols[0] + "/" + symbols[1]
	}
	return info
}

// Confidence is how certain a grouping suggestion is: high groups share an
// external position key, medium groups share a token pair, low groups only
// share a protocol and type.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

var confidenceRank = map[Confidence]int{ConfidenceHigh: 0, ConfidenceMedium: 1, ConfidenceLow: 2}

// Suggestion is one candidate position grouping. It is advisory: the caller
// decides whether to materialize it with CreatePosition.
type Suggestion struct {
	GroupKey         string
	Confidence       Confidence
	Chain            string
	Protocol         string
	ProtocolName     string
	Type             PositionType
	PositionKey      string
	TokenPair        string
	TxKeys           []string
	TransactionCount int
	TotalIn          Money
	TotalOut         Money
	NetValue         Money
	Flow             FlowDirection // direction of the group's net value
	LatestActivity   int64
	Status           PositionStatus // set by lifecycle expansion, open otherwise
	OpenedAt         int64
	ClosedAt         int64
}

// ToPosition converts a suggestion into a position ready for CreatePosition.
func (s Suggestion) ToPosition() Position {
	status := s.Status
	if status == "" {
		status = PositionOpen
	}
	return Position{
		Chain:       s.Chain,
		Protocol:    s.Protocol,
		PositionKey: s.PositionKey,
		TokenPair:   s.TokenPair,
		TxKeys:      slices.Clone(s.TxKeys),
		Status:      status,
		OpenedAt:    s.OpenedAt,
		ClosedAt:    s.ClosedAt,
	}
}

// SuggestPositions groups the wallet's unassigned transactions into
// candidate positions.
//
// Transactions already linked to a position, hidden, or categorized as
// approvals or deployments are skipped. The remaining ones are grouped by a
// composite key with three precedence tiers:
//
//	high   protocol + chain + position key
//	medium protocol + chain + type + token pair (needs protocol and pair)
//	low    protocol + chain + type             (needs protocol)
//
// Transactions with no position key, no token pair and no resolved protocol
// are dropped, as are groups of fewer than two transactions. Results are
// sorted by confidence (high first), then position-type priority, then
// transaction count descending.
func SuggestPositions(txs []Transaction, b Book, projects ProjectDict, tokens TokenDict) []Suggestion {
	groups := make(map[string]*Suggestion)

	for _, tx := range txs {
		key := tx.Key()
		if o := b.Transactions[key]; o.PositionID != "" || o.Hidden {
			continue
		}
		switch strings.ToLower(tx.Category) {
		case "approve", "deploy":
			continue
		}

		info := ExtractPositionInfo(tx, tokens)
		resolved := info.Type != TypeUnknown

		var groupKey string
		var confidence Confidence
		switch {
		case info.PositionKey != "":
			confidence = ConfidenceHigh
			groupKey = strings.Join([]string{tx.Project, tx.Chain, info.PositionKey}, "|")
		case resolved && info.TokenPair != "":
			confidence = ConfidenceMedium
			groupKey = strings.Join([]string{tx.Project, tx.Chain, string(info.Type), info.TokenPair}, "|")
		case resolved:
			confidence = ConfidenceLow
			groupKey = strings.Join([]string{tx.Project, tx.Chain, string(info.Type)}, "|")
		default:
			continue
		}

		g, ok := groups[groupKey]
		if !ok {
			g = &Suggestion{
				GroupKey:     groupKey,
				Confidence:   confidence,
				Chain:        tx.Chain,
				Protocol:     tx.Project,
				ProtocolName: projects.DisplayName(tx.Project),
				Type:         info.Type,
				PositionKey:  info.PositionKey,
			}
			groups[groupKey] = g
		}
		g.TxKeys = append(g.TxKeys, key)
		if g.TokenPair == "" {
			g.TokenPair = info.TokenPair
		}
		if g.PositionKey == "" {
			g.PositionKey = info.PositionKey
		}
		_, in, out := InferFlow(tx, tokens)
		g.TotalIn = g.TotalIn.Add(in)
		g.TotalOut = g.TotalOut.Add(out)
		if tx.TimeAt > g.LatestActivity {
			g.LatestActivity = tx.TimeAt
		}
	}

	suggestions := make([]Suggestion, 0, len(groups))
	for _, g := range groups {
		if len(g.TxKeys) < 2 {
			continue
		}
		g.TransactionCount = len(g.TxKeys)
		g.NetValue = g.TotalIn.Sub(g.TotalOut)
		g.Flow = classifyFlow(g.NetValue)
		suggestions = append(suggestions, *g)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if confidenceRank[a.Confidence] != confidenceRank[b.Confidence] {
			return confidenceRank[a.Confidence] < confidenceRank[b.Confidence]
		}
		if typePriority[a.Type] != typePriority[b.Type] {
			return typePriority[a.Type] < typePriority[b.Type]
		}
		if a.TransactionCount != b.TransactionCount {
			return a.TransactionCount > b.TransactionCount
		}
		return a.GroupKey < b.GroupKey
	})
	return suggestions
}
