package hedgebook

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Intent is a coarse guess at what a transaction does to a position.
type Intent string

const (
	IntentOpening   Intent = "opening"
	IntentModifying Intent = "modifying"
	IntentAmbiguous Intent = "ambiguous"
)

// intentRule carries the per-protocol action keywords that identify opening
// and modifying transactions. The protocol field is a substring of the
// project id; rules are checked in order.
type intentRule struct {
	protocol  string
	opening   []string
	modifying []string
}

var intentRules = []intentRule{
	{"uniswap", []string{"mint", "increaseliquidity"}, []string{"collect", "decreaseliquidity", "burn"}},
	{"pancake", []string{"mint", "increaseliquidity"}, []string{"collect", "decreaseliquidity", "burn"}},
	{"gmx", []string{"increaseposition", "createincreaseposition"}, []string{"decreaseposition", "createdecreaseposition", "liquidateposition"}},
	{"aave", []string{"supply", "deposit", "borrow"}, []string{"withdraw", "repay"}},
	{"euler", []string{"deposit", "borrow"}, []string{"withdraw", "repay"}},
	{"lido", []string{"submit", "stake"}, []string{"unstake", "claimwithdrawal"}},
}

// TransactionIntent classifies a transaction as opening or modifying a
// position by checking its action name against the per-protocol keyword
// table. Anything unrecognized is ambiguous.
func TransactionIntent(tx Transaction) Intent {
	project := strings.ToLower(tx.Project)
	action := strings.ToLower(tx.Name)
	if action == "" {
		return IntentAmbiguous
	}
	for _, r := range intentRules {
		if !strings.Contains(project, r.protocol) {
			continue
		}
		for _, kw := range r.opening {
			if strings.Contains(action, kw) {
				return IntentOpening
			}
		}
		for _, kw := range r.modifying {
			if strings.Contains(action, kw) {
				return IntentModifying
			}
		}
	}
	return IntentAmbiguous
}

// Direction is an externally supplied perpetual direction. It cannot be
// derived from generic transaction fields.
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// GeneratePositionName composes "<Protocol> <Type-or-Direction> <Assets>
// <MM/DD/YY>". The direction is used only for perpetuals and only when
// supplied; other types print their position type.
func GeneratePositionName(protocolName string, typ PositionType, dir Direction, assets string, openedAt int64) string {
	kind := string(typ)
	if typ == TypePerpetual && dir != "" {
		kind = string(dir)
	}
	parts := []string{protocolName, titleWords(kind)}
	if assets != "" {
		parts = append(parts, assets)
	}
	if openedAt > 0 {
		parts = append(parts, time.Unix(openedAt, 0).UTC().Format("01/02/06"))
	}
	return strings.Join(parts, " ")
}

// PositionMatch pairs an existing position with a relevance score.
type PositionMatch struct {
	Position Position
	Score    int
}

// FindMatchingPositions scores each existing position against a
// transaction: +10 same protocol, +5 same chain, +3 per shared token, +2
// for an open position. Positions with a positive score are returned in
// descending score order.
func FindMatchingPositions(tx Transaction, positions []Position, tokens TokenDict) []PositionMatch {
	symbols := transactionSymbols(tx, tokens)

	var matches []PositionMatch
	for _, p := range positions {
		score := 0
		if p.Protocol != "" && p.Protocol == tx.Project {
			score += 10
		}
		if p.Chain != "" && p.Chain == tx.Chain {
			score += 5
		}
		for _, token := range strings.Split(p.TokenPair, "/") {
			for _, s := range symbols {
				if token != "" && token == s {
					score += 3
				}
			}
		}
		if p.Status == PositionOpen {
			score += 2
		}
		if score > 0 {
			matches = append(matches, PositionMatch{Position: p, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	return matches
}

// String implements fmt.Stringer for a match, handy in logs and tests.
func (m PositionMatch) String() string {
	return fmt.Sprintf("%s (score %d)", m.Position.DisplayName, m.Score)
}
