package hedgebook

import "strings"

// TokenTransfer is a single token movement inside a transaction, as reported
// by the wallet-activity provider. Amount is a raw provider float, converted
// to Quantity as soon as any arithmetic is needed.
type TokenTransfer struct {
	TokenID string  `json:"tokenId"`
	Amount  float64 `json:"amount"`
}

// Transaction is one on-chain transaction for a wallet. It is an external,
// immutable input: the library never mutates a transaction, it only
// annotates it through the overlay Book.
type Transaction struct {
	Chain    string          `json:"chain"`
	Hash     string          `json:"hash"`
	TimeAt   int64           `json:"timeAt"` // unix seconds
	Project  string          `json:"projectId,omitempty"`
	Category string          `json:"categoryId,omitempty"`
	Name     string          `json:"name,omitempty"` // human readable action, e.g. "increaseLiquidity"
	Sends    []TokenTransfer `json:"sends,omitempty"`
	Receives []TokenTransfer `json:"receives,omitempty"`
}

// TxKey returns the overlay key for a transaction: exactly "chain:hash",
// case as given, no normalization.
func TxKey(chain, hash string) string { return chain + ":" + hash }

// Key returns the transaction's overlay key.
func (t Transaction) Key() string { return TxKey(t.Chain, t.Hash) }

// TokenInfo is provider metadata about one token, keyed by token id.
type TokenInfo struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// TokenDict indexes token metadata by token id.
type TokenDict map[string]TokenInfo

// ProjectInfo is provider metadata about one protocol, keyed by project id.
type ProjectInfo struct {
	Name string `json:"name"`
}

// ProjectDict indexes protocol metadata by project id.
type ProjectDict map[string]ProjectInfo

// DisplayName returns the protocol display name for a project id, falling
// back to a readable form of the id itself ("arb_gmx" -> "Arb Gmx").
func (d ProjectDict) DisplayName(projectID string) string {
	if info, ok := d[projectID]; ok && info.Name != "" {
		return info.Name
	}
	return titleWords(strings.ReplaceAll(projectID, "_", " "))
}

// titleWords upper-cases the first letter of every space-separated word.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
