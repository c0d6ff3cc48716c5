package hedgebook

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/andrewstohl/hedgebook/kv"
)

// BookVersion is the version stamped on every persisted book document.
const BookVersion = 1

// bookKey returns the storage key for a wallet's book. The wallet address is
// lower-cased in the key only; the recorded address keeps its original case.
func bookKey(wallet string) string {
	return "hedgebook:v1:" + strings.ToLower(wallet)
}

// Overlay is the user annotation layer for a single transaction, keyed by
// TxKey. A transaction belongs to at most one position at a time.
type Overlay struct {
	Hidden       bool   `json:"hidden,omitempty"`
	HiddenAt     int64  `json:"hiddenAt,omitempty"`
	HiddenReason string `json:"hiddenReason,omitempty"`
	PositionID   string `json:"positionId,omitempty"`
}

// IsZero reports whether the overlay carries no annotation at all.
func (o Overlay) IsZero() bool { return o == Overlay{} }

// Book is the whole persisted state for one wallet: transaction overlays,
// positions and strategies, in a single versioned document.
//
// Book values are immutable snapshots: every mutating operation returns a
// new Book and leaves the receiver untouched. If two independent callers
// Load, modify and Save the same wallet, the last writer wins; nothing here
// pretends otherwise.
type Book struct {
	Version       int                 `json:"version"`
	WalletAddress string              `json:"walletAddress"`
	LastUpdated   int64               `json:"lastUpdated"`
	Transactions  map[string]Overlay  `json:"transactions"`
	Positions     map[string]Position `json:"positions"`
	Strategies    map[string]Strategy `json:"strategies"`
}

// NewBook creates an empty book for a wallet.
func NewBook(wallet string) Book {
	return Book{
		Version:       BookVersion,
		WalletAddress: wallet,
		Transactions:  make(map[string]Overlay),
		Positions:     make(map[string]Position),
		Strategies:    make(map[string]Strategy),
	}
}

// clone returns a copy of the book safe to mutate. Positions and strategies
// hold slices, so callers mutating one must copy that record too.
func (b Book) clone() Book {
	c := b
	c.Transactions = maps.Clone(b.Transactions)
	c.Positions = maps.Clone(b.Positions)
	c.Strategies = maps.Clone(b.Strategies)
	if c.Transactions == nil {
		c.Transactions = make(map[string]Overlay)
	}
	if c.Positions == nil {
		c.Positions = make(map[string]Position)
	}
	if c.Strategies == nil {
		c.Strategies = make(map[string]Strategy)
	}
	return c
}

// Load reads the book for a wallet from the store. A missing document, a
// document that fails to parse, or a document recorded for a different
// wallet (case-insensitive compare) all yield a fresh empty book. No error
// is surfaced: stale local state is never worth failing a session over.
func Load(store kv.Store, wallet string) Book {
	raw, ok := store.Get(bookKey(wallet))
	if !ok {
		return NewBook(wallet)
	}
	var b Book
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return NewBook(wallet)
	}
	if !strings.EqualFold(b.WalletAddress, wallet) {
		return NewBook(wallet)
	}
	// tolerate documents written before all sections existed
	return b.clone()
}

// Save writes the book under its wallet's key, stamping LastUpdated.
func Save(store kv.Store, b Book) error {
	b.LastUpdated = time.Now().Unix()
	b.Version = BookVersion
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("cannot encode book for %q: %w", b.WalletAddress, err)
	}
	if err := store.Set(bookKey(b.WalletAddress), string(raw)); err != nil {
		return fmt.Errorf("cannot persist book for %q: %w", b.WalletAddress, err)
	}
	return nil
}

// Hide marks a transaction hidden, stamping the time and an optional reason.
// Hiding an already hidden transaction refreshes the stamp.
func (b Book) Hide(chain, hash, reason string) Book {
	c := b.clone()
	key := TxKey(chain, hash)
	o := c.Transactions[key]
	o.Hidden = true
	o.HiddenAt = time.Now().Unix()
	o.HiddenReason = reason
	c.Transactions[key] = o
	return c
}

// Unhide clears the hidden flag and its metadata. A position link already
// present on the overlay is preserved; if nothing remains the overlay entry
// is dropped entirely so that hide/unhide round-trips to the original shape.
func (b Book) Unhide(chain, hash string) Book {
	key := TxKey(chain, hash)
	o, ok := b.Transactions[key]
	if !ok {
		return b
	}
	c := b.clone()
	o.Hidden = false
	o.HiddenAt = 0
	o.HiddenReason = ""
	if o.IsZero() {
		delete(c.Transactions, key)
	} else {
		c.Transactions[key] = o
	}
	return c
}

// HiddenKeys returns the set of transaction keys currently hidden.
func (b Book) HiddenKeys() map[string]bool {
	keys := make(map[string]bool)
	for key, o := range b.Transactions {
		if o.Hidden {
			keys[key] = true
		}
	}
	return keys
}
