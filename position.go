package hedgebook

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// PositionStatus is the lifecycle state of a position.
type PositionStatus string

const (
	PositionOpen    PositionStatus = "open"
	PositionClosed  PositionStatus = "closed"
	PositionPartial PositionStatus = "partial"
)

// Position is a coherent set of transactions representing one DeFi position:
// an LP NFT, a perpetual, a loan, a stake. Positions are created from
// inference suggestions or manually, and own the position side of the
// overlay link.
type Position struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"displayName"`
	Chain       string         `json:"chain"`
	Protocol    string         `json:"protocol"`
	PositionKey string         `json:"positionKey,omitempty"` // external key, e.g. LP NFT id
	TokenPair   string         `json:"tokenPair,omitempty"`
	TxKeys      []string       `json:"txKeys"`
	Status      PositionStatus `json:"status"`
	CreatedAt   int64          `json:"createdAt"`
	UpdatedAt   int64          `json:"updatedAt"`
	OpenedAt    int64          `json:"openedAt,omitempty"`
	ClosedAt    int64          `json:"closedAt,omitempty"`
	Notes       string         `json:"notes,omitempty"`
}

// DefaultPositionName composes the default display name for a position:
// "<ProtocolName> <TokenPair> #<last 6 of positionKey>", degrading
// gracefully when the pair or the key is absent.
func DefaultPositionName(p Position, projects ProjectDict) string {
	name := projects.DisplayName(p.Protocol)
	if p.TokenPair != "" {
		name += " " + p.TokenPair
	}
	if p.PositionKey != "" {
		key := p.PositionKey
		if len(key) > 6 {
			key = key[len(key)-6:]
		}
		name += " #" + key
	}
	if p.TokenPair == "" && p.PositionKey == "" {
		name += " Position"
	}
	return name
}

// linkTx is the single path that touches the overlay<->position link. It
// writes the position id into the overlay and keeps TxKeys consistent on
// both the new position and, when the transaction was already owned, the
// previous one. c must already be a private clone.
func linkTx(c *Book, posID, key string) {
	o := c.Transactions[key]
	if o.PositionID != "" && o.PositionID != posID {
		if prev, ok := c.Positions[o.PositionID]; ok {
			prev.TxKeys = slices.DeleteFunc(slices.Clone(prev.TxKeys), func(k string) bool { return k == key })
			prev.UpdatedAt = time.Now().Unix()
			c.Positions[o.PositionID] = prev
		}
	}
	o.PositionID = posID
	c.Transactions[key] = o
}

// unlinkTx clears the overlay link for a key owned by posID. Overlays left
// with no annotation are dropped.
func unlinkTx(c *Book, posID, key string) {
	o, ok := c.Transactions[key]
	if !ok || o.PositionID != posID {
		return
	}
	o.PositionID = ""
	if o.IsZero() {
		delete(c.Transactions, key)
	} else {
		c.Transactions[key] = o
	}
}

// CreatePosition materializes a position in the book. A missing id is
// generated, a missing display name is composed from the protocol, token
// pair and position key, and every referenced overlay gets its positionId
// written. The created position is returned along with the new book.
func (b Book) CreatePosition(p Position, projects ProjectDict) (Book, Position) {
	c := b.clone()
	now := time.Now().Unix()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.DisplayName == "" {
		p.DisplayName = DefaultPositionName(p, projects)
	}
	if p.Status == "" {
		p.Status = PositionOpen
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	p.TxKeys = slices.Clone(p.TxKeys)

	c.Positions[p.ID] = p
	for _, key := range p.TxKeys {
		linkTx(&c, p.ID, key)
	}
	return c, p
}

// UpdatePosition replaces mutable metadata (display name, status, notes,
// timestamps) of a position. The transaction list is not touched here; use
// AddTransactionsToPosition and RemoveTransactionsFromPosition for that.
// Unknown ids are a no-op.
func (b Book) UpdatePosition(p Position) Book {
	old, ok := b.Positions[p.ID]
	if !ok {
		return b
	}
	c := b.clone()
	p.TxKeys = old.TxKeys
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = time.Now().Unix()
	c.Positions[p.ID] = p
	return c
}

// DeletePosition removes a position and cascades: every overlay it owned
// loses its positionId, and every strategy loses its allocation to it.
// Unknown ids are a no-op.
func (b Book) DeletePosition(id string) Book {
	p, ok := b.Positions[id]
	if !ok {
		return b
	}
	c := b.clone()
	for _, key := range p.TxKeys {
		unlinkTx(&c, id, key)
	}
	// an overlay may point at the position without being in TxKeys if the
	// document drifted; sweep those too
	for key, o := range c.Transactions {
		if o.PositionID == id {
			unlinkTx(&c, id, key)
		}
	}
	for sid, s := range c.Strategies {
		kept := slices.DeleteFunc(slices.Clone(s.Allocations), func(a Allocation) bool { return a.PositionID == id })
		if len(kept) != len(s.Allocations) {
			s.Allocations = kept
			s.UpdatedAt = time.Now().Unix()
			c.Strategies[sid] = s
		}
	}
	delete(c.Positions, id)
	return c
}

// AddTransactionsToPosition links transactions to a position, keeping the
// position's TxKeys and the overlays' positionId consistent in both
// directions. A key already owned by another position migrates cleanly.
// Unknown position ids are a no-op.
func (b Book) AddTransactionsToPosition(id string, keys ...string) Book {
	p, ok := b.Positions[id]
	if !ok {
		return b
	}
	c := b.clone()
	p.TxKeys = slices.Clone(p.TxKeys)
	for _, key := range keys {
		linkTx(&c, id, key)
		if !slices.Contains(p.TxKeys, key) {
			p.TxKeys = append(p.TxKeys, key)
		}
	}
	p.UpdatedAt = time.Now().Unix()
	c.Positions[id] = p
	return c
}

// RemoveTransactionsFromPosition unlinks transactions from a position,
// clearing both sides of the link. Unknown position ids are a no-op.
func (b Book) RemoveTransactionsFromPosition(id string, keys ...string) Book {
	p, ok := b.Positions[id]
	if !ok {
		return b
	}
	c := b.clone()
	p.TxKeys = slices.Clone(p.TxKeys)
	for _, key := range keys {
		unlinkTx(&c, id, key)
		p.TxKeys = slices.DeleteFunc(p.TxKeys, func(k string) bool { return k == key })
	}
	p.UpdatedAt = time.Now().Unix()
	c.Positions[id] = p
	return c
}
