package hedgebook

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// StrategyType classifies the trading thesis behind a strategy.
type StrategyType string

const (
	StrategyDeltaNeutral StrategyType = "delta-neutral"
	StrategyYield        StrategyType = "yield"
	StrategyDirectional  StrategyType = "directional"
	StrategyArbitrage    StrategyType = "arbitrage"
	StrategyCustom       StrategyType = "custom"
)

// StrategyStatus is the derived lifecycle state of a strategy.
type StrategyStatus string

const (
	StrategyActive        StrategyStatus = "active"
	StrategyClosed        StrategyStatus = "closed"
	StrategyPartialClosed StrategyStatus = "partial"
)

// Allocation assigns a percentage of a position to a strategy. There is no
// ceiling on the total percentage allocated for one position across all
// strategies: over-allocation beyond 100% is permitted on purpose.
type Allocation struct {
	PositionID string  `json:"positionId"`
	Percent    Percent `json:"percent"` // 0-100
	AddedAt    int64   `json:"addedAt"`
}

// Strategy is a user-defined grouping of positions with percentage
// allocations, representing a higher-level trading thesis.
type Strategy struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Type         StrategyType   `json:"type"`
	Allocations  []Allocation   `json:"allocations"`
	TargetLong   Percent        `json:"targetLongPercent,omitempty"`
	TargetShort  Percent        `json:"targetShortPercent,omitempty"`
	Status       StrategyStatus `json:"status"`
	CreatedAt    int64          `json:"createdAt"`
	UpdatedAt    int64          `json:"updatedAt"`
}

// CreateStrategy adds a strategy to the book, generating an id if missing.
func (b Book) CreateStrategy(s Strategy) (Book, Strategy) {
	c := b.clone()
	now := time.Now().Unix()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Type == "" {
		s.Type = StrategyCustom
	}
	if s.Status == "" {
		s.Status = StrategyActive
	}
	s.Allocations = slices.Clone(s.Allocations)
	s.CreatedAt = now
	s.UpdatedAt = now
	c.Strategies[s.ID] = s
	return c, s
}

// DeleteStrategy removes a strategy. Positions are untouched: allocations
// are edges, not owners. Unknown ids are a no-op.
func (b Book) DeleteStrategy(id string) Book {
	if _, ok := b.Strategies[id]; !ok {
		return b
	}
	c := b.clone()
	delete(c.Strategies, id)
	return c
}

// AddPositionToStrategy upserts an allocation: a position already present
// in the strategy gets its percentage overwritten rather than erroring.
// Unknown strategy ids are a no-op.
func (b Book) AddPositionToStrategy(strategyID, positionID string, percent Percent) Book {
	s, ok := b.Strategies[strategyID]
	if !ok {
		return b
	}
	c := b.clone()
	s.Allocations = slices.Clone(s.Allocations)
	now := time.Now().Unix()
	i := slices.IndexFunc(s.Allocations, func(a Allocation) bool { return a.PositionID == positionID })
	if i >= 0 {
		s.Allocations[i].Percent = percent
	} else {
		s.Allocations = append(s.Allocations, Allocation{PositionID: positionID, Percent: percent, AddedAt: now})
	}
	s.UpdatedAt = now
	c.Strategies[strategyID] = s
	return c
}

// RemovePositionFromStrategy drops the allocation of a position from a
// strategy. Unknown strategy or position ids are a no-op.
func (b Book) RemovePositionFromStrategy(strategyID, positionID string) Book {
	s, ok := b.Strategies[strategyID]
	if !ok {
		return b
	}
	kept := slices.DeleteFunc(slices.Clone(s.Allocations), func(a Allocation) bool { return a.PositionID == positionID })
	if len(kept) == len(s.Allocations) {
		return b
	}
	c := b.clone()
	s.Allocations = kept
	s.UpdatedAt = time.Now().Unix()
	c.Strategies[strategyID] = s
	return c
}

// CalculateStrategyStatus derives a strategy's status from the statuses of
// its allocated positions: "partial" when it holds both open and closed
// positions, "closed" when it only holds closed ones, "active" otherwise.
func (b Book) CalculateStrategyStatus(strategyID string) StrategyStatus {
	s, ok := b.Strategies[strategyID]
	if !ok {
		return StrategyActive
	}
	var open, closed bool
	for _, a := range s.Allocations {
		p, ok := b.Positions[a.PositionID]
		if !ok {
			continue
		}
		switch p.Status {
		case PositionClosed:
			closed = true
		default:
			open = true
		}
	}
	switch {
	case open && closed:
		return StrategyPartialClosed
	case closed:
		return StrategyClosed
	default:
		return StrategyActive
	}
}

// TotalPositionAllocation sums the percentage of one position allocated
// across all strategies. There is no enforced ceiling; the result may
// exceed 100%.
func (b Book) TotalPositionAllocation(positionID string) Percent {
	var total Percent
	for _, s := range b.Strategies {
		for _, a := range s.Allocations {
			if a.PositionID == positionID {
				total += a.Percent
			}
		}
	}
	return total
}
