// Package hedgebook reconciles raw on-chain wallet activity into DeFi
// positions, groups positions into user-defined strategies, and computes a
// token-level profit-and-loss matrix matching liquidity positions against
// their correlated perpetual hedges.
//
// The core functionalities include:
//   - Overlay Book: a per-wallet annotation layer over immutable raw
//     transactions (hidden flags, position links) persisted as a single
//     versioned JSON document through an injected key-value capability.
//   - Position Inference: heuristic classification and grouping of
//     unassigned transactions into candidate positions with a confidence
//     tier, plus position CRUD that keeps overlay links consistent.
//   - Strategy Aggregation: bookkeeping of percentage allocations of
//     positions into higher-level strategies.
//   - Hedge Matching: a per-token decomposition of value, drift, fees and
//     P&L for liquidity positions matched against perpetual positions,
//     with a hedge-ratio classification.
//
// Everything here is a pure, synchronous derivation over immutable
// snapshots: mutating operations on a Book return a new Book value. The
// package owns no network protocol; enriched LP and perpetual positions
// arrive already USD-valued from an external service, and suggestions are
// advisory, not ground truth.
//
// This package serves as the foundational logic for the `hbk` command-line
// tool.
package hedgebook
