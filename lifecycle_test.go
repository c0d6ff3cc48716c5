package hedgebook

import "testing"

// yieldTx builds a lending deposit or withdrawal of USDC.
func yieldTx(hash string, timeAt int64, action string, amount float64) Transaction {
	tx := Transaction{Chain: "arb", Hash: hash, TimeAt: timeAt, Project: "euler", Name: action}
	transfer := []TokenTransfer{{TokenID: "0xusdc", Amount: amount}}
	if action == "deposit" {
		tx.Sends = transfer
	} else {
		tx.Receives = transfer
	}
	return tx
}

func TestSplitLifecycles(t *testing.T) {
	txs := []Transaction{
		yieldTx("0x1", 100, "deposit", 1000),
		yieldTx("0x2", 200, "deposit", 500),
		yieldTx("0x3", 300, "withdraw", 1500), // balance to zero: closes
		yieldTx("0x4", 400, "deposit", 2000),  // new lifecycle, still open
	}
	got := SplitLifecycles(txs, testTokens)

	if len(got) != 2 {
		t.Fatalf("len(lifecycles) = %d, want 2", len(got))
	}

	first, second := got[0], got[1]
	if first.Status != PositionClosed || len(first.TxKeys) != 3 {
		t.Errorf("first lifecycle = %+v, want closed with 3 txs", first)
	}
	if first.OpenedAt != 100 || first.ClosedAt != 300 {
		t.Errorf("first lifecycle span = %d..%d, want 100..300", first.OpenedAt, first.ClosedAt)
	}
	if first.Asset != "USDC" {
		t.Errorf("Asset = %q, want USDC", first.Asset)
	}
	if second.Status != PositionOpen || len(second.TxKeys) != 1 || second.ClosedAt != 0 {
		t.Errorf("second lifecycle = %+v, want open with 1 tx", second)
	}
}

func TestSplitLifecyclesClosesAtResidualEpsilon(t *testing.T) {
	// a residual balance of exactly 0.01 is dust, not an open position
	txs := []Transaction{
		yieldTx("0x1", 100, "deposit", 1000.01),
		yieldTx("0x2", 200, "withdraw", 1000),
	}
	got := SplitLifecycles(txs, testTokens)
	if len(got) != 1 {
		t.Fatalf("len(lifecycles) = %d, want 1", len(got))
	}
	if got[0].Status != PositionClosed {
		t.Errorf("Status = %q, want closed (residual 0.01 is within epsilon)", got[0].Status)
	}
}

func TestSplitLifecyclesPartialWithdrawStaysOpen(t *testing.T) {
	txs := []Transaction{
		yieldTx("0x1", 100, "deposit", 1000),
		yieldTx("0x2", 200, "withdraw", 400),
	}
	got := SplitLifecycles(txs, testTokens)
	if len(got) != 1 || got[0].Status != PositionOpen {
		t.Errorf("partial withdraw should stay a single open lifecycle, got %+v", got)
	}
}

func TestSplitLifecyclesSortsByTime(t *testing.T) {
	txs := []Transaction{
		yieldTx("0x2", 300, "withdraw", 1000),
		yieldTx("0x1", 100, "deposit", 1000),
	}
	got := SplitLifecycles(txs, testTokens)
	if len(got) != 1 || got[0].Status != PositionClosed {
		t.Fatalf("out-of-order input should still close, got %+v", got)
	}
	if got[0].TxKeys[0] != "arb:0x1" {
		t.Errorf("TxKeys should be chronological, got %v", got[0].TxKeys)
	}
}

func TestExpandLifecycles(t *testing.T) {
	txs := []Transaction{
		yieldTx("0x1", 100, "deposit", 1000),
		yieldTx("0x2", 200, "withdraw", 1000),
		yieldTx("0x3", 300, "deposit", 500),
	}
	suggestions := SuggestPositions(txs, NewBook("0x1"), testProjects, testTokens)
	if len(suggestions) != 1 || suggestions[0].Type != TypeLending {
		t.Fatalf("setup: want one lending suggestion, got %+v", suggestions)
	}

	got := ExpandLifecycles(suggestions, TxIndex(txs), testTokens)
	if len(got) != 2 {
		t.Fatalf("len(expanded) = %d, want 2", len(got))
	}
	if got[0].Status != PositionClosed || got[0].TransactionCount != 2 {
		t.Errorf("first expansion = %+v, want closed with 2 txs", got[0])
	}
	if got[1].Status != PositionOpen || got[1].TransactionCount != 1 {
		t.Errorf("second expansion = %+v, want open with 1 tx", got[1])
	}
	// flow totals are per lifecycle: the closed one nets out, the open one
	// holds the 500 deposit
	if got[0].Flow != FlowOverhead || !got[0].NetValue.IsZero() {
		t.Errorf("first expansion flow = %q net %s, want OVERHEAD net zero", got[0].Flow, got[0].NetValue)
	}
	if got[1].Flow != FlowIncrease || !got[1].NetValue.Equal(M(-500)) {
		t.Errorf("second expansion flow = %q net %s, want INCREASE net -$500", got[1].Flow, got[1].NetValue)
	}
	// non-yield suggestions pass through untouched
	lp := []Suggestion{{Type: TypeLP, TxKeys: []string{"eth:0x9"}}}
	if pass := ExpandLifecycles(lp, nil, testTokens); len(pass) != 1 || pass[0].Type != TypeLP {
		t.Errorf("lp suggestion should pass through, got %+v", pass)
	}
}
