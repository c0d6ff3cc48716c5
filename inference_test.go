package hedgebook

import (
	"testing"
)

var testTokens = TokenDict{
	"0xeth":      {Symbol: "ETH", Price: 2000},
	"0xusdc":     {Symbol: "USDC", Price: 1},
	"0xbtc":      {Symbol: "WBTC", Price: 60000},
	"0xspam":     {Symbol: "FreeETH.com", Price: 0},
	"0xlongspam": {Symbol: "AIRDROPTOKEN99", Price: 0},
	// nft-123 deliberately absent: position NFTs carry no token metadata
}

func lpTx(hash string, timeAt int64) Transaction {
	return Transaction{
		Chain:    "eth",
		Hash:     hash,
		TimeAt:   timeAt,
		Project:  "uniswap3",
		Name:     "increaseLiquidity",
		Sends:    []TokenTransfer{{TokenID: "0xeth", Amount: 1}, {TokenID: "0xusdc", Amount: 2000}},
		Receives: []TokenTransfer{{TokenID: "nft-123", Amount: 1}},
	}
}

func TestClassifyProtocol(t *testing.T) {
	testCases := []struct {
		projectID string
		want      PositionType
	}{
		{"arb_gmx", TypePerpetual},
		{"uniswap3", TypeLP},
		{"aave_v3", TypeLending},
		{"lido", TypeStaking},
		{"stargate", TypeBridge},
		{"1inch", TypeSwap},
		{"mystery_protocol", TypeUnknown},
		{"", TypeUnknown},
		// perpetual outranks lp when both substrings appear
		{"gmx_sushi", TypePerpetual},
		// lp outranks swap: "sushiswap" contains both "sushi" and "swap"
		{"sushiswap", TypeLP},
	}
	for _, tc := range testCases {
		if got := classifyProtocol(tc.projectID); got != tc.want {
			t.Errorf("classifyProtocol(%q) = %q, want %q", tc.projectID, got, tc.want)
		}
	}
}

func TestExtractPositionInfo(t *testing.T) {
	tx := lpTx("0x1", 100)
	info := ExtractPositionInfo(tx, testTokens)

	if info.Type != TypeLP {
		t.Errorf("Type = %q, want %q", info.Type, TypeLP)
	}
	if info.PositionKey != "nft-123" {
		t.Errorf("PositionKey = %q, want %q", info.PositionKey, "nft-123")
	}
	if info.TokenPair != "ETH/USDC" {
		t.Errorf("TokenPair = %q, want %q", info.TokenPair, "ETH/USDC")
	}
}

func TestExtractPositionInfoFiltersSpam(t *testing.T) {
	tx := Transaction{
		Chain: "eth", Hash: "0x1", Project: "uniswap3",
		Sends: []TokenTransfer{
			{TokenID: "0xeth", Amount: 1},
			{TokenID: "0xspam", Amount: 1e9},
			{TokenID: "0xlongspam", Amount: 1e9},
		},
	}
	info := ExtractPositionInfo(tx, testTokens)
	if info.TokenPair != "ETH" {
		t.Errorf("TokenPair = %q, want %q (spam symbols filtered)", info.TokenPair, "ETH")
	}
}

func TestSuggestPositionsHighConfidenceExample(t *testing.T) {
	// two uniswap3 transactions on eth sharing an nft receive
	txs := []Transaction{lpTx("0x1", 100), lpTx("0x2", 200)}
	got := SuggestPositions(txs, NewBook("0x1"), testProjects, testTokens)

	if len(got) != 1 {
		t.Fatalf("len(suggestions) = %d, want 1", len(got))
	}
	s := got[0]
	if s.Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %q, want %q", s.Confidence, ConfidenceHigh)
	}
	if s.TransactionCount != 2 {
		t.Errorf("TransactionCount = %d, want 2", s.TransactionCount)
	}
	if s.Type != TypeLP || s.PositionKey != "nft-123" || s.TokenPair != "ETH/USDC" {
		t.Errorf("unexpected metadata: %+v", s)
	}
	if s.ProtocolName != "Uniswap V3" {
		t.Errorf("ProtocolName = %q, want %q", s.ProtocolName, "Uniswap V3")
	}
	if s.LatestActivity != 200 {
		t.Errorf("LatestActivity = %d, want 200", s.LatestActivity)
	}
	// both txs deposit capital, so the group's net flow is an increase
	if s.Flow != FlowIncrease {
		t.Errorf("Flow = %q, want %q", s.Flow, FlowIncrease)
	}
}

func TestSuggestPositionsSkipsHiddenLinkedAndNoise(t *testing.T) {
	b := NewBook("0x1")
	b = b.Hide("eth", "0x1", "")
	b.Transactions["eth:0x2"] = Overlay{PositionID: "pos-1"}

	txs := []Transaction{
		lpTx("0x1", 100), // hidden
		lpTx("0x2", 200), // already linked
		{Chain: "eth", Hash: "0x3", Project: "uniswap3", Category: "approve"},
		{Chain: "eth", Hash: "0x4", Project: "uniswap3", Category: "deploy"},
	}
	if got := SuggestPositions(txs, b, testProjects, testTokens); len(got) != 0 {
		t.Errorf("expected no suggestions, got %d", len(got))
	}
}

func TestSuggestPositionsDropsSmallAndKeylessGroups(t *testing.T) {
	txs := []Transaction{
		lpTx("0x1", 100), // group of one: dropped
		// unresolved protocol, no pair, no key: dropped before grouping
		{Chain: "eth", Hash: "0x2", Project: "mystery"},
		{Chain: "eth", Hash: "0x3", Project: "mystery"},
	}
	if got := SuggestPositions(txs, NewBook("0x1"), testProjects, testTokens); len(got) != 0 {
		t.Errorf("expected no suggestions, got %+v", got)
	}
}

func TestSuggestPositionsOrdering(t *testing.T) {
	// a medium-confidence perpetual pair, a high-confidence lp pair of the
	// same size, and a larger medium-confidence lp group
	perp := func(hash string) Transaction {
		return Transaction{
			Chain: "arb", Hash: hash, Project: "arb_gmx", Name: "increasePosition",
			Sends: []TokenTransfer{{TokenID: "0xbtc", Amount: 0.1}},
		}
	}
	swapLP := func(hash string) Transaction {
		return Transaction{
			Chain: "eth", Hash: hash, Project: "sushiswap", Name: "addLiquidity",
			Sends: []TokenTransfer{{TokenID: "0xeth", Amount: 1}, {TokenID: "0xusdc", Amount: 2000}},
		}
	}
	txs := []Transaction{
		perp("0xp1"), perp("0xp2"),
		lpTx("0x1", 100), lpTx("0x2", 200),
		swapLP("0xs1"), swapLP("0xs2"), swapLP("0xs3"),
	}
	got := SuggestPositions(txs, NewBook("0x1"), testProjects, testTokens)
	if len(got) != 3 {
		t.Fatalf("len(suggestions) = %d, want 3", len(got))
	}
	// high confidence first regardless of equal or larger medium groups
	if got[0].Confidence != ConfidenceHigh {
		t.Errorf("first suggestion Confidence = %q, want high", got[0].Confidence)
	}
	// among medium: lp type outranks perpetual
	if got[1].Type != TypeLP || got[1].TransactionCount != 3 {
		t.Errorf("second suggestion = %+v, want medium lp group of 3", got[1])
	}
	if got[2].Type != TypePerpetual {
		t.Errorf("third suggestion Type = %q, want perpetual", got[2].Type)
	}
}

func TestInferFlow(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want FlowDirection
	}{
		{
			name: "deposit is increase",
			tx:   Transaction{Sends: []TokenTransfer{{TokenID: "0xeth", Amount: 1}}},
			want: FlowIncrease,
		},
		{
			name: "withdrawal is decrease",
			tx:   Transaction{Receives: []TokenTransfer{{TokenID: "0xusdc", Amount: 500}}},
			want: FlowDecrease,
		},
		{
			name: "sub-dollar net is overhead",
			tx: Transaction{
				Sends:    []TokenTransfer{{TokenID: "0xusdc", Amount: 100}},
				Receives: []TokenTransfer{{TokenID: "0xusdc", Amount: 99.5}},
			},
			want: FlowOverhead,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir, _, _ := InferFlow(tc.tx, testTokens)
			if dir != tc.want {
				t.Errorf("InferFlow() = %q, want %q", dir, tc.want)
			}
		})
	}
}
