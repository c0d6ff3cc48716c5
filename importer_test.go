package hedgebook

import (
	"strings"
	"testing"

	"github.com/andrewstohl/hedgebook/kv"
)

const sampleActivity = `{
  "history_list": [
    {
      "chain": "eth",
      "id": "0xabc",
      "time_at": 1700000000,
      "project_id": "uniswap3",
      "cate_id": "",
      "tx": {"name": "increaseLiquidity"},
      "sends": [{"token_id": "0xeth", "amount": 1.5}],
      "receives": [{"token_id": "nft-123", "amount": 1}]
    },
    {
      "chain": "",
      "id": "0xbad"
    }
  ],
  "token_dict": {
    "0xeth": {"symbol": "ETH", "price": 2000},
    "0xopt": {"optimized_symbol": "USDC.e", "price": 1}
  },
  "project_dict": {
    "uniswap3": {"name": "Uniswap V3"}
  }
}`

func TestImportActivity(t *testing.T) {
	activity, err := ImportActivity(strings.NewReader(sampleActivity))
	if err != nil {
		t.Fatalf("ImportActivity() failed: %v", err)
	}

	if len(activity.Transactions) != 1 {
		t.Fatalf("len(transactions) = %d, want 1 (chainless entry skipped)", len(activity.Transactions))
	}
	tx := activity.Transactions[0]
	if tx.Key() != "eth:0xabc" {
		t.Errorf("Key() = %q, want eth:0xabc", tx.Key())
	}
	if tx.Name != "increaseLiquidity" || tx.Project != "uniswap3" || tx.TimeAt != 1700000000 {
		t.Errorf("unexpected transaction: %+v", tx)
	}
	if len(tx.Sends) != 1 || tx.Sends[0].Amount != 1.5 {
		t.Errorf("unexpected sends: %+v", tx.Sends)
	}

	if got := activity.Tokens["0xeth"].Symbol; got != "ETH" {
		t.Errorf("token symbol = %q, want ETH", got)
	}
	if got := activity.Tokens["0xopt"].Symbol; got != "USDC.e" {
		t.Errorf("optimized symbol fallback = %q, want USDC.e", got)
	}
	if got := activity.Projects.DisplayName("uniswap3"); got != "Uniswap V3" {
		t.Errorf("project name = %q, want Uniswap V3", got)
	}
}

func TestImportActivityMalformed(t *testing.T) {
	if _, err := ImportActivity(strings.NewReader("{oops")); err == nil {
		t.Error("malformed document should be an error")
	}
}

func TestImportActivityEmptySections(t *testing.T) {
	activity, err := ImportActivity(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("ImportActivity() failed: %v", err)
	}
	if len(activity.Transactions) != 0 || len(activity.Tokens) != 0 || len(activity.Projects) != 0 {
		t.Errorf("empty document should import as empty activity, got %+v", activity)
	}
}

func TestSaveLoadActivity(t *testing.T) {
	store := kv.NewMemStore()

	if _, err := LoadActivity(store, "0xabc"); err == nil {
		t.Error("LoadActivity() without an import should fail")
	}

	first := &Activity{
		Transactions: []Transaction{
			{Chain: "arb", Hash: "0x1", TimeAt: 100, Project: "uniswap3"},
			{Chain: "arb", Hash: "0x2", TimeAt: 200, Project: "uniswap3"},
		},
		Tokens:   TokenDict{"0xusdc": {Symbol: "USDC"}},
		Projects: ProjectDict{"uniswap3": {Name: "Uniswap V3"}},
	}
	if err := SaveActivity(store, "0xabc", first); err != nil {
		t.Fatalf("SaveActivity() failed: %v", err)
	}

	// a second import overlaps one transaction and brings a new one
	second := &Activity{
		Transactions: []Transaction{
			{Chain: "arb", Hash: "0x2", TimeAt: 200, Project: "uniswap3", Category: "approve"},
			{Chain: "arb", Hash: "0x3", TimeAt: 300, Project: "uniswap3"},
		},
		Tokens:   TokenDict{"0xweth": {Symbol: "WETH"}},
		Projects: ProjectDict{},
	}
	if err := SaveActivity(store, "0xabc", second); err != nil {
		t.Fatalf("SaveActivity() merge failed: %v", err)
	}

	merged, err := LoadActivity(store, "0xabc")
	if err != nil {
		t.Fatalf("LoadActivity() failed: %v", err)
	}
	if len(merged.Transactions) != 3 {
		t.Fatalf("merged %d transactions, want 3", len(merged.Transactions))
	}
	// chronological order, newest import wins on the overlap
	if got := merged.Transactions[1]; got.Hash != "0x2" || got.Category != "approve" {
		t.Errorf("overlapping transaction = %+v, want the re-imported one", got)
	}
	if merged.Tokens["0xusdc"].Symbol != "USDC" || merged.Tokens["0xweth"].Symbol != "WETH" {
		t.Errorf("token dictionaries should merge, got %+v", merged.Tokens)
	}
	if merged.Projects.DisplayName("uniswap3") != "Uniswap V3" {
		t.Errorf("project dictionary should survive a merge, got %+v", merged.Projects)
	}
}
