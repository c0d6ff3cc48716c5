package hedgebook

import (
	"testing"

	"github.com/andrewstohl/hedgebook/kv"
)

func TestTxKey(t *testing.T) {
	testCases := []struct {
		chain, hash, want string
	}{
		{"eth", "0xabc", "eth:0xabc"},
		{"arb", "0xDEF", "arb:0xDEF"}, // case preserved as given
		{"", "0x1", ":0x1"},
	}
	for _, tc := range testCases {
		if got := TxKey(tc.chain, tc.hash); got != tc.want {
			t.Errorf("TxKey(%q, %q) = %q, want %q", tc.chain, tc.hash, got, tc.want)
		}
	}
}

func TestLoadMissingReturnsEmptyBook(t *testing.T) {
	store := kv.NewMemStore()
	b := Load(store, "0xAbCd")
	if b.WalletAddress != "0xAbCd" {
		t.Errorf("WalletAddress = %q, want %q", b.WalletAddress, "0xAbCd")
	}
	if len(b.Transactions) != 0 || len(b.Positions) != 0 || len(b.Strategies) != 0 {
		t.Errorf("expected empty book, got %+v", b)
	}
}

func TestLoadWalletMismatchReturnsEmptyBook(t *testing.T) {
	store := kv.NewMemStore()
	b := NewBook("0xaaa")
	b = b.Hide("eth", "0x1", "spam")
	if err := Save(store, b); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// same key casing, different wallet recorded inside the document
	store.Set("hedgebook:v1:0xbbb", mustJSON(t, b))

	got := Load(store, "0xbbb")
	if len(got.Transactions) != 0 {
		t.Errorf("mismatched wallet should load as empty book, got %d overlays", len(got.Transactions))
	}

	// case-insensitive match is accepted
	got = Load(store, "0xAAA")
	if len(got.Transactions) != 1 {
		t.Errorf("case-insensitive wallet should load the saved book, got %d overlays", len(got.Transactions))
	}
}

func TestLoadCorruptPayloadReturnsEmptyBook(t *testing.T) {
	store := kv.NewMemStore()
	store.Set("hedgebook:v1:0xccc", "{not json")
	b := Load(store, "0xccc")
	if len(b.Transactions) != 0 || b.WalletAddress != "0xccc" {
		t.Errorf("corrupt payload should load as empty book, got %+v", b)
	}
}

func TestHideUnhideRoundTrip(t *testing.T) {
	b := NewBook("0x1")
	hidden := b.Hide("eth", "0xabc", "dust")

	o := hidden.Transactions["eth:0xabc"]
	if !o.Hidden || o.HiddenAt == 0 || o.HiddenReason != "dust" {
		t.Fatalf("Hide() overlay = %+v", o)
	}
	if !hidden.HiddenKeys()["eth:0xabc"] {
		t.Error("HiddenKeys() should contain the hidden key")
	}

	restored := hidden.Unhide("eth", "0xabc")
	if _, ok := restored.Transactions["eth:0xabc"]; ok {
		t.Error("unhide of a bare overlay should drop the entry entirely")
	}
}

func TestUnhidePreservesPositionLink(t *testing.T) {
	b := NewBook("0x1")
	b.Transactions["eth:0xabc"] = Overlay{PositionID: "pos-1"}
	b = b.Hide("eth", "0xabc", "")

	b = b.Unhide("eth", "0xabc")
	o := b.Transactions["eth:0xabc"]
	if o.Hidden || o.HiddenAt != 0 || o.HiddenReason != "" {
		t.Errorf("hidden metadata should be cleared, got %+v", o)
	}
	if o.PositionID != "pos-1" {
		t.Errorf("PositionID = %q, want %q", o.PositionID, "pos-1")
	}
}

func TestBookCopyOnWrite(t *testing.T) {
	b := NewBook("0x1")
	hidden := b.Hide("eth", "0xabc", "")
	if len(b.Transactions) != 0 {
		t.Error("Hide() must not mutate the receiver")
	}
	if len(hidden.Transactions) != 1 {
		t.Error("Hide() must return a modified copy")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := kv.NewMemStore()
	b := NewBook("0xWallet")
	b = b.Hide("eth", "0x1", "spam")
	b, _ = b.CreatePosition(Position{Chain: "eth", Protocol: "uniswap3", TokenPair: "ETH/USDC"}, nil)

	if err := Save(store, b); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got := Load(store, "0xwallet")
	if len(got.Positions) != 1 || len(got.Transactions) != 1 {
		t.Errorf("round trip lost data: %d positions, %d overlays", len(got.Positions), len(got.Transactions))
	}
	if got.Version != BookVersion {
		t.Errorf("Version = %d, want %d", got.Version, BookVersion)
	}
	if got.LastUpdated == 0 {
		t.Error("Save() should stamp LastUpdated")
	}
}
