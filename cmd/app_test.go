package cmd

import (
	"errors"
	"testing"

	"github.com/andrewstohl/hedgebook"
)

func TestSplitTxKey(t *testing.T) {
	chain, hash, err := splitTxKey("arb:0xabc")
	if err != nil || chain != "arb" || hash != "0xabc" {
		t.Errorf("splitTxKey(arb:0xabc) = %q, %q, %v", chain, hash, err)
	}

	for _, bad := range []string{"arb", "arb:", ":0xabc", ""} {
		if _, _, err := splitTxKey(bad); err == nil {
			t.Errorf("splitTxKey(%q) should fail", bad)
		}
	}
}

func TestResolvePosition(t *testing.T) {
	b := hedgebook.NewBook("0xabc")
	b, p1 := b.CreatePosition(hedgebook.Position{ID: "aaaa1111", DisplayName: "Aave USDC"}, nil)
	b, _ = b.CreatePosition(hedgebook.Position{ID: "aaaa2222", DisplayName: "GMX ETH"}, nil)

	if p, err := resolvePosition(b, "aaaa1111"); err != nil || p.ID != p1.ID {
		t.Errorf("by full id: got %q, %v", p.ID, err)
	}
	if p, err := resolvePosition(b, "aaaa1"); err != nil || p.ID != p1.ID {
		t.Errorf("by unique prefix: got %q, %v", p.ID, err)
	}
	if p, err := resolvePosition(b, "Aave USDC"); err != nil || p.ID != p1.ID {
		t.Errorf("by display name: got %q, %v", p.ID, err)
	}
	if _, err := resolvePosition(b, "aaaa"); err == nil {
		t.Error("ambiguous prefix should fail")
	}
	if _, err := resolvePosition(b, "missing"); err == nil {
		t.Error("unknown reference should fail")
	}
}

func TestResolveStrategy(t *testing.T) {
	b := hedgebook.NewBook("0xabc")
	b, s := b.CreateStrategy(hedgebook.Strategy{Name: "ETH delta-neutral"})

	if got, err := resolveStrategy(b, s.ID); err != nil || got.ID != s.ID {
		t.Errorf("by id: got %q, %v", got.ID, err)
	}
	if got, err := resolveStrategy(b, "ETH delta-neutral"); err != nil || got.ID != s.ID {
		t.Errorf("by name: got %q, %v", got.ID, err)
	}
	if _, err := resolveStrategy(b, "nope"); err == nil {
		t.Error("unknown reference should fail")
	}
}

func TestResolveStrategyAmbiguousIsNotNoMatch(t *testing.T) {
	// strategy-add creates on errNoMatch only: an ambiguous reference must
	// not look like a missing one, or it would mint a duplicate strategy
	b := hedgebook.NewBook("0xabc")
	b, _ = b.CreateStrategy(hedgebook.Strategy{ID: "ssss1111", Name: "Yield A"})
	b, _ = b.CreateStrategy(hedgebook.Strategy{ID: "ssss2222", Name: "Yield B"})

	_, err := resolveStrategy(b, "missing")
	if !errors.Is(err, errNoMatch) {
		t.Errorf("unknown reference: err = %v, want errNoMatch", err)
	}

	_, err = resolveStrategy(b, "ssss")
	if err == nil || errors.Is(err, errNoMatch) {
		t.Errorf("ambiguous reference: err = %v, want an error distinct from errNoMatch", err)
	}
}
