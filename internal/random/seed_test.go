package random

import "testing"

func TestNewSeedVaries(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	if a == b {
		t.Fatalf("expected different seeds, got %d twice", a)
	}
}

func TestSeedOrKeepsExplicitSeed(t *testing.T) {
	seed, err := SeedOr(42)
	if err != nil {
		t.Fatalf("seed or: %v", err)
	}
	if seed != 42 {
		t.Fatalf("expected 42, got %d", seed)
	}
	seed, err = SeedOr(0)
	if err != nil {
		t.Fatalf("seed or: %v", err)
	}
	if seed == 0 {
		t.Fatal("expected a generated seed")
	}
}
