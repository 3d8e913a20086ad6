package engine

import (
	"math/rand"
	"testing"
)

func TestDistinctOptions(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	pool := []int{30, 45, 60, 90, 180, 45, 30}

	for i := 0; i < 50; i++ {
		opts := DistinctOptions(60, pool, 4, r)
		if len(opts) != 4 {
			t.Fatalf("expected 4 options, got %v", opts)
		}
		seen := map[int]bool{}
		for _, v := range opts {
			if seen[v] {
				t.Fatalf("duplicate option in %v", opts)
			}
			seen[v] = true
		}
		if !seen[60] {
			t.Fatalf("correct answer missing from %v", opts)
		}
	}
}

func TestDistinctOptionsSmallPool(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	opts := DistinctOptions(5, []int{5, 6}, 4, r)
	if len(opts) != 2 {
		t.Errorf("a dry pool should yield fewer options, got %v", opts)
	}
	if DistinctOptions(1, nil, 0, r) != nil {
		t.Error("zero count should return nil")
	}
}

func TestNearbyOptionsPositive(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		opts := NearbyOptions(2, -5, 4, 4, r)
		if len(opts) != 4 {
			t.Fatalf("expected 4 options, got %v", opts)
		}
		if IndexOf(opts, 2) < 0 {
			t.Fatalf("correct answer missing from %v", opts)
		}
		for _, v := range opts {
			if v <= 0 {
				t.Fatalf("non-positive option in %v", opts)
			}
		}
	}
}

func TestIntBetween(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		v := IntBetween(r, 4, 50)
		if v < 4 || v > 50 {
			t.Fatalf("IntBetween out of range: %d", v)
		}
	}
	if IntBetween(r, 7, 7) != 7 {
		t.Error("degenerate range should return lo")
	}
}
