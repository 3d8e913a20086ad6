package economy

import (
	"errors"
	"sync"
	"testing"
)

func TestWalletSpend(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		spend   int
		ok      bool
		after   int
	}{
		{"overspend rejected", 10, 11, false, 10},
		{"exact spend", 10, 10, true, 0},
		{"partial spend", 25, 10, true, 15},
		{"zero spend", 5, 0, true, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWallet(tt.balance)
			if got := w.SpendCoins(tt.spend); got != tt.ok {
				t.Errorf("SpendCoins(%d) = %v, expected %v", tt.spend, got, tt.ok)
			}
			if w.Balance() != tt.after {
				t.Errorf("Balance() = %d, expected %d", w.Balance(), tt.after)
			}
		})
	}
}

func TestWalletErrors(t *testing.T) {
	w := NewWallet(3)
	if err := w.Spend(4); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("Spend(4) = %v, expected ErrInsufficientFunds", err)
	}
	if err := w.Spend(-1); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Spend(-1) = %v, expected ErrInvalidAmount", err)
	}

	w.AddCoins(-50)
	if w.Balance() != 3 {
		t.Errorf("negative AddCoins should be ignored, balance %d", w.Balance())
	}
	if NewWallet(-7).Balance() != 0 {
		t.Error("negative initial balance should clamp to 0")
	}
}

func TestWalletConcurrentAdds(t *testing.T) {
	w := NewWallet(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				w.AddCoins(1)
			}
		}()
	}
	wg.Wait()

	if w.Balance() != 1000 {
		t.Errorf("Balance() = %d, expected 1000", w.Balance())
	}
}
