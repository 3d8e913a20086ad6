// Package economy holds the persistent player economy: the coin wallet,
// XP/level progression with missions and badges, the level curve designer,
// the economy simulator and user settings. All state belongs to a Profile,
// which loads and saves JSON documents through a key-value store.
package economy

import (
	"errors"
	"sync"
)

var (
	// ErrInsufficientFunds is returned when a spend exceeds the balance.
	ErrInsufficientFunds = errors.New("economy: insufficient balance")

	// ErrInvalidAmount is returned for non-positive amounts.
	ErrInvalidAmount = errors.New("economy: amount must be positive")

	// ErrInvalidImport is returned when imported data has an unknown shape.
	ErrInvalidImport = errors.New("economy: invalid import format")

	// ErrNotFound is returned when a mission, badge or card id is unknown.
	ErrNotFound = errors.New("economy: not found")
)

// Wallet is the player's coin balance. It is safe for concurrent use;
// SSH sessions of the same profile share one wallet.
type Wallet struct {
	mu    sync.Mutex
	coins int
}

// NewWallet creates a wallet with an initial balance. Negative values become 0.
func NewWallet(coins int) *Wallet {
	if coins < 0 {
		coins = 0
	}
	return &Wallet{coins: coins}
}

// Balance returns the current coin total.
func (w *Wallet) Balance() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.coins
}

// AddCoins credits n coins. Non-positive amounts are ignored.
func (w *Wallet) AddCoins(n int) {
	if n <= 0 {
		return
	}
	w.mu.Lock()
	w.coins += n
	w.mu.Unlock()
}

// SpendCoins debits n coins if the balance allows it.
// Returns false, leaving the balance unchanged, otherwise.
func (w *Wallet) SpendCoins(n int) bool {
	return w.Spend(n) == nil
}

// Spend is SpendCoins with a reason on failure.
func (w *Wallet) Spend(n int) error {
	if n < 0 {
		return ErrInvalidAmount
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.coins < n {
		return ErrInsufficientFunds
	}
	w.coins -= n
	return nil
}

// set replaces the balance; used when loading.
func (w *Wallet) set(n int) {
	if n < 0 {
		n = 0
	}
	w.mu.Lock()
	w.coins = n
	w.mu.Unlock()
}
