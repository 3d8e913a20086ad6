package economy

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TxType is the direction of a simulated transaction.
type TxType string

const (
	Income  TxType = "INCOME"
	Expense TxType = "EXPENSE"
)

// Category classifies simulated transactions.
type Category string

const (
	CategoryLearning   Category = "LEARNING"
	CategoryMinigame   Category = "MINIGAME"
	CategoryMission    Category = "MISSION"
	CategoryAvatar     Category = "AVATAR"
	CategoryUnlockGame Category = "UNLOCK_GAME"
)

// IncomeCategories and ExpenseCategories list the categories valid for each type.
var (
	IncomeCategories  = []Category{CategoryLearning, CategoryMinigame, CategoryMission}
	ExpenseCategories = []Category{CategoryAvatar, CategoryUnlockGame}
)

var activityNames = map[Category][]string{
	CategoryLearning: {
		"Algebra Puzzles", "Angle Master Quiz", "Division Training", "Pattern Recognition",
		"Data Analysis Basics", "Logic Gate Challenge", "Fraction Fundamentals", "Geometry Genius",
	},
	CategoryMinigame: {
		"Factor Ninja Highscore", "Coordinate Commando", "Equation Escape",
		"Prime Hunter", "Math Masters Run", "Number Smash",
	},
	CategoryMission: {
		"Daily Challenge Complete", "Weekly Boss Defeated", "Secret Scroll Found",
		"Math Master Achievement", "Community Goal Met",
	},
	CategoryAvatar: {
		"Neon Cape", "Cyber Helmet", "Dragon Pet", "Golden Sword",
		"Galaxy Aura", "Stealth Boots", "Crystal Shield",
	},
	CategoryUnlockGame: {
		"Calculus Level", "Secret Dungeon", "Pro Mode Access", "Multiplayer Arena", "Time Attack Mode",
	},
}

// ParseTxType accepts "income"/"expense" in any case.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(strings.ToUpper(s)); t {
	case Income, Expense:
		return t, nil
	}
	return "", fmt.Errorf("economy: unknown transaction type %q", s)
}

// ParseCategory accepts category names in any case; "unlock-game" maps to UNLOCK_GAME.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ReplaceAll(strings.ToUpper(s), "-", "_"))
	if _, ok := activityNames[c]; ok {
		return c, nil
	}
	return "", fmt.Errorf("economy: unknown category %q", s)
}

// Transaction is one recorded income or expense.
type Transaction struct {
	ID          string   `json:"id"`
	Type        TxType   `json:"type"`
	Category    Category `json:"category"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
	Timestamp   string   `json:"timestamp"`
}

// Card is a reusable simulated action that records a transaction when run.
type Card struct {
	ID          string   `json:"id"`
	Type        TxType   `json:"type"`
	Category    Category `json:"category"`
	Amount      float64  `json:"amount"`
	ExpAmount   *float64 `json:"expAmount,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Sim is the economy simulator ledger.
type Sim struct {
	Transactions []Transaction
	Cards        []Card

	rng *rand.Rand
	now func() time.Time
}

// NewSim creates an empty simulator. Activity names are drawn from rng.
func NewSim(rng *rand.Rand) *Sim {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sim{rng: rng, now: time.Now}
}

// Totals returns income, expense and balance over all transactions.
func (s *Sim) Totals() (income, expense, balance float64) {
	for _, t := range s.Transactions {
		switch t.Type {
		case Income:
			income += t.Amount
		case Expense:
			expense += t.Amount
		}
	}
	return income, expense, income - expense
}

// CategoryTotal sums transactions of one category.
func (s *Sim) CategoryTotal(c Category) float64 {
	var total float64
	for _, t := range s.Transactions {
		if t.Category == c {
			total += t.Amount
		}
	}
	return total
}

// AddTransaction records a transaction at the head of the ledger.
func (s *Sim) AddTransaction(tx Transaction) Transaction {
	tx.ID = uuid.NewString()
	tx.Timestamp = s.now().UTC().Format("2006-01-02T15:04:05.000Z")
	s.Transactions = append([]Transaction{tx}, s.Transactions...)
	return tx
}

// AddCard creates a simulation card. The amount must be positive.
func (s *Sim) AddCard(c Card) (Card, error) {
	if !isFinite(c.Amount) || c.Amount <= 0 {
		return Card{}, ErrInvalidAmount
	}
	if _, ok := activityNames[c.Category]; !ok {
		return Card{}, fmt.Errorf("economy: unknown category %q", c.Category)
	}
	if c.Type != Income && c.Type != Expense {
		return Card{}, fmt.Errorf("economy: unknown transaction type %q", c.Type)
	}
	c.ID = uuid.NewString()
	s.Cards = append(s.Cards, c)
	return c, nil
}

// RemoveCard deletes a card by id.
func (s *Sim) RemoveCard(id string) bool {
	n := len(s.Cards)
	s.Cards = slices.DeleteFunc(s.Cards, func(c Card) bool { return c.ID == id })
	return len(s.Cards) != n
}

// Card finds a card by id or by unique id prefix.
func (s *Sim) Card(id string) (Card, error) {
	var found []Card
	for _, c := range s.Cards {
		if c.ID == id {
			return c, nil
		}
		if strings.HasPrefix(c.ID, id) {
			found = append(found, c)
		}
	}
	if len(found) == 1 {
		return found[0], nil
	}
	return Card{}, fmt.Errorf("card %q: %w", id, ErrNotFound)
}

// Execute runs a card, recording a transaction with a random activity name.
// Expense cards are rejected with ErrInsufficientFunds when the balance is short.
func (s *Sim) Execute(id string) (Transaction, error) {
	card, err := s.Card(id)
	if err != nil {
		return Transaction{}, err
	}
	if _, _, balance := s.Totals(); card.Type == Expense && balance < card.Amount {
		return Transaction{}, fmt.Errorf("insufficient balance to perform this action: %w", ErrInsufficientFunds)
	}

	verb := "Purchased"
	if card.Type == Income {
		verb = "Completed"
	}
	return s.AddTransaction(Transaction{
		Type:        card.Type,
		Category:    card.Category,
		Amount:      card.Amount,
		Description: verb + " " + s.activityName(card.Category),
	}), nil
}

func (s *Sim) activityName(c Category) string {
	names := activityNames[c]
	if len(names) == 0 {
		return "Unknown Activity"
	}
	return names[s.rng.Intn(len(names))]
}

// Clear drops all transactions and cards.
func (s *Sim) Clear() {
	s.Transactions = nil
	s.Cards = nil
}

type simExport struct {
	Transactions []Transaction `json:"transactions"`
	SimCards     []Card        `json:"simCards"`
}

// Export serializes the ledger as indented JSON.
func (s *Sim) Export() ([]byte, error) {
	data, err := json.MarshalIndent(simExport{
		Transactions: nonNil(s.Transactions),
		SimCards:     nonNil(s.Cards),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("economy: export: %w", err)
	}
	return data, nil
}

// Import replaces the ledger from exported JSON. A bare array is read as a
// legacy transaction-only export and leaves cards untouched. Reports whether
// the legacy format was used.
func (s *Sim) Import(data []byte) (legacy bool, err error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	switch raw.(type) {
	case []any:
		var txs []Transaction
		if err := json.Unmarshal(data, &txs); err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
		s.Transactions = txs
		return true, nil
	case map[string]any:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
		if !present(fields["transactions"]) || !present(fields["simCards"]) {
			return false, fmt.Errorf("%w: expected transactions and simCards", ErrInvalidImport)
		}
		var exp simExport
		if err := json.Unmarshal(data, &exp); err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
		s.Transactions = exp.Transactions
		s.Cards = exp.SimCards
		return false, nil
	default:
		return false, ErrInvalidImport
	}
}

func present(m json.RawMessage) bool {
	return len(m) > 0 && string(m) != "null"
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
