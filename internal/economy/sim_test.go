package economy

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func newTestSim() *Sim {
	return NewSim(rand.New(rand.NewSource(1)))
}

func TestSimExecuteCards(t *testing.T) {
	s := newTestSim()

	income, err := s.AddCard(Card{Type: Income, Category: CategoryMinigame, Amount: 30})
	if err != nil {
		t.Fatalf("AddCard() error: %v", err)
	}
	expense, _ := s.AddCard(Card{Type: Expense, Category: CategoryAvatar, Amount: 50})

	if _, err := s.Execute(expense.ID); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expense with empty ledger = %v, expected ErrInsufficientFunds", err)
	}
	if len(s.Transactions) != 0 {
		t.Fatal("rejected expense should not record a transaction")
	}

	s.Execute(income.ID)
	tx, err := s.Execute(income.ID)
	if err != nil {
		t.Fatalf("Execute(income) error: %v", err)
	}
	if !strings.HasPrefix(tx.Description, "Completed ") || tx.ID == "" || tx.Timestamp == "" {
		t.Errorf("unexpected income transaction %+v", tx)
	}

	tx, err = s.Execute(expense.ID)
	if err != nil {
		t.Fatalf("Execute(expense) error: %v", err)
	}
	if !strings.HasPrefix(tx.Description, "Purchased ") {
		t.Errorf("expense description %q", tx.Description)
	}
	if s.Transactions[0].ID != tx.ID {
		t.Error("transactions should be prepended")
	}

	in, out, bal := s.Totals()
	if in != 60 || out != 50 || bal != 10 {
		t.Errorf("Totals() = %v %v %v, expected 60 50 10", in, out, bal)
	}
	if s.CategoryTotal(CategoryMinigame) != 60 {
		t.Errorf("CategoryTotal(MINIGAME) = %v", s.CategoryTotal(CategoryMinigame))
	}
}

func TestSimAddCardValidation(t *testing.T) {
	s := newTestSim()
	tests := []Card{
		{Type: Income, Category: CategoryLearning, Amount: 0},
		{Type: Income, Category: CategoryLearning, Amount: -3},
		{Type: Income, Category: "SNACKS", Amount: 3},
		{Type: "GIFT", Category: CategoryLearning, Amount: 3},
	}
	for _, c := range tests {
		if _, err := s.AddCard(c); err == nil {
			t.Errorf("AddCard(%+v) should fail", c)
		}
	}
	if len(s.Cards) != 0 {
		t.Error("invalid cards should not be stored")
	}
}

func TestSimCardLookupByPrefix(t *testing.T) {
	s := newTestSim()
	c, _ := s.AddCard(Card{Type: Income, Category: CategoryMission, Amount: 5})

	got, err := s.Card(c.ID[:8])
	if err != nil || got.ID != c.ID {
		t.Errorf("Card(prefix) = %+v, %v", got, err)
	}
	if _, err := s.Card("zzzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown card error = %v", err)
	}
	if !s.RemoveCard(c.ID) || s.RemoveCard(c.ID) {
		t.Error("RemoveCard should remove exactly once")
	}
}

func TestSimExportImport(t *testing.T) {
	s := newTestSim()
	c, _ := s.AddCard(Card{Type: Income, Category: CategoryLearning, Amount: 12})
	s.Execute(c.ID)

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if !strings.Contains(string(data), `"simCards"`) {
		t.Errorf("export missing simCards: %s", data)
	}

	other := newTestSim()
	legacy, err := other.Import(data)
	if err != nil || legacy {
		t.Fatalf("Import() = %v, %v", legacy, err)
	}
	if len(other.Transactions) != 1 || len(other.Cards) != 1 || other.Cards[0].ID != c.ID {
		t.Errorf("imported ledger mismatch: %+v", other)
	}
}

func TestSimImportFormats(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		legacy  bool
		wantErr bool
	}{
		{"legacy array", `[{"id":"t1","type":"INCOME","category":"LEARNING","amount":5,"description":"x","timestamp":"2024-01-01T00:00:00.000Z"}]`, true, false},
		{"empty export", `{"transactions":[],"simCards":[]}`, false, false},
		{"missing cards", `{"transactions":[]}`, false, true},
		{"null cards", `{"transactions":[],"simCards":null}`, false, true},
		{"not json", `{oops`, false, true},
		{"scalar", `42`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim()
			legacy, err := s.Import([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidImport) {
					t.Errorf("Import() error = %v, expected ErrInvalidImport", err)
				}
				return
			}
			if err != nil || legacy != tt.legacy {
				t.Errorf("Import() = %v, %v; expected legacy=%v", legacy, err, tt.legacy)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Errorf("FormatNumber(1234567) = %q", got)
	}
	if got := FormatNumber(12.5); got != "12.50" {
		t.Errorf("FormatNumber(12.5) = %q", got)
	}
}
