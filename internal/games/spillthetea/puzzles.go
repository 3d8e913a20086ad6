package spillthetea

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed puzzles.yaml
var puzzlesYAML []byte

// Puzzle is one level of the chat.
type Puzzle struct {
	Premises    []string `yaml:"premises"`
	Conclusion  string   `yaml:"conclusion"`
	Valid       bool     `yaml:"valid"`
	Explanation string   `yaml:"explanation"`
}

// LoadPuzzles parses a puzzle list.
func LoadPuzzles(data []byte) ([]Puzzle, error) {
	var ps []Puzzle
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("spill-the-tea: parse puzzles: %w", err)
	}
	for i, p := range ps {
		if len(p.Premises) == 0 || p.Conclusion == "" {
			return nil, fmt.Errorf("spill-the-tea: puzzle %d is incomplete", i+1)
		}
	}
	if len(ps) == 0 {
		return nil, fmt.Errorf("spill-the-tea: no puzzles")
	}
	return ps, nil
}

// Puzzles returns the built-in levels.
func Puzzles() []Puzzle {
	ps, err := LoadPuzzles(puzzlesYAML)
	if err != nil {
		panic(err)
	}
	return ps
}
