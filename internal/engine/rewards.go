package engine

// Rewards is the sink a game reports earned coins and experience to. It is
// passed into each game's constructor; games never reach for a global.
type Rewards interface {
	AddCoins(n int)
	AddXP(n int)
}

// NopRewards discards everything.
type NopRewards struct{}

func (NopRewards) AddCoins(int) {}
func (NopRewards) AddXP(int)    {}

// Tally records rewards in memory.
type Tally struct {
	Coins int
	XP    int
}

func (t *Tally) AddCoins(n int) {
	if n > 0 {
		t.Coins += n
	}
}

func (t *Tally) AddXP(n int) {
	if n > 0 {
		t.XP += n
	}
}

// Apply credits every positive outcome reward as coins and returns the
// total credited.
func Apply(r Rewards, outcomes ...Outcome) int {
	total := 0
	for _, o := range outcomes {
		if o.Reward > 0 {
			total += o.Reward
		}
	}
	if total > 0 && r != nil {
		r.AddCoins(total)
	}
	return total
}

// ScoreState is the per-session scoreboard.
type ScoreState struct {
	Score  int
	Lives  int
	Streak int
}

// Hit adds points and extends the streak.
func (s *ScoreState) Hit(points int) {
	s.Score += points
	s.Streak++
}

// Miss costs a life, breaks the streak and reports whether lives ran out.
func (s *ScoreState) Miss() bool {
	s.Streak = 0
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives == 0
}
