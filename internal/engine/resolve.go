package engine

import (
	"math"

	"github.com/vovakirdan/math-arcade/internal/core"
)

// OutcomeKind classifies a resolved interaction.
type OutcomeKind int

const (
	OutcomeGood OutcomeKind = iota
	OutcomeBad
	OutcomePerfect
	OutcomeClose
	OutcomeMiss
)

// String returns a lowercase name for the outcome.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeGood:
		return "good"
	case OutcomeBad:
		return "bad"
	case OutcomePerfect:
		return "perfect"
	case OutcomeClose:
		return "close"
	case OutcomeMiss:
		return "miss"
	default:
		return "unknown"
	}
}

// Outcome is the pure-data result of resolving input against an entity.
// Reward is the coin delta the caller should apply; it may be zero.
type Outcome struct {
	EntityID EntityID
	Kind     OutcomeKind
	Reward   int
	Diff     float64
	Entity   Entity
}

// Classifier decides what slicing an entity means.
type Classifier func(e Entity) (OutcomeKind, int)

// SliceResolver tests the newest trail segment against every live entity.
// Each entity resolves at most once per session; every entity hit in the
// same frame is honoured.
type SliceResolver struct {
	Classify Classifier
	visited  map[EntityID]struct{}
}

// NewSliceResolver creates a resolver with the given classification rule.
func NewSliceResolver(classify Classifier) *SliceResolver {
	return &SliceResolver{
		Classify: classify,
		visited:  make(map[EntityID]struct{}),
	}
}

// Reset forgets visited entities for a new session.
func (r *SliceResolver) Reset() {
	clear(r.visited)
}

// Resolve removes every entity crossed by the trail's last segment from the
// store and returns one outcome per removed entity, in store order.
func (r *SliceResolver) Resolve(t *Trail, s *Store) []Outcome {
	p1, p2, ok := t.LastSegment()
	if !ok {
		return nil
	}

	var hits []EntityID
	var outcomes []Outcome
	for _, e := range s.entities {
		if _, seen := r.visited[e.ID]; seen {
			continue
		}
		if !core.SegmentHitsCircle(p1, p2, e.Circle()) {
			continue
		}
		r.visited[e.ID] = struct{}{}
		hits = append(hits, e.ID)

		kind, reward := OutcomeGood, 0
		if r.Classify != nil {
			kind, reward = r.Classify(e)
		}
		outcomes = append(outcomes, Outcome{EntityID: e.ID, Kind: kind, Reward: reward, Entity: e})
	}
	s.Remove(hits...)
	return outcomes
}

// Default aiming tolerances in degrees.
const (
	PerfectTolerance = 3.0
	CloseTolerance   = 10.0
)

// AimResolver grades angular guesses into perfect, close and miss tiers.
// Rewards decrease with each tier; a miss pays nothing.
type AimResolver struct {
	Perfect       float64
	Close         float64
	PerfectReward int
	CloseReward   int
}

// DefaultAimResolver returns the standard 3°/10° bands paying 10 and 5.
func DefaultAimResolver() AimResolver {
	return AimResolver{
		Perfect:       PerfectTolerance,
		Close:         CloseTolerance,
		PerfectReward: 10,
		CloseReward:   5,
	}
}

// Classify returns the tier and reward for an angular error. Errors exactly
// on a band edge belong to the better tier.
func (a AimResolver) Classify(diff float64) (OutcomeKind, int) {
	switch {
	case !core.IsFinite(diff):
		return OutcomeMiss, 0
	case diff <= a.Perfect:
		return OutcomePerfect, a.PerfectReward
	case diff <= a.Close:
		return OutcomeClose, a.CloseReward
	default:
		return OutcomeMiss, 0
	}
}

// Judge grades a single guess against a single target heading.
func (a AimResolver) Judge(guess, target float64) Outcome {
	diff := core.AngularDifference(guess, target)
	if !core.IsFinite(guess, target) {
		diff = math.Inf(1)
	}
	kind, reward := a.Classify(diff)
	return Outcome{Kind: kind, Reward: reward, Diff: diff}
}

// ResolveShot fires one shot along heading and resolves it against the
// polar entities of kind in the store. The target with the smallest angular
// error within the close band is removed; on a tie the nearer one wins.
// It returns false when nothing was hit.
func (a AimResolver) ResolveShot(heading float64, kind string, s *Store) (Outcome, bool) {
	if !core.IsFinite(heading) {
		return Outcome{}, false
	}
	best := -1
	bestDiff := math.Inf(1)
	for i, e := range s.entities {
		if e.Kind != kind || !e.Polar {
			continue
		}
		diff := core.AngularDifference(heading, e.Angle)
		if diff > a.Close {
			continue
		}
		if diff < bestDiff || (diff == bestDiff && best >= 0 && e.Distance < s.entities[best].Distance) {
			best, bestDiff = i, diff
		}
	}
	if best < 0 {
		return Outcome{}, false
	}

	e := s.entities[best]
	k, reward := a.Classify(bestDiff)
	s.Remove(e.ID)
	return Outcome{EntityID: e.ID, Kind: k, Reward: reward, Diff: bestDiff, Entity: e}, true
}
