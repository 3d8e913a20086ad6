// Package engine provides the real-time entity loop shared by the arcade
// mini-games: an entity store advanced by a frame scheduler, input capture
// buffers and a collision/scoring resolver.
//
// Nothing here touches the terminal or the wallet. Games own one Store and
// one Loop per session and apply the emitted Outcomes to a Rewards sink.
package engine

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/math-arcade/internal/core"
)

// EntityID identifies an entity within one session. IDs are never reused.
type EntityID uint64

// Entity is a simulated object: a falling number, a radar blip, a particle.
type Entity struct {
	ID     EntityID
	Kind   string
	Pos    core.Vec2 // world units
	Vel    core.Vec2 // world units per second
	Accel  core.Vec2 // world units per second squared
	Radius float64

	// Polar placement for radar-style games. Distance is advanced by
	// Vel.X when Polar is set; Angle is in degrees.
	Polar    bool
	Angle    float64
	Distance float64

	TTL    time.Duration
	HasTTL bool

	Value int
	Label string
	Color core.Color
}

// Circle returns the entity's hit disc.
func (e Entity) Circle() core.Circle {
	return core.Circle{Center: e.Pos, Radius: e.Radius}
}

// SpawnRule draws the parameters of a new entity. The store assigns the ID
// and kind.
type SpawnRule func(r *rand.Rand) Entity

// Store owns the live entities of one session.
type Store struct {
	entities []Entity
	nextID   EntityID
	rng      *rand.Rand
}

// NewStore creates an empty store whose spawn rules draw from a seeded RNG.
func NewStore(seed int64) *Store {
	return &Store{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Reset drops every entity and reseeds. IDs keep increasing so that an
// outcome from a previous session can never match a new entity.
func (s *Store) Reset(seed int64) {
	s.entities = s.entities[:0]
	s.rng = rand.New(rand.NewSource(seed))
}

// Rand exposes the store's RNG for game logic that must stay deterministic
// with the spawner.
func (s *Store) Rand() *rand.Rand {
	return s.rng
}

// Spawn appends a new entity produced by rule.
func (s *Store) Spawn(kind string, rule SpawnRule) Entity {
	e := rule(s.rng)
	return s.Add(kind, e)
}

// Add appends a fully specified entity, assigning its ID.
func (s *Store) Add(kind string, e Entity) Entity {
	s.nextID++
	e.ID = s.nextID
	e.Kind = kind
	s.entities = append(s.entities, e)
	return e
}

// Advance integrates every entity forward by dt using explicit Euler:
// position moves by the pre-step velocity, then velocity picks up
// acceleration. TTL counts down and floors at zero.
func (s *Store) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	sec := dt.Seconds()
	for i := range s.entities {
		e := &s.entities[i]
		if e.Polar {
			e.Distance += e.Vel.X * sec
			e.Angle = core.NormalizeDegrees(e.Angle + e.Vel.Y*sec)
		} else {
			e.Pos = e.Pos.Add(e.Vel.Scale(sec))
		}
		e.Vel = e.Vel.Add(e.Accel.Scale(sec))
		if e.HasTTL {
			e.TTL -= dt
			if e.TTL < 0 {
				e.TTL = 0
			}
		}
	}
}

// Prune removes every entity matching pred and returns them in store order.
func (s *Store) Prune(pred func(Entity) bool) []Entity {
	var removed []Entity
	kept := s.entities[:0]
	for _, e := range s.entities {
		if pred(e) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	// Zero the tail so dropped entities don't linger in the backing array.
	for i := len(kept); i < len(s.entities); i++ {
		s.entities[i] = Entity{}
	}
	s.entities = kept
	return removed
}

// Remove deletes the entities with the given IDs.
func (s *Store) Remove(ids ...EntityID) []Entity {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[EntityID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return s.Prune(func(e Entity) bool {
		_, ok := set[e.ID]
		return ok
	})
}

// Get returns the entity with the given ID.
func (s *Store) Get(id EntityID) (Entity, bool) {
	for _, e := range s.entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// Count returns the number of live entities of a kind.
func (s *Store) Count(kind string) int {
	n := 0
	for _, e := range s.entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// All returns a snapshot copy of the live entities.
func (s *Store) All() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Expired matches entities whose lifetime has run out.
func Expired() func(Entity) bool {
	return func(e Entity) bool {
		return e.HasTTL && e.TTL <= 0
	}
}

// OutsideBounds matches cartesian entities whose centre has left the rect
// extended by margin on every side.
func OutsideBounds(minX, minY, maxX, maxY, margin float64) func(Entity) bool {
	return func(e Entity) bool {
		if e.Polar {
			return false
		}
		return e.Pos.X < minX-margin || e.Pos.X > maxX+margin ||
			e.Pos.Y < minY-margin || e.Pos.Y > maxY+margin
	}
}

// OfKind matches entities of the given kind.
func OfKind(kind string) func(Entity) bool {
	return func(e Entity) bool {
		return e.Kind == kind
	}
}
