package engine

import "time"

// Phase is the lifecycle state of a session loop.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Token identifies one session of a Loop. A frame carrying a token from an
// earlier session is ignored.
type Token uint64

// Loop turns wall-clock frame timestamps into simulation deltas for one
// session at a time.
//
// The first frame of a session (and the first after a resume) yields a zero
// delta. Missed frames are not replayed: the next frame simply sees a larger
// delta, optionally capped by MaxDelta.
type Loop struct {
	// MaxDelta caps a single frame's delta. Zero means no cap.
	MaxDelta time.Duration

	phase Phase
	gen   Token
	last  time.Time
	ticks int
}

// Start begins a new session and returns its token. Any token handed out
// before is invalidated.
func (l *Loop) Start() Token {
	l.gen++
	l.phase = PhasePlaying
	l.last = time.Time{}
	l.ticks = 0
	return l.gen
}

// Stop ends the current session. Frames for it become no-ops.
func (l *Loop) Stop() {
	if l.phase == PhaseIdle || l.phase == PhaseOver {
		return
	}
	l.phase = PhaseOver
	l.gen++
}

// Pause suspends the session without invalidating its token.
func (l *Loop) Pause() {
	if l.phase == PhasePlaying {
		l.phase = PhasePaused
	}
}

// Resume continues a paused session. The time spent paused is not simulated.
func (l *Loop) Resume() {
	if l.phase == PhasePaused {
		l.phase = PhasePlaying
		l.last = time.Time{}
	}
}

// Phase returns the current lifecycle state.
func (l *Loop) Phase() Phase {
	return l.phase
}

// Playing reports whether frames are currently being simulated.
func (l *Loop) Playing() bool {
	return l.phase == PhasePlaying
}

// Ticks returns the number of frames simulated this session.
func (l *Loop) Ticks() int {
	return l.ticks
}

// Live reports whether tok belongs to the running or paused session.
func (l *Loop) Live(tok Token) bool {
	return tok == l.gen && (l.phase == PhasePlaying || l.phase == PhasePaused)
}

// Frame computes the elapsed time for a frame stamped now. ok is false when
// the token is stale or the session is not playing; callers must then do
// nothing.
func (l *Loop) Frame(tok Token, now time.Time) (dt time.Duration, ok bool) {
	if tok != l.gen || l.phase != PhasePlaying {
		return 0, false
	}
	if !l.last.IsZero() && now.After(l.last) {
		dt = now.Sub(l.last)
	}
	l.last = now
	if l.MaxDelta > 0 && dt > l.MaxDelta {
		dt = l.MaxDelta
	}
	l.ticks++
	return dt, true
}

// SpawnTimer accumulates frame time and fires once the spawn interval has
// elapsed. It fires at most once per Accumulate call and resets to zero, so
// a long stall never produces a burst of spawns.
type SpawnTimer struct {
	Interval time.Duration
	acc      time.Duration
}

// Accumulate adds dt and reports whether a spawn is due.
func (t *SpawnTimer) Accumulate(dt time.Duration) bool {
	if dt > 0 {
		t.acc += dt
	}
	if t.Interval <= 0 || t.acc < t.Interval {
		return false
	}
	t.acc = 0
	return true
}

// Reset clears the accumulated time.
func (t *SpawnTimer) Reset() {
	t.acc = 0
}

// Elapsed returns time accumulated toward the next spawn.
func (t *SpawnTimer) Elapsed() time.Duration {
	return t.acc
}
