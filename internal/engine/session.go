package engine

import "time"

// Session couples a Loop with a frame clock so a game only has to hand over
// the time stamp of each input frame.
//
// Frames stamped by the platform use their wall-clock time. Unstamped frames
// (tests, replays) advance by one fixed tick, which keeps simulations
// deterministic.
type Session struct {
	Loop Loop

	tick time.Duration
	now  time.Time
	tok  Token
}

// Start begins a new session at the given tick rate.
func (s *Session) Start(tickRate int) Token {
	if tickRate <= 0 {
		tickRate = 60
	}
	s.tick = time.Second / time.Duration(tickRate)
	s.now = time.Time{}
	s.tok = s.Loop.Start()
	return s.tok
}

// Frame returns the delta for a frame stamped at (zero means "one tick").
// ok is false when the session is paused or over.
func (s *Session) Frame(at time.Time) (time.Duration, bool) {
	if at.IsZero() {
		if s.now.IsZero() {
			s.now = time.Unix(0, 0)
		}
		at = s.now.Add(s.tick)
	}
	s.now = at
	return s.Loop.Frame(s.tok, at)
}

// TogglePause flips between playing and paused and reports whether the
// session is now paused.
func (s *Session) TogglePause() bool {
	switch s.Loop.Phase() {
	case PhasePlaying:
		s.Loop.Pause()
	case PhasePaused:
		s.Loop.Resume()
	}
	return s.Loop.Phase() == PhasePaused
}

// Stop ends the session.
func (s *Session) Stop() {
	s.Loop.Stop()
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.Loop.Phase() == PhasePaused
}

// Over reports whether the session has ended.
func (s *Session) Over() bool {
	return s.Loop.Phase() == PhaseOver
}

// Now returns the time stamp of the latest frame.
func (s *Session) Now() time.Time {
	return s.now
}

// Token returns the current session token.
func (s *Session) Token() Token {
	return s.tok
}
