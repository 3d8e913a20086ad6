package engine

import "time"

// Reveal walks through a fixed list of timed steps (typing a message, then
// showing it, then the next one). A single cursor tracks progress and a
// token ties every advance to the session that started it.
type Reveal struct {
	steps   []time.Duration
	cursor  int
	elapsed time.Duration
	gen     Token
	live    bool
}

// Start begins a new sequence and returns its token. A previous sequence is
// abandoned.
func (r *Reveal) Start(steps ...time.Duration) Token {
	r.gen++
	r.steps = append(r.steps[:0], steps...)
	r.cursor = 0
	r.elapsed = 0
	r.live = true
	return r.gen
}

// Cancel abandons the sequence. Later advances are no-ops.
func (r *Reveal) Cancel() {
	r.live = false
	r.gen++
}

// Advance moves time forward by dt and returns how many steps have now
// completed. ok is false when tok is stale or the sequence was cancelled,
// in which case nothing changes.
func (r *Reveal) Advance(tok Token, dt time.Duration) (done int, ok bool) {
	if !r.live || tok != r.gen {
		return r.cursor, false
	}
	if dt > 0 {
		r.elapsed += dt
	}
	for r.cursor < len(r.steps) && r.elapsed >= r.steps[r.cursor] {
		r.elapsed -= r.steps[r.cursor]
		r.cursor++
	}
	if r.cursor >= len(r.steps) {
		r.elapsed = 0
	}
	return r.cursor, true
}

// Done reports whether every step has completed.
func (r *Reveal) Done() bool {
	return r.live && r.cursor >= len(r.steps)
}

// Cursor returns the number of completed steps.
func (r *Reveal) Cursor() int {
	return r.cursor
}

// Live reports whether the sequence is running or finished but not
// cancelled.
func (r *Reveal) Live() bool {
	return r.live
}

// Countdown is a session timer that counts down from Total.
type Countdown struct {
	Total     time.Duration
	remaining time.Duration
}

// NewCountdown creates a full countdown.
func NewCountdown(total time.Duration) *Countdown {
	return &Countdown{Total: total, remaining: total}
}

// Reset refills the timer.
func (c *Countdown) Reset() {
	c.remaining = c.Total
}

// Tick consumes dt and reports whether the timer has run out.
func (c *Countdown) Tick(dt time.Duration) bool {
	if dt > 0 {
		c.remaining -= dt
	}
	if c.remaining < 0 {
		c.remaining = 0
	}
	return c.remaining == 0
}

// Remaining returns the time left.
func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

// Seconds returns whole seconds left, rounded up.
func (c *Countdown) Seconds() int {
	return int((c.remaining + time.Second - 1) / time.Second)
}
