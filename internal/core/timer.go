package core

import "time"

// Clock reports monotonic milliseconds elapsed since it was started. It is
// the time basis hosts pass to Tick and Toggle.
type Clock struct {
	start time.Time
}

// NewClock starts a clock at the current instant.
func NewClock() *Clock {
	return &Clock{start: time.Now()}
}

// Millis returns the milliseconds elapsed since the clock started.
func (c *Clock) Millis() int64 {
	return time.Since(c.start).Milliseconds()
}

// maxCatchUp bounds how many ticks a single Due call may release after a stall.
const maxCatchUp = 8

// FixedStep helps run simulation updates at a steady ticks-per-second rate,
// independent of how often the host polls it.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Due reports how many simulation ticks should run since the previous call.
// Backlog beyond maxCatchUp ticks is dropped so a stalled host does not spiral.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	n := 0
	for f.accumulator >= f.step && n < maxCatchUp {
		f.accumulator -= f.step
		n++
	}
	if n == maxCatchUp {
		f.accumulator = 0
	}
	return n
}
