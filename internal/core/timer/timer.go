package timer

import "time"

// Report is produced by Tick whenever a full second of wall time has accumulated.
type Report struct {
	Seconds float64 // accumulated time at the moment of the report, always >= 1.0
	Cycles  uint64  // ticks counted since the previous report
}

// Timer measures the wall time between polls and reports once per elapsed second.
// It is a reporting cadence, not a fixed timestep: Delta is the raw elapsed time.
type Timer struct {
	now    func() time.Time
	last   time.Time
	delta  float64
	acc    float64
	cycles uint64
}

func New() *Timer {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Timer reading the given clock. Used by tests to drive time manually.
func NewWithClock(now func() time.Time) *Timer {
	return &Timer{now: now, last: now()}
}

// Tick records one poll cycle. When the accumulator reaches one second the
// report is returned and exactly 1.0 is subtracted, keeping the overflow.
// After a stall longer than two seconds the accumulator is still >= 1.0, so
// the following ticks report once each until it has caught up.
func (t *Timer) Tick() (Report, bool) {
	now := t.now()
	elapsed := now.Sub(t.last).Seconds()
	t.last = now

	t.delta = elapsed
	t.acc += elapsed
	t.cycles++

	if t.acc < 1.0 {
		return Report{}, false
	}
	r := Report{Seconds: t.acc, Cycles: t.cycles}
	t.acc -= 1.0
	t.cycles = 0
	return r, true
}

// Delta returns the elapsed seconds measured by the last Tick.
func (t *Timer) Delta() float64 { return t.delta }

// Accumulated returns the seconds accumulated towards the next report.
func (t *Timer) Accumulated() float64 { return t.acc }

// Cycles returns the number of ticks since the last report.
func (t *Timer) Cycles() uint64 { return t.cycles }

// LastTick returns the instant of the last Tick, or of construction before the first one.
func (t *Timer) LastTick() time.Time { return t.last }
