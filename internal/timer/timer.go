package timer

import (
	"time"

	"github.com/verte-zerg/sylla/internal/model"
)

// State is the timer lifecycle state.
type State int

// Timer states.
const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateFinalized
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinalized:
		return "finalized"
	default:
		return "idle"
	}
}

// Timer tracks one in-progress study interval. The host event loop is
// responsible for calling Tick once per second while the timer is running;
// Tick itself ignores any other state, so a tick scheduled before a pause
// cannot land after it.
type Timer struct {
	clock     Clock
	state     State
	prevState State
	startTime time.Time
	elapsed   int
	onChange  func(int)
}

// New constructs an idle timer. A nil clock falls back to the system clock.
func New(clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timer{clock: clock}
}

// OnChange registers a callback fired whenever the elapsed seconds change.
func (t *Timer) OnChange(fn func(elapsedSeconds int)) {
	t.onChange = fn
}

// Start begins or resumes the interval. The wall-clock start time is
// captured only on the very first start, never on resumes. No-op while
// already running or after Finalize.
func (t *Timer) Start() {
	switch t.state {
	case StateIdle:
		t.startTime = t.clock.Now()
		t.state = StateRunning
	case StatePaused:
		t.state = StateRunning
	}
}

// Tick advances the elapsed time by one second. Only counts while running.
func (t *Timer) Tick() {
	if t.state != StateRunning {
		return
	}
	t.elapsed++
	t.notify()
}

// Pause freezes the elapsed time. No-op unless running.
func (t *Timer) Pause() {
	if t.state != StateRunning {
		return
	}
	t.state = StatePaused
}

// Finalize produces the completed interval snapshot and moves the timer to
// the finalized state. The prior state is retained so Unfinalize can revert
// if persisting the interval fails. The second return is false when there
// is no live interval to finalize.
func (t *Timer) Finalize() (model.SessionInterval, bool) {
	if t.state != StateRunning && t.state != StatePaused {
		return model.SessionInterval{}, false
	}
	now := t.clock.Now()
	start := t.startTime
	if start.IsZero() {
		start = now.Add(-time.Duration(t.elapsed) * time.Second)
	}
	t.prevState = t.state
	t.state = StateFinalized
	return model.SessionInterval{
		StartTime:      start,
		EndTime:        now,
		ElapsedSeconds: t.elapsed,
	}, true
}

// Unfinalize restores the pre-finalize state with the same elapsed time and
// start time. Callers use it when persisting the finalized interval fails.
func (t *Timer) Unfinalize() {
	if t.state != StateFinalized {
		return
	}
	t.state = t.prevState
}

// Reset discards the interval and returns the timer to idle.
func (t *Timer) Reset() {
	t.state = StateIdle
	t.prevState = StateIdle
	t.startTime = time.Time{}
	if t.elapsed != 0 {
		t.elapsed = 0
		t.notify()
	}
}

// State returns the current lifecycle state.
func (t *Timer) State() State {
	return t.state
}

// Elapsed returns the whole seconds spent running so far.
func (t *Timer) Elapsed() int {
	return t.elapsed
}

// StartTime returns the wall-clock first start, zero if never started.
func (t *Timer) StartTime() time.Time {
	return t.startTime
}

func (t *Timer) notify() {
	if t.onChange != nil {
		t.onChange(t.elapsed)
	}
}
