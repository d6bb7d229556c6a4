package scrollview

import "time"

// scrollEndDelay is the quiet period after the last scroll signal before the
// gesture is considered finished.
const scrollEndDelay = 100 * time.Millisecond

// timeNow is a test hook for deterministic timestamps.
var timeNow = time.Now

// tracker is the per-instance gesture state machine. It decides which scroll
// signals turn into emissions under the throttle policy and owns the debounced
// end detection.
//
// End detection uses a generation counter: every accepted signal bumps the
// generation and schedules a fresh delayed timeout carrying it. A timeout
// whose generation is stale was superseded by a newer signal and is ignored,
// which re-arms the quiet-period timer without a cancellable timer handle.
// Invariant: scrolling is true exactly while the current-generation timeout is
// outstanding.
type tracker struct {
	scrolling bool
	lastTick  time.Time
	endGen    uint64
	throttle  time.Duration
}

// signal records a qualifying scroll occurrence. It reports whether an event
// should be emitted now and the generation the caller must schedule the end
// timeout with.
//
// The first signal of a gesture always emits (start). Subsequent signals emit
// only when the throttle interval has elapsed since the last emission; a
// throttle of zero or less suppresses all mid-gesture ticks.
func (t *tracker) signal() (emit bool, gen uint64) {
	t.endGen++
	if !t.scrolling {
		t.scrolling = true
		t.lastTick = timeNow()
		return true, t.endGen
	}
	now := timeNow()
	if t.throttle > 0 && now.Sub(t.lastTick) >= t.throttle {
		t.lastTick = now
		return true, t.endGen
	}
	return false, t.endGen
}

// timeout resolves an elapsed end-detection timer. A valid timeout ends the
// gesture and reports that the final position must be emitted regardless of
// throttle; stale generations are no-ops.
func (t *tracker) timeout(gen uint64) (emit bool) {
	if !t.scrolling || gen != t.endGen {
		return false
	}
	t.scrolling = false
	t.lastTick = timeNow()
	return true
}

// reset cancels any in-progress gesture without emitting. Used on mode switch
// and teardown so no event fires after the listeners are gone.
func (t *tracker) reset() {
	t.scrolling = false
	t.endGen++
}
