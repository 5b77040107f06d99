package easel

import "time"

// Host supplies the repeating-callback primitive and the clock that drive
// redraws and frame ticks.
type Host interface {
	// RequestFrame schedules fn to run once at the host's next frame
	// boundary. Timing is not guaranteed. surface names the surface the
	// callback is for and may be used by the host as a scheduling hint.
	RequestFrame(fn func(), surface Surface)
	// Now returns the current time.
	Now() time.Time
}

// ManualHost is a deterministic Host. Callbacks accumulate until Step runs
// them, and the clock only moves when Step or SetNow is called.
type ManualHost struct {
	now     time.Time
	pending []func()
}

// NewManualHost returns a ManualHost whose clock starts at start.
func NewManualHost(start time.Time) *ManualHost {
	return &ManualHost{now: start}
}

// RequestFrame queues fn.
func (h *ManualHost) RequestFrame(fn func(), _ Surface) {
	h.pending = append(h.pending, fn)
}

// Now returns the host clock.
func (h *ManualHost) Now() time.Time {
	return h.now
}

// SetNow moves the host clock without running callbacks.
func (h *ManualHost) SetNow(t time.Time) {
	h.now = t
}

// Pending returns the number of queued callbacks.
func (h *ManualHost) Pending() int {
	return len(h.pending)
}

// Step sets the clock to now and runs every callback queued before the call.
// Callbacks queued while stepping run on the next Step. Returns the number
// of callbacks run.
func (h *ManualHost) Step(now time.Time) int {
	h.now = now
	return runPending(&h.pending)
}

// Advance is Step(Now() + d).
func (h *ManualHost) Advance(d time.Duration) int {
	return h.Step(h.now.Add(d))
}

// runPending swaps the queue out before running it so callbacks that
// re-request land in the next batch.
func runPending(queue *[]func()) int {
	batch := *queue
	if len(batch) == 0 {
		return 0
	}
	*queue = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
