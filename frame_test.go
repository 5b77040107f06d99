package easel

import (
	"testing"
	"time"
)

func TestOnFrameFirstTickIsSynchronous(t *testing.T) {
	s, host := newTestStage(StageConfig{})
	v, _, _ := mustView(t, s, "a", 100, 100)

	var events []FrameEvent
	v.OnFrame(func(e FrameEvent) { events = append(events, e) })

	if len(events) != 1 {
		t.Fatalf("ticks after install = %d, want 1", len(events))
	}
	if events[0] != (FrameEvent{Delta: 0, Time: 0, Count: 0}) {
		t.Errorf("first tick = %+v", events[0])
	}
	if !v.FrameActive() {
		t.Error("frame loop should be active")
	}
	// The initial redraw request plus the next scheduled tick.
	if host.Pending() != 2 {
		t.Errorf("pending = %d, want 2", host.Pending())
	}
}

func TestFrameDeltaTimeCount(t *testing.T) {
	s, host := newTestStage(StageConfig{})
	v, _, _ := mustView(t, s, "a", 100, 100)

	var events []FrameEvent
	v.OnFrame(func(e FrameEvent) { events = append(events, e) })
	host.Advance(100 * time.Millisecond)
	host.Advance(50 * time.Millisecond)

	if len(events) != 3 {
		t.Fatalf("ticks = %d, want 3", len(events))
	}
	tests := []struct {
		delta, time float64
		count       int
	}{
		{0, 0, 0},
		{0.1, 0.1, 1},
		{0.05, 0.15, 2},
	}
	for i, tt := range tests {
		e := events[i]
		if !approxEqual(e.Delta, tt.delta, 1e-9) || !approxEqual(e.Time, tt.time, 1e-9) || e.Count != tt.count {
			t.Errorf("tick %d = %+v, want delta %v time %v count %d", i, e, tt.delta, tt.time, tt.count)
		}
	}
}

func TestFrameUninstallStopsTicks(t *testing.T) {
	s, host := newTestStage(StageConfig{})
	v, _, _ := mustView(t, s, "a", 100, 100)

	ticks := 0
	h := v.OnFrame(func(FrameEvent) { ticks++ })
	h.Remove()
	if v.FrameActive() {
		t.Fatal("loop should be uninstalled")
	}

	// The tick queued before uninstall runs but does nothing.
	host.Advance(time.Millisecond)
	host.Advance(time.Millisecond)
	if ticks != 1 {
		t.Errorf("ticks = %d, want only the install tick", ticks)
	}
	if host.Pending() != 0 {
		t.Errorf("pending = %d, want 0", host.Pending())
	}
}

func TestFrameRemoveViewMidLoop(t *testing.T) {
	s, host := newTestStage(StageConfig{})
	v, _, _ := mustView(t, s, "a", 100, 100)

	ticks := 0
	v.OnFrame(func(e FrameEvent) {
		ticks++
		if e.Count == 1 {
			v.Remove()
		}
	})
	host.Advance(time.Millisecond)
	host.Advance(time.Millisecond)
	host.Advance(time.Millisecond)

	if ticks != 2 {
		t.Errorf("ticks = %d, want 2", ticks)
	}
	if host.Pending() != 0 {
		t.Errorf("pending = %d, want 0", host.Pending())
	}
	if v.FrameActive() {
		t.Error("removed view should have no frame loop")
	}
}

func TestFrameHandlerSelfRemoval(t *testing.T) {
	s, host := newTestStage(StageConfig{})
	v, _, _ := mustView(t, s, "a", 100, 100)

	var calls1, calls2 int
	var h1 CallbackHandle
	h1 = v.OnFrame(func(e FrameEvent) {
		calls1++
		if e.Count == 1 {
			h1.Remove()
		}
	})
	h2 := v.OnFrame(func(FrameEvent) { calls2++ })

	host.Advance(time.Millisecond)
	host.Advance(time.Millisecond)

	if calls1 != 2 {
		t.Errorf("self-removing handler calls = %d, want 2", calls1)
	}
	if calls2 != 2 {
		t.Errorf("other handler calls = %d, want 2", calls2)
	}
	if !v.FrameActive() {
		t.Error("loop should stay active while a handler remains")
	}
	h2.Remove()
	if v.FrameActive() {
		t.Error("loop should stop with the last handler")
	}
}

func TestFrameReinstallResetsCounters(t *testing.T) {
	s, host := newTestStage(StageConfig{})
	v, _, _ := mustView(t, s, "a", 100, 100)

	h := v.OnFrame(func(FrameEvent) {})
	host.Advance(time.Second)
	h.Remove()

	var first FrameEvent
	got := false
	v.OnFrame(func(e FrameEvent) {
		if !got {
			first, got = e, true
		}
	})
	if first != (FrameEvent{}) {
		t.Errorf("first tick after reinstall = %+v, want zero", first)
	}
}

func TestFrameTickRedrawsDirtyView(t *testing.T) {
	s, host := newTestStage(StageConfig{AutoUpdate: boolPtr(false)})
	v, _, sc := mustView(t, s, "a", 100, 100)

	v.OnFrame(func(FrameEvent) { v.ScrollBy(Vec2{1, 0}) })
	host.Advance(time.Millisecond)

	if sc.draws != 2 {
		t.Errorf("draws = %d, want one per tick", sc.draws)
	}
	if v.IsDirty() {
		t.Error("view should be clean after the tick redraw")
	}
}
