package easel

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestManualHostStepRunsQueuedBatch(t *testing.T) {
	h := NewManualHost(time.Unix(0, 0))
	var order []int
	h.RequestFrame(func() {
		order = append(order, 1)
		h.RequestFrame(func() { order = append(order, 3) }, nil)
	}, nil)
	h.RequestFrame(func() { order = append(order, 2) }, nil)

	if n := h.Step(time.Unix(1, 0)); n != 2 {
		t.Errorf("Step ran %d callbacks, want 2", n)
	}
	if len(order) != 2 || h.Pending() != 1 {
		t.Fatalf("order=%v pending=%d", order, h.Pending())
	}
	h.Advance(time.Second)
	if len(order) != 3 || order[2] != 3 {
		t.Errorf("order = %v", order)
	}
	if !h.Now().Equal(time.Unix(2, 0)) {
		t.Errorf("Now = %v, want 2s", h.Now())
	}
}

func TestManualHostSetNow(t *testing.T) {
	h := NewManualHost(time.Unix(0, 0))
	ran := false
	h.RequestFrame(func() { ran = true }, nil)
	h.SetNow(time.Unix(5, 0))
	if ran || !h.Now().Equal(time.Unix(5, 0)) {
		t.Error("SetNow should move the clock without running callbacks")
	}
}

func newEbitenTestStage(t *testing.T) (*EbitenHost, *Stage) {
	t.Helper()
	h := NewEbitenHost(RunConfig{Width: 200, Height: 100})
	s := NewStage(StageConfig{Host: h, Surfaces: fakeSurfaces})
	h.Attach(s)
	return h, s
}

func TestEbitenHostSurfaceAt(t *testing.T) {
	h, s := newEbitenTestStage(t)
	a, _, _ := mustView(t, s, "a", 100, 100)
	b, bs, _ := mustView(t, s, "b", 100, 100)
	b.SetOrigin(Vec2{50, 0})
	_ = a

	tests := []struct {
		p    Vec2
		want string
	}{
		{Vec2{10, 10}, "a"},
		{Vec2{75, 10}, "b"}, // overlap: later view is on top
		{Vec2{140, 10}, "b"},
		{Vec2{190, 10}, ""},
	}
	for _, tt := range tests {
		if got := h.SurfaceAt(tt.p); got != tt.want {
			t.Errorf("SurfaceAt(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}

	bs.hidden = true
	if got := h.SurfaceAt(Vec2{75, 10}); got != "a" {
		t.Errorf("hidden view should not be hit, got %q", got)
	}
}

func TestEbitenHostLayoutResolvesFocus(t *testing.T) {
	h, s := newEbitenTestStage(t)
	_, as, _ := mustView(t, s, "a", 100, 100)
	b, _, _ := mustView(t, s, "b", 100, 100)

	as.hidden = true
	w, hh := h.Layout(640, 480)
	if w != 200 || hh != 100 {
		t.Errorf("Layout = %dx%d, want configured 200x100", w, hh)
	}
	if s.Focused() != b {
		t.Errorf("Focused = %v, want b", s.Focused())
	}
}

func TestEbitenHostLayoutUsesOutsideSize(t *testing.T) {
	h := NewEbitenHost(RunConfig{})
	if w, hh := h.Layout(640, 480); w != 640 || hh != 480 {
		t.Errorf("Layout = %dx%d, want 640x480", w, hh)
	}
}

func TestEbitenHostRequestFrame(t *testing.T) {
	h, _ := newEbitenTestStage(t)
	ran := 0
	h.RequestFrame(func() { ran++ }, nil)
	if runPending(&h.pending) != 1 || ran != 1 || len(h.pending) != 0 {
		t.Errorf("ran=%d pending=%d", ran, len(h.pending))
	}
}

func TestEbitenHostFeedPointerEdges(t *testing.T) {
	h, s := newEbitenTestStage(t)
	mustView(t, s, "a", 100, 100)
	var log []ToolEvent
	s.SetActiveTool(recordTool(&log))

	var ps hostPointer
	steps := []struct {
		pos     Vec2
		pressed bool
		button  MouseButton
	}{
		{Vec2{5, 5}, false, MouseButtonLeft}, // first sighting: move
		{Vec2{5, 5}, false, MouseButtonLeft}, // unchanged: nothing
		{Vec2{5, 5}, true, MouseButtonRight}, // press
		{Vec2{9, 5}, true, MouseButtonRight}, // drag
		{Vec2{9, 5}, false, MouseButtonLeft}, // release
	}
	for _, st := range steps {
		h.feedPointer(&ps, 0, SourceMouse, st.pos, st.pressed, st.button, 0)
	}

	want := []EventType{EventMove, EventPress, EventDrag, EventRelease}
	if len(log) != len(want) {
		t.Fatalf("deliveries = %d, want %d", len(log), len(want))
	}
	for i, typ := range want {
		if log[i].Type != typ {
			t.Errorf("delivery %d = %v, want %v", i, log[i].Type, typ)
		}
	}
	if log[3].Pointer.Button != MouseButtonRight {
		t.Error("release should report the pressed button")
	}
}

func TestTouchSlots(t *testing.T) {
	h := NewEbitenHost(RunConfig{})
	s1 := h.touchSlot(11)
	s2 := h.touchSlot(22)
	if s1 != 1 || s2 != 2 || h.touchSlot(11) != 1 {
		t.Errorf("slots = %d, %d", s1, s2)
	}
	for i := 3; i < maxPointers; i++ {
		h.touchSlot(ebiten.TouchID(100 + i))
	}
	if got := h.touchSlot(999); got != -1 {
		t.Errorf("full table slot = %d, want -1", got)
	}
}
