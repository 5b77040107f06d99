package easel

import (
	"math"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecApprox(a, b Vec2, eps float64) bool {
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps)
}

func boolPtr(b bool) *bool { return &b }

// fakeContext records clears and keeps a matrix stack without an image.
type fakeContext struct {
	m      Matrix
	stack  []Matrix
	clears []Rect
}

func (c *fakeContext) ClearRect(r Rect) { c.clears = append(c.clears, r) }
func (c *fakeContext) Save()            { c.stack = append(c.stack, c.m) }
func (c *fakeContext) Restore() {
	if n := len(c.stack); n > 0 {
		c.m = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}
func (c *fakeContext) Transform(m Matrix)    { c.m = c.m.Multiply(m) }
func (c *fakeContext) Matrix() Matrix        { return c.m }
func (c *fakeContext) Target() *ebiten.Image { return nil }

type fakeSurface struct {
	id      string
	size    Size
	hidden  bool
	resizes int
	ctx     fakeContext
}

func newFakeSurface(id string, w, h float64) *fakeSurface {
	return &fakeSurface{id: id, size: Size{w, h}, ctx: fakeContext{m: IdentityMatrix}}
}

func (s *fakeSurface) ID() string       { return s.id }
func (s *fakeSurface) Size() Size       { return s.size }
func (s *fakeSurface) Resize(size Size) { s.size = size; s.resizes++ }
func (s *fakeSurface) Visible() bool    { return !s.hidden }
func (s *fakeSurface) Context() Context { return &s.ctx }

func fakeSurfaces(id string, size Size) Surface {
	return newFakeSurface(id, size.Width, size.Height)
}

// fakeScene hit-tests a flat list of rect items, topmost last.
type fakeScene struct {
	draws      int
	lastMatrix Matrix
	items      []*fakeItem
}

func (s *fakeScene) Draw(ctx Context) {
	s.draws++
	s.lastMatrix = ctx.Matrix()
}

func (s *fakeScene) HitTest(p Vec2, _ HitOptions) Item {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].rect.Contains(p.X, p.Y) {
			return s.items[i]
		}
	}
	return nil
}

type fakeItem struct {
	name   string
	rect   Rect
	parent *fakeItem
	entity uint32
	log    *[]string
	handle func(t EventType, e *ItemEvent) bool
}

func (it *fakeItem) Fire(t EventType, e *ItemEvent) bool {
	if it.log != nil {
		*it.log = append(*it.log, it.name+":"+t.String())
	}
	if it.handle != nil {
		return it.handle(t, e)
	}
	return false
}

func (it *fakeItem) Parent() Item {
	if it.parent == nil {
		return nil
	}
	return it.parent
}

func (it *fakeItem) Entity() uint32 { return it.entity }

type fakeStore struct {
	events []InteractionEvent
}

func (s *fakeStore) EmitEvent(e InteractionEvent) { s.events = append(s.events, e) }

func newTestStage(cfg StageConfig) (*Stage, *ManualHost) {
	host := NewManualHost(time.Unix(1000, 0))
	cfg.Host = host
	if cfg.Surfaces == nil {
		cfg.Surfaces = fakeSurfaces
	}
	return NewStage(cfg), host
}

func mustView(t *testing.T, s *Stage, id string, w, h float64) (*View, *fakeSurface, *fakeScene) {
	t.Helper()
	surf := newFakeSurface(id, w, h)
	sc := &fakeScene{}
	v, err := s.NewView(surf, sc)
	if err != nil {
		t.Fatalf("NewView(%q): %v", id, err)
	}
	return v, surf, sc
}

func ptr(typ EventType, surface string, x, y float64) *PointerEvent {
	return &PointerEvent{Type: typ, SurfaceID: surface, Pos: Vec2{x, y}}
}
