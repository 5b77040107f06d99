package easel

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Node is an element of a Layer: a *Group or a *Shape.
type Node interface {
	Item
	hitTest(p Vec2, opts HitOptions) Item
	draw(ctx Context, offset Vec2)
	setParent(g *Group)
}

// itemHandlers is the per-item handler table shared by Group and Shape.
type itemHandlers map[EventType][]func(*ItemEvent) bool

func (h *itemHandlers) on(t EventType, fn func(*ItemEvent) bool) {
	if *h == nil {
		*h = make(itemHandlers)
	}
	(*h)[t] = append((*h)[t], fn)
}

// fire runs every handler for t; handled if any of them returned true.
func (h itemHandlers) fire(t EventType, e *ItemEvent) bool {
	handled := false
	for _, fn := range h[t] {
		if fn(e) {
			handled = true
		}
	}
	return handled
}

// Layer is a Scene made of nested groups of shapes. Shapes added later are
// drawn on top and hit first.
type Layer struct {
	root *Group
}

// NewLayer creates an empty layer.
func NewLayer() *Layer {
	return &Layer{root: NewGroup("root")}
}

// Root returns the top-level group.
func (l *Layer) Root() *Group { return l.root }

// Add appends nodes to the root group.
func (l *Layer) Add(nodes ...Node) {
	l.root.Add(nodes...)
}

// Draw renders every visible shape through the context matrix.
func (l *Layer) Draw(ctx Context) {
	l.root.draw(ctx, Vec2{})
}

// HitTest returns the topmost shape at p, or nil.
func (l *Layer) HitTest(p Vec2, opts HitOptions) Item {
	return l.root.hitTest(p, opts)
}

// Group is a node that contains other nodes. It offsets its children by
// (X, Y) and receives events bubbling up from them.
type Group struct {
	Name    string
	X, Y    float64
	Visible bool

	parent   *Group
	children []Node
	handlers itemHandlers
}

// NewGroup creates a visible, empty group.
func NewGroup(name string) *Group {
	return &Group{Name: name, Visible: true}
}

// Add appends nodes, detaching each from its previous group.
func (g *Group) Add(nodes ...Node) {
	for _, n := range nodes {
		if prev := n.Parent(); prev != nil {
			if pg, ok := prev.(*Group); ok {
				pg.Remove(n)
			}
		}
		n.setParent(g)
		g.children = append(g.children, n)
	}
}

// Remove detaches n. Returns false if n is not a child.
func (g *Group) Remove(n Node) bool {
	for i, c := range g.children {
		if c == n {
			g.children = append(g.children[:i], g.children[i+1:]...)
			n.setParent(nil)
			return true
		}
	}
	return false
}

// Children returns the child nodes in paint order. The returned slice MUST NOT
// be mutated.
func (g *Group) Children() []Node { return g.children }

// On registers fn for events of type t reaching this group.
func (g *Group) On(t EventType, fn func(*ItemEvent) bool) {
	g.handlers.on(t, fn)
}

// Fire runs the group's handlers for t.
func (g *Group) Fire(t EventType, e *ItemEvent) bool {
	return g.handlers.fire(t, e)
}

// Parent returns the enclosing group, or nil.
func (g *Group) Parent() Item {
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *Group) setParent(p *Group) { g.parent = p }

func (g *Group) hitTest(p Vec2, opts HitOptions) Item {
	if !g.Visible {
		return nil
	}
	local := Vec2{p.X - g.X, p.Y - g.Y}
	for i := len(g.children) - 1; i >= 0; i-- {
		if hit := g.children[i].hitTest(local, opts); hit != nil {
			return hit
		}
	}
	return nil
}

func (g *Group) draw(ctx Context, offset Vec2) {
	if !g.Visible {
		return
	}
	offset = Vec2{offset.X + g.X, offset.Y + g.Y}
	for _, c := range g.children {
		c.draw(ctx, offset)
	}
}

// Shape is a filled and/or stroked hit area. A zero Fill alpha means no
// fill; a zero StrokeWidth means no stroke. Only painted parts are hit.
type Shape struct {
	Name        string
	X, Y        float64
	Hit         HitShape
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	Visible     bool
	EntityID    uint32

	parent   *Group
	handlers itemHandlers
}

// NewShape creates a visible shape with a white fill.
func NewShape(name string, hit HitShape) *Shape {
	return &Shape{Name: name, Hit: hit, Fill: ColorWhite, Visible: true}
}

// SetPosition moves the shape within its group.
func (s *Shape) SetPosition(x, y float64) {
	s.X = x
	s.Y = y
}

// On registers fn for events of type t delivered to this shape.
func (s *Shape) On(t EventType, fn func(*ItemEvent) bool) {
	s.handlers.on(t, fn)
}

// Fire runs the shape's handlers for t.
func (s *Shape) Fire(t EventType, e *ItemEvent) bool {
	return s.handlers.fire(t, e)
}

// Parent returns the enclosing group, or nil.
func (s *Shape) Parent() Item {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

// Entity returns the ECS entity id forwarded with interaction events.
func (s *Shape) Entity() uint32 { return s.EntityID }

func (s *Shape) setParent(p *Group) { s.parent = p }

func (s *Shape) filled() bool  { return s.Fill.A > 0 }
func (s *Shape) stroked() bool { return s.StrokeWidth > 0 && s.Stroke.A > 0 }

func (s *Shape) hitTest(p Vec2, opts HitOptions) Item {
	if !s.Visible || s.Hit == nil {
		return nil
	}
	lx, ly := p.X-s.X, p.Y-s.Y
	if opts.Fill && s.filled() {
		if s.Hit.Contains(lx, ly) {
			return s
		}
		if opts.Tolerance > 0 && s.Hit.OutlineDistance(lx, ly) <= opts.Tolerance {
			return s
		}
	}
	if opts.Stroke && s.stroked() {
		if s.Hit.OutlineDistance(lx, ly) <= s.StrokeWidth/2+opts.Tolerance {
			return s
		}
	}
	return nil
}

func (s *Shape) draw(ctx Context, offset Vec2) {
	target := ctx.Target()
	if !s.Visible || s.Hit == nil || target == nil {
		return
	}
	m := ctx.Matrix().Multiply(TranslateMatrix(offset.X+s.X, offset.Y+s.Y))

	if s.filled() {
		if r, ok := s.Hit.(HitRect); ok {
			fillRect(target, m, r, s.Fill)
		} else if path := shapePath(s.Hit); path != nil {
			vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
			drawPathTriangles(target, m, vs, is, s.Fill)
		}
	}
	if s.stroked() {
		if path := shapePath(s.Hit); path != nil {
			opts := &vector.StrokeOptions{
				Width:    float32(s.StrokeWidth),
				LineJoin: vector.LineJoinMiter,
			}
			vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, opts)
			drawPathTriangles(target, m, vs, is, s.Stroke)
		}
	}
}

// fillRect draws r by stretching the white pixel, which stays exact under
// any affine view matrix.
func fillRect(target *ebiten.Image, m Matrix, r HitRect, c Color) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.GeoM.Concat(m.GeoM())
	op.ColorScale.ScaleWithColor(c.toRGBA())
	target.DrawImage(WhitePixel, &op)
}

// shapePath builds the outline of a built-in hit shape in local coordinates.
func shapePath(h HitShape) *vector.Path {
	var path vector.Path
	switch sh := h.(type) {
	case HitRect:
		path.MoveTo(float32(sh.X), float32(sh.Y))
		path.LineTo(float32(sh.X+sh.Width), float32(sh.Y))
		path.LineTo(float32(sh.X+sh.Width), float32(sh.Y+sh.Height))
		path.LineTo(float32(sh.X), float32(sh.Y+sh.Height))
		path.Close()
	case HitCircle:
		path.Arc(float32(sh.CenterX), float32(sh.CenterY), float32(sh.Radius), 0, 2*math.Pi, vector.Clockwise)
		path.Close()
	case HitPolygon:
		if len(sh.Points) < 2 {
			return nil
		}
		path.MoveTo(float32(sh.Points[0].X), float32(sh.Points[0].Y))
		for _, pt := range sh.Points[1:] {
			path.LineTo(float32(pt.X), float32(pt.Y))
		}
		path.Close()
	default:
		b := h.Bounds()
		return shapePath(HitRect(b))
	}
	return &path
}

// drawPathTriangles maps path vertices from local to surface space and draws
// them in a flat color.
func drawPathTriangles(target *ebiten.Image, m Matrix, vs []ebiten.Vertex, is []uint16, c Color) {
	r := float32(c.R * c.A)
	g := float32(c.G * c.A)
	b := float32(c.B * c.A)
	a := float32(c.A)
	for i := range vs {
		p := m.Apply(Vec2{float64(vs[i].DstX), float64(vs[i].DstY)})
		vs[i].DstX = float32(p.X)
		vs[i].DstY = float32(p.Y)
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	target.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{})
}
