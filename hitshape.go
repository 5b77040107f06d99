package easel

import "math"

// HitShape is a hit area in a shape's local coordinates.
type HitShape interface {
	// Contains reports whether (x, y) lies inside the shape.
	Contains(x, y float64) bool
	// OutlineDistance returns the distance from (x, y) to the shape's
	// outline, whether the point is inside or outside.
	OutlineDistance(x, y float64) float64
	// Bounds returns the axis-aligned bounding box.
	Bounds() Rect
}

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// OutlineDistance returns the distance from (x, y) to the rectangle's edges.
func (r HitRect) OutlineDistance(x, y float64) float64 {
	if r.Contains(x, y) {
		return math.Min(
			math.Min(x-r.X, r.X+r.Width-x),
			math.Min(y-r.Y, r.Y+r.Height-y),
		)
	}
	dx := math.Max(math.Max(r.X-x, 0), x-(r.X+r.Width))
	dy := math.Max(math.Max(r.Y-y, 0), y-(r.Y+r.Height))
	return math.Hypot(dx, dy)
}

// Bounds returns the rectangle.
func (r HitRect) Bounds() Rect {
	return Rect{r.X, r.Y, r.Width, r.Height}
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// OutlineDistance returns the distance from (x, y) to the circumference.
func (c HitCircle) OutlineDistance(x, y float64) float64 {
	return math.Abs(math.Hypot(x-c.CenterX, y-c.CenterY) - c.Radius)
}

// Bounds returns the circle's bounding square.
func (c HitCircle) Bounds() Rect {
	return Rect{c.CenterX - c.Radius, c.CenterY - c.Radius, 2 * c.Radius, 2 * c.Radius}
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using
// cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// OutlineDistance returns the distance from (x, y) to the nearest edge.
func (p HitPolygon) OutlineDistance(x, y float64) float64 {
	n := len(p.Points)
	if n == 0 {
		return math.Inf(1)
	}
	if n == 1 {
		return math.Hypot(x-p.Points[0].X, y-p.Points[0].Y)
	}
	best := math.Inf(1)
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		best = math.Min(best, segmentDistance(x, y, a, b))
	}
	return best
}

// Bounds returns the bounding box of the points.
func (p HitPolygon) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.Points[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// segmentDistance returns the distance from (x, y) to segment ab.
func segmentDistance(x, y float64, a, b Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(x-a.X, y-a.Y)
	}
	t := ((x-a.X)*dx + (y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(x-(a.X+t*dx), y-(a.Y+t*dy))
}
