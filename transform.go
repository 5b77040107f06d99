package easel

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Matrix is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// IdentityMatrix is the identity affine matrix.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// TranslateMatrix returns a translation by (x, y).
func TranslateMatrix(x, y float64) Matrix {
	return Matrix{1, 0, 0, 1, x, y}
}

// ScaleMatrix returns a scale by (sx, sy) about the origin.
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// ScaleAboutMatrix returns a uniform scale by s that leaves center fixed:
// Translate(center) * Scale(s) * Translate(-center).
func ScaleAboutMatrix(s float64, center Vec2) Matrix {
	return Matrix{s, 0, 0, s, center.X - s*center.X, center.Y - s*center.Y}
}

// Multiply returns m * o. Applied to a point, o acts first, then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Invert returns the inverse of m. If m is singular (determinant ≈ 0) it
// returns the identity matrix and false.
func (m Matrix) Invert() (Matrix, bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// Apply maps p through m.
func (m Matrix) Apply(p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// MapRect returns the axis-aligned bounding box of r's four corners mapped
// through m.
func (m Matrix) MapRect(r Rect) Rect {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width, r.Y+r.Height

	p0 := m.Apply(Vec2{x0, y0})
	p1 := m.Apply(Vec2{x1, y0})
	p2 := m.Apply(Vec2{x1, y1})
	p3 := m.Apply(Vec2{x0, y1})

	minX := math.Min(math.Min(p0.X, p1.X), math.Min(p2.X, p3.X))
	minY := math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y))
	maxX := math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X))
	maxY := math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// GeoM converts m to an ebiten.GeoM for use in draw options.
func (m Matrix) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// Transform owns the scene-to-surface matrix of a View together with a lazily
// built inverse. Every mutation drops the cached inverse and notifies the
// owner.
type Transform struct {
	m        Matrix
	inv      Matrix
	invValid bool
	onChange func()
}

func newTransform(onChange func()) *Transform {
	return &Transform{m: IdentityMatrix, onChange: onChange}
}

// Matrix returns the current scene-to-surface matrix.
func (t *Transform) Matrix() Matrix {
	return t.m
}

// Set replaces the matrix.
func (t *Transform) Set(m Matrix) {
	t.m = m
	t.changed()
}

// Reset restores the identity matrix.
func (t *Transform) Reset() {
	t.Set(IdentityMatrix)
}

// PreConcatenate applies o before the current matrix (M = M * o), so o is
// expressed in scene space.
func (t *Transform) PreConcatenate(o Matrix) {
	t.m = t.m.Multiply(o)
	t.changed()
}

// Inverse returns the surface-to-scene matrix, computing it on first use
// after a mutation.
func (t *Transform) Inverse() Matrix {
	if !t.invValid {
		t.inv, _ = t.m.Invert()
		t.invValid = true
	}
	return t.inv
}

// TransformPoint maps a scene point to surface pixels.
func (t *Transform) TransformPoint(p Vec2) Vec2 {
	return t.m.Apply(p)
}

// InverseTransformPoint maps a surface pixel to scene coordinates.
func (t *Transform) InverseTransformPoint(p Vec2) Vec2 {
	return t.Inverse().Apply(p)
}

// TransformBounds maps a scene rectangle to its surface-space bounding box.
func (t *Transform) TransformBounds(r Rect) Rect {
	return t.m.MapRect(r)
}

func (t *Transform) changed() {
	t.invValid = false
	if t.onChange != nil {
		t.onChange()
	}
}
