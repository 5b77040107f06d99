package easel

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill for shapes without an explicit color.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts a Color to a premultiplied colorRGBA.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for points, offsets and deltas throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Size is a width/height pair in device pixels.
type Size struct {
	Width, Height float64
}

// Sub returns the component-wise difference s - o.
func (s Size) Sub(o Size) Size { return Size{s.Width - o.Width, s.Height - o.Height} }

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// DefaultViewSize is used by Stage.NewViewSized when a zero size is requested.
var DefaultViewSize = Size{Width: 1024, Height: 768}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{r.Width, r.Height}
}

// EventType identifies a kind of pointer event delivered to tools and items.
type EventType uint8

const (
	EventPress   EventType = iota // pointer pressed (mousedown / touchstart)
	EventDrag                     // pointer moved while pressed
	EventMove                     // pointer moved without drag semantics
	EventRelease                  // pointer released (mouseup / touchend)
	EventClick                    // press then release over the same item
	EventEnter                    // pointer entered an item (ItemMoveEvents only)
	EventLeave                    // pointer left an item (ItemMoveEvents only)
)

var eventNames = [...]string{"press", "drag", "move", "release", "click", "enter", "leave"}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// PointerSource distinguishes the input device behind a pointer event.
// Mouse and touch share one event vocabulary.
type PointerSource uint8

const (
	SourceMouse PointerSource = iota
	SourceTouch
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Configuration errors. These are the only errors the package returns;
// focus exhaustion, stale callbacks and missing tools are silent no-ops.
var (
	ErrInvalidZoom = errors.New("easel: zoom must be greater than zero")
	ErrInvalidSize = errors.New("easel: size must not be negative")
	ErrDuplicateID = errors.New("easel: view id already registered")
	ErrSceneBound  = errors.New("easel: scene is already bound to a view")
	ErrSceneType   = errors.New("easel: scene value is not comparable")
	ErrNilScene    = errors.New("easel: nil scene")
	ErrNilSurface  = errors.New("easel: nil surface")
)

// WhitePixel is a 1x1 white image used to fill solid rectangles.
var WhitePixel *ebiten.Image

// whiteSubImage is the interior texel of a 3x3 white image, used as the
// source for vector triangles so edge filtering never samples transparency.
var whiteSubImage *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())

	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	whiteSubImage = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}
