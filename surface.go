package easel

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the device-pixel drawing target a View wraps.
type Surface interface {
	// ID identifies the surface. Pointer events name their target by it.
	// An empty ID lets the stage assign one.
	ID() string
	Size() Size
	Resize(size Size)
	// Visible reports whether the surface is currently shown. Invisible
	// surfaces are skipped when focus falls back to another view.
	Visible() bool
	Context() Context
}

// Context is the 2D drawing context of a Surface.
type Context interface {
	ClearRect(r Rect)
	Save()
	Restore()
	// Transform pre-multiplies m onto the current matrix.
	Transform(m Matrix)
	// Matrix returns the current scene-to-pixel matrix.
	Matrix() Matrix
	// Target is the image scenes draw into. It may be nil for surfaces that
	// are not backed by ebiten.
	Target() *ebiten.Image
}

// SurfaceProvider creates a surface of the given size.
type SurfaceProvider func(id string, size Size) Surface

// ImageSurface is a Surface backed by an *ebiten.Image.
type ImageSurface struct {
	id      string
	size    Size
	visible bool
	img     *ebiten.Image
	ctx     imageContext
}

// NewImageSurface allocates an ebiten image of the given size. It satisfies
// SurfaceProvider.
func NewImageSurface(id string, size Size) Surface {
	s := &ImageSurface{id: id, visible: true}
	s.Resize(size)
	return s
}

// ID returns the surface id.
func (s *ImageSurface) ID() string { return s.id }

// Size returns the surface dimensions in pixels.
func (s *ImageSurface) Size() Size { return s.size }

// Visible reports whether the surface is shown.
func (s *ImageSurface) Visible() bool { return s.visible }

// SetVisible shows or hides the surface.
func (s *ImageSurface) SetVisible(v bool) { s.visible = v }

// Image returns the backing image.
func (s *ImageSurface) Image() *ebiten.Image { return s.img }

// Resize re-allocates the backing image. Pixel contents are not preserved.
func (s *ImageSurface) Resize(size Size) {
	w, h := int(size.Width), int(size.Height)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if s.img != nil {
		s.img.Deallocate()
	}
	s.img = ebiten.NewImage(w, h)
	s.size = size
	s.ctx = imageContext{target: s.img, m: IdentityMatrix}
}

// Context returns the drawing context for the current backing image.
func (s *ImageSurface) Context() Context { return &s.ctx }

// imageContext keeps a matrix stack over an ebiten image. Scenes read the
// matrix and draw with it; ebiten itself has no implicit transform state.
type imageContext struct {
	target *ebiten.Image
	m      Matrix
	stack  []Matrix
}

func (c *imageContext) ClearRect(r Rect) {
	b := c.target.Bounds()
	rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height)).Intersect(b)
	if rect.Empty() {
		return
	}
	if rect == b {
		c.target.Clear()
		return
	}
	c.target.SubImage(rect).(*ebiten.Image).Clear()
}

func (c *imageContext) Save() {
	c.stack = append(c.stack, c.m)
}

func (c *imageContext) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.m = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *imageContext) Transform(m Matrix) {
	c.m = c.m.Multiply(m)
}

func (c *imageContext) Matrix() Matrix {
	return c.m
}

func (c *imageContext) Target() *ebiten.Image {
	return c.target
}
