package easel

import (
	"fmt"
	"time"
)

// ResizeEvent is delivered to OnResize handlers.
type ResizeEvent struct {
	Size  Size // new surface size
	Delta Size // new size minus old size
}

// View binds one Surface to one Scene and maintains the mapping between
// surface pixels and scene coordinates.
//
// Views are created with Stage.NewView or Stage.NewViewSized and live until
// Remove is called.
type View struct {
	stage     *Stage
	id        string
	surface   Surface
	scene     Scene
	transform *Transform
	zoom      float64
	origin    Vec2
	tool      *Tool

	bounds      Rect
	boundsValid bool

	dirty           bool
	removed         bool
	updateRequested bool

	handlers viewHandlers

	// Frame loop state. frameGen is bumped on every install and uninstall;
	// a scheduled tick that sees a different generation does nothing.
	frameGen     uint64
	frameActive  bool
	frameLast    time.Time
	frameHasLast bool
	frameTime    float64
	frameCount   int

	zoomAnim   *viewAnim
	scrollAnim *viewAnim
}

func newView(stage *Stage, id string, surface Surface, scene Scene) *View {
	v := &View{
		stage:   stage,
		id:      id,
		surface: surface,
		scene:   scene,
		zoom:    1,
		dirty:   true,
	}
	v.transform = newTransform(v.transformChanged)
	return v
}

// ID returns the view's identifier, unique among the stage's live views.
func (v *View) ID() string { return v.id }

// Surface returns the surface the view draws into.
func (v *View) Surface() Surface { return v.surface }

// Scene returns the bound scene, or nil after Remove.
func (v *View) Scene() Scene { return v.scene }

// Stage returns the stage that owns the view.
func (v *View) Stage() *Stage { return v.stage }

// Transform returns the view's scene-to-surface transform. Mutating it marks
// the view dirty just like ScrollBy and SetZoom.
func (v *View) Transform() *Transform { return v.transform }

// IsRemoved reports whether Remove has been called.
func (v *View) IsRemoved() bool { return v.removed }

// IsDirty reports whether a redraw is owed.
func (v *View) IsDirty() bool { return v.dirty }

// MarkDirty flags the view for redraw, e.g. after the scene changed.
func (v *View) MarkDirty() {
	v.changed()
}

// IsVisible reports whether the view is live and its surface is shown.
func (v *View) IsVisible() bool {
	return !v.removed && v.surface.Visible()
}

// Origin returns the host-space position of the surface's top-left corner.
func (v *View) Origin() Vec2 { return v.origin }

// SetOrigin places the surface in host space. Pointer positions are
// host-space and are made surface-relative by subtracting the origin.
func (v *View) SetOrigin(p Vec2) { v.origin = p }

// Tool returns the tool that handles input for this view: the view's own
// tool if set, otherwise the stage's active tool.
func (v *View) Tool() *Tool {
	if v.tool != nil {
		return v.tool
	}
	return v.stage.tool
}

// SetTool overrides the stage's active tool for this view. Pass nil to fall
// back to the stage tool.
func (v *View) SetTool(t *Tool) { v.tool = t }

// ViewSize returns the surface size in pixels.
func (v *View) ViewSize() Size {
	return v.surface.Size()
}

// SetViewSize resizes the surface. Equal sizes are a no-op. Otherwise the
// bounds cache is dropped, the view is marked dirty, resize handlers run, and
// the view redraws immediately whether or not AutoUpdate is set.
func (v *View) SetViewSize(size Size) error {
	if size.Width < 0 || size.Height < 0 {
		Logger().Warn("easel: rejected view size", "view", v.id, "width", size.Width, "height", size.Height)
		return fmt.Errorf("set view size %vx%v: %w", size.Width, size.Height, ErrInvalidSize)
	}
	delta := size.Sub(v.surface.Size())
	if delta.IsZero() {
		return nil
	}
	v.surface.Resize(size)
	v.boundsValid = false
	v.dirty = true
	v.fireResize(ResizeEvent{Size: size, Delta: delta})
	if !v.removed {
		v.Draw(true)
	}
	return nil
}

// Bounds returns the visible area in scene coordinates.
func (v *View) Bounds() Rect {
	if !v.boundsValid {
		s := v.surface.Size()
		v.bounds = v.transform.Inverse().MapRect(Rect{Width: s.Width, Height: s.Height})
		v.boundsValid = true
	}
	return v.bounds
}

// Size returns the size of the visible area in scene units.
func (v *View) Size() Size {
	return v.Bounds().Size()
}

// Center returns the scene point at the center of the surface.
func (v *View) Center() Vec2 {
	return v.Bounds().Center()
}

// SetCenter scrolls so that p is at the center of the surface.
func (v *View) SetCenter(p Vec2) {
	v.ScrollBy(p.Sub(v.Center()))
}

// ScrollBy moves the visible area by delta scene units.
func (v *View) ScrollBy(delta Vec2) {
	v.transform.PreConcatenate(TranslateMatrix(-delta.X, -delta.Y))
}

// Zoom returns the current zoom factor.
func (v *View) Zoom() float64 { return v.zoom }

// SetZoom scales the view about its current center so that the zoom factor
// becomes z.
func (v *View) SetZoom(z float64) error {
	if !(z > 0) {
		Logger().Warn("easel: rejected zoom", "view", v.id, "zoom", z)
		return fmt.Errorf("set zoom %v: %w", z, ErrInvalidZoom)
	}
	if z == v.zoom {
		return nil
	}
	v.transform.PreConcatenate(ScaleAboutMatrix(z/v.zoom, v.Center()))
	v.zoom = z
	return nil
}

// ProjectToView maps a scene point to surface pixels.
func (v *View) ProjectToView(p Vec2) Vec2 {
	return v.transform.TransformPoint(p)
}

// ViewToProject maps a surface pixel to scene coordinates.
func (v *View) ViewToProject(p Vec2) Vec2 {
	return v.transform.InverseTransformPoint(p)
}

// Draw renders the scene. With onlyIfDirty set it does nothing and returns
// false unless a redraw is owed, so any number of changes between two frames
// cost a single draw. Returns true if the scene was drawn.
func (v *View) Draw(onlyIfDirty bool) bool {
	if v.removed || (onlyIfDirty && !v.dirty) {
		return false
	}
	var t0, t1 time.Time
	if v.stage.debug {
		t0 = time.Now()
	}

	ctx := v.surface.Context()
	s := v.surface.Size()
	ctx.ClearRect(Rect{Width: s.Width, Height: s.Height})
	if v.stage.debug {
		t1 = time.Now()
	}

	// Cleared first so changes made while the scene draws are not lost.
	v.dirty = false
	ctx.Save()
	ctx.Transform(v.transform.Matrix())
	v.scene.Draw(ctx)
	ctx.Restore()

	if v.stage.debug {
		v.stage.debugLog(drawStats{
			view:      v.id,
			clearTime: t1.Sub(t0),
			sceneTime: time.Since(t1),
		})
	}
	return true
}

// Remove detaches the view: it loses focus, leaves the registry, stops its
// frame loop and releases its scene. Returns false if already removed.
func (v *View) Remove() bool {
	if v.removed {
		return false
	}
	v.removed = true
	v.stage.detach(v)
	v.uninstallFrame()
	v.handlers = viewHandlers{}
	v.zoomAnim = nil
	v.scrollAnim = nil
	v.scene = nil
	Logger().Debug("easel: view removed", "view", v.id)
	return true
}

func (v *View) transformChanged() {
	v.boundsValid = false
	v.changed()
}

func (v *View) changed() {
	v.dirty = true
	v.requestUpdate()
}

// requestUpdate asks the host for one redraw. Requests coalesce until the
// callback runs.
func (v *View) requestUpdate() {
	if v.removed || v.updateRequested || !v.stage.autoUpdate {
		return
	}
	v.updateRequested = true
	v.stage.host.RequestFrame(func() {
		v.updateRequested = false
		if v.removed {
			return
		}
		v.Draw(true)
	}, v.surface)
}
