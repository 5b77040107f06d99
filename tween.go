package easel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewAnim drives up to two tweens from the view's frame ticks.
type viewAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	x, y   float64
	doneX  bool
	doneY  bool
	handle CallbackHandle
}

// step advances both tweens by dt seconds and reports the current values.
func (a *viewAnim) step(dt float32) (x, y float64, done bool) {
	if !a.doneX {
		val, d := a.tweenX.Update(dt)
		a.x = float64(val)
		a.doneX = d
	}
	if a.tweenY != nil && !a.doneY {
		val, d := a.tweenY.Update(dt)
		a.y = float64(val)
		a.doneY = d
	}
	return a.x, a.y, a.doneX && (a.tweenY == nil || a.doneY)
}

// ScrollTo animates the view center to the given scene point over duration
// seconds. The animation advances on frame ticks, so it installs the frame
// loop while running. Ticks with no elapsed time leave the view untouched. A
// later ScrollTo replaces a running one.
func (v *View) ScrollTo(center Vec2, duration float32, easeFn ease.TweenFunc) {
	if v.removed {
		return
	}
	v.stopAnim(&v.scrollAnim)
	if duration <= 0 {
		v.SetCenter(center)
		return
	}
	from := v.Center()
	a := &viewAnim{
		tweenX: gween.New(float32(from.X), float32(center.X), duration, easeFn),
		tweenY: gween.New(float32(from.Y), float32(center.Y), duration, easeFn),
		x:      from.X,
		y:      from.Y,
	}
	v.scrollAnim = a
	a.handle = v.OnFrame(func(e FrameEvent) {
		if v.scrollAnim != a || e.Delta <= 0 {
			return
		}
		x, y, done := a.step(float32(e.Delta))
		if done {
			// Snap to the exact target; float32 tweens round.
			x, y = center.X, center.Y
		}
		v.SetCenter(Vec2{x, y})
		if done {
			v.stopAnim(&v.scrollAnim)
		}
	})
}

// ZoomTo animates the zoom factor to z over duration seconds, anchored on the
// view center at each step. A later ZoomTo replaces a running one.
func (v *View) ZoomTo(z float64, duration float32, easeFn ease.TweenFunc) error {
	if !(z > 0) {
		return v.SetZoom(z)
	}
	if v.removed {
		return nil
	}
	v.stopAnim(&v.zoomAnim)
	if duration <= 0 {
		return v.SetZoom(z)
	}
	a := &viewAnim{
		tweenX: gween.New(float32(v.zoom), float32(z), duration, easeFn),
		x:      v.zoom,
	}
	v.zoomAnim = a
	a.handle = v.OnFrame(func(e FrameEvent) {
		if v.zoomAnim != a || e.Delta <= 0 {
			return
		}
		val, _, done := a.step(float32(e.Delta))
		if done {
			val = z
		}
		if val > 0 {
			_ = v.SetZoom(val)
		}
		if done {
			v.stopAnim(&v.zoomAnim)
		}
	})
	return nil
}

// Animating reports whether a ScrollTo or ZoomTo is running.
func (v *View) Animating() bool {
	return v.scrollAnim != nil || v.zoomAnim != nil
}

// StopAnimation cancels running ScrollTo and ZoomTo animations, leaving the
// view where it is.
func (v *View) StopAnimation() {
	v.stopAnim(&v.scrollAnim)
	v.stopAnim(&v.zoomAnim)
}

func (v *View) stopAnim(slot **viewAnim) {
	a := *slot
	if a == nil {
		return
	}
	*slot = nil
	a.handle.Remove()
}
