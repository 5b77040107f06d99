package easel

// PointerEvent is one raw pointer event. Mouse and touch input share it.
type PointerEvent struct {
	Type EventType // EventPress, EventMove or EventRelease
	// SurfaceID names the surface under the pointer, or "" when the pointer
	// is over none of them.
	SurfaceID string
	// Pos is the pointer position in host space. Views subtract their
	// Origin to get surface pixels.
	Pos       Vec2
	Source    PointerSource
	PointerID int
	Button    MouseButton
	Modifiers KeyModifiers

	prevented bool
}

// PreventDefault asks the host to skip its default handling of the event.
func (e *PointerEvent) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool { return e.prevented }

// Dispatcher routes the stage's single pointer stream to views, scene items
// and tools. It is either idle or dragging; a drag starts on press and ends
// only on release.
type Dispatcher struct {
	stage *Stage

	dragging  bool
	lastPoint Vec2 // valid only while dragging
	downPoint Vec2
	dragCount int

	pressItem Item
	pressView *View

	hoverItem Item
	hoverView *View
}

func newDispatcher(stage *Stage) *Dispatcher {
	return &Dispatcher{stage: stage}
}

// Dragging reports whether a press is in progress.
func (d *Dispatcher) Dragging() bool { return d.dragging }

// LastPoint returns the last scene position seen during the current drag.
// ok is false when idle.
func (d *Dispatcher) LastPoint() (p Vec2, ok bool) {
	if !d.dragging {
		return Vec2{}, false
	}
	return d.lastPoint, true
}

// Dispatch routes e by its Type. It reports whether the event caused a view
// to redraw.
func (d *Dispatcher) Dispatch(e *PointerEvent) bool {
	switch e.Type {
	case EventPress:
		return d.Press(e)
	case EventMove, EventDrag:
		return d.Move(e)
	case EventRelease:
		return d.Release(e)
	}
	return false
}

// Press gives the view under the pointer sticky focus, starts a drag, and
// delivers the press both to the scene item under the pointer and to the
// view's tool. Either delivery reporting a change forces a redraw.
func (d *Dispatcher) Press(e *PointerEvent) bool {
	reg := d.stage.registry
	v := reg.View(e.SurfaceID)
	if v == nil {
		return false
	}
	reg.setStickyFocus(v)
	p := v.ViewToProject(e.Pos.Sub(v.origin))

	d.dragging = true
	d.lastPoint = p
	d.downPoint = p
	d.dragCount = 0

	update := false
	hit := v.scene.HitTest(p, d.stage.hitOptions)
	d.pressItem, d.pressView = hit, v
	if hit != nil {
		if d.fireItem(v, hit, EventPress, p, Vec2{}, e, d.stage.bubble) {
			update = true
		}
	}
	// A handler may have removed the view.
	if v.removed {
		return false
	}
	if t := v.Tool(); t != nil {
		te := &ToolEvent{Point: p, LastPoint: p, DownPoint: p, View: v, Pointer: e}
		if d.fireTool(t, EventPress, te) {
			update = true
		}
	}
	if update {
		return v.Draw(false)
	}
	return false
}

// Move updates hover focus when idle, then delivers the move to the
// effective view's tool: as a drag while dragging, unless the tool only
// handles moves, and as a move otherwise.
func (d *Dispatcher) Move(e *PointerEvent) bool {
	reg := d.stage.registry
	var target *View
	if !d.dragging {
		target = reg.View(e.SurfaceID)
		if target != nil {
			reg.setTempFocus(target)
		} else if reg.tempFocus != nil && reg.tempFocus == reg.focused {
			reg.clearTempFocus()
			reg.ResolveFocus()
		}
	}
	v := target
	if v == nil {
		v = reg.focused
	}
	if v == nil {
		return false
	}
	p := v.ViewToProject(e.Pos.Sub(v.origin))
	last := d.lastPoint

	update := false
	if d.stage.itemMoveEvents {
		update = d.moveItems(v, p, last, e)
		if v.removed {
			return false
		}
	}
	if d.dragging {
		d.lastPoint = p
	}

	t := v.Tool()
	if t == nil {
		if update {
			return v.Draw(false)
		}
		return false
	}

	te := &ToolEvent{Point: p, LastPoint: p, DownPoint: p, View: v, Pointer: e}
	typ := EventMove
	if d.dragging {
		te.LastPoint = last
		te.DownPoint = d.downPoint
		te.Delta = p.Sub(last)
		if !t.moveOnly() {
			typ = EventDrag
			d.dragCount++
			te.Count = d.dragCount
		}
	}
	if d.fireTool(t, typ, te) {
		e.PreventDefault()
		update = true
	}
	if update {
		return v.Draw(false)
	}
	return false
}

// Release ends the drag and delivers the release to the focused view's tool.
// It does nothing unless a drag is in progress and a view has focus.
func (d *Dispatcher) Release(e *PointerEvent) bool {
	v := d.stage.registry.focused
	if !d.dragging || v == nil {
		return false
	}
	p := v.ViewToProject(e.Pos.Sub(v.origin))
	te := &ToolEvent{
		Point:     p,
		LastPoint: d.lastPoint,
		DownPoint: d.downPoint,
		Delta:     p.Sub(d.lastPoint),
		Count:     d.dragCount,
		View:      v,
		Pointer:   e,
	}
	pressItem, pressView := d.pressItem, d.pressView
	d.endDrag()

	update := false
	if hit := v.scene.HitTest(p, d.stage.hitOptions); hit != nil {
		if d.fireItem(v, hit, EventRelease, p, te.Delta, e, d.stage.bubble) {
			update = true
		}
		if !v.removed && hit == pressItem && v == pressView {
			if d.fireItem(v, hit, EventClick, p, Vec2{}, e, d.stage.bubble) {
				update = true
			}
		}
	}
	if v.removed {
		return false
	}
	if t := v.Tool(); t != nil && d.fireTool(t, EventRelease, te) {
		e.PreventDefault()
		update = true
	}
	if update {
		return v.Draw(false)
	}
	return false
}

// SelectStart suppresses the platform's text selection while dragging.
// It reports whether the event was suppressed.
func (d *Dispatcher) SelectStart(e *PointerEvent) bool {
	if !d.dragging {
		return false
	}
	e.PreventDefault()
	return true
}

func (d *Dispatcher) endDrag() {
	d.dragging = false
	d.lastPoint = Vec2{}
	d.downPoint = Vec2{}
	d.dragCount = 0
	d.pressItem = nil
	d.pressView = nil
}

// forget drops references to a view that is being removed.
func (d *Dispatcher) forget(v *View, wasFocused bool) {
	if d.pressView == v {
		d.pressItem, d.pressView = nil, nil
	}
	if d.hoverView == v {
		d.hoverItem, d.hoverView = nil, nil
	}
	// Nothing can end the drag once the focused view is gone.
	if wasFocused && d.dragging {
		d.endDrag()
	}
}

func (d *Dispatcher) reset() {
	d.endDrag()
	d.hoverItem, d.hoverView = nil, nil
}

// moveItems delivers item-level move events: a drag to the pressed item
// while dragging, otherwise enter/leave on hover changes and a move to the
// item under the pointer.
func (d *Dispatcher) moveItems(v *View, p, last Vec2, e *PointerEvent) bool {
	if d.dragging {
		if d.pressItem == nil || d.pressView != v {
			return false
		}
		return d.fireItem(v, d.pressItem, EventDrag, p, p.Sub(last), e, d.stage.bubble)
	}

	update := false
	hit := v.scene.HitTest(p, d.stage.hitOptions)
	if hit != d.hoverItem || v != d.hoverView {
		if d.hoverItem != nil && d.hoverView != nil && !d.hoverView.removed {
			if d.fireItem(d.hoverView, d.hoverItem, EventLeave, p, Vec2{}, e, false) {
				update = true
			}
		}
		d.hoverItem, d.hoverView = hit, v
		if hit != nil && d.fireItem(v, hit, EventEnter, p, Vec2{}, e, false) {
			update = true
		}
	}
	if hit != nil && !v.removed && d.fireItem(v, hit, EventMove, p, Vec2{}, e, d.stage.bubble) {
		update = true
	}
	return update
}

func (d *Dispatcher) fireItem(v *View, hit Item, typ EventType, p, delta Vec2, e *PointerEvent, bubble bool) bool {
	ev := &ItemEvent{Type: typ, Point: p, Delta: delta, Target: hit, View: v, Pointer: e}
	handled := fireBubbling(hit, ev, bubble)
	if d.stage.store != nil {
		var entity uint32
		if ei, ok := hit.(entityItem); ok {
			entity = ei.Entity()
		}
		d.stage.store.EmitEvent(interactionEvent(typ, v, entity, p, delta, e, handled, false))
	}
	return handled
}

func (d *Dispatcher) fireTool(t *Tool, typ EventType, te *ToolEvent) bool {
	handled := t.handle(typ, te)
	if d.stage.store != nil {
		d.stage.store.EmitEvent(interactionEvent(typ, te.View, 0, te.Point, te.Delta, te.Pointer, handled, true))
	}
	return handled
}

func interactionEvent(typ EventType, v *View, entity uint32, p, delta Vec2, e *PointerEvent, handled, fromTool bool) InteractionEvent {
	return InteractionEvent{
		Type:      typ,
		ViewID:    v.id,
		EntityID:  entity,
		X:         p.X,
		Y:         p.Y,
		DeltaX:    delta.X,
		DeltaY:    delta.Y,
		Button:    e.Button,
		Modifiers: e.Modifiers,
		Source:    e.Source,
		Handled:   handled,
		FromTool:  fromTool,
	}
}
