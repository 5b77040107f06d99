package easel

// ToolHandler handles one kind of tool event and reports whether it did
// anything. A true result forces a redraw of the view and suppresses the
// platform's default handling of the pointer event.
type ToolHandler func(e *ToolEvent) bool

// Tool responds to pointer gestures in scene coordinates. Every handler is
// optional; a nil field means the tool does not handle that event.
//
// A tool with OnMouseMove but no OnMouseDrag never receives drag semantics:
// moves while the pointer is pressed are delivered to OnMouseMove.
type Tool struct {
	Name        string
	OnMouseDown ToolHandler
	OnMouseDrag ToolHandler
	OnMouseMove ToolHandler
	OnMouseUp   ToolHandler
}

// moveOnly reports whether the tool defines a move handler and no drag
// handler.
func (t *Tool) moveOnly() bool {
	return t.OnMouseDrag == nil && t.OnMouseMove != nil
}

func (t *Tool) handler(typ EventType) ToolHandler {
	switch typ {
	case EventPress:
		return t.OnMouseDown
	case EventDrag:
		return t.OnMouseDrag
	case EventMove:
		return t.OnMouseMove
	case EventRelease:
		return t.OnMouseUp
	}
	return nil
}

// handle invokes the handler for typ if present.
func (t *Tool) handle(typ EventType, e *ToolEvent) bool {
	fn := t.handler(typ)
	if fn == nil {
		return false
	}
	e.Type = typ
	return fn(e)
}

// ToolEvent is passed to tool handlers.
type ToolEvent struct {
	Type      EventType
	Point     Vec2 // current pointer position in scene coordinates
	LastPoint Vec2 // previous position during a drag, else Point
	DownPoint Vec2 // position of the press that started the drag, else Point
	Delta     Vec2 // Point - LastPoint
	Count     int  // drag deliveries so far in this gesture
	View      *View
	Pointer   *PointerEvent
}
