package easel

// Scene is the drawable content bound to a View.
type Scene interface {
	// Draw renders the scene into ctx. The context matrix already maps scene
	// coordinates to surface pixels.
	Draw(ctx Context)
	// HitTest returns the topmost item at p (scene coordinates), or nil.
	HitTest(p Vec2, opts HitOptions) Item
}

// Item is a scene element that can receive pointer events.
type Item interface {
	// Fire delivers e to the item's handlers for t and reports whether any
	// handler handled it.
	Fire(t EventType, e *ItemEvent) bool
	// Parent returns the enclosing item, or nil at the top of the hierarchy.
	Parent() Item
}

// HitOptions controls what counts as a hit.
type HitOptions struct {
	Fill      bool    // test shape interiors
	Stroke    bool    // test shape outlines
	Tolerance float64 // extra slack in scene units
}

// DefaultHitOptions tests fill and stroke with no tolerance.
var DefaultHitOptions = HitOptions{Fill: true, Stroke: true}

// ItemEvent is delivered to scene items. It bubbles from the hit item up
// through its parents.
type ItemEvent struct {
	Type    EventType
	Point   Vec2 // scene coordinates
	Delta   Vec2 // movement since the previous delivery, zero for press
	Target  Item // the item that was hit
	Current Item // the item currently handling the event
	View    *View
	Pointer *PointerEvent

	stopped bool
}

// StopPropagation prevents delivery to further ancestors when bubbling.
func (e *ItemEvent) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *ItemEvent) Stopped() bool {
	return e.stopped
}

// fireBubbling delivers e to hit and, with bubble set, up the parent chain
// until a handler both handled the event and stopped propagation. Without
// bubble only hit receives the event.
func fireBubbling(hit Item, e *ItemEvent, bubble bool) bool {
	if !bubble {
		e.Current = hit
		return hit.Fire(e.Type, e)
	}
	handled := false
	for it := hit; it != nil; it = it.Parent() {
		e.Current = it
		if !it.Fire(e.Type, e) {
			continue
		}
		handled = true
		if e.stopped {
			return true
		}
	}
	return handled
}

// EntityStore is the interface for optional ECS integration.
// When set on a Stage, every tool and item delivery is forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	ViewID    string
	EntityID  uint32 // hit item's entity, 0 for tool deliveries
	X, Y      float64
	DeltaX    float64
	DeltaY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	Source    PointerSource
	Handled   bool
	FromTool  bool
}

// entityItem is implemented by items that carry an ECS entity id.
type entityItem interface {
	Entity() uint32
}
