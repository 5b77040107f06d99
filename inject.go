package easel

// syntheticPointerEvent represents a single injected pointer event.
// Host coordinates are used, identical to real mouse input, so the event is
// routed to whichever view covers the point.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// InjectPress queues a pointer press event at the given host coordinates
// (left button). The event is consumed on the next Update.
func (h *EbitenHost) InjectPress(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move event at the given host coordinates
// with the button held down. Use this between InjectPress and InjectRelease
// to simulate a drag.
func (h *EbitenHost) InjectMove(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectHover queues a pointer move event with no button held.
func (h *EbitenHost) InjectHover(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectRelease queues a pointer release event at the given host coordinates.
func (h *EbitenHost) InjectRelease(x, y float64) {
	h.injectQueue = append(h.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same coordinates. Consumes two ticks.
func (h *EbitenHost) InjectClick(x, y float64) {
	h.InjectPress(x, y)
	h.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate ticks, and
// release at (toX, toY). The total sequence consumes `frames` ticks.
// Minimum frames is 2 (press + release).
func (h *EbitenHost) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	h.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		h.InjectMove(x, y)
	}
	h.InjectRelease(toX, toY)
}

// InjectPending returns the number of queued synthetic events.
func (h *EbitenHost) InjectPending() int {
	return len(h.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the mouse pointer. Returns true if an event was consumed (real
// mouse input should be skipped).
func (h *EbitenHost) processInjectedInput(mods KeyModifiers) bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	h.feedPointer(&h.mouse, 0, SourceMouse, Vec2{evt.x, evt.y}, evt.pressed, evt.button, mods)
	return true
}
