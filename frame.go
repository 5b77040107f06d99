package easel

// FrameEvent is delivered to OnFrame handlers once per frame tick.
type FrameEvent struct {
	Delta float64 // seconds since the previous tick, 0 on the first
	Time  float64 // seconds accumulated since the loop was installed
	Count int     // tick number, starting at 0
}

// OnFrame registers a per-frame callback. The first handler installs the
// view's frame loop, which ticks once immediately and then once per host
// frame; removing the last handler uninstalls it. After each tick the view
// redraws if it is dirty.
func (v *View) OnFrame(fn func(FrameEvent)) CallbackHandle {
	if v.removed {
		return CallbackHandle{}
	}
	v.handlers.nextID++
	id := v.handlers.nextID
	v.handlers.frame = append(v.handlers.frame, &frameHandler{id: id, fn: fn})
	h := CallbackHandle{id: id, view: v, kind: handlerFrame}
	if !v.frameActive {
		v.installFrame()
	}
	return h
}

// FrameActive reports whether the frame loop is installed.
func (v *View) FrameActive() bool { return v.frameActive }

func (v *View) installFrame() {
	v.frameGen++
	v.frameActive = true
	v.frameHasLast = false
	v.frameTime = 0
	v.frameCount = 0
	Logger().Debug("easel: frame loop installed", "view", v.id)
	v.handleFrame(v.frameGen)
}

// uninstallFrame invalidates the running loop. A tick already queued on the
// host observes the new generation and stops without rescheduling.
func (v *View) uninstallFrame() {
	if !v.frameActive {
		return
	}
	v.frameActive = false
	v.frameGen++
	Logger().Debug("easel: frame loop uninstalled", "view", v.id)
}

func (v *View) frameLive(gen uint64) bool {
	return !v.removed && v.frameActive && v.frameGen == gen
}

func (v *View) handleFrame(gen uint64) {
	if !v.frameLive(gen) {
		return
	}
	now := v.stage.host.Now()
	var delta float64
	if v.frameHasLast {
		delta = now.Sub(v.frameLast).Seconds()
	}
	v.frameLast = now
	v.frameHasLast = true
	v.frameTime += delta
	count := v.frameCount
	v.frameCount++

	// Reschedule before running handlers so a slow handler does not push
	// back the next request.
	v.stage.host.RequestFrame(func() { v.handleFrame(gen) }, v.surface)

	e := FrameEvent{Delta: delta, Time: v.frameTime, Count: count}
	hs := append([]*frameHandler(nil), v.handlers.frame...)
	for _, h := range hs {
		if !v.frameLive(gen) {
			return
		}
		if h.removed {
			continue
		}
		h.fn(e)
	}
	if !v.frameLive(gen) {
		return
	}
	v.Draw(true)
}
