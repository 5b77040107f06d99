package easel

type handlerKind uint8

const (
	handlerFrame handlerKind = iota
	handlerResize
)

type frameHandler struct {
	id      uint32
	fn      func(FrameEvent)
	removed bool
}

type resizeHandler struct {
	id      uint32
	fn      func(ResizeEvent)
	removed bool
}

type viewHandlers struct {
	frame  []*frameHandler
	resize []*resizeHandler
	nextID uint32
}

// CallbackHandle allows removing a registered view callback.
// The zero value is valid and its Remove does nothing.
type CallbackHandle struct {
	id   uint32
	view *View
	kind handlerKind
}

// Remove unregisters this callback so it no longer fires. Removing the last
// frame handler stops the view's frame loop. Safe to call from inside the
// callback itself and more than once.
func (h CallbackHandle) Remove() {
	v := h.view
	if v == nil {
		return
	}
	switch h.kind {
	case handlerFrame:
		for i, fh := range v.handlers.frame {
			if fh.id == h.id {
				fh.removed = true
				v.handlers.frame = append(v.handlers.frame[:i:i], v.handlers.frame[i+1:]...)
				break
			}
		}
		if len(v.handlers.frame) == 0 {
			v.uninstallFrame()
		}
	case handlerResize:
		for i, rh := range v.handlers.resize {
			if rh.id == h.id {
				rh.removed = true
				v.handlers.resize = append(v.handlers.resize[:i:i], v.handlers.resize[i+1:]...)
				break
			}
		}
	}
}

// OnResize registers a callback fired after SetViewSize changes the size.
func (v *View) OnResize(fn func(ResizeEvent)) CallbackHandle {
	if v.removed {
		return CallbackHandle{}
	}
	v.handlers.nextID++
	id := v.handlers.nextID
	v.handlers.resize = append(v.handlers.resize, &resizeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, view: v, kind: handlerResize}
}

func (v *View) fireResize(e ResizeEvent) {
	// Iterate a snapshot; handlers may register or remove handlers.
	hs := append([]*resizeHandler(nil), v.handlers.resize...)
	for _, h := range hs {
		if h.removed {
			continue
		}
		h.fn(e)
	}
}
