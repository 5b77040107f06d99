package easel

// Registry tracks a stage's live views and which of them has input focus.
//
// Sticky focus is granted by a press and lasts until another press or the
// view's removal. Temporary focus is granted to the view under a hovering
// pointer and is dropped when the pointer leaves it.
type Registry struct {
	views     []*View
	byID      map[string]*View
	byScene   map[Scene]*View
	focused   *View
	tempFocus *View
}

func newRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]*View),
		byScene: make(map[Scene]*View),
	}
}

// View returns the live view with the given id, or nil.
func (r *Registry) View(id string) *View {
	return r.byID[id]
}

// ViewOf returns the view currently rendering scene, or nil.
func (r *Registry) ViewOf(scene Scene) *View {
	return r.byScene[scene]
}

// Views returns the live views in creation order. The returned slice MUST NOT
// be mutated.
func (r *Registry) Views() []*View {
	return r.views
}

// Len returns the number of live views.
func (r *Registry) Len() int {
	return len(r.views)
}

// Focused returns the view holding focus, or nil.
func (r *Registry) Focused() *View {
	return r.focused
}

// TempFocused returns the view holding temporary (hover) focus, or nil.
func (r *Registry) TempFocused() *View {
	return r.tempFocus
}

// register appends v. The first view registered becomes focused.
func (r *Registry) register(v *View) {
	r.views = append(r.views, v)
	r.byID[v.id] = v
	r.byScene[v.scene] = v
	if r.focused == nil {
		r.focused = v
		Logger().Debug("easel: focus", "view", v.id, "reason", "first view")
	}
}

// unregister removes v and clears any focus it held.
func (r *Registry) unregister(v *View) {
	for i, w := range r.views {
		if w == v {
			r.views = append(r.views[:i], r.views[i+1:]...)
			break
		}
	}
	if r.byID[v.id] == v {
		delete(r.byID, v.id)
	}
	if v.scene != nil && r.byScene[v.scene] == v {
		delete(r.byScene, v.scene)
	}
	if r.focused == v {
		r.focused = nil
	}
	if r.tempFocus == v {
		r.tempFocus = nil
	}
}

// setStickyFocus gives v focus unconditionally, replacing any existing
// sticky or temporary focus.
func (r *Registry) setStickyFocus(v *View) {
	if r.focused != v {
		Logger().Debug("easel: focus", "view", v.id, "reason", "press")
	}
	r.focused = v
	r.tempFocus = nil
}

// setTempFocus gives v non-sticky focus.
func (r *Registry) setTempFocus(v *View) {
	r.focused = v
	r.tempFocus = v
}

// clearTempFocus drops focus if it is held temporarily.
func (r *Registry) clearTempFocus() {
	if r.tempFocus != nil && r.tempFocus == r.focused {
		r.focused = nil
	}
	r.tempFocus = nil
}

// ResolveFocus makes sure focus is held by a visible view. If the focused
// view is missing or hidden, the first visible view in creation order gets
// temporary focus. If none is visible, focus stays nil.
func (r *Registry) ResolveFocus() *View {
	if r.focused != nil && r.focused.IsVisible() {
		return r.focused
	}
	if v := r.firstVisible(); v != nil {
		r.focused = v
		r.tempFocus = v
		Logger().Debug("easel: focus", "view", v.id, "reason", "fallback")
		return v
	}
	r.focused = nil
	return nil
}

func (r *Registry) firstVisible() *View {
	for _, v := range r.views {
		if v.IsVisible() {
			return v
		}
	}
	return nil
}

// reset drops every table entry.
func (r *Registry) reset() {
	r.views = nil
	r.byID = make(map[string]*View)
	r.byScene = make(map[Scene]*View)
	r.focused = nil
	r.tempFocus = nil
}
