package easel

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// StageConfig configures a Stage. The zero value is usable.
type StageConfig struct {
	// Host drives redraw requests and frame ticks. Defaults to a ManualHost
	// started at the current time.
	Host Host
	// Surfaces creates surfaces for NewViewSized. Defaults to
	// NewImageSurface.
	Surfaces SurfaceProvider
	// AutoUpdate makes every change request one coalesced redraw from the
	// host. Defaults to true.
	AutoUpdate *bool
	// Bubble makes item events walk up the parent chain until a handler
	// stops propagation. When false, only the hit item receives the event.
	// Defaults to true.
	Bubble *bool
	// HitOptions are used for every hit test. The zero value selects
	// DefaultHitOptions.
	HitOptions HitOptions
	// ItemMoveEvents delivers drag, move, enter and leave events to scene
	// items. Press, release and click are always delivered.
	ItemMoveEvents bool
}

// Stage holds the state shared by all views of one application: the view
// registry, focus, the pointer dispatcher and the active tool. Create one per
// application and call Teardown when done.
type Stage struct {
	host           Host
	surfaces       SurfaceProvider
	autoUpdate     bool
	bubble         bool
	hitOptions     HitOptions
	itemMoveEvents bool

	registry   *Registry
	dispatcher *Dispatcher
	tool       *Tool
	store      EntityStore
	debug      bool
	nextID     int
}

// NewStage creates a stage.
func NewStage(cfg StageConfig) *Stage {
	s := &Stage{
		host:           cfg.Host,
		surfaces:       cfg.Surfaces,
		autoUpdate:     true,
		bubble:         true,
		hitOptions:     cfg.HitOptions,
		itemMoveEvents: cfg.ItemMoveEvents,
		registry:       newRegistry(),
	}
	if s.host == nil {
		s.host = NewManualHost(time.Now())
	}
	if s.surfaces == nil {
		s.surfaces = NewImageSurface
	}
	if cfg.AutoUpdate != nil {
		s.autoUpdate = *cfg.AutoUpdate
	}
	if cfg.Bubble != nil {
		s.bubble = *cfg.Bubble
	}
	if s.hitOptions == (HitOptions{}) {
		s.hitOptions = DefaultHitOptions
	}
	s.dispatcher = newDispatcher(s)
	return s
}

// NewView binds surface to scene. The view takes the surface's id, or a
// generated "view-N" id when the surface has none. The first view of a stage
// receives focus. A scene may be rendered by only one live view at a time, so
// scene must be a comparable value (typically a pointer); other values are
// rejected with ErrSceneType.
func (s *Stage) NewView(surface Surface, scene Scene) (*View, error) {
	if surface == nil {
		return nil, ErrNilSurface
	}
	return s.newView(surface.ID(), surface, scene)
}

// NewViewSized creates a surface of the given size from the stage's surface
// provider and binds it to scene. A zero size selects DefaultViewSize.
func (s *Stage) NewViewSized(size Size, scene Scene) (*View, error) {
	if size.Width < 0 || size.Height < 0 {
		Logger().Warn("easel: rejected view size", "width", size.Width, "height", size.Height)
		return nil, fmt.Errorf("new view %vx%v: %w", size.Width, size.Height, ErrInvalidSize)
	}
	if size.IsZero() {
		size = DefaultViewSize
	}
	id := s.generateID()
	return s.newView(id, s.surfaces(id, size), scene)
}

func (s *Stage) newView(id string, surface Surface, scene Scene) (*View, error) {
	if scene == nil {
		return nil, ErrNilScene
	}
	// The registry keys views by scene.
	if !reflect.ValueOf(scene).Comparable() {
		return nil, fmt.Errorf("new view %q: %T: %w", id, scene, ErrSceneType)
	}
	if sz := surface.Size(); sz.Width < 0 || sz.Height < 0 {
		return nil, fmt.Errorf("new view %q: %w", id, ErrInvalidSize)
	}
	if id == "" {
		id = s.generateID()
	}
	if s.registry.View(id) != nil {
		Logger().Warn("easel: duplicate view id", "view", id)
		return nil, fmt.Errorf("new view %q: %w", id, ErrDuplicateID)
	}
	if other := s.registry.ViewOf(scene); other != nil {
		return nil, fmt.Errorf("new view %q: scene rendered by %q: %w", id, other.id, ErrSceneBound)
	}
	v := newView(s, id, surface, scene)
	s.registry.register(v)
	Logger().Debug("easel: view created", "view", id,
		"width", surface.Size().Width, "height", surface.Size().Height)
	v.requestUpdate()
	return v, nil
}

func (s *Stage) generateID() string {
	for {
		s.nextID++
		id := "view-" + strconv.Itoa(s.nextID)
		if s.registry.View(id) == nil {
			return id
		}
	}
}

// detach is called by View.Remove.
func (s *Stage) detach(v *View) {
	wasFocused := s.registry.focused == v
	s.registry.unregister(v)
	s.dispatcher.forget(v, wasFocused)
}

// Host returns the stage's host.
func (s *Stage) Host() Host { return s.host }

// Registry returns the stage's view registry.
func (s *Stage) Registry() *Registry { return s.registry }

// Dispatcher returns the stage's pointer dispatcher.
func (s *Stage) Dispatcher() *Dispatcher { return s.dispatcher }

// View returns the live view with the given id, or nil.
func (s *Stage) View(id string) *View { return s.registry.View(id) }

// Views returns the live views in creation order. The returned slice MUST NOT
// be mutated.
func (s *Stage) Views() []*View { return s.registry.Views() }

// Focused returns the view holding focus, or nil.
func (s *Stage) Focused() *View { return s.registry.Focused() }

// ResolveFocus moves focus to the first visible view if the focused view is
// missing or hidden. Hosts call it after resize or visibility changes.
func (s *Stage) ResolveFocus() *View { return s.registry.ResolveFocus() }

// ActiveTool returns the stage-wide tool, or nil.
func (s *Stage) ActiveTool() *Tool { return s.tool }

// SetActiveTool sets the tool used by views without their own tool.
func (s *Stage) SetActiveTool(t *Tool) { s.tool = t }

// SetEntityStore sets the optional ECS bridge.
func (s *Stage) SetEntityStore(store EntityStore) { s.store = store }

// SetDebugMode enables or disables per-draw timing logs at debug level.
func (s *Stage) SetDebugMode(enabled bool) { s.debug = enabled }

// Teardown removes every view and clears all focus and drag state. The stage
// can be reused afterwards.
func (s *Stage) Teardown() {
	views := append([]*View(nil), s.registry.views...)
	for _, v := range views {
		v.Remove()
	}
	s.registry.reset()
	s.dispatcher.reset()
	s.tool = nil
	s.store = nil
}
