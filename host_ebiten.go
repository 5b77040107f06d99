package easel

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// RunConfig configures the ebiten window and loop.
type RunConfig struct {
	Title  string
	Width  int // logical screen width; 0 uses the window size
	Height int // logical screen height; 0 uses the window size
	// ShowFPS overlays FPS and TPS in the top-left corner.
	ShowFPS bool
	// ClearColor fills the screen behind the views each frame. A zero
	// alpha leaves the screen as ebiten cleared it.
	ClearColor Color
	// TPS sets ebiten's ticks per second. 0 keeps ebiten's default.
	TPS int
}

// hostPointer tracks one physical pointer between ticks so level-triggered
// ebiten input becomes press/move/release edges.
type hostPointer struct {
	down   bool
	seen   bool
	last   Vec2
	button MouseButton
}

// EbitenHost runs a Stage inside an ebiten game loop. Each tick it turns
// mouse and touch state into pointer events for the stage's dispatcher and
// runs the frame callbacks requested since the previous tick. Each frame it
// composites the visible views' surfaces onto the screen at their origins.
type EbitenHost struct {
	cfg   RunConfig
	stage *Stage
	now   func() time.Time

	pending []func()

	mouse        hostPointer
	touches      [maxPointers]hostPointer
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	layoutW, layoutH int
	fps              *fpsOverlay
}

// NewEbitenHost creates a host. Pass it as StageConfig.Host, then call Run
// with the stage.
func NewEbitenHost(cfg RunConfig) *EbitenHost {
	h := &EbitenHost{cfg: cfg, now: time.Now}
	if cfg.ShowFPS {
		h.fps = newFPSOverlay()
	}
	return h
}

// Attach binds the host to the stage whose views it drives. Run calls it.
func (h *EbitenHost) Attach(s *Stage) {
	h.stage = s
}

// Run opens the window and blocks until the game loop ends.
func (h *EbitenHost) Run(s *Stage) error {
	h.Attach(s)
	if h.cfg.Title != "" {
		ebiten.SetWindowTitle(h.cfg.Title)
	}
	if h.cfg.Width > 0 && h.cfg.Height > 0 {
		ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	}
	if h.cfg.TPS > 0 {
		ebiten.SetTPS(h.cfg.TPS)
	}
	return ebiten.RunGame(h)
}

// RequestFrame queues fn for the next Update.
func (h *EbitenHost) RequestFrame(fn func(), _ Surface) {
	h.pending = append(h.pending, fn)
}

// Now returns the wall clock.
func (h *EbitenHost) Now() time.Time {
	return h.now()
}

// Update implements ebiten.Game.
func (h *EbitenHost) Update() error {
	if h.stage == nil {
		return nil
	}
	if h.testRunner != nil {
		h.testRunner.step(h)
	}
	mods := readModifiers()
	if !h.processInjectedInput(mods) {
		h.processMousePointer(mods)
		h.processTouchPointers(mods)
	}
	runPending(&h.pending)
	if h.fps != nil {
		h.fps.update(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

// Draw implements ebiten.Game.
func (h *EbitenHost) Draw(screen *ebiten.Image) {
	if h.cfg.ClearColor.A > 0 {
		screen.Fill(h.cfg.ClearColor.toRGBA())
	}
	if h.stage != nil {
		for _, v := range h.stage.Views() {
			if !v.IsVisible() {
				continue
			}
			is, ok := v.Surface().(*ImageSurface)
			if !ok {
				continue
			}
			var op ebiten.DrawImageOptions
			op.GeoM.Translate(v.origin.X, v.origin.Y)
			screen.DrawImage(is.Image(), &op)
		}
	}
	if h.fps != nil {
		h.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. A change of screen size re-runs focus
// resolution, since views may have become hidden or exposed.
func (h *EbitenHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, hh := h.cfg.Width, h.cfg.Height
	if w <= 0 || hh <= 0 {
		w, hh = outsideWidth, outsideHeight
	}
	if w != h.layoutW || hh != h.layoutH {
		h.layoutW, h.layoutH = w, hh
		if h.stage != nil {
			h.stage.ResolveFocus()
		}
	}
	return w, hh
}

// SurfaceAt returns the id of the topmost visible view whose surface covers
// the host-space point p, or "".
func (h *EbitenHost) SurfaceAt(p Vec2) string {
	if h.stage == nil {
		return ""
	}
	views := h.stage.Views()
	for i := len(views) - 1; i >= 0; i-- {
		v := views[i]
		if !v.IsVisible() {
			continue
		}
		s := v.ViewSize()
		r := Rect{X: v.origin.X, Y: v.origin.Y, Width: s.Width, Height: s.Height}
		if r.Contains(p.X, p.Y) {
			return v.id
		}
	}
	return ""
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// processMousePointer handles mouse input (pointer 0).
func (h *EbitenHost) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	h.feedPointer(&h.mouse, 0, SourceMouse, Vec2{float64(mx), float64(my)}, pressed, button, mods)
}

// processTouchPointers handles touch input (pointers 1-9).
func (h *EbitenHost) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(h.prevTouchIDs[:0])
	h.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := h.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		h.feedPointer(&h.touches[slot], slot, SourceTouch, Vec2{float64(tx), float64(ty)}, true, MouseButtonLeft, mods)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if h.touchUsed[i] && !activeSlots[i] {
			ps := &h.touches[i]
			if ps.down {
				h.feedPointer(ps, i, SourceTouch, ps.last, false, MouseButtonLeft, mods)
			}
			*ps = hostPointer{}
			h.touchUsed[i] = false
			h.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (h *EbitenHost) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if h.touchUsed[i] && h.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !h.touchUsed[i] {
			h.touchUsed[i] = true
			h.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// feedPointer converts the pointer's level state into press, move and
// release events on the stage dispatcher.
func (h *EbitenHost) feedPointer(ps *hostPointer, id int, src PointerSource, pos Vec2, pressed bool, button MouseButton, mods KeyModifiers) {
	d := h.stage.dispatcher
	e := &PointerEvent{
		SurfaceID: h.SurfaceAt(pos),
		Pos:       pos,
		Source:    src,
		PointerID: id,
		Button:    button,
		Modifiers: mods,
	}
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		e.Type = EventPress
		d.Press(e)
	case !pressed && ps.down:
		ps.down = false
		e.Button = ps.button
		e.Type = EventRelease
		d.Release(e)
	case !ps.seen || pos != ps.last:
		if ps.down {
			e.Button = ps.button
		}
		e.Type = EventMove
		d.Move(e)
	}
	ps.last = pos
	ps.seen = true
}

// Run is a convenience that creates an EbitenHost and a Stage driven by it,
// calls setup to create views, then runs the game loop. For full control
// create the host with NewEbitenHost and call its Run method.
func Run(cfg RunConfig, stageCfg StageConfig, setup func(s *Stage) error) error {
	h := NewEbitenHost(cfg)
	stageCfg.Host = h
	s := NewStage(stageCfg)
	h.Attach(s)
	if setup != nil {
		if err := setup(s); err != nil {
			return fmt.Errorf("run setup: %w", err)
		}
	}
	defer s.Teardown()
	return h.Run(s)
}
