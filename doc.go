// Package easel is a multi-view canvas layer for [Ebitengine].
//
// A [Stage] owns any number of [View]s. Each view binds one drawing
// [Surface] to one [Scene] and keeps a scene-to-surface [Matrix], so the same
// scene can be scrolled and zoomed without the scene knowing about it. The
// stage routes a single pointer stream to views, scene items and [Tool]s, and
// tracks which view has focus.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window, a host
// and a stage for you:
//
//	easel.Run(easel.RunConfig{Title: "Canvas", Width: 800, Height: 600},
//		easel.StageConfig{}, func(s *easel.Stage) error {
//			layer := easel.NewLayer()
//			layer.Add(easel.NewShape("box", easel.HitRect{Width: 80, Height: 40}))
//			_, err := s.NewViewSized(easel.Size{Width: 800, Height: 600}, layer)
//			return err
//		})
//
// # Views
//
// [View.ScrollBy], [View.SetZoom] and [View.SetCenter] change the matrix.
// [View.Bounds] is the visible scene rectangle. [View.ProjectToView] and
// [View.ViewToProject] convert between scene and surface pixels.
//
// With AutoUpdate on (the default) every change requests one coalesced
// redraw from the [Host]. [View.Draw] with onlyIfDirty set skips clean
// views.
//
// # Frame loop
//
// [View.OnFrame] installs a per-view frame loop that delivers [FrameEvent]s
// with delta time, elapsed time and a tick count. The loop stops when its
// last handler is removed or the view is removed. [View.ScrollTo] and
// [View.ZoomTo] animate on top of it using [gween].
//
// # Input
//
// The [Dispatcher] turns press, move and release into tool events. A press
// gives its view sticky focus and starts a drag; moves while dragging are
// delivered to the focused view's tool as drags unless the tool only
// handles moves. Hovering a view gives it temporary focus. Items returned by
// [Scene.HitTest] receive press, release and click events that bubble up
// through their parents.
//
// # Hosts
//
// [EbitenHost] runs the stage inside an ebiten game loop and composites
// image surfaces onto the screen. [ManualHost] steps frames by hand, which
// is what tests use.
//
// # ECS integration
//
// Set an [EntityStore] on the stage to forward every tool and item delivery
// as an [InteractionEvent]. The adapter in easel/ecs
// publishes them into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package easel
