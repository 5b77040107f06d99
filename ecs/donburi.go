package ecs

import (
	"github.com/phanxgames/easel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType carries every tool and item delivery of a stage.
// Subscribe with InteractionEventType.Subscribe and drain the queue each tick
// with ProcessEvents or events.ProcessAllEvents.
var InteractionEventType = events.NewEventType[easel.InteractionEvent]()

// Option filters what a store publishes.
type Option func(*donburiStore)

// HandledOnly drops deliveries no handler claimed.
func HandledOnly() Option {
	return func(s *donburiStore) { s.handledOnly = true }
}

// EntitiesOnly drops deliveries without an entity, which includes every tool
// delivery.
func EntitiesOnly() Option {
	return func(s *donburiStore) { s.entitiesOnly = true }
}

// Views limits publishing to deliveries on the given view ids.
func Views(ids ...string) Option {
	return func(s *donburiStore) {
		if s.views == nil {
			s.views = make(map[string]struct{}, len(ids))
		}
		for _, id := range ids {
			s.views[id] = struct{}{}
		}
	}
}

type donburiStore struct {
	world        donburi.World
	handledOnly  bool
	entitiesOnly bool
	views        map[string]struct{}
}

// NewDonburiStore returns an EntityStore that publishes into world. Pass it
// to Stage.SetEntityStore.
func NewDonburiStore(world donburi.World, opts ...Option) easel.EntityStore {
	s := &donburiStore{world: world}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *donburiStore) EmitEvent(event easel.InteractionEvent) {
	if !s.accepts(event) {
		return
	}
	InteractionEventType.Publish(s.world, event)
}

func (s *donburiStore) accepts(e easel.InteractionEvent) bool {
	if s.handledOnly && !e.Handled {
		return false
	}
	if s.entitiesOnly && e.EntityID == 0 {
		return false
	}
	if s.views != nil {
		if _, ok := s.views[e.ViewID]; !ok {
			return false
		}
	}
	return true
}
