// Package ecs provides ECS adapters for easel's interaction events.
//
// The primary adapter is [NewDonburiStore], which forwards every tool and
// item delivery made by an easel Stage into a [Donburi] world as a typed
// event. Subscribe to [InteractionEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world, ecs.HandledOnly(), ecs.EntitiesOnly())
//	stage.SetEntityStore(store)
//
// Without options every delivery is published.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
