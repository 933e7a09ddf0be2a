// Package ecs provides ECS adapters for easel's editor event system.
//
// The primary adapter is [NewDonburiSink], which bridges easel editor
// events (state changes, view changes, placements) into a [Donburi] world
// as typed events. Subscribe to [EditorEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	world := donburi.NewWorld()
//	editor.SetEventSink(ecs.NewDonburiSink(world))
//	ecs.EditorEventType.Subscribe(world, func(w donburi.World, e easel.EditorEvent) {
//		// react to editor activity
//	})
//
// Events are queued by Donburi; call EditorEventType.ProcessEvents (or
// events.ProcessAllEvents) once per tick to deliver them.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
