// Package ecs provides ECS adapters for marquee's engine events.
//
// The primary adapter is [NewDonburiSink], which bridges engine events
// (mount, teardown, reveal, counter and typewriter activity) into a
// [Donburi] world as typed events. Subscribe to [EngineEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine, err := marquee.NewEngine(cfg, marquee.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
