package ecs

import (
	"github.com/phanxgames/marquee"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType is the Donburi event type for marquee engine events.
// Subscribe to this in your ECS systems to react to reveals, counters and tab
// switches.
var EngineEventType = events.NewEventType[marquee.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Engine events are published to EngineEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) marquee.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event marquee.Event) {
	EngineEventType.Publish(s.world, event)
}
