package marquee

// EventType identifies a kind of engine event.
type EventType uint8

const (
	EventMount          EventType = iota // a lifecycle finished wiring
	EventTeardown                        // a lifecycle finished tearing down
	EventRevealStart                     // a reveal group began its stagger
	EventCounterStart                    // a counter began counting
	EventCounterDone                     // a counter reached its magnitude
	EventTabSwitch                       // the typewriter switched samples
	EventTypewriterLoop                  // the typewriter wrapped around
)

var eventNames = [...]string{
	EventMount:          "mount",
	EventTeardown:       "teardown",
	EventRevealStart:    "reveal-start",
	EventCounterStart:   "counter-start",
	EventCounterDone:    "counter-done",
	EventTabSwitch:      "tab-switch",
	EventTypewriterLoop: "typewriter-loop",
}

func (e EventType) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Event carries engine activity to an optional EventSink.
type Event struct {
	Type   EventType
	Mount  int     // lifecycle sequence number
	Region string  // region name, when the event concerns one
	Key    string  // sample key for typewriter events
	Value  float64 // counter magnitude, child count, and similar
}

// EventSink is the interface for optional event forwarding, for example into
// an ECS world. When set on an Engine, events are delivered synchronously from
// the frame that produced them.
type EventSink interface {
	EmitEvent(event Event)
}

type multiSink []EventSink

func (m multiSink) EmitEvent(event Event) {
	for _, s := range m {
		s.EmitEvent(event)
	}
}

// MultiSink delivers every event to each non-nil sink, in order.
func MultiSink(sinks ...EventSink) EventSink {
	var m multiSink
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}
