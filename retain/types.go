package retain

// EventType identifies a retention lifecycle notification.
type EventType uint8

const (
	EventRetained EventType = iota
	EventReleased
)

func (t EventType) String() string {
	switch t {
	case EventRetained:
		return "retained"
	case EventReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Event represents a retention lifecycle event.
type Event struct {
	Value  any
	Key    uintptr
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about retention lifecycle events.
type Observer interface {
	OnRetainEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// OnRetainEvent calls f(e).
func (f ObserverFunc) OnRetainEvent(e Event) {
	f(e)
}

// Dropper is optionally implemented by retained values that need cleanup.
type Dropper interface {
	Drop()
}

// Sizer is optionally implemented by retained values that occupy memory.
type Sizer interface {
	Size() int
}
