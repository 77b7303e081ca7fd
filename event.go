package feather2d

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type EventType uint8

func (t EventType) String() string {
	switch t {
	case COLLISION_ENTER:
		return "COLLISION_ENTER"
	case COLLISION_STAY:
		return "COLLISION_STAY"
	case COLLISION_EXIT:
		return "COLLISION_EXIT"
	default:
		return "UNKNOWN"
	}
}

type pairKey struct {
	bodyA Handle
	bodyB Handle
}

// makePairKey orders the two handles, so (a, b) and (b, a) give the same key
func makePairKey(bodyA, bodyB Handle) pairKey {
	if bodyB.Index < bodyA.Index || (bodyB.Index == bodyA.Index && bodyB.Generation < bodyA.Generation) {
		bodyA, bodyB = bodyB, bodyA
	}
	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

// Event is implemented by every event type
type Event interface {
	Type() EventType
}

// CollisionEnterEvent is sent on the first step two bodies collide
type CollisionEnterEvent struct {
	BodyA Handle
	BodyB Handle
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

// CollisionStayEvent is sent on each following step they still collide
type CollisionStayEvent struct {
	BodyA Handle
	BodyB Handle
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

// CollisionExitEvent is sent on the first step they no longer collide
type CollisionExitEvent struct {
	BodyA Handle
	BodyB Handle
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener receives the events of the type it subscribed to
type EventListener func(event Event)

type pairSet map[pairKey]struct{}

// Events tracks the colliding pairs of two consecutive steps and turns the
// difference into enter, stay and exit events.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event

	// pairs colliding during the previous step, and during the current one so far
	previous pairSet
	current  pairSet
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 256),
		previous:  make(pairSet),
		current:   make(pairSet),
	}
}

// init makes the zero Events usable
func (e *Events) init() {
	if e.listeners == nil {
		*e = NewEvents()
	}
}

// Subscribe adds a listener for an event type. Listeners run at the end of World.Step,
// in subscription order.
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.init()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollision marks a pair as colliding during the current step.
// Sub-steps may record the same pair many times.
func (e *Events) recordCollision(bodyA, bodyB Handle) {
	e.init()
	e.current[makePairKey(bodyA, bodyB)] = struct{}{}
}

// forget drops every pair involving a removed body, which therefore gets no exit event
func (e *Events) forget(body Handle) {
	e.init()
	for _, pairs := range []pairSet{e.previous, e.current} {
		for pair := range pairs {
			if pair.bodyA == body || pair.bodyB == body {
				delete(pairs, pair)
			}
		}
	}
}

// diffPairs buffers one event per pair: enter or stay for the current pairs,
// exit for the previous pairs that are gone. The current step then becomes the previous one.
func (e *Events) diffPairs() {
	for pair := range e.current {
		if _, ok := e.previous[pair]; ok {
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}
	for pair := range e.previous {
		if _, ok := e.current[pair]; !ok {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	e.previous, e.current = e.current, e.previous
	clear(e.current)
}

// flush diffs the pairs of the step and sends the buffered events
func (e *Events) flush() {
	e.init()
	e.diffPairs()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	clear(e.buffer)
	e.buffer = e.buffer[:0]
}
