package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Turn structure events
	EventBeginTurn   EventType = "BEGIN_TURN"
	EventChangePhase EventType = "CHANGE_PHASE"
	EventChangeStep  EventType = "CHANGE_STEP"
	EventUpkeepStep  EventType = "UPKEEP_STEP"
	EventDrawStep    EventType = "DRAW_STEP"
	EventEndTurnStep EventType = "END_TURN_STEP"
	EventCleanupStep EventType = "CLEANUP_STEP"
	EventAtEndOfTurn EventType = "AT_END_OF_TURN"

	// Zone events
	EventZoneChange           EventType = "ZONE_CHANGE"
	EventEntersTheBattlefield EventType = "ENTERS_THE_BATTLEFIELD"
	EventPermanentDies        EventType = "PERMANENT_DIES"
	EventExiledCard           EventType = "EXILED_CARD"

	// Card events
	EventDrewCard      EventType = "DREW_CARD"
	EventDiscardedCard EventType = "DISCARDED_CARD"
	EventMilledCard    EventType = "MILLED_CARD"
	EventScried        EventType = "SCRIED"
	EventSurveiled     EventType = "SURVEILED"

	// Life and damage events
	EventDamagedPlayer    EventType = "DAMAGED_PLAYER"
	EventDamagedPermanent EventType = "DAMAGED_PERMANENT"
	EventGainedLife       EventType = "GAINED_LIFE"
	EventLostLife         EventType = "LOST_LIFE"

	// Spell and ability events
	EventSpellCast        EventType = "SPELL_CAST"
	EventActivatedAbility EventType = "ACTIVATED_ABILITY"
	EventTriggeredAbility EventType = "TRIGGERED_ABILITY"
	EventLandPlayed       EventType = "LAND_PLAYED"
	EventKicked           EventType = "KICKED"

	// Combat events
	EventAttackerDeclared EventType = "ATTACKER_DECLARED"
	EventBlockerDeclared  EventType = "BLOCKER_DECLARED"

	// Tap events
	EventTapped   EventType = "TAPPED"
	EventUntapped EventType = "UNTAPPED"

	// Counter events
	EventCounterAdded   EventType = "COUNTER_ADDED"
	EventCounterRemoved EventType = "COUNTER_REMOVED"

	// Token events
	EventCreatedToken EventType = "CREATED_TOKEN"

	// Choice events
	EventNumberChosen EventType = "NUMBER_CHOSEN"

	// Planechase events
	EventPlaneswalked EventType = "PLANESWALKED"

	// Stack events
	EventStackItemResolving EventType = "STACK_ITEM_RESOLVING"
	EventStackItemResolved  EventType = "STACK_ITEM_RESOLVED"
	EventStackItemRemoved   EventType = "STACK_ITEM_REMOVED"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	ID          string            // Unique event ID
	TargetID    string            // ID of the target (card, player, etc.)
	SourceID    string            // ID of the source ability/object
	Controller  string            // Player ID of the controller
	PlayerID    string            // Player ID (often same as Controller, but can differ)
	Amount      int               // Numeric value (damage, life, counters, etc.)
	Flag        bool              // Boolean flag (combat damage, effect vs cost, etc.)
	Data        string            // Additional string data
	Targets     []string          // Multiple targets (for multi-target events)
	Timestamp   time.Time         // When the event occurred
	Metadata    map[string]string // Additional metadata
	Description string            // Human-readable description
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener              // All listeners
	typedListeners map[EventType][]TypedListener // Listeners filtered by event type
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	listener := TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	}
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], listener)
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	// Remove from typed listeners by handle
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}

	if typedListeners, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typedListeners {
			listener.Callback(event)
		}
	}
}

// PublishBatch publishes multiple events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, sourceID, controllerID string) Event {
	return Event{
		Type:       eventType,
		TargetID:   targetID,
		SourceID:   sourceID,
		Controller: controllerID,
		PlayerID:   controllerID,
		Timestamp:  time.Now(),
		Metadata:   make(map[string]string),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, targetID, sourceID, controllerID string, amount int) Event {
	evt := NewEvent(eventType, targetID, sourceID, controllerID)
	evt.Amount = amount
	return evt
}
