package rules

import (
	"fmt"
	"time"

	"github.com/magefree/mage-oracle-go/internal/game/counters"
)

// CounterOperations applies counter changes to a collection and emits the
// corresponding events so watchers and triggers see them.
type CounterOperations struct {
	eventBus *EventBus
}

// NewCounterOperations creates a new CounterOperations instance.
func NewCounterOperations(eventBus *EventBus) *CounterOperations {
	return &CounterOperations{eventBus: eventBus}
}

// AddToCard adds counters to a card's collection and emits a counter-added
// event.
func (co *CounterOperations) AddToCard(cardID string, target *counters.Counters, kind counters.CounterType, amount int, controllerID string, timestamp time.Time) {
	if amount <= 0 {
		return
	}
	if target != nil {
		target.Add(kind, amount)
	}
	co.publish(EventCounterAdded, cardID, kind, amount, controllerID, timestamp)
}

// RemoveFromCard removes counters from a card's collection and emits a
// counter-removed event when any were present.
func (co *CounterOperations) RemoveFromCard(cardID string, target *counters.Counters, kind counters.CounterType, amount int, controllerID string, timestamp time.Time) bool {
	if amount <= 0 || target == nil || !target.Remove(kind, amount) {
		return false
	}
	co.publish(EventCounterRemoved, cardID, kind, amount, controllerID, timestamp)
	return true
}

func (co *CounterOperations) publish(eventType EventType, cardID string, kind counters.CounterType, amount int, controllerID string, timestamp time.Time) {
	if co.eventBus == nil {
		return
	}
	co.eventBus.Publish(Event{
		Type:       eventType,
		ID:         fmt.Sprintf("event-%s-%s-%d", eventType, cardID, timestamp.UnixNano()),
		TargetID:   cardID,
		SourceID:   cardID,
		Controller: controllerID,
		PlayerID:   controllerID,
		Amount:     amount,
		Data:       string(kind),
		Timestamp:  timestamp,
		Metadata: map[string]string{
			"counter_name":  string(kind),
			"counter_count": fmt.Sprintf("%d", amount),
		},
		Description: fmt.Sprintf("%s: %d %s counter(s) on %s", eventType, amount, kind, cardID),
	})
}
