package rules

import (
	"testing"
	"time"

	"github.com/magefree/mage-oracle-go/internal/game/counters"
)

func TestCounterOperationsAddToCard(t *testing.T) {
	bus := NewEventBus()
	ops := NewCounterOperations(bus)

	var events []Event
	bus.SubscribeTyped(EventCounterAdded, func(e Event) {
		events = append(events, e)
	})

	target := counters.NewCounters()
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ops.AddToCard("card1", target, counters.CounterTypeCharge, 2, "alice", ts)

	if target.GetCount(counters.CounterTypeCharge) != 2 {
		t.Fatalf("expected 2 charge counters, got %d", target.GetCount(counters.CounterTypeCharge))
	}
	if len(events) != 1 {
		t.Fatalf("expected one counter-added event, got %d", len(events))
	}
	event := events[0]
	if event.TargetID != "card1" || event.Controller != "alice" || event.Amount != 2 {
		t.Fatalf("unexpected event fields: %+v", event)
	}
	if event.Metadata["counter_name"] != "charge" || event.Metadata["counter_count"] != "2" {
		t.Fatalf("unexpected metadata: %v", event.Metadata)
	}
	if !event.Timestamp.Equal(ts) {
		t.Fatalf("expected timestamp %v, got %v", ts, event.Timestamp)
	}
}

func TestCounterOperationsAddIgnoresNonPositive(t *testing.T) {
	bus := NewEventBus()
	ops := NewCounterOperations(bus)

	fired := 0
	bus.SubscribeTyped(EventCounterAdded, func(e Event) { fired++ })

	target := counters.NewCounters()
	ops.AddToCard("card1", target, counters.CounterTypeP1P1, 0, "alice", time.Now())
	ops.AddToCard("card1", target, counters.CounterTypeP1P1, -3, "alice", time.Now())

	if target.Total() != 0 {
		t.Fatalf("expected no counters added, got total %d", target.Total())
	}
	if fired != 0 {
		t.Fatalf("expected no events, got %d", fired)
	}
}

func TestCounterOperationsAddNilTargetStillPublishes(t *testing.T) {
	bus := NewEventBus()
	ops := NewCounterOperations(bus)

	fired := 0
	bus.SubscribeTyped(EventCounterAdded, func(e Event) { fired++ })

	// Counters on an untracked card: the event still flows to watchers.
	ops.AddToCard("card1", nil, counters.CounterTypeLore, 1, "alice", time.Now())
	if fired != 1 {
		t.Fatalf("expected event for nil target, got %d", fired)
	}
}

func TestCounterOperationsRemoveFromCard(t *testing.T) {
	bus := NewEventBus()
	ops := NewCounterOperations(bus)

	var events []Event
	bus.SubscribeTyped(EventCounterRemoved, func(e Event) {
		events = append(events, e)
	})

	target := counters.NewCounters()
	target.Add(counters.CounterTypeCharge, 3)

	if !ops.RemoveFromCard("card1", target, counters.CounterTypeCharge, 2, "alice", time.Now()) {
		t.Fatal("expected removal to succeed")
	}
	if target.GetCount(counters.CounterTypeCharge) != 1 {
		t.Fatalf("expected 1 charge counter left, got %d", target.GetCount(counters.CounterTypeCharge))
	}
	if len(events) != 1 || events[0].Metadata["counter_name"] != "charge" {
		t.Fatalf("expected one counter-removed event, got %+v", events)
	}

	// Removing counters that are not there emits nothing.
	if ops.RemoveFromCard("card1", target, counters.CounterTypeOil, 1, "alice", time.Now()) {
		t.Fatal("expected removal of absent counter kind to fail")
	}
	if ops.RemoveFromCard("card1", nil, counters.CounterTypeCharge, 1, "alice", time.Now()) {
		t.Fatal("expected removal from nil target to fail")
	}
	if len(events) != 1 {
		t.Fatalf("expected no further events, got %d", len(events))
	}
}

func TestCounterOperationsNilBus(t *testing.T) {
	ops := NewCounterOperations(nil)
	target := counters.NewCounters()

	ops.AddToCard("card1", target, counters.CounterTypeP1P1, 1, "alice", time.Now())
	if target.GetCount(counters.CounterTypeP1P1) != 1 {
		t.Fatalf("expected counter applied without a bus, got %d", target.GetCount(counters.CounterTypeP1P1))
	}
}
