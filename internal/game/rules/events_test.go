package rules

import "testing"

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	spellCastCount := 0
	lifeGainCount := 0

	handle1 := bus.SubscribeTyped(EventSpellCast, func(e Event) {
		spellCastCount++
	})
	handle2 := bus.SubscribeTyped(EventGainedLife, func(e Event) {
		lifeGainCount++
	})

	bus.Publish(NewEvent(EventSpellCast, "card1", "card1", "player1"))
	if spellCastCount != 1 {
		t.Fatalf("expected spell cast count 1, got %d", spellCastCount)
	}
	if lifeGainCount != 0 {
		t.Fatalf("expected life gain count 0, got %d", lifeGainCount)
	}

	bus.Publish(NewEventWithAmount(EventGainedLife, "player1", "source1", "player1", 5))
	if spellCastCount != 1 {
		t.Fatalf("expected spell cast count still 1, got %d", spellCastCount)
	}
	if lifeGainCount != 1 {
		t.Fatalf("expected life gain count 1, got %d", lifeGainCount)
	}

	bus.Unsubscribe(handle1)
	bus.Publish(NewEvent(EventSpellCast, "card2", "card2", "player1"))
	if spellCastCount != 1 {
		t.Fatalf("expected spell cast count still 1 after unsubscribe, got %d", spellCastCount)
	}

	bus.Unsubscribe(handle2)
	bus.Publish(NewEventWithAmount(EventGainedLife, "player1", "source2", "player1", 3))
	if lifeGainCount != 1 {
		t.Fatalf("expected life gain count still 1 after unsubscribe, got %d", lifeGainCount)
	}
}

func TestEventBusSubscribeAll(t *testing.T) {
	bus := NewEventBus()

	allEventCount := 0
	handle := bus.Subscribe(func(e Event) {
		allEventCount++
	})

	bus.Publish(NewEvent(EventSpellCast, "card1", "card1", "player1"))
	bus.Publish(NewEvent(EventGainedLife, "player1", "source1", "player1"))
	bus.Publish(NewEvent(EventZoneChange, "card2", "card2", "player1"))

	if allEventCount != 3 {
		t.Fatalf("expected all event count 3, got %d", allEventCount)
	}

	bus.Unsubscribe(handle)
	bus.Publish(NewEvent(EventSpellCast, "card3", "card3", "player1"))
	if allEventCount != 3 {
		t.Fatalf("expected all event count still 3 after unsubscribe, got %d", allEventCount)
	}
}

func TestEventBusPublishBatch(t *testing.T) {
	bus := NewEventBus()

	var seen []EventType
	bus.Subscribe(func(e Event) {
		seen = append(seen, e.Type)
	})

	bus.PublishBatch([]Event{
		NewEvent(EventDrewCard, "c1", "", "player1"),
		NewEvent(EventDiscardedCard, "c2", "", "player1"),
	})

	if len(seen) != 2 || seen[0] != EventDrewCard || seen[1] != EventDiscardedCard {
		t.Fatalf("expected batch delivered in order, got %v", seen)
	}
}

func TestEventBusNilListener(t *testing.T) {
	bus := NewEventBus()
	if handle := bus.Subscribe(nil); handle != -1 {
		t.Fatalf("expected -1 for nil listener, got %d", handle)
	}
	if handle := bus.SubscribeTyped(EventSpellCast, nil); handle != -1 {
		t.Fatalf("expected -1 for nil typed listener, got %d", handle)
	}
}

func TestNewEventPopulatesFields(t *testing.T) {
	event := NewEventWithAmount(EventDamagedPlayer, "bob", "creature1", "alice", 3)

	if event.Type != EventDamagedPlayer {
		t.Fatalf("expected type %s, got %s", EventDamagedPlayer, event.Type)
	}
	if event.TargetID != "bob" || event.SourceID != "creature1" {
		t.Fatalf("unexpected target/source: %s/%s", event.TargetID, event.SourceID)
	}
	if event.Controller != "alice" || event.PlayerID != "alice" {
		t.Fatalf("expected controller and player alice, got %s/%s", event.Controller, event.PlayerID)
	}
	if event.Amount != 3 {
		t.Fatalf("expected amount 3, got %d", event.Amount)
	}
	if event.Timestamp.IsZero() {
		t.Fatal("expected a timestamp")
	}
	if event.Metadata == nil {
		t.Fatal("expected metadata map initialized")
	}
}
