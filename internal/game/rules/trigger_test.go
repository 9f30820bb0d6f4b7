package rules

import (
	"strings"
	"testing"
	"time"

	"github.com/magefree/mage-oracle-go/internal/game/conditions"
	"github.com/magefree/mage-oracle-go/internal/oracle"
)

func drawAbility(hasIf bool, clause string) oracle.Ability {
	return oracle.Ability{
		Type:                oracle.AbilityTriggered,
		TriggerWord:         "at",
		TriggerCondition:    "the beginning of your upkeep",
		HasInterveningIf:    hasIf,
		InterveningIfClause: clause,
		Steps: []oracle.Step{
			{Kind: oracle.StepDraw, Who: oracle.Selector{Kind: oracle.SelectorYou}, Amount: oracle.Amount{Kind: oracle.AmountNumber, Value: 1}},
		},
	}
}

func artifactBattlefield(controller string) *conditions.Snapshot {
	return &conditions.Snapshot{
		Battlefield: []conditions.Permanent{
			{ID: "art1", Name: "Sol Ring", Controller: controller, Types: []string{"Artifact"}},
		},
	}
}

func TestProcessEventQueuesTrigger(t *testing.T) {
	tm := NewTriggerManager()
	ability := RegisteredAbility{
		ID:         "a1",
		SourceID:   "perm1",
		SourceName: "Howling Mine",
		Controller: "alice",
		EventType:  EventUpkeepStep,
		Ability:    drawAbility(false, ""),
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	result := tm.ProcessEvent(EventUpkeepStep, []RegisteredAbility{ability},
		EventData{Event: NewEvent(EventUpkeepStep, "", "", "alice")}, &ProcessOptions{Now: now})

	if len(result.Triggers) != 1 {
		t.Fatalf("expected 1 trigger, got %d", len(result.Triggers))
	}
	trig := result.Triggers[0]
	if trig.AbilityID != "a1" || trig.SourceID != "perm1" || trig.Controller != "alice" {
		t.Fatalf("trigger fields not copied from ability: %+v", trig)
	}
	if trig.ConditionAtTrigger != conditions.True {
		t.Fatalf("expected condition True for clause-free ability, got %s", trig.ConditionAtTrigger)
	}
	if !trig.Timestamp.Equal(now) {
		t.Fatalf("expected timestamp %v, got %v", now, trig.Timestamp)
	}
	if len(trig.Steps) != 1 || trig.Steps[0].Kind != oracle.StepDraw {
		t.Fatalf("expected the ability's steps on the trigger, got %+v", trig.Steps)
	}
	if len(result.Log) != 0 {
		t.Fatalf("expected empty log, got %v", result.Log)
	}
}

func TestProcessEventSeqIncrements(t *testing.T) {
	tm := NewTriggerManager()
	ability := RegisteredAbility{
		ID: "a1", SourceID: "perm1", Controller: "alice",
		EventType: EventDrewCard, Ability: drawAbility(false, ""),
	}

	first := tm.ProcessEvent(EventDrewCard, []RegisteredAbility{ability}, EventData{}, nil)
	second := tm.ProcessEvent(EventDrewCard, []RegisteredAbility{ability}, EventData{}, nil)

	if len(first.Triggers) != 1 || len(second.Triggers) != 1 {
		t.Fatalf("expected one trigger per event")
	}
	if second.Triggers[0].Seq <= first.Triggers[0].Seq {
		t.Fatalf("expected sequence to increase: %d then %d",
			first.Triggers[0].Seq, second.Triggers[0].Seq)
	}
}

func TestProcessEventFiltersByEventType(t *testing.T) {
	tm := NewTriggerManager()
	ability := RegisteredAbility{
		ID: "a1", Controller: "alice",
		EventType: EventDrewCard, Ability: drawAbility(false, ""),
	}

	result := tm.ProcessEvent(EventGainedLife, []RegisteredAbility{ability}, EventData{}, nil)
	if len(result.Triggers) != 0 {
		t.Fatalf("expected no triggers for mismatched event type, got %d", len(result.Triggers))
	}
	if len(result.Log) != 0 {
		t.Fatalf("a non-matching ability is skipped silently, got log %v", result.Log)
	}
}

func TestProcessEventClauseTrue(t *testing.T) {
	tm := NewTriggerManager()
	ability := RegisteredAbility{
		ID: "a1", SourceID: "perm1", Controller: "alice",
		EventType: EventUpkeepStep,
		Ability:   drawAbility(true, "you control an artifact"),
	}

	result := tm.ProcessEvent(EventUpkeepStep, []RegisteredAbility{ability},
		EventData{State: artifactBattlefield("alice")}, nil)

	if len(result.Triggers) != 1 {
		t.Fatalf("expected the trigger to queue, got %d (log %v)", len(result.Triggers), result.Log)
	}
	trig := result.Triggers[0]
	if trig.Clause != "you control an artifact" {
		t.Fatalf("expected clause on the instance, got %q", trig.Clause)
	}
	if trig.ConditionAtTrigger != conditions.True {
		t.Fatalf("expected trigger-time condition True, got %s", trig.ConditionAtTrigger)
	}
}

func TestProcessEventClauseFalseSuppresses(t *testing.T) {
	tm := NewTriggerManager()
	ability := RegisteredAbility{
		ID: "a1", Controller: "alice",
		EventType: EventUpkeepStep,
		Ability:   drawAbility(true, "you control an artifact"),
	}

	// Tracked, empty battlefield: the answer is a definite no.
	state := &conditions.Snapshot{Battlefield: []conditions.Permanent{}}
	result := tm.ProcessEvent(EventUpkeepStep, []RegisteredAbility{ability},
		EventData{State: state}, nil)

	if len(result.Triggers) != 0 {
		t.Fatalf("expected suppression, got %d triggers", len(result.Triggers))
	}
	if len(result.Log) != 1 {
		t.Fatalf("expected one log line, got %v", result.Log)
	}
	if !strings.Contains(result.Log[0], `clause "you control an artifact" evaluated false, trigger not queued`) {
		t.Fatalf("unexpected log line: %s", result.Log[0])
	}
}

func TestProcessEventClauseUnknownSuppresses(t *testing.T) {
	tm := NewTriggerManager()
	ability := RegisteredAbility{
		ID: "a1", Controller: "alice",
		EventType: EventUpkeepStep,
		Ability:   drawAbility(true, "you control an artifact"),
	}

	// Nil battlefield view: the fact is untracked, so Unknown, and Unknown
	// never queues.
	result := tm.ProcessEvent(EventUpkeepStep, []RegisteredAbility{ability},
		EventData{State: &conditions.Snapshot{}}, nil)

	if len(result.Triggers) != 0 {
		t.Fatalf("expected suppression on unknown, got %d triggers", len(result.Triggers))
	}
	if len(result.Log) != 1 || !strings.Contains(result.Log[0], "evaluated unknown, trigger not queued") {
		t.Fatalf("unexpected log: %v", result.Log)
	}
}

func TestProcessEventUnrecognizedClause(t *testing.T) {
	tm := NewTriggerManager()
	ability := RegisteredAbility{
		ID: "a1", Controller: "alice",
		EventType: EventUpkeepStep,
		Ability:   drawAbility(true, "the stars align over the wastes"),
	}

	result := tm.ProcessEvent(EventUpkeepStep, []RegisteredAbility{ability},
		EventData{State: artifactBattlefield("alice")}, nil)

	if len(result.Triggers) != 0 {
		t.Fatalf("an unrecognized clause must not queue, got %d triggers", len(result.Triggers))
	}
	if len(result.Log) != 1 || !strings.Contains(result.Log[0],
		`unrecognized clause "the stars align over the wastes", trigger not queued`) {
		t.Fatalf("unexpected log: %v", result.Log)
	}
}

func TestProcessEventNilStateReadsUntracked(t *testing.T) {
	tm := NewTriggerManager()
	ability := RegisteredAbility{
		ID: "a1", Controller: "alice",
		EventType: EventUpkeepStep,
		Ability:   drawAbility(true, "you control an artifact"),
	}

	result := tm.ProcessEvent(EventUpkeepStep, []RegisteredAbility{ability}, EventData{}, nil)
	if len(result.Triggers) != 0 {
		t.Fatalf("nil state must behave as untracked, got %d triggers", len(result.Triggers))
	}
	if len(result.Log) != 1 || !strings.Contains(result.Log[0], "evaluated unknown") {
		t.Fatalf("unexpected log: %v", result.Log)
	}
}

func TestProcessEventUsesRegisteredSet(t *testing.T) {
	tm := NewTriggerManager()
	tm.Register(RegisteredAbility{
		ID: "a1", Controller: "alice",
		EventType: EventDrewCard, Ability: drawAbility(false, ""),
	})
	tm.Register(RegisteredAbility{
		ID: "a2", Controller: "bob",
		EventType: EventGainedLife, Ability: drawAbility(false, ""),
	})

	result := tm.ProcessEvent(EventDrewCard, nil, EventData{}, nil)
	if len(result.Triggers) != 1 || result.Triggers[0].AbilityID != "a1" {
		t.Fatalf("expected only a1 to fire from the registered set, got %+v", result.Triggers)
	}
}

func TestRegisterUnregister(t *testing.T) {
	tm := NewTriggerManager()
	id1 := tm.Register(RegisteredAbility{ID: "a1", EventType: EventDrewCard})
	id2 := tm.Register(RegisteredAbility{EventType: EventGainedLife})

	if id1 != "a1" {
		t.Fatalf("expected explicit ID to be kept, got %s", id1)
	}
	if id2 == "" {
		t.Fatal("expected a generated ID")
	}

	registered := tm.Registered()
	if len(registered) != 2 || registered[0].ID != "a1" || registered[1].ID != id2 {
		t.Fatalf("expected registration order preserved, got %+v", registered)
	}

	tm.Unregister("a1")
	registered = tm.Registered()
	if len(registered) != 1 || registered[0].ID != id2 {
		t.Fatalf("expected only %s after unregister, got %+v", id2, registered)
	}

	// Unregistering an unknown ID is a no-op.
	tm.Unregister("missing")
	if len(tm.Registered()) != 1 {
		t.Fatal("unregistering an unknown ID must not change the set")
	}
}
