package rules

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magefree/mage-oracle-go/internal/game/conditions"
	"github.com/magefree/mage-oracle-go/internal/oracle"
)

// RegisteredAbility binds a parsed triggered ability to the event type that
// fires it and to the permanent carrying it.
type RegisteredAbility struct {
	ID         string
	SourceID   string
	SourceName string
	Controller string
	EventType  EventType
	Ability    oracle.Ability
}

// TriggerInstance is one firing of a registered ability. For abilities with
// an intervening-if clause, ConditionAtTrigger records the trigger-time
// evaluation; only True instances are ever created.
type TriggerInstance struct {
	ID                 string
	AbilityID          string
	SourceID           string
	SourceName         string
	Controller         string
	Clause             string
	ConditionAtTrigger conditions.Result
	Steps              []oracle.Step
	Event              Event
	Timestamp          time.Time
	Seq                int
}

// EventData carries the event plus the state view and referents the
// intervening-if evaluation runs against.
type EventData struct {
	Event Event
	State conditions.StateReader
	Refs  conditions.Refs
}

// ProcessOptions tunes ProcessEvent. Now overrides the trigger timestamp;
// the zero value uses the wall clock.
type ProcessOptions struct {
	Now time.Time
}

// ProcessResult lists the trigger instances an event produced and a log of
// the decisions taken, one line per suppressed or fallback-evaluated ability.
type ProcessResult struct {
	Triggers []TriggerInstance
	Log      []string
}

// TriggerManager stores registered abilities and turns events into trigger
// instances. Abilities whose intervening-if clause evaluates False or Unknown
// at trigger time are not queued; per rule 603.4 the trigger simply does not
// go on the stack, and Unknown is treated as "cannot confirm", never as
// False-means-fire.
type TriggerManager struct {
	mu         sync.Mutex
	registered map[string]RegisteredAbility
	order      []string
	seq        int
}

// NewTriggerManager creates an empty trigger manager.
func NewTriggerManager() *TriggerManager {
	return &TriggerManager{registered: make(map[string]RegisteredAbility)}
}

// Register adds an ability and returns its ID. Registration order is
// preserved for deterministic event processing.
func (tm *TriggerManager) Register(ability RegisteredAbility) string {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if ability.ID == "" {
		ability.ID = uuid.NewString()
	}
	if _, exists := tm.registered[ability.ID]; !exists {
		tm.order = append(tm.order, ability.ID)
	}
	tm.registered[ability.ID] = ability
	return ability.ID
}

// Unregister removes an ability by ID.
func (tm *TriggerManager) Unregister(id string) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if _, exists := tm.registered[id]; !exists {
		return
	}
	delete(tm.registered, id)
	for i, have := range tm.order {
		if have == id {
			tm.order = append(tm.order[:i], tm.order[i+1:]...)
			break
		}
	}
}

// Registered returns the registered abilities in registration order.
func (tm *TriggerManager) Registered() []RegisteredAbility {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	out := make([]RegisteredAbility, 0, len(tm.order))
	for _, id := range tm.order {
		out = append(out, tm.registered[id])
	}
	return out
}

// ProcessEvent evaluates an event against the given abilities (the manager's
// registered set when abilities is nil) and returns the trigger instances to
// queue. Intervening-if clauses are checked here, at trigger time, against
// data.State; they are checked again at resolution by the stack.
func (tm *TriggerManager) ProcessEvent(eventType EventType, abilities []RegisteredAbility, data EventData, opts *ProcessOptions) ProcessResult {
	if abilities == nil {
		abilities = tm.Registered()
	}
	now := time.Now()
	if opts != nil && !opts.Now.IsZero() {
		now = opts.Now
	}
	if data.State == nil {
		// No state view at all: every evidence gate reads as untracked.
		data.State = &conditions.Snapshot{}
	}

	var result ProcessResult
	for _, ability := range abilities {
		if ability.EventType != eventType {
			continue
		}
		clause := ""
		conditionAtTrigger := conditions.True
		if ability.Ability.HasInterveningIf {
			clause = ability.Ability.InterveningIfClause
			detailed := conditions.EvaluateDetailed(clause, ability.Controller,
				tm.sourcePermanent(ability, data.State), data.Refs, data.State)
			if detailed.Fallback {
				result.Log = append(result.Log, fmt.Sprintf(
					"ability %s: unrecognized clause %q, trigger not queued", ability.ID, clause))
				continue
			}
			if detailed.Value != conditions.True {
				result.Log = append(result.Log, fmt.Sprintf(
					"ability %s: clause %q evaluated %s, trigger not queued",
					ability.ID, clause, detailed.Value))
				continue
			}
			conditionAtTrigger = detailed.Value
		}

		tm.mu.Lock()
		tm.seq++
		seq := tm.seq
		tm.mu.Unlock()

		result.Triggers = append(result.Triggers, TriggerInstance{
			ID:                 uuid.NewString(),
			AbilityID:          ability.ID,
			SourceID:           ability.SourceID,
			SourceName:         ability.SourceName,
			Controller:         ability.Controller,
			Clause:             clause,
			ConditionAtTrigger: conditionAtTrigger,
			Steps:              ability.Ability.Steps,
			Event:              data.Event,
			Timestamp:          now,
			Seq:                seq,
		})
	}
	return result
}

// sourcePermanent finds the ability's source on the battlefield so clause
// subjects like "it" can resolve without a ThisCreature ref.
func (tm *TriggerManager) sourcePermanent(ability RegisteredAbility, state conditions.StateReader) *conditions.Permanent {
	if state == nil {
		return nil
	}
	battlefield, tracked := state.BattlefieldView()
	if !tracked {
		return nil
	}
	for i := range battlefield {
		if battlefield[i].ID == ability.SourceID {
			return &battlefield[i]
		}
	}
	return nil
}
