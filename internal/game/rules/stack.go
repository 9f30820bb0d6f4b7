package rules

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/magefree/mage-oracle-go/internal/game/conditions"
)

// StackItemKind describes the type of object on the stack.
type StackItemKind string

const (
	// StackItemKindSpell represents a spell cast by a player.
	StackItemKindSpell StackItemKind = "SPELL"
	// StackItemKindActivated represents an activated ability.
	StackItemKindActivated StackItemKind = "ACTIVATED"
	// StackItemKindTriggered represents a triggered ability.
	StackItemKindTriggered StackItemKind = "TRIGGERED"
)

// StackItem represents a single object on the stack. Triggered items carry
// the trigger instance that produced them so the intervening-if clause can be
// rechecked at resolution.
type StackItem struct {
	ID          string
	Controller  string
	Description string
	Kind        StackItemKind
	SourceID    string
	Metadata    map[string]string
	Trigger     *TriggerInstance
	Resolve     func() error
}

// StackObject is a stack item produced from a trigger queue.
type StackObject = StackItem

// StackManager manages the game stack.
type StackManager struct {
	mu    sync.Mutex
	items []StackItem
}

// NewStackManager creates a new stack manager.
func NewStackManager() *StackManager {
	return &StackManager{
		items: make([]StackItem, 0, 16),
	}
}

// Push adds an item to the top of the stack.
func (sm *StackManager) Push(item StackItem) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.items = append(sm.items, item)
}

// Pop removes the top item from the stack.
func (sm *StackManager) Pop() (StackItem, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if len(sm.items) == 0 {
		return StackItem{}, errors.New("stack empty")
	}

	idx := len(sm.items) - 1
	item := sm.items[idx]
	sm.items = sm.items[:idx]
	return item, nil
}

// Remove deletes an item from anywhere in the stack by ID.
func (sm *StackManager) Remove(id string) (StackItem, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for idx := len(sm.items) - 1; idx >= 0; idx-- {
		if sm.items[idx].ID == id {
			item := sm.items[idx]
			sm.items = append(sm.items[:idx], sm.items[idx+1:]...)
			return item, true
		}
	}
	return StackItem{}, false
}

// Peek returns the top item without removing it.
func (sm *StackManager) Peek() (StackItem, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if len(sm.items) == 0 {
		return StackItem{}, false
	}
	return sm.items[len(sm.items)-1], true
}

// List returns a copy of all stack items (topmost last).
func (sm *StackManager) List() []StackItem {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	cpy := make([]StackItem, len(sm.items))
	copy(cpy, sm.items)
	return cpy
}

// IsEmpty returns whether the stack is empty.
func (sm *StackManager) IsEmpty() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.items) == 0
}

// PutTriggersOnStack orders a batch of simultaneous triggers APNAP and pushes
// them: the active player's triggers go on the stack first (resolving last),
// then each other player's in turn order. Within one player, earlier
// timestamps push first, with the creation sequence breaking ties. When the
// active player is missing from turnOrder, the active player's triggers still
// push first and the remaining players follow in timestamp order.
// The pushed objects are returned bottom-up.
func PutTriggersOnStack(sm *StackManager, queue []TriggerInstance, activePlayerID string, turnOrder []string) []StackObject {
	if len(queue) == 0 {
		return nil
	}

	sorted := make([]TriggerInstance, len(queue))
	copy(sorted, queue)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].Seq < sorted[j].Seq
	})

	playerOrder := apnapOrder(sorted, activePlayerID, turnOrder)

	var pushed []StackObject
	for _, player := range playerOrder {
		for _, trigger := range sorted {
			if trigger.Controller != player {
				continue
			}
			trigger := trigger
			obj := StackObject{
				ID:          uuid.NewString(),
				Controller:  trigger.Controller,
				Description: trigger.SourceName,
				Kind:        StackItemKindTriggered,
				SourceID:    trigger.SourceID,
				Trigger:     &trigger,
			}
			sm.Push(obj)
			pushed = append(pushed, obj)
		}
	}
	return pushed
}

// apnapOrder lists the controllers appearing in the queue, active player
// first, then following turn order. When the active player is missing from
// turnOrder, the active player's triggers still come first and the rest
// follow in timestamp order; controllers absent from turnOrder are appended
// in first-appearance order.
func apnapOrder(queue []TriggerInstance, activePlayerID string, turnOrder []string) []string {
	appearance := make([]string, 0, 4)
	seen := make(map[string]bool)
	for _, t := range queue {
		if !seen[t.Controller] {
			seen[t.Controller] = true
			appearance = append(appearance, t.Controller)
		}
	}

	activeIdx := -1
	for i, id := range turnOrder {
		if id == activePlayerID {
			activeIdx = i
			break
		}
	}
	if activeIdx < 0 {
		// The queue is already timestamp-sorted, so appearance order is
		// timestamp order; the active player still goes first.
		out := make([]string, 0, len(appearance))
		if seen[activePlayerID] {
			out = append(out, activePlayerID)
		}
		for _, id := range appearance {
			if id != activePlayerID {
				out = append(out, id)
			}
		}
		return out
	}

	var order []string
	used := make(map[string]bool)
	for i := 0; i < len(turnOrder); i++ {
		id := turnOrder[(activeIdx+i)%len(turnOrder)]
		if seen[id] && !used[id] {
			used[id] = true
			order = append(order, id)
		}
	}
	for _, id := range appearance {
		if !used[id] {
			order = append(order, id)
		}
	}
	return order
}

// ResolveTop pops the top stack object and, for triggered items with an
// intervening-if clause, rechecks the clause against the resolution-time
// state. A clause that no longer evaluates True means the ability does
// nothing on resolution; the object is still removed from the stack.
func (sm *StackManager) ResolveTop(state conditions.StateReader, refs conditions.Refs) (StackObject, bool, error) {
	item, err := sm.Pop()
	if err != nil {
		return StackObject{}, false, err
	}
	if item.Trigger == nil || item.Trigger.Clause == "" {
		return item, true, nil
	}
	if state == nil {
		state = &conditions.Snapshot{}
	}
	if refs.SourcePermanentID == "" {
		refs.SourcePermanentID = item.SourceID
	}
	res := conditions.Evaluate(item.Trigger.Clause, item.Controller, nil, refs, state)
	return item, res == conditions.True, nil
}
