// Package watchers provides the per-turn trackers the clause evaluator's
// evidence gates read. Each watcher subscribes to rules events and exposes
// its counts; BuildTrackers assembles them into the evaluator's tracker view.
// A tracker that is not installed stays nil in the view, which the evaluator
// reports as Unknown rather than False.
package watchers

import (
	"github.com/magefree/mage-oracle-go/internal/game/conditions"
	"github.com/magefree/mage-oracle-go/internal/game/rules"
)

// CardsDiscardedWatcher tracks cards discarded by each player this turn.
type CardsDiscardedWatcher struct {
	*rules.BaseWatcher
	discarded map[string]int // playerID -> count
}

// NewCardsDiscardedWatcher creates a new cards discarded watcher.
func NewCardsDiscardedWatcher() *CardsDiscardedWatcher {
	w := &CardsDiscardedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		discarded:   make(map[string]int),
	}
	w.SetKey("CardsDiscardedWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *CardsDiscardedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventDiscardedCard {
		return
	}
	playerID := event.PlayerID
	if playerID == "" {
		playerID = event.Controller
	}
	if playerID == "" {
		return
	}
	w.discarded[playerID]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsDiscardedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.discarded = make(map[string]int)
}

// GetCount returns the number of cards a player discarded this turn.
func (w *CardsDiscardedWatcher) GetCount(playerID string) int {
	return w.discarded[playerID]
}

// Copy creates a copy of this watcher.
func (w *CardsDiscardedWatcher) Copy() rules.Watcher {
	cpy := NewCardsDiscardedWatcher()
	cpy.SetControllerID(w.GetControllerID())
	cpy.SetSourceID(w.GetSourceID())
	cpy.SetCondition(w.ConditionMet())
	for k, v := range w.discarded {
		cpy.discarded[k] = v
	}
	return cpy
}

// DamageDoneWatcher tracks damage dealt to players and permanents this turn.
type DamageDoneWatcher struct {
	*rules.BaseWatcher
	toPlayers    map[string]int // playerID -> damage
	toPermanents map[string]int // permanentID -> damage
}

// NewDamageDoneWatcher creates a new damage done watcher.
func NewDamageDoneWatcher() *DamageDoneWatcher {
	w := &DamageDoneWatcher{
		BaseWatcher:  rules.NewBaseWatcher(rules.WatcherScopeGame),
		toPlayers:    make(map[string]int),
		toPermanents: make(map[string]int),
	}
	w.SetKey("DamageDoneWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *DamageDoneWatcher) Watch(event rules.Event) {
	if event.Amount <= 0 || event.TargetID == "" {
		return
	}
	switch event.Type {
	case rules.EventDamagedPlayer:
		w.toPlayers[event.TargetID] += event.Amount
	case rules.EventDamagedPermanent:
		w.toPermanents[event.TargetID] += event.Amount
	default:
		return
	}
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *DamageDoneWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.toPlayers = make(map[string]int)
	w.toPermanents = make(map[string]int)
}

// DamageToPlayer returns the damage a player has taken this turn.
func (w *DamageDoneWatcher) DamageToPlayer(playerID string) int {
	return w.toPlayers[playerID]
}

// DamageToPermanent returns the damage a permanent has taken this turn.
func (w *DamageDoneWatcher) DamageToPermanent(permanentID string) int {
	return w.toPermanents[permanentID]
}

// Copy creates a copy of this watcher.
func (w *DamageDoneWatcher) Copy() rules.Watcher {
	cpy := NewDamageDoneWatcher()
	cpy.SetControllerID(w.GetControllerID())
	cpy.SetSourceID(w.GetSourceID())
	cpy.SetCondition(w.ConditionMet())
	for k, v := range w.toPlayers {
		cpy.toPlayers[k] = v
	}
	for k, v := range w.toPermanents {
		cpy.toPermanents[k] = v
	}
	return cpy
}

// LifeGainedWatcher tracks life gained by each player this turn.
type LifeGainedWatcher struct {
	*rules.BaseWatcher
	gained map[string]int // playerID -> life gained
}

// NewLifeGainedWatcher creates a new life gained watcher.
func NewLifeGainedWatcher() *LifeGainedWatcher {
	w := &LifeGainedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		gained:      make(map[string]int),
	}
	w.SetKey("LifeGainedWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *LifeGainedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventGainedLife || event.Amount <= 0 {
		return
	}
	playerID := event.PlayerID
	if playerID == "" {
		playerID = event.Controller
	}
	if playerID == "" {
		return
	}
	w.gained[playerID] += event.Amount
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *LifeGainedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.gained = make(map[string]int)
}

// GetLifeGained returns the life a player has gained this turn.
func (w *LifeGainedWatcher) GetLifeGained(playerID string) int {
	return w.gained[playerID]
}

// Copy creates a copy of this watcher.
func (w *LifeGainedWatcher) Copy() rules.Watcher {
	cpy := NewLifeGainedWatcher()
	cpy.SetControllerID(w.GetControllerID())
	cpy.SetSourceID(w.GetSourceID())
	cpy.SetCondition(w.ConditionMet())
	for k, v := range w.gained {
		cpy.gained[k] = v
	}
	return cpy
}

// ChosenNumberWatcher tracks the number most recently chosen for each source
// ("choose a number" effects); the chosen-number clause reads it by source ID.
type ChosenNumberWatcher struct {
	*rules.BaseWatcher
	chosen map[string]int // sourceID -> chosen number
}

// NewChosenNumberWatcher creates a new chosen number watcher.
func NewChosenNumberWatcher() *ChosenNumberWatcher {
	w := &ChosenNumberWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		chosen:      make(map[string]int),
	}
	w.SetKey("ChosenNumberWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *ChosenNumberWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventNumberChosen || event.SourceID == "" {
		return
	}
	w.chosen[event.SourceID] = event.Amount
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *ChosenNumberWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.chosen = make(map[string]int)
}

// ChosenNumber returns the number chosen for a source, if any.
func (w *ChosenNumberWatcher) ChosenNumber(sourceID string) (int, bool) {
	n, ok := w.chosen[sourceID]
	return n, ok
}

// Copy creates a copy of this watcher.
func (w *ChosenNumberWatcher) Copy() rules.Watcher {
	cpy := NewChosenNumberWatcher()
	cpy.SetControllerID(w.GetControllerID())
	cpy.SetSourceID(w.GetSourceID())
	cpy.SetCondition(w.ConditionMet())
	for k, v := range w.chosen {
		cpy.chosen[k] = v
	}
	return cpy
}

// PlaneswalkedWatcher tracks which players have planeswalked this turn.
// Only meaningful in Planechase games.
type PlaneswalkedWatcher struct {
	*rules.BaseWatcher
	walked map[string]bool
}

// NewPlaneswalkedWatcher creates a new planeswalked watcher.
func NewPlaneswalkedWatcher() *PlaneswalkedWatcher {
	w := &PlaneswalkedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame),
		walked:      make(map[string]bool),
	}
	w.SetKey("PlaneswalkedWatcher")
	return w
}

// Watch implements the Watcher interface.
func (w *PlaneswalkedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventPlaneswalked {
		return
	}
	playerID := event.PlayerID
	if playerID == "" {
		playerID = event.Controller
	}
	if playerID == "" {
		return
	}
	w.walked[playerID] = true
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *PlaneswalkedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.walked = make(map[string]bool)
}

// HasPlaneswalked reports whether a player planeswalked this turn.
func (w *PlaneswalkedWatcher) HasPlaneswalked(playerID string) bool {
	return w.walked[playerID]
}

// Copy creates a copy of this watcher.
func (w *PlaneswalkedWatcher) Copy() rules.Watcher {
	cpy := NewPlaneswalkedWatcher()
	cpy.SetControllerID(w.GetControllerID())
	cpy.SetSourceID(w.GetSourceID())
	cpy.SetCondition(w.ConditionMet())
	for k, v := range w.walked {
		cpy.walked[k] = v
	}
	return cpy
}

// BuildTrackers assembles the evaluator's tracker view from a watcher
// registry. Only installed watchers contribute; the rest of the view stays
// nil so evidence gates read as untracked.
func BuildTrackers(registry *rules.WatcherRegistry) conditions.Trackers {
	var trackers conditions.Trackers
	if registry == nil {
		return trackers
	}
	if w, ok := registry.GetWatcher("CardsDiscardedWatcher").(*CardsDiscardedWatcher); ok {
		trackers.DiscardedThisTurn = make(map[string]int, len(w.discarded))
		for k, v := range w.discarded {
			trackers.DiscardedThisTurn[k] = v
		}
	}
	if w, ok := registry.GetWatcher("DamageDoneWatcher").(*DamageDoneWatcher); ok {
		trackers.DamageToPlayers = make(map[string]int, len(w.toPlayers))
		for k, v := range w.toPlayers {
			trackers.DamageToPlayers[k] = v
		}
		trackers.DamageToPermanents = make(map[string]int, len(w.toPermanents))
		for k, v := range w.toPermanents {
			trackers.DamageToPermanents[k] = v
		}
	}
	if w, ok := registry.GetWatcher("LifeGainedWatcher").(*LifeGainedWatcher); ok {
		trackers.LifeGainedThisTurn = make(map[string]int, len(w.gained))
		for k, v := range w.gained {
			trackers.LifeGainedThisTurn[k] = v
		}
	}
	if w, ok := registry.GetWatcher("ChosenNumberWatcher").(*ChosenNumberWatcher); ok {
		trackers.ChosenNumbers = make(map[string]int, len(w.chosen))
		for k, v := range w.chosen {
			trackers.ChosenNumbers[k] = v
		}
	}
	if w, ok := registry.GetWatcher("PlaneswalkedWatcher").(*PlaneswalkedWatcher); ok {
		trackers.Planeswalked = make(map[string]bool, len(w.walked))
		for k, v := range w.walked {
			trackers.Planeswalked[k] = v
		}
	}
	return trackers
}
