package conditions

import (
	"strings"

	"github.com/magefree/mage-oracle-go/internal/game/counters"
)

// Permanent is the read view of one battlefield object. Counters is nil when
// counter state was not captured for the object, which is distinct from an
// empty map (captured, no counters).
type Permanent struct {
	ID          string
	Name        string
	Controller  string
	Types       []string
	Subtypes    []string
	Colors      []string
	Tapped      bool
	Attacking   bool
	Blocking    bool
	AttachedTo  string
	Attachments []string
	Counters    map[counters.CounterType]int
	SetCode     string
}

// HasType reports whether the permanent has the given card type
// (case-insensitive).
func (p *Permanent) HasType(t string) bool {
	for _, have := range p.Types {
		if strings.EqualFold(have, t) {
			return true
		}
	}
	return false
}

// HasSubtype reports whether the permanent has the given subtype
// (case-insensitive).
func (p *Permanent) HasSubtype(t string) bool {
	for _, have := range p.Subtypes {
		if strings.EqualFold(have, t) {
			return true
		}
	}
	return false
}

// HasColor reports whether the permanent has the given color
// (case-insensitive color word, e.g. "white").
func (p *Permanent) HasColor(c string) bool {
	for _, have := range p.Colors {
		if strings.EqualFold(have, c) {
			return true
		}
	}
	return false
}

// Player is the read view of one player. Pointer fields are nil when the
// corresponding fact was not captured.
type Player struct {
	ID          string
	Team        string
	Life        int
	CardsInHand *int
	Poison      *int
}

// ExiledCard is the read view of one card in exile. ExiledWith names the
// permanent or spell that exiled it, when tracked.
type ExiledCard struct {
	ID         string
	Name       string
	Types      []string
	ExiledWith string
}

// ManaSpent records how a stack item's cost was paid. FromCreatures is nil
// when the payment breakdown did not attribute mana to sources.
type ManaSpent struct {
	Total         int
	FromCreatures *int
	ByColor       map[string]int
}

// StackItem is the read view of a spell or ability on the stack.
// ConvokeTapped lists creatures tapped via convoke while casting it; it is
// nil when convoke payment was not tracked.
type StackItem struct {
	ID            string
	Name          string
	Controller    string
	WasCast       bool
	WasKicked     bool
	ManaSpent     *ManaSpent
	ConvokeTapped []string
}

// Trackers holds per-turn bookkeeping. A nil map means the corresponding
// watcher is not installed, so clauses needing it evaluate to Unknown rather
// than False.
type Trackers struct {
	DiscardedThisTurn  map[string]int // player ID -> cards discarded
	DamageToPlayers    map[string]int // player ID -> damage taken
	DamageToPermanents map[string]int // permanent ID -> damage taken
	LifeGainedThisTurn map[string]int // player ID -> life gained
	ChosenNumbers      map[string]int // source ID -> number chosen for it
	Planeswalked       map[string]bool
}

// TurnInfo identifies whose turn it is and where in it the game is. Phase
// values follow the turn structure names ("beginning", "precombat_main",
// "combat", "postcombat_main", "ending").
type TurnInfo struct {
	ActivePlayer string
	Phase        string
	Step         string
}

// HouseRules carries optional-format switches that gate whole clause
// families.
type HouseRules struct {
	PlanechaseEnabled bool
}

// Refs carries the resolved referents the trigger context supplies. Clause
// evaluation never guesses an identity: a pronoun with no matching ref is
// answered from the source permanent or, failing that, yields Unknown.
// Pointer booleans distinguish "known false" from "not tracked".
type Refs struct {
	ThisCreatureID        string
	SourcePermanentID     string
	DefendingPlayerID     string
	TargetOpponentID      string
	TriggeringStackItemID string
	ExiledCardID          string
	WasCast               *bool
	WasKicked             *bool
	WouldDrawCard         *bool
}

// StateReader is the read-only game state surface clause evaluation runs
// against. Each view's second return reports whether that slice of state was
// captured at all; absent views produce Unknown, not False.
type StateReader interface {
	BattlefieldView() ([]Permanent, bool)
	PlayerView(id string) (Player, bool)
	PlayerIDs() []string
	ExileView() ([]ExiledCard, bool)
	StackItemView(id string) (StackItem, bool)
	TurnView() (TurnInfo, bool)
	TrackerView() Trackers
	Rules() HouseRules
}

// Snapshot is a literal StateReader for tests and for callers that assemble
// state by hand. Nil slices and nil pointers mark untracked views.
type Snapshot struct {
	Battlefield []Permanent
	Players     []Player
	Exile       []ExiledCard
	Stack       []StackItem
	Turn        *TurnInfo
	PerTurn     Trackers
	House       HouseRules
}

func (s *Snapshot) BattlefieldView() ([]Permanent, bool) {
	return s.Battlefield, s.Battlefield != nil
}

func (s *Snapshot) PlayerView(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

func (s *Snapshot) PlayerIDs() []string {
	ids := make([]string, 0, len(s.Players))
	for _, p := range s.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *Snapshot) ExileView() ([]ExiledCard, bool) {
	return s.Exile, s.Exile != nil
}

func (s *Snapshot) StackItemView(id string) (StackItem, bool) {
	for _, item := range s.Stack {
		if item.ID == id {
			return item, true
		}
	}
	return StackItem{}, false
}

func (s *Snapshot) TurnView() (TurnInfo, bool) {
	if s.Turn == nil {
		return TurnInfo{}, false
	}
	return *s.Turn, true
}

func (s *Snapshot) TrackerView() Trackers { return s.PerTurn }

func (s *Snapshot) Rules() HouseRules { return s.House }
