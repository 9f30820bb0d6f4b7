// Package oracle parses card rules text ("Oracle text") into a structured,
// executable intermediate representation. Parsing is a pure function of its
// input: unrecognized clauses degrade to Unknown steps carrying the raw text,
// and no entry point ever panics on arbitrary input.
package oracle

import (
	"strconv"

	"github.com/magefree/mage-oracle-go/internal/game/counters"
)

// AbilityType classifies an ability by its structural framing.
type AbilityType string

const (
	AbilityTriggered   AbilityType = "triggered"
	AbilityActivated   AbilityType = "activated"
	AbilityStatic      AbilityType = "static"
	AbilityReplacement AbilityType = "replacement"
)

// StepKind is the tag of the Step union.
type StepKind string

const (
	StepDraw         StepKind = "draw"
	StepDiscard      StepKind = "discard"
	StepMill         StepKind = "mill"
	StepScry         StepKind = "scry"
	StepSurveil      StepKind = "surveil"
	StepExileTop     StepKind = "exile_top"
	StepImpulseExile StepKind = "impulse_exile_top"
	StepCreateToken  StepKind = "create_token"
	StepAddMana      StepKind = "add_mana"
	StepMoveZone     StepKind = "move_zone"
	StepLoseLife     StepKind = "lose_life"
	StepGainLife     StepKind = "gain_life"
	StepUnknown      StepKind = "unknown"
)

// SelectorKind enumerates the recognized "who" phrases.
type SelectorKind string

const (
	SelectorYou            SelectorKind = "you"
	SelectorEachOpponent   SelectorKind = "each_opponent"
	SelectorEachPlayer     SelectorKind = "each_player"
	SelectorTargetPlayer   SelectorKind = "target_player"
	SelectorTargetOpponent SelectorKind = "target_opponent"
	SelectorThoseOpponents SelectorKind = "each_of_those_opponents"
	SelectorUnknown        SelectorKind = "unknown"
)

// Selector names the player set an effect applies to. An unknown selector
// always carries the raw phrase it failed to resolve.
type Selector struct {
	Kind SelectorKind
	Raw  string
}

// AmountKind is the tag of the Amount union.
type AmountKind string

const (
	AmountNumber  AmountKind = "number"
	AmountX       AmountKind = "x"
	AmountUnknown AmountKind = "unknown"
)

// Amount is a parsed quantity. Unparsed quantities are never coerced to a
// number; the literal source phrase is preserved in Raw.
type Amount struct {
	Kind  AmountKind
	Value int
	Raw   string
}

func (a Amount) String() string {
	switch a.Kind {
	case AmountNumber:
		return strconv.Itoa(a.Value)
	case AmountX:
		return "X"
	default:
		return a.Raw
	}
}

// Permission is what an impulse effect lets you do with the exiled cards.
type Permission string

const (
	PermissionPlay Permission = "play"
	PermissionCast Permission = "cast"
)

// Duration is the canonical form of an impulse permission window.
type Duration string

const (
	DurationThisTurn           Duration = "this_turn"
	DurationUntilEndOfNextTurn Duration = "until_end_of_next_turn"
	DurationUntilNextTurn      Duration = "until_next_turn"
	DurationUntilNextEndStep   Duration = "until_next_end_step"
	DurationUntilNextUpkeep    Duration = "until_next_upkeep"
	DurationDuringNextTurn     Duration = "during_next_turn"
	DurationWhileExiled        Duration = "as_long_as_remains_exiled"
	DurationWhileControlSource Duration = "as_long_as_control_source"
	DurationUntilExileAnother  Duration = "until_exile_another"
	DurationDuringResolution   Duration = "during_resolution"
)

// PlayConditionKind tags the optional restriction on an impulse permission.
type PlayConditionKind string

const (
	PlayConditionColor        PlayConditionKind = "color"
	PlayConditionType         PlayConditionKind = "type"
	PlayConditionAttackedWith PlayConditionKind = "attacked_with"
)

// PlayCondition restricts which exiled cards the permission covers,
// e.g. "if it's a red card".
type PlayCondition struct {
	Kind  PlayConditionKind
	Color string
	Type  string
	Raw   string
}

// Step is one unit of an ability's effect. It is a tagged union keyed by
// Kind: only the fields relevant to a given kind are populated. Steps are
// immutable once a parse pass has emitted them; the merge passes replace
// steps rather than mutating shared ones.
type Step struct {
	Kind     StepKind
	Who      Selector
	Amount   Amount
	Optional bool
	Sequence string // "then" when the clause followed a sequencing word
	Mode     int    // 1-based modal bullet index, 0 outside modal text
	Chapter  int    // saga chapter number, 0 outside saga text
	Raw      string // source clause; always populated for unknown steps

	// create_token
	Token        string
	EntersTapped bool
	WithCounters map[counters.CounterType]int

	// exile_top / impulse_exile_top
	Permission Permission
	Duration   Duration
	Condition  *PlayCondition
	FaceDown   bool

	// add_mana
	Mana string

	// move_zone
	Zone string
}

// Ability is the parsed form of one ability on a card.
type Ability struct {
	ID   string
	Type AbilityType

	// Triggered abilities.
	TriggerWord      string // "when", "whenever" or "at"
	TriggerCondition string

	// Activated abilities.
	Cost string

	HasInterveningIf    bool
	InterveningIfClause string

	Steps []Step
	Raw   string
}

// ParseResult is the output of Parse.
type ParseResult struct {
	Abilities []Ability
}

// UnknownSteps returns every unknown step across all abilities, for
// coverage-gap reporting.
func (r ParseResult) UnknownSteps() []Step {
	var out []Step
	for _, a := range r.Abilities {
		for _, s := range a.Steps {
			if s.Kind == StepUnknown {
				out = append(out, s)
			}
		}
	}
	return out
}

// StepCount returns the total number of steps across all abilities.
func (r ParseResult) StepCount() int {
	n := 0
	for _, a := range r.Abilities {
		n += len(a.Steps)
	}
	return n
}
