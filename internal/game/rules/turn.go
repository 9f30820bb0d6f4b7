package rules

import (
	"fmt"
	"strings"

	"github.com/magefree/mage-oracle-go/internal/game/conditions"
)

// Phase represents the broad phases of a Magic: The Gathering turn.
type Phase int

const (
	PhaseBeginning Phase = iota
	PhasePrecombatMain
	PhaseCombat
	PhasePostcombatMain
	PhaseEnding
)

var phaseNames = map[Phase]string{
	PhaseBeginning:      "BEGINNING",
	PhasePrecombatMain:  "PRECOMBAT_MAIN",
	PhaseCombat:         "COMBAT",
	PhasePostcombatMain: "POSTCOMBAT_MAIN",
	PhaseEnding:         "ENDING",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// Step represents the individual steps that comprise a turn.
type Step int

const (
	StepUntap Step = iota
	StepUpkeep
	StepDraw
	StepMain1
	StepBeginCombat
	StepDeclareAttackers
	StepDeclareBlockers
	StepCombatDamage
	StepEndCombat
	StepMain2
	StepEnd
	StepCleanup
)

var stepNames = map[Step]string{
	StepUntap:            "UNTAP",
	StepUpkeep:           "UPKEEP",
	StepDraw:             "DRAW",
	StepMain1:            "MAIN1",
	StepBeginCombat:      "BEGIN_COMBAT",
	StepDeclareAttackers: "DECLARE_ATTACKERS",
	StepDeclareBlockers:  "DECLARE_BLOCKERS",
	StepCombatDamage:     "COMBAT_DAMAGE",
	StepEndCombat:        "END_COMBAT",
	StepMain2:            "MAIN2",
	StepEnd:              "END",
	StepCleanup:          "CLEANUP",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STEP_%d", int(s))
}

type turnEntry struct {
	phase Phase
	step  Step
}

var turnSequence = []turnEntry{
	{PhaseBeginning, StepUntap},
	{PhaseBeginning, StepUpkeep},
	{PhaseBeginning, StepDraw},
	{PhasePrecombatMain, StepMain1},
	{PhaseCombat, StepBeginCombat},
	{PhaseCombat, StepDeclareAttackers},
	{PhaseCombat, StepDeclareBlockers},
	{PhaseCombat, StepCombatDamage},
	{PhaseCombat, StepEndCombat},
	{PhasePostcombatMain, StepMain2},
	{PhaseEnding, StepEnd},
	{PhaseEnding, StepCleanup},
}

// TurnManager tracks the active player, the turn order used for APNAP
// ordering, and turn progression.
type TurnManager struct {
	orderIndex  int
	turnNumber  int
	players     []string
	activeIndex int
}

// NewTurnManager creates a turn manager at turn 1, untap step, with the
// given players in turn order. The first player is active.
func NewTurnManager(players ...string) *TurnManager {
	cleaned := make([]string, 0, len(players))
	for _, p := range players {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return &TurnManager{turnNumber: 1, players: cleaned}
}

// CurrentPhase returns the phase currently in progress.
func (tm *TurnManager) CurrentPhase() Phase {
	return turnSequence[tm.orderIndex].phase
}

// CurrentStep returns the step currently in progress.
func (tm *TurnManager) CurrentStep() Step {
	return turnSequence[tm.orderIndex].step
}

// TurnNumber returns the current turn number (1-based).
func (tm *TurnManager) TurnNumber() int {
	return tm.turnNumber
}

// ActivePlayer returns the player who currently has the turn.
func (tm *TurnManager) ActivePlayer() string {
	if len(tm.players) == 0 {
		return ""
	}
	return tm.players[tm.activeIndex]
}

// TurnOrder returns the players in turn order.
func (tm *TurnManager) TurnOrder() []string {
	out := make([]string, len(tm.players))
	copy(out, tm.players)
	return out
}

// AdvanceStep advances to the next step in the turn structure. When the end
// of the structure is reached, the turn passes to the next player in order.
func (tm *TurnManager) AdvanceStep() (Phase, Step) {
	tm.orderIndex++
	if tm.orderIndex >= len(turnSequence) {
		tm.orderIndex = 0
		tm.turnNumber++
		if len(tm.players) > 0 {
			tm.activeIndex = (tm.activeIndex + 1) % len(tm.players)
		}
	}
	return tm.CurrentPhase(), tm.CurrentStep()
}

// TurnView exports the current position as the read view the clause
// evaluator consumes.
func (tm *TurnManager) TurnView() conditions.TurnInfo {
	return conditions.TurnInfo{
		ActivePlayer: tm.ActivePlayer(),
		Phase:        strings.ToLower(tm.CurrentPhase().String()),
		Step:         strings.ToLower(tm.CurrentStep().String()),
	}
}
