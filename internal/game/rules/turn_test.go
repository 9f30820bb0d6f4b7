package rules

import "testing"

func TestTurnManagerInitialState(t *testing.T) {
	tm := NewTurnManager("alice", "bob")

	if tm.TurnNumber() != 1 {
		t.Fatalf("expected turn 1, got %d", tm.TurnNumber())
	}
	if tm.CurrentPhase() != PhaseBeginning {
		t.Fatalf("expected beginning phase, got %s", tm.CurrentPhase())
	}
	if tm.CurrentStep() != StepUntap {
		t.Fatalf("expected untap step, got %s", tm.CurrentStep())
	}
	if tm.ActivePlayer() != "alice" {
		t.Fatalf("expected alice active, got %s", tm.ActivePlayer())
	}

	order := tm.TurnOrder()
	if len(order) != 2 || order[0] != "alice" || order[1] != "bob" {
		t.Fatalf("expected [alice bob], got %v", order)
	}
}

func TestTurnManagerStepSequence(t *testing.T) {
	tm := NewTurnManager("alice", "bob")

	expected := []struct {
		phase Phase
		step  Step
	}{
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
	for i, want := range expected {
		phase, step := tm.AdvanceStep()
		if phase != want.phase || step != want.step {
			t.Fatalf("advance %d: expected %s/%s, got %s/%s",
				i+1, want.phase, want.step, phase, step)
		}
	}

	// Past cleanup the turn passes to the next player.
	phase, step := tm.AdvanceStep()
	if phase != PhaseBeginning || step != StepUntap {
		t.Fatalf("expected new turn at untap, got %s/%s", phase, step)
	}
	if tm.TurnNumber() != 2 {
		t.Fatalf("expected turn 2, got %d", tm.TurnNumber())
	}
	if tm.ActivePlayer() != "bob" {
		t.Fatalf("expected bob active on turn 2, got %s", tm.ActivePlayer())
	}
}

func TestTurnManagerRotationWraps(t *testing.T) {
	tm := NewTurnManager("alice", "bob")

	// Two full turns bring the first player back.
	for i := 0; i < 2*12; i++ {
		tm.AdvanceStep()
	}
	if tm.TurnNumber() != 3 {
		t.Fatalf("expected turn 3, got %d", tm.TurnNumber())
	}
	if tm.ActivePlayer() != "alice" {
		t.Fatalf("expected alice active again, got %s", tm.ActivePlayer())
	}
}

func TestTurnManagerTrimsPlayerNames(t *testing.T) {
	tm := NewTurnManager(" alice ", "", "bob")
	order := tm.TurnOrder()
	if len(order) != 2 || order[0] != "alice" || order[1] != "bob" {
		t.Fatalf("expected blank entries dropped and names trimmed, got %v", order)
	}
}

func TestTurnManagerNoPlayers(t *testing.T) {
	tm := NewTurnManager()
	if tm.ActivePlayer() != "" {
		t.Fatalf("expected empty active player, got %s", tm.ActivePlayer())
	}
	// Advancing with no players still walks the turn structure.
	phase, step := tm.AdvanceStep()
	if phase != PhaseBeginning || step != StepUpkeep {
		t.Fatalf("expected upkeep, got %s/%s", phase, step)
	}
}

func TestTurnViewLowercasesNames(t *testing.T) {
	tm := NewTurnManager("alice", "bob")
	for tm.CurrentStep() != StepMain1 {
		tm.AdvanceStep()
	}

	view := tm.TurnView()
	if view.ActivePlayer != "alice" {
		t.Fatalf("expected alice, got %s", view.ActivePlayer)
	}
	if view.Phase != "precombat_main" {
		t.Fatalf("expected precombat_main, got %s", view.Phase)
	}
	if view.Step != "main1" {
		t.Fatalf("expected main1, got %s", view.Step)
	}
}
