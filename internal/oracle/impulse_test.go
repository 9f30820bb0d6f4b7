package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDuration(t *testing.T) {
	tests := []struct {
		phrase   string
		expected Duration
	}{
		{"until the end of your next turn", DurationUntilEndOfNextTurn},
		{"until end of your next turn", DurationUntilEndOfNextTurn},
		{"until the end of next turn", DurationUntilEndOfNextTurn},
		{"until end of next turn", DurationUntilEndOfNextTurn},
		{"through the end of your next turn", DurationUntilEndOfNextTurn},
		{"through end of your next turn", DurationUntilEndOfNextTurn},
		{"through the end of next turn", DurationUntilEndOfNextTurn},
		{"through end of next turn", DurationUntilEndOfNextTurn},

		{"until end of turn", DurationThisTurn},
		{"until the end of turn", DurationThisTurn},
		{"until end of this turn", DurationThisTurn},
		{"until the end of this turn", DurationThisTurn},
		{"until the end of that turn", DurationThisTurn},
		{"through end of turn", DurationThisTurn},
		{"through the end of this turn", DurationThisTurn},
		{"this turn", DurationThisTurn},

		{"until your next end step", DurationUntilNextEndStep},
		{"until the next end step", DurationUntilNextEndStep},
		{"until your next upkeep", DurationUntilNextUpkeep},
		{"until the next upkeep", DurationUntilNextUpkeep},
		{"until your next turn", DurationUntilNextTurn},
		{"until the next turn", DurationUntilNextTurn},
		{"during your next turn", DurationDuringNextTurn},
		{"on your next turn", DurationDuringNextTurn},

		{"for as long as it remains exiled", DurationWhileExiled},
		{"for as long as that card remains exiled", DurationWhileExiled},
		{"for as long as they remain exiled", DurationWhileExiled},
		{"for as long as you control this permanent", DurationWhileControlSource},
		{"until you exile another card", DurationUntilExileAnother},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			dur, ok := normalizeDuration(tt.phrase)
			require.True(t, ok)
			assert.Equal(t, tt.expected, dur)
		})
	}
}

func TestNormalizeDurationUnrecognized(t *testing.T) {
	_, ok := normalizeDuration("until the cows come home")
	assert.False(t, ok)
}

func TestNextTurnBeatsThisTurn(t *testing.T) {
	// "until the end of your next turn" contains "this turn" family text;
	// the longer phrasing must win.
	dur, ok := normalizeDuration("until the end of your next turn")
	require.True(t, ok)
	assert.Equal(t, DurationUntilEndOfNextTurn, dur)
}

func TestParsePermissionGrant(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		permission Permission
		duration   Duration
	}{
		{"trailing duration", "You may play that card this turn.", PermissionPlay, DurationThisTurn},
		{"leading duration", "Until the end of your next turn, you may cast it.", PermissionCast, DurationUntilEndOfNextTurn},
		{"no duration", "You may cast that card.", PermissionCast, DurationDuringResolution},
		{"both verbs", "Until end of turn, you may play lands and cast spells from among them.", PermissionPlay, DurationThisTurn},
		{"plural referent", "You may play those cards until the end of your next turn.", PermissionPlay, DurationUntilEndOfNextTurn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grant, ok := parsePermissionGrant(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.permission, grant.permission)
			assert.Equal(t, tt.duration, grant.duration)
		})
	}
}

func TestParsePermissionGrantLeadingDurationWins(t *testing.T) {
	grant, ok := parsePermissionGrant("Until your next turn, you may play that card this turn.")
	require.True(t, ok)
	assert.Equal(t, DurationUntilNextTurn, grant.duration)
}

func TestParsePermissionGrantRejectsUnrelatedText(t *testing.T) {
	_, ok := parsePermissionGrant("You may draw a card.")
	assert.False(t, ok)

	_, ok = parsePermissionGrant("You gain 2 life.")
	assert.False(t, ok)
}

func TestParsePermissionGrantConditions(t *testing.T) {
	grant, ok := parsePermissionGrant("You may cast it this turn if it's a red card.")
	require.True(t, ok)
	require.NotNil(t, grant.condition)
	assert.Equal(t, PlayConditionColor, grant.condition.Kind)
	assert.Equal(t, "red", grant.condition.Color)

	grant, ok = parsePermissionGrant("You may play that card this turn if it's a land.")
	require.True(t, ok)
	require.NotNil(t, grant.condition)
	assert.Equal(t, PlayConditionType, grant.condition.Kind)
	assert.Equal(t, "land", grant.condition.Type)

	// Unrecognized predicates are dropped, never guessed.
	grant, ok = parsePermissionGrant("You may cast it this turn if the stars align.")
	require.True(t, ok)
	assert.Nil(t, grant.condition)
}

func TestUpgradeImpulseToleratesInterveningClauses(t *testing.T) {
	result := Parse("Exile the top card of your library. You gain 2 life. You may play that card this turn.", "")
	require.Len(t, result.Abilities, 1)
	steps := result.Abilities[0].Steps
	require.Len(t, steps, 2)

	assert.Equal(t, StepImpulseExile, steps[0].Kind)
	assert.Equal(t, DurationThisTurn, steps[0].Duration)
	assert.Equal(t, PermissionPlay, steps[0].Permission)

	// The deterministic clause in between stays in place as its own step.
	assert.Equal(t, StepGainLife, steps[1].Kind)
	assert.Equal(t, Amount{Kind: AmountNumber, Value: 2}, steps[1].Amount)
}

func TestUpgradeImpulseOptionalExile(t *testing.T) {
	result := Parse("You may exile the top card of your library. You may play it this turn.", "")
	require.Len(t, result.Abilities, 1)
	steps := result.Abilities[0].Steps
	require.Len(t, steps, 1)

	assert.Equal(t, StepImpulseExile, steps[0].Kind)
	assert.True(t, steps[0].Optional)
	assert.Equal(t, DurationThisTurn, steps[0].Duration)
}

func TestUpgradeImpulseMultipleCards(t *testing.T) {
	result := Parse("Exile the top three cards of your library. Until the end of your next turn, you may play those cards.", "")
	require.Len(t, result.Abilities, 1)
	steps := result.Abilities[0].Steps
	require.Len(t, steps, 1)

	assert.Equal(t, StepImpulseExile, steps[0].Kind)
	assert.Equal(t, Amount{Kind: AmountNumber, Value: 3}, steps[0].Amount)
	assert.Equal(t, DurationUntilEndOfNextTurn, steps[0].Duration)
}

func TestUpgradeImpulseLeavesBareExileAlone(t *testing.T) {
	result := Parse("Exile the top card of your library.", "")
	require.Len(t, result.Abilities, 1)
	steps := result.Abilities[0].Steps
	require.Len(t, steps, 1)
	assert.Equal(t, StepExileTop, steps[0].Kind)
	assert.Empty(t, steps[0].Permission)
}
