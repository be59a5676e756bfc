package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFightConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*FightConfig)
		wantErr bool
	}{
		{"standard twelve rounder", func(c *FightConfig) {}, false},
		{"zero rounds", func(c *FightConfig) { c.Rounds = 0 }, true},
		{"negative rounds", func(c *FightConfig) { c.Rounds = -4 }, true},
		{"zero round length", func(c *FightConfig) { c.RoundSecs = 0 }, true},
		{"negative rest", func(c *FightConfig) { c.RestSecs = -1 }, true},
		{"zero rest is legal", func(c *FightConfig) { c.RestSecs = 0 }, false},
		{"home corner out of range", func(c *FightConfig) { c.HomeCorner = 2 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewFightConfig(12)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFightConfig_RoundTicks(t *testing.T) {
	cfg := NewFightConfig(12)
	assert.Equal(t, 360, cfg.RoundTicks(), "180s at 2 ticks/s")
}

func TestNewFight_Validation(t *testing.T) {
	a := newTestFighter(t, "Alpha", evenAttributes(70))
	b := newTestFighter(t, "Bravo", evenAttributes(70))
	ref, judges := newTestOfficials(t)
	cfg := NewFightConfig(12)

	_, err := NewFight(nil, b, cfg, ref, judges, DefaultParams())
	assert.Error(t, err)

	_, err = NewFight(a, a, cfg, ref, judges, DefaultParams())
	assert.Error(t, err, "a fighter cannot box themselves")

	_, err = NewFight(a, b, cfg, nil, judges, DefaultParams())
	assert.Error(t, err)

	_, err = NewFight(a, b, cfg, ref, judges[:2], DefaultParams())
	assert.Error(t, err, "exactly three judges")

	fight, err := NewFight(a, b, cfg, ref, judges, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, StatusNotStarted, fight.Status)
	assert.Len(t, fight.Scorecards, 3)
}

func TestFight_StatusTransitions(t *testing.T) {
	fight := newTestFight(t, 12)

	assert.Error(t, fight.SetStatus(StatusBetweenRounds), "cannot rest before starting")
	require.NoError(t, fight.SetStatus(StatusInProgress))
	require.NoError(t, fight.SetStatus(StatusBetweenRounds))
	require.NoError(t, fight.SetStatus(StatusInProgress))
	require.NoError(t, fight.SetStatus(StatusStopped))
	assert.True(t, fight.IsOver())

	// Terminal statuses are final.
	assert.Error(t, fight.SetStatus(StatusInProgress))
	assert.Error(t, fight.SetStatus(StatusCompleted))
}

func TestFight_UnknownFighterReference(t *testing.T) {
	fight := newTestFight(t, 12)

	_, err := fight.FighterByID("not-a-fighter")
	assert.ErrorIs(t, err, ErrUnknownFighter)
	_, err = fight.Opponent("not-a-fighter")
	assert.ErrorIs(t, err, ErrUnknownFighter)
	_, err = fight.CornerOf("not-a-fighter")
	assert.ErrorIs(t, err, ErrUnknownFighter)

	got, err := fight.Opponent(fight.FighterA.ID)
	require.NoError(t, err)
	assert.Equal(t, fight.FighterB.ID, got.ID)
}

func TestFight_ScoreRoundExactlyOnce(t *testing.T) {
	fight := newTestFight(t, 12)
	rng := rand.New(rand.NewSource(1))

	_, err := fight.ScoreRound(rng)
	assert.Error(t, err, "no round to score before the first bell")

	fight.BeginRound()
	scores, err := fight.ScoreRound(rng)
	require.NoError(t, err)
	assert.Len(t, scores, 3)
	assert.True(t, fight.CurrentRound().IsComplete)

	_, err = fight.ScoreRound(rng)
	assert.Error(t, err, "a round can be scored once")
}

func TestFight_DecideUnanimous(t *testing.T) {
	fight := newTestFight(t, 12)
	for i := range fight.Scorecards {
		fight.Scorecards[i].TotalA = 115
		fight.Scorecards[i].TotalB = 113
	}
	result := fight.Decide()
	assert.Equal(t, MethodUnanimousDecision, result.Method)
	assert.Equal(t, fight.FighterA.ID, result.WinnerID)
}

func TestFight_DecideSplit(t *testing.T) {
	fight := newTestFight(t, 12)
	fight.Scorecards[0].TotalA, fight.Scorecards[0].TotalB = 115, 113
	fight.Scorecards[1].TotalA, fight.Scorecards[1].TotalB = 114, 114 // even card
	fight.Scorecards[2].TotalA, fight.Scorecards[2].TotalB = 116, 112
	result := fight.Decide()
	assert.Equal(t, MethodMajorityDecision, result.Method)
	assert.Equal(t, fight.FighterA.ID, result.WinnerID)

	fight.Scorecards[1].TotalA, fight.Scorecards[1].TotalB = 112, 116
	result = fight.Decide()
	assert.Equal(t, MethodSplitDecision, result.Method)
	assert.Equal(t, fight.FighterA.ID, result.WinnerID)
}

func TestFight_DecideDraw(t *testing.T) {
	fight := newTestFight(t, 12)
	fight.Scorecards[0].TotalA, fight.Scorecards[0].TotalB = 115, 113
	fight.Scorecards[1].TotalA, fight.Scorecards[1].TotalB = 113, 115
	fight.Scorecards[2].TotalA, fight.Scorecards[2].TotalB = 114, 114
	result := fight.Decide()
	assert.Equal(t, MethodDraw, result.Method)
	assert.Empty(t, result.WinnerID)
}

func TestFight_DeductionsSwingTheCards(t *testing.T) {
	fight := newTestFight(t, 12)
	for i := range fight.Scorecards {
		fight.Scorecards[i].TotalA = 115
		fight.Scorecards[i].TotalB = 114
	}
	// Two points taken from A turn a 115-114 sweep into a loss.
	fight.ApplyDeduction(fight.FighterA.ID)
	fight.ApplyDeduction(fight.FighterA.ID)
	result := fight.Decide()
	assert.Equal(t, fight.FighterB.ID, result.WinnerID)
}

func TestFight_ScoreMargin(t *testing.T) {
	fight := newTestFight(t, 12)
	for i := range fight.Scorecards {
		fight.Scorecards[i].TotalA = 30
		fight.Scorecards[i].TotalB = 28
	}
	assert.InDelta(t, 2.0, fight.ScoreMargin(fight.FighterA.ID), 1e-9)
	assert.InDelta(t, -2.0, fight.ScoreMargin(fight.FighterB.ID), 1e-9)

	fight.ApplyDeduction(fight.FighterA.ID)
	assert.InDelta(t, 1.0, fight.ScoreMargin(fight.FighterA.ID), 1e-9)
	assert.InDelta(t, -1.0, fight.ScoreMargin(fight.FighterB.ID), 1e-9)
}

func TestVictoryMethod_IsKO(t *testing.T) {
	assert.True(t, MethodKO.IsKO())
	assert.True(t, MethodTKO.IsKO())
	assert.True(t, MethodTKOThreeKnockdowns.IsKO())
	assert.False(t, MethodUnanimousDecision.IsKO())
	assert.False(t, MethodDisqualification.IsKO())
	assert.False(t, MethodDraw.IsKO())
}

func TestErrUnknownFighter_Wrapping(t *testing.T) {
	fight := newTestFight(t, 12)
	_, err := fight.FighterByID("ghost")
	assert.True(t, errors.Is(err, ErrUnknownFighter))
	assert.Contains(t, err.Error(), "ghost")
}
