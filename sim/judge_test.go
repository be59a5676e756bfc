package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJudge_UnknownProfile(t *testing.T) {
	_, err := NewJudge("Somebody", "vibes", 0.9)
	assert.Error(t, err)
}

func TestNewJudge_ClampsConsistency(t *testing.T) {
	j, err := NewJudge("Somebody", "balanced", 1.7)
	require.NoError(t, err)
	assert.Equal(t, 1.0, j.Consistency)
}

// dominantRound builds a frozen round where corner A clearly wins on every
// criterion.
func dominantRound() *Round {
	r := NewRound(1, 360, "a", "b")
	r.StatsA.CleanLanded = 20
	r.StatsA.PowerLanded = 15
	r.StatsA.JabsLanded = 10
	r.StatsA.DamageDealt = 40
	r.StatsA.SignificantLanded = 5
	r.StatsA.TicksAtCenter = 200
	r.StatsB.DamageReceived = 40
	r.StatsB.TicksOnRopes = 150
	r.Complete()
	return r
}

func TestScoreRound_ClearRoundIsTenNine(t *testing.T) {
	sp := DefaultParams().Scoring
	j, _ := NewJudge("Judge", "balanced", 0.5) // low consistency must not matter
	rng := rand.New(rand.NewSource(1))

	// A clear round never flips, whatever the rng does.
	for i := 0; i < 50; i++ {
		score := j.ScoreRound(sp, dominantRound(), -1, rng)
		assert.Equal(t, 10, score.ScoreA)
		assert.Equal(t, 9, score.ScoreB)
	}
}

func TestScoreRound_EmptyRoundMostlyEven(t *testing.T) {
	sp := DefaultParams().Scoring
	j, _ := NewJudge("Judge", "balanced", 0.9)
	rng := rand.New(rand.NewSource(7))

	even := 0
	for i := 0; i < 200; i++ {
		r := NewRound(1, 360, "a", "b")
		r.Complete()
		score := j.ScoreRound(sp, r, -1, rng)
		if score.ScoreA == 10 && score.ScoreB == 10 {
			even++
		}
	}
	// CloseRoundEvenChance is 0.65; allow a generous band.
	assert.Greater(t, even, 100)
	assert.Less(t, even, 180)
}

func TestScoreRound_KnockdownDeduction(t *testing.T) {
	sp := DefaultParams().Scoring
	j, _ := NewJudge("Judge", "balanced", 1.0)
	rng := rand.New(rand.NewSource(1))

	r := dominantRound()
	r.Knockdowns = append(r.Knockdowns, KnockdownRecord{FighterID: "b", AttackerID: "a"})
	score := j.ScoreRound(sp, r, -1, rng)
	assert.Equal(t, 10, score.ScoreA)
	assert.Equal(t, 8, score.ScoreB, "10-9 round plus a knockdown is 10-8")
}

func TestScoreRound_KnockdownFlipsRoundForSufferer(t *testing.T) {
	sp := DefaultParams().Scoring
	j, _ := NewJudge("Judge", "balanced", 1.0)
	rng := rand.New(rand.NewSource(1))

	// A dominates on work but gets dropped once: the round flips and the
	// deduction lands on A.
	r := dominantRound()
	r.Knockdowns = append(r.Knockdowns, KnockdownRecord{FighterID: "a", AttackerID: "b"})
	score := j.ScoreRound(sp, r, -1, rng)
	assert.Equal(t, 8, score.ScoreA)
	assert.Equal(t, 10, score.ScoreB)
}

func TestScoreRound_ScoreFloor(t *testing.T) {
	sp := DefaultParams().Scoring
	j, _ := NewJudge("Judge", "balanced", 1.0)
	rng := rand.New(rand.NewSource(1))

	r := dominantRound()
	for i := 0; i < 6; i++ {
		r.Knockdowns = append(r.Knockdowns, KnockdownRecord{FighterID: "b", AttackerID: "a"})
	}
	score := j.ScoreRound(sp, r, -1, rng)
	assert.Equal(t, sp.ScoreFloor, score.ScoreB, "score never drops below the floor")
}

func TestScoreRound_HomeBias(t *testing.T) {
	sp := DefaultParams().Scoring
	sp.HomeFighterBias = 5.0 // exaggerated for the test
	j, _ := NewJudge("Judge", "balanced", 1.0)
	rng := rand.New(rand.NewSource(1))

	// A modest edge for A becomes a clear round for B's corner under an
	// extreme home bias.
	r := NewRound(1, 360, "a", "b")
	r.StatsA.CleanLanded = 3
	r.StatsB.CleanLanded = 2
	r.Complete()
	score := j.ScoreRound(sp, r, 1, rng)
	assert.Greater(t, score.ScoreB, score.ScoreA)
}

func TestJudgeProfiles_DivergeOnStyle(t *testing.T) {
	sp := DefaultParams().Scoring
	aggro, _ := NewJudge("Aggro", "aggression", 1.0)
	tech, _ := NewJudge("Tech", "technical", 1.0)
	rng := rand.New(rand.NewSource(1))

	// A walks forward landing; B boxes off the back foot with defense and
	// generalship. Styles make fights — and split judges.
	r := NewRound(1, 360, "a", "b")
	r.StatsA.TicksForward = 240
	r.StatsA.JabsThrown = 30
	r.StatsA.JabsLanded = 18
	r.StatsA.CleanLanded = 6
	r.StatsA.DamageDealt = 9
	r.StatsB.Blocks = 18
	r.StatsB.Evades = 16
	r.StatsB.TicksAtCenter = 220
	r.StatsB.CleanLanded = 7
	r.StatsB.DamageDealt = 10
	r.StatsA.TicksOnRopes = 0
	r.Complete()

	aggroScore := aggro.ScoreRound(sp, r, -1, rng)
	techScore := tech.ScoreRound(sp, r, -1, rng)
	aggroDiff := aggroScore.ScoreA - aggroScore.ScoreB
	techDiff := techScore.ScoreA - techScore.ScoreB
	assert.GreaterOrEqual(t, aggroDiff, techDiff,
		"aggression judge should favor the pressure fighter at least as much as the technical judge")
}
