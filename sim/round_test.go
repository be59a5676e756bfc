package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundStats_Accuracy(t *testing.T) {
	s := &FighterRoundStats{JabsThrown: 6, JabsLanded: 3, PowerThrown: 4, PowerLanded: 2}
	assert.Equal(t, 10, s.Thrown())
	assert.Equal(t, 5, s.Landed())
	assert.InDelta(t, 0.5, s.Accuracy(), 1e-9)

	empty := &FighterRoundStats{}
	assert.Zero(t, empty.Accuracy())
}

func TestRound_FrozenLedgerRejectsMutation(t *testing.T) {
	r := NewRound(1, 360, "a", "b")
	require.NoError(t, r.RecordEvent(RoundStartEvent{Round: 1}))
	require.NoError(t, r.RecordKnockdown(KnockdownRecord{FighterID: "a"}))

	r.Complete()
	assert.Error(t, r.RecordEvent(RoundStartEvent{Round: 1}))
	assert.Error(t, r.RecordKnockdown(KnockdownRecord{FighterID: "a"}))

	// Freezing twice is harmless.
	r.Complete()
	assert.True(t, r.IsComplete)
}

func TestRound_KnockdownsAgainst(t *testing.T) {
	r := NewRound(3, 360, "a", "b")
	require.NoError(t, r.RecordKnockdown(KnockdownRecord{FighterID: "a", AttackerID: "b"}))
	require.NoError(t, r.RecordKnockdown(KnockdownRecord{FighterID: "a", AttackerID: "b"}))
	require.NoError(t, r.RecordKnockdown(KnockdownRecord{FighterID: "b", AttackerID: "a"}))

	assert.Equal(t, 2, r.KnockdownsAgainst("a"))
	assert.Equal(t, 1, r.KnockdownsAgainst("b"))
	assert.Zero(t, r.KnockdownsAgainst("nobody"))
}

func TestRound_StatsByCorner(t *testing.T) {
	r := NewRound(1, 360, "a", "b")
	r.Stats(0).JabsLanded = 7
	r.Stats(1).PowerLanded = 3
	assert.Equal(t, 7, r.StatsA.JabsLanded)
	assert.Equal(t, 3, r.StatsB.PowerLanded)
}
