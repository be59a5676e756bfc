package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/boxing-sim/boxing-sim/sim"
)

func TestLoadFighterCard_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fighter.yaml")
	content := []byte(`name: "Test Fighter"
weight_class: middleweight
attributes:
  power:
    knockout_power: 80
    punch_power: 75
  mental:
    chin: 85
    heart: 90
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	card, err := LoadFighterCard(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Fighter", card.Name)
	assert.Equal(t, string(sim.Middleweight), card.Class)
	assert.Equal(t, 80.0, card.Attributes.Power.KnockoutPower)
	assert.Equal(t, 90.0, card.Attributes.Mental.Heart)

	f, err := card.Build(sim.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, "Test Fighter", f.Name)
}

func TestLoadFighterCard_RejectsNameless(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fighter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weight_class: middleweight\n"), 0o644))

	_, err := LoadFighterCard(path)
	assert.ErrorContains(t, err, "no name")
}

func TestLoadFighterCard_MissingFile(t *testing.T) {
	_, err := LoadFighterCard("/nonexistent/fighter.yaml")
	assert.Error(t, err)
}

func TestLoadFighterCards_DefaultsWhenEmpty(t *testing.T) {
	cardA, cardB, err := loadFighterCards("", "")
	require.NoError(t, err)
	assert.Equal(t, "Marco Silva", cardA.Name)
	assert.Equal(t, "Dmitri Volkov", cardB.Name)

	params := sim.DefaultParams()
	a, err := cardA.Build(params)
	require.NoError(t, err)
	b, err := cardB.Build(params)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestLoadOfficials_DefaultsWhenEmpty(t *testing.T) {
	officials, err := loadOfficials("")
	require.NoError(t, err)

	ref, judges, err := officials.Build()
	require.NoError(t, err)
	assert.Equal(t, "Tony Marks", ref.Name)
	require.Len(t, judges, 3)
}

func TestLoadOfficials_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "officials.yaml")
	content := []byte(`referee:
  name: "Jane Doe"
  clinch_tolerance_secs: 3
  stoppage_threshold: 5.0
  protectiveness: 0.7
  foul_strictness: 0.4
  experience: 60
judges:
  - name: "Judge One"
    profile: balanced
    consistency: 0.85
  - name: "Judge Two"
    profile: technical
    consistency: 0.9
  - name: "Judge Three"
    profile: aggression
    consistency: 0.8
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	officials, err := loadOfficials(path)
	require.NoError(t, err)
	ref, judges, err := officials.Build()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", ref.Name)
	assert.Len(t, judges, 3)
	assert.Equal(t, "Judge One", judges[0].Name)
}

func TestOfficials_BuildRejectsBadProfile(t *testing.T) {
	officials := defaultOfficials()
	officials.Judges[0].Profile = "psychic"
	_, _, err := officials.Build()
	assert.Error(t, err)
}
