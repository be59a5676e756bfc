package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTacticalAI_HurtFighterCoversOrGrabs(t *testing.T) {
	ai := NewTacticalAI(rand.New(rand.NewSource(1)))
	fight := newTestFight(t, 12)
	f := fight.FighterA
	f.SetHurt(20)

	for i := 0; i < 50; i++ {
		d := ai.Decide(f, fight.FighterB, fight)
		assert.NotEqual(t, ActionPunch, d.Action, "a hurt fighter survives, not trades")
	}
}

func TestTacticalAI_DownFighterDoesNothing(t *testing.T) {
	ai := NewTacticalAI(rand.New(rand.NewSource(1)))
	fight := newTestFight(t, 12)
	f := fight.FighterA
	require.NoError(t, f.TransitionTo(StateKnockedDown))

	d := ai.Decide(f, fight.FighterB, fight)
	assert.Equal(t, ActionNone, d.Action)
}

func TestStandardDamage_PowerPunchesHitHarder(t *testing.T) {
	fight := newTestFight(t, 12)
	a, b := fight.FighterA, fight.FighterB

	avg := func(punch PunchType) float64 {
		d := NewStandardDamage(rand.New(rand.NewSource(1)))
		total := 0.0
		for i := 0; i < 200; i++ {
			total += d.CalculateDamage(Hit{Punch: punch, Location: LocationHead, Clean: true}, a, b)
		}
		return total / 200
	}

	assert.Greater(t, avg(PunchOverhand), avg(PunchJab))
	assert.Greater(t, avg(PunchHook), avg(PunchJab))
}

func TestStandardDamage_VulnerableTargetTakesMore(t *testing.T) {
	fight := newTestFight(t, 12)
	a, b := fight.FighterA, fight.FighterB

	avg := func() float64 {
		d := NewStandardDamage(rand.New(rand.NewSource(1)))
		total := 0.0
		for i := 0; i < 200; i++ {
			total += d.CalculateDamage(Hit{Punch: PunchCross, Location: LocationHead, Clean: true}, a, b)
		}
		return total / 200
	}

	healthy := avg()
	b.SetHurt(20)
	hurt := avg()
	assert.Greater(t, hurt, healthy)
}

func TestStandardDamage_CheckHurtRespectsChin(t *testing.T) {
	granite := evenAttributes(70)
	granite.Mental.Chin = 99
	granite.Mental.Composure = 99
	glass := evenAttributes(70)
	glass.Mental.Chin = 5
	glass.Mental.Composure = 5

	g := newTestFighter(t, "Granite", granite)
	gl := newTestFighter(t, "Glass", glass)

	count := func(f *Fighter) int {
		d := NewStandardDamage(rand.New(rand.NewSource(1)))
		n := 0
		for i := 0; i < 500; i++ {
			if d.CheckHurt(f, 15) {
				n++
			}
		}
		return n
	}

	assert.Greater(t, count(gl), count(g))
}

func TestStandardDamage_SmallShotsNeverHurt(t *testing.T) {
	d := NewStandardDamage(rand.New(rand.NewSource(1)))
	f := newTestFighter(t, "Alpha", evenAttributes(70))
	for i := 0; i < 100; i++ {
		assert.False(t, d.CheckHurt(f, 5))
	}
}

func TestStandardCombat_ProducesActivity(t *testing.T) {
	fight := newTestFight(t, 12)
	c := NewStandardCombat(rand.New(rand.NewSource(1)))
	punch := Decision{State: StateOffensive, Action: ActionPunch, Punch: PunchJab, Target: LocationHead}

	var out CombatOutcome
	hits := 0
	for i := 0; i < 200; i++ {
		out = c.Resolve(fight.FighterA, fight.FighterB, punch, punch, fight)
		hits += len(out.Hits)
	}
	assert.Greater(t, hits, 0, "two jabbing fighters land something over 200 ticks")
}

func TestStandardCombat_NoPunchNoOutcome(t *testing.T) {
	fight := newTestFight(t, 12)
	c := NewStandardCombat(rand.New(rand.NewSource(1)))
	guard := Decision{State: StateDefensive, Action: ActionGuard}

	out := c.Resolve(fight.FighterA, fight.FighterB, guard, guard, fight)
	assert.Empty(t, out.Hits)
	assert.Empty(t, out.Misses)
	assert.Nil(t, out.Knockdown)
}

func TestStandardStamina_PunchCosts(t *testing.T) {
	s := NewStandardStamina()
	assert.Greater(t, s.CalculateHitStaminaCost(PunchOverhand), s.CalculateHitStaminaCost(PunchJab))
	assert.Greater(t, s.CalculateMissStaminaCost(PunchJab), s.CalculateHitStaminaCost(PunchJab),
		"missing costs more than landing")
}

func TestRingTracker_AdvanceCloses(t *testing.T) {
	fight := newTestFight(t, 12)
	r := NewRingTracker(rand.New(rand.NewSource(1)))
	advance := Decision{Action: ActionAdvance}

	start := r.GetDistance()
	for i := 0; i < 10; i++ {
		r.Update(fight.FighterA, fight.FighterB, advance, advance)
	}
	assert.Less(t, r.GetDistance(), start)
	assert.GreaterOrEqual(t, r.GetDistance(), 0.3, "distance stays bounded")
}

func TestRingTracker_RetreatReachesTheRopes(t *testing.T) {
	fight := newTestFight(t, 12)
	r := NewRingTracker(rand.New(rand.NewSource(1)))
	retreat := Decision{Action: ActionRetreat}
	hold := Decision{Action: ActionNone}

	for i := 0; i < 30; i++ {
		r.Update(fight.FighterA, fight.FighterB, hold, retreat)
	}
	assert.True(t, r.IsOnRopes(fight.FighterB))
	assert.False(t, r.IsOnRopes(fight.FighterA))
	assert.Equal(t, fight.FighterA.ID, r.GetCenterControl())
}

func TestRingTracker_SeparateFightersOnlyWidens(t *testing.T) {
	fight := newTestFight(t, 12)
	r := NewRingTracker(rand.New(rand.NewSource(1)))
	clinch := Decision{Action: ActionClinch}
	for i := 0; i < 10; i++ {
		r.Update(fight.FighterA, fight.FighterB, clinch, clinch)
	}
	require.Less(t, r.GetDistance(), 1.0)

	r.SeparateFighters(1.5)
	assert.Equal(t, 1.5, r.GetDistance())
	r.SeparateFighters(0.5) // never pulls them back together
	assert.Equal(t, 1.5, r.GetDistance())
}
