package sim

import "testing"

// evenAttributes builds a sheet with every attribute at the same rating.
func evenAttributes(v float64) Attributes {
	return Attributes{
		Power:     PowerAttributes{KnockoutPower: v, PunchPower: v, BodyPunching: v},
		Speed:     SpeedAttributes{HandSpeed: v, FootSpeed: v, Reflexes: v},
		Stamina:   StaminaAttributes{Cardio: v, Recovery: v, WorkRate: v},
		Defense:   DefenseAttributes{Blocking: v, HeadMovement: v, Clinching: v},
		Offense:   OffenseAttributes{Accuracy: v, Combinations: v, KillerInstinct: v},
		Technical: TechnicalAttributes{Footwork: v, RingGeneralship: v, Timing: v},
		Mental:    MentalAttributes{Chin: v, Heart: v, Composure: v, Experience: v, Intimidation: v, Clutch: v, FightIQ: v},
	}
}

func newTestFighter(t *testing.T, name string, attrs Attributes) *Fighter {
	t.Helper()
	f, err := NewFighter(name, Middleweight, attrs, DefaultParams())
	if err != nil {
		t.Fatalf("NewFighter(%s): %v", name, err)
	}
	return f
}

func newTestOfficials(t *testing.T) (*Referee, []*Judge) {
	t.Helper()
	ref, err := NewReferee("Test Referee", 4, 6.5, 0.5, 0.5, 80)
	if err != nil {
		t.Fatalf("NewReferee: %v", err)
	}
	var judges []*Judge
	for _, spec := range []struct {
		name, profile string
	}{
		{"Judge One", "balanced"},
		{"Judge Two", "aggression"},
		{"Judge Three", "technical"},
	} {
		j, err := NewJudge(spec.name, spec.profile, 0.9)
		if err != nil {
			t.Fatalf("NewJudge(%s): %v", spec.name, err)
		}
		judges = append(judges, j)
	}
	return ref, judges
}

// newTestFight assembles a fight between two even 70-rated middleweights.
func newTestFight(t *testing.T, rounds int) *Fight {
	t.Helper()
	a := newTestFighter(t, "Alpha", evenAttributes(70))
	b := newTestFighter(t, "Bravo", evenAttributes(70))
	ref, judges := newTestOfficials(t)
	fight, err := NewFight(a, b, NewFightConfig(rounds), ref, judges, DefaultParams())
	if err != nil {
		t.Fatalf("NewFight: %v", err)
	}
	return fight
}

// newTestOrchestrator wires a fight with the stock collaborators, an instant
// pacer, and a collector sink.
func newTestOrchestrator(t *testing.T, fight *Fight, seed int64) (*Orchestrator, *CollectorSink) {
	t.Helper()
	key := NewSimulationKey(seed)
	rng := NewPartitionedRNG(key)
	collector := &CollectorSink{}
	o := NewOrchestrator(fight, key, OrchestratorConfig{
		Decisions: NewTacticalAI(rng.ForSubsystem(SubsystemDecisions)),
		Combat:    NewStandardCombat(rng.ForSubsystem(SubsystemCombat)),
		Damage:    NewStandardDamage(rng.ForSubsystem(SubsystemDamage)),
		Stamina:   NewStandardStamina(),
		Position:  NewRingTracker(rng.ForSubsystem(SubsystemPosition)),
		Pacer:     InstantPacer{},
		Sinks:     []EventSink{collector},
	})
	return o, collector
}
