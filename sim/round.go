package sim

import "fmt"

// FighterRoundStats is the per-round statistic ledger for one fighter:
// thrown/landed punches split by category and quality, defensive counts,
// damage flow, and positional time buckets (in ticks).
type FighterRoundStats struct {
	JabsThrown        int
	JabsLanded        int
	PowerThrown       int
	PowerLanded       int
	HeadLanded        int
	BodyLanded        int
	CleanLanded       int
	PartialLanded     int
	SignificantLanded int

	Blocks int
	Evades int
	Misses int

	DamageDealt    float64
	DamageReceived float64

	TicksAtCenter int
	TicksOnRopes  int
	TicksInCorner int
	TicksForward  int
	TicksBackward int
	TicksInClinch int
}

// Thrown is total punches thrown.
func (s *FighterRoundStats) Thrown() int { return s.JabsThrown + s.PowerThrown }

// Landed is total punches landed.
func (s *FighterRoundStats) Landed() int { return s.JabsLanded + s.PowerLanded }

// Accuracy is landed / thrown on a 0..1 scale.
func (s *FighterRoundStats) Accuracy() float64 {
	thrown := s.Thrown()
	if thrown == 0 {
		return 0
	}
	return float64(s.Landed()) / float64(thrown)
}

// KnockdownRecord captures one knockdown inside a round.
type KnockdownRecord struct {
	FighterID  string
	AttackerID string
	Tick       int
	Count      int  // count reached before recovery or KO
	Flash      bool // fast-recovery variant
	KO         bool // count reached 10
}

// RoundScore is one judge's score pair for a round.
type RoundScore struct {
	JudgeName string
	ScoreA    int
	ScoreB    int
}

// Round is the per-round ledger: created at round start, mutated only while
// the round runs, frozen once Complete is called.
type Round struct {
	Number        int
	DurationTicks int
	ElapsedTicks  int

	FighterAID string
	FighterBID string

	StatsA *FighterRoundStats
	StatsB *FighterRoundStats

	Events     []Event
	Knockdowns []KnockdownRecord
	Scores     []RoundScore

	IsComplete bool
}

// NewRound creates a fresh ledger for the given round number.
func NewRound(number, durationTicks int, fighterAID, fighterBID string) *Round {
	return &Round{
		Number:        number,
		DurationTicks: durationTicks,
		FighterAID:    fighterAID,
		FighterBID:    fighterBID,
		StatsA:        &FighterRoundStats{},
		StatsB:        &FighterRoundStats{},
	}
}

// Stats returns the ledger side for the given corner (0 = A, 1 = B).
func (r *Round) Stats(corner int) *FighterRoundStats {
	if corner == 0 {
		return r.StatsA
	}
	return r.StatsB
}

// RecordEvent appends to the round's ordered event list. Frozen rounds
// reject further mutation.
func (r *Round) RecordEvent(ev Event) error {
	if r.IsComplete {
		return fmt.Errorf("round %d is complete; ledger is frozen", r.Number)
	}
	r.Events = append(r.Events, ev)
	return nil
}

// RecordKnockdown appends a knockdown record.
func (r *Round) RecordKnockdown(rec KnockdownRecord) error {
	if r.IsComplete {
		return fmt.Errorf("round %d is complete; ledger is frozen", r.Number)
	}
	r.Knockdowns = append(r.Knockdowns, rec)
	return nil
}

// KnockdownsAgainst counts knockdowns suffered by the given fighter in this
// round.
func (r *Round) KnockdownsAgainst(fighterID string) int {
	n := 0
	for _, kd := range r.Knockdowns {
		if kd.FighterID == fighterID {
			n++
		}
	}
	return n
}

// Complete freezes the ledger. Scoring happens against the frozen stats;
// calling Complete twice is harmless.
func (r *Round) Complete() {
	r.IsComplete = true
}
