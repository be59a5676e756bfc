package sim

import (
	"fmt"
	"math/rand"
)

// ClinchAction is the referee's response to an ongoing clinch.
type ClinchAction string

const (
	ClinchNone  ClinchAction = "none"
	ClinchWarn  ClinchAction = "warn"
	ClinchBreak ClinchAction = "break"
)

// Referee models the third man: tendency parameters plus transient
// clinch-tracking state.
type Referee struct {
	Name string

	// ClinchToleranceSecs is how long a working clinch is allowed to run
	// before the referee steps in.
	ClinchToleranceSecs float64 `yaml:"clinch_tolerance_secs"`

	// StoppageThreshold is the accumulated-danger score past which the
	// referee waves a fight off.
	StoppageThreshold float64 `yaml:"stoppage_threshold"`

	// Protectiveness (0..1) discounts the stoppage threshold and scales
	// the orchestrator's per-tick TKO gate. Protective referees stop
	// fights earlier.
	Protectiveness float64 `yaml:"protectiveness"`

	// FoulStrictness (0..1) raises foul detection and consequences.
	FoulStrictness float64 `yaml:"foul_strictness"`

	// Experience (1..100) tightens clinch management timing.
	Experience float64 `yaml:"experience"`

	// clinch tracking, reset when a clinch ends
	clinchWarned bool
}

// NewReferee validates tendencies and returns a referee.
func NewReferee(name string, toleranceSecs, stoppageThreshold, protectiveness, foulStrictness, experience float64) (*Referee, error) {
	if name == "" {
		return nil, fmt.Errorf("referee name is required")
	}
	if toleranceSecs <= 0 {
		return nil, fmt.Errorf("clinch tolerance must be positive, got %v", toleranceSecs)
	}
	if stoppageThreshold <= 0 {
		return nil, fmt.Errorf("stoppage threshold must be positive, got %v", stoppageThreshold)
	}
	return &Referee{
		Name:                name,
		ClinchToleranceSecs: toleranceSecs,
		StoppageThreshold:   stoppageThreshold,
		Protectiveness:      clampFloat(protectiveness, 0, 1),
		FoulStrictness:      clampFloat(foulStrictness, 0, 1),
		Experience:          clampFloat(experience, 1, 100),
	}, nil
}

// CheckClinchBreak decides whether an ongoing clinch gets a warning or a
// break command. The break point starts from the referee's tolerance,
// halves if either fighter is hurt (they get no resting hold), stretches
// slightly when both fighters are very tired, and is scaled by experience
// plus a little randomness.
func (ref *Referee) CheckClinchBreak(clinchTicks int, a, b *Fighter, rng *rand.Rand) ClinchAction {
	breakSecs := ref.ClinchToleranceSecs
	if a.IsHurt() || b.IsHurt() {
		breakSecs *= 0.5
	} else if a.StaminaFraction() < 0.25 && b.StaminaFraction() < 0.25 {
		breakSecs *= 1.2
	}
	// Experienced referees run a tighter clock.
	breakSecs *= 1.1 - (ref.Experience/100.0)*0.2
	breakSecs *= 0.9 + 0.2*rng.Float64()

	breakTicks := int(breakSecs * TicksPerSecond)
	warnTicks := breakTicks - 2*TicksPerSecond

	switch {
	case clinchTicks >= breakTicks:
		ref.clinchWarned = false
		return ClinchBreak
	case clinchTicks >= warnTicks && !ref.clinchWarned:
		ref.clinchWarned = true
		return ClinchWarn
	default:
		return ClinchNone
	}
}

// ClinchEnded resets transient clinch-tracking state.
func (ref *Referee) ClinchEnded() {
	ref.clinchWarned = false
}

// StoppageSituation is the snapshot CheckStoppage evaluates.
type StoppageSituation struct {
	// PointsMargin is positive when the evaluated fighter is ahead on the
	// cards.
	PointsMargin float64
	// VolumeDisparity is opponent punches landed minus the fighter's over
	// the current round.
	VolumeDisparity int
}

// CheckStoppage decides whether the referee stops the fight to protect the
// given fighter. A fighter ahead on points by more than a small margin is
// never stopped; otherwise danger accumulates from damage, hurt duration,
// knockdowns, one-sided volume, and exhaustion, and is compared against the
// referee's threshold discounted by protectiveness.
func (ref *Referee) CheckStoppage(f, opp *Fighter, situation StoppageSituation) bool {
	if situation.PointsMargin > 2.0 {
		return false
	}

	score := 0.0
	score += f.AccumulatedDamageRatio() * 3.0
	score += float64(f.HurtDuration) / TicksPerSecond * 0.15
	score += float64(f.KnockdownsThisRound) * 1.2
	score += float64(f.KnockdownsTotal) * 0.6
	if situation.VolumeDisparity > 0 {
		score += float64(situation.VolumeDisparity) * 0.03
	}
	if f.StaminaFraction() < 0.15 {
		score += 0.8
	}

	threshold := ref.StoppageThreshold * (1.0 - 0.35*ref.Protectiveness)
	return score >= threshold
}
