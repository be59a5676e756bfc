package sim

import "math/rand"

// FoulKind enumerates the foul categories the policy can select.
type FoulKind string

const (
	FoulLowBlow     FoulKind = "low_blow"
	FoulHeadbutt    FoulKind = "headbutt"
	FoulRabbitPunch FoulKind = "rabbit_punch"
	FoulHolding     FoulKind = "holding"
	FoulElbow       FoulKind = "elbow"
	FoulThumbToEye  FoulKind = "thumb_to_eye"
)

// FoulConsequence is the referee's ruling on a detected foul.
type FoulConsequence string

const (
	ConsequenceNone         FoulConsequence = "none"
	ConsequenceWarning      FoulConsequence = "warning"
	ConsequenceDeduction    FoulConsequence = "point_deduction"
	ConsequenceDisqualified FoulConsequence = "disqualification"
)

// FoulSituation is the snapshot the policy weighs before attempting a foul.
type FoulSituation struct {
	Round           int
	StaminaFraction float64
	Distance        float64
	// ScoreMargin is the fighter's estimated lead on the cards; negative
	// when behind. Desperation fouls come from losing fighters.
	ScoreMargin float64
}

// FoulResult is the outcome of an executed foul.
type FoulResult struct {
	Foul           FoulKind
	Detected       bool
	Intentional    bool
	BonusDamage    float64
	DamageLocation PunchLocation
	CutLocation    string // empty when the foul drew no cut
	Consequence    FoulConsequence
	DeductionTotal int // cumulative deductions for the offender after this foul
}

// closeRangeFouls require clinch-or-inside distance.
var closeRangeFouls = []FoulKind{FoulHeadbutt, FoulRabbitPunch, FoulHolding, FoulElbow}

// rangeFouls can happen at any distance.
var rangeFouls = []FoulKind{FoulLowBlow, FoulThumbToEye}

// FoulPolicy decides whether a foul is attempted, executes it, and tracks
// cumulative point deductions per fighter across the fight.
type FoulPolicy struct {
	params     FoulParams
	warnings   map[string]int
	deductions map[string]int
}

// NewFoulPolicy builds a policy from the parameter table.
func NewFoulPolicy(params FoulParams) *FoulPolicy {
	return &FoulPolicy{
		params:     params,
		warnings:   make(map[string]int),
		deductions: make(map[string]int),
	}
}

// Deductions returns the cumulative point deductions charged to a fighter.
func (fp *FoulPolicy) Deductions(fighterID string) int {
	return fp.deductions[fighterID]
}

// Evaluate rolls for a foul attempt by f against opp. Returns nil when no
// foul happens this tick. A result with ConsequenceDisqualified ends the
// fight in the opponent's favor; the orchestrator enforces that.
func (fp *FoulPolicy) Evaluate(f, opp *Fighter, situation FoulSituation, ref *Referee, rng *rand.Rand) *FoulResult {
	chance := fp.params.BaseAttemptChance
	if situation.StaminaFraction < 0.30 {
		chance += fp.params.TiredBonus
	}
	if situation.ScoreMargin < -1.0 {
		chance += fp.params.LosingBonus
	}
	if rng.Float64() >= chance {
		return nil
	}

	kind := fp.selectFoul(situation, rng)
	return fp.execute(f, opp, kind, ref, rng)
}

func (fp *FoulPolicy) selectFoul(situation FoulSituation, rng *rand.Rand) FoulKind {
	pool := rangeFouls
	if situation.Distance < 1.0 {
		pool = append(append([]FoulKind{}, closeRangeFouls...), rangeFouls...)
	}
	return pool[rng.Intn(len(pool))]
}

// execute computes detection, intent, bonus damage and cuts, and walks the
// consequence ladder: none → warning → point deduction → disqualification.
func (fp *FoulPolicy) execute(f, opp *Fighter, kind FoulKind, ref *Referee, rng *rand.Rand) *FoulResult {
	res := &FoulResult{
		Foul:        kind,
		Intentional: rng.Float64() < fp.params.IntentionalChance,
		Detected:    rng.Float64() < fp.params.DetectionBase+0.3*ref.FoulStrictness,
	}

	switch kind {
	case FoulLowBlow:
		res.BonusDamage = 3.0 + 4.0*rng.Float64()
		res.DamageLocation = LocationBody
	case FoulHeadbutt:
		res.BonusDamage = 2.0 + 3.0*rng.Float64()
		res.DamageLocation = LocationHead
		if rng.Float64() < 0.45 {
			res.CutLocation = "forehead"
		}
	case FoulElbow:
		res.BonusDamage = 1.5 + 2.5*rng.Float64()
		res.DamageLocation = LocationHead
		if rng.Float64() < 0.3 {
			res.CutLocation = "eyebrow"
		}
	case FoulThumbToEye:
		res.BonusDamage = 1.0 + 1.5*rng.Float64()
		res.DamageLocation = LocationHead
	case FoulRabbitPunch:
		res.BonusDamage = 2.0 + 2.0*rng.Float64()
		res.DamageLocation = LocationHead
	case FoulHolding:
		// No damage; purely a control foul.
	}

	if !res.Detected {
		res.Consequence = ConsequenceNone
		res.DeductionTotal = fp.deductions[f.ID]
		return res
	}

	// Flagrant intentional fouls can draw an immediate disqualification.
	if res.Intentional && rng.Float64() < fp.params.FlagrantDQChance+0.05*ref.FoulStrictness {
		res.Consequence = ConsequenceDisqualified
		res.DeductionTotal = fp.deductions[f.ID]
		return res
	}

	if fp.warnings[f.ID] < fp.params.WarningsBeforeDeduction && !res.Intentional {
		fp.warnings[f.ID]++
		res.Consequence = ConsequenceWarning
		res.DeductionTotal = fp.deductions[f.ID]
		return res
	}

	fp.deductions[f.ID]++
	res.DeductionTotal = fp.deductions[f.ID]
	if fp.deductions[f.ID] >= fp.params.DeductionsBeforeDQ {
		res.Consequence = ConsequenceDisqualified
		return res
	}
	res.Consequence = ConsequenceDeduction
	return res
}
