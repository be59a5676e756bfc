package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// JudgePreferences weights the four scoring criteria. A profile with
// Aggression 1.3 rewards pressure fighters; Consistency lives on the Judge.
type JudgePreferences struct {
	CleanPunching float64 `yaml:"clean_punching"`
	Aggression    float64 `yaml:"aggression"`
	Generalship   float64 `yaml:"generalship"`
	Defense       float64 `yaml:"defense"`
}

// Named preference profiles. Unknown profile names are a construction error.
var judgeProfiles = map[string]JudgePreferences{
	"balanced":   {CleanPunching: 1.0, Aggression: 1.0, Generalship: 1.0, Defense: 1.0},
	"aggression": {CleanPunching: 0.9, Aggression: 1.35, Generalship: 0.9, Defense: 0.85},
	"technical":  {CleanPunching: 1.1, Aggression: 0.85, Generalship: 1.2, Defense: 1.15},
	"volume":     {CleanPunching: 1.25, Aggression: 1.1, Generalship: 0.85, Defense: 0.8},
}

// Judge scores rounds. Consistency (0..1) controls scoring noise: a judge at
// 0.9 miscalls a moderate round 10% of the time.
type Judge struct {
	Name        string
	Profile     string
	Preferences JudgePreferences
	Consistency float64
}

// NewJudge builds a judge from a named preference profile.
func NewJudge(name, profile string, consistency float64) (*Judge, error) {
	if name == "" {
		return nil, fmt.Errorf("judge name is required")
	}
	prefs, ok := judgeProfiles[profile]
	if !ok {
		return nil, fmt.Errorf("unknown judge profile %q", profile)
	}
	return &Judge{
		Name:        name,
		Profile:     profile,
		Preferences: prefs,
		Consistency: clampFloat(consistency, 0, 1),
	}, nil
}

// criterionScores holds one fighter's raw criteria before preference
// weighting.
type criterionScores struct {
	Clean       float64
	Aggression  float64
	Generalship float64
	Defense     float64
}

func (c criterionScores) weighted(p JudgePreferences) float64 {
	return c.Clean*p.CleanPunching +
		c.Aggression*p.Aggression +
		c.Generalship*p.Generalship +
		c.Defense*p.Defense
}

// cleanPunching: weighted sum of clean punches, power punches, jabs, raw
// damage, and significant strikes. Damage dominates volume.
func cleanPunching(sp ScoringParams, own *FighterRoundStats) float64 {
	return float64(own.CleanLanded)*sp.CleanPunchWeight +
		float64(own.PowerLanded)*sp.PowerPunchWeight +
		float64(own.JabsLanded)*sp.JabWeight +
		own.DamageDealt*sp.DamageWeight +
		float64(own.SignificantLanded)*sp.SignificantWeight
}

// effectiveAggression: forward time scaled by accuracy, plus out-landing and
// out-damaging bonuses. Aggression without landing scores little.
func effectiveAggression(sp ScoringParams, own, opp *FighterRoundStats) float64 {
	forwardSecs := float64(own.TicksForward) / TicksPerSecond
	score := forwardSecs * own.Accuracy() * sp.ForwardTimeWeight
	if own.Landed() > opp.Landed() {
		score += sp.OutLandedBonus
	}
	if own.DamageDealt > opp.DamageDealt {
		score += sp.OutDamagedBonus
	}
	return score
}

// ringGeneralship: center control and trapping the opponent, debited for
// own rope/corner time and backward movement. The backward penalty is much
// smaller when the fighter is also out-damaging (tactical retreat, not
// running).
func ringGeneralship(sp ScoringParams, own, opp *FighterRoundStats) float64 {
	centerSecs := float64(own.TicksAtCenter) / TicksPerSecond
	oppTrappedSecs := float64(opp.TicksOnRopes+opp.TicksInCorner) / TicksPerSecond
	ownTrappedSecs := float64(own.TicksOnRopes+own.TicksInCorner) / TicksPerSecond
	backwardSecs := float64(own.TicksBackward) / TicksPerSecond

	backwardPenalty := sp.BackwardPenalty
	if own.DamageDealt > opp.DamageDealt {
		backwardPenalty *= sp.TacticalRetreatScale
	}

	return centerSecs*sp.CenterTimeWeight +
		oppTrappedSecs*sp.OpponentTrappedWeight -
		ownTrappedSecs*sp.OwnTrappedPenalty -
		backwardSecs*backwardPenalty
}

// defense: blocks and evasions credited, damage received debited.
func defense(sp ScoringParams, own *FighterRoundStats) float64 {
	return float64(own.Blocks)*sp.BlockWeight +
		float64(own.Evades)*sp.EvadeWeight -
		own.DamageReceived*sp.DamageTakenPenalty
}

func criteriaFor(sp ScoringParams, own, opp *FighterRoundStats) criterionScores {
	return criterionScores{
		Clean:       cleanPunching(sp, own),
		Aggression:  effectiveAggression(sp, own, opp),
		Generalship: ringGeneralship(sp, own, opp),
		Defense:     defense(sp, own),
	}
}

// ScoreRound computes this judge's score pair for a frozen round.
// homeCorner is -1 for a neutral venue, 0 or 1 for the favored corner.
//
// The signed total difference maps through three bands: clear rounds are an
// unambiguous 10-9; moderate rounds are 10-9 but subject to a
// consistency-based miscall; close rounds are mostly 10-10. Knockdowns then
// override: each one deducts from the sufferer and flips a round the
// sufferer would otherwise have won.
func (j *Judge) ScoreRound(sp ScoringParams, r *Round, homeCorner int, rng *rand.Rand) RoundScore {
	totalA := criteriaFor(sp, r.StatsA, r.StatsB).weighted(j.Preferences)
	totalB := criteriaFor(sp, r.StatsB, r.StatsA).weighted(j.Preferences)

	switch homeCorner {
	case 0:
		totalA *= sp.HomeFighterBias
	case 1:
		totalB *= sp.HomeFighterBias
	}

	diff := totalA - totalB
	scoreA, scoreB := 10, 10

	switch {
	case math.Abs(diff) >= sp.ClearRoundMargin:
		if diff > 0 {
			scoreB = 9
		} else {
			scoreA = 9
		}
	case math.Abs(diff) >= sp.ModerateRoundMargin:
		winnerIsA := diff > 0
		// A lapse in consistency calls the moderate round the wrong way.
		if rng.Float64() < 1.0-j.Consistency {
			winnerIsA = !winnerIsA
		}
		if winnerIsA {
			scoreB = 9
		} else {
			scoreA = 9
		}
	default:
		// Close round: usually even, occasionally edged to the better side.
		if rng.Float64() >= sp.CloseRoundEvenChance {
			if diff >= 0 {
				scoreB = 9
			} else {
				scoreA = 9
			}
		}
	}

	return j.applyKnockdowns(sp, r, scoreA, scoreB)
}

// applyKnockdowns folds knockdown records into a provisional score pair.
func (j *Judge) applyKnockdowns(sp ScoringParams, r *Round, scoreA, scoreB int) RoundScore {
	kdA := r.KnockdownsAgainst(r.FighterAID)
	kdB := r.KnockdownsAgainst(r.FighterBID)

	if kdA > 0 && scoreA > scoreB {
		// Knocked down but otherwise ahead: the round flips entirely.
		scoreA, scoreB = 9, 10
	}
	if kdB > 0 && scoreB > scoreA {
		scoreA, scoreB = 10, 9
	}

	scoreA -= kdA * sp.KnockdownScoreDeduction
	scoreB -= kdB * sp.KnockdownScoreDeduction

	if scoreA < sp.ScoreFloor {
		scoreA = sp.ScoreFloor
	}
	if scoreB < sp.ScoreFloor {
		scoreB = sp.ScoreFloor
	}

	return RoundScore{JudgeName: j.Name, ScoreA: scoreA, ScoreB: scoreB}
}
