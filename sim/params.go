package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Params is the structured table of every tunable constant used by the
// scoring, recovery, and stoppage formulas. Formulas read from here, never
// from literals, so rulesets can be swapped or unit-tested as data.
//
// Zero-value Params is not usable; start from DefaultParams and override.
type Params struct {
	Scoring   ScoringParams   `yaml:"scoring"`
	Buzzed    BuzzedParams    `yaml:"buzzed"`
	Knockdown KnockdownParams `yaml:"knockdown"`
	Stoppage  StoppageParams  `yaml:"stoppage"`
	Fatigue   FatigueParams   `yaml:"fatigue"`
	Fouls     FoulParams      `yaml:"fouls"`
	Effects   EffectParams    `yaml:"effects"`
}

// ScoringParams drives judge round scoring (criteria weights and the
// three-band score mapping).
type ScoringParams struct {
	CleanPunchWeight  float64 `yaml:"clean_punch_weight"` // per clean punch landed
	PowerPunchWeight  float64 `yaml:"power_punch_weight"` // per power punch landed
	JabWeight         float64 `yaml:"jab_weight"`         // per jab landed
	DamageWeight      float64 `yaml:"damage_weight"`      // per point of damage dealt
	SignificantWeight float64 `yaml:"significant_weight"` // per high-damage strike
	SignificantDamage float64 `yaml:"significant_damage"` // damage threshold for a significant strike

	ForwardTimeWeight float64 `yaml:"forward_time_weight"` // aggression: forward seconds × accuracy
	OutLandedBonus    float64 `yaml:"out_landed_bonus"`    // aggression: out-landing the opponent
	OutDamagedBonus   float64 `yaml:"out_damaged_bonus"`   // aggression: out-damaging the opponent

	CenterTimeWeight      float64 `yaml:"center_time_weight"`      // generalship: own center control
	OpponentTrappedWeight float64 `yaml:"opponent_trapped_weight"` // generalship: opponent ropes/corner time
	OwnTrappedPenalty     float64 `yaml:"own_trapped_penalty"`     // generalship: own ropes/corner time
	BackwardPenalty       float64 `yaml:"backward_penalty"`        // generalship: backward movement
	TacticalRetreatScale  float64 `yaml:"tactical_retreat_scale"`  // backward penalty scale when out-damaging

	BlockWeight        float64 `yaml:"block_weight"`         // defense: per block
	EvadeWeight        float64 `yaml:"evade_weight"`         // defense: per evasion
	DamageTakenPenalty float64 `yaml:"damage_taken_penalty"` // defense: per point received

	ClearRoundMargin        float64 `yaml:"clear_round_margin"`        // |diff| above this is an unambiguous 10-9
	ModerateRoundMargin     float64 `yaml:"moderate_round_margin"`     // |diff| above this is 10-9 subject to miscall
	CloseRoundEvenChance    float64 `yaml:"close_round_even_chance"`   // probability a close round is scored 10-10
	HomeFighterBias         float64 `yaml:"home_fighter_bias"`         // multiplier applied to the home corner's total
	KnockdownScoreDeduction int     `yaml:"knockdown_score_deduction"` // per knockdown suffered in a round
	ScoreFloor              int     `yaml:"score_floor"`               // minimum per-round score after deductions
}

// BuzzedParams controls the dazed condition and the short per-hit stun.
type BuzzedParams struct {
	SeverityDamage2      float64 `yaml:"severity_damage_2"`  // damage at which severity reaches 2
	SeverityDamage3      float64 `yaml:"severity_damage_3"`  // damage at which severity reaches 3
	BaseDurationSecs     float64 `yaml:"base_duration_secs"` // duration before chin/punch modifiers
	MinDurationSecs      float64 `yaml:"min_duration_secs"`
	MaxDurationSecs      float64 `yaml:"max_duration_secs"`
	CompoundExtension    float64 `yaml:"compound_extension"`     // fraction of new duration added when re-buzzed
	CompoundRecoverySlow float64 `yaml:"compound_recovery_slow"` // recovery-rate multiplier when re-buzzed
	BuzzDamageThreshold  float64 `yaml:"buzz_damage_threshold"`  // min head damage to buzz a fighter
	StunDamageThreshold  float64 `yaml:"stun_damage_threshold"`  // min damage for a stun
	StunHeavyDamage      float64 `yaml:"stun_heavy_damage"`      // damage for the heavy (no-throw) stun level
	StunMaxTicks         int     `yaml:"stun_max_ticks"`
	LightStunThrowChance float64 `yaml:"light_stun_throw_chance"` // throw success probability under light stun

	BuzzedVulnerability float64 `yaml:"buzzed_vulnerability"` // knockdown vulnerability multipliers
	StunVulnerability   float64 `yaml:"stun_vulnerability"`
	HurtVulnerability   float64 `yaml:"hurt_vulnerability"`
}

// KnockdownParams drives the knockdown protocol: immediate KO, the count,
// and recovery rolls.
type KnockdownParams struct {
	ImmediateKOBase         float64 `yaml:"immediate_ko_base"`          // base immediate-KO probability
	ImmediateKOPowerScale   float64 `yaml:"immediate_ko_power_scale"`   // attacker knockout-power contribution
	ImmediateKODamageScale  float64 `yaml:"immediate_ko_damage_scale"`  // landed-punch damage contribution
	ImmediateKOAccumScale   float64 `yaml:"immediate_ko_accum_scale"`   // accumulated-damage contribution
	ImmediateKOStaminaScale float64 `yaml:"immediate_ko_stamina_scale"` // low-stamina contribution
	ImmediateKOChinScale    float64 `yaml:"immediate_ko_chin_scale"`    // chin resistance
	ImmediateKOHeartScale   float64 `yaml:"immediate_ko_heart_scale"`   // heart resistance

	RecoveryHeartWeight           float64 `yaml:"recovery_heart_weight"`
	RecoveryChinWeight            float64 `yaml:"recovery_chin_weight"`
	RecoveryExperienceWeight      float64 `yaml:"recovery_experience_weight"`
	RecoveryComposureWeight       float64 `yaml:"recovery_composure_weight"`
	RecoveryDamagePenalty         float64 `yaml:"recovery_damage_penalty"`          // per point of accumulated damage ratio
	RecoveryStaminaPenalty        float64 `yaml:"recovery_stamina_penalty"`         // when stamina is low
	RecoveryPriorKnockdownPenalty float64 `yaml:"recovery_prior_knockdown_penalty"` // per prior knockdown this fight
	RecoveryEarlyCountBonus       float64 `yaml:"recovery_early_count_bonus"`       // favorable at low counts
	RecoveryLateCountPenalty      float64 `yaml:"recovery_late_count_penalty"`      // steep at 9+

	FlashRecoveryThreshold  float64 `yaml:"flash_recovery_threshold"` // pre-resolution score needed for a flash
	MandatoryCount          int     `yaml:"mandatory_count"`          // mandatory eight
	FlashMinCount           int     `yaml:"flash_min_count"`          // flash knockdowns rise at 2..4
	FlashMaxCount           int     `yaml:"flash_max_count"`
	PostKnockdownDebuffSecs float64 `yaml:"post_knockdown_debuff_secs"`
	PostFlashDebuffSecs     float64 `yaml:"post_flash_debuff_secs"`
	StaminaCost             float64 `yaml:"stamina_cost"` // stamina lost going down
}

// StoppageParams drives the per-tick TKO evaluation and referee thresholds.
type StoppageParams struct {
	DamageRatioWeight      float64 `yaml:"damage_ratio_weight"`
	HurtDurationWeight     float64 `yaml:"hurt_duration_weight"`
	RoundKnockdownWeight   float64 `yaml:"round_knockdown_weight"`
	TotalKnockdownWeight   float64 `yaml:"total_knockdown_weight"`
	VolumeDisparityWeight  float64 `yaml:"volume_disparity_weight"`
	ExhaustionWeight       float64 `yaml:"exhaustion_weight"`
	CutSeverityWeight      float64 `yaml:"cut_severity_weight"`
	FinisherWeight         float64 `yaml:"finisher_weight"`          // opponent finisher rating while fighter is hurt/down
	FinisherEliteThreshold float64 `yaml:"finisher_elite_threshold"` // steep non-linear bonus above this rating
	FinisherEliteBonus     float64 `yaml:"finisher_elite_bonus"`
	StochasticGateScale    float64 `yaml:"stochastic_gate_scale"` // probability × this per tick
	PointsAheadMargin      float64 `yaml:"points_ahead_margin"`   // no referee stoppage while ahead by more
}

// FatigueParams drives the stamina-tier attribute penalties.
type FatigueParams struct {
	TierModerate           float64 `yaml:"tier_moderate"`    // stamina fraction for the first penalty tier
	TierHeavy              float64 `yaml:"tier_heavy"`       // stamina fraction for the second tier
	TierCritical           float64 `yaml:"tier_critical"`    // near-zero tier with extra chin penalty
	PenaltyModerate        float64 `yaml:"penalty_moderate"` // attribute multiplier at moderate fatigue
	PenaltyHeavy           float64 `yaml:"penalty_heavy"`
	PenaltyCritical        float64 `yaml:"penalty_critical"`
	HeartResistance        float64 `yaml:"heart_resistance"`          // fraction of penalty removed at heart 100
	CriticalChinPenalty    float64 `yaml:"critical_chin_penalty"`     // extra chin multiplier near zero stamina
	BodyDamageStaminaDrain float64 `yaml:"body_damage_stamina_drain"` // stamina lost per point of body damage
}

// FoulParams drives foul attempt probability and consequences.
type FoulParams struct {
	BaseAttemptChance       float64 `yaml:"base_attempt_chance"` // per evaluation, before modifiers
	TiredBonus              float64 `yaml:"tired_bonus"`         // added when stamina is low
	LosingBonus             float64 `yaml:"losing_bonus"`        // added when behind on the cards
	DetectionBase           float64 `yaml:"detection_base"`      // referee detection probability
	IntentionalChance       float64 `yaml:"intentional_chance"`
	WarningsBeforeDeduction int     `yaml:"warnings_before_deduction"`
	DeductionsBeforeDQ      int     `yaml:"deductions_before_dq"`
	FlagrantDQChance        float64 `yaml:"flagrant_dq_chance"` // immediate DQ on a detected intentional foul
}

// EffectParams drives the timed-modifier engine triggers.
type EffectParams struct {
	IntimidationMargin float64 `yaml:"intimidation_margin"` // intimidation − (heart+experience)/2 needed
	BigFightMargin     float64 `yaml:"big_fight_margin"`    // clutch − opponent quality needed
	FastStartRounds    int     `yaml:"fast_start_rounds"`   // rounds the fast-start buff covers
	SecondWindRound    int     `yaml:"second_wind_round"`   // earliest round for a second wind
	SecondWindStamina  float64 `yaml:"second_wind_stamina"` // stamina fraction below which it can trigger
	SecondWindChance   float64 `yaml:"second_wind_chance"`
	LowStaminaFraction float64 `yaml:"low_stamina_fraction"` // fraction below which the penalty applies
	FocusLapseChance   float64 `yaml:"focus_lapse_chance"`   // per-round roll
	FocusLapseSecs     float64 `yaml:"focus_lapse_secs"`
}

// DefaultParams returns the tuned ruleset the engine ships with.
// This is the foul/referee-aware variant.
func DefaultParams() Params {
	return Params{
		Scoring: ScoringParams{
			CleanPunchWeight:        1.0,
			PowerPunchWeight:        1.5,
			JabWeight:               0.4,
			DamageWeight:            0.9,
			SignificantWeight:       2.5,
			SignificantDamage:       8.0,
			ForwardTimeWeight:       0.25,
			OutLandedBonus:          4.0,
			OutDamagedBonus:         5.0,
			CenterTimeWeight:        0.2,
			OpponentTrappedWeight:   0.3,
			OwnTrappedPenalty:       0.25,
			BackwardPenalty:         0.15,
			TacticalRetreatScale:    0.35,
			BlockWeight:             0.5,
			EvadeWeight:             0.7,
			DamageTakenPenalty:      0.3,
			ClearRoundMargin:        12.0,
			ModerateRoundMargin:     5.0,
			CloseRoundEvenChance:    0.65,
			HomeFighterBias:         1.0,
			KnockdownScoreDeduction: 1,
			ScoreFloor:              7,
		},
		Buzzed: BuzzedParams{
			SeverityDamage2:      12.0,
			SeverityDamage3:      20.0,
			BaseDurationSecs:     10.0,
			MinDurationSecs:      5.0,
			MaxDurationSecs:      20.0,
			CompoundExtension:    0.6,
			CompoundRecoverySlow: 0.7,
			BuzzDamageThreshold:  8.0,
			StunDamageThreshold:  6.0,
			StunHeavyDamage:      14.0,
			StunMaxTicks:         5,
			LightStunThrowChance: 0.4,
			BuzzedVulnerability:  1.5,
			StunVulnerability:    1.2,
			HurtVulnerability:    2.0,
		},
		Knockdown: KnockdownParams{
			ImmediateKOBase:               0.02,
			ImmediateKOPowerScale:         0.0020,
			ImmediateKODamageScale:        0.0030,
			ImmediateKOAccumScale:         0.15,
			ImmediateKOStaminaScale:       0.10,
			ImmediateKOChinScale:          0.0022,
			ImmediateKOHeartScale:         0.0008,
			RecoveryHeartWeight:           0.55,
			RecoveryChinWeight:            0.15,
			RecoveryExperienceWeight:      0.10,
			RecoveryComposureWeight:       0.08,
			RecoveryDamagePenalty:         0.25,
			RecoveryStaminaPenalty:        0.12,
			RecoveryPriorKnockdownPenalty: 0.08,
			RecoveryEarlyCountBonus:       0.10,
			RecoveryLateCountPenalty:      0.30,
			FlashRecoveryThreshold:        0.55,
			MandatoryCount:                8,
			FlashMinCount:                 2,
			FlashMaxCount:                 4,
			PostKnockdownDebuffSecs:       60.0,
			PostFlashDebuffSecs:           30.0,
			StaminaCost:                   12.0,
		},
		Stoppage: StoppageParams{
			DamageRatioWeight:      0.30,
			HurtDurationWeight:     0.04,
			RoundKnockdownWeight:   0.10,
			TotalKnockdownWeight:   0.05,
			VolumeDisparityWeight:  0.002,
			ExhaustionWeight:       0.10,
			CutSeverityWeight:      0.03,
			FinisherWeight:         0.0015,
			FinisherEliteThreshold: 85.0,
			FinisherEliteBonus:     0.08,
			StochasticGateScale:    0.35,
			PointsAheadMargin:      2.0,
		},
		Fatigue: FatigueParams{
			TierModerate:           0.60,
			TierHeavy:              0.35,
			TierCritical:           0.10,
			PenaltyModerate:        0.92,
			PenaltyHeavy:           0.80,
			PenaltyCritical:        0.65,
			HeartResistance:        0.50,
			CriticalChinPenalty:    0.85,
			BodyDamageStaminaDrain: 0.8,
		},
		Fouls: FoulParams{
			BaseAttemptChance:       0.002,
			TiredBonus:              0.002,
			LosingBonus:             0.003,
			DetectionBase:           0.55,
			IntentionalChance:       0.35,
			WarningsBeforeDeduction: 1,
			DeductionsBeforeDQ:      3,
			FlagrantDQChance:        0.05,
		},
		Effects: EffectParams{
			IntimidationMargin: 10.0,
			BigFightMargin:     5.0,
			FastStartRounds:    2,
			SecondWindRound:    7,
			SecondWindStamina:  0.30,
			SecondWindChance:   0.15,
			LowStaminaFraction: 0.20,
			FocusLapseChance:   0.05,
			FocusLapseSecs:     10.0,
		},
	}
}

// LoadParams reads a yaml overrides file on top of DefaultParams.
// Missing fields keep their defaults.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read params file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse params file %s: %w", path, err)
	}
	return p, nil
}
