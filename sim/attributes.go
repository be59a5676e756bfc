package sim

// Attribute names used as keys in modifier maps and snapshots.
// Buff/debuff effect maps reference these; AttrAll applies to every attribute.
const (
	AttrAll = "all"

	AttrKnockoutPower = "knockoutPower"
	AttrPunchPower    = "punchPower"
	AttrBodyPunching  = "bodyPunching"

	AttrHandSpeed = "handSpeed"
	AttrFootSpeed = "footSpeed"
	AttrReflexes  = "reflexes"

	AttrCardio   = "cardio"
	AttrRecovery = "recovery"
	AttrWorkRate = "workRate"

	AttrBlocking     = "blocking"
	AttrHeadMovement = "headMovement"
	AttrClinching    = "clinching"

	AttrAccuracy       = "accuracy"
	AttrCombinations   = "combinations"
	AttrKillerInstinct = "killerInstinct"

	AttrFootwork        = "footwork"
	AttrRingGeneralship = "ringGeneralship"
	AttrTiming          = "timing"

	AttrChin         = "chin"
	AttrHeart        = "heart"
	AttrComposure    = "composure"
	AttrExperience   = "experience"
	AttrIntimidation = "intimidation"
	AttrClutch       = "clutch"
	AttrFightIQ      = "fightIQ"
)

// Attributes holds a fighter's seven attribute groups, each rated 1–100.
type Attributes struct {
	Power     PowerAttributes     `yaml:"power"`
	Speed     SpeedAttributes     `yaml:"speed"`
	Stamina   StaminaAttributes   `yaml:"stamina"`
	Defense   DefenseAttributes   `yaml:"defense"`
	Offense   OffenseAttributes   `yaml:"offense"`
	Technical TechnicalAttributes `yaml:"technical"`
	Mental    MentalAttributes    `yaml:"mental"`
}

type PowerAttributes struct {
	KnockoutPower float64 `yaml:"knockout_power"`
	PunchPower    float64 `yaml:"punch_power"`
	BodyPunching  float64 `yaml:"body_punching"`
}

type SpeedAttributes struct {
	HandSpeed float64 `yaml:"hand_speed"`
	FootSpeed float64 `yaml:"foot_speed"`
	Reflexes  float64 `yaml:"reflexes"`
}

type StaminaAttributes struct {
	Cardio   float64 `yaml:"cardio"`
	Recovery float64 `yaml:"recovery"`
	WorkRate float64 `yaml:"work_rate"`
}

type DefenseAttributes struct {
	Blocking     float64 `yaml:"blocking"`
	HeadMovement float64 `yaml:"head_movement"`
	Clinching    float64 `yaml:"clinching"`
}

type OffenseAttributes struct {
	Accuracy       float64 `yaml:"accuracy"`
	Combinations   float64 `yaml:"combinations"`
	KillerInstinct float64 `yaml:"killer_instinct"`
}

type TechnicalAttributes struct {
	Footwork        float64 `yaml:"footwork"`
	RingGeneralship float64 `yaml:"ring_generalship"`
	Timing          float64 `yaml:"timing"`
}

type MentalAttributes struct {
	Chin         float64 `yaml:"chin"`
	Heart        float64 `yaml:"heart"`
	Composure    float64 `yaml:"composure"`
	Experience   float64 `yaml:"experience"`
	Intimidation float64 `yaml:"intimidation"`
	Clutch       float64 `yaml:"clutch"`
	FightIQ      float64 `yaml:"fight_iq"`
}

// Snapshot flattens the attribute groups into a name → value map.
// Modifier maps (fatigue tiers, buffs, debuffs) multiply into a copy of this.
func (a Attributes) Snapshot() map[string]float64 {
	return map[string]float64{
		AttrKnockoutPower: a.Power.KnockoutPower,
		AttrPunchPower:    a.Power.PunchPower,
		AttrBodyPunching:  a.Power.BodyPunching,

		AttrHandSpeed: a.Speed.HandSpeed,
		AttrFootSpeed: a.Speed.FootSpeed,
		AttrReflexes:  a.Speed.Reflexes,

		AttrCardio:   a.Stamina.Cardio,
		AttrRecovery: a.Stamina.Recovery,
		AttrWorkRate: a.Stamina.WorkRate,

		AttrBlocking:     a.Defense.Blocking,
		AttrHeadMovement: a.Defense.HeadMovement,
		AttrClinching:    a.Defense.Clinching,

		AttrAccuracy:       a.Offense.Accuracy,
		AttrCombinations:   a.Offense.Combinations,
		AttrKillerInstinct: a.Offense.KillerInstinct,

		AttrFootwork:        a.Technical.Footwork,
		AttrRingGeneralship: a.Technical.RingGeneralship,
		AttrTiming:          a.Technical.Timing,

		AttrChin:         a.Mental.Chin,
		AttrHeart:        a.Mental.Heart,
		AttrComposure:    a.Mental.Composure,
		AttrExperience:   a.Mental.Experience,
		AttrIntimidation: a.Mental.Intimidation,
		AttrClutch:       a.Mental.Clutch,
		AttrFightIQ:      a.Mental.FightIQ,
	}
}

// OverallRating averages every attribute; used as the "opponent quality"
// input to big-fight effect checks.
func (a Attributes) OverallRating() float64 {
	snap := a.Snapshot()
	var sum float64
	for _, v := range snap {
		sum += v
	}
	return sum / float64(len(snap))
}

// FinisherRating blends knockout power and killer instinct. A high value
// materially raises stoppage probability against a hurt opponent.
func (a Attributes) FinisherRating() float64 {
	return 0.6*a.Power.KnockoutPower + 0.4*a.Offense.KillerInstinct
}

// WeightClass determines the base damage capacity a fighter can absorb.
type WeightClass string

const (
	Flyweight    WeightClass = "flyweight"
	Lightweight  WeightClass = "lightweight"
	Welterweight WeightClass = "welterweight"
	Middleweight WeightClass = "middleweight"
	Heavyweight  WeightClass = "heavyweight"
)

// baseMaxDamage is the damage capacity per weight class before the chin
// modifier is applied.
var baseMaxDamage = map[WeightClass]float64{
	Flyweight:    80,
	Lightweight:  90,
	Welterweight: 100,
	Middleweight: 110,
	Heavyweight:  125,
}

// MaxDamageFor derives the head/body damage ceiling from body-mass class and
// chin: chin 50 is neutral, every point above or below shifts capacity 0.5%.
func MaxDamageFor(class WeightClass, chin float64) float64 {
	base, ok := baseMaxDamage[class]
	if !ok {
		base = baseMaxDamage[Middleweight]
	}
	return base * (1.0 + (chin-50.0)*0.005)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
