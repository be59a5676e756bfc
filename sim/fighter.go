package sim

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// TicksPerSecond fixes the simulation resolution: one tick is half a second.
const TicksPerSecond = 2

// FighterState is the primary condition state. Exactly one is active at a
// time; transitions go through TransitionTo so invalid moves surface as
// errors instead of silent fallthroughs.
type FighterState string

const (
	StateNeutral     FighterState = "neutral"
	StateOffensive   FighterState = "offensive"
	StateDefensive   FighterState = "defensive"
	StateTiming      FighterState = "timing"
	StateMoving      FighterState = "moving"
	StateClinch      FighterState = "clinch"
	StateBuzzed      FighterState = "buzzed"
	StateHurt        FighterState = "hurt"
	StateKnockedDown FighterState = "knocked_down"
	StateFlashDown   FighterState = "flash_down"
	StateRecovered   FighterState = "recovered"
)

// SubState is an orthogonal tag attached only while in the corresponding
// primary state (offensive pressure style, defensive shell, movement lane).
type SubState string

const (
	SubNone       SubState = ""
	SubPressure   SubState = "pressure"
	SubCounter    SubState = "counter"
	SubShell      SubState = "shell"
	SubHighGuard  SubState = "high_guard"
	SubLateral    SubState = "lateral"
	SubRetreating SubState = "retreating"
)

// tacticalStates can be entered freely from one another; condition states
// (buzzed, hurt, down) gate what is reachable.
var validTransitions = map[FighterState][]FighterState{
	StateNeutral:     {StateOffensive, StateDefensive, StateTiming, StateMoving, StateClinch, StateBuzzed, StateHurt, StateKnockedDown, StateFlashDown},
	StateOffensive:   {StateNeutral, StateDefensive, StateTiming, StateMoving, StateClinch, StateBuzzed, StateHurt, StateKnockedDown, StateFlashDown},
	StateDefensive:   {StateNeutral, StateOffensive, StateTiming, StateMoving, StateClinch, StateBuzzed, StateHurt, StateKnockedDown, StateFlashDown},
	StateTiming:      {StateNeutral, StateOffensive, StateDefensive, StateMoving, StateClinch, StateBuzzed, StateHurt, StateKnockedDown, StateFlashDown},
	StateMoving:      {StateNeutral, StateOffensive, StateDefensive, StateTiming, StateClinch, StateBuzzed, StateHurt, StateKnockedDown, StateFlashDown},
	StateClinch:      {StateNeutral, StateDefensive, StateBuzzed, StateHurt, StateKnockedDown, StateFlashDown},
	StateBuzzed:      {StateNeutral, StateDefensive, StateHurt, StateKnockedDown, StateFlashDown},
	StateHurt:        {StateNeutral, StateDefensive, StateKnockedDown, StateFlashDown},
	StateKnockedDown: {StateRecovered},
	StateFlashDown:   {StateRecovered},
	StateRecovered:   {StateNeutral, StateDefensive, StateBuzzed, StateHurt, StateKnockedDown, StateFlashDown},
}

// CanTransition reports whether from → to is a legal state change.
func CanTransition(from, to FighterState) bool {
	if from == to {
		return true
	}
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PunchLocation targets the head or body.
type PunchLocation string

const (
	LocationHead PunchLocation = "head"
	LocationBody PunchLocation = "body"
)

// PunchType splits jabs from power punches for scoring and buzz duration.
type PunchType string

const (
	PunchJab      PunchType = "jab"
	PunchCross    PunchType = "cross"
	PunchHook     PunchType = "hook"
	PunchUppercut PunchType = "uppercut"
	PunchOverhand PunchType = "overhand"
)

// IsPowerPunch reports whether the punch type counts as a power punch.
func (p PunchType) IsPowerPunch() bool {
	return p != PunchJab
}

// Cut is an open cut or swelling mark on a fighter.
type Cut struct {
	Location string
	Severity int // 1 (nick) .. 5 (fight-threatening)
}

// FightTotals is the cumulative per-fight statistic ledger for one fighter.
type FightTotals struct {
	PunchesThrown      int
	PunchesLanded      int
	CleanPunches       int
	PowerPunchesLanded int
	JabsLanded         int
	DamageDealt        float64
	DamageReceived     float64
	KnockdownsScored   int
}

// Fighter is the per-competitor condition model. All mutation goes through
// methods that clamp to declared bounds; no field may go NaN or negative.
type Fighter struct {
	ID    string
	Name  string
	Class WeightClass
	Attrs Attributes

	params Params

	State    FighterState
	SubState SubState

	Stamina    float64
	MaxStamina float64

	HeadDamage float64
	BodyDamage float64
	MaxDamage  float64

	Cuts []Cut

	// Buzzed condition. Remaining is in ticks; RecoveryRate is ticks
	// recovered per tick (≥1 means normal decay, <1 means slowed).
	BuzzedRemaining float64
	BuzzedSeverity  int
	BuzzedRecovery  float64

	// Stun: a ≤5-tick per-hit penalty. Level 2 forbids throwing, level 1
	// allows it only with reduced probability.
	StunTicks int
	StunLevel int

	// Hurt condition bookkeeping. HurtRemaining counts down to recovery;
	// HurtDuration counts up while hurt (drives referee stoppage scoring).
	HurtRemaining int
	HurtDuration  int

	// RecentDamage is a decaying window of damage taken, used by the
	// stoppage heuristic to detect unanswered barrages.
	RecentDamage float64

	// Knockdown counters. Total is monotonic for the whole fight; the
	// round counter resets at round start.
	KnockdownsTotal     int
	KnockdownsThisRound int

	Totals FightTotals

	// modified is the attribute snapshot combat and AI logic must read
	// during a tick; refreshed by UpdateModifiedAttributes.
	modified map[string]float64
}

// NewFighter validates identity and builds a fight-ready fighter at full
// stamina and zero damage.
func NewFighter(name string, class WeightClass, attrs Attributes, params Params) (*Fighter, error) {
	if name == "" {
		return nil, fmt.Errorf("fighter name is required")
	}
	f := &Fighter{
		ID:         uuid.NewString(),
		Name:       name,
		Class:      class,
		Attrs:      attrs,
		params:     params,
		State:      StateNeutral,
		MaxStamina: 100,
		Stamina:    100,
	}
	f.MaxDamage = MaxDamageFor(class, attrs.Mental.Chin)
	f.UpdateModifiedAttributes(nil)
	return f, nil
}

// TransitionTo moves the fighter to a new primary state, clearing the
// sub-state tag. Illegal transitions are an error.
func (f *Fighter) TransitionTo(state FighterState) error {
	if !CanTransition(f.State, state) {
		return fmt.Errorf("invalid fighter state transition %s -> %s", f.State, state)
	}
	f.State = state
	f.SubState = SubNone
	return nil
}

// TakeDamage adds damage at the given location, clamped to the derived
// maximum. Body damage additionally drains stamina in proportion.
func (f *Fighter) TakeDamage(amount float64, location PunchLocation) {
	if amount < 0 {
		amount = 0
	}
	switch location {
	case LocationBody:
		f.BodyDamage = clampFloat(f.BodyDamage+amount, 0, f.MaxDamage)
		f.DrainStamina(amount * f.params.Fatigue.BodyDamageStaminaDrain)
	default:
		f.HeadDamage = clampFloat(f.HeadDamage+amount, 0, f.MaxDamage)
	}
	f.RecentDamage += amount
	f.Totals.DamageReceived += amount
}

// DrainStamina removes stamina, clamped at zero.
func (f *Fighter) DrainStamina(amount float64) {
	if amount < 0 {
		amount = 0
	}
	f.Stamina = clampFloat(f.Stamina-amount, 0, f.MaxStamina)
}

// RecoverStamina restores stamina, clamped at the maximum.
func (f *Fighter) RecoverStamina(amount float64) {
	if amount < 0 {
		amount = 0
	}
	f.Stamina = clampFloat(f.Stamina+amount, 0, f.MaxStamina)
}

// StaminaFraction is stamina on a 0..1 scale.
func (f *Fighter) StaminaFraction() float64 {
	if f.MaxStamina <= 0 {
		return 0
	}
	return f.Stamina / f.MaxStamina
}

// AccumulatedDamageRatio is worst-location damage on a 0..1 scale.
func (f *Fighter) AccumulatedDamageRatio() float64 {
	worst := f.HeadDamage
	if f.BodyDamage > worst {
		worst = f.BodyDamage
	}
	if f.MaxDamage <= 0 {
		return 0
	}
	return worst / f.MaxDamage
}

// IsBuzzed reports the dazed-but-not-hurt condition.
func (f *Fighter) IsBuzzed() bool { return f.BuzzedRemaining > 0 && !f.IsHurt() }

// IsHurt reports the severe dazed condition. Hurt supersedes buzzed.
func (f *Fighter) IsHurt() bool { return f.HurtRemaining > 0 }

// IsDown reports whether the fighter is on the canvas.
func (f *Fighter) IsDown() bool {
	return f.State == StateKnockedDown || f.State == StateFlashDown
}

// SetBuzzed puts the fighter in the buzzed condition, or compounds it when
// already buzzed: duration extends, severity can rise, recovery slows.
// Hurt supersedes buzzed, so a hurt fighter ignores the call.
func (f *Fighter) SetBuzzed(damage float64, punch PunchType) {
	if f.IsHurt() {
		return
	}
	bp := f.params.Buzzed

	severity := 1
	if damage >= bp.SeverityDamage3 {
		severity = 3
	} else if damage >= bp.SeverityDamage2 {
		severity = 2
	}

	// Duration: base scaled by severity and damage, shortened by chin,
	// lengthened by power punches, clamped to the documented 5–20s window.
	durSecs := bp.BaseDurationSecs * (0.6 + 0.4*float64(severity))
	durSecs *= 1.0 - (f.Attrs.Mental.Chin-50.0)*0.006
	if punch.IsPowerPunch() {
		durSecs *= 1.2
	}
	durSecs = clampFloat(durSecs, bp.MinDurationSecs, bp.MaxDurationSecs)
	durTicks := durSecs * TicksPerSecond

	// Per-tick recovery from chin, cardio, and current stamina.
	recovery := 0.6 + (f.Attrs.Mental.Chin+f.Attrs.Stamina.Cardio)/400.0 + 0.3*f.StaminaFraction()

	if f.IsBuzzed() {
		// Getting hit again while dazed makes it worse: extend, never
		// replace; severity may climb; recovery slows further.
		f.BuzzedRemaining += durTicks * bp.CompoundExtension
		if severity > f.BuzzedSeverity {
			f.BuzzedSeverity = severity
		} else if f.BuzzedSeverity < 3 {
			f.BuzzedSeverity++
		}
		f.BuzzedRecovery *= bp.CompoundRecoverySlow
	} else {
		f.BuzzedRemaining = durTicks
		f.BuzzedSeverity = severity
		f.BuzzedRecovery = recovery
		if f.State != StateKnockedDown && f.State != StateFlashDown {
			f.State = StateBuzzed
			f.SubState = SubNone
		}
	}
}

// SetHurt puts the fighter in the hurt condition for the given number of
// ticks, superseding any buzzed state.
func (f *Fighter) SetHurt(durationTicks int) {
	if durationTicks <= 0 {
		return
	}
	f.BuzzedRemaining = 0
	f.BuzzedSeverity = 0
	if durationTicks > f.HurtRemaining {
		f.HurtRemaining = durationTicks
	}
	if f.State != StateKnockedDown && f.State != StateFlashDown {
		f.State = StateHurt
		f.SubState = SubNone
	}
}

// ApplyStun applies the short per-hit penalty when damage clears the
// threshold. Heavy hits stun at level 2 (cannot throw); lighter ones at
// level 1 (throwing succeeds only with reduced probability).
func (f *Fighter) ApplyStun(damage float64) {
	bp := f.params.Buzzed
	if damage < bp.StunDamageThreshold {
		return
	}
	level := 1
	ticks := 2
	if damage >= bp.StunHeavyDamage {
		level = 2
		ticks = bp.StunMaxTicks
	}
	if level >= f.StunLevel {
		f.StunLevel = level
		if ticks > f.StunTicks {
			f.StunTicks = ticks
		}
	}
}

// UpdateStun decays the stun by one tick.
func (f *Fighter) UpdateStun() {
	if f.StunTicks > 0 {
		f.StunTicks--
		if f.StunTicks == 0 {
			f.StunLevel = 0
		}
	}
}

// CanThrow reports whether the fighter may throw a punch this tick under
// the current stun level. rng resolves the reduced-probability case.
func (f *Fighter) CanThrow(rng *rand.Rand) bool {
	switch f.StunLevel {
	case 2:
		return false
	case 1:
		return rng.Float64() < f.params.Buzzed.LightStunThrowChance
	default:
		return true
	}
}

// UpdateBuzzed decays the buzzed timer by the per-tick recovery rate and
// clears the condition when it expires.
func (f *Fighter) UpdateBuzzed() {
	if f.BuzzedRemaining <= 0 {
		return
	}
	rate := f.BuzzedRecovery
	if rate < 0.1 {
		rate = 0.1
	}
	f.BuzzedRemaining -= rate
	if f.BuzzedRemaining <= 0 {
		f.BuzzedRemaining = 0
		f.BuzzedSeverity = 0
		if f.State == StateBuzzed {
			f.State = StateNeutral
		}
	}
}

// UpdateHurt decays the hurt timer and tracks how long the fighter has been
// hurt; RecentDamage decays alongside.
func (f *Fighter) UpdateHurt() {
	if f.HurtRemaining > 0 {
		f.HurtRemaining--
		f.HurtDuration++
		if f.HurtRemaining == 0 {
			f.HurtDuration = 0
			if f.State == StateHurt {
				f.State = StateNeutral
			}
		}
	}
	f.RecentDamage *= 0.92
	if f.RecentDamage < 0.01 {
		f.RecentDamage = 0
	}
}

// TotalVulnerability multiplies the independent vulnerability multipliers of
// the buzzed, stunned, and hurt conditions. Knockdown and recovery formulas
// consume this.
func (f *Fighter) TotalVulnerability() float64 {
	bp := f.params.Buzzed
	v := 1.0
	if f.IsBuzzed() {
		v *= bp.BuzzedVulnerability
	}
	if f.StunLevel > 0 {
		v *= bp.StunVulnerability
	}
	if f.IsHurt() {
		v *= bp.HurtVulnerability
	}
	return v
}

// AddCut records a cut or swelling mark.
func (f *Fighter) AddCut(location string, severity int) {
	if severity < 1 {
		severity = 1
	}
	if severity > 5 {
		severity = 5
	}
	f.Cuts = append(f.Cuts, Cut{Location: location, Severity: severity})
}

// CutSeverityTotal sums open cut severities for stoppage scoring.
func (f *Fighter) CutSeverityTotal() int {
	total := 0
	for _, c := range f.Cuts {
		total += c.Severity
	}
	return total
}

// RecordKnockdown bumps both knockdown counters. The fight total is
// monotonic; only the round counter ever resets.
func (f *Fighter) RecordKnockdown() {
	f.KnockdownsTotal++
	f.KnockdownsThisRound++
}

// ResetForRound clears round-scoped condition state at the bell. Damage,
// cuts, and the fight-total knockdown counter carry over.
func (f *Fighter) ResetForRound() {
	f.KnockdownsThisRound = 0
	f.StunTicks = 0
	f.StunLevel = 0
	f.RecentDamage = 0
	if f.State != StateNeutral {
		f.State = StateNeutral
		f.SubState = SubNone
	}
}

// UpdateModifiedAttributes recomputes the attribute snapshot that combat
// and AI logic read during a tick:
//  1. a stamina-tier fatigue penalty, its severity reduced by heart
//     (elite-heart fighters resist fatigue decline),
//  2. an additional chin penalty when stamina is near zero,
//  3. every active buff/debuff effect map.
func (f *Fighter) UpdateModifiedAttributes(effects []EffectModifier) {
	fp := f.params.Fatigue
	snap := f.Attrs.Snapshot()

	frac := f.StaminaFraction()
	penalty := 1.0
	switch {
	case frac <= fp.TierCritical:
		penalty = fp.PenaltyCritical
	case frac <= fp.TierHeavy:
		penalty = fp.PenaltyHeavy
	case frac <= fp.TierModerate:
		penalty = fp.PenaltyModerate
	}
	if penalty < 1.0 {
		// Heart resists fatigue decline: at heart 100 the penalty is
		// softened by the configured resistance fraction.
		resist := (f.Attrs.Mental.Heart / 100.0) * fp.HeartResistance
		penalty += (1.0 - penalty) * resist
		for k := range snap {
			snap[k] *= penalty
		}
	}
	if frac <= fp.TierCritical {
		snap[AttrChin] *= fp.CriticalChinPenalty
	}

	for _, eff := range effects {
		for attr, mult := range eff.Effects {
			if attr == AttrAll {
				for k := range snap {
					snap[k] *= mult
				}
				continue
			}
			if _, ok := snap[attr]; ok {
				snap[attr] *= mult
			}
		}
	}

	for k, v := range snap {
		snap[k] = clampFloat(v, 1, 100)
	}
	f.modified = snap
}

// Modified returns the current modified value of a named attribute. This,
// not the base attribute, is what tick logic must read.
func (f *Fighter) Modified(attr string) float64 {
	if f.modified == nil {
		return 0
	}
	return f.modified[attr]
}

// ModifiedSnapshot returns a copy of the full modified attribute map.
func (f *Fighter) ModifiedSnapshot() map[string]float64 {
	out := make(map[string]float64, len(f.modified))
	for k, v := range f.modified {
		out[k] = v
	}
	return out
}
