package sim

import "math/rand"

// EffectType keys the timed modifiers a fighter can carry.
type EffectType string

const (
	EffectIntimidated   EffectType = "intimidated"     // confidence loss before/early in the fight
	EffectBigFightFocus EffectType = "big_fight_focus" // clutch boost on the big stage
	EffectFastStart     EffectType = "fast_start"      // explosive early-round buff
	EffectSecondWind    EffectType = "second_wind"     // late-round surge
	EffectLowStamina    EffectType = "low_stamina"     // running-on-empty penalty
	EffectFocusLapse    EffectType = "focus_lapse"     // momentary concentration loss
	EffectPostKnockdown EffectType = "post_knockdown"  // legs not back yet after a knockdown
)

// EffectModifier is one timed modifier. Effects maps attribute names to
// multipliers; AttrAll applies to every attribute. RoundScoped modifiers are
// cleared at the round reset regardless of remaining ticks.
type EffectModifier struct {
	Type           EffectType
	RemainingTicks int
	RoundScoped    bool
	Effects        map[string]float64
}

// EffectsEngine holds the active timed modifiers per fighter id. The
// orchestrator triggers the named situations, ticks decay once per tick,
// and feeds the active set into Fighter.UpdateModifiedAttributes.
type EffectsEngine struct {
	params EffectParams
	active map[string][]*EffectModifier
}

// NewEffectsEngine builds an engine from the parameter table.
func NewEffectsEngine(params EffectParams) *EffectsEngine {
	return &EffectsEngine{
		params: params,
		active: make(map[string][]*EffectModifier),
	}
}

// Active returns copies of the active modifiers for a fighter id.
func (e *EffectsEngine) Active(fighterID string) []EffectModifier {
	mods := e.active[fighterID]
	out := make([]EffectModifier, 0, len(mods))
	for _, m := range mods {
		out = append(out, *m)
	}
	return out
}

// Has reports whether a modifier of the given type is active.
func (e *EffectsEngine) Has(fighterID string, t EffectType) bool {
	for _, m := range e.active[fighterID] {
		if m.Type == t {
			return true
		}
	}
	return false
}

// apply adds a modifier, refreshing an existing one of the same type
// instead of stacking.
func (e *EffectsEngine) apply(fighterID string, mod EffectModifier) {
	for _, m := range e.active[fighterID] {
		if m.Type == mod.Type {
			if mod.RemainingTicks > m.RemainingTicks {
				m.RemainingTicks = mod.RemainingTicks
			}
			return
		}
	}
	m := mod
	e.active[fighterID] = append(e.active[fighterID], &m)
}

// remove drops a modifier by type.
func (e *EffectsEngine) remove(fighterID string, t EffectType) {
	mods := e.active[fighterID]
	out := mods[:0]
	for _, m := range mods {
		if m.Type != t {
			out = append(out, m)
		}
	}
	e.active[fighterID] = out
}

// CheckIntimidation compares the intimidator's intimidation attribute
// against the target's heart and experience; a sufficient margin saddles
// the target with a confidence debuff for the early fight.
func (e *EffectsEngine) CheckIntimidation(target, intimidator *Fighter, rng *rand.Rand) bool {
	resistance := (target.Attrs.Mental.Heart + target.Attrs.Mental.Experience) / 2.0
	margin := intimidator.Attrs.Mental.Intimidation - resistance
	if margin < e.params.IntimidationMargin {
		return false
	}
	if rng.Float64() >= clampFloat(margin/40.0, 0.1, 0.8) {
		return false
	}
	e.apply(target.ID, EffectModifier{
		Type:           EffectIntimidated,
		RemainingTicks: 120 * TicksPerSecond,
		Effects: map[string]float64{
			AttrComposure: 0.85,
			AttrAccuracy:  0.92,
			AttrWorkRate:  0.90,
		},
	})
	return true
}

// CheckBigFightFocus compares the fighter's clutch factor against opponent
// quality; rising to the occasion earns a focus buff.
func (e *EffectsEngine) CheckBigFightFocus(f *Fighter, opponentQuality float64, rng *rand.Rand) bool {
	margin := f.Attrs.Mental.Clutch - opponentQuality
	if margin < e.params.BigFightMargin {
		return false
	}
	if rng.Float64() >= 0.5 {
		return false
	}
	e.apply(f.ID, EffectModifier{
		Type:           EffectBigFightFocus,
		RemainingTicks: 180 * TicksPerSecond,
		Effects: map[string]float64{
			AttrComposure: 1.10,
			AttrTiming:    1.08,
			AttrAccuracy:  1.05,
		},
	})
	return true
}

// CheckFastStart gives explosive fighters an early-round buff.
func (e *EffectsEngine) CheckFastStart(f *Fighter, round int) bool {
	if round > e.params.FastStartRounds {
		return false
	}
	explosive := (f.Attrs.Speed.HandSpeed + f.Attrs.Stamina.WorkRate) / 2.0
	if explosive < 75 {
		return false
	}
	e.apply(f.ID, EffectModifier{
		Type:           EffectFastStart,
		RemainingTicks: 0, // round-scoped, no tick decay
		RoundScoped:    true,
		Effects: map[string]float64{
			AttrHandSpeed:  1.08,
			AttrWorkRate:   1.10,
			AttrPunchPower: 1.05,
		},
	})
	return true
}

// CheckSecondWind can trigger a late-round surge for a spent fighter.
func (e *EffectsEngine) CheckSecondWind(f *Fighter, round int, rng *rand.Rand) bool {
	if round < e.params.SecondWindRound {
		return false
	}
	if f.StaminaFraction() > e.params.SecondWindStamina {
		return false
	}
	if e.Has(f.ID, EffectSecondWind) {
		return false
	}
	chance := e.params.SecondWindChance * (f.Attrs.Mental.Heart / 70.0)
	if rng.Float64() >= chance {
		return false
	}
	e.apply(f.ID, EffectModifier{
		Type:           EffectSecondWind,
		RemainingTicks: 90 * TicksPerSecond,
		Effects: map[string]float64{
			AttrCardio:   1.15,
			AttrWorkRate: 1.12,
			AttrHeart:    1.05,
		},
	})
	return true
}

// UpdateLowStamina applies or clears the running-on-empty penalty based on
// the fighter's current stamina fraction.
func (e *EffectsEngine) UpdateLowStamina(f *Fighter) {
	if f.StaminaFraction() <= e.params.LowStaminaFraction {
		e.apply(f.ID, EffectModifier{
			Type:           EffectLowStamina,
			RemainingTicks: 0,
			RoundScoped:    true,
			Effects: map[string]float64{
				AttrHandSpeed:  0.85,
				AttrFootSpeed:  0.82,
				AttrPunchPower: 0.88,
				AttrReflexes:   0.85,
			},
		})
		return
	}
	e.remove(f.ID, EffectLowStamina)
}

// ApplyFocusLapse gives a momentary concentration loss.
func (e *EffectsEngine) ApplyFocusLapse(f *Fighter) {
	e.apply(f.ID, EffectModifier{
		Type:           EffectFocusLapse,
		RemainingTicks: int(e.params.FocusLapseSecs * TicksPerSecond),
		Effects: map[string]float64{
			AttrReflexes:     0.85,
			AttrHeadMovement: 0.85,
		},
	})
}

// ApplyPostKnockdown attaches the temporary debuff a fighter carries after
// rising from a knockdown. Flash knockdowns leave a lighter mark.
func (e *EffectsEngine) ApplyPostKnockdown(f *Fighter, flash bool, params KnockdownParams) {
	secs := params.PostKnockdownDebuffSecs
	effects := map[string]float64{
		AttrChin:      0.85,
		AttrReflexes:  0.88,
		AttrFootSpeed: 0.90,
	}
	if flash {
		secs = params.PostFlashDebuffSecs
		effects = map[string]float64{
			AttrChin:     0.92,
			AttrReflexes: 0.94,
		}
	}
	e.apply(f.ID, EffectModifier{
		Type:           EffectPostKnockdown,
		RemainingTicks: int(secs * TicksPerSecond),
		Effects:        effects,
	})
}

// Tick decays every timed modifier by one tick and drops expired ones.
// Round-scoped modifiers (RemainingTicks 0) persist until the round reset.
func (e *EffectsEngine) Tick() {
	for id, mods := range e.active {
		out := mods[:0]
		for _, m := range mods {
			if m.RemainingTicks > 0 {
				m.RemainingTicks--
				if m.RemainingTicks == 0 {
					continue
				}
			}
			out = append(out, m)
		}
		e.active[id] = out
	}
}

// RoundReset clears round-scoped modifiers and rolls fresh-round triggers
// (fast start, second wind, focus lapse) for both fighters.
func (e *EffectsEngine) RoundReset(round int, fighters []*Fighter, rng *rand.Rand) {
	for id, mods := range e.active {
		out := mods[:0]
		for _, m := range mods {
			if !m.RoundScoped {
				out = append(out, m)
			}
		}
		e.active[id] = out
	}
	for _, f := range fighters {
		e.CheckFastStart(f, round)
		e.CheckSecondWind(f, round, rng)
		if rng.Float64() < e.params.FocusLapseChance {
			e.ApplyFocusLapse(f)
		}
	}
}
