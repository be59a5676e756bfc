package sim

import "math/rand"

// This file provides the stock collaborators the CLI wires in: a simple
// tactical AI, a probabilistic combat resolver, and scalar damage, stamina,
// and ring-position models. Embedding applications with richer models
// replace any of them independently.

// punchDamageBase is the pre-modifier damage per punch type.
var punchDamageBase = map[PunchType]float64{
	PunchJab:      2.5,
	PunchCross:    6.0,
	PunchHook:     7.0,
	PunchUppercut: 7.5,
	PunchOverhand: 8.0,
}

// punchStaminaCost is the energy cost of landing each punch type; missing
// costs half again as much.
var punchStaminaCost = map[PunchType]float64{
	PunchJab:      0.3,
	PunchCross:    0.7,
	PunchHook:     0.8,
	PunchUppercut: 0.9,
	PunchOverhand: 1.0,
}

// TacticalAI is a stock DecisionSource: style follows the attribute sheet,
// urgency follows the cards and the clock.
type TacticalAI struct {
	rng *rand.Rand
}

// NewTacticalAI builds the stock AI over a deterministic RNG.
func NewTacticalAI(rng *rand.Rand) *TacticalAI {
	return &TacticalAI{rng: rng}
}

func (ai *TacticalAI) Decide(f, opp *Fighter, fight *Fight) Decision {
	if f.IsDown() {
		return Decision{State: f.State, Action: ActionNone}
	}
	if f.IsHurt() {
		// Survive: cover up or grab.
		if ai.rng.Float64() < 0.4 {
			return Decision{State: StateClinch, Action: ActionClinch}
		}
		return Decision{State: StateDefensive, SubState: SubShell, Action: ActionGuard}
	}
	if f.IsBuzzed() {
		return Decision{State: StateDefensive, SubState: SubHighGuard, Action: ActionGuard}
	}

	aggression := f.Modified(AttrWorkRate) / 100.0
	if fight.ScoreMargin(f.ID) < -1.0 {
		aggression += 0.15 // behind on the cards, press
	}
	if f.StaminaFraction() < 0.25 {
		aggression -= 0.25
	}

	roll := ai.rng.Float64()
	switch {
	case roll < aggression*0.75:
		punch := ai.pickPunch(f)
		target := LocationHead
		if ai.rng.Float64() < 0.30+f.Attrs.Power.BodyPunching/400.0 {
			target = LocationBody
		}
		return Decision{State: StateOffensive, SubState: SubPressure, Action: ActionPunch, Punch: punch, Target: target}
	case roll < aggression*0.75+0.15:
		return Decision{State: StateMoving, SubState: SubLateral, Action: ActionAdvance}
	case roll < aggression*0.75+0.25:
		return Decision{State: StateMoving, SubState: SubRetreating, Action: ActionRetreat}
	case roll < aggression*0.75+0.30 && f.StaminaFraction() < 0.4:
		return Decision{State: StateClinch, Action: ActionClinch}
	case roll < aggression*0.75+0.40:
		return Decision{State: StateTiming, SubState: SubCounter, Action: ActionGuard}
	default:
		return Decision{State: StateDefensive, Action: ActionGuard}
	}
}

func (ai *TacticalAI) pickPunch(f *Fighter) PunchType {
	if ai.rng.Float64() < 0.45 {
		return PunchJab
	}
	power := []PunchType{PunchCross, PunchHook, PunchUppercut, PunchOverhand}
	return power[ai.rng.Intn(len(power))]
}

// StandardDamage is the stock DamageCalculator.
type StandardDamage struct {
	rng *rand.Rand
}

// NewStandardDamage builds the stock damage model.
func NewStandardDamage(rng *rand.Rand) *StandardDamage {
	return &StandardDamage{rng: rng}
}

func (d *StandardDamage) CalculateDamage(hit Hit, attacker, target *Fighter) float64 {
	base := punchDamageBase[hit.Punch]
	power := attacker.Modified(AttrPunchPower)
	if hit.Punch.IsPowerPunch() {
		power = (power + attacker.Modified(AttrKnockoutPower)) / 2.0
	}
	dmg := base * (0.5 + power/100.0)
	if hit.Clean {
		dmg *= 1.3
	} else {
		dmg *= 0.6
	}
	if hit.IsCounter {
		dmg *= 1.25
	}
	dmg *= target.TotalVulnerability()
	dmg *= 0.85 + 0.3*d.rng.Float64()
	return dmg
}

func (d *StandardDamage) CheckHurt(target *Fighter, damage float64) bool {
	if damage < 9 {
		return false
	}
	resistance := (target.Modified(AttrChin) + target.Attrs.Mental.Composure/2.0) / 150.0
	return d.rng.Float64() < clampFloat(damage/30.0-resistance*0.5, 0, 0.8)
}

// StandardCombat is the stock CombatResolver.
type StandardCombat struct {
	rng    *rand.Rand
	damage *StandardDamage
}

// NewStandardCombat builds the stock resolver sharing the damage model's RNG.
func NewStandardCombat(rng *rand.Rand) *StandardCombat {
	return &StandardCombat{rng: rng, damage: NewStandardDamage(rng)}
}

func (c *StandardCombat) Resolve(a, b *Fighter, decisionA, decisionB Decision, fight *Fight) CombatOutcome {
	var out CombatOutcome
	c.resolveSide(&out, a, b, decisionA, decisionB)
	c.resolveSide(&out, b, a, decisionB, decisionA)
	return out
}

func (c *StandardCombat) resolveSide(out *CombatOutcome, attacker, target *Fighter, da, db Decision) {
	if da.Action != ActionPunch || attacker.IsDown() || target.IsDown() {
		return
	}
	if !attacker.CanThrow(c.rng) {
		return
	}

	accuracy := attacker.Modified(AttrAccuracy) / 100.0
	defense := (target.Modified(AttrHeadMovement) + target.Modified(AttrReflexes)) / 200.0
	if db.Action == ActionGuard {
		defense += 0.15
	}
	isCounter := db.State == StateTiming && c.rng.Float64() < target.Modified(AttrTiming)/250.0

	landChance := clampFloat(0.25+accuracy*0.6-defense*0.45, 0.05, 0.85)
	roll := c.rng.Float64()
	switch {
	case roll < landChance:
		hit := Hit{
			AttackerID: attacker.ID,
			TargetID:   target.ID,
			Punch:      da.Punch,
			Location:   da.Target,
			Clean:      c.rng.Float64() < 0.55+accuracy*0.2-defense*0.2,
			IsCounter:  false,
		}
		out.Hits = append(out.Hits, hit)
		c.maybeKnockdown(out, attacker, target, hit)
	case roll < landChance+(target.Modified(AttrBlocking)/100.0)*0.35:
		out.Blocks = append(out.Blocks, Block{DefenderID: target.ID, AttackerID: attacker.ID, Punch: da.Punch})
	case roll < landChance+(target.Modified(AttrBlocking)/100.0)*0.35+(target.Modified(AttrHeadMovement)/100.0)*0.25:
		out.Evades = append(out.Evades, Evade{DefenderID: target.ID, AttackerID: attacker.ID, Punch: da.Punch})
	default:
		out.Misses = append(out.Misses, Miss{AttackerID: attacker.ID, Punch: da.Punch})
	}

	// A successful counter comes straight back.
	if isCounter && target.CanThrow(c.rng) {
		counter := Hit{
			AttackerID: target.ID,
			TargetID:   attacker.ID,
			Punch:      PunchCross,
			Location:   LocationHead,
			Clean:      true,
			IsCounter:  true,
		}
		out.Hits = append(out.Hits, counter)
		c.maybeKnockdown(out, target, attacker, counter)
	}
}

// maybeKnockdown asks the orchestrator to run the knockdown protocol when a
// big head shot meets a compromised chin. At most one knockdown per tick.
func (c *StandardCombat) maybeKnockdown(out *CombatOutcome, attacker, target *Fighter, hit Hit) {
	if out.Knockdown != nil || hit.Location != LocationHead || !hit.Punch.IsPowerPunch() {
		return
	}
	est := c.damage.CalculateDamage(hit, attacker, target)
	if est < 8 {
		return
	}
	chance := (est / 100.0) * (attacker.Modified(AttrKnockoutPower) / 100.0)
	chance *= target.TotalVulnerability()
	chance *= 1.0 - target.Modified(AttrChin)/160.0
	if c.rng.Float64() >= clampFloat(chance, 0, 0.5) {
		return
	}
	out.Knockdown = &KnockdownAttempt{
		FighterID:  target.ID,
		AttackerID: attacker.ID,
		Punch:      hit.Punch,
		Damage:     est,
		Flash:      est < 12,
	}
}

// StandardStamina is the stock StaminaManager.
type StandardStamina struct{}

// NewStandardStamina builds the stock stamina model.
func NewStandardStamina() *StandardStamina { return &StandardStamina{} }

func (s *StandardStamina) Update(f *Fighter, decision Decision, tickRate float64) {
	drain := 0.05 // standing around still costs something
	switch decision.Action {
	case ActionAdvance, ActionCircle:
		drain = 0.12
	case ActionRetreat:
		drain = 0.10
	case ActionClinch:
		drain = 0.08
	}
	// Good cardio stretches the tank.
	drain *= 1.3 - f.Attrs.Stamina.Cardio/250.0
	f.DrainStamina(drain * tickRate * TicksPerSecond)
}

func (s *StandardStamina) CalculateHitStaminaCost(punch PunchType) float64 {
	return punchStaminaCost[punch]
}

func (s *StandardStamina) CalculateMissStaminaCost(punch PunchType) float64 {
	return punchStaminaCost[punch] * 1.5
}

// RingTracker is the stock PositionTracker: a one-dimensional ring model
// with distance between fighters and each fighter's distance from center
// (0 = center, ringRadius = on the ropes). Corners are tracked in the order
// Update first sees them so behavior never depends on fighter ids.
type RingTracker struct {
	rng      *rand.Rand
	distance float64

	ids        [2]string
	fromCenter [2]float64
}

const ringRadius = 3.5

// NewRingTracker builds the stock position model.
func NewRingTracker(rng *rand.Rand) *RingTracker {
	return &RingTracker{rng: rng, distance: 2.0}
}

func (r *RingTracker) Update(a, b *Fighter, decisionA, decisionB Decision) {
	if r.ids[0] == "" {
		r.ids[0], r.ids[1] = a.ID, b.ID
	}
	r.updateSide(r.corner(a.ID), decisionA)
	r.updateSide(r.corner(b.ID), decisionB)

	closing := 0.0
	for _, d := range []Decision{decisionA, decisionB} {
		switch d.Action {
		case ActionAdvance, ActionPunch, ActionClinch:
			closing += 0.3
		case ActionRetreat:
			closing -= 0.4
		}
	}
	r.distance = clampFloat(r.distance-closing+0.1*(r.rng.Float64()-0.5), 0.3, 6.0)
}

func (r *RingTracker) corner(id string) int {
	if id == r.ids[1] {
		return 1
	}
	return 0
}

func (r *RingTracker) updateSide(corner int, d Decision) {
	pos := r.fromCenter[corner]
	switch d.Action {
	case ActionAdvance:
		pos -= 0.2 // pressing toward center/opponent
	case ActionRetreat:
		pos += 0.35 // giving ground toward the ropes
	case ActionCircle:
		pos += 0.05 * (r.rng.Float64() - 0.6)
	}
	r.fromCenter[corner] = clampFloat(pos, 0, ringRadius)
}

func (r *RingTracker) GetDistance() float64 { return r.distance }

func (r *RingTracker) IsOnRopes(f *Fighter) bool {
	return r.fromCenter[r.corner(f.ID)] >= ringRadius*0.85
}

func (r *RingTracker) IsInCorner(f *Fighter) bool {
	return r.fromCenter[r.corner(f.ID)] >= ringRadius*0.97
}

func (r *RingTracker) GetCenterControl() string {
	if r.ids[0] == "" {
		return ""
	}
	a, b := r.fromCenter[0], r.fromCenter[1]
	switch {
	case a < b*0.8:
		return r.ids[0]
	case b < a*0.8:
		return r.ids[1]
	default:
		return "" // contested
	}
}

func (r *RingTracker) SeparateFighters(distance float64) {
	if distance > r.distance {
		r.distance = distance
	}
}
