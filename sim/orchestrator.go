package sim

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// TickDuration is the wall-clock length of one tick in real-time mode.
const TickDuration = 500 * time.Millisecond

// introDelaySecs is the pre-fight announcement pause in real-time mode.
const introDelaySecs = 3.0

// OrchestratorConfig groups the external collaborators. Any nil field
// degrades to the documented no-op fallback; a nil Pacer runs instantly.
type OrchestratorConfig struct {
	Decisions DecisionSource
	Combat    CombatResolver
	Damage    DamageCalculator
	Stamina   StaminaManager
	Position  PositionTracker
	Pacer     Pacer
	Sinks     []EventSink
}

// countState tracks an in-progress knockdown count.
type countState struct {
	fighterID    string
	attackerID   string
	punch        PunchType
	count        int
	ticksOnFloor int
	flash        bool
	flashRiseAt  int  // count at which a flash knockdown rises
	immediateKO  bool // count runs to 10 with no recovery rolls
	willRecover  bool // recovery roll already passed; rises at the mandatory count
}

// Orchestrator sequences the tick loop. It is the sole mutator of fighter,
// round, and fight state; external consumers only observe emitted events.
type Orchestrator struct {
	fight *Fight
	rng   *PartitionedRNG
	pacer Pacer
	sinks []EventSink

	decisions DecisionSource
	combat    CombatResolver
	damage    DamageCalculator
	stamina   StaminaManager
	position  PositionTracker

	fouls   *FoulPolicy
	effects *EffectsEngine

	tick      int
	roundTick int
	restTicks int

	inClinch    bool
	clinchTicks int

	counting *countState

	paused  bool
	stopped bool
}

// NewOrchestrator wires the engine together. Missing collaborators fall
// back to no-ops so a bare orchestrator still runs a (quiet) fight.
func NewOrchestrator(fight *Fight, key SimulationKey, cfg OrchestratorConfig) *Orchestrator {
	o := &Orchestrator{
		fight:     fight,
		rng:       NewPartitionedRNG(key),
		pacer:     cfg.Pacer,
		sinks:     cfg.Sinks,
		decisions: cfg.Decisions,
		combat:    cfg.Combat,
		damage:    cfg.Damage,
		stamina:   cfg.Stamina,
		position:  cfg.Position,
		fouls:     NewFoulPolicy(fight.Params.Fouls),
		effects:   NewEffectsEngine(fight.Params.Effects),
	}
	if o.pacer == nil {
		o.pacer = InstantPacer{}
	}
	if o.decisions == nil {
		o.decisions = noopDecisionSource{}
	}
	if o.combat == nil {
		o.combat = noopCombatResolver{}
	}
	if o.damage == nil {
		o.damage = noopDamageCalculator{}
	}
	if o.stamina == nil {
		o.stamina = noopStaminaManager{}
	}
	if o.position == nil {
		o.position = noopPositionTracker{}
	}
	return o
}

// Fight exposes the aggregate for inspection after (or during) a run.
func (o *Orchestrator) Fight() *Fight { return o.fight }

// Effects exposes the timed-modifier engine.
func (o *Orchestrator) Effects() *EffectsEngine { return o.effects }

// Pause freezes tick progression without mutating state.
func (o *Orchestrator) Pause() { o.paused = true }

// Resume lifts a pause.
func (o *Orchestrator) Resume() { o.paused = false }

// Stop ends the loop at the next tick boundary. Safe to call at any time.
func (o *Orchestrator) Stop() { o.stopped = true }

func (o *Orchestrator) emit(ev Event) {
	for _, s := range o.sinks {
		s.Publish(ev)
	}
	if r := o.fight.CurrentRound(); r != nil && !r.IsComplete {
		if _, isTick := ev.(TickEvent); !isTick {
			_ = r.RecordEvent(ev)
		}
	}
}

// Run drives Step under the pacer until the fight ends or Stop is called.
// With an InstantPacer the whole bout resolves immediately; the simulated
// outcome is identical either way.
func (o *Orchestrator) Run(ctx context.Context) error {
	if o.fight.Status == StatusNotStarted {
		if err := o.pacer.Wait(ctx, time.Duration(introDelaySecs*float64(time.Second))); err != nil {
			return err
		}
	}
	for !o.fight.IsOver() && !o.stopped {
		if o.paused {
			if err := o.pacer.Wait(ctx, TickDuration); err != nil {
				return err
			}
			continue
		}
		o.Step()
		if err := o.pacer.Wait(ctx, TickDuration); err != nil {
			return err
		}
	}
	return nil
}

// Step advances the simulation by exactly one tick. Once the fight reaches
// a terminal status, further calls are no-ops.
func (o *Orchestrator) Step() {
	if o.fight.IsOver() || o.stopped {
		return
	}

	switch o.fight.Status {
	case StatusNotStarted:
		o.startFight()
		return
	case StatusBetweenRounds:
		o.stepRest()
		return
	}

	o.tick++
	o.roundTick++
	round := o.fight.CurrentRound()
	round.ElapsedTicks = o.roundTick

	// A knockdown count suspends combat until it resolves.
	if o.counting != nil {
		o.stepCount()
		return
	}

	if o.roundTick >= round.DurationTicks {
		o.endRound()
		return
	}

	a, b := o.fight.FighterA, o.fight.FighterB

	decisionA := o.decisions.Decide(a, b, o.fight)
	decisionB := o.decisions.Decide(b, a, o.fight)

	if o.evaluateFouls(a, b) || o.evaluateFouls(b, a) {
		return // disqualification ended the fight
	}

	o.applyDecision(a, decisionA)
	o.applyDecision(b, decisionB)

	o.stepClinch(a, b, decisionA, decisionB)

	outcome := o.combat.Resolve(a, b, decisionA, decisionB, o.fight)
	o.applyCombat(round, outcome)
	if o.fight.IsOver() {
		return
	}

	o.stamina.Update(a, decisionA, 1.0/TicksPerSecond)
	o.stamina.Update(b, decisionB, 1.0/TicksPerSecond)
	o.position.Update(a, b, decisionA, decisionB)
	o.recordPosition(round, 0, a, decisionA)
	o.recordPosition(round, 1, b, decisionB)

	if outcome.Knockdown != nil {
		o.beginKnockdown(*outcome.Knockdown)
		if o.fight.IsOver() {
			return
		}
	}

	if o.counting == nil {
		if o.evaluateStoppage(a, b) || o.evaluateStoppage(b, a) {
			return
		}
	}

	o.decayTimers()
	o.emitTick(round)
}

func (o *Orchestrator) startFight() {
	a, b := o.fight.FighterA, o.fight.FighterB
	_ = o.fight.SetStatus(StatusInProgress)

	effRNG := o.rng.ForSubsystem(SubsystemEffects)
	o.effects.CheckIntimidation(a, b, effRNG)
	o.effects.CheckIntimidation(b, a, effRNG)
	o.effects.CheckBigFightFocus(a, b.Attrs.OverallRating(), effRNG)
	o.effects.CheckBigFightFocus(b, a.Attrs.OverallRating(), effRNG)

	o.emit(FightStartEvent{
		baseEvent: baseEvent{AtTick: o.tick},
		FightID:   o.fight.ID,
		FighterA:  a.ID,
		FighterB:  b.ID,
		Rounds:    o.fight.Config.Rounds,
	})
	logrus.Infof("[tick %05d] fight started: %s vs %s over %d rounds",
		o.tick, a.Name, b.Name, o.fight.Config.Rounds)

	o.beginRound()
}

func (o *Orchestrator) beginRound() {
	r := o.fight.BeginRound()
	o.roundTick = 0
	o.inClinch = false
	o.clinchTicks = 0
	o.fight.FighterA.ResetForRound()
	o.fight.FighterB.ResetForRound()
	o.effects.RoundReset(r.Number, []*Fighter{o.fight.FighterA, o.fight.FighterB}, o.rng.ForSubsystem(SubsystemEffects))
	o.refreshAttributes()
	o.emit(RoundStartEvent{baseEvent: baseEvent{AtTick: o.tick}, Round: r.Number})
	logrus.Debugf("[tick %05d] round %d begins", o.tick, r.Number)
}

func (o *Orchestrator) endRound() {
	r := o.fight.CurrentRound()
	scores, err := o.fight.ScoreRound(o.rng.ForSubsystem(SubsystemJudges))
	if err != nil {
		logrus.Warnf("round %d scoring: %v", r.Number, err)
	}
	o.emit(RoundEndEvent{
		baseEvent: baseEvent{AtTick: o.tick},
		Round:     r.Number,
		StatsA:    *r.StatsA,
		StatsB:    *r.StatsB,
		Scores:    scores,
	})
	logrus.Debugf("[tick %05d] round %d ends", o.tick, r.Number)

	// Inter-round stamina recovery, scaled by the recovery attribute.
	for _, f := range []*Fighter{o.fight.FighterA, o.fight.FighterB} {
		f.RecoverStamina(10 + f.Attrs.Stamina.Recovery*0.15)
	}

	if r.Number >= o.fight.Config.Rounds {
		o.decideOnCards()
		return
	}
	_ = o.fight.SetStatus(StatusBetweenRounds)
	o.restTicks = 0
}

func (o *Orchestrator) stepRest() {
	o.tick++
	o.restTicks++
	if float64(o.restTicks) >= o.fight.Config.RestSecs*TicksPerSecond {
		_ = o.fight.SetStatus(StatusInProgress)
		o.beginRound()
	}
}

func (o *Orchestrator) decideOnCards() {
	result := o.fight.Decide()
	result.Round = len(o.fight.Rounds)
	result.RoundTick = o.roundTick
	o.fight.Result = &result
	_ = o.fight.SetStatus(StatusCompleted)

	o.emit(FightEndingEvent{
		baseEvent: baseEvent{AtTick: o.tick},
		WinnerID:  result.WinnerID,
		Method:    result.Method,
		IsKO:      false,
	})
	o.emitFightEnd(result)
	logrus.Infof("[tick %05d] fight goes to the cards: %s", o.tick, result.Method)
}

// endFight closes the bout with a stoppage-family result.
func (o *Orchestrator) endFight(winnerID string, method VictoryMethod) {
	result := FightResult{
		WinnerID:  winnerID,
		Method:    method,
		Round:     len(o.fight.Rounds),
		RoundTick: o.roundTick,
	}
	o.fight.Result = &result
	if r := o.fight.CurrentRound(); r != nil {
		r.Complete()
	}
	_ = o.fight.SetStatus(StatusStopped)

	o.emit(FightEndingEvent{
		baseEvent: baseEvent{AtTick: o.tick},
		WinnerID:  winnerID,
		Method:    method,
		IsKO:      method.IsKO(),
	})
	o.emitFightEnd(result)
	logrus.Infof("[tick %05d] fight over: %s in round %d", o.tick, method, result.Round)
}

func (o *Orchestrator) emitFightEnd(result FightResult) {
	cards := make([]Scorecard, len(o.fight.Scorecards))
	copy(cards, o.fight.Scorecards)
	o.emit(FightEndEvent{
		baseEvent:  baseEvent{AtTick: o.tick},
		WinnerID:   result.WinnerID,
		Method:     result.Method,
		Round:      result.Round,
		RoundTick:  result.RoundTick,
		Scorecards: cards,
	})
}

// applyDecision folds the tactical decision into the fighter state. Buzzed
// and hurt fighters are forced defensive; condition states are never
// overwritten by tactics.
func (o *Orchestrator) applyDecision(f *Fighter, d Decision) {
	if f.IsDown() {
		return
	}
	if f.IsHurt() || f.IsBuzzed() {
		f.SubState = SubShell
		return
	}
	if d.State == "" {
		return
	}
	if CanTransition(f.State, d.State) {
		f.State = d.State
		f.SubState = d.SubState
	}
}

func (o *Orchestrator) evaluateFouls(f, opp *Fighter) bool {
	situation := FoulSituation{
		Round:           len(o.fight.Rounds),
		StaminaFraction: f.StaminaFraction(),
		Distance:        o.position.GetDistance(),
		ScoreMargin:     o.fight.ScoreMargin(f.ID),
	}
	res := o.fouls.Evaluate(f, opp, situation, o.fight.Referee, o.rng.ForSubsystem(SubsystemFouls))
	if res == nil {
		return false
	}

	if res.BonusDamage > 0 {
		opp.TakeDamage(res.BonusDamage, res.DamageLocation)
	}
	if res.CutLocation != "" {
		severity := 1 + o.rng.ForSubsystem(SubsystemFouls).Intn(3)
		opp.AddCut(res.CutLocation, severity)
		o.emit(CutEvent{
			baseEvent: baseEvent{AtTick: o.tick},
			FighterID: opp.ID,
			Location:  res.CutLocation,
			Severity:  severity,
		})
	}

	o.emit(FoulEvent{
		baseEvent:   baseEvent{AtTick: o.tick},
		AttackerID:  f.ID,
		TargetID:    opp.ID,
		Foul:        res.Foul,
		Detected:    res.Detected,
		Intentional: res.Intentional,
		Consequence: res.Consequence,
	})

	switch res.Consequence {
	case ConsequenceWarning:
		o.emit(RefereeCommandEvent{
			baseEvent: baseEvent{AtTick: o.tick},
			Command:   "warning",
			Text:      string(res.Foul),
		})
	case ConsequenceDeduction:
		total := o.fight.ApplyDeduction(f.ID)
		o.emit(PointDeductionEvent{
			baseEvent: baseEvent{AtTick: o.tick},
			FighterID: f.ID,
			Reason:    string(res.Foul),
			Total:     total,
		})
	case ConsequenceDisqualified:
		o.endFight(opp.ID, MethodDisqualification)
		return true
	}
	return false
}

func (o *Orchestrator) stepClinch(a, b *Fighter, da, db Decision) {
	round := o.fight.CurrentRound()
	wantsClinch := da.Action == ActionClinch || db.Action == ActionClinch
	if !o.inClinch && wantsClinch && o.position.GetDistance() < 1.0 {
		o.inClinch = true
		o.clinchTicks = 0
		for _, f := range []*Fighter{a, b} {
			if CanTransition(f.State, StateClinch) {
				f.State = StateClinch
				f.SubState = SubNone
			}
		}
	}
	if !o.inClinch {
		return
	}

	o.clinchTicks++
	round.StatsA.TicksInClinch++
	round.StatsB.TicksInClinch++

	switch o.fight.Referee.CheckClinchBreak(o.clinchTicks, a, b, o.rng.ForSubsystem(SubsystemReferee)) {
	case ClinchWarn:
		o.emit(RefereeCommandEvent{
			baseEvent: baseEvent{AtTick: o.tick},
			Command:   "clinch_warning",
			Text:      "work out of it",
		})
	case ClinchBreak:
		o.emit(RefereeCommandEvent{
			baseEvent: baseEvent{AtTick: o.tick},
			Command:   "break",
			Text:      "break",
		})
		o.position.SeparateFighters(1.5)
		o.inClinch = false
		o.clinchTicks = 0
		o.fight.Referee.ClinchEnded()
		for _, f := range []*Fighter{a, b} {
			if f.State == StateClinch {
				f.State = StateNeutral
			}
		}
	}
}

// applyCombat folds a combat outcome into damage, conditions, and ledgers.
func (o *Orchestrator) applyCombat(round *Round, outcome CombatOutcome) {
	for _, hit := range outcome.Hits {
		o.applyHit(round, hit)
		if o.fight.IsOver() {
			return
		}
	}
	for _, miss := range outcome.Misses {
		attacker, err := o.fight.FighterByID(miss.AttackerID)
		if err != nil {
			logrus.Warnf("combat outcome: %v", err)
			continue
		}
		corner, _ := o.fight.CornerOf(attacker.ID)
		stats := round.Stats(corner)
		stats.Misses++
		if miss.Punch.IsPowerPunch() {
			stats.PowerThrown++
		} else {
			stats.JabsThrown++
		}
		attacker.DrainStamina(o.stamina.CalculateMissStaminaCost(miss.Punch))
		attacker.Totals.PunchesThrown++
	}
	for _, block := range outcome.Blocks {
		o.creditDefense(round, block.DefenderID, block.AttackerID, block.Punch, true)
	}
	for _, evade := range outcome.Evades {
		o.creditDefense(round, evade.DefenderID, evade.AttackerID, evade.Punch, false)
	}
}

func (o *Orchestrator) creditDefense(round *Round, defenderID, attackerID string, punch PunchType, blocked bool) {
	defender, err := o.fight.FighterByID(defenderID)
	if err != nil {
		logrus.Warnf("combat outcome: %v", err)
		return
	}
	dCorner, _ := o.fight.CornerOf(defender.ID)
	dStats := round.Stats(dCorner)
	if blocked {
		dStats.Blocks++
	} else {
		dStats.Evades++
	}
	if attacker, err := o.fight.FighterByID(attackerID); err == nil {
		aCorner, _ := o.fight.CornerOf(attacker.ID)
		aStats := round.Stats(aCorner)
		if punch.IsPowerPunch() {
			aStats.PowerThrown++
		} else {
			aStats.JabsThrown++
		}
		attacker.Totals.PunchesThrown++
		attacker.DrainStamina(o.stamina.CalculateMissStaminaCost(punch))
	}
}

func (o *Orchestrator) applyHit(round *Round, hit Hit) {
	attacker, err := o.fight.FighterByID(hit.AttackerID)
	if err != nil {
		logrus.Warnf("combat outcome: %v", err)
		return
	}
	target, err := o.fight.FighterByID(hit.TargetID)
	if err != nil {
		logrus.Warnf("combat outcome: %v", err)
		return
	}

	dmg := o.damage.CalculateDamage(hit, attacker, target)
	target.TakeDamage(dmg, hit.Location)
	attacker.DrainStamina(o.stamina.CalculateHitStaminaCost(hit.Punch))

	aCorner, _ := o.fight.CornerOf(attacker.ID)
	tCorner, _ := o.fight.CornerOf(target.ID)
	aStats := round.Stats(aCorner)
	tStats := round.Stats(tCorner)

	if hit.Punch.IsPowerPunch() {
		aStats.PowerThrown++
		aStats.PowerLanded++
	} else {
		aStats.JabsThrown++
		aStats.JabsLanded++
	}
	if hit.Location == LocationHead {
		aStats.HeadLanded++
	} else {
		aStats.BodyLanded++
	}
	if hit.Clean {
		aStats.CleanLanded++
	} else {
		aStats.PartialLanded++
	}
	if dmg >= o.fight.Params.Scoring.SignificantDamage {
		aStats.SignificantLanded++
	}
	aStats.DamageDealt += dmg
	tStats.DamageReceived += dmg

	attacker.Totals.PunchesThrown++
	attacker.Totals.PunchesLanded++
	attacker.Totals.DamageDealt += dmg
	if hit.Clean {
		attacker.Totals.CleanPunches++
	}
	if hit.Punch.IsPowerPunch() {
		attacker.Totals.PowerPunchesLanded++
	} else {
		attacker.Totals.JabsLanded++
	}

	o.emit(PunchLandedEvent{
		baseEvent:  baseEvent{AtTick: o.tick},
		AttackerID: attacker.ID,
		TargetID:   target.ID,
		Punch:      hit.Punch,
		Location:   hit.Location,
		Damage:     dmg,
		Clean:      hit.Clean,
		IsCounter:  hit.IsCounter,
	})

	// Condition transitions from the hit: hurt supersedes buzzed; any hit
	// above the stun threshold also stings.
	if o.damage.CheckHurt(target, dmg) {
		durTicks := int(clampFloat(4+dmg*0.3, 4, 20) * TicksPerSecond)
		target.SetHurt(durTicks)
		o.emit(HurtEvent{
			baseEvent:     baseEvent{AtTick: o.tick},
			FighterID:     target.ID,
			DurationTicks: durTicks,
		})
	} else if hit.Location == LocationHead && dmg >= o.fight.Params.Buzzed.BuzzDamageThreshold {
		target.SetBuzzed(dmg, hit.Punch)
		o.emit(BuzzedEvent{
			baseEvent:     baseEvent{AtTick: o.tick},
			FighterID:     target.ID,
			Severity:      target.BuzzedSeverity,
			DurationTicks: int(target.BuzzedRemaining),
		})
	}
	target.ApplyStun(dmg)

	// Heavy clean head shots can open cuts.
	if hit.Location == LocationHead && hit.Clean && dmg >= 10 {
		cutRNG := o.rng.ForSubsystem(SubsystemRecovery)
		if cutRNG.Float64() < 0.08 {
			loc := []string{"left eyebrow", "right eyebrow", "bridge of nose", "left cheek"}[cutRNG.Intn(4)]
			severity := 1 + cutRNG.Intn(3)
			target.AddCut(loc, severity)
			o.emit(CutEvent{
				baseEvent: baseEvent{AtTick: o.tick},
				FighterID: target.ID,
				Location:  loc,
				Severity:  severity,
			})
		}
	}
}

func (o *Orchestrator) recordPosition(round *Round, corner int, f *Fighter, d Decision) {
	stats := round.Stats(corner)
	if o.position.GetCenterControl() == f.ID {
		stats.TicksAtCenter++
	}
	if o.position.IsOnRopes(f) {
		stats.TicksOnRopes++
	}
	if o.position.IsInCorner(f) {
		stats.TicksInCorner++
	}
	switch d.Action {
	case ActionAdvance:
		stats.TicksForward++
	case ActionRetreat:
		stats.TicksBackward++
	}
}

// decayTimers runs the per-tick decay phase: stun, buzzed, hurt, effects,
// and the modified-attribute refresh.
func (o *Orchestrator) decayTimers() {
	for _, f := range []*Fighter{o.fight.FighterA, o.fight.FighterB} {
		f.UpdateStun()
		f.UpdateBuzzed()
		f.UpdateHurt()
		o.effects.UpdateLowStamina(f)
	}
	o.effects.Tick()
	o.refreshAttributes()
}

func (o *Orchestrator) refreshAttributes() {
	for _, f := range []*Fighter{o.fight.FighterA, o.fight.FighterB} {
		f.UpdateModifiedAttributes(o.effects.Active(f.ID))
	}
}

func (o *Orchestrator) snapshotOf(f *Fighter) FighterSnapshot {
	return FighterSnapshot{
		FighterID:  f.ID,
		State:      f.State,
		SubState:   f.SubState,
		Stamina:    f.Stamina,
		HeadDamage: f.HeadDamage,
		BodyDamage: f.BodyDamage,
		Buzzed:     f.IsBuzzed(),
		Hurt:       f.IsHurt(),
	}
}

func (o *Orchestrator) emitTick(round *Round) {
	o.emit(TickEvent{
		baseEvent: baseEvent{AtTick: o.tick},
		Round:     round.Number,
		RoundTick: o.roundTick,
		FighterA:  o.snapshotOf(o.fight.FighterA),
		FighterB:  o.snapshotOf(o.fight.FighterB),
		Distance:  o.position.GetDistance(),
	})
}
