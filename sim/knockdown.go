package sim

import (
	"github.com/sirupsen/logrus"
)

// ticksPerCount paces the referee's count at one number per second.
const ticksPerCount = TicksPerSecond

// flashRecoveryScore pre-resolves whether a flash knockdown actually ends in
// a fast recovery. Heart dominates; prior knockdowns and accumulated damage
// drag the score down.
func flashRecoveryScore(f *Fighter, kp KnockdownParams) float64 {
	score := 0.8 * (f.Attrs.Mental.Heart / 100.0)
	score += 0.1 * (f.Attrs.Mental.Composure / 100.0)
	score -= float64(f.KnockdownsTotal) * 0.08
	score -= f.AccumulatedDamageRatio() * 0.30
	return score
}

// immediateKOChance is the probability the fighter is out before any count:
// attacker's knockout power and the landed punch against the defender's
// chin, heart, accumulated damage, and remaining stamina.
func immediateKOChance(attacker, target *Fighter, punchDamage float64, kp KnockdownParams) float64 {
	p := kp.ImmediateKOBase
	p += attacker.Modified(AttrKnockoutPower) * kp.ImmediateKOPowerScale
	p += punchDamage * kp.ImmediateKODamageScale
	p += target.AccumulatedDamageRatio() * kp.ImmediateKOAccumScale
	p += (1.0 - target.StaminaFraction()) * kp.ImmediateKOStaminaScale
	p -= target.Attrs.Mental.Chin * kp.ImmediateKOChinScale
	p -= target.Attrs.Mental.Heart * kp.ImmediateKOHeartScale
	p *= target.TotalVulnerability()
	return clampFloat(p, 0, 0.90)
}

// recoveryChance evaluates one count tick of the recovery roll. Heart
// dominates, chin/experience/composure contribute, accumulated damage and
// low stamina penalize, low counts are favorable, and 9+ is steeply not.
func recoveryChance(f *Fighter, count int, kp KnockdownParams) float64 {
	p := kp.RecoveryHeartWeight * (f.Attrs.Mental.Heart / 100.0)
	p += kp.RecoveryChinWeight * (f.Attrs.Mental.Chin / 100.0)
	p += kp.RecoveryExperienceWeight * (f.Attrs.Mental.Experience / 100.0)
	p += kp.RecoveryComposureWeight * (f.Attrs.Mental.Composure / 100.0)
	p -= kp.RecoveryDamagePenalty * f.AccumulatedDamageRatio()
	if f.StaminaFraction() < 0.25 {
		p -= kp.RecoveryStaminaPenalty
	}
	if prior := f.KnockdownsTotal - 1; prior > 0 {
		p -= kp.RecoveryPriorKnockdownPenalty * float64(prior)
	}
	if count < kp.MandatoryCount {
		p += kp.RecoveryEarlyCountBonus * float64(kp.MandatoryCount-count) / float64(kp.MandatoryCount)
	}
	if count >= 9 {
		p -= kp.RecoveryLateCountPenalty
	}
	return clampFloat(p, 0.02, 0.95)
}

// beginKnockdown runs the front half of the knockdown protocol: flash
// pre-resolution, the immediate-KO check, the three-knockdown rule, and
// the transition onto the canvas. The count itself proceeds over the
// following ticks in stepCount.
func (o *Orchestrator) beginKnockdown(attempt KnockdownAttempt) {
	target, err := o.fight.FighterByID(attempt.FighterID)
	if err != nil {
		logrus.Warnf("knockdown: %v", err)
		return
	}
	attacker, err := o.fight.FighterByID(attempt.AttackerID)
	if err != nil {
		logrus.Warnf("knockdown: %v", err)
		return
	}

	kp := o.fight.Params.Knockdown
	rng := o.rng.ForSubsystem(SubsystemRecovery)

	// Pre-resolve the flash label: it is only valid for a sequence that
	// actually ends in a fast recovery. A failed flash is reported as a
	// regular knockdown before anything is emitted.
	flash := attempt.Flash && flashRecoveryScore(target, kp) >= kp.FlashRecoveryThreshold

	state := countState{
		fighterID:  target.ID,
		attackerID: attacker.ID,
		punch:      attempt.Punch,
		flash:      flash,
	}
	if flash {
		state.flashRiseAt = kp.FlashMinCount + rng.Intn(kp.FlashMaxCount-kp.FlashMinCount+1)
	} else {
		state.immediateKO = rng.Float64() < immediateKOChance(attacker, target, attempt.Damage, kp)
	}

	// Going down clears the standing dazed conditions and costs stamina.
	target.BuzzedRemaining = 0
	target.BuzzedSeverity = 0
	target.HurtRemaining = 0
	target.HurtDuration = 0
	target.DrainStamina(kp.StaminaCost)
	target.RecordKnockdown()
	attacker.Totals.KnockdownsScored++

	// A knockdown ends any clinch in progress.
	if o.inClinch {
		o.inClinch = false
		o.clinchTicks = 0
		o.fight.Referee.ClinchEnded()
		if attacker.State == StateClinch {
			attacker.State = StateNeutral
			attacker.SubState = SubNone
		}
	}

	downState := StateKnockedDown
	if flash {
		downState = StateFlashDown
	}
	if err := target.TransitionTo(downState); err != nil {
		logrus.Warnf("knockdown: %v", err)
	}

	if flash {
		o.emit(FlashKnockdownEvent{
			baseEvent:  baseEvent{AtTick: o.tick},
			FighterID:  target.ID,
			AttackerID: attacker.ID,
			Punch:      attempt.Punch,
		})
	} else {
		o.emit(KnockdownEvent{
			baseEvent:  baseEvent{AtTick: o.tick},
			FighterID:  target.ID,
			AttackerID: attacker.ID,
			Punch:      attempt.Punch,
		})
	}
	logrus.Infof("[tick %05d] %s is down (flash=%v)", o.tick, target.Name, flash)

	// Three knockdowns in one round stops the fight unconditionally when
	// the rule is on — no count.
	if o.fight.Config.ThreeKnockdownRule && target.KnockdownsThisRound >= 3 {
		if r := o.fight.CurrentRound(); r != nil {
			_ = r.RecordKnockdown(KnockdownRecord{
				FighterID:  target.ID,
				AttackerID: attacker.ID,
				Tick:       o.tick,
				Count:      0,
			})
		}
		o.endFight(attacker.ID, MethodTKOThreeKnockdowns)
		return
	}

	o.counting = &state
}

// stepCount advances an in-progress count by one tick. The count rises one
// number per simulated second; recovery rolls start at four; flash
// knockdowns rise at their pre-resolved early count; immediate KOs count
// all the way through.
func (o *Orchestrator) stepCount() {
	cs := o.counting
	cs.ticksOnFloor++
	if cs.ticksOnFloor%ticksPerCount != 0 {
		return
	}
	cs.count++

	kp := o.fight.Params.Knockdown
	target, err := o.fight.FighterByID(cs.fighterID)
	if err != nil {
		logrus.Warnf("count: %v", err)
		o.counting = nil
		return
	}

	fatal := cs.count >= 10 && !cs.flash && !cs.willRecover
	o.emit(CountEvent{
		baseEvent: baseEvent{AtTick: o.tick},
		FighterID: target.ID,
		Count:     cs.count,
		IsKO:      fatal,
	})

	if cs.flash {
		if cs.count >= cs.flashRiseAt {
			o.finishCount(target, cs)
		}
		return
	}

	if cs.immediateKO {
		if cs.count >= 10 {
			o.countOut(target, cs)
		}
		return
	}

	if cs.count >= 10 {
		o.countOut(target, cs)
		return
	}

	if cs.count >= 4 && !cs.willRecover {
		rng := o.rng.ForSubsystem(SubsystemRecovery)
		if rng.Float64() < recoveryChance(target, cs.count, kp) {
			cs.willRecover = true
		}
	}
	if cs.willRecover && cs.count >= kp.MandatoryCount {
		o.finishCount(target, cs)
	}
}

// finishCount resolves a beaten count: the knockdown is recorded against
// the round, the fighter transitions to RECOVERED with a temporary debuff
// (lighter for flash), and a flash recovery additionally forces buzzed.
func (o *Orchestrator) finishCount(target *Fighter, cs *countState) {
	if r := o.fight.CurrentRound(); r != nil {
		_ = r.RecordKnockdown(KnockdownRecord{
			FighterID:  target.ID,
			AttackerID: cs.attackerID,
			Tick:       o.tick,
			Count:      cs.count,
			Flash:      cs.flash,
		})
	}
	if err := target.TransitionTo(StateRecovered); err != nil {
		logrus.Warnf("recovery: %v", err)
	}
	o.effects.ApplyPostKnockdown(target, cs.flash, o.fight.Params.Knockdown)
	if cs.flash {
		target.SetBuzzed(o.fight.Params.Buzzed.SeverityDamage2, cs.punch)
		target.State = StateRecovered // buzzed condition without leaving recovered
	}
	o.refreshAttributes()

	o.emit(RecoveryEvent{
		baseEvent: baseEvent{AtTick: o.tick},
		FighterID: target.ID,
		Count:     cs.count,
	})
	logrus.Infof("[tick %05d] %s beats the count at %d", o.tick, target.Name, cs.count)
	o.counting = nil
}

// countOut resolves a failed count: knockout.
func (o *Orchestrator) countOut(target *Fighter, cs *countState) {
	if r := o.fight.CurrentRound(); r != nil {
		_ = r.RecordKnockdown(KnockdownRecord{
			FighterID:  target.ID,
			AttackerID: cs.attackerID,
			Tick:       o.tick,
			Count:      10,
			KO:         true,
		})
	}
	o.counting = nil
	o.endFight(cs.attackerID, MethodKO)
}

// evaluateStoppage runs the per-tick TKO evaluation for one fighter. The
// accumulated probability feeds a stochastic gate, so stoppages stay rare
// events rather than deterministic outcomes; the referee's hard threshold
// check backs it up for fighters taking sustained punishment.
func (o *Orchestrator) evaluateStoppage(f, opp *Fighter) bool {
	if f.IsDown() {
		return false
	}
	sp := o.fight.Params.Stoppage

	margin := o.fight.ScoreMargin(f.ID)
	if margin > sp.PointsAheadMargin {
		return false
	}

	p := 0.0
	if frac := f.StaminaFraction(); frac < 0.12 {
		p += sp.ExhaustionWeight * (1.0 - frac/0.12)
	}
	if ratio := f.AccumulatedDamageRatio(); ratio > 0.6 {
		p += sp.DamageRatioWeight * (ratio - 0.6) / 0.4
	}
	if f.IsHurt() && f.RecentDamage > 5 {
		p += sp.HurtDurationWeight * float64(f.HurtDuration) / TicksPerSecond
	}
	p += float64(f.KnockdownsThisRound) * sp.RoundKnockdownWeight
	p += float64(f.KnockdownsTotal) * sp.TotalKnockdownWeight

	round := o.fight.CurrentRound()
	corner, _ := o.fight.CornerOf(f.ID)
	own := round.Stats(corner)
	other := round.Stats(1 - corner)
	if disparity := other.Landed() - own.Landed(); disparity > 15 {
		p += float64(disparity-15) * sp.VolumeDisparityWeight
	}
	if cuts := f.CutSeverityTotal(); cuts > 4 {
		p += float64(cuts-4) * sp.CutSeverityWeight
	}

	// The opponent's finisher rating matters when the fighter is in
	// trouble: a closer smells blood.
	if f.IsHurt() || o.effects.Has(f.ID, EffectPostKnockdown) {
		fr := opp.Attrs.FinisherRating()
		p += fr * sp.FinisherWeight
		if fr > sp.FinisherEliteThreshold {
			p += sp.FinisherEliteBonus * (fr - sp.FinisherEliteThreshold) / 15.0
		}
	}

	p *= 0.7 + 0.6*o.fight.Referee.Protectiveness
	gate := clampFloat(p, 0, 1) * sp.StochasticGateScale

	rng := o.rng.ForSubsystem(SubsystemReferee)
	stopped := rng.Float64() < gate
	if !stopped {
		situation := StoppageSituation{
			PointsMargin:    margin,
			VolumeDisparity: other.Landed() - own.Landed(),
		}
		stopped = o.fight.Referee.CheckStoppage(f, opp, situation)
	}
	if !stopped {
		return false
	}

	o.emit(RefereeCommandEvent{
		baseEvent: baseEvent{AtTick: o.tick},
		Command:   "stoppage",
		Text:      "that's it, it's over",
	})
	o.endFight(opp.ID, MethodTKO)
	return true
}
