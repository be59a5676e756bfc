package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoveryChance_HeartDominates(t *testing.T) {
	kp := DefaultParams().Knockdown

	braveAttrs := evenAttributes(70)
	braveAttrs.Mental.Heart = 98
	timidAttrs := evenAttributes(70)
	timidAttrs.Mental.Heart = 60

	brave := newTestFighter(t, "Brave", braveAttrs)
	timid := newTestFighter(t, "Timid", timidAttrs)

	// Same count, same damage: the big heart beats the count far more often.
	for _, count := range []int{4, 6, 8} {
		assert.Greater(t, recoveryChance(brave, count, kp), recoveryChance(timid, count, kp),
			"at count %d", count)
	}
}

func TestRecoveryChance_EarlyCountsFavorable(t *testing.T) {
	kp := DefaultParams().Knockdown
	f := newTestFighter(t, "Alpha", evenAttributes(70))

	early := recoveryChance(f, 4, kp)
	mandatory := recoveryChance(f, kp.MandatoryCount, kp)
	late := recoveryChance(f, 9, kp)
	assert.Greater(t, early, mandatory)
	assert.Greater(t, mandatory, late, "nine is nearly out")
}

func TestRecoveryChance_PenaltiesStack(t *testing.T) {
	kp := DefaultParams().Knockdown
	fresh := newTestFighter(t, "Fresh", evenAttributes(70))
	worn := newTestFighter(t, "Worn", evenAttributes(70))
	worn.TakeDamage(worn.MaxDamage*0.8, LocationHead)
	worn.Stamina = worn.MaxStamina * 0.10
	worn.RecordKnockdown()
	worn.RecordKnockdown()

	assert.Greater(t, recoveryChance(fresh, 5, kp), recoveryChance(worn, 5, kp))
}

func TestRecoveryChance_Clamped(t *testing.T) {
	kp := DefaultParams().Knockdown
	wreck := newTestFighter(t, "Wreck", evenAttributes(1))
	wreck.TakeDamage(wreck.MaxDamage, LocationHead)
	wreck.Stamina = 0
	for i := 0; i < 10; i++ {
		wreck.RecordKnockdown()
	}
	p := recoveryChance(wreck, 9, kp)
	assert.GreaterOrEqual(t, p, 0.02, "even a wreck has a puncher's chance of rising")
	assert.LessOrEqual(t, p, 0.95)
}

func TestImmediateKOChance_StaminaAndDamageRaiseIt(t *testing.T) {
	kp := DefaultParams().Knockdown
	attacker := newTestFighter(t, "Attacker", evenAttributes(80))

	fresh := newTestFighter(t, "Fresh", evenAttributes(70))
	spent := newTestFighter(t, "Spent", evenAttributes(70))
	spent.Stamina = 0
	spent.TakeDamage(spent.MaxDamage*0.7, LocationHead)

	assert.Greater(t,
		immediateKOChance(attacker, spent, 15, kp),
		immediateKOChance(attacker, fresh, 15, kp),
		"an exhausted, damaged fighter is far easier to take out")
}

func TestImmediateKOChance_ChinResists(t *testing.T) {
	kp := DefaultParams().Knockdown
	attacker := newTestFighter(t, "Attacker", evenAttributes(80))

	granite := evenAttributes(70)
	granite.Mental.Chin = 95
	glass := evenAttributes(70)
	glass.Mental.Chin = 30

	assert.Less(t,
		immediateKOChance(attacker, newTestFighter(t, "Granite", granite), 15, kp),
		immediateKOChance(attacker, newTestFighter(t, "Glass", glass), 15, kp))
}

func TestImmediateKOChance_Clamped(t *testing.T) {
	kp := DefaultParams().Knockdown
	monster := newTestFighter(t, "Monster", evenAttributes(100))
	victim := newTestFighter(t, "Victim", evenAttributes(1))
	victim.Stamina = 0
	victim.TakeDamage(victim.MaxDamage, LocationHead)
	victim.SetHurt(20)

	p := immediateKOChance(monster, victim, 60, kp)
	assert.LessOrEqual(t, p, 0.90, "immediate KO is never a certainty")
	assert.GreaterOrEqual(t, p, 0.0)
}

func TestFlashRecoveryScore_HeartDriven(t *testing.T) {
	kp := DefaultParams().Knockdown

	braveAttrs := evenAttributes(70)
	braveAttrs.Mental.Heart = 95
	brave := newTestFighter(t, "Brave", braveAttrs)
	assert.GreaterOrEqual(t, flashRecoveryScore(brave, kp), kp.FlashRecoveryThreshold,
		"a healthy big-heart fighter qualifies for the flash label")

	// Prior knockdowns and accumulated damage disqualify the label.
	worn := newTestFighter(t, "Worn", braveAttrs)
	worn.RecordKnockdown()
	worn.RecordKnockdown()
	worn.RecordKnockdown()
	worn.TakeDamage(worn.MaxDamage*0.9, LocationHead)
	assert.Less(t, flashRecoveryScore(worn, kp), kp.FlashRecoveryThreshold)
}
