package sim

// ActionKind is the tactical action a fighter attempts in a tick.
type ActionKind string

const (
	ActionNone    ActionKind = "none"
	ActionPunch   ActionKind = "punch"
	ActionAdvance ActionKind = "advance"
	ActionRetreat ActionKind = "retreat"
	ActionCircle  ActionKind = "circle"
	ActionClinch  ActionKind = "clinch"
	ActionGuard   ActionKind = "guard"
)

// Decision is the per-tick tactical choice for one fighter.
type Decision struct {
	State    FighterState
	SubState SubState
	Action   ActionKind
	Punch    PunchType
	Target   PunchLocation
}

// DecisionSource supplies tactical decisions. The embedding application
// provides the real AI; when absent the engine uses inert no-op decisions.
type DecisionSource interface {
	Decide(f, opp *Fighter, fight *Fight) Decision
}

// Hit is one landed punch from the combat resolver. Damage is filled in by
// the DamageCalculator, not the resolver.
type Hit struct {
	AttackerID string
	TargetID   string
	Punch      PunchType
	Location   PunchLocation
	Clean      bool
	IsCounter  bool
}

// Miss is a thrown punch that found nothing.
type Miss struct {
	AttackerID string
	Punch      PunchType
}

// Block is a punch absorbed on the guard.
type Block struct {
	DefenderID string
	AttackerID string
	Punch      PunchType
}

// Evade is a punch slipped or ducked.
type Evade struct {
	DefenderID string
	AttackerID string
	Punch      PunchType
}

// KnockdownAttempt asks the orchestrator to run the knockdown protocol.
// Flash requests a flash variant; the orchestrator pre-resolves whether the
// label holds.
type KnockdownAttempt struct {
	FighterID  string
	AttackerID string
	Punch      PunchType
	Damage     float64
	Flash      bool
}

// CombatOutcome is everything a tick of combat produced.
type CombatOutcome struct {
	Hits      []Hit
	Misses    []Miss
	Blocks    []Block
	Evades    []Evade
	Knockdown *KnockdownAttempt
}

// CombatResolver turns two decisions into a combat outcome.
type CombatResolver interface {
	Resolve(a, b *Fighter, decisionA, decisionB Decision, fight *Fight) CombatOutcome
}

// DamageCalculator scores a hit and decides whether it hurt the target.
type DamageCalculator interface {
	CalculateDamage(hit Hit, attacker, target *Fighter) float64
	CheckHurt(target *Fighter, damage float64) bool
}

// StaminaManager owns per-tick stamina drain and punch energy costs.
type StaminaManager interface {
	Update(f *Fighter, decision Decision, tickRate float64)
	CalculateHitStaminaCost(punch PunchType) float64
	CalculateMissStaminaCost(punch PunchType) float64
}

// PositionTracker owns ring geometry. The orchestrator reads it to fill the
// positional time buckets and to separate fighters after a clinch break.
type PositionTracker interface {
	Update(a, b *Fighter, decisionA, decisionB Decision)
	GetDistance() float64
	IsOnRopes(f *Fighter) bool
	IsInCorner(f *Fighter) bool
	// GetCenterControl returns the fighter id holding ring center, or ""
	// when contested.
	GetCenterControl() string
	SeparateFighters(distance float64)
}

// === No-op fallbacks ===
//
// Missing collaborators degrade to these instead of blocking or failing:
// no decisions, no combat, no damage, no stamina drain, a static ring.

type noopDecisionSource struct{}

func (noopDecisionSource) Decide(f, opp *Fighter, fight *Fight) Decision {
	return Decision{State: StateNeutral, Action: ActionNone}
}

type noopCombatResolver struct{}

func (noopCombatResolver) Resolve(a, b *Fighter, decisionA, decisionB Decision, fight *Fight) CombatOutcome {
	return CombatOutcome{}
}

type noopDamageCalculator struct{}

func (noopDamageCalculator) CalculateDamage(hit Hit, attacker, target *Fighter) float64 {
	return 0
}

func (noopDamageCalculator) CheckHurt(target *Fighter, damage float64) bool { return false }

type noopStaminaManager struct{}

func (noopStaminaManager) Update(f *Fighter, decision Decision, tickRate float64) {}
func (noopStaminaManager) CalculateHitStaminaCost(punch PunchType) float64        { return 0 }
func (noopStaminaManager) CalculateMissStaminaCost(punch PunchType) float64       { return 0 }

type noopPositionTracker struct{}

func (noopPositionTracker) Update(a, b *Fighter, decisionA, decisionB Decision) {}
func (noopPositionTracker) GetDistance() float64                                { return 2.0 }
func (noopPositionTracker) IsOnRopes(f *Fighter) bool                           { return false }
func (noopPositionTracker) IsInCorner(f *Fighter) bool                          { return false }
func (noopPositionTracker) GetCenterControl() string                            { return "" }
func (noopPositionTracker) SeparateFighters(distance float64)                   {}
