package sim

// EventType names every record the engine can emit.
type EventType string

const (
	EventFightStart     EventType = "FIGHT_START"
	EventRoundStart     EventType = "ROUND_START"
	EventRoundEnd       EventType = "ROUND_END"
	EventTick           EventType = "TICK"
	EventPunchLanded    EventType = "PUNCH_LANDED"
	EventKnockdown      EventType = "KNOCKDOWN"
	EventFlashKnockdown EventType = "FLASH_KNOCKDOWN"
	EventCount          EventType = "COUNT"
	EventRecovery       EventType = "RECOVERY"
	EventHurt           EventType = "HURT"
	EventBuzzed         EventType = "BUZZED"
	EventCut            EventType = "CUT"
	EventFoul           EventType = "FOUL"
	EventPointDeduction EventType = "POINT_DEDUCTION"
	EventRefereeCommand EventType = "REFEREE_COMMAND"
	EventFightEnding    EventType = "FIGHT_ENDING"
	EventFightEnd       EventType = "FIGHT_END"
)

// Event is an immutable value record emitted by the orchestrator. Events
// carry copies of state, never references into the live engine, so sinks
// cannot mutate the bout.
type Event interface {
	Type() EventType
	Tick() int
}

// EventSink receives every emitted event, in order. Implementations must not
// block; rendering and logging live behind this interface.
type EventSink interface {
	Publish(Event)
}

// SinkFunc adapts a function to the EventSink interface.
type SinkFunc func(Event)

func (f SinkFunc) Publish(ev Event) { f(ev) }

// CollectorSink records every event it receives. Used by tests and the bout
// summary builder.
type CollectorSink struct {
	Events []Event
}

func (c *CollectorSink) Publish(ev Event) { c.Events = append(c.Events, ev) }

// ByType filters collected events.
func (c *CollectorSink) ByType(t EventType) []Event {
	var out []Event
	for _, ev := range c.Events {
		if ev.Type() == t {
			out = append(out, ev)
		}
	}
	return out
}

// baseEvent carries the tick stamp shared by every record.
type baseEvent struct {
	AtTick int
}

func (b baseEvent) Tick() int { return b.AtTick }

// FightStartEvent opens the bout.
type FightStartEvent struct {
	baseEvent
	FightID  string
	FighterA string
	FighterB string
	Rounds   int
}

func (FightStartEvent) Type() EventType { return EventFightStart }

// RoundStartEvent marks the bell for a round.
type RoundStartEvent struct {
	baseEvent
	Round int
}

func (RoundStartEvent) Type() EventType { return EventRoundStart }

// RoundEndEvent carries the frozen stats and judge scores for the round.
type RoundEndEvent struct {
	baseEvent
	Round  int
	StatsA FighterRoundStats
	StatsB FighterRoundStats
	Scores []RoundScore
}

func (RoundEndEvent) Type() EventType { return EventRoundEnd }

// FighterSnapshot is the per-fighter state copied into tick events.
type FighterSnapshot struct {
	FighterID  string
	State      FighterState
	SubState   SubState
	Stamina    float64
	HeadDamage float64
	BodyDamage float64
	Buzzed     bool
	Hurt       bool
}

// TickEvent is the per-tick state broadcast. It covers active combat ticks
// only: while a count runs or between rounds the clock still advances, but
// those phases speak through their own records (COUNT, ROUND_END,
// ROUND_START) instead of snapshots.
type TickEvent struct {
	baseEvent
	Round     int
	RoundTick int
	FighterA  FighterSnapshot
	FighterB  FighterSnapshot
	Distance  float64
}

func (TickEvent) Type() EventType { return EventTick }

// PunchLandedEvent reports one landed punch.
type PunchLandedEvent struct {
	baseEvent
	AttackerID string
	TargetID   string
	Punch      PunchType
	Location   PunchLocation
	Damage     float64
	Clean      bool
	IsCounter  bool
}

func (PunchLandedEvent) Type() EventType { return EventPunchLanded }

// KnockdownEvent reports a knockdown. Flash knockdowns are emitted as
// FlashKnockdownEvent instead; a flash label is only valid for a sequence
// that actually ends in a fast recovery.
type KnockdownEvent struct {
	baseEvent
	FighterID  string
	AttackerID string
	Punch      PunchType
}

func (KnockdownEvent) Type() EventType { return EventKnockdown }

// FlashKnockdownEvent reports a knockdown pre-resolved to recover quickly.
type FlashKnockdownEvent struct {
	baseEvent
	FighterID  string
	AttackerID string
	Punch      PunchType
}

func (FlashKnockdownEvent) Type() EventType { return EventFlashKnockdown }

// CountEvent reports one number of the referee's count.
type CountEvent struct {
	baseEvent
	FighterID string
	Count     int
	IsKO      bool
}

func (CountEvent) Type() EventType { return EventCount }

// RecoveryEvent reports a fighter beating the count.
type RecoveryEvent struct {
	baseEvent
	FighterID string
	Count     int
}

func (RecoveryEvent) Type() EventType { return EventRecovery }

// HurtEvent reports the hurt condition starting.
type HurtEvent struct {
	baseEvent
	FighterID     string
	DurationTicks int
}

func (HurtEvent) Type() EventType { return EventHurt }

// BuzzedEvent reports the buzzed condition starting or compounding.
type BuzzedEvent struct {
	baseEvent
	FighterID     string
	Severity      int
	DurationTicks int
}

func (BuzzedEvent) Type() EventType { return EventBuzzed }

// CutEvent reports a new cut or swelling.
type CutEvent struct {
	baseEvent
	FighterID string
	Location  string
	Severity  int
}

func (CutEvent) Type() EventType { return EventCut }

// FoulEvent reports a committed foul and its outcome.
type FoulEvent struct {
	baseEvent
	AttackerID  string
	TargetID    string
	Foul        FoulKind
	Detected    bool
	Intentional bool
	Consequence FoulConsequence
}

func (FoulEvent) Type() EventType { return EventFoul }

// PointDeductionEvent reports a point taken from a fighter.
type PointDeductionEvent struct {
	baseEvent
	FighterID string
	Reason    string
	Total     int
}

func (PointDeductionEvent) Type() EventType { return EventPointDeduction }

// RefereeCommandEvent reports referee instructions (warnings, break calls).
type RefereeCommandEvent struct {
	baseEvent
	Command string
	Text    string
}

func (RefereeCommandEvent) Type() EventType { return EventRefereeCommand }

// FightEndingEvent fires the moment the outcome is known, before the formal
// FightEndEvent with scorecards.
type FightEndingEvent struct {
	baseEvent
	WinnerID string
	Method   VictoryMethod
	IsKO     bool
}

func (FightEndingEvent) Type() EventType { return EventFightEnding }

// FightEndEvent closes the bout with the full result.
type FightEndEvent struct {
	baseEvent
	WinnerID   string // empty on a draw
	Method     VictoryMethod
	Round      int
	RoundTick  int
	Scorecards []Scorecard
}

func (FightEndEvent) Type() EventType { return EventFightEnd }
