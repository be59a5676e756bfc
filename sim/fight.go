package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// ErrUnknownFighter is returned when a fighter id does not belong to the
// fight (the InvalidFighterReference failure kind).
var ErrUnknownFighter = errors.New("unknown fighter reference")

// FightStatus is the fight lifecycle state machine:
// NOT_STARTED → IN_PROGRESS ⇄ BETWEEN_ROUNDS → STOPPED | COMPLETED.
// STOPPED and COMPLETED are terminal; ticks after them are no-ops.
type FightStatus string

const (
	StatusNotStarted    FightStatus = "NOT_STARTED"
	StatusInProgress    FightStatus = "IN_PROGRESS"
	StatusBetweenRounds FightStatus = "BETWEEN_ROUNDS"
	StatusStopped       FightStatus = "STOPPED"
	StatusCompleted     FightStatus = "COMPLETED"
)

var validStatusTransitions = map[FightStatus][]FightStatus{
	StatusNotStarted:    {StatusInProgress},
	StatusInProgress:    {StatusBetweenRounds, StatusStopped, StatusCompleted},
	StatusBetweenRounds: {StatusInProgress, StatusStopped, StatusCompleted},
}

// VictoryMethod names how a fight ended.
type VictoryMethod string

const (
	MethodKO                 VictoryMethod = "KO"
	MethodTKO                VictoryMethod = "TKO"
	MethodTKOThreeKnockdowns VictoryMethod = "TKO_THREE_KNOCKDOWNS"
	MethodDisqualification   VictoryMethod = "DISQUALIFICATION"
	MethodUnanimousDecision  VictoryMethod = "UNANIMOUS_DECISION"
	MethodMajorityDecision   VictoryMethod = "MAJORITY_DECISION"
	MethodSplitDecision      VictoryMethod = "SPLIT_DECISION"
	MethodDraw               VictoryMethod = "DRAW"
)

// IsKO reports whether the method counts as a knockout-family stoppage.
func (m VictoryMethod) IsKO() bool {
	return m == MethodKO || m == MethodTKO || m == MethodTKOThreeKnockdowns
}

// FightConfig carries bout structure and rule flags. Rejected at
// construction when invalid, never mid-simulation.
type FightConfig struct {
	Rounds             int     `yaml:"rounds"`
	RoundSecs          float64 `yaml:"round_secs"`
	RestSecs           float64 `yaml:"rest_secs"`
	ThreeKnockdownRule bool    `yaml:"three_knockdown_rule"`
	// HomeCorner is -1 for a neutral venue, 0 or 1 for the favored side.
	HomeCorner int `yaml:"home_corner"`
}

// NewFightConfig returns the standard championship configuration.
func NewFightConfig(rounds int) FightConfig {
	return FightConfig{
		Rounds:             rounds,
		RoundSecs:          180,
		RestSecs:           60,
		ThreeKnockdownRule: true,
		HomeCorner:         -1,
	}
}

// Validate rejects structurally impossible configurations.
func (c FightConfig) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("round count must be positive, got %d", c.Rounds)
	}
	if c.RoundSecs <= 0 {
		return fmt.Errorf("round duration must be positive, got %v", c.RoundSecs)
	}
	if c.RestSecs < 0 {
		return fmt.Errorf("rest duration must be non-negative, got %v", c.RestSecs)
	}
	if c.HomeCorner < -1 || c.HomeCorner > 1 {
		return fmt.Errorf("home corner must be -1, 0, or 1, got %d", c.HomeCorner)
	}
	return nil
}

// RoundTicks is the round length in simulation ticks.
func (c FightConfig) RoundTicks() int { return int(c.RoundSecs * TicksPerSecond) }

// Scorecard is one judge's accumulated per-round score totals.
type Scorecard struct {
	JudgeName string
	ScoresA   []int
	ScoresB   []int
	TotalA    int
	TotalB    int
}

// Add appends a round score pair.
func (s *Scorecard) Add(score RoundScore) {
	s.ScoresA = append(s.ScoresA, score.ScoreA)
	s.ScoresB = append(s.ScoresB, score.ScoreB)
	s.TotalA += score.ScoreA
	s.TotalB += score.ScoreB
}

// FightResult is the final verdict, set exactly once.
type FightResult struct {
	WinnerID  string // empty on a draw
	Method    VictoryMethod
	Round     int
	RoundTick int
}

// Fight owns the two fighters, the officials, the round ledgers, and the
// scorecards. The orchestrator is its sole mutator.
type Fight struct {
	ID     string
	Config FightConfig
	Params Params

	FighterA *Fighter
	FighterB *Fighter

	Referee *Referee
	Judges  []*Judge

	Rounds     []*Round
	Scorecards []Scorecard

	Status FightStatus
	Result *FightResult

	// Deductions holds referee point deductions per fighter id, folded
	// into the cards at decision time.
	Deductions map[string]int
}

// NewFight validates all inputs and assembles a fight in NOT_STARTED state.
func NewFight(a, b *Fighter, cfg FightConfig, ref *Referee, judges []*Judge, params Params) (*Fight, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("both fighters are required")
	}
	if a.ID == b.ID {
		return nil, fmt.Errorf("fighters must be distinct")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fight config: %w", err)
	}
	if ref == nil {
		return nil, fmt.Errorf("referee is required")
	}
	if len(judges) != 3 {
		return nil, fmt.Errorf("exactly three judges are required, got %d", len(judges))
	}
	f := &Fight{
		ID:         uuid.NewString(),
		Config:     cfg,
		Params:     params,
		FighterA:   a,
		FighterB:   b,
		Referee:    ref,
		Judges:     judges,
		Status:     StatusNotStarted,
		Deductions: make(map[string]int),
	}
	for _, j := range judges {
		f.Scorecards = append(f.Scorecards, Scorecard{JudgeName: j.Name})
	}
	return f, nil
}

// SetStatus moves the fight lifecycle forward. Transitions out of a
// terminal status are an error.
func (f *Fight) SetStatus(next FightStatus) error {
	if f.Status == next {
		return nil
	}
	for _, s := range validStatusTransitions[f.Status] {
		if s == next {
			f.Status = next
			return nil
		}
	}
	return fmt.Errorf("invalid fight status transition %s -> %s", f.Status, next)
}

// IsOver reports a terminal status.
func (f *Fight) IsOver() bool {
	return f.Status == StatusStopped || f.Status == StatusCompleted
}

// FighterByID resolves a fighter id or fails with ErrUnknownFighter.
func (f *Fight) FighterByID(id string) (*Fighter, error) {
	switch id {
	case f.FighterA.ID:
		return f.FighterA, nil
	case f.FighterB.ID:
		return f.FighterB, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFighter, id)
	}
}

// Opponent returns the other fighter.
func (f *Fight) Opponent(id string) (*Fighter, error) {
	switch id {
	case f.FighterA.ID:
		return f.FighterB, nil
	case f.FighterB.ID:
		return f.FighterA, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFighter, id)
	}
}

// CornerOf maps a fighter id to corner index 0 (A) or 1 (B).
func (f *Fight) CornerOf(id string) (int, error) {
	switch id {
	case f.FighterA.ID:
		return 0, nil
	case f.FighterB.ID:
		return 1, nil
	default:
		return -1, fmt.Errorf("%w: %s", ErrUnknownFighter, id)
	}
}

// CurrentRound returns the most recent round ledger, or nil before the
// first bell.
func (f *Fight) CurrentRound() *Round {
	if len(f.Rounds) == 0 {
		return nil
	}
	return f.Rounds[len(f.Rounds)-1]
}

// BeginRound opens a fresh round ledger.
func (f *Fight) BeginRound() *Round {
	r := NewRound(len(f.Rounds)+1, f.Config.RoundTicks(), f.FighterA.ID, f.FighterB.ID)
	f.Rounds = append(f.Rounds, r)
	return r
}

// ScoreRound freezes the current round and has all three judges score it
// exactly once. Scoring an already-scored round is an error.
func (f *Fight) ScoreRound(rng *rand.Rand) ([]RoundScore, error) {
	r := f.CurrentRound()
	if r == nil {
		return nil, fmt.Errorf("no round to score")
	}
	if len(r.Scores) > 0 {
		return nil, fmt.Errorf("round %d already scored", r.Number)
	}
	r.Complete()
	for i, j := range f.Judges {
		score := j.ScoreRound(f.Params.Scoring, r, f.Config.HomeCorner, rng)
		r.Scores = append(r.Scores, score)
		f.Scorecards[i].Add(score)
	}
	return r.Scores, nil
}

// ApplyDeduction records a referee point deduction against a fighter.
func (f *Fight) ApplyDeduction(fighterID string) int {
	f.Deductions[fighterID]++
	return f.Deductions[fighterID]
}

// ScoreMargin estimates how far ahead (positive) or behind (negative) the
// given fighter is across the cards so far, deductions included, averaged
// over the three judges.
func (f *Fight) ScoreMargin(fighterID string) float64 {
	corner, err := f.CornerOf(fighterID)
	if err != nil {
		return 0
	}
	var margin float64
	for _, card := range f.Scorecards {
		diff := float64(card.TotalA - card.TotalB)
		if corner == 1 {
			diff = -diff
		}
		margin += diff
	}
	margin /= float64(len(f.Scorecards))
	margin -= float64(f.Deductions[fighterID])
	opp, _ := f.Opponent(fighterID)
	if opp != nil {
		margin += float64(f.Deductions[opp.ID])
	}
	return margin
}

// Decide tallies the three cards after the final bell and derives the
// verdict from the 2-of-3 majority. Deductions are subtracted from each
// card total before comparison.
func (f *Fight) Decide() FightResult {
	winsA, winsB, evens := 0, 0, 0
	for _, card := range f.Scorecards {
		totalA := card.TotalA - f.Deductions[f.FighterA.ID]
		totalB := card.TotalB - f.Deductions[f.FighterB.ID]
		switch {
		case totalA > totalB:
			winsA++
		case totalB > totalA:
			winsB++
		default:
			evens++
		}
	}

	result := FightResult{Round: len(f.Rounds)}
	switch {
	case winsA == 3:
		result.WinnerID = f.FighterA.ID
		result.Method = MethodUnanimousDecision
	case winsB == 3:
		result.WinnerID = f.FighterB.ID
		result.Method = MethodUnanimousDecision
	case winsA == 2 && evens == 1:
		result.WinnerID = f.FighterA.ID
		result.Method = MethodMajorityDecision
	case winsB == 2 && evens == 1:
		result.WinnerID = f.FighterB.ID
		result.Method = MethodMajorityDecision
	case winsA == 2 && winsB == 1:
		result.WinnerID = f.FighterA.ID
		result.Method = MethodSplitDecision
	case winsB == 2 && winsA == 1:
		result.WinnerID = f.FighterB.ID
		result.Method = MethodSplitDecision
	default:
		result.Method = MethodDraw
	}
	return result
}
