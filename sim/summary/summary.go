// Package summary reduces finished fights to printable box scores and
// aggregates result distributions across repeated bouts.
package summary

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/boxing-sim/boxing-sim/sim"
)

// FighterLine is one fighter's box-score line for a bout.
type FighterLine struct {
	Name        string
	Thrown      int
	Landed      int
	JabsLanded  int
	PowerLanded int
	Accuracy    float64
	Knockdowns  int // scored, not suffered
	DamageDealt float64
	CardTotals  []int // per judge, deductions applied
}

// BoutSummary is the pure-data result of one bout.
type BoutSummary struct {
	Winner     string // empty on a draw
	Method     sim.VictoryMethod
	Rounds     int
	FinalRound int
	A          FighterLine
	B          FighterLine
	Cards      []sim.Scorecard
}

// FromFight reduces a finished fight into a summary. Calling it on an
// unfinished fight summarizes whatever has happened so far.
func FromFight(f *sim.Fight) BoutSummary {
	s := BoutSummary{
		Rounds: len(f.Rounds),
		A:      fighterLine(f, f.FighterA, 0),
		B:      fighterLine(f, f.FighterB, 1),
		Cards:  f.Scorecards,
	}
	if f.Result != nil {
		s.Method = f.Result.Method
		s.FinalRound = f.Result.Round
		if f.Result.WinnerID != "" {
			if w, err := f.FighterByID(f.Result.WinnerID); err == nil {
				s.Winner = w.Name
			}
		}
	}
	return s
}

func fighterLine(f *sim.Fight, fighter *sim.Fighter, corner int) FighterLine {
	line := FighterLine{Name: fighter.Name}
	for _, r := range f.Rounds {
		st := r.Stats(corner)
		line.Thrown += st.Thrown()
		line.Landed += st.Landed()
		line.JabsLanded += st.JabsLanded
		line.PowerLanded += st.PowerLanded
		line.DamageDealt += st.DamageDealt
		for _, kd := range r.Knockdowns {
			if kd.AttackerID == fighter.ID {
				line.Knockdowns++
			}
		}
	}
	if line.Thrown > 0 {
		line.Accuracy = float64(line.Landed) / float64(line.Thrown)
	}
	for _, card := range f.Scorecards {
		total := card.TotalA
		if corner == 1 {
			total = card.TotalB
		}
		line.CardTotals = append(line.CardTotals, total-f.Deductions[fighter.ID])
	}
	return line
}

// Print writes the box score to stdout.
func (s BoutSummary) Print() {
	fmt.Println(strings.Repeat("=", 56))
	switch {
	case s.Winner != "":
		fmt.Printf("Result: %s by %s (round %d)\n", s.Winner, s.Method, s.FinalRound)
	case s.Method != "":
		fmt.Printf("Result: %s after %d rounds\n", s.Method, s.Rounds)
	default:
		fmt.Printf("No result after %d rounds\n", s.Rounds)
	}
	fmt.Println(strings.Repeat("-", 56))
	fmt.Printf("%-20s %8s %8s %6s %5s %4s\n", "", "thrown", "landed", "acc", "power", "KD")
	for _, line := range []FighterLine{s.A, s.B} {
		fmt.Printf("%-20s %8d %8d %5.1f%% %5d %4d\n",
			line.Name, line.Thrown, line.Landed, line.Accuracy*100, line.PowerLanded, line.Knockdowns)
	}
	if len(s.Cards) > 0 {
		fmt.Println(strings.Repeat("-", 56))
		for _, card := range s.Cards {
			fmt.Printf("Judge %-18s %d-%d\n", card.JudgeName, card.TotalA, card.TotalB)
		}
	}
	fmt.Println(strings.Repeat("=", 56))
}

// Aggregate accumulates summaries across repeated bouts of the same matchup
// and reports the result distribution.
type Aggregate struct {
	bouts []BoutSummary
}

// Add records one finished bout.
func (a *Aggregate) Add(s BoutSummary) {
	a.bouts = append(a.bouts, s)
}

// Len is the number of recorded bouts.
func (a *Aggregate) Len() int { return len(a.bouts) }

// Print writes the cross-bout distribution to stdout: win shares by fighter,
// method breakdown, and round-length / volume statistics.
func (a *Aggregate) Print() {
	n := len(a.bouts)
	if n == 0 {
		fmt.Println("no bouts recorded")
		return
	}

	wins := map[string]int{}
	methods := map[sim.VictoryMethod]int{}
	rounds := make([]float64, 0, n)
	landed := make([]float64, 0, n)
	for _, b := range a.bouts {
		if b.Winner != "" {
			wins[b.Winner]++
		} else {
			wins["(draw)"]++
		}
		methods[b.Method]++
		rounds = append(rounds, float64(b.Rounds))
		landed = append(landed, float64(b.A.Landed+b.B.Landed))
	}

	fmt.Println(strings.Repeat("=", 56))
	fmt.Printf("%d bouts\n", n)
	for name, w := range wins {
		fmt.Printf("  %-22s %4d  (%5.1f%%)\n", name, w, 100*float64(w)/float64(n))
	}
	fmt.Println(strings.Repeat("-", 56))
	for method, c := range methods {
		fmt.Printf("  %-22s %4d  (%5.1f%%)\n", method, c, 100*float64(c)/float64(n))
	}
	fmt.Println(strings.Repeat("-", 56))
	fmt.Printf("  rounds: mean %.2f, stddev %.2f\n", stat.Mean(rounds, nil), stat.StdDev(rounds, nil))
	fmt.Printf("  combined landed per bout: mean %.1f, stddev %.1f\n", stat.Mean(landed, nil), stat.StdDev(landed, nil))
	fmt.Println(strings.Repeat("=", 56))
}
