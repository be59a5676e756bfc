package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/boxing-sim/boxing-sim/sim"
	"github.com/boxing-sim/boxing-sim/sim/summary"
)

var (
	// CLI flags for bout structure and rules
	seed               int64   // Master seed; every stochastic subsystem derives from it
	rounds             int     // Scheduled rounds
	roundSecs          float64 // Round length in seconds
	restSecs           float64 // Rest between rounds in seconds
	threeKnockdownRule bool    // Three knockdowns in a round end the fight
	homeCorner         int     // -1 neutral, 0 or 1 for the favored side
	logLevel           string  // Log verbosity level

	// CLI flags for inputs
	paramsFile    string // Tuning parameter overrides (YAML)
	fighterAFile  string // Fighter card for the A corner (YAML)
	fighterBFile  string // Fighter card for the B corner (YAML)
	officialsFile string // Referee and judges (YAML)

	// CLI flags for execution mode
	bouts    int  // Number of repeated bouts (re-seeded per bout)
	realtime bool // Pace ticks at half-second wall-clock intervals
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "boxing-sim",
	Short: "Tick-driven boxing match simulator",
}

// runCmd simulates one or more bouts using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulated bout",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		params := sim.DefaultParams()
		if paramsFile != "" {
			params, err = sim.LoadParams(paramsFile)
			if err != nil {
				logrus.Fatalf("unable to read params file: %v", err)
			}
		}

		cardA, cardB, err := loadFighterCards(fighterAFile, fighterBFile)
		if err != nil {
			logrus.Fatalf("unable to read fighter cards: %v", err)
		}
		officials, err := loadOfficials(officialsFile)
		if err != nil {
			logrus.Fatalf("unable to read officials file: %v", err)
		}

		cfg := sim.NewFightConfig(rounds)
		cfg.RoundSecs = roundSecs
		cfg.RestSecs = restSecs
		cfg.ThreeKnockdownRule = threeKnockdownRule
		cfg.HomeCorner = homeCorner

		logrus.Infof("Starting %d bout(s): %s vs %s, %d rounds, seed=%d",
			bouts, cardA.Name, cardB.Name, rounds, seed)

		startTime := time.Now()
		var agg summary.Aggregate
		for i := 0; i < bouts; i++ {
			// Each bout gets its own derived key so batches stay reproducible
			// without replaying identical fights.
			boutSeed := sim.SimulationKey(seed + int64(i))
			s, err := runBout(cardA, cardB, officials, cfg, params, boutSeed)
			if err != nil {
				logrus.Fatalf("bout %d: %v", i+1, err)
			}
			if bouts == 1 {
				s.Print()
			}
			agg.Add(s)
		}
		if bouts > 1 {
			agg.Print()
		}
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// runBout assembles fresh fighters and officials and resolves one fight.
func runBout(cardA, cardB FighterCard, officials Officials, cfg sim.FightConfig, params sim.Params, key sim.SimulationKey) (summary.BoutSummary, error) {
	a, err := cardA.Build(params)
	if err != nil {
		return summary.BoutSummary{}, err
	}
	b, err := cardB.Build(params)
	if err != nil {
		return summary.BoutSummary{}, err
	}
	ref, judges, err := officials.Build()
	if err != nil {
		return summary.BoutSummary{}, err
	}

	fight, err := sim.NewFight(a, b, cfg, ref, judges, params)
	if err != nil {
		return summary.BoutSummary{}, err
	}

	rng := sim.NewPartitionedRNG(key)
	var pacer sim.Pacer = sim.InstantPacer{}
	if realtime {
		pacer = sim.RealtimePacer{}
	}
	orch := sim.NewOrchestrator(fight, key, sim.OrchestratorConfig{
		Decisions: sim.NewTacticalAI(rng.ForSubsystem(sim.SubsystemDecisions)),
		Combat:    sim.NewStandardCombat(rng.ForSubsystem(sim.SubsystemCombat)),
		Damage:    sim.NewStandardDamage(rng.ForSubsystem(sim.SubsystemDamage)),
		Stamina:   sim.NewStandardStamina(),
		Position:  sim.NewRingTracker(rng.ForSubsystem(sim.SubsystemPosition)),
		Pacer:     pacer,
	})
	if err := orch.Run(context.Background()); err != nil {
		return summary.BoutSummary{}, err
	}
	return summary.FromFight(fight), nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for all stochastic subsystems")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Bout structure
	runCmd.Flags().IntVar(&rounds, "rounds", 12, "Scheduled rounds")
	runCmd.Flags().Float64Var(&roundSecs, "round-secs", 180, "Round length in seconds")
	runCmd.Flags().Float64Var(&restSecs, "rest-secs", 60, "Rest between rounds in seconds")
	runCmd.Flags().BoolVar(&threeKnockdownRule, "three-knockdown-rule", true, "Stop the fight on three knockdowns in one round")
	runCmd.Flags().IntVar(&homeCorner, "home-corner", -1, "Favored corner for judge bias (-1 neutral, 0 or 1)")

	// Inputs
	runCmd.Flags().StringVar(&paramsFile, "params", "", "Tuning parameter overrides (YAML)")
	runCmd.Flags().StringVar(&fighterAFile, "fighter-a", "", "Fighter card for the A corner (YAML); built-in card when empty")
	runCmd.Flags().StringVar(&fighterBFile, "fighter-b", "", "Fighter card for the B corner (YAML); built-in card when empty")
	runCmd.Flags().StringVar(&officialsFile, "officials", "", "Referee and judges (YAML); built-in officials when empty")

	// Execution mode
	runCmd.Flags().IntVar(&bouts, "bouts", 1, "Number of bouts to simulate (seeds derive per bout)")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "Pace ticks at half-second wall-clock intervals")

	rootCmd.AddCommand(runCmd)
}
