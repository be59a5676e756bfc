// Package sim provides the core tick-driven simulation engine for boxing bouts.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - fighter.go: Fighter condition state machine (neutral → buzzed/hurt → knocked down → recovered)
//   - event.go: Event records emitted each tick (punches, knockdowns, counts, fight end)
//   - orchestrator.go: The tick loop, knockdown protocol, and stoppage evaluation
//
// # Architecture
//
// The sim package owns every bout invariant: bounded stamina and damage,
// monotonic knockdown counters, exactly-once round scoring, and the finite
// state protocol for knockdowns and recovery. One simulated tick is half a
// second; the Orchestrator is the sole mutator of fighter, round, and fight
// state, so the engine is single-threaded by construction.
//
// External collaborators (tactical AI, combat resolution, stamina and
// position management) plug in through the small interfaces in contracts.go.
// When absent they degrade to documented no-op fallbacks rather than
// blocking or failing. Consumers (renderers, loggers) observe the immutable
// event records published through EventSink and can never reach back into
// engine state.
//
// # Determinism
//
// All randomness flows through a PartitionedRNG seeded from a single master
// seed (rng.go). Two bouts with the same seed, fighters, and configuration
// produce identical event streams, in batch mode or real time: pacing is an
// injectable delay abstraction (pacing.go) that the pure step logic never
// depends on.
//
// # Key Interfaces
//
//   - DecisionSource: per-tick tactical decision for each fighter
//   - CombatResolver: turns two decisions into hits, misses, blocks, evades
//   - DamageCalculator: punch damage and hurt checks
//   - StaminaManager: per-tick stamina drain and punch costs
//   - PositionTracker: ring position, distance, center control
//   - EventSink: receives the emitted event taxonomy
package sim
