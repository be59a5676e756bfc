package sim

import (
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible bout.
// Two bouts with the same SimulationKey and identical fighters and
// configuration MUST produce bit-for-bit identical event streams.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemJudges is the RNG subsystem for judge scoring noise
	// (consistency miscalls, close-round coin flips).
	SubsystemJudges = "judges"

	// SubsystemReferee is the RNG subsystem for clinch-break timing and
	// stoppage gating.
	SubsystemReferee = "referee"

	// SubsystemFouls is the RNG subsystem for foul attempts, detection,
	// and consequences.
	SubsystemFouls = "fouls"

	// SubsystemRecovery is the RNG subsystem for knockdown counts,
	// immediate-KO checks, and recovery rolls.
	SubsystemRecovery = "recovery"

	// SubsystemEffects is the RNG subsystem for timed-modifier triggers
	// (intimidation, fast starts, focus lapses).
	SubsystemEffects = "effects"

	// SubsystemDecisions is the RNG subsystem handed to the external
	// decision source so tactical randomness stays reproducible too.
	SubsystemDecisions = "decisions"

	// SubsystemCombat is the RNG subsystem for hit/miss/block resolution.
	SubsystemCombat = "combat"

	// SubsystemDamage is the RNG subsystem for damage variance and hurt
	// checks.
	SubsystemDamage = "damage"

	// SubsystemPosition is the RNG subsystem for ring-geometry drift.
	SubsystemPosition = "position"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Isolation matters: adding one extra judge roll must not perturb the
// referee's clinch timing in an otherwise-identical bout.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
