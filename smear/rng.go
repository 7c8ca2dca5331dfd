package smear

import (
	"hash/fnv"
	"math/rand"
)

// === RunKey ===

// RunKey uniquely identifies a reproducible smearing run. Two runs with the
// same RunKey, configuration, and input track sequence MUST produce
// bit-for-bit identical smeared outputs.
type RunKey int64

// NewRunKey creates a RunKey from a seed value.
func NewRunKey(seed int64) RunKey {
	return RunKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemSmearing is the RNG subsystem feeding the Gaussian noise
	// source of the smearing engine.
	SubsystemSmearing = "smearing"

	// SubsystemTracks is the RNG subsystem for synthetic track generation.
	SubsystemTracks = "tracks"
)

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem, derived as masterSeed XOR fnv1a64(subsystemName). Generating
// extra synthetic tracks therefore never shifts the smearing noise sequence.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key        RunKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a RunKey.
func NewPartitionedRNG(key RunKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same subsystem name always returns the same *rand.Rand
// instance (cached). Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the RunKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() RunKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// === NoiseSource ===

// NoiseSource draws the standard-normal 5-vector that generates one track's
// correlated smearing. Assumed to always succeed.
type NoiseSource interface {
	Draw() ParamVector
}

// GaussianNoise draws iid N(0,1) components from a single shared rand.Rand.
// The draw order across tracks is part of the deterministic contract, so
// tracks must be processed sequentially; not safe for concurrent use.
type GaussianNoise struct {
	rng *rand.Rand
}

// NewGaussianNoise wraps a seeded RNG as a NoiseSource.
func NewGaussianNoise(rng *rand.Rand) *GaussianNoise {
	return &GaussianNoise{rng: rng}
}

// Draw returns a fresh standard-normal 5-vector.
func (g *GaussianNoise) Draw() ParamVector {
	var v ParamVector
	for i := range v {
		v[i] = g.rng.NormFloat64()
	}
	return v
}
