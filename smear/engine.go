package smear

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Engine applies detector-resolution smearing to generator-level tracks:
// it perturbs the five perigee parameters with correlated Gaussian noise
// drawn from the pt/eta bin's measured covariance, and attaches the
// covariance-derived uncertainties to the output.
//
// The engine is a pure per-call pipeline over immutable tables plus one
// stateful noise source; tracks must be smeared sequentially so that the
// noise draw order stays deterministic for a given seed.
type Engine struct {
	bins    *BinTable
	lib     *Library
	cache   *Cache
	noise   NoiseSource
	smeared int
}

// NewEngine loads the parametrization named by the configuration (or the
// bundled default), builds the covariance library and Cholesky cache against
// the default binning, and seeds the noise source.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src, err := LoadParamSource(cfg.ParamFile)
	if err != nil {
		return nil, err
	}
	bins := DefaultBinTable()
	lib := NewLibrary(src, bins, cfg.SmearingMultiple)
	noise := NewGaussianNoise(
		NewPartitionedRNG(NewRunKey(cfg.Seed)).ForSubsystem(SubsystemSmearing))
	return newEngine(lib, noise), nil
}

func newEngine(lib *Library, noise NoiseSource) *Engine {
	return &Engine{
		bins:  lib.Bins(),
		lib:   lib,
		cache: NewCache(lib),
		noise: noise,
	}
}

// Smear produces the reconstructed-resolution copy of a generator-level
// track. The input is never mutated. Errors are fatal to the run: an
// exhausted bin fallback means the configuration is inconsistent, and a
// non-positive reconstructed pt means a broken covariance.
func (e *Engine) Smear(t TrackState) (TrackState, error) {
	if t.Charge == 0 {
		return TrackState{}, fmt.Errorf("cannot smear neutral track (pt %g, eta %g)", t.Pt, t.Eta)
	}
	if t.Pt <= 0 {
		return TrackState{}, fmt.Errorf("cannot smear track with non-positive pt %g", t.Pt)
	}

	ptBin := e.bins.PtBin(t.Pt)
	etaBin := e.bins.EtaBin(t.Eta)
	if etaBin < 0 {
		// |eta| exactly at the lowest edge resolves to the most central bin.
		etaBin = 0
	}
	bi, err := e.cache.Resolve(ptBin, etaBin)
	if err != nil {
		return TrackState{}, err
	}
	L := e.cache.Factor(bi)
	cov, _ := e.cache.Covariance(bi)

	p := ToPerigee(t)
	r := e.noise.Draw()

	var noise mat.VecDense
	noise.MulVec(L, mat.NewVecDense(NumParams, r[:]))

	var smeared ParamVector
	for i := range smeared {
		smeared[i] = p[i] + noise.AtVec(i)
	}

	out, err := FromPerigee(smeared, t)
	if err != nil {
		return TrackState{}, err
	}

	// Per-parameter uncertainties are the square roots of the covariance
	// diagonal; Abs guards against floating-point negative zero only.
	out.SigmaD0 = math.Sqrt(math.Abs(cov.At(ParamD0, ParamD0)))
	out.SigmaZ0 = math.Sqrt(math.Abs(cov.At(ParamZ0, ParamZ0)))
	out.SigmaPhi = math.Sqrt(math.Abs(cov.At(ParamPhi, ParamPhi)))
	out.SigmaTheta = math.Sqrt(math.Abs(cov.At(ParamTheta, ParamTheta)))
	out.SigmaQOverP = math.Sqrt(math.Abs(cov.At(ParamQOverP, ParamQOverP)))
	out.Cov = cov

	e.smeared++
	return out, nil
}

// Metrics returns a snapshot of the engine's counters.
func (e *Engine) Metrics() Metrics {
	return Metrics{
		TracksSmeared: e.smeared,
		BinsLoaded:    e.lib.Loaded(),
		BinsSkipped:   e.lib.Skipped(),
		BinsDropped:   e.cache.Dropped(),
		BinMisses:     e.cache.BinMisses(),
	}
}
