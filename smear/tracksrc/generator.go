// Package tracksrc supplies generator-level tracks to the smearing engine,
// either synthesized from a seeded RNG or replayed from a CSV file.
package tracksrc

import (
	"fmt"
	"math"

	"github.com/hepsim/tracksmear/smear"
)

// pionMass is the charged-pion mass in GeV, the default mass hypothesis for
// synthetic tracks.
const pionMass = 0.13957

// GeneratorSpec configures synthetic track generation. Deterministic given
// the same spec and seed.
type GeneratorSpec struct {
	NTracks   int     // number of tracks to generate
	PtMin     float64 // lower pt bound in GeV
	PtMax     float64 // upper pt bound in GeV
	AbsEtaMax float64 // tracks are uniform in eta over [-AbsEtaMax, AbsEtaMax]
	D0Spread  float64 // Gaussian spread of the transverse perigee displacement (mm)
	Z0Spread  float64 // Gaussian spread of the longitudinal perigee displacement (mm)
	Seed      int64
}

// Validate checks the generation bounds.
func (s *GeneratorSpec) Validate() error {
	if s.NTracks < 0 {
		return fmt.Errorf("negative track count %d", s.NTracks)
	}
	if s.PtMin <= 0 || s.PtMax < s.PtMin {
		return fmt.Errorf("invalid pt range [%v, %v]", s.PtMin, s.PtMax)
	}
	if s.AbsEtaMax < 0 {
		return fmt.Errorf("negative eta bound %v", s.AbsEtaMax)
	}
	if s.D0Spread < 0 || s.Z0Spread < 0 {
		return fmt.Errorf("negative displacement spread (d0 %v, z0 %v)", s.D0Spread, s.Z0Spread)
	}
	return nil
}

// Generate creates a synthetic track sequence. Momenta are log-uniform in pt
// and uniform in eta and phi; charges are +-1 with equal probability. The
// perigee displacement is placed along the d0 direction (phi - pi/2) so that
// the Cartesian and impact-parameter views start out consistent.
func Generate(spec *GeneratorSpec) ([]smear.TrackState, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}
	rng := smear.NewPartitionedRNG(smear.NewRunKey(spec.Seed)).ForSubsystem(smear.SubsystemTracks)

	tracks := make([]smear.TrackState, 0, spec.NTracks)
	for i := 0; i < spec.NTracks; i++ {
		pt := spec.PtMin * math.Exp(rng.Float64()*math.Log(spec.PtMax/spec.PtMin))
		eta := (2*rng.Float64() - 1) * spec.AbsEtaMax
		phi := (2*rng.Float64() - 1) * math.Pi
		charge := 1
		if rng.Float64() < 0.5 {
			charge = -1
		}
		d0 := rng.NormFloat64() * spec.D0Spread
		phiD0 := phi - math.Pi/2

		tracks = append(tracks, smear.TrackState{
			Pt:     pt,
			Eta:    eta,
			Phi:    phi,
			Mass:   pionMass,
			Charge: charge,
			Xd:     d0 * math.Cos(phiD0),
			Yd:     d0 * math.Sin(phiD0),
			Zd:     rng.NormFloat64() * spec.Z0Spread,
		})
	}
	return tracks, nil
}
