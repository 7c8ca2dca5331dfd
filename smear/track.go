package smear

import "gonum.org/v1/gonum/mat"

// Track parameter indices in the perigee sampling basis. The covariance
// parametrization and the Cholesky factors use this ordering.
const (
	ParamD0 = iota
	ParamZ0
	ParamPhi
	ParamTheta
	ParamQOverP
	NumParams
)

// ParamVector is a track expressed in the 5-parameter perigee basis
// (d0, z0, phi, theta, qoverp). d0 and z0 are in mm, phi and theta in
// radians, qoverp = charge / (pt * cosh(eta)) in 1/GeV.
type ParamVector [NumParams]float64

// TrackState is the kinematic view of a charged track: its momentum
// (pt in GeV, eta, phi, mass in GeV), integer charge, and the Cartesian
// perigee displacement (Xd, Yd, Zd in mm).
//
// On smeared outputs the impact parameters (D0, Z0), their covariance-derived
// uncertainties, and the full resolved covariance matrix are filled in as
// well. Cov is shared with the engine's library and must not be modified.
type TrackState struct {
	Pt     float64
	Eta    float64
	Phi    float64
	Mass   float64
	Charge int

	Xd float64
	Yd float64
	Zd float64

	D0 float64
	Z0 float64

	SigmaD0     float64
	SigmaZ0     float64
	SigmaPhi    float64
	SigmaTheta  float64
	SigmaQOverP float64

	Cov *mat.SymDense
}
