package smear

import (
	"fmt"
	"math"
)

// ToPerigee converts a kinematic track to the 5-parameter perigee sampling
// basis. The transverse impact parameter is the signed cross product of the
// perigee displacement with the momentum direction.
func ToPerigee(t TrackState) ParamVector {
	px := t.Pt * math.Cos(t.Phi)
	py := t.Pt * math.Sin(t.Phi)
	return ParamVector{
		ParamD0:     (t.Xd*py - t.Yd*px) / t.Pt,
		ParamZ0:     t.Zd,
		ParamPhi:    t.Phi,
		ParamTheta:  2 * math.Atan(math.Exp(-t.Eta)),
		ParamQOverP: float64(t.Charge) / (t.Pt * math.Cosh(t.Eta)),
	}
}

// FromPerigee reconstructs the kinematic view from a (smeared) perigee
// vector. Charge, mass, and the cosh(eta) term of the pt reconstruction come
// from the original track: eta is not part of the sampling basis and is
// rebuilt from theta separately.
//
// The Cartesian displacement is re-derived from the smeared d0 at the
// azimuthal reference phi - pi/2, shifted by the phi smearing, keeping the
// impact parameter and its Cartesian form geometrically consistent.
//
// A non-positive reconstructed pt is a contract violation: qoverp never
// flips sign under physically sensible covariances.
func FromPerigee(p ParamVector, orig TrackState) (TrackState, error) {
	pt := float64(orig.Charge) / (p[ParamQOverP] * math.Cosh(orig.Eta))
	if pt <= 0 {
		return TrackState{}, fmt.Errorf("non-positive smeared pt %g (qoverp %g, charge %d)",
			pt, p[ParamQOverP], orig.Charge)
	}
	eta := -math.Log(math.Tan(p[ParamTheta] / 2))

	phiD0 := orig.Phi - math.Pi/2 + (p[ParamPhi] - orig.Phi)

	return TrackState{
		Pt:     pt,
		Eta:    eta,
		Phi:    p[ParamPhi],
		Mass:   orig.Mass,
		Charge: orig.Charge,
		Xd:     p[ParamD0] * math.Cos(phiD0),
		Yd:     p[ParamD0] * math.Sin(phiD0),
		Zd:     p[ParamZ0],
		D0:     p[ParamD0],
		Z0:     p[ParamZ0],
	}, nil
}
