package smear

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

const (
	// The source parametrization expresses qoverp in 1/MeV; the engine works
	// in GeV, so the qoverp row and column scale by 1000 under congruence.
	gevFromMeV = 1000.0

	// Uncertainty inflation applied to d0 and z0 below the lowest measured
	// pt bin, which reuses bin-0 statistics.
	lowPtInflation = 2.0
)

// Library holds the corrected per-bin measurement covariance matrices as a
// dense (N_pt+1) x N_eta table; slot 0 of the pt axis is the synthetic
// low-momentum bin (ptBin == -1). A nil entry means the bin is unset.
// Immutable after construction.
type Library struct {
	bins    *BinTable
	cov     [][]*mat.SymDense
	loaded  int
	skipped int
}

// NewLibrary builds the covariance table from a parametrization source. For
// every (ptBin in {-1 .. N_pt-1}, etaBin in {0 .. N_eta-1}) it looks up the
// physical bin's matrix (ptBin -1 reuses physical bin 0), applies the MeV to
// GeV unit correction, the low-pt inflation where applicable, and the global
// smearing multiple. Bins absent from the source are logged and left unset.
func NewLibrary(src *ParamSource, bins *BinTable, smearMult float64) *Library {
	lib := &Library{
		bins: bins,
		cov:  make([][]*mat.SymDense, bins.NumPtBins()+1),
	}
	for i := range lib.cov {
		lib.cov[i] = make([]*mat.SymDense, bins.NumEtaBins())
	}

	unitScale := onesScale()
	unitScale[ParamQOverP] = gevFromMeV
	lowPtScale := onesScale()
	lowPtScale[ParamD0] = lowPtInflation
	lowPtScale[ParamZ0] = lowPtInflation

	for ipt := -1; ipt < bins.NumPtBins(); ipt++ {
		for ieta := 0; ieta < bins.NumEtaBins(); ieta++ {
			phys := ipt
			if phys < 0 {
				phys = 0
			}
			m, ok := src.Matrix(MatrixName(phys, ieta))
			if !ok {
				logrus.Infof("no smearing defined for pt-eta bin (%d, %d)", ipt, ieta)
				lib.skipped++
				continue
			}
			scaleCongruence(m, unitScale)
			if ipt == -1 {
				scaleCongruence(m, lowPtScale)
			}
			if smearMult != 1.0 {
				m.ScaleSym(smearMult, m)
			}
			lib.cov[ipt+1][ieta] = m
			lib.loaded++
		}
	}
	return lib
}

func onesScale() [NumParams]float64 {
	var s [NumParams]float64
	for i := range s {
		s[i] = 1.0
	}
	return s
}

// scaleCongruence applies diag(s) * m * diag(s) in place.
func scaleCongruence(m *mat.SymDense, s [NumParams]float64) {
	for i := 0; i < NumParams; i++ {
		for j := i; j < NumParams; j++ {
			m.SetSym(i, j, m.At(i, j)*s[i]*s[j])
		}
	}
}

// Covariance returns the stored matrix for (ptBin, etaBin), or false when the
// bin is unset or out of range. ptBin -1 addresses the low-momentum slot.
func (l *Library) Covariance(ptBin, etaBin int) (*mat.SymDense, bool) {
	if ptBin < -1 || ptBin >= l.bins.NumPtBins() || etaBin < 0 || etaBin >= l.bins.NumEtaBins() {
		return nil, false
	}
	m := l.cov[ptBin+1][etaBin]
	if m == nil {
		return nil, false
	}
	return m, true
}

// Bins returns the bin table the library was built against.
func (l *Library) Bins() *BinTable { return l.bins }

// Loaded returns the number of bins with a stored covariance.
func (l *Library) Loaded() int { return l.loaded }

// Skipped returns the number of bins absent from the source.
func (l *Library) Skipped() int { return l.skipped }
