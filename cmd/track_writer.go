package cmd

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/hepsim/tracksmear/smear"
)

// trackWriter streams smeared tracks as CSV: kinematics, impact parameters,
// and the covariance-derived per-parameter uncertainties.
type trackWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

var outHeader = []string{
	"pt", "eta", "phi", "mass", "charge",
	"d0", "z0", "xd", "yd", "zd",
	"sigma_d0", "sigma_z0", "sigma_phi", "sigma_theta", "sigma_qoverp",
}

func newTrackWriter(w io.Writer) *trackWriter {
	return &trackWriter{w: csv.NewWriter(w)}
}

func (tw *trackWriter) write(t smear.TrackState) error {
	if !tw.wroteHeader {
		if err := tw.w.Write(outHeader); err != nil {
			return err
		}
		tw.wroteHeader = true
	}
	rec := []string{
		ftoa(t.Pt), ftoa(t.Eta), ftoa(t.Phi), ftoa(t.Mass), strconv.Itoa(t.Charge),
		ftoa(t.D0), ftoa(t.Z0), ftoa(t.Xd), ftoa(t.Yd), ftoa(t.Zd),
		ftoa(t.SigmaD0), ftoa(t.SigmaZ0), ftoa(t.SigmaPhi), ftoa(t.SigmaTheta), ftoa(t.SigmaQOverP),
	}
	return tw.w.Write(rec)
}

func (tw *trackWriter) flush() error {
	tw.w.Flush()
	return tw.w.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
