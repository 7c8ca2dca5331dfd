package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hepsim/tracksmear/smear"
)

func TestTrackWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := newTrackWriter(&buf)

	track := smear.TrackState{
		Pt: 37.5, Eta: 1.2, Phi: 0.7, Mass: 0.13957, Charge: -1,
		D0: 0.015, Z0: -22, Xd: 0.01, Yd: -0.011, Zd: -22,
		SigmaD0: 0.012, SigmaZ0: 0.03, SigmaPhi: 0.0002, SigmaTheta: 0.0004, SigmaQOverP: 1e-5,
	}
	if err := w.write(track); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.write(track); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != strings.Join(outHeader, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "37.5,1.2,0.7,0.13957,-1,") {
		t.Errorf("row = %q", lines[1])
	}
}
