package tracksrc

import (
	"math"
	"testing"
)

func validSpec(seed int64) *GeneratorSpec {
	return &GeneratorSpec{
		NTracks:   50,
		PtMin:     5,
		PtMax:     300,
		AbsEtaMax: 2.5,
		D0Spread:  0.02,
		Z0Spread:  50,
		Seed:      seed,
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	// GIVEN the same spec and seed
	a, err := Generate(validSpec(42))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(validSpec(42))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// THEN the track sequences are identical
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("track %d differs between identically seeded runs", i)
		}
	}
}

func TestGenerate_SeedChangesTracks(t *testing.T) {
	a, err := Generate(validSpec(1))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(validSpec(2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if a[0] == b[0] {
		t.Error("different seeds produced an identical first track")
	}
}

func TestGenerate_RespectsBounds(t *testing.T) {
	spec := validSpec(7)
	tracks, err := Generate(spec)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(tracks) != spec.NTracks {
		t.Fatalf("got %d tracks, want %d", len(tracks), spec.NTracks)
	}
	for i, tr := range tracks {
		if tr.Pt < spec.PtMin || tr.Pt > spec.PtMax {
			t.Errorf("track %d: pt %v outside [%v, %v]", i, tr.Pt, spec.PtMin, spec.PtMax)
		}
		if math.Abs(tr.Eta) > spec.AbsEtaMax {
			t.Errorf("track %d: |eta| %v above %v", i, math.Abs(tr.Eta), spec.AbsEtaMax)
		}
		if math.Abs(tr.Phi) > math.Pi {
			t.Errorf("track %d: phi %v outside [-pi, pi]", i, tr.Phi)
		}
		if tr.Charge != 1 && tr.Charge != -1 {
			t.Errorf("track %d: charge %d, want +-1", i, tr.Charge)
		}
	}
}

func TestGenerate_DisplacementConsistentWithD0(t *testing.T) {
	// The generated Cartesian displacement lies along phi - pi/2, so the
	// signed transverse impact parameter reproduces as (xd*py - yd*px)/pt.
	tracks, err := Generate(validSpec(3))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i, tr := range tracks {
		px := tr.Pt * math.Cos(tr.Phi)
		py := tr.Pt * math.Sin(tr.Phi)
		d0 := (tr.Xd*py - tr.Yd*px) / tr.Pt
		r := math.Hypot(tr.Xd, tr.Yd)
		if math.Abs(math.Abs(d0)-r) > 1e-9*math.Max(1, r) {
			t.Errorf("track %d: |d0| %v does not match displacement radius %v", i, math.Abs(d0), r)
		}
	}
}

func TestGenerate_ZeroTracks(t *testing.T) {
	spec := validSpec(1)
	spec.NTracks = 0
	tracks, err := Generate(spec)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(tracks) != 0 {
		t.Errorf("got %d tracks, want 0", len(tracks))
	}
}

func TestGeneratorSpec_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratorSpec)
	}{
		{"negative track count", func(s *GeneratorSpec) { s.NTracks = -1 }},
		{"zero pt min", func(s *GeneratorSpec) { s.PtMin = 0 }},
		{"inverted pt range", func(s *GeneratorSpec) { s.PtMax = s.PtMin - 1 }},
		{"negative eta bound", func(s *GeneratorSpec) { s.AbsEtaMax = -0.1 }},
		{"negative d0 spread", func(s *GeneratorSpec) { s.D0Spread = -1 }},
		{"negative z0 spread", func(s *GeneratorSpec) { s.Z0Spread = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := validSpec(1)
			tt.mutate(spec)
			if err := spec.Validate(); err == nil {
				t.Error("got nil error")
			}
		})
	}
}
