package smear

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Bundled parametrization, used when no file is configured. Covers every
// physical (pt, eta) bin of the default binning.
//
//go:embed parametrisation/default.yaml
var defaultParametrisation []byte

// symmetryTol bounds the allowed relative asymmetry of a source matrix.
// Source files are written from symmetric matrices, so anything beyond
// round-off noise means a corrupt file.
const symmetryTol = 1e-9

// MatrixName returns the parametrization key for a physical (ptBin, etaBin)
// pair, e.g. "covmat_ptbin03_etabin05".
func MatrixName(ptBin, etaBin int) string {
	return fmt.Sprintf("covmat_ptbin%02d_etabin%02d", ptBin, etaBin)
}

// ParamSource is a loaded parametrization: named 5x5 symmetric covariance
// matrices in the source's native units (lengths in mm, qoverp in 1/MeV).
// Read-only after loading.
type ParamSource struct {
	matrices map[string]*mat.SymDense
}

type paramFile struct {
	Matrices map[string][][]float64 `yaml:"matrices"`
}

// LoadParamSource reads a parametrization YAML file. An empty path loads the
// bundled default parametrization.
func LoadParamSource(path string) (*ParamSource, error) {
	if path == "" {
		return ParseParamSource(defaultParametrisation)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parametrization %s: %w", path, err)
	}
	src, err := ParseParamSource(data)
	if err != nil {
		return nil, fmt.Errorf("parametrization %s: %w", path, err)
	}
	return src, nil
}

// ParseParamSource parses parametrization YAML. Every matrix must be 5x5 and
// symmetric; a malformed matrix is a hard error (corrupt source), while a
// missing bin name is not (the caller skips unset bins).
func ParseParamSource(data []byte) (*ParamSource, error) {
	var pf paramFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing parametrization: %w", err)
	}
	if len(pf.Matrices) == 0 {
		return nil, fmt.Errorf("parametrization defines no matrices")
	}
	src := &ParamSource{matrices: make(map[string]*mat.SymDense, len(pf.Matrices))}
	for name, rows := range pf.Matrices {
		m, err := symFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("matrix %s: %w", name, err)
		}
		src.matrices[name] = m
	}
	return src, nil
}

func symFromRows(rows [][]float64) (*mat.SymDense, error) {
	if len(rows) != NumParams {
		return nil, fmt.Errorf("want %d rows, got %d", NumParams, len(rows))
	}
	for i, row := range rows {
		if len(row) != NumParams {
			return nil, fmt.Errorf("row %d: want %d columns, got %d", i, NumParams, len(row))
		}
	}
	m := mat.NewSymDense(NumParams, nil)
	for i := 0; i < NumParams; i++ {
		for j := i; j < NumParams; j++ {
			a, b := rows[i][j], rows[j][i]
			scale := math.Max(math.Abs(a), math.Abs(b))
			if math.Abs(a-b) > symmetryTol*math.Max(scale, 1) {
				return nil, fmt.Errorf("not symmetric at (%d,%d): %v vs %v", i, j, a, b)
			}
			m.SetSym(i, j, a)
		}
	}
	return m, nil
}

// Matrix returns a copy of the named matrix, so that callers can apply
// corrections without mutating the source.
func (s *ParamSource) Matrix(name string) (*mat.SymDense, bool) {
	m, ok := s.matrices[name]
	if !ok {
		return nil, false
	}
	out := mat.NewSymDense(NumParams, nil)
	out.CopySym(m)
	return out, true
}

// Len returns the number of named matrices in the source.
func (s *ParamSource) Len() int { return len(s.matrices) }
