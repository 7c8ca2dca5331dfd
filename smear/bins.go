package smear

import (
	"fmt"
	"math"
)

// Default measurement binning of the covariance parametrization. The edges
// match the bins the resolution matrices were measured in; pt edges are in
// GeV, eta edges in |eta|.
var (
	DefaultPtEdges  = []float64{10, 20, 50, 100, 200, 250, 500, 750}
	DefaultEtaEdges = []float64{0.0, 0.4, 0.8, 1.05, 1.5, 1.7, 2.0, 2.25, 2.7}
)

// BinTable maps continuous (pt, |eta|) values onto the discrete measurement
// bins of the parametrization. Immutable after construction.
type BinTable struct {
	ptEdges  []float64
	etaEdges []float64
}

// NewBinTable builds a BinTable from ascending edge sequences. Both sequences
// must be non-empty and strictly increasing.
func NewBinTable(ptEdges, etaEdges []float64) (*BinTable, error) {
	if err := checkEdges("pt", ptEdges); err != nil {
		return nil, err
	}
	if err := checkEdges("eta", etaEdges); err != nil {
		return nil, err
	}
	b := &BinTable{
		ptEdges:  make([]float64, len(ptEdges)),
		etaEdges: make([]float64, len(etaEdges)),
	}
	copy(b.ptEdges, ptEdges)
	copy(b.etaEdges, etaEdges)
	return b, nil
}

// DefaultBinTable returns the binning the bundled parametrization was
// measured in.
func DefaultBinTable() *BinTable {
	b, err := NewBinTable(DefaultPtEdges, DefaultEtaEdges)
	if err != nil {
		panic(err) // default edges are compile-time constants
	}
	return b
}

func checkEdges(name string, edges []float64) error {
	if len(edges) == 0 {
		return fmt.Errorf("empty %s edge sequence", name)
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return fmt.Errorf("%s edges not strictly increasing at index %d (%v <= %v)",
				name, i, edges[i], edges[i-1])
		}
	}
	return nil
}

// PtBin returns the greatest index i with pt strictly above ptEdges[i], or -1
// if pt does not exceed the lowest edge. -1 is the low-momentum regime, which
// reuses bin 0 statistics with inflated impact-parameter uncertainties.
func (b *BinTable) PtBin(pt float64) int {
	bin := -1
	for i, edge := range b.ptEdges {
		if pt > edge {
			bin = i
		}
	}
	return bin
}

// EtaBin returns the greatest index i with |eta| strictly above etaEdges[i],
// or -1 if |eta| does not exceed the lowest edge. Ties at an edge favor the
// lower bin.
func (b *BinTable) EtaBin(eta float64) int {
	abseta := math.Abs(eta)
	bin := -1
	for i, edge := range b.etaEdges {
		if abseta > edge {
			bin = i
		}
	}
	return bin
}

// NumPtBins returns the number of measured pt bins (excluding the synthetic
// low-momentum bin).
func (b *BinTable) NumPtBins() int { return len(b.ptEdges) }

// NumEtaBins returns the number of measured eta bins.
func (b *BinTable) NumEtaBins() int { return len(b.etaEdges) }
