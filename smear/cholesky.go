package smear

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// BinIndex addresses one covariance bin. Pt may be -1 (the low-momentum
// regime); Eta is always a resolved bin index >= 0.
type BinIndex struct {
	Pt  int
	Eta int
}

// Cache holds the precomputed lower Cholesky factor of every usable
// covariance bin, and resolves requested bins to usable ones. Bins whose
// matrix is not positive definite are dropped at construction and behave
// exactly like bins absent from the source.
//
// Resolution falls back along the eta axis only: a missing (ptBin, etaBin)
// retries (ptBin, etaBin-1), counting one bin miss per step. Higher-eta bins
// are the sparsely measured ones and are conservatively approximated by the
// next more central bin; a miss at eta bin 0 is a configuration error.
type Cache struct {
	lib     *Library
	factors [][]*mat.TriDense
	misses  int
	dropped int
}

// NewCache factorizes every stored covariance matrix in the library.
func NewCache(lib *Library) *Cache {
	bins := lib.Bins()
	c := &Cache{
		lib:     lib,
		factors: make([][]*mat.TriDense, bins.NumPtBins()+1),
	}
	for i := range c.factors {
		c.factors[i] = make([]*mat.TriDense, bins.NumEtaBins())
	}
	for ipt := -1; ipt < bins.NumPtBins(); ipt++ {
		for ieta := 0; ieta < bins.NumEtaBins(); ieta++ {
			cov, ok := lib.Covariance(ipt, ieta)
			if !ok {
				continue
			}
			var chol mat.Cholesky
			if !chol.Factorize(cov) {
				logrus.Warnf("dropping pt-eta bin (%d, %d): covariance is not positive definite", ipt, ieta)
				c.dropped++
				continue
			}
			L := mat.NewTriDense(NumParams, mat.Lower, nil)
			chol.LTo(L)
			c.factors[ipt+1][ieta] = L
		}
	}
	return c
}

// Resolve maps a requested bin to the nearest usable one under the eta
// fallback rule. The returned BinIndex always has a cached factor. An
// exhausted fallback (nothing usable down to eta bin 0) is an error; the
// caller treats it as fatal.
func (c *Cache) Resolve(ptBin, etaBin int) (BinIndex, error) {
	bins := c.lib.Bins()
	if ptBin < -1 || ptBin >= bins.NumPtBins() {
		return BinIndex{}, fmt.Errorf("pt bin %d out of range", ptBin)
	}
	if etaBin < 0 || etaBin >= bins.NumEtaBins() {
		return BinIndex{}, fmt.Errorf("eta bin %d out of range", etaBin)
	}
	eta := etaBin
	for {
		if c.factors[ptBin+1][eta] != nil {
			return BinIndex{Pt: ptBin, Eta: eta}, nil
		}
		if eta == 0 {
			return BinIndex{}, fmt.Errorf("no usable eta bins for pt bin %d", ptBin)
		}
		c.misses++
		eta--
	}
}

// Factor returns the lower Cholesky factor for a resolved bin, or nil if the
// bin has none. Resolve never returns a bin without a factor.
func (c *Cache) Factor(bi BinIndex) *mat.TriDense {
	return c.factors[bi.Pt+1][bi.Eta]
}

// Covariance returns the covariance matrix for a resolved bin.
func (c *Cache) Covariance(bi BinIndex) (*mat.SymDense, bool) {
	return c.lib.Covariance(bi.Pt, bi.Eta)
}

// BinMisses returns the total number of eta fallback steps taken so far.
// Reported once at shutdown; a nonzero count is diagnostic, not an error.
func (c *Cache) BinMisses() int { return c.misses }

// Dropped returns the number of bins discarded for failed factorization.
func (c *Cache) Dropped() int { return c.dropped }
