// Tracks run-wide smearing statistics for final reporting.

package smear

import "fmt"

// Metrics aggregates statistics about one smearing run: how many tracks were
// processed and how the covariance binning behaved (loaded, skipped, dropped,
// and fallback-resolved bins).
type Metrics struct {
	TracksSmeared int // tracks successfully smeared
	BinsLoaded    int // bins with a stored covariance
	BinsSkipped   int // bins absent from the parametrization source
	BinsDropped   int // bins discarded for failed Cholesky factorization
	BinMisses     int // eta fallback steps taken during bin resolution
}

// Print displays aggregated metrics at the end of the run.
func (m Metrics) Print() {
	fmt.Println("=== Smearing Metrics ===")
	fmt.Printf("Tracks Smeared      : %d\n", m.TracksSmeared)
	fmt.Printf("Covariance Bins     : %d loaded, %d skipped, %d dropped\n",
		m.BinsLoaded, m.BinsSkipped, m.BinsDropped)
	fmt.Printf("Bin Misses          : %d\n", m.BinMisses)
}
