// Package smear implements detector-resolution smearing of charged-particle
// track parameters from a binned empirical covariance model.
//
// # Reading Guide
//
// Start with these three files to understand the smearing kernel:
//   - bins.go: the pt/eta measurement binning and its lookup rules
//   - transform.go: kinematic <-> perigee (d0, z0, phi, theta, qoverp) conversion
//   - engine.go: the per-track pipeline tying binning, Cholesky factors, and noise together
//
// # Architecture
//
// Immutable tables are built once at initialization: source.go loads the
// named covariance matrices, covariance.go applies the unit and low-momentum
// corrections and stores them per bin, and cholesky.go precomputes each bin's
// lower Cholesky factor and resolves bin lookups with eta fallback. Per-track
// state is transient; the only run-long mutable state is the shared noise
// source (rng.go) and the bin-miss counter.
//
// Track input sources (synthetic generation, CSV replay) live in the
// tracksrc sub-package.
package smear
