package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hepsim/tracksmear/smear"
	"github.com/hepsim/tracksmear/smear/tracksrc"
)

var (
	// CLI flags for the smearing engine
	seed      int64   // Master seed for the shared noise source
	logLevel  string  // Log verbosity level
	smearMult float64 // Global multiple on every loaded covariance
	paramFile string  // Parametrization YAML path ("" = bundled default)

	// CLI flags for track input and output
	tracksCSV string  // Replay tracks from this CSV instead of generating
	outPath   string  // Smeared track CSV destination ("" = stdout)
	nTracks   int     // Number of synthetic tracks
	ptMin     float64 // Synthetic pt range lower bound (GeV)
	ptMax     float64 // Synthetic pt range upper bound (GeV)
	etaMax    float64 // Synthetic |eta| bound
	d0Spread  float64 // Synthetic transverse displacement spread (mm)
	z0Spread  float64 // Synthetic longitudinal displacement spread (mm)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tracksmear",
	Short: "Covariance-based detector-resolution smearing of track parameters",
}

// runCmd smears a track sequence using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Smear a generated or replayed track sequence",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		tracks, err := loadTracks()
		if err != nil {
			logrus.Fatalf("unable to load input tracks: %v", err)
		}

		logrus.Infof("Starting smearing run with %d tracks, seed=%d, smearing multiple=%v",
			len(tracks), seed, smearMult)

		engine, err := smear.NewEngine(smear.NewEngineConfig(smearMult, paramFile, seed))
		if err != nil {
			logrus.Fatalf("unable to build smearing engine: %v", err)
		}

		out := os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				logrus.Fatalf("unable to create output file: %v", err)
			}
			defer f.Close()
			out = f
		}
		w := newTrackWriter(out)

		for i, t := range tracks {
			smeared, err := engine.Smear(t)
			if err != nil {
				logrus.Fatalf("track %d: %v", i, err)
			}
			if err := w.write(smeared); err != nil {
				logrus.Fatalf("writing track %d: %v", i, err)
			}
		}
		if err := w.flush(); err != nil {
			logrus.Fatalf("flushing output: %v", err)
		}

		m := engine.Metrics()
		m.Print()
		if m.BinMisses > 0 {
			logrus.Warnf("%d bin misses in track smearing", m.BinMisses)
		}
		logrus.Info("Smearing run complete.")
	},
}

// loadTracks replays the configured CSV, or synthesizes tracks when no file
// is given.
func loadTracks() ([]smear.TrackState, error) {
	if tracksCSV != "" {
		return tracksrc.ReadCSV(tracksCSV)
	}
	spec := &tracksrc.GeneratorSpec{
		NTracks:   nTracks,
		PtMin:     ptMin,
		PtMax:     ptMax,
		AbsEtaMax: etaMax,
		D0Spread:  d0Spread,
		Z0Spread:  z0Spread,
		Seed:      seed,
	}
	return tracksrc.Generate(spec)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for noise and track generation")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Smearing engine configs
	runCmd.Flags().Float64Var(&smearMult, "smearing-multiple", 1.0, "Global multiple applied to every covariance matrix")
	runCmd.Flags().StringVar(&paramFile, "param-file", "", "Parametrization YAML path (default: bundled parametrization)")

	// Track input/output configs
	runCmd.Flags().StringVar(&tracksCSV, "tracks", "", "CSV file of input tracks (pt,eta,phi,mass,charge,xd,yd,zd)")
	runCmd.Flags().StringVar(&outPath, "out", "", "Output CSV path (default: stdout)")
	runCmd.Flags().IntVar(&nTracks, "n-tracks", 100, "Number of synthetic tracks")
	runCmd.Flags().Float64Var(&ptMin, "pt-min", 5.0, "Synthetic pt range lower bound (GeV)")
	runCmd.Flags().Float64Var(&ptMax, "pt-max", 300.0, "Synthetic pt range upper bound (GeV)")
	runCmd.Flags().Float64Var(&etaMax, "eta-max", 2.5, "Synthetic |eta| bound")
	runCmd.Flags().Float64Var(&d0Spread, "d0-spread", 0.02, "Synthetic transverse displacement spread (mm)")
	runCmd.Flags().Float64Var(&z0Spread, "z0-spread", 50.0, "Synthetic longitudinal displacement spread (mm)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
