package smear

import "fmt"

// EngineConfig groups the smearing engine construction parameters.
type EngineConfig struct {
	SmearingMultiple float64 // global scale on every loaded covariance (1.0 = measured resolution)
	ParamFile        string  // parametrization YAML path ("" = bundled default)
	Seed             int64   // master seed for the shared noise source
}

// NewEngineConfig builds an EngineConfig.
func NewEngineConfig(smearingMultiple float64, paramFile string, seed int64) EngineConfig {
	return EngineConfig{
		SmearingMultiple: smearingMultiple,
		ParamFile:        paramFile,
		Seed:             seed,
	}
}

// Validate checks the configuration before engine construction.
func (c EngineConfig) Validate() error {
	if c.SmearingMultiple <= 0 {
		return fmt.Errorf("smearing multiple must be positive, got %v", c.SmearingMultiple)
	}
	return nil
}
