package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gotower/internal/femerr"
)

// Limits of the solver configuration
const (
	MinModes = 1
	MaxModes = 10
)

// Parameters holds the run parameters of an eigenfrequency analysis
type Parameters struct {
	Gravity                    float64 `yaml:"gravity" json:"gravity"`                                                                     // earth acceleration [L/T^2]
	PDelta                     bool    `yaml:"p_delta" json:"p_delta"`                                                                     // second order theory
	NormalizeModeShapes        bool    `yaml:"normalize_mode_shapes" json:"normalize_mode_shapes"`                                         // max |value| = 1.0 per mode
	NumberOfModes              int     `yaml:"number_of_modes" json:"number_of_modes"`                                                     // modes to keep
	PreferPositiveLateralModes bool    `yaml:"prefer_positive_lateral_mode_shape_values" json:"prefer_positive_lateral_mode_shape_values"` // flip signs so mode 1 ends positive
}

// Default returns the parameters used when an input file omits them
func Default() Parameters {
	return Parameters{
		Gravity:             9.81,
		NormalizeModeShapes: true,
		NumberOfModes:       2,
	}
}

// Order returns the theory order, 2 with p-Delta effects
func (p Parameters) Order() int {
	if p.PDelta {
		return 2
	}
	return 1
}

// Validate checks that all parameters are within their ranges
func (p Parameters) Validate() error {
	if p.Gravity < 0 {
		return femerr.Valuef("gravity must be >= 0.0, got %g", p.Gravity)
	}
	if p.NumberOfModes < MinModes || p.NumberOfModes > MaxModes {
		return femerr.Valuef("number_of_modes must be in [%d, %d], got %d", MinModes, MaxModes, p.NumberOfModes)
	}
	return nil
}

// Load reads parameter defaults from a YAML file. A missing file yields
// Default(). Environment overrides are applied last.
func Load(path string) (Parameters, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			p.applyEnvOverrides()
			return p, nil
		}
		return p, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse config: %w", err)
	}

	p.applyEnvOverrides()
	return p, nil
}

// Save writes p as YAML to path
func (p Parameters) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies GOTOWER_* environment variables
func (p *Parameters) applyEnvOverrides() {
	if v, err := strconv.ParseFloat(os.Getenv("GOTOWER_GRAVITY"), 64); err == nil {
		p.Gravity = v
	}
	if v, err := strconv.Atoi(os.Getenv("GOTOWER_MODES")); err == nil {
		p.NumberOfModes = v
	}
	if v, err := strconv.ParseBool(os.Getenv("GOTOWER_P_DELTA")); err == nil {
		p.PDelta = v
	}
}
