package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/navroute/internal/route"
)

// DefaultConfigPath is the path to the canonical analysis defaults file.
const DefaultConfigPath = "config/analysis.defaults.json"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// AnalysisConfig is the JSON configuration for a density analysis run.
// Every field is optional; the Get* methods supply defaults.
type AnalysisConfig struct {
	SmoothingMode    *string  `json:"smoothing_mode,omitempty"` // arithmetic, harmonic or none
	MaximumDensity   *float64 `json:"maximum_density,omitempty"`
	KernelMultiplier *float64 `json:"kernel_multiplier,omitempty"`
	KernelScale      *string  `json:"kernel_scale,omitempty"` // small, medium or large; ignored if kernel_multiplier is set
	HarmonicExponent *float64 `json:"harmonic_exponent,omitempty"`
	MaxKernelLegs    *int     `json:"max_kernel_legs,omitempty"`

	// MaxRangeOverride replaces the MaxRange read from the route file.
	MaxRangeOverride *float64 `json:"max_range_override,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyAnalysisConfig returns an AnalysisConfig with all fields set to nil.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file.
// The file must have a .json extension and be under 1MB. Fields omitted from
// the file keep their defaults, so partial configs are safe.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseAnalysisConfig(data)
}

// ParseAnalysisConfig decodes and validates JSON configuration bytes.
func ParseAnalysisConfig(data []byte) (*AnalysisConfig, error) {
	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical defaults from DefaultConfigPath.
// It searches the current directory and its parents. Panics if the file
// cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *AnalysisConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadAnalysisConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

func badFloat(v *float64) bool {
	return v != nil && (!(*v > 0) || math.IsInf(*v, 0))
}

// Validate checks that the configuration values are valid.
func (c *AnalysisConfig) Validate() error {
	if c.SmoothingMode != nil {
		if _, err := route.ParseSmoothingMode(*c.SmoothingMode); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.KernelScale != nil {
		if _, err := route.ParseKernelScale(*c.KernelScale); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if badFloat(c.MaximumDensity) {
		return fmt.Errorf("%w: maximum_density must be positive, got %v", ErrInvalidConfig, *c.MaximumDensity)
	}
	if badFloat(c.KernelMultiplier) {
		return fmt.Errorf("%w: kernel_multiplier must be positive, got %v", ErrInvalidConfig, *c.KernelMultiplier)
	}
	if badFloat(c.HarmonicExponent) {
		return fmt.Errorf("%w: harmonic_exponent must be positive, got %v", ErrInvalidConfig, *c.HarmonicExponent)
	}
	if badFloat(c.MaxRangeOverride) {
		return fmt.Errorf("%w: max_range_override must be positive, got %v", ErrInvalidConfig, *c.MaxRangeOverride)
	}
	if c.MaxKernelLegs != nil && *c.MaxKernelLegs <= 0 {
		return fmt.Errorf("%w: max_kernel_legs must be positive, got %d", ErrInvalidConfig, *c.MaxKernelLegs)
	}
	return nil
}

// GetSmoothingMode returns the smoothing mode or the default (arithmetic).
func (c *AnalysisConfig) GetSmoothingMode() route.SmoothingMode {
	if c.SmoothingMode == nil {
		return route.ModeArithmetic
	}
	m, err := route.ParseSmoothingMode(*c.SmoothingMode)
	if err != nil {
		return route.ModeArithmetic // default on parse error
	}
	return m
}

// GetMaximumDensity returns the density ceiling or the default.
func (c *AnalysisConfig) GetMaximumDensity() float64 {
	if c.MaximumDensity == nil {
		return route.DefaultMaximumDensity
	}
	return *c.MaximumDensity
}

// GetKernelMultiplier returns the explicit multiplier, else the named
// kernel scale's multiplier, else the small-kernel default.
func (c *AnalysisConfig) GetKernelMultiplier() float64 {
	if c.KernelMultiplier != nil {
		return *c.KernelMultiplier
	}
	if c.KernelScale != nil {
		if k, err := route.ParseKernelScale(*c.KernelScale); err == nil {
			return k.Multiplier()
		}
	}
	return route.DefaultKernelMultiplier
}

// GetHarmonicExponent returns the harmonic exponent or the default (1).
func (c *AnalysisConfig) GetHarmonicExponent() float64 {
	if c.HarmonicExponent == nil {
		return route.DefaultHarmonicExponent
	}
	return *c.HarmonicExponent
}

// GetMaxKernelLegs returns the per-walk leg cap or the default.
func (c *AnalysisConfig) GetMaxKernelLegs() int {
	if c.MaxKernelLegs == nil {
		return route.DefaultMaxKernelLegs
	}
	return *c.MaxKernelLegs
}

// GetMaxRange returns the override if set, otherwise fallback.
func (c *AnalysisConfig) GetMaxRange(fallback float64) float64 {
	if c.MaxRangeOverride == nil {
		return fallback
	}
	return *c.MaxRangeOverride
}

// Settings converts the configuration into route settings.
func (c *AnalysisConfig) Settings() route.Settings {
	return route.Settings{
		Mode:             c.GetSmoothingMode(),
		MaximumDensity:   c.GetMaximumDensity(),
		KernelMultiplier: c.GetKernelMultiplier(),
		HarmonicExponent: c.GetHarmonicExponent(),
		MaxKernelLegs:    c.GetMaxKernelLegs(),
	}
}
