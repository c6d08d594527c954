package route

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// SmoothingMode selects the averaging law used by the kernel smoother.
type SmoothingMode int

const (
	// ModeArithmetic integrates density with the trapezoid rule and divides
	// by the effective window.
	ModeArithmetic SmoothingMode = iota
	// ModeHarmonic integrates reciprocal density, giving a distance-weighted
	// harmonic mean.
	ModeHarmonic
	// ModeNone leaves the smoothed density at its raw value.
	ModeNone
)

// String returns the configuration name of the mode.
func (m SmoothingMode) String() string {
	switch m {
	case ModeArithmetic:
		return "arithmetic"
	case ModeHarmonic:
		return "harmonic"
	case ModeNone:
		return "none"
	default:
		return fmt.Sprintf("SmoothingMode(%d)", int(m))
	}
}

// ParseSmoothingMode converts a configuration name to a SmoothingMode.
func ParseSmoothingMode(s string) (SmoothingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arithmetic", "mean":
		return ModeArithmetic, nil
	case "harmonic":
		return ModeHarmonic, nil
	case "none", "off":
		return ModeNone, nil
	default:
		return ModeNone, fmt.Errorf("unknown smoothing mode %q (want arithmetic, harmonic or none)", s)
	}
}

// KernelScale names one of the preset kernel multipliers.
type KernelScale int

const (
	KernelSmall KernelScale = iota
	KernelMedium
	KernelLarge
)

// Kernel multipliers applied to the maximum range. The small kernel samples
// the range sphere at the Rayleigh/Nyquist limit; medium and large double it.
const (
	KernelMultiplierSmall  = 2.44
	KernelMultiplierMedium = 4.88
	KernelMultiplierLarge  = 9.76
)

// Multiplier returns the kernel width multiplier for the scale.
func (k KernelScale) Multiplier() float64 {
	switch k {
	case KernelMedium:
		return KernelMultiplierMedium
	case KernelLarge:
		return KernelMultiplierLarge
	default:
		return KernelMultiplierSmall
	}
}

func (k KernelScale) String() string {
	switch k {
	case KernelSmall:
		return "small"
	case KernelMedium:
		return "medium"
	case KernelLarge:
		return "large"
	default:
		return fmt.Sprintf("KernelScale(%d)", int(k))
	}
}

// ParseKernelScale converts a configuration name to a KernelScale.
func ParseKernelScale(s string) (KernelScale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return KernelSmall, nil
	case "medium":
		return KernelMedium, nil
	case "large":
		return KernelLarge, nil
	default:
		return KernelSmall, fmt.Errorf("unknown kernel scale %q (want small, medium or large)", s)
	}
}

// Defaults used when a Settings field is not configured.
const (
	DefaultMaximumDensity   = 1.0
	DefaultKernelMultiplier = KernelMultiplierSmall
	DefaultHarmonicExponent = 1.0
	DefaultMaxKernelLegs    = 100000
)

// ErrInvalidSettings is returned when Settings fail validation.
var ErrInvalidSettings = errors.New("invalid route settings")

// Settings is the per-Route configuration. Separate Routes may use
// different settings side by side.
type Settings struct {
	Mode SmoothingMode
	// MaximumDensity clamps every Sample's raw density.
	MaximumDensity float64
	// KernelMultiplier sizes the smoothing window as a multiple of max range.
	KernelMultiplier float64
	// HarmonicExponent is only used in ModeHarmonic. Values other than 1
	// are accepted but have not been validated against real routes.
	HarmonicExponent float64
	// MaxKernelLegs caps how many legs one half-window walk may cross.
	MaxKernelLegs int
}

// DefaultSettings returns arithmetic smoothing with the small kernel.
func DefaultSettings() Settings {
	return Settings{
		Mode:             ModeArithmetic,
		MaximumDensity:   DefaultMaximumDensity,
		KernelMultiplier: DefaultKernelMultiplier,
		HarmonicExponent: DefaultHarmonicExponent,
		MaxKernelLegs:    DefaultMaxKernelLegs,
	}
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Validate checks that every field is usable.
func (s Settings) Validate() error {
	switch s.Mode {
	case ModeArithmetic, ModeHarmonic, ModeNone:
	default:
		return fmt.Errorf("%w: unknown mode %v", ErrInvalidSettings, s.Mode)
	}
	if !positiveFinite(s.MaximumDensity) {
		return fmt.Errorf("%w: maximum density must be positive, got %v", ErrInvalidSettings, s.MaximumDensity)
	}
	if !positiveFinite(s.KernelMultiplier) {
		return fmt.Errorf("%w: kernel multiplier must be positive, got %v", ErrInvalidSettings, s.KernelMultiplier)
	}
	if !positiveFinite(s.HarmonicExponent) {
		return fmt.Errorf("%w: harmonic exponent must be positive, got %v", ErrInvalidSettings, s.HarmonicExponent)
	}
	if s.MaxKernelLegs <= 0 {
		return fmt.Errorf("%w: max kernel legs must be positive, got %d", ErrInvalidSettings, s.MaxKernelLegs)
	}
	return nil
}
