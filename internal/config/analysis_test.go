package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/navroute/internal/route"
)

func TestEmptyAnalysisConfigDefaults(t *testing.T) {
	cfg := EmptyAnalysisConfig()

	if got := cfg.GetSmoothingMode(); got != route.ModeArithmetic {
		t.Errorf("GetSmoothingMode() = %v, want arithmetic", got)
	}
	if got := cfg.GetMaximumDensity(); got != route.DefaultMaximumDensity {
		t.Errorf("GetMaximumDensity() = %v, want %v", got, route.DefaultMaximumDensity)
	}
	if got := cfg.GetKernelMultiplier(); got != route.KernelMultiplierSmall {
		t.Errorf("GetKernelMultiplier() = %v, want %v", got, route.KernelMultiplierSmall)
	}
	if got := cfg.GetHarmonicExponent(); got != 1 {
		t.Errorf("GetHarmonicExponent() = %v, want 1", got)
	}
	if got := cfg.GetMaxKernelLegs(); got != route.DefaultMaxKernelLegs {
		t.Errorf("GetMaxKernelLegs() = %v, want %v", got, route.DefaultMaxKernelLegs)
	}
	if got := cfg.GetMaxRange(42); got != 42 {
		t.Errorf("GetMaxRange(42) = %v, want 42", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on empty config: %v", err)
	}
}

func TestLoadAnalysisConfig(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("partial config keeps defaults", func(t *testing.T) {
		path := filepath.Join(tmpDir, "partial.json")
		content := `{"smoothing_mode": "harmonic", "kernel_scale": "large"}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		cfg, err := LoadAnalysisConfig(path)
		if err != nil {
			t.Fatalf("LoadAnalysisConfig failed: %v", err)
		}
		if got := cfg.GetSmoothingMode(); got != route.ModeHarmonic {
			t.Errorf("mode = %v, want harmonic", got)
		}
		if got := cfg.GetKernelMultiplier(); got != route.KernelMultiplierLarge {
			t.Errorf("multiplier = %v, want %v", got, route.KernelMultiplierLarge)
		}
		if got := cfg.GetMaximumDensity(); got != route.DefaultMaximumDensity {
			t.Errorf("maximum density = %v, want default", got)
		}
	})

	t.Run("explicit multiplier wins over scale", func(t *testing.T) {
		path := filepath.Join(tmpDir, "multiplier.json")
		content := `{"kernel_scale": "medium", "kernel_multiplier": 3.0, "max_range_override": 12.5}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}

		cfg, err := LoadAnalysisConfig(path)
		if err != nil {
			t.Fatalf("LoadAnalysisConfig failed: %v", err)
		}
		if got := cfg.GetKernelMultiplier(); got != 3.0 {
			t.Errorf("multiplier = %v, want 3.0", got)
		}
		if got := cfg.GetMaxRange(50); got != 12.5 {
			t.Errorf("max range = %v, want 12.5", got)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
		_, err := LoadAnalysisConfig(path)
		if err == nil || !strings.Contains(err.Error(), ".json extension") {
			t.Errorf("expected extension error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAnalysisConfig(filepath.Join(tmpDir, "missing.json"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("too large", func(t *testing.T) {
		path := filepath.Join(tmpDir, "large.json")
		data := make([]byte, 1024*1024+1)
		for i := range data {
			data[i] = ' '
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
		_, err := LoadAnalysisConfig(path)
		if err == nil || !strings.Contains(err.Error(), "too large") {
			t.Errorf("expected size error, got %v", err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(tmpDir, "broken.json")
		if err := os.WriteFile(path, []byte(`{"smoothing_mode": `), 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
		if _, err := LoadAnalysisConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *AnalysisConfig
		wantErr bool
	}{
		{"empty", &AnalysisConfig{}, false},
		{"valid harmonic", &AnalysisConfig{SmoothingMode: ptrString("harmonic"), HarmonicExponent: ptrFloat64(2)}, false},
		{"unknown mode", &AnalysisConfig{SmoothingMode: ptrString("median")}, true},
		{"unknown scale", &AnalysisConfig{KernelScale: ptrString("huge")}, true},
		{"zero ceiling", &AnalysisConfig{MaximumDensity: ptrFloat64(0)}, true},
		{"negative multiplier", &AnalysisConfig{KernelMultiplier: ptrFloat64(-1)}, true},
		{"zero exponent", &AnalysisConfig{HarmonicExponent: ptrFloat64(0)}, true},
		{"negative range", &AnalysisConfig{MaxRangeOverride: ptrFloat64(-5)}, true},
		{"zero leg cap", &AnalysisConfig{MaxKernelLegs: ptrInt(0)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestSettingsConversion(t *testing.T) {
	cfg := &AnalysisConfig{
		SmoothingMode:    ptrString("harmonic"),
		MaximumDensity:   ptrFloat64(0.5),
		KernelScale:      ptrString("medium"),
		HarmonicExponent: ptrFloat64(2),
		MaxKernelLegs:    ptrInt(500),
	}
	s := cfg.Settings()
	want := route.Settings{
		Mode:             route.ModeHarmonic,
		MaximumDensity:   0.5,
		KernelMultiplier: route.KernelMultiplierMedium,
		HarmonicExponent: 2,
		MaxKernelLegs:    500,
	}
	if s != want {
		t.Errorf("Settings() = %+v, want %+v", s, want)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("converted settings invalid: %v", err)
	}
}

func TestDefaultConfigFileMatchesBuiltins(t *testing.T) {
	cfg := MustLoadDefaultConfig()
	if got, want := cfg.Settings(), route.DefaultSettings(); got != want {
		t.Errorf("defaults file settings = %+v, want %+v", got, want)
	}
}
