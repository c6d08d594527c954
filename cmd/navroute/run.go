package main

import (
	"fmt"
	"time"

	"github.com/banshee-data/navroute/internal/config"
	"github.com/banshee-data/navroute/internal/fsutil"
	"github.com/banshee-data/navroute/internal/monitoring"
	"github.com/banshee-data/navroute/internal/navroute"
	"github.com/banshee-data/navroute/internal/report"
	"github.com/banshee-data/navroute/internal/route"
	"github.com/banshee-data/navroute/internal/timeutil"
)

// Result describes a completed run.
type Result struct {
	Report  *report.Report
	Samples int
	Files   []string
	Elapsed time.Duration
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(o Options) (*config.AnalysisConfig, error) {
	cfg := config.EmptyAnalysisConfig()
	if o.ConfigPath != "" {
		loaded, err := config.LoadAnalysisConfig(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.Mode != "" {
		cfg.SmoothingMode = &o.Mode
	}
	if o.KernelScale != "" {
		cfg.KernelScale = &o.KernelScale
		// A preset on the command line replaces any explicit multiplier.
		cfg.KernelMultiplier = nil
	}
	if o.MaxDensity > 0 {
		cfg.MaximumDensity = &o.MaxDensity
	}
	if o.MaxRange > 0 {
		cfg.MaxRangeOverride = &o.MaxRange
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run loads the route, computes its density profile and writes the
// requested report files. A route too short to produce Samples writes
// nothing.
func Run(o Options, fsys fsutil.FileSystem, clock timeutil.Clock) (*Result, error) {
	start := clock.Now()

	formats, err := report.ParseFormats(o.Formats)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return nil, err
	}
	file, err := navroute.Load(fsys, o.RoutePath)
	if err != nil {
		return nil, err
	}

	maxRange := cfg.GetMaxRange(file.MaxRange)
	settings := cfg.Settings()
	monitoring.Logf("route %s: %d systems, %s -> %s, max range %g, mode %s",
		file.Name, len(file.Route), file.Origin(), file.Destination(), maxRange, settings.Mode)

	r, err := route.Build(file.Systems(), maxRange, settings)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", file.Name, err)
	}

	res := &Result{Samples: r.Len()}
	if r.Len() == 0 {
		monitoring.Logf("route %s has no samples; nothing written", file.Name)
		res.Elapsed = clock.Since(start)
		return res, nil
	}

	rep := report.New(file.Name, r, clock)
	rep.Origin = file.Origin()
	rep.Destination = file.Destination()
	res.Report = rep

	monitoring.Logf("run %s: %d samples (%d clamped), mean density %.6g, smoothed peak %.6g at %.1f ly",
		rep.RunID, rep.Summary.Samples, rep.Summary.Clamped, rep.Summary.MeanDensity, rep.Summary.MaxSmoothed, rep.Summary.PeakDistance)

	res.Files, err = rep.WriteFiles(fsys, o.OutDir, formats)
	if err != nil {
		return nil, err
	}
	res.Elapsed = clock.Since(start)
	return res, nil
}
