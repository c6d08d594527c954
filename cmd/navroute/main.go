// Command navroute estimates the stellar density along a plotted route and
// writes the raw and smoothed density profile.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/navroute/internal/fsutil"
	"github.com/banshee-data/navroute/internal/monitoring"
	"github.com/banshee-data/navroute/internal/timeutil"
	"github.com/banshee-data/navroute/internal/version"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("invalid arguments: %v", err)
	}
	if opts.ShowVersion {
		fmt.Println(version.String())
		return
	}
	monitoring.SetDebug(opts.Debug)

	res, err := Run(opts, fsutil.OSFileSystem{}, timeutil.RealClock{})
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	log.Printf("done: samples=%d files=%d elapsed=%s", res.Samples, len(res.Files), res.Elapsed)
}

// Options holds the command-line settings. Zero values leave the
// configuration file's value in place.
type Options struct {
	RoutePath   string
	ConfigPath  string
	Mode        string
	KernelScale string
	MaxDensity  float64
	MaxRange    float64
	OutDir      string
	Formats     string
	Debug       bool
	ShowVersion bool
}

func parseFlags(args []string) (Options, error) {
	var o Options
	fs := flag.NewFlagSet("navroute", flag.ContinueOnError)
	fs.StringVar(&o.RoutePath, "route", "", "path to the route JSON file")
	fs.StringVar(&o.ConfigPath, "config", "", "path to an analysis config JSON file (optional)")
	fs.StringVar(&o.Mode, "mode", "", "smoothing mode: arithmetic, harmonic or none (overrides config)")
	fs.StringVar(&o.KernelScale, "kernel-scale", "", "kernel width preset: small, medium or large (overrides config)")
	fs.Float64Var(&o.MaxDensity, "max-density", 0, "density ceiling in systems per cubic ly (overrides config)")
	fs.Float64Var(&o.MaxRange, "max-range", 0, "maximum jump range in ly (overrides the route file)")
	fs.StringVar(&o.OutDir, "out", "navroute-out", "output directory")
	fs.StringVar(&o.Formats, "formats", "csv,json", "comma separated output formats: csv, json, png, html")
	fs.BoolVar(&o.Debug, "debug", false, "log per-sample smoothing details")
	fs.BoolVar(&o.ShowVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if o.ShowVersion {
		return o, nil
	}
	if o.RoutePath == "" {
		if fs.NArg() != 1 {
			return Options{}, fmt.Errorf("-route is required")
		}
		o.RoutePath = fs.Arg(0)
	}
	if o.MaxDensity < 0 {
		return Options{}, fmt.Errorf("-max-density must be positive, got %v", o.MaxDensity)
	}
	if o.MaxRange < 0 {
		return Options{}, fmt.Errorf("-max-range must be positive, got %v", o.MaxRange)
	}
	return o, nil
}
