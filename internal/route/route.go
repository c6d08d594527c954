// Package route turns an ordered list of waypoints into per-leg density
// Samples and smooths them along the route.
//
// A Route is built in two passes. Pass one creates one Sample per leg,
// except the final leg, estimating each leg's density against the route's
// end point. Pass two runs the kernel smoother over every Sample. After that
// the Route is read-only.
package route

import (
	"fmt"

	"github.com/banshee-data/navroute/internal/monitoring"
	"github.com/banshee-data/navroute/internal/vecmath"
)

// Waypoint is anything with a 3D position.
type Waypoint interface {
	Position() vecmath.Coordinate
}

// Point is a bare coordinate usable as a Waypoint.
type Point vecmath.Coordinate

// Position implements Waypoint.
func (p Point) Position() vecmath.Coordinate { return vecmath.Coordinate(p) }

// Points wraps coordinates as Waypoints.
func Points(coords ...vecmath.Coordinate) []Point {
	pts := make([]Point, len(coords))
	for i, c := range coords {
		pts[i] = Point(c)
	}
	return pts
}

// Route owns the ordered Samples of one route.
type Route struct {
	settings    Settings
	maxRange    float64
	kernelWidth float64
	start       vecmath.Coordinate
	end         vecmath.Coordinate
	samples     []Sample
}

// New runs the first pass: it validates the input and builds every Sample.
// Smoothed densities equal raw densities until Smooth is called. On any
// error no Route is returned.
func New[W Waypoint](waypoints []W, maxRange float64, settings Settings) (*Route, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 waypoints, got %d", ErrInsufficientRoute, len(waypoints))
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if !positiveFinite(maxRange) {
		return nil, fmt.Errorf("%w: max range must be positive, got %v", ErrInvalidSettings, maxRange)
	}

	r := &Route{
		settings:    settings,
		maxRange:    maxRange,
		kernelWidth: maxRange * settings.KernelMultiplier,
		start:       waypoints[0].Position(),
		end:         waypoints[len(waypoints)-1].Position(),
	}

	// The final leg has no Sample.
	r.samples = make([]Sample, 0, max(len(waypoints)-2, 0))
	for i := 0; i+2 < len(waypoints); i++ {
		s, err := NewSample(waypoints[i].Position(), waypoints[i+1].Position(), r.start, r.end, maxRange, settings.MaximumDensity)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i, err)
		}
		r.samples = append(r.samples, s)
	}

	clamped := 0
	for i := range r.samples {
		if r.samples[i].clamped {
			clamped++
		}
	}
	if clamped > 0 {
		monitoring.Logf("%d of %d samples clamped to maximum density %g", clamped, len(r.samples), settings.MaximumDensity)
	}
	return r, nil
}

// Build runs both passes and returns a smoothed Route.
func Build[W Waypoint](waypoints []W, maxRange float64, settings Settings) (*Route, error) {
	r, err := New(waypoints, maxRange, settings)
	if err != nil {
		return nil, err
	}
	if err := r.Smooth(); err != nil {
		return nil, err
	}
	return r, nil
}

// Smoother returns a smoother configured for this Route.
func (r *Route) Smoother() *Smoother {
	return NewSmoother(r.settings, r.kernelWidth)
}

// Smooth runs the second pass with the Route's configured mode.
func (r *Route) Smooth() error {
	return r.Smoother().Smooth(r.samples)
}

// ResetSmoothed restores every smoothed density to the raw density.
func (r *Route) ResetSmoothed() {
	for i := range r.samples {
		r.samples[i].densitySmoothed = r.samples[i].density
	}
}

// Len returns the number of Samples.
func (r *Route) Len() int { return len(r.samples) }

// Sample returns a copy of Sample i.
func (r *Route) Sample(i int) Sample { return r.samples[i] }

// Samples returns a copy of all Samples in route order.
func (r *Route) Samples() []Sample {
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

func (r *Route) Settings() Settings        { return r.settings }
func (r *Route) MaxRange() float64         { return r.maxRange }
func (r *Route) KernelWidth() float64      { return r.kernelWidth }
func (r *Route) Start() vecmath.Coordinate { return r.start }
func (r *Route) End() vecmath.Coordinate   { return r.end }
func (r *Route) Mode() SmoothingMode       { return r.settings.Mode }

func (r *Route) String() string {
	return fmt.Sprintf("Route{samples=%d range=%g kernel=%g mode=%v}", len(r.samples), r.maxRange, r.kernelWidth, r.settings.Mode)
}
