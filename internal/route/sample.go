package route

import (
	"fmt"
	"math"

	"github.com/banshee-data/navroute/internal/density"
	"github.com/banshee-data/navroute/internal/vecmath"
)

// Sample is the per-leg record. All fields are fixed at construction except
// the smoothed density, which the smoother writes once.
type Sample struct {
	origin       vecmath.Coordinate
	destination  vecmath.Coordinate
	jumpVector   vecmath.Coordinate
	jumpDistance float64

	density  float64
	clamped  bool
	centroid vecmath.Coordinate

	distanceAlongRoute float64
	densitySmoothed    float64

	tortuosity [3]Tortuosity
}

// NewSample builds the Sample for the leg origin -> destination. The density
// is estimated against routeEnd and clamped to maximumDensity.
func NewSample(origin, destination, routeStart, routeEnd vecmath.Coordinate, maxRange, maximumDensity float64) (Sample, error) {
	jump := vecmath.Subtract(destination, origin)
	jumpDistance := vecmath.Magnitude(jump)
	if jumpDistance == 0 {
		return Sample{}, fmt.Errorf("zero-length leg at %v: %w", origin, ErrDegenerateGeometry)
	}

	est, err := density.Compute(origin, destination, routeEnd, maxRange)
	if err != nil {
		return Sample{}, fmt.Errorf("density estimate: %w", err)
	}

	d := est.Density
	clamped := false
	if d > maximumDensity {
		d = maximumDensity
		clamped = true
	}

	along, err := vecmath.ScalarProjection(vecmath.Subtract(routeStart, est.Centroid), vecmath.Subtract(routeEnd, routeStart))
	if err != nil {
		return Sample{}, fmt.Errorf("route start and end coincide: %w", err)
	}

	return Sample{
		origin:             origin,
		destination:        destination,
		jumpVector:         jump,
		jumpDistance:       jumpDistance,
		density:            d,
		clamped:            clamped,
		centroid:           est.Centroid,
		distanceAlongRoute: math.Abs(along),
		densitySmoothed:    d,
	}, nil
}

func (s Sample) Origin() vecmath.Coordinate      { return s.origin }
func (s Sample) Destination() vecmath.Coordinate { return s.destination }
func (s Sample) JumpVector() vecmath.Coordinate  { return s.jumpVector }
func (s Sample) JumpDistance() float64           { return s.jumpDistance }
func (s Sample) Centroid() vecmath.Coordinate    { return s.centroid }

// Density returns the raw (clamped) density.
func (s Sample) Density() float64 { return s.density }

// Clamped reports whether the raw estimate exceeded the density ceiling.
func (s Sample) Clamped() bool { return s.clamped }

// DistanceAlongRoute is the centroid's position projected onto the straight
// line from route start to route end.
func (s Sample) DistanceAlongRoute() float64 { return s.distanceAlongRoute }

// DensitySmoothed returns the smoothed density, or the raw density before
// smoothing has run.
func (s Sample) DensitySmoothed() float64 { return s.densitySmoothed }

// Tortuosity returns the reserved tortuosity slot for a kernel scale.
func (s Sample) Tortuosity(scale KernelScale) Tortuosity {
	if scale < KernelSmall || scale > KernelLarge {
		return Tortuosity{}
	}
	return s.tortuosity[scale]
}

// KernelCenter returns the smoothing window centre for this Sample given the
// following leg's destination. The centroid's progress along this leg is
// carried past the destination along the next leg's direction, so the window
// follows the path through a bend instead of the chord.
func (s Sample) KernelCenter(nextDestination vecmath.Coordinate) (vecmath.Coordinate, error) {
	progress, err := vecmath.ScalarProjection(vecmath.Subtract(s.centroid, s.origin), s.jumpVector)
	if err != nil {
		return vecmath.Coordinate{}, err
	}
	dir, err := vecmath.Unit(vecmath.Subtract(nextDestination, s.destination))
	if err != nil {
		return vecmath.Coordinate{}, fmt.Errorf("next leg direction: %w", err)
	}
	end := vecmath.Add(s.origin, s.jumpVector)
	return vecmath.Add(end, vecmath.Scale(dir, progress-s.jumpDistance)), nil
}
