// Package density estimates local point-feature density around a route leg.
//
// The estimate comes from two spheres: one of radius maxRange centred on the
// leg's origin, and one centred on the route's target whose radius is the
// distance from the leg's destination to that target. The caps cut from each
// sphere by the radical plane form a lens; the reciprocal of the lens volume
// is the density figure.
package density

import (
	"fmt"
	"math"

	"github.com/banshee-data/navroute/internal/vecmath"
)

// Estimate is the result of a single leg's density estimation. The cap
// heights and volumes are kept for diagnostics.
type Estimate struct {
	Density  float64
	Centroid vecmath.Coordinate

	// Separation is the distance between the two sphere centres.
	Separation float64
	// RadiusOrigin and RadiusTarget are the sphere radii.
	RadiusOrigin float64
	RadiusTarget float64
	// CapHeightOrigin and CapHeightTarget are h1 and h2.
	CapHeightOrigin float64
	CapHeightTarget float64
	// ExcludedVolume is the summed cap volume.
	ExcludedVolume float64
}

// capVolume returns the volume of a spherical cap of height h on a sphere of
// radius r.
func capVolume(h, r float64) float64 {
	return math.Pi * h * h * (3*r - h) / 3
}

// Compute estimates the density for the leg origin -> destination with the
// route target and the maximum range. Degenerate inputs (coincident origin
// and target, non-positive radii, zero excluded volume) return
// vecmath.ErrDegenerateGeometry rather than an infinite density.
func Compute(origin, destination, target vecmath.Coordinate, maxRange float64) (Estimate, error) {
	if !(maxRange > 0) || math.IsInf(maxRange, 0) {
		return Estimate{}, fmt.Errorf("max range %v must be positive and finite: %w", maxRange, vecmath.ErrDegenerateGeometry)
	}

	d := vecmath.Distance(origin, target)
	if d == 0 {
		return Estimate{}, fmt.Errorf("origin coincides with target: %w", vecmath.ErrDegenerateGeometry)
	}

	r1 := maxRange
	r2 := vecmath.Distance(destination, target)

	// Distances from each centre to the radical plane along the centre line.
	d1 := (d*d + r1*r1 - r2*r2) / (2 * d)
	d2 := (d*d + r2*r2 - r1*r1) / (2 * d)

	h1 := r1 - d1
	h2 := r2 - d2

	volEx := capVolume(h1, r1) + capVolume(h2, r2)
	if !(volEx > 0) {
		return Estimate{}, fmt.Errorf("excluded volume %g is not positive: %w", volEx, vecmath.ErrDegenerateGeometry)
	}

	density := 1 / volEx
	if math.IsInf(density, 0) || math.IsNaN(density) {
		return Estimate{}, fmt.Errorf("density not finite (volume %g): %w", volEx, vecmath.ErrDegenerateGeometry)
	}

	dir, err := vecmath.Unit(vecmath.Subtract(target, origin))
	if err != nil {
		return Estimate{}, fmt.Errorf("centroid direction: %w", err)
	}
	hc := (h1 + h2) / 2
	dc := maxRange - hc
	centroid := vecmath.Add(origin, vecmath.Scale(dir, dc))

	return Estimate{
		Density:         density,
		Centroid:        centroid,
		Separation:      d,
		RadiusOrigin:    r1,
		RadiusTarget:    r2,
		CapHeightOrigin: h1,
		CapHeightTarget: h2,
		ExcludedVolume:  volEx,
	}, nil
}
