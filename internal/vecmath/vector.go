// Package vecmath provides the 3D vector arithmetic used by the density
// estimator and the kernel smoother. Coordinates are gonum r3 vectors; the
// helpers here add the projection and leg-walking operations on top.
package vecmath

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerateGeometry is returned when an operation needs a non-zero
// length, volume or direction and the input does not provide one.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Coordinate is a position (or displacement) in 3D space.
type Coordinate = r3.Vec

// Subtract returns a - b.
func Subtract(a, b Coordinate) Coordinate { return r3.Sub(a, b) }

// Add returns a + b.
func Add(a, b Coordinate) Coordinate { return r3.Add(a, b) }

// Scale returns v scaled by s.
func Scale(v Coordinate, s float64) Coordinate { return r3.Scale(s, v) }

// Magnitude returns the Euclidean length of v.
func Magnitude(v Coordinate) float64 { return r3.Norm(v) }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Coordinate) float64 { return r3.Norm(r3.Sub(b, a)) }

// Dot returns the dot product of a and b.
func Dot(a, b Coordinate) float64 { return r3.Dot(a, b) }

// Unit returns the unit vector in the direction of v. A zero vector has no
// direction and yields ErrDegenerateGeometry.
func Unit(v Coordinate) (Coordinate, error) {
	mag := r3.Norm(v)
	if mag == 0 {
		return Coordinate{}, fmt.Errorf("unit vector of zero-length vector: %w", ErrDegenerateGeometry)
	}
	return r3.Scale(1/mag, v), nil
}

// ScalarProjection returns the signed length of a projected onto b,
// dot(a,b)/|b|.
func ScalarProjection(a, b Coordinate) (float64, error) {
	mag := r3.Norm(b)
	if mag == 0 {
		return 0, fmt.Errorf("scalar projection onto zero-length vector: %w", ErrDegenerateGeometry)
	}
	return r3.Dot(a, b) / mag, nil
}

// FractionalScalarProjection returns dot(a,b)/|b|², the projection of a onto
// b expressed as a multiple of b.
func FractionalScalarProjection(a, b Coordinate) (float64, error) {
	mag2 := r3.Norm2(b)
	if mag2 == 0 {
		return 0, fmt.Errorf("fractional projection onto zero-length vector: %w", ErrDegenerateGeometry)
	}
	return r3.Dot(a, b) / mag2, nil
}

// VectorProjection returns the component of a that lies along b.
func VectorProjection(a, b Coordinate) (Coordinate, error) {
	f, err := FractionalScalarProjection(a, b)
	if err != nil {
		return Coordinate{}, err
	}
	return r3.Scale(f, b), nil
}

// PointAlongLeg walks distance from origin towards destination. It returns
// the reached point and the distance still left to destination; remaining is
// negative when the point overshoots destination.
func PointAlongLeg(origin, destination Coordinate, distance float64) (point Coordinate, remaining float64, err error) {
	leg := r3.Sub(destination, origin)
	dir, err := Unit(leg)
	if err != nil {
		return Coordinate{}, 0, fmt.Errorf("point along leg: %w", err)
	}
	point = r3.Add(origin, r3.Scale(distance, dir))
	return point, r3.Norm(leg) - distance, nil
}
