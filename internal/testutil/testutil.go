// Package testutil provides shared test utilities and route fixtures.
package testutil

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/banshee-data/navroute/internal/route"
	"github.com/banshee-data/navroute/internal/vecmath"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertFloatNear fails the test if got and want differ by more than tol.
func AssertFloatNear(t testing.TB, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Errorf("got %v, want %v (±%v)", got, want, tol)
	}
}

// StraightRoute returns n waypoints along +X, spacing apart, starting at the
// origin.
func StraightRoute(n int, spacing float64) []route.Point {
	pts := make([]route.Point, n)
	for i := range pts {
		pts[i] = route.Point{X: float64(i) * spacing}
	}
	return pts
}

// Waypoints wraps [x, y, z] triples as route points.
func Waypoints(xyz ...[3]float64) []route.Point {
	pts := make([]route.Point, len(xyz))
	for i, c := range xyz {
		pts[i] = route.Point(vecmath.Coordinate{X: c[0], Y: c[1], Z: c[2]})
	}
	return pts
}

// RouteJSON renders waypoints as a route file with generated system names.
func RouteJSON(maxRange float64, pts []route.Point) []byte {
	type system struct {
		StarSystem string     `json:"StarSystem"`
		StarPos    [3]float64 `json:"StarPos"`
	}
	file := struct {
		MaxRange float64  `json:"MaxRange"`
		Route    []system `json:"Route"`
	}{MaxRange: maxRange}
	for i, p := range pts {
		file.Route = append(file.Route, system{
			StarSystem: fmt.Sprintf("SYS-%03d", i),
			StarPos:    [3]float64{p.X, p.Y, p.Z},
		})
	}
	data, err := json.Marshal(file)
	if err != nil {
		panic(err)
	}
	return data
}
