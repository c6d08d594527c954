package route

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/navroute/internal/monitoring"
	"github.com/banshee-data/navroute/internal/vecmath"
)

func bentRoute() []Point {
	return Points(
		vecmath.Coordinate{X: 0},
		vecmath.Coordinate{X: 8},
		vecmath.Coordinate{X: 14, Y: 6},
		vecmath.Coordinate{X: 20, Y: 12, Z: 3},
		vecmath.Coordinate{X: 30, Y: 12, Z: 3},
		vecmath.Coordinate{X: 40, Y: 15},
		vecmath.Coordinate{X: 50, Y: 15},
	)
}

func straightRoute(n int, spacing float64) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: float64(i) * spacing}
	}
	return pts
}

func TestSmoothBentRoute(t *testing.T) {
	tests := []struct {
		mode SmoothingMode
		want []float64
	}{
		{ModeArithmetic, []float64{0.021518153456476306, 0.018409700100580895, 0.02895484342865364, 0.04344116522077348, 0.05028520640542083}},
		{ModeHarmonic, []float64{0.02143707284210298, 0.017841510786917394, 0.02279082507235883, 0.03881302559169982, 0.05023300460060649}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			r, err := Build(bentRoute(), 9, settingsWithMode(tt.mode))
			require.NoError(t, err)
			require.Equal(t, len(tt.want), r.Len())
			for i, want := range tt.want {
				s := r.Sample(i)
				assert.InEpsilon(t, want, s.DensitySmoothed(), 1e-9, "sample %d", i)
			}
		})
	}
}

func TestSmoothBentRouteWindows(t *testing.T) {
	r, err := New(bentRoute(), 9, DefaultSettings())
	require.NoError(t, err)
	sm := r.Smoother()
	samples := r.Samples()

	wantEffective := []float64{18.98, 21.96, 21.96, 21.842780491200216, 10.98}
	for i, want := range wantEffective {
		w, err := sm.Window(samples, i)
		require.NoError(t, err)
		assert.InDelta(t, want, w.Effective(), 1e-9, "sample %d", i)
		assert.Greater(t, w.Effective(), 0.0)
		assert.LessOrEqual(t, w.Effective(), w.KernelWidth+1e-12)
	}

	// The last Sample integrates nothing beyond its destination.
	w, err := sm.Window(samples, len(samples)-1)
	require.NoError(t, err)
	assert.Equal(t, sm.KernelWidth/2, w.RemainingForward)
	assert.Equal(t, samples[len(samples)-1].Destination(), w.Center)

	_, err = sm.Window(samples, len(samples))
	assert.Error(t, err)
}

func TestSmoothSingleSampleUsesLastIndexBranch(t *testing.T) {
	// 3 waypoints give one Sample; the kernel (21.96) is wider than the route (20).
	wps := Points(vecmath.Coordinate{}, vecmath.Coordinate{X: 10}, vecmath.Coordinate{X: 20})
	for _, mode := range []SmoothingMode{ModeArithmetic, ModeHarmonic} {
		t.Run(mode.String(), func(t *testing.T) {
			r, err := New(wps, 9, settingsWithMode(mode))
			require.NoError(t, err)
			require.Equal(t, 1, r.Len())
			assert.Greater(t, r.KernelWidth(), 20.0)

			sm := r.Smoother()
			w, err := sm.Window(r.Samples(), 0)
			require.NoError(t, err)
			assert.InDelta(t, 10, w.Effective(), 1e-12)
			assert.Greater(t, w.Effective(), 0.0)
			assert.LessOrEqual(t, w.Effective(), r.KernelWidth())
			assert.Equal(t, vecmath.Coordinate{X: 10}, w.Center)

			require.NoError(t, r.Smooth())
			s := r.Sample(0)
			assert.InEpsilon(t, 0.06602797984797731, s.DensitySmoothed(), 1e-12)
			assert.InEpsilon(t, s.Density(), s.DensitySmoothed(), 1e-12)
		})
	}
}

func TestSmoothFlatSignalUnchanged(t *testing.T) {
	for _, mode := range []SmoothingMode{ModeArithmetic, ModeHarmonic} {
		t.Run(mode.String(), func(t *testing.T) {
			settings := settingsWithMode(mode)
			// Every raw estimate exceeds this ceiling, so the signal is flat.
			settings.MaximumDensity = 1e-4
			r, err := Build(straightRoute(12, 10), 8, settings)
			require.NoError(t, err)
			require.Equal(t, 10, r.Len())
			for i := 0; i < r.Len(); i++ {
				s := r.Sample(i)
				assert.Equal(t, 1e-4, s.Density())
				assert.InEpsilon(t, s.Density(), s.DensitySmoothed(), 1e-12, "sample %d", i)
			}
		})
	}
}

func TestSmoothIdempotent(t *testing.T) {
	for _, mode := range []SmoothingMode{ModeArithmetic, ModeHarmonic, ModeNone} {
		t.Run(mode.String(), func(t *testing.T) {
			r, err := Build(bentRoute(), 9, settingsWithMode(mode))
			require.NoError(t, err)
			first := r.Profile()

			r.ResetSmoothed()
			for i := 0; i < r.Len(); i++ {
				s := r.Sample(i)
				assert.Equal(t, s.Density(), s.DensitySmoothed())
			}

			require.NoError(t, r.Smooth())
			second := r.Profile()
			for i := range first {
				assert.Equal(t, math.Float64bits(first[i].DensitySmoothed), math.Float64bits(second[i].DensitySmoothed), "sample %d", i)
			}
		})
	}
}

func TestSmoothModeNoneLeavesRaw(t *testing.T) {
	r, err := Build(bentRoute(), 9, settingsWithMode(ModeNone))
	require.NoError(t, err)
	for i := 0; i < r.Len(); i++ {
		s := r.Sample(i)
		assert.Equal(t, s.Density(), s.DensitySmoothed())
		v, err := r.Smoother().SmoothAt(r.Samples(), i)
		require.NoError(t, err)
		assert.Equal(t, s.Density(), v)
	}
}

func TestSmoothDoesNotTouchRawDensity(t *testing.T) {
	r, err := New(bentRoute(), 9, DefaultSettings())
	require.NoError(t, err)
	before := r.Samples()
	require.NoError(t, r.Smooth())
	for i := range before {
		s := r.Sample(i)
		assert.Equal(t, before[i].Density(), s.Density())
	}
}

func TestStepTruncation(t *testing.T) {
	sm := &Smoother{Mode: ModeArithmetic, Exponent: 1}

	// Whole leg fits.
	area, left, done := sm.step(2, 4, 3, 5)
	assert.InDelta(t, 9, area, 1e-12)
	assert.InDelta(t, 2, left, 1e-12)
	assert.False(t, done)

	// Budget runs out a quarter of the way along: density at the cut is 2.5.
	area, left, done = sm.step(2, 4, 8, 2)
	assert.InDelta(t, 4.5, area, 1e-12)
	assert.Equal(t, 0.0, left)
	assert.True(t, done)

	// No budget.
	area, left, done = sm.step(2, 4, 8, 0)
	assert.Equal(t, 0.0, area)
	assert.Equal(t, 0.0, left)
	assert.True(t, done)

	sm.Mode = ModeHarmonic
	area, _, _ = sm.step(2, 4, 3, 5)
	assert.InDelta(t, 1, area, 1e-12)
}

func TestWalkLegCap(t *testing.T) {
	original := monitoring.Logf
	defer func() { monitoring.Logf = original }()
	var logged []string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, v...))
	})

	settings := DefaultSettings()
	settings.MaximumDensity = 1e-6
	settings.MaxKernelLegs = 2
	// Unit legs inside a kernel of 48.8; the far final waypoint keeps every
	// leg's lens well formed.
	wps := append(straightRoute(60, 1), Point{X: 200})
	r, err := New(wps, 20, settings)
	require.NoError(t, err)

	sm := r.Smoother()
	area, left := sm.walkBackward(r.Samples(), 30, 24.4)
	assert.InDelta(t, 2e-6, area, 1e-18)
	assert.InDelta(t, 22.4, left, 1e-12)
	assert.NotEmpty(t, logged)

	area, left = sm.walkForward(r.Samples(), 10, 24.4)
	assert.InDelta(t, 2e-6, area, 1e-18)
	assert.InDelta(t, 22.4, left, 1e-12)
}
