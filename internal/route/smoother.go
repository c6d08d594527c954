package route

import (
	"fmt"
	"math"

	"github.com/banshee-data/navroute/internal/monitoring"
	"github.com/banshee-data/navroute/internal/vecmath"
)

// Smoother computes a windowed moving average of Sample densities along the
// route. Densities are treated as values at each Sample's destination and
// interpolated linearly along the legs between them; the window is KernelWidth
// long in route distance and is truncated at the ends of the route.
type Smoother struct {
	Mode        SmoothingMode
	KernelWidth float64
	Exponent    float64
	MaxLegs     int
}

// Window is the integration result for one Sample.
type Window struct {
	// Area is the integrated density (arithmetic) or reciprocal density
	// (harmonic) over the covered part of the window.
	Area float64
	// RemainingBackward and RemainingForward are the unused half-window
	// budgets after truncation.
	RemainingBackward float64
	RemainingForward  float64
	KernelWidth       float64
	// Center is the window centre used for this Sample.
	Center vecmath.Coordinate
}

// Effective returns the covered window length.
func (w Window) Effective() float64 {
	return w.KernelWidth - (w.RemainingBackward + w.RemainingForward)
}

// NewSmoother builds a Smoother from route settings and a kernel width.
func NewSmoother(settings Settings, kernelWidth float64) *Smoother {
	return &Smoother{
		Mode:        settings.Mode,
		KernelWidth: kernelWidth,
		Exponent:    settings.HarmonicExponent,
		MaxLegs:     settings.MaxKernelLegs,
	}
}

// Smooth writes the smoothed density of every Sample. In ModeNone the
// smoothed densities are left untouched.
func (sm *Smoother) Smooth(samples []Sample) error {
	if sm.Mode == ModeNone {
		return nil
	}
	values := make([]float64, len(samples))
	for i := range samples {
		v, err := sm.SmoothAt(samples, i)
		if err != nil {
			return fmt.Errorf("smoothing sample %d: %w", i, err)
		}
		values[i] = v
	}
	// All values are computed from raw densities, so write them only once
	// every Sample has succeeded.
	for i := range samples {
		samples[i].densitySmoothed = values[i]
	}
	return nil
}

// SmoothAt returns the smoothed density for Sample i without modifying it.
func (sm *Smoother) SmoothAt(samples []Sample, i int) (float64, error) {
	if sm.Mode == ModeNone {
		return samples[i].density, nil
	}
	w, err := sm.Window(samples, i)
	if err != nil {
		return 0, err
	}
	eff := w.Effective()
	if !(eff > 0) || !(w.Area > 0) {
		return 0, fmt.Errorf("empty smoothing window (effective %g, area %g): %w", eff, w.Area, ErrDegenerateGeometry)
	}

	var v float64
	switch sm.Mode {
	case ModeHarmonic:
		v = math.Pow(eff/w.Area, 1/sm.Exponent)
	default:
		v = w.Area / eff
	}
	monitoring.Debugf("smooth[%d] centre=%v area=%g window=%g/%g value=%g", i, w.Center, w.Area, eff, w.KernelWidth, v)
	return v, nil
}

// Window integrates the kernel around Sample i.
func (sm *Smoother) Window(samples []Sample, i int) (Window, error) {
	n := len(samples)
	if i < 0 || i >= n {
		return Window{}, fmt.Errorf("sample index %d out of range [0,%d)", i, n)
	}
	half := sm.KernelWidth / 2
	w := Window{KernelWidth: sm.KernelWidth}

	if i == n-1 {
		// Nothing beyond the last Sample's destination is integrated.
		cur := &samples[i]
		w.Center = cur.destination
		back := half - vecmath.Distance(w.Center, cur.destination)
		area, left := sm.walkBackward(samples, i, back)
		w.Area = area
		w.RemainingBackward = left
		w.RemainingForward = half
		return w, nil
	}

	cur, next := &samples[i], &samples[i+1]
	k, err := cur.KernelCenter(next.destination)
	if err != nil {
		return Window{}, err
	}

	// The centre lies on the line of the local leg; keep it on the segment.
	legLen := next.jumpDistance
	dir, err := vecmath.Unit(next.jumpVector)
	if err != nil {
		return Window{}, err
	}
	t := vecmath.Dot(vecmath.Subtract(k, cur.destination), dir)
	var toBack, toFwd float64
	switch {
	case t <= 0:
		t = 0
		k = cur.destination
		toBack, toFwd = 0, legLen
	case t >= legLen:
		t = legLen
		k = next.destination
		toBack, toFwd = legLen, 0
	default:
		toBack = vecmath.Distance(k, cur.destination)
		toFwd = vecmath.Distance(k, next.destination)
	}
	w.Center = k

	back := half - toBack
	fwd := half - toFwd
	var local float64
	if back >= 0 && fwd >= 0 {
		local = sm.legArea(cur.density, next.density, legLen)
	} else {
		// The local leg is longer than the half-window on at least one side:
		// split it at the centre and truncate each half.
		dk := cur.density + (next.density-cur.density)*(t/legLen)
		var a1, a2 float64
		a1, back, _ = sm.step(dk, cur.density, t, half)
		a2, fwd, _ = sm.step(dk, next.density, legLen-t, half)
		local = a1 + a2
	}

	backArea, backLeft := sm.walkBackward(samples, i, back)
	fwdArea, fwdLeft := sm.walkForward(samples, i+1, fwd)

	w.Area = local + backArea + fwdArea
	w.RemainingBackward = backLeft
	w.RemainingForward = fwdLeft
	return w, nil
}

// legArea is the contribution of a leg of the given length whose end
// densities are da and db.
func (sm *Smoother) legArea(da, db, length float64) float64 {
	avg := (da + db) / 2
	if sm.Mode == ModeHarmonic {
		return math.Pow(1/avg, sm.Exponent) * length
	}
	return avg * length
}

// step integrates one leg against the remaining budget. A leg that fits is
// added whole; otherwise the density is interpolated at the point where the
// budget runs out and only that part is added. done is true when the budget
// is exhausted.
func (sm *Smoother) step(da, db, length, budget float64) (area, left float64, done bool) {
	if budget <= 0 {
		return 0, budget, true
	}
	if budget > length {
		return sm.legArea(da, db, length), budget - length, false
	}
	dp := da + (db-da)*(budget/length)
	return sm.legArea(da, dp, budget), 0, true
}

// walkBackward integrates from Sample j's destination towards the route
// start. Each step covers Sample j's own leg; the first leg has no earlier
// estimate and holds d_0.
func (sm *Smoother) walkBackward(samples []Sample, j int, budget float64) (area, left float64) {
	left = budget
	for legs := 0; j >= 0; legs++ {
		if legs >= sm.MaxLegs {
			monitoring.Logf("kernel walk stopped after %d legs at sample %d", legs, j)
			return area, left
		}
		da := samples[j].density
		db := da
		if j > 0 {
			db = samples[j-1].density
		}
		a, l, done := sm.step(da, db, samples[j].jumpDistance, left)
		area += a
		left = l
		if done {
			return area, left
		}
		j--
	}
	return area, left
}

// walkForward integrates from Sample j's destination towards the route end.
// Each step covers Sample j+1's leg; the walk stops at the last Sample.
func (sm *Smoother) walkForward(samples []Sample, j int, budget float64) (area, left float64) {
	left = budget
	for legs := 0; j+1 < len(samples); legs++ {
		if legs >= sm.MaxLegs {
			monitoring.Logf("kernel walk stopped after %d legs at sample %d", legs, j)
			return area, left
		}
		a, l, done := sm.step(samples[j].density, samples[j+1].density, samples[j+1].jumpDistance, left)
		area += a
		left = l
		if done {
			return area, left
		}
		j++
	}
	return area, left
}
