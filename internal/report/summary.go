package report

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/navroute/internal/route"
)

// Summary holds aggregate statistics of a density profile. Standard
// deviations are zero for fewer than two Samples.
type Summary struct {
	Samples    int     `json:"samples"`
	Clamped    int     `json:"clamped"`
	PathLength float64 `json:"path_length"`

	MeanDensity   float64 `json:"mean_density"`
	StdDevDensity float64 `json:"stddev_density"`
	MinDensity    float64 `json:"min_density"`
	MaxDensity    float64 `json:"max_density"`

	MeanSmoothed   float64 `json:"mean_smoothed"`
	StdDevSmoothed float64 `json:"stddev_smoothed"`
	MinSmoothed    float64 `json:"min_smoothed"`
	MaxSmoothed    float64 `json:"max_smoothed"`

	// PeakDistance is the distance along the route of the densest
	// smoothed Sample.
	PeakDistance float64 `json:"peak_distance"`
}

// Summarise computes the Summary of a Route's profile.
func Summarise(r *route.Route) Summary {
	samples := r.Samples()
	sum := Summary{
		Samples:    len(samples),
		PathLength: r.PathLength(),
	}
	if len(samples) == 0 {
		return sum
	}

	raw := make([]float64, len(samples))
	smoothed := make([]float64, len(samples))
	for i := range samples {
		s := &samples[i]
		raw[i] = s.Density()
		smoothed[i] = s.DensitySmoothed()
		if s.Clamped() {
			sum.Clamped++
		}
	}

	sum.MeanDensity, sum.StdDevDensity = meanStdDev(raw)
	sum.MinDensity, sum.MaxDensity = floats.Min(raw), floats.Max(raw)
	sum.MeanSmoothed, sum.StdDevSmoothed = meanStdDev(smoothed)
	sum.MinSmoothed, sum.MaxSmoothed = floats.Min(smoothed), floats.Max(smoothed)
	sum.PeakDistance = samples[floats.MaxIdx(smoothed)].DistanceAlongRoute()
	return sum
}

func meanStdDev(x []float64) (mean, std float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}
