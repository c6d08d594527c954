package route

// ProfilePoint is one row of the density profile.
type ProfilePoint struct {
	DistanceAlongRoute float64 `json:"distance_along_route"`
	Density            float64 `json:"density"`
	DensitySmoothed    float64 `json:"density_smoothed"`
}

// Profile returns the density profile in route order.
func (r *Route) Profile() []ProfilePoint {
	out := make([]ProfilePoint, len(r.samples))
	for i := range r.samples {
		s := &r.samples[i]
		out[i] = ProfilePoint{
			DistanceAlongRoute: s.distanceAlongRoute,
			Density:            s.density,
			DensitySmoothed:    s.densitySmoothed,
		}
	}
	return out
}

// PathLength returns the summed leg length of all Samples.
func (r *Route) PathLength() float64 {
	var total float64
	for i := range r.samples {
		total += r.samples[i].jumpDistance
	}
	return total
}
