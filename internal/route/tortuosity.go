package route

// TortuosityStatus tags whether a Tortuosity value carries real data.
type TortuosityStatus int

// TortuosityInactive marks a slot that no pass computes yet.
const TortuosityInactive TortuosityStatus = iota

// Tortuosity is a reserved per-Sample slot for path tortuosity at one kernel
// scale. No pass fills it in; every value is zero and TortuosityInactive.
type Tortuosity struct {
	Status             TortuosityStatus
	Tortuosity         float64
	Derivative         float64
	DerivativeIntegral float64
}

// Active reports whether the slot holds computed values.
func (t Tortuosity) Active() bool {
	return t.Status != TortuosityInactive
}
