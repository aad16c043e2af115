package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// ArrivalSpec configures the inter-arrival time process.
type ArrivalSpec struct {
	Process string  `yaml:"process"`  // "poisson", "constant" or "batch"
	MeanIAT float64 `yaml:"mean_iat"` // mean inter-arrival time in ticks
}

// ArrivalSampler generates inter-arrival times.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in ticks (>= 0).
	SampleIAT(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed inter-arrival times.
type PoissonSampler struct {
	meanIAT float64
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	return int64(math.Round(rng.ExpFloat64() * s.meanIAT))
}

// ConstantArrivalSampler produces evenly-spaced arrivals.
type ConstantArrivalSampler struct {
	iat int64
}

func (s *ConstantArrivalSampler) SampleIAT(_ *rand.Rand) int64 {
	return s.iat
}

var validArrivalProcesses = map[string]bool{
	"poisson": true, "constant": true, "batch": true,
}

// NewArrivalSampler creates an ArrivalSampler from an ArrivalSpec.
// "batch" makes every process arrive at tick 0.
func NewArrivalSampler(spec ArrivalSpec) (ArrivalSampler, error) {
	if !validArrivalProcesses[spec.Process] {
		return nil, fmt.Errorf("unknown arrival process %q; valid: poisson, constant, batch", spec.Process)
	}
	if math.IsNaN(spec.MeanIAT) || math.IsInf(spec.MeanIAT, 0) || spec.MeanIAT < 0 {
		return nil, fmt.Errorf("mean_iat must be a finite non-negative number, got %f", spec.MeanIAT)
	}
	switch spec.Process {
	case "poisson":
		return &PoissonSampler{meanIAT: spec.MeanIAT}, nil
	case "constant":
		return &ConstantArrivalSampler{iat: int64(math.Round(spec.MeanIAT))}, nil
	default:
		return &ConstantArrivalSampler{iat: 0}, nil
	}
}
