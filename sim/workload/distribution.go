package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// DistSpec parameterizes a burst-time distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// BurstSampler generates burst-time samples.
type BurstSampler interface {
	// Sample returns a positive burst time (>= 1).
	Sample(rng *rand.Rand) int64
}

// ConstantSampler always returns the same burst time.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int64 {
	return s.value
}

// UniformSampler draws uniformly from [min, max].
type UniformSampler struct {
	min, max int64
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	return s.min + rng.Int63n(s.max-s.min+1)
}

// GaussianSampler produces clamped Gaussian burst times.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return s.min
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	result := int64(math.Round(clamped))
	if result < 1 {
		return 1
	}
	return result
}

// ExponentialSampler produces exponentially-distributed burst times.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	val := rng.ExpFloat64() * s.mean
	result := int64(math.Round(val))
	if result < 1 {
		return 1
	}
	return result
}

var validDistTypes = map[string]bool{
	"constant": true, "uniform": true, "gaussian": true, "exponential": true,
}

// NewBurstSampler creates a BurstSampler from a DistSpec.
func NewBurstSampler(spec DistSpec) (BurstSampler, error) {
	if !validDistTypes[spec.Type] {
		return nil, fmt.Errorf("unknown distribution type %q; valid: constant, uniform, gaussian, exponential", spec.Type)
	}
	for name, val := range spec.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("params.%s must be a finite number, got %f", name, val)
		}
	}
	switch spec.Type {
	case "constant":
		v, err := requireParam(spec, "value")
		if err != nil {
			return nil, err
		}
		if v < 1 {
			return nil, fmt.Errorf("constant value must be >= 1, got %v", v)
		}
		return &ConstantSampler{value: int64(v)}, nil
	case "uniform":
		lo, err := requireParam(spec, "min")
		if err != nil {
			return nil, err
		}
		hi, err := requireParam(spec, "max")
		if err != nil {
			return nil, err
		}
		if lo < 1 || hi < lo {
			return nil, fmt.Errorf("uniform requires 1 <= min <= max, got min=%v max=%v", lo, hi)
		}
		return &UniformSampler{min: int64(lo), max: int64(hi)}, nil
	case "gaussian":
		mean, err := requireParam(spec, "mean")
		if err != nil {
			return nil, err
		}
		stdDev, err := requireParam(spec, "std_dev")
		if err != nil {
			return nil, err
		}
		lo, err := requireParam(spec, "min")
		if err != nil {
			return nil, err
		}
		hi, err := requireParam(spec, "max")
		if err != nil {
			return nil, err
		}
		if stdDev < 0 || lo < 1 || hi < lo {
			return nil, fmt.Errorf("gaussian requires std_dev >= 0 and 1 <= min <= max")
		}
		return &GaussianSampler{mean: mean, stdDev: stdDev, min: int64(lo), max: int64(hi)}, nil
	default: // exponential
		mean, err := requireParam(spec, "mean")
		if err != nil {
			return nil, err
		}
		if mean <= 0 {
			return nil, fmt.Errorf("exponential mean must be positive, got %v", mean)
		}
		return &ExponentialSampler{mean: mean}, nil
	}
}

func requireParam(spec DistSpec, name string) (float64, error) {
	v, ok := spec.Params[name]
	if !ok {
		return 0, fmt.Errorf("%s distribution requires params.%s", spec.Type, name)
	}
	return v, nil
}
