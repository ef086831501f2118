// Package reward implements online reward shaping for web-agent rollouts:
// a Welford running normalizer and a potential-based reward blender that
// combines a binary task-success signal with a learned scalar reward.
//
// Blender and RunningNorm hold unguarded per-episode state and are NOT safe
// for concurrent use. Allocate one instance per rollout worker.
package reward

import "math"

const (
	// countEpsilon seeds the observation count so the first Normalize call
	// never divides by zero.
	countEpsilon = 1e-4

	// stdEpsilon clamps the standard-deviation denominator.
	stdEpsilon = 1e-8
)

// RunningNorm maintains an online mean/variance estimate over a scalar
// stream using Welford's algorithm. State is monotonic; it is never reset
// except by constructing a new instance.
type RunningNorm struct {
	count float64
	mean  float64
	m2    float64 // sum of squared deviations
}

// NewRunningNorm returns a normalizer with an epsilon-seeded count.
func NewRunningNorm() *RunningNorm {
	return &RunningNorm{count: countEpsilon}
}

// Update incorporates one observation.
func (n *RunningNorm) Update(x float64) {
	n.count++
	delta := x - n.mean
	n.mean += delta / n.count
	n.m2 += delta * (x - n.mean)
}

// Normalize returns (x - mean) / (std + eps) using the sample standard
// deviation. With fewer than two observations the variance term is zero and
// the epsilon denominator keeps the result finite.
func (n *RunningNorm) Normalize(x float64) float64 {
	denom := n.count - 1
	if denom < countEpsilon {
		denom = countEpsilon
	}
	std := math.Sqrt(n.m2 / denom)
	return (x - n.mean) / (std + stdEpsilon)
}

// Count returns the number of observations plus the epsilon seed.
func (n *RunningNorm) Count() float64 { return n.count }

// Mean returns the running mean.
func (n *RunningNorm) Mean() float64 { return n.mean }

// Var returns the running sample variance.
func (n *RunningNorm) Var() float64 {
	denom := n.count - 1
	if denom < countEpsilon {
		return 0
	}
	return n.m2 / denom
}
