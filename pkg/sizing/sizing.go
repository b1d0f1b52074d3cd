package sizing

import (
	"math"

	"github.com/performance-portal/goldenpath/pkg/errors"
	"github.com/performance-portal/goldenpath/pkg/profile"
)

// Derivation constants. These are policy choices, kept in one place so they
// can be reviewed and tuned without touching the algorithm.
const (
	// ReferenceLatencyMs anchors the latency headroom multiplier: a target at
	// the reference gets a 2x CPU limit, tighter targets get more.
	ReferenceLatencyMs = 200.0

	// MinLimitMultiplier and MaxLimitMultiplier bound the CPU limit headroom
	// applied on top of the request.
	MinLimitMultiplier = 1.2
	MaxLimitMultiplier = 3.0

	// MemoryLimitFactorProd keeps prod memory limits close to requests so
	// OOM behavior stays predictable under pressure.
	MemoryLimitFactorProd = 1.25

	// MemoryLimitFactorDev trades OOM predictability for lower requested cost.
	MemoryLimitFactorDev = 2.0
)

// tierSizing holds the per-tier sizing floors and ceilings.
type tierSizing struct {
	// assumedMinReplicas spreads the declared peak over an availability floor
	// when estimating per-replica load. Independent of the HPA replica count.
	assumedMinReplicas int64

	// minCPUMillicores is the smallest request worth scheduling.
	minCPUMillicores int64

	// maxLimitMultiplier caps the CPU request:limit ratio for the tier.
	maxLimitMultiplier float64

	memoryLimitFactor float64

	// Per-replica safety ceilings. Exceeding them means the input combination
	// is unreasonable for this tier, not that the math is wrong.
	maxCPULimitMillicores int64
	maxMemoryLimitMiB     int64
}

// sizingForTier is total over the tier enum.
func sizingForTier(t profile.Tier) tierSizing {
	switch t {
	case profile.TierDev:
		return tierSizing{
			assumedMinReplicas:    1,
			minCPUMillicores:      50,
			maxLimitMultiplier:    MaxLimitMultiplier,
			memoryLimitFactor:     MemoryLimitFactorDev,
			maxCPULimitMillicores: 2000,
			maxMemoryLimitMiB:     4096,
		}
	default: // prod
		return tierSizing{
			assumedMinReplicas:    2,
			minCPUMillicores:      100,
			maxLimitMultiplier:    2.0, // prod request:limit ratio bounded at 1:2
			memoryLimitFactor:     MemoryLimitFactorProd,
			maxCPULimitMillicores: 4000,
			maxMemoryLimitMiB:     8192,
		}
	}
}

// ResourceSpec is a per-replica resource envelope in canonical units.
type ResourceSpec struct {
	CPURequestMillicores int64 `json:"cpuRequestMillicores" yaml:"cpuRequestMillicores"`
	CPULimitMillicores   int64 `json:"cpuLimitMillicores" yaml:"cpuLimitMillicores"`
	MemoryRequestMiB     int64 `json:"memoryRequestMiB" yaml:"memoryRequestMiB"`
	MemoryLimitMiB       int64 `json:"memoryLimitMiB" yaml:"memoryLimitMiB"`
}

// CapacityEstimate is the sustained per-replica request rate implied by the
// CPU limit and the language's per-request cost.
type CapacityEstimate struct {
	MaxRequestsPerReplicaPerSecond float64 `json:"maxRequestsPerReplicaPerSecond" yaml:"maxRequestsPerReplicaPerSecond"`
}

// LimitMultiplier returns the latency-derived concurrency headroom applied to
// the CPU limit for the given tier. Tighter latency targets tolerate less
// queuing and therefore get more headroom; the result is bounded so limits
// cannot run away, and further capped by the tier's request:limit ratio.
func LimitMultiplier(targetLatencyMs float64, tier profile.Tier) float64 {
	m := 1.0 + ReferenceLatencyMs/targetLatencyMs
	m = math.Max(MinLimitMultiplier, math.Min(MaxLimitMultiplier, m))
	return math.Min(m, sizingForTier(tier).maxLimitMultiplier)
}

// Compute derives the per-replica resource spec and capacity estimate for the
// given profile and intent.
func Compute(p *profile.LanguageProfile, intent Intent) (ResourceSpec, CapacityEstimate, error) {
	ts := sizingForTier(intent.Tier)

	// Initial per-replica load estimate, spread over the tier's availability
	// floor. This sizes one replica; the HPA decides the real replica count.
	perReplicaRPS := intent.TargetRPS / float64(ts.assumedMinReplicas)

	cpuRequest := int64(math.Ceil(float64(p.CPUPerRequestMillicores) * perReplicaRPS))
	if cpuRequest < ts.minCPUMillicores {
		cpuRequest = ts.minCPUMillicores
	}

	mult := LimitMultiplier(intent.TargetLatencyMs, intent.Tier)
	cpuLimit := int64(math.Ceil(float64(cpuRequest) * mult))

	// Little's-law estimate of in-flight requests per replica.
	concurrency := perReplicaRPS * intent.TargetLatencyMs / 1000.0
	memRequest := p.BaseMemoryMiB + int64(math.Ceil(float64(p.MemoryPerRequestMiB)*concurrency))
	memLimit := int64(math.Ceil(float64(memRequest) * ts.memoryLimitFactor))

	if cpuLimit > ts.maxCPULimitMillicores {
		return ResourceSpec{}, CapacityEstimate{}, errors.New(errors.ErrCodeInfeasibleSizing,
			"derived CPU limit %dm exceeds the %s tier per-replica ceiling of %dm",
			cpuLimit, intent.Tier, ts.maxCPULimitMillicores).
			WithDetail("cpuLimitMillicores", cpuLimit).
			WithDetail("ceilingMillicores", ts.maxCPULimitMillicores).
			WithDetail("tier", string(intent.Tier))
	}
	if memLimit > ts.maxMemoryLimitMiB {
		return ResourceSpec{}, CapacityEstimate{}, errors.New(errors.ErrCodeInfeasibleSizing,
			"derived memory limit %dMi exceeds the %s tier per-replica ceiling of %dMi",
			memLimit, intent.Tier, ts.maxMemoryLimitMiB).
			WithDetail("memoryLimitMiB", memLimit).
			WithDetail("ceilingMiB", ts.maxMemoryLimitMiB).
			WithDetail("tier", string(intent.Tier))
	}

	spec := ResourceSpec{
		CPURequestMillicores: cpuRequest,
		CPULimitMillicores:   cpuLimit,
		MemoryRequestMiB:     memRequest,
		MemoryLimitMiB:       memLimit,
	}
	if err := spec.check(); err != nil {
		return ResourceSpec{}, CapacityEstimate{}, err
	}

	est := CapacityEstimate{
		MaxRequestsPerReplicaPerSecond: float64(cpuLimit) / float64(p.CPUPerRequestMillicores),
	}
	return spec, est, nil
}

// check enforces the request<=limit invariant. The derivation guarantees it;
// this guards against future edits to the formulas.
func (s ResourceSpec) check() error {
	if s.CPURequestMillicores <= 0 || s.MemoryRequestMiB <= 0 {
		return errors.New(errors.ErrCodeInfeasibleSizing,
			"derived non-positive resource request: cpu=%dm memory=%dMi",
			s.CPURequestMillicores, s.MemoryRequestMiB)
	}
	if s.CPURequestMillicores > s.CPULimitMillicores {
		return errors.New(errors.ErrCodeInfeasibleSizing,
			"cpu request %dm exceeds limit %dm", s.CPURequestMillicores, s.CPULimitMillicores)
	}
	if s.MemoryRequestMiB > s.MemoryLimitMiB {
		return errors.New(errors.ErrCodeInfeasibleSizing,
			"memory request %dMi exceeds limit %dMi", s.MemoryRequestMiB, s.MemoryLimitMiB)
	}
	return nil
}
