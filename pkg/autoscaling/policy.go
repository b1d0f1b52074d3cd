// Package autoscaling derives the HPA v2 policy numbers from the declared
// intent and the per-replica capacity estimate. The scale trigger is placed
// below the hard capacity ceiling so replicas increase before saturation.
package autoscaling

import (
	"math"

	"github.com/performance-portal/goldenpath/pkg/errors"
	"github.com/performance-portal/goldenpath/pkg/profile"
	"github.com/performance-portal/goldenpath/pkg/sizing"
)

// Policy constants. Like the sizing constants, these are named policy choices.
const (
	// UtilizationHeadroom places the per-replica RPS trigger below the
	// capacity estimate so scaling fires before replicas saturate.
	UtilizationHeadroom = 0.7

	// BurstFactor over-provisions the replica ceiling relative to the
	// declared peak, leaving room for bursts above it.
	BurstFactor = 2

	// MaxReplicaCeiling is the hard upper bound on maxReplicas. In the full
	// derivation the sizing ceilings trip first, since per-replica capacity
	// grows with the declared RPS; this bound guards direct callers that
	// supply their own capacity estimate.
	MaxReplicaCeiling = 100
)

// Policy is the derived autoscaling policy.
type Policy struct {
	MinReplicas int32 `json:"minReplicas" yaml:"minReplicas"`
	MaxReplicas int32 `json:"maxReplicas" yaml:"maxReplicas"`

	// CPUUtilizationTargetPercent is the resource-metric safety net.
	CPUUtilizationTargetPercent int32 `json:"cpuUtilizationTargetPercent" yaml:"cpuUtilizationTargetPercent"`

	// RPSPerReplicaTarget is the proactive pods-metric trigger. Always at or
	// below the capacity estimate it was derived from.
	RPSPerReplicaTarget int64 `json:"rpsPerReplicaTarget" yaml:"rpsPerReplicaTarget"`
}

// minReplicasForTier is the availability floor per tier.
func minReplicasForTier(t profile.Tier) int32 {
	if t == profile.TierDev {
		return 1
	}
	return 2
}

// cpuTargetForTier returns the CPU utilization target. Dev tolerates more
// throttling risk in exchange for fewer replicas.
func cpuTargetForTier(t profile.Tier) int32 {
	if t == profile.TierDev {
		return 85
	}
	return 70
}

// Build derives the autoscaling policy for the given intent and capacity.
func Build(intent sizing.Intent, capacity sizing.CapacityEstimate) (Policy, error) {
	if capacity.MaxRequestsPerReplicaPerSecond <= 0 {
		return Policy{}, errors.New(errors.ErrCodeInvalidInput,
			"capacity estimate must be positive, got %v", capacity.MaxRequestsPerReplicaPerSecond).
			WithDetail("field", "capacity")
	}

	rpsTarget := int64(math.Floor(capacity.MaxRequestsPerReplicaPerSecond * UtilizationHeadroom))
	if rpsTarget < 1 {
		rpsTarget = 1
	}
	if float64(rpsTarget) > capacity.MaxRequestsPerReplicaPerSecond {
		rpsTarget = int64(math.Floor(capacity.MaxRequestsPerReplicaPerSecond))
	}
	// A capacity below one request per second floors back to zero here; no
	// replica count can serve any declared rate at that point.
	if rpsTarget < 1 {
		return Policy{}, errors.New(errors.ErrCodeInfeasiblePolicy,
			"capacity estimate of %v RPS per replica cannot sustain one request per second",
			capacity.MaxRequestsPerReplicaPerSecond).
			WithDetail("capacity", capacity.MaxRequestsPerReplicaPerSecond)
	}

	minReplicas := minReplicasForTier(intent.Tier)

	maxReplicas := int64(math.Ceil(intent.TargetRPS/float64(rpsTarget))) * BurstFactor
	if maxReplicas < int64(minReplicas) {
		maxReplicas = int64(minReplicas)
	}
	if maxReplicas > MaxReplicaCeiling {
		return Policy{}, errors.New(errors.ErrCodeInfeasiblePolicy,
			"derived maxReplicas %d exceeds the replica ceiling of %d; with %v RPS per replica the declared peak of %v RPS is unreasonable",
			maxReplicas, MaxReplicaCeiling, rpsTarget, intent.TargetRPS).
			WithDetail("maxReplicas", maxReplicas).
			WithDetail("ceiling", MaxReplicaCeiling).
			WithDetail("rpsPerReplicaTarget", rpsTarget)
	}

	return Policy{
		MinReplicas:                 minReplicas,
		MaxReplicas:                 int32(maxReplicas),
		CPUUtilizationTargetPercent: cpuTargetForTier(intent.Tier),
		RPSPerReplicaTarget:         rpsTarget,
	}, nil
}
