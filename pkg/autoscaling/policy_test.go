package autoscaling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gperrors "github.com/performance-portal/goldenpath/pkg/errors"
	"github.com/performance-portal/goldenpath/pkg/profile"
	"github.com/performance-portal/goldenpath/pkg/sizing"
)

func intent(t *testing.T, rps float64, tier profile.Tier) sizing.Intent {
	t.Helper()
	i, err := sizing.NewIntent(rps, 200, tier)
	require.NoError(t, err)
	return i
}

func capacity(maxRPS float64) sizing.CapacityEstimate {
	return sizing.CapacityEstimate{MaxRequestsPerReplicaPerSecond: maxRPS}
}

func TestBuild_ProdWorkedExample(t *testing.T) {
	// 100 RPS against 100 RPS per-replica capacity: trigger at 70, ceiling at
	// ceil(100/70) doubled for burst.
	p, err := Build(intent(t, 100, profile.TierProd), capacity(100))
	require.NoError(t, err)

	assert.Equal(t, int32(2), p.MinReplicas)
	assert.Equal(t, int32(4), p.MaxReplicas)
	assert.Equal(t, int64(70), p.RPSPerReplicaTarget)
	assert.Equal(t, int32(70), p.CPUUtilizationTargetPercent)
}

func TestBuild_DevTierFloors(t *testing.T) {
	p, err := Build(intent(t, 100, profile.TierDev), capacity(100))
	require.NoError(t, err)

	assert.Equal(t, int32(1), p.MinReplicas)
	assert.Equal(t, int32(85), p.CPUUtilizationTargetPercent)
}

func TestBuild_TargetNeverExceedsCapacity(t *testing.T) {
	for _, maxRPS := range []float64{1, 1.5, 8.3, 70, 100, 999.9} {
		for _, tier := range profile.SupportedTiers() {
			p, err := Build(intent(t, 50, tier), capacity(maxRPS))
			require.NoError(t, err, "capacity=%v tier=%s", maxRPS, tier)

			assert.LessOrEqual(t, float64(p.RPSPerReplicaTarget), maxRPS,
				"trigger above capacity for capacity=%v", maxRPS)
			assert.GreaterOrEqual(t, p.RPSPerReplicaTarget, int64(1))
			assert.GreaterOrEqual(t, p.MaxReplicas, p.MinReplicas)
			assert.GreaterOrEqual(t, p.MinReplicas, int32(1))
		}
	}
}

func TestBuild_FractionalCapacityBelowOneIsInfeasible(t *testing.T) {
	// A replica that cannot serve one request per second has no usable
	// scaling target; the capacity cap must not floor the trigger to zero.
	for _, maxRPS := range []float64{0.1, 0.5, 0.99} {
		for _, tier := range profile.SupportedTiers() {
			_, err := Build(intent(t, 50, tier), capacity(maxRPS))
			require.Error(t, err, "capacity=%v tier=%s", maxRPS, tier)
			assert.Equal(t, gperrors.ErrCodeInfeasiblePolicy, gperrors.CodeOf(err),
				"capacity=%v tier=%s", maxRPS, tier)
		}
	}

	// Exactly one request per second is still servable.
	p, err := Build(intent(t, 1, profile.TierProd), capacity(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.RPSPerReplicaTarget)
}

func TestBuild_MaxReplicasMonotonicInRPS(t *testing.T) {
	var prev int32
	for _, rps := range []float64{10, 50, 100, 500, 1000} {
		p, err := Build(intent(t, rps, profile.TierProd), capacity(100))
		require.NoError(t, err, "rps=%v", rps)
		assert.GreaterOrEqual(t, p.MaxReplicas, prev, "maxReplicas shrank at rps=%v", rps)
		prev = p.MaxReplicas
	}
}

func TestBuild_InfeasibleBeyondReplicaCeiling(t *testing.T) {
	// 10 RPS per-replica capacity against a 10000 RPS peak needs far more
	// than the ceiling allows; this must fail loudly, never clamp.
	_, err := Build(intent(t, 10000, profile.TierProd), capacity(10))
	require.Error(t, err)
	assert.Equal(t, gperrors.ErrCodeInfeasiblePolicy, gperrors.CodeOf(err))
}

func TestBuild_RejectsNonPositiveCapacity(t *testing.T) {
	_, err := Build(intent(t, 100, profile.TierProd), capacity(0))
	require.Error(t, err)
	assert.Equal(t, gperrors.ErrCodeInvalidInput, gperrors.CodeOf(err))
}
