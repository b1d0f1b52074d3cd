package bundle

import (
	"log/slog"
	"time"

	"github.com/performance-portal/goldenpath/pkg/autoscaling"
	"github.com/performance-portal/goldenpath/pkg/errors"
	"github.com/performance-portal/goldenpath/pkg/identity"
	"github.com/performance-portal/goldenpath/pkg/manifest"
	"github.com/performance-portal/goldenpath/pkg/observability"
	"github.com/performance-portal/goldenpath/pkg/profile"
	"github.com/performance-portal/goldenpath/pkg/sizing"
)

// Assemble runs the full derivation for one request: profile lookup, sizing,
// autoscaling policy, observability, manifest construction, and a final
// cross-document consistency pass. It is pure and stateless across calls.
func Assemble(req *Request) (*Bundle, error) {
	start := time.Now()

	b, err := assemble(req)

	status := "success"
	if err != nil {
		status = "error"
	}
	bundleBuildTotal.WithLabelValues(status).Inc()
	bundleBuildDuration.Observe(time.Since(start).Seconds())

	return b, err
}

func assemble(req *Request) (*Bundle, error) {
	if req == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request cannot be nil")
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	id, err := identity.New(req.Name, req.Namespace)
	if err != nil {
		return nil, err
	}

	tier, err := profile.ParseTier(req.Tier)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid tier").
			WithDetail("field", "tier")
	}

	p, err := profile.Lookup(profile.Language(req.Language))
	if err != nil {
		return nil, err
	}

	intent, err := sizing.NewIntent(req.TargetRPS, req.LatencyMs, tier)
	if err != nil {
		return nil, err
	}

	res, capacity, err := sizing.Compute(p, intent)
	if err != nil {
		return nil, err
	}

	policy, err := autoscaling.Build(intent, capacity)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		Identity: id,
		Derived: Derived{
			Profile:   p,
			Intent:    intent,
			Resources: res,
			Capacity:  capacity,
			Policy:    policy,
		},
		Deployment:     manifest.BuildDeployment(id, p, req.Image, res, policy, tier),
		Service:        manifest.BuildService(id, tier),
		Autoscaler:     manifest.BuildHPA(id, policy, tier),
		ServiceMonitor: observability.BuildServiceMonitor(id),
		Dashboard:      observability.BuildDashboard(id),
	}

	// An inconsistent bundle must fail here, not after deployment.
	if err := Verify(b); err != nil {
		return nil, err
	}

	slog.Debug("bundle assembled",
		"app", id.Name,
		"namespace", id.Namespace,
		"tier", tier,
		"cpuRequest", res.CPURequestMillicores,
		"cpuLimit", res.CPULimitMillicores,
		"memoryRequest", res.MemoryRequestMiB,
		"memoryLimit", res.MemoryLimitMiB,
		"minReplicas", policy.MinReplicas,
		"maxReplicas", policy.MaxReplicas,
		"rpsPerReplicaTarget", policy.RPSPerReplicaTarget,
	)

	return b, nil
}
