// Package sizing derives per-replica resource requests/limits and a capacity
// estimate from a language profile and a declared scaling intent. The
// computation is pure: same inputs, same outputs, no I/O.
package sizing

import (
	"github.com/performance-portal/goldenpath/pkg/errors"
	"github.com/performance-portal/goldenpath/pkg/profile"
)

// MinLatencyMs is the floor for the declared P99 latency target. Anything
// tighter is outside what request-level autoscaling can meaningfully serve.
const MinLatencyMs = 10

// Intent is the user-declared scaling intent.
type Intent struct {
	// TargetRPS is the expected peak request rate across all replicas.
	TargetRPS float64 `json:"targetRPS" yaml:"targetRPS"`

	// TargetLatencyMs is the P99 latency target in milliseconds.
	TargetLatencyMs float64 `json:"targetLatencyMs" yaml:"targetLatencyMs"`

	Tier profile.Tier `json:"tier" yaml:"tier"`
}

// NewIntent validates and constructs a scaling intent.
func NewIntent(targetRPS, targetLatencyMs float64, tier profile.Tier) (Intent, error) {
	if targetRPS <= 0 {
		return Intent{}, errors.New(errors.ErrCodeInvalidInput,
			"target RPS must be positive, got %v", targetRPS).
			WithDetail("field", "rps")
	}
	if targetLatencyMs < MinLatencyMs {
		return Intent{}, errors.New(errors.ErrCodeInvalidInput,
			"target latency must be at least %dms, got %vms", MinLatencyMs, targetLatencyMs).
			WithDetail("field", "latency").
			WithDetail("floor", MinLatencyMs)
	}
	if !tier.IsValid() {
		return Intent{}, errors.New(errors.ErrCodeInvalidInput,
			"unknown tier %q, supported values: %v", tier, profile.SupportedTiers()).
			WithDetail("field", "tier")
	}
	return Intent{TargetRPS: targetRPS, TargetLatencyMs: targetLatencyMs, Tier: tier}, nil
}
