// Package bundle assembles the five generated resources into one coherent
// manifest bundle and verifies cross-document consistency before returning it.
package bundle

import (
	"github.com/distribution/reference"
	appsv1 "k8s.io/api/apps/v1"
	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"

	monitoringv1 "github.com/prometheus-operator/prometheus-operator/pkg/apis/monitoring/v1"

	"github.com/performance-portal/goldenpath/pkg/autoscaling"
	"github.com/performance-portal/goldenpath/pkg/errors"
	"github.com/performance-portal/goldenpath/pkg/identity"
	"github.com/performance-portal/goldenpath/pkg/observability"
	"github.com/performance-portal/goldenpath/pkg/profile"
	"github.com/performance-portal/goldenpath/pkg/sizing"
)

// Request is the declarative input to a derivation. It is what the CLI flags
// and the HTTP API body decode into.
type Request struct {
	Name      string  `json:"name" yaml:"name"`
	Namespace string  `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Language  string  `json:"lang" yaml:"lang"`
	Image     string  `json:"image" yaml:"image"`
	TargetRPS float64 `json:"rps" yaml:"rps"`
	LatencyMs float64 `json:"latencyMs" yaml:"latencyMs"`
	Tier      string  `json:"tier" yaml:"tier"`
}

// Derived carries the intermediate values the manifests were computed from.
// Exposed so callers (and the consistency pass) can inspect the numbers
// without reparsing quantities out of the objects.
type Derived struct {
	Profile   *profile.LanguageProfile `json:"profile" yaml:"profile"`
	Intent    sizing.Intent            `json:"intent" yaml:"intent"`
	Resources sizing.ResourceSpec      `json:"resources" yaml:"resources"`
	Capacity  sizing.CapacityEstimate  `json:"capacity" yaml:"capacity"`
	Policy    autoscaling.Policy       `json:"policy" yaml:"policy"`
}

// Bundle is the final aggregate of generated resources, all keyed by the same
// identity and mutually referencing identical selectors and metric names.
type Bundle struct {
	Identity identity.Identity `json:"identity" yaml:"identity"`
	Derived  Derived           `json:"derived" yaml:"derived"`

	Deployment     *appsv1.Deployment                      `json:"deployment" yaml:"deployment"`
	Service        *corev1.Service                         `json:"service" yaml:"service"`
	Autoscaler     *autoscalingv2.HorizontalPodAutoscaler  `json:"hpa" yaml:"hpa"`
	ServiceMonitor *monitoringv1.ServiceMonitor            `json:"serviceMonitor" yaml:"serviceMonitor"`
	Dashboard      *observability.Dashboard                `json:"dashboard" yaml:"dashboard"`
}

// validate re-checks the request fields the engine owns. The CLI and HTTP
// layers validate earlier; this is the engine's own gate.
func (r *Request) validate() error {
	if r.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "app name is required").
			WithDetail("field", "name")
	}
	if r.Image == "" {
		return errors.New(errors.ErrCodeInvalidInput, "container image is required").
			WithDetail("field", "image")
	}
	if _, err := reference.ParseNormalizedNamed(r.Image); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput,
			"container image %q is not a valid image reference", r.Image).
			WithDetail("field", "image")
	}
	return nil
}
