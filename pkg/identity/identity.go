// Package identity holds the application identity shared by every generated
// resource. Labels, selectors and metric names are derived here once and
// threaded into each sub-builder, so the five documents of a bundle can never
// disagree on them.
package identity

import (
	"github.com/google/uuid"
	"k8s.io/apimachinery/pkg/util/validation"

	gperrors "github.com/performance-portal/goldenpath/pkg/errors"
)

const (
	// DefaultNamespace is used when the caller does not provide one.
	DefaultNamespace = "perf-test"

	// LabelManagedBy marks every generated resource with its generator.
	LabelManagedBy = "performance-portal"

	// LabelTier is the workload class label applied to all resources.
	LabelTier = "high-throughput"
)

// Identity is the immutable app identity keyed into every generated resource.
type Identity struct {
	Name      string `json:"name" yaml:"name"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// New validates name and namespace as DNS-1123 labels and returns an Identity.
func New(name, namespace string) (Identity, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return Identity{}, gperrors.New(gperrors.ErrCodeInvalidInput,
			"app name %q is not a valid DNS-1123 label", name).
			WithDetail("field", "name").
			WithDetail("errors", errs)
	}
	if errs := validation.IsDNS1123Label(namespace); len(errs) > 0 {
		return Identity{}, gperrors.New(gperrors.ErrCodeInvalidInput,
			"namespace %q is not a valid DNS-1123 label", namespace).
			WithDetail("field", "namespace").
			WithDetail("errors", errs)
	}
	return Identity{Name: name, Namespace: namespace}, nil
}

// SelectorLabels returns the minimal label set used as the pod selector.
// These must stay stable for the lifetime of a Deployment, so nothing beyond
// the app name goes in here.
func (id Identity) SelectorLabels() map[string]string {
	return map[string]string{
		"app": id.Name,
	}
}

// Labels returns the full label set applied to every generated resource.
// It is always a superset of SelectorLabels.
func (id Identity) Labels() map[string]string {
	return map[string]string{
		"app":        id.Name,
		"tier":       LabelTier,
		"managed-by": LabelManagedBy,
	}
}

// DashboardUID returns a deterministic dashboard UID derived from the
// identity. Two invocations with the same inputs yield the same UID, keeping
// bundle output bit-identical across runs.
func (id Identity) DashboardUID() string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(id.Name+"."+id.Namespace)).String()
}
