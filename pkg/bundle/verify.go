package bundle

import (
	"fmt"
	"strings"

	autoscalingv2 "k8s.io/api/autoscaling/v2"

	"github.com/performance-portal/goldenpath/pkg/errors"
	"github.com/performance-portal/goldenpath/pkg/identity"
)

// Verify runs the cross-document consistency pass over an assembled bundle:
//
//   - all five documents carry identical selector labels;
//   - the HPA targets the Deployment by name;
//   - the ServiceMonitor's selector matches the Service's labels and scrapes
//     a port the Service actually exposes;
//   - the dashboard and HPA reference the shared metric names;
//   - the sizing and policy invariants hold on the derived values.
//
// Any failure returns a BUNDLE_INCONSISTENT error naming the mismatch.
func Verify(b *Bundle) error {
	if b == nil {
		return inconsistent("bundle is nil")
	}
	if b.Deployment == nil || b.Service == nil || b.Autoscaler == nil ||
		b.ServiceMonitor == nil || b.Dashboard == nil {
		return inconsistent("bundle is missing documents")
	}

	sel := b.Identity.SelectorLabels()

	if !labelsMatch(b.Deployment.Spec.Selector.MatchLabels, sel) {
		return inconsistent("deployment selector %v does not match identity selector %v",
			b.Deployment.Spec.Selector.MatchLabels, sel)
	}
	if !labelsContain(b.Deployment.Spec.Template.Labels, sel) {
		return inconsistent("pod template labels %v do not contain selector %v",
			b.Deployment.Spec.Template.Labels, sel)
	}
	if !labelsMatch(b.Service.Spec.Selector, sel) {
		return inconsistent("service selector %v does not match identity selector %v",
			b.Service.Spec.Selector, sel)
	}
	if !labelsContain(b.Service.Labels, b.ServiceMonitor.Spec.Selector.MatchLabels) {
		return inconsistent("service labels %v do not satisfy servicemonitor selector %v",
			b.Service.Labels, b.ServiceMonitor.Spec.Selector.MatchLabels)
	}

	for _, obj := range []struct {
		kind   string
		labels map[string]string
	}{
		{"deployment", b.Deployment.Labels},
		{"service", b.Service.Labels},
		{"hpa", b.Autoscaler.Labels},
		{"servicemonitor", b.ServiceMonitor.Labels},
	} {
		if !labelsContain(obj.labels, sel) {
			return inconsistent("%s labels %v do not contain selector %v", obj.kind, obj.labels, sel)
		}
	}

	ref := b.Autoscaler.Spec.ScaleTargetRef
	if ref.Kind != "Deployment" || ref.Name != b.Deployment.Name {
		return inconsistent("hpa targets %s/%s, expected Deployment/%s", ref.Kind, ref.Name, b.Deployment.Name)
	}

	if err := verifyScrapeTarget(b); err != nil {
		return err
	}
	if err := verifyMetricNames(b); err != nil {
		return err
	}
	if err := verifyDerived(b); err != nil {
		return err
	}
	return nil
}

// verifyScrapeTarget checks that every ServiceMonitor endpoint names a port
// the Service exposes in the monitored namespace.
func verifyScrapeTarget(b *Bundle) error {
	ports := make(map[string]bool, len(b.Service.Spec.Ports))
	for _, p := range b.Service.Spec.Ports {
		ports[p.Name] = true
	}
	for _, ep := range b.ServiceMonitor.Spec.Endpoints {
		if !ports[ep.Port] {
			return inconsistent("servicemonitor scrapes port %q which the service does not expose", ep.Port)
		}
	}

	found := false
	for _, ns := range b.ServiceMonitor.Spec.NamespaceSelector.MatchNames {
		if ns == b.Service.Namespace {
			found = true
		}
	}
	if !found {
		return inconsistent("servicemonitor namespace selector %v does not cover service namespace %q",
			b.ServiceMonitor.Spec.NamespaceSelector.MatchNames, b.Service.Namespace)
	}
	return nil
}

// verifyMetricNames checks that the HPA's pods metric and the dashboard's RPS
// panel are sourced from the shared metric naming constants.
func verifyMetricNames(b *Bundle) error {
	var podsMetric string
	for _, m := range b.Autoscaler.Spec.Metrics {
		if m.Type == autoscalingv2.PodsMetricSourceType && m.Pods != nil {
			podsMetric = m.Pods.Metric.Name
		}
	}
	if podsMetric != identity.MetricRequestsPerSecond {
		return inconsistent("hpa pods metric %q, expected %q", podsMetric, identity.MetricRequestsPerSecond)
	}

	if len(b.Dashboard.Panels) == 0 || len(b.Dashboard.Panels[0].Targets) == 0 {
		return inconsistent("dashboard has no RPS panel")
	}
	if expr := b.Dashboard.Panels[0].Targets[0].Expr; !strings.Contains(expr, identity.MetricRequestsTotal) {
		return inconsistent("dashboard RPS panel queries %q, expected metric %q", expr, identity.MetricRequestsTotal)
	}
	return nil
}

// verifyDerived re-checks the numeric invariants on the derived values.
func verifyDerived(b *Bundle) error {
	d := b.Derived
	if d.Resources.CPURequestMillicores > d.Resources.CPULimitMillicores {
		return inconsistent("cpu request %dm exceeds limit %dm",
			d.Resources.CPURequestMillicores, d.Resources.CPULimitMillicores)
	}
	if d.Resources.MemoryRequestMiB > d.Resources.MemoryLimitMiB {
		return inconsistent("memory request %dMi exceeds limit %dMi",
			d.Resources.MemoryRequestMiB, d.Resources.MemoryLimitMiB)
	}
	if d.Policy.MinReplicas < 1 || d.Policy.MaxReplicas < d.Policy.MinReplicas {
		return inconsistent("replica bounds min=%d max=%d are invalid",
			d.Policy.MinReplicas, d.Policy.MaxReplicas)
	}
	if float64(d.Policy.RPSPerReplicaTarget) > d.Capacity.MaxRequestsPerReplicaPerSecond {
		return inconsistent("rps target %d exceeds capacity estimate %v",
			d.Policy.RPSPerReplicaTarget, d.Capacity.MaxRequestsPerReplicaPerSecond)
	}
	return nil
}

func inconsistent(format string, args ...any) error {
	return errors.New(errors.ErrCodeBundleInconsistent, "%s", fmt.Sprintf(format, args...))
}

// labelsMatch reports whether a and b hold exactly the same pairs.
func labelsMatch(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	return labelsContain(a, b)
}

// labelsContain reports whether super holds every pair in sub.
func labelsContain(super, sub map[string]string) bool {
	for k, v := range sub {
		if super[k] != v {
			return false
		}
	}
	return true
}
