package observability

import (
	"fmt"

	"github.com/performance-portal/goldenpath/pkg/identity"
)

// Dashboard is a minimal Grafana dashboard definition. The rendering
// collaborator serializes it to the provisioning JSON format.
type Dashboard struct {
	UID    string  `json:"uid" yaml:"uid"`
	Title  string  `json:"title" yaml:"title"`
	Panels []Panel `json:"panels" yaml:"panels"`
}

// Panel is a single dashboard panel.
type Panel struct {
	Title   string   `json:"title" yaml:"title"`
	Type    string   `json:"type" yaml:"type"`
	Targets []Target `json:"targets" yaml:"targets"`
}

// Target is a PromQL query backing a panel.
type Target struct {
	Expr string `json:"expr" yaml:"expr"`
}

// cpuUsageRecordingRule is the kube-prometheus recording rule for per-pod CPU
// usage. Cluster-scoped, not application-scoped, hence not in identity.
const cpuUsageRecordingRule = "node_namespace_pod_container:container_cpu_usage_seconds_total:sum_irate"

// BuildDashboard returns the performance dashboard for the application.
// The RPS panel rates the same counter the autoscaler's per-pod metric is
// derived from.
func BuildDashboard(id identity.Identity) *Dashboard {
	podPattern := id.Name + "-.*"

	return &Dashboard{
		UID:   id.DashboardUID(),
		Title: fmt.Sprintf("App: %s - Performance", id.Name),
		Panels: []Panel{
			{
				Title: "Requests Per Second (RPS)",
				Type:  "timeseries",
				Targets: []Target{
					{
						Expr: fmt.Sprintf(`sum(rate(%s{namespace=%q, pod=~%q}[2m])) by (pod)`,
							identity.MetricRequestsTotal, id.Namespace, podPattern),
					},
				},
			},
			{
				Title: "CPU Utilization",
				Type:  "timeseries",
				Targets: []Target{
					{
						Expr: fmt.Sprintf(`sum(%s{namespace=%q, pod=~%q})`,
							cpuUsageRecordingRule, id.Namespace, podPattern),
					},
				},
			},
			{
				Title: "Replicas",
				Type:  "timeseries",
				Targets: []Target{
					{
						Expr: fmt.Sprintf(`sum(kube_deployment_status_replicas_available{namespace=%q, deployment=%q})`,
							id.Namespace, id.Name),
					},
				},
			},
		},
	}
}
