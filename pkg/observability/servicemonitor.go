// Package observability builds the scrape configuration and dashboard for a
// generated application. Metric names come exclusively from the identity
// package so the HPA, the ServiceMonitor and the dashboard can never drift.
package observability

import (
	monitoringv1 "github.com/prometheus-operator/prometheus-operator/pkg/apis/monitoring/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/performance-portal/goldenpath/pkg/identity"
)

// BuildServiceMonitor returns a ServiceMonitor selecting the generated
// Service by the identity's labels and scraping its metrics port.
func BuildServiceMonitor(id identity.Identity) *monitoringv1.ServiceMonitor {
	return &monitoringv1.ServiceMonitor{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "monitoring.coreos.com/v1",
			Kind:       "ServiceMonitor",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      id.Name,
			Namespace: id.Namespace,
			Labels:    id.Labels(),
		},
		Spec: monitoringv1.ServiceMonitorSpec{
			Selector: metav1.LabelSelector{
				MatchLabels: id.SelectorLabels(),
			},
			NamespaceSelector: monitoringv1.NamespaceSelector{
				MatchNames: []string{id.Namespace},
			},
			Endpoints: []monitoringv1.Endpoint{
				{
					Port:     identity.MetricsPortName,
					Path:     identity.MetricsPath,
					Interval: monitoringv1.Duration(identity.ScrapeInterval),
				},
			},
		},
	}
}
