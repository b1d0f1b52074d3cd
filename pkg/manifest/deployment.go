// Package manifest builds the typed Kubernetes objects of a bundle from the
// derived sizing and policy values. All cross-document names, labels and
// metric names are taken from the shared identity.
package manifest

import (
	"fmt"
	"strconv"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/performance-portal/goldenpath/pkg/autoscaling"
	"github.com/performance-portal/goldenpath/pkg/identity"
	"github.com/performance-portal/goldenpath/pkg/profile"
	"github.com/performance-portal/goldenpath/pkg/sizing"
)

const (
	// HTTPPortName is the container port serving both traffic and metrics.
	HTTPPortName = "http"

	gracePeriodProdSeconds int64 = 60
	gracePeriodDevSeconds  int64 = 30
)

// BuildDeployment returns the Deployment for the application. Replicas are
// pinned to the HPA floor so a rollout doesn't immediately fight the
// autoscaler.
func BuildDeployment(id identity.Identity, p *profile.LanguageProfile, image string,
	res sizing.ResourceSpec, policy autoscaling.Policy, tier profile.Tier) *appsv1.Deployment {

	grace := gracePeriodProdSeconds
	if tier == profile.TierDev {
		grace = gracePeriodDevSeconds
	}

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      id.Name,
			Namespace: id.Namespace,
			Labels:    id.Labels(),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(policy.MinReplicas),
			Selector: &metav1.LabelSelector{
				MatchLabels: id.SelectorLabels(),
			},
			Strategy: appsv1.DeploymentStrategy{
				Type: appsv1.RollingUpdateDeploymentStrategyType,
				RollingUpdate: &appsv1.RollingUpdateDeployment{
					MaxUnavailable: ptr.To(intstr.FromInt32(0)),
					MaxSurge:       ptr.To(intstr.FromInt32(1)),
				},
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      id.Labels(),
					Annotations: monitoringAnnotations(),
				},
				Spec: corev1.PodSpec{
					TerminationGracePeriodSeconds: ptr.To(grace),
					Containers: []corev1.Container{
						{
							Name:  id.Name,
							Image: image,
							Ports: []corev1.ContainerPort{
								{
									Name:          HTTPPortName,
									ContainerPort: identity.MetricsPort,
									Protocol:      corev1.ProtocolTCP,
								},
							},
							Env:            containerEnv(p.ID, res),
							Resources:      resourceRequirements(res),
							StartupProbe:   startupProbe(p.StartupClass),
							ReadinessProbe: readinessProbe(p.StartupClass),
							LivenessProbe:  livenessProbe(p.StartupClass),
						},
					},
				},
			},
		},
	}
}

// monitoringAnnotations are the annotation-based scrape hints kept alongside
// the ServiceMonitor for setups that still use annotation discovery.
func monitoringAnnotations() map[string]string {
	return map[string]string{
		"prometheus.io/scrape": "true",
		"prometheus.io/path":   identity.MetricsPath,
		"prometheus.io/port":   strconv.Itoa(identity.MetricsPort),
	}
}

func resourceRequirements(res sizing.ResourceSpec) corev1.ResourceRequirements {
	return corev1.ResourceRequirements{
		Requests: corev1.ResourceList{
			corev1.ResourceCPU:    resource.MustParse(fmt.Sprintf("%dm", res.CPURequestMillicores)),
			corev1.ResourceMemory: resource.MustParse(fmt.Sprintf("%dMi", res.MemoryRequestMiB)),
		},
		Limits: corev1.ResourceList{
			corev1.ResourceCPU:    resource.MustParse(fmt.Sprintf("%dm", res.CPULimitMillicores)),
			corev1.ResourceMemory: resource.MustParse(fmt.Sprintf("%dMi", res.MemoryLimitMiB)),
		},
	}
}
