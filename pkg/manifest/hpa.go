package manifest

import (
	"fmt"

	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/utils/ptr"

	"github.com/performance-portal/goldenpath/pkg/autoscaling"
	"github.com/performance-portal/goldenpath/pkg/identity"
	"github.com/performance-portal/goldenpath/pkg/profile"
)

// BuildHPA returns the HorizontalPodAutoscaler for the Deployment. Two
// metrics: CPU utilization as the safety net, per-pod RPS as the proactive
// trigger placed below the capacity estimate.
func BuildHPA(id identity.Identity, policy autoscaling.Policy, tier profile.Tier) *autoscalingv2.HorizontalPodAutoscaler {
	return &autoscalingv2.HorizontalPodAutoscaler{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "autoscaling/v2",
			Kind:       "HorizontalPodAutoscaler",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      id.Name,
			Namespace: id.Namespace,
			Labels:    id.Labels(),
		},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{
				APIVersion: "apps/v1",
				Kind:       "Deployment",
				Name:       id.Name,
			},
			MinReplicas: ptr.To(policy.MinReplicas),
			MaxReplicas: policy.MaxReplicas,
			Metrics: []autoscalingv2.MetricSpec{
				{
					Type: autoscalingv2.ResourceMetricSourceType,
					Resource: &autoscalingv2.ResourceMetricSource{
						Name: corev1.ResourceCPU,
						Target: autoscalingv2.MetricTarget{
							Type:               autoscalingv2.UtilizationMetricType,
							AverageUtilization: ptr.To(policy.CPUUtilizationTargetPercent),
						},
					},
				},
				{
					Type: autoscalingv2.PodsMetricSourceType,
					Pods: &autoscalingv2.PodsMetricSource{
						Metric: autoscalingv2.MetricIdentifier{
							Name: identity.MetricRequestsPerSecond,
						},
						Target: autoscalingv2.MetricTarget{
							Type:         autoscalingv2.AverageValueMetricType,
							AverageValue: ptr.To(resource.MustParse(fmt.Sprintf("%d", policy.RPSPerReplicaTarget))),
						},
					},
				},
			},
			Behavior: scalingBehavior(tier),
		},
	}
}

// scalingBehavior tunes scale velocity per tier: both tiers scale up
// immediately, prod scales down slowly to ride out traffic dips.
func scalingBehavior(tier profile.Tier) *autoscalingv2.HorizontalPodAutoscalerBehavior {
	downWindow := int32(300)
	downPercent := int32(50)
	if tier == profile.TierDev {
		downWindow = 60
		downPercent = 100
	}

	return &autoscalingv2.HorizontalPodAutoscalerBehavior{
		ScaleUp: &autoscalingv2.HPAScalingRules{
			StabilizationWindowSeconds: ptr.To(int32(0)),
			SelectPolicy:               ptr.To(autoscalingv2.MaxChangePolicySelect),
			Policies: []autoscalingv2.HPAScalingPolicy{
				{
					Type:          autoscalingv2.PercentScalingPolicy,
					Value:         100,
					PeriodSeconds: 15,
				},
				{
					Type:          autoscalingv2.PodsScalingPolicy,
					Value:         4,
					PeriodSeconds: 15,
				},
			},
		},
		ScaleDown: &autoscalingv2.HPAScalingRules{
			StabilizationWindowSeconds: ptr.To(downWindow),
			Policies: []autoscalingv2.HPAScalingPolicy{
				{
					Type:          autoscalingv2.PercentScalingPolicy,
					Value:         downPercent,
					PeriodSeconds: 60,
				},
			},
		},
	}
}
