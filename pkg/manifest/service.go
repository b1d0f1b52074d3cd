package manifest

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/performance-portal/goldenpath/pkg/identity"
	"github.com/performance-portal/goldenpath/pkg/profile"
)

// ServicePort is the external port for application traffic.
const ServicePort = 80

// BuildService returns the Service fronting the Deployment. Prod keeps
// traffic on the receiving node to preserve source IPs and avoid an extra
// hop; dev accepts the extra hop for simpler spreading.
func BuildService(id identity.Identity, tier profile.Tier) *corev1.Service {
	externalPolicy := corev1.ServiceExternalTrafficPolicyCluster
	if tier == profile.TierProd {
		externalPolicy = corev1.ServiceExternalTrafficPolicyLocal
	}

	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      id.Name,
			Namespace: id.Namespace,
			Labels:    id.Labels(),
		},
		Spec: corev1.ServiceSpec{
			Type:                  corev1.ServiceTypeLoadBalancer,
			ExternalTrafficPolicy: externalPolicy,
			Selector:              id.SelectorLabels(),
			Ports: []corev1.ServicePort{
				{
					Name:       HTTPPortName,
					Port:       ServicePort,
					TargetPort: intstr.FromString(HTTPPortName),
					Protocol:   corev1.ProtocolTCP,
				},
				{
					Name:       identity.MetricsPortName,
					Port:       identity.MetricsPort,
					TargetPort: intstr.FromString(HTTPPortName),
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}
}
