package manifest

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/performance-portal/goldenpath/pkg/profile"
)

// Probe tuning per startup class. Slow-starting runtimes (JVM warmup) get a
// long startup window so the kubelet doesn't kill them into a boot loop.

func httpGet(path string) corev1.ProbeHandler {
	return corev1.ProbeHandler{
		HTTPGet: &corev1.HTTPGetAction{
			Path: path,
			Port: intstr.FromString(HTTPPortName),
		},
	}
}

func startupProbe(class profile.StartupClass) *corev1.Probe {
	p := &corev1.Probe{
		ProbeHandler:     httpGet("/healthz"),
		PeriodSeconds:    5,
		FailureThreshold: 5,
	}
	if class == profile.StartupSlow {
		// 150s window
		p.FailureThreshold = 30
	}
	return p
}

func readinessProbe(class profile.StartupClass) *corev1.Probe {
	p := &corev1.Probe{
		ProbeHandler:        httpGet("/readyz"),
		InitialDelaySeconds: 2,
		PeriodSeconds:       5,
	}
	if class == profile.StartupSlow {
		// The startup probe already gates the first ready check.
		p.InitialDelaySeconds = 0
		p.PeriodSeconds = 10
	}
	return p
}

func livenessProbe(class profile.StartupClass) *corev1.Probe {
	p := &corev1.Probe{
		ProbeHandler:        httpGet("/healthz"),
		InitialDelaySeconds: 5,
		PeriodSeconds:       10,
	}
	if class == profile.StartupSlow {
		p.InitialDelaySeconds = 0
		p.PeriodSeconds = 20
	}
	return p
}
