package manifest

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"

	"github.com/performance-portal/goldenpath/pkg/profile"
	"github.com/performance-portal/goldenpath/pkg/sizing"
)

// jvmHeapFraction sizes the JVM heap relative to container memory, leaving
// the rest for metaspace, threads and off-heap buffers.
const jvmHeapFraction = 0.75

// containerEnv returns the language-specific environment for the container.
// The switch is total over the language enum; unknown languages never reach
// this point because the profile lookup rejects them.
func containerEnv(lang profile.Language, res sizing.ResourceSpec) []corev1.EnvVar {
	switch lang {
	case profile.LanguageJava:
		return []corev1.EnvVar{
			{Name: "JAVA_OPTS", Value: javaOpts(res)},
		}
	case profile.LanguageDotnet:
		// Server GC for high-throughput workloads.
		return []corev1.EnvVar{
			{Name: "DOTNET_gcServer", Value: "1"},
		}
	case profile.LanguagePython:
		// Stream logs immediately instead of buffering.
		return []corev1.EnvVar{
			{Name: "PYTHONUNBUFFERED", Value: "1"},
		}
	case profile.LanguageGo:
		return nil
	default:
		return nil
	}
}

// javaOpts derives the JVM heap bounds from the memory envelope: initial heap
// from the request, max heap from the limit.
func javaOpts(res sizing.ResourceSpec) string {
	initialHeap := int64(float64(res.MemoryRequestMiB) * jvmHeapFraction)
	maxHeap := int64(float64(res.MemoryLimitMiB) * jvmHeapFraction)

	return fmt.Sprintf("-Xms%dm -Xmx%dm -XX:+UseContainerSupport -XX:MaxRAMPercentage=75.0 -XshowSettings:vm",
		initialHeap, maxHeap)
}
