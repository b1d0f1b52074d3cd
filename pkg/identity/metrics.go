package identity

// Metric naming shared by the HPA, the ServiceMonitor and the dashboard.
// The autoscaler queries the per-pod rate that the scrape pipeline derives
// from the counter below; any rename must happen here and nowhere else.
const (
	// MetricRequestsTotal is the request counter exposed by the application.
	MetricRequestsTotal = "http_requests_total"

	// MetricRequestsPerSecond is the per-pod rate the HPA scales on.
	MetricRequestsPerSecond = "http_requests_per_second"

	// MetricsPath is the scrape path exposed by the application.
	MetricsPath = "/metrics"

	// MetricsPortName is the named Service port the ServiceMonitor scrapes.
	MetricsPortName = "metrics"

	// MetricsPort is the container port serving application traffic and metrics.
	MetricsPort = 9898

	// ScrapeInterval is the ServiceMonitor scrape interval.
	ScrapeInterval = "15s"
)
