package observability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	monitoringv1 "github.com/prometheus-operator/prometheus-operator/pkg/apis/monitoring/v1"

	"github.com/performance-portal/goldenpath/pkg/identity"
)

func TestBuildServiceMonitor(t *testing.T) {
	id, err := identity.New("payments", "perf-test")
	require.NoError(t, err)

	sm := BuildServiceMonitor(id)

	assert.Equal(t, id.SelectorLabels(), sm.Spec.Selector.MatchLabels)
	assert.Equal(t, []string{"perf-test"}, sm.Spec.NamespaceSelector.MatchNames)

	require.Len(t, sm.Spec.Endpoints, 1)
	ep := sm.Spec.Endpoints[0]
	assert.Equal(t, identity.MetricsPortName, ep.Port)
	assert.Equal(t, identity.MetricsPath, ep.Path)
	assert.Equal(t, monitoringv1.Duration(identity.ScrapeInterval), ep.Interval)
}

func TestBuildDashboard_PanelsScopedToApp(t *testing.T) {
	id, err := identity.New("payments", "perf-test")
	require.NoError(t, err)

	d := BuildDashboard(id)

	assert.Equal(t, id.DashboardUID(), d.UID)
	require.Len(t, d.Panels, 3)

	rps := d.Panels[0].Targets[0].Expr
	assert.True(t, strings.Contains(rps, identity.MetricRequestsTotal), rps)
	assert.True(t, strings.Contains(rps, `pod=~"payments-.*"`), rps)
	assert.True(t, strings.Contains(rps, `namespace="perf-test"`), rps)

	replicas := d.Panels[2].Targets[0].Expr
	assert.True(t, strings.Contains(replicas, `deployment="payments"`), replicas)
}

func TestBuildDashboard_UIDStableAcrossBuilds(t *testing.T) {
	id, err := identity.New("payments", "perf-test")
	require.NoError(t, err)

	assert.Equal(t, BuildDashboard(id).UID, BuildDashboard(id).UID)
}
