package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rx3lixir/bodykit/internal/opensearch/client"
)

func TestHealth_AllChecksUp(t *testing.T) {
	h := New("bodykit", "test")
	h.AddCheck("always_up", CheckerFunc(func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusUp}
	}))

	response := h.Check(context.Background())
	require.Equal(t, StatusUp, response.Status)
	require.Equal(t, "bodykit", response.Service)
	require.Len(t, response.Checks, 1)
}

func TestHealth_SingleDownCheckMarksServiceDown(t *testing.T) {
	h := New("bodykit", "test")
	h.AddCheck("up", CheckerFunc(func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusUp}
	}))
	h.AddCheck("down", CheckerFunc(func(ctx context.Context) CheckResult {
		return CheckResult{Status: StatusDown, Error: "unreachable"}
	}))

	response := h.Check(context.Background())
	require.Equal(t, StatusDown, response.Status)
	require.Equal(t, "unreachable", response.Checks["down"].Error)
}

func TestOpenSearchChecker_MapsPingErrors(t *testing.T) {
	down := OpenSearchChecker(&fakeClusterChecker{
		pingErr: errors.New("connection refused"),
	})

	result := down.Check(context.Background())
	require.Equal(t, StatusDown, result.Status)
	require.Equal(t, "connection refused", result.Error)
	require.Contains(t, result.Details, "duration_ms")
}

func TestOpenSearchChecker_EnrichesDetailsWithClusterHealth(t *testing.T) {
	up := OpenSearchChecker(&fakeClusterChecker{
		health: &client.ClusterHealth{
			ClusterName:       "bodykit-cluster",
			Status:            "yellow",
			NumberOfNodes:     3,
			NumberOfDataNodes: 2,
			ActiveShards:      12,
		},
	})

	result := up.Check(context.Background())
	require.Equal(t, StatusUp, result.Status)
	require.Equal(t, "bodykit-cluster", result.Details["cluster_name"])
	require.Equal(t, "yellow", result.Details["cluster_status"])
	require.Equal(t, 3, result.Details["nodes"])
	require.Equal(t, 2, result.Details["data_nodes"])
	require.Equal(t, 12, result.Details["active_shards"])
}

func TestOpenSearchChecker_RedClusterIsDown(t *testing.T) {
	red := OpenSearchChecker(&fakeClusterChecker{
		health: &client.ClusterHealth{Status: "red", NumberOfNodes: 1},
	})

	result := red.Check(context.Background())
	require.Equal(t, StatusDown, result.Status)
	require.Equal(t, "cluster status is red", result.Error)
	require.Equal(t, "red", result.Details["cluster_status"])
}

func TestOpenSearchChecker_ClusterHealthFailureStaysUp(t *testing.T) {
	degraded := OpenSearchChecker(&fakeClusterChecker{
		healthErr: errors.New("timeout"),
	})

	result := degraded.Check(context.Background())
	require.Equal(t, StatusUp, result.Status)
	require.Equal(t, "timeout", result.Details["cluster_health_error"])
	require.NotContains(t, result.Details, "cluster_status")
}

type fakeClusterChecker struct {
	pingErr   error
	health    *client.ClusterHealth
	healthErr error
}

func (f *fakeClusterChecker) Check(ctx context.Context) error { return f.pingErr }

func (f *fakeClusterChecker) GetClusterHealth(ctx context.Context) (*client.ClusterHealth, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return f.health, nil
}
