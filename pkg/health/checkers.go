package health

import (
	"context"
	"time"

	"github.com/rx3lixir/bodykit/internal/opensearch/client"
)

// ClusterChecker is implemented by the OpenSearch health checker.
type ClusterChecker interface {
	Check(ctx context.Context) error
	GetClusterHealth(ctx context.Context) (*client.ClusterHealth, error)
}

// OpenSearchChecker wraps a cluster ping as a health check. When the
// ping succeeds the result is enriched with cluster status and shard
// counts; a red cluster is reported as down even if it answers.
func OpenSearchChecker(checker ClusterChecker) Checker {
	return CheckerFunc(func(ctx context.Context) CheckResult {
		start := time.Now()
		err := checker.Check(ctx)
		duration := time.Since(start)

		if err != nil {
			return CheckResult{
				Status: StatusDown,
				Error:  err.Error(),
				Details: map[string]any{
					"duration_ms": duration.Milliseconds(),
				},
			}
		}

		details := map[string]any{
			"duration_ms": duration.Milliseconds(),
		}

		cluster, err := checker.GetClusterHealth(ctx)
		if err != nil {
			details["cluster_health_error"] = err.Error()
			return CheckResult{Status: StatusUp, Details: details}
		}

		details["cluster_name"] = cluster.ClusterName
		details["cluster_status"] = cluster.Status
		details["nodes"] = cluster.NumberOfNodes
		details["data_nodes"] = cluster.NumberOfDataNodes
		details["active_shards"] = cluster.ActiveShards

		if !cluster.IsHealthy() {
			return CheckResult{
				Status:  StatusDown,
				Error:   "cluster status is " + cluster.Status,
				Details: details,
			}
		}

		return CheckResult{Status: StatusUp, Details: details}
	})
}
