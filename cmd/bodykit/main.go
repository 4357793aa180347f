package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rx3lixir/bodykit/internal/config"
	"github.com/rx3lixir/bodykit/internal/opensearch/client"
	"github.com/rx3lixir/bodykit/internal/opensearch/search"
	"github.com/rx3lixir/bodykit/pkg/body"
	"github.com/rx3lixir/bodykit/pkg/health"
	"github.com/rx3lixir/bodykit/pkg/logger"
	"github.com/rx3lixir/bodykit/pkg/metrics"
)

const version = "0.1.0"

func main() {
	var (
		configPath = flag.String("config", "", "path to config file")
		queryText  = flag.String("query", "", "full-text query to run")
		field      = flag.String("field", "title", "field to query")
		dryRun     = flag.Bool("dry-run", false, "print the built body instead of executing it")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	builder := body.New().
		Filter("term", "published", true).
		Aggregation("terms", "channel", body.WithName("channels"), body.WithOptions(map[string]any{"size": 10})).
		Sort("published_at", "desc").
		Size(25)
	if *queryText != "" {
		builder.Query("match", *field, *queryText)
	}

	if *dryRun {
		out, err := json.MarshalIndent(builder.Build(), "", "  ")
		if err != nil {
			log.Fatal("Failed to marshal body", "error", err)
		}
		fmt.Println(string(out))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	osClient, err := client.New(&cfg.OpenSearch, log)
	if err != nil {
		log.Fatal("Failed to create opensearch client", "error", err)
	}

	checker := client.NewHealthChecker(osClient)
	if err := checker.WaitForHealthy(ctx, cfg.OpenSearch.MaxRetries+1, time.Second); err != nil {
		log.Fatal("OpenSearch is not reachable", "error", err)
	}

	if cfg.Metrics.Enabled {
		metrics.SetServiceInfo(version, "bodykit", cfg.Environment)
		metricsServer := metrics.NewServer(cfg.Metrics.Addr, log)
		metricsServer.StartUptimeUpdater("bodykit")
		go func() {
			if err := metricsServer.Start(); err != nil {
				log.Error("Metrics server stopped", "error", err)
			}
		}()
		defer metricsServer.Shutdown(context.Background())
	}

	if cfg.Health.Enabled {
		checks := health.New("bodykit", version)
		checks.AddCheck("opensearch", health.OpenSearchChecker(checker))
		healthServer := health.NewServer(cfg.Health.Addr, checks, log)
		go func() {
			if err := healthServer.Start(); err != nil {
				log.Error("Health server stopped", "error", err)
			}
		}()
		defer healthServer.Shutdown(context.Background())
	}

	searcher := search.NewSearcher(osClient, log)

	result, err := searcher.Search(ctx, builder)
	if err != nil {
		log.Fatal("Search failed", "error", err)
	}

	total, err := searcher.Count(ctx, builder)
	if err != nil {
		log.Fatal("Count failed", "error", err)
	}

	log.Info("Done",
		"index", cfg.OpenSearch.IndexName,
		"hits", len(result.Hits),
		"total", result.Total,
		"count", total,
		"took", result.Took,
	)

	for _, hit := range result.Hits {
		fmt.Printf("%s\t%s\n", hit.ID, string(hit.Source))
	}
}
