package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rx3lixir/bodykit/pkg/logger"
)

// Server exposes the Prometheus registry over HTTP.
type Server struct {
	server    *http.Server
	logger    logger.Logger
	startTime time.Time
}

// NewServer creates a metrics server on the given address.
func NewServer(addr string, log logger.Logger) *Server {
	if addr == "" {
		addr = ":8091"
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		server:    server,
		logger:    log,
		startTime: time.Now(),
	}
}

// Start blocks serving metrics until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Starting metrics server",
		"address", s.server.Addr,
		"endpoints", []string{"/metrics", "/ready"},
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server failed: %w", err)
	}

	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down metrics server")
	return s.server.Shutdown(ctx)
}

// StartUptimeUpdater periodically refreshes the uptime gauge.
func (s *Server) StartUptimeUpdater(serviceName string) {
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			UpdateServiceUptime(serviceName, s.startTime)
		}
	}()
}
