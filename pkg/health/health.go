package health

import (
	"context"
	"sync"
	"time"
)

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// CheckResult is the outcome of one named check.
type CheckResult struct {
	Status  Status         `json:"status"`
	Error   string         `json:"error,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Checker performs one health check.
type Checker interface {
	Check(ctx context.Context) CheckResult
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context) CheckResult

func (f CheckerFunc) Check(ctx context.Context) CheckResult {
	return f(ctx)
}

// Response aggregates all check outcomes.
type Response struct {
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Status  Status                 `json:"status"`
	Checks  map[string]CheckResult `json:"checks,omitempty"`
}

// Health runs a set of named checks under a shared timeout.
type Health struct {
	service string
	version string
	timeout time.Duration

	mu     sync.Mutex
	checks map[string]Checker
}

type Option func(*Health)

func WithTimeout(timeout time.Duration) Option {
	return func(h *Health) { h.timeout = timeout }
}

func New(service, version string, opts ...Option) *Health {
	h := &Health{
		service: service,
		version: version,
		timeout: 5 * time.Second,
		checks:  make(map[string]Checker),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Health) AddCheck(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = checker
}

// Check runs every registered check. The overall status is down if any
// single check is down.
func (h *Health) Check(ctx context.Context) Response {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	h.mu.Lock()
	checks := make(map[string]Checker, len(h.checks))
	for name, c := range h.checks {
		checks[name] = c
	}
	h.mu.Unlock()

	response := Response{
		Service: h.service,
		Version: h.version,
		Status:  StatusUp,
		Checks:  make(map[string]CheckResult, len(checks)),
	}

	for name, checker := range checks {
		result := checker.Check(ctx)
		response.Checks[name] = result
		if result.Status == StatusDown {
			response.Status = StatusDown
		}
	}

	return response
}
