package rest

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const probeTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to a health check.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type component struct {
	name     string
	pinger   pinger
	optional bool
}

// HealthHandler serves the liveness, readiness and health probes.
type HealthHandler struct {
	version    string
	components []component
}

// NewHealthHandler creates a HealthHandler with the database as its first
// required component.
func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{
		version:    version,
		components: []component{{name: "database", pinger: db}},
	}
}

// WithComponent adds a dependency reported by /health. A failing optional
// component degrades the status instead of taking the service down.
func (h *HealthHandler) WithComponent(name string, p pinger, optional bool) *HealthHandler {
	h.components = append(h.components, component{name: name, pinger: p, optional: optional})
	return h
}

// HealthResponse is the body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 503 while any required component is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.check(r.Context(), false)
	writeJSON(w, httpStatus(status), HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health reports every component with its latency, plus the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.check(r.Context(), true)
	writeJSON(w, httpStatus(status), HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// check pings the components concurrently. Optional components are skipped
// unless withOptional is set.
func (h *HealthHandler) check(ctx context.Context, withOptional bool) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]CompStatus, len(h.components))
		status  = "ok"
	)
	for _, c := range h.components {
		if c.optional && !withOptional {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()

			start := time.Now()
			err := c.pinger.Ping(ctx)
			res := CompStatus{Status: "ok", Latency: time.Since(start).String()}
			if err != nil {
				res = CompStatus{Status: "down", Error: err.Error()}
			}

			mu.Lock()
			defer mu.Unlock()
			results[c.name] = res
			switch {
			case err == nil:
			case !c.optional:
				status = "down"
			case status == "ok":
				status = "degraded"
			}
		}()
	}
	wg.Wait()

	return status, results
}

func httpStatus(status string) int {
	if status == "down" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
