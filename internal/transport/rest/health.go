package rest

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

// readinessChecker reports whether the catalog sources have loaded.
type readinessChecker interface {
	AllReady() bool
	Status() map[string]bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	sources readinessChecker
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(sources readinessChecker, version string) *HealthHandler {
	return &HealthHandler{sources: sources, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual source.
type CompStatus struct {
	Status string `json:"status"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 once every source has loaded, 503 with
// the per-source state until then.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.sources.AllReady() {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
		Status:     "loading",
		Components: h.components(),
		Timestamp:  time.Now(),
	})
}

// Health is the full health check. Lists every source and includes version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, overall := http.StatusOK, "ok"
	if !h.sources.AllReady() {
		status, overall = http.StatusServiceUnavailable, "loading"
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: h.components(),
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) components() map[string]CompStatus {
	status := h.sources.Status()
	components := make(map[string]CompStatus, len(status))
	for name, ready := range status {
		if ready {
			components[name] = CompStatus{Status: "ok"}
		} else {
			components[name] = CompStatus{Status: "loading"}
		}
	}
	return components
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
