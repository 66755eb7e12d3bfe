package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
)

type readinessMock struct {
	status map[string]bool
}

func (m *readinessMock) AllReady() bool {
	if len(m.status) == 0 {
		return false
	}
	for _, ready := range m.status {
		if !ready {
			return false
		}
	}
	return true
}

func (m *readinessMock) Status() map[string]bool {
	return m.status
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&readinessMock{}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	rec := httptest.NewRecorder()

	h.Live(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decodeHealth(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestReady_AllSourcesLoaded(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&readinessMock{status: map[string]bool{"moves": true, "pokemon": true}}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", ct)
	}

	resp := decodeHealth(t, rec)
	if resp.Status != "ok" {
		t.Errorf("expected status 'ok', got %q", resp.Status)
	}
	if len(resp.Components) != 0 {
		t.Errorf("expected no components, got %v", resp.Components)
	}
}

func TestReady_Loading(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&readinessMock{status: map[string]bool{"moves": true, "pokemon": false}}, "test-version")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}

	resp := decodeHealth(t, rec)
	if resp.Status != "loading" {
		t.Errorf("expected status 'loading', got %q", resp.Status)
	}
	if resp.Components["moves"].Status != "ok" {
		t.Errorf("expected moves 'ok', got %q", resp.Components["moves"].Status)
	}
	if resp.Components["pokemon"].Status != "loading" {
		t.Errorf("expected pokemon 'loading', got %q", resp.Components["pokemon"].Status)
	}
}

func TestHealth_IncludesVersion(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&readinessMock{status: map[string]bool{"moves": true}}, "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	resp := decodeHealth(t, rec)
	if resp.Version != "1.2.3" {
		t.Errorf("expected version '1.2.3', got %q", resp.Version)
	}
	if resp.Components["moves"].Status != "ok" {
		t.Errorf("expected moves 'ok', got %q", resp.Components["moves"].Status)
	}
}

func TestHealth_NoSourcesIsLoading(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(&readinessMock{}, "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
	if resp := decodeHealth(t, rec); resp.Status != "loading" {
		t.Errorf("expected status 'loading', got %q", resp.Status)
	}
}
