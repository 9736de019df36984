package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/aldara/sentra/internal/engine"
	"github.com/aldara/sentra/internal/scoring"
	"github.com/aldara/sentra/internal/store"
)

type stubScorer struct {
	score float64
	err   error
}

func (s *stubScorer) Score(ctx context.Context, f scoring.Features) (float64, error) {
	return s.score, s.err
}

// newTestHandler creates a Handler wired with in-memory stores (no Postgres,
// no notifiers). scorer may be nil to exercise the unconfigured path.
func newTestHandler(t *testing.T, scorer scoring.Scorer) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	registry := engine.NewRegistry(
		func(string) engine.ContextStore { return store.NewMemory() },
		engine.DefaultThresholds(),
		engine.DefaultCooldowns(),
		logger,
	)
	return NewHandler(registry, nil, nil, scorer, logger).Router()
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body interface{}) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func getJSON(t *testing.T, ts *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// --- Tests ---

func TestHealthCheck(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, nil))
	defer ts.Close()

	resp := getJSON(t, ts, "/api/health")
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]interface{}
	decodeJSON(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if body["model_linked"] != false {
		t.Errorf("expected model_linked false without scorer, got %v", body["model_linked"])
	}
}

func TestRiskUpdateAndState(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, nil))
	defer ts.Close()

	resp := postJSON(t, ts, "/api/agents/alice/risk", map[string]interface{}{
		"risk_score": 0.5,
		"location":   map[string]float64{"latitude": 23.03, "longitude": 72.58},
	})
	if resp.StatusCode != 200 {
		t.Fatalf("risk update: expected 200, got %d", resp.StatusCode)
	}
	var d engine.Decision
	decodeJSON(t, resp, &d)
	if d.State != engine.StateCaution {
		t.Errorf("state = %s, want caution", d.State)
	}
	if d.Action != engine.ActionMonitor {
		t.Errorf("action = %s, want monitor", d.Action)
	}

	resp = getJSON(t, ts, "/api/agents/alice/state")
	var s engine.Summary
	decodeJSON(t, resp, &s)
	if s.CurrentState != engine.StateCaution || s.RiskScore != 0.5 {
		t.Errorf("summary mismatch: %+v", s)
	}
	if s.LocationHistoryCount != 1 {
		t.Errorf("history count = %d, want 1", s.LocationHistoryCount)
	}
}

func TestRiskUpdateMissingScore(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, nil))
	defer ts.Close()

	resp := postJSON(t, ts, "/api/risk/update", map[string]interface{}{
		"location": map[string]float64{"latitude": 1, "longitude": 2},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without risk_score, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["error"] == "" {
		t.Error("expected an error message")
	}
}

func TestRiskUpdateMalformedBody(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, nil))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/risk/update", "application/json", bytes.NewReader([]byte("{broken")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", resp.StatusCode)
	}
}

func TestSingleAgentAliases(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, nil))
	defer ts.Close()

	postJSON(t, ts, "/api/risk/update", map[string]interface{}{"risk_score": 0.4})

	// The alias routes and the "primary" agent routes share one context.
	resp := getJSON(t, ts, "/api/agents/"+DefaultAgentID+"/state")
	var s engine.Summary
	decodeJSON(t, resp, &s)
	if s.CurrentState != engine.StateCaution {
		t.Errorf("alias update not visible on primary agent: %+v", s)
	}
}

func TestAgentsAreIsolated(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, nil))
	defer ts.Close()

	postJSON(t, ts, "/api/agents/alice/risk", map[string]interface{}{"risk_score": 0.9})

	resp := getJSON(t, ts, "/api/agents/bob/state")
	var s engine.Summary
	decodeJSON(t, resp, &s)
	if s.CurrentState != engine.StateSafe {
		t.Errorf("bob state = %s, want safe", s.CurrentState)
	}
}

func TestResetAgent(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, nil))
	defer ts.Close()

	postJSON(t, ts, "/api/agents/alice/risk", map[string]interface{}{"risk_score": 0.9})

	resp := postJSON(t, ts, "/api/agents/alice/reset", nil)
	if resp.StatusCode != 200 {
		t.Fatalf("reset: expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["status"] != "success" {
		t.Errorf("reset status = %q, want success", body["status"])
	}

	resp = getJSON(t, ts, "/api/agents/alice/state")
	var s engine.Summary
	decodeJSON(t, resp, &s)
	if s.CurrentState != engine.StateSafe || s.AlertCount != 0 {
		t.Errorf("state after reset: %+v", s)
	}
}

func TestAssessWithoutScorer(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, nil))
	defer ts.Close()

	resp := postJSON(t, ts, "/api/assess", map[string]interface{}{
		"features": map[string]interface{}{"latitude": 23.03, "longitude": 72.58},
	})
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without scorer, got %d", resp.StatusCode)
	}
}

func TestAssessChainsScorerAndEngine(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, &stubScorer{score: 0.9}))
	defer ts.Close()

	resp := postJSON(t, ts, "/api/assess", map[string]interface{}{
		"agent_id": "alice",
		"features": map[string]interface{}{"latitude": 23.03, "longitude": 72.58},
	})
	if resp.StatusCode != 200 {
		t.Fatalf("assess: expected 200, got %d", resp.StatusCode)
	}
	var d engine.Decision
	decodeJSON(t, resp, &d)
	if d.RiskScore != 0.9 {
		t.Errorf("risk score = %v, want 0.9 from the model", d.RiskScore)
	}
	if d.State != engine.StateCaution {
		t.Errorf("state = %s, want caution (single step from safe)", d.State)
	}

	// The assessed location lands in the agent's trail.
	resp = getJSON(t, ts, "/api/agents/alice/state")
	var s engine.Summary
	decodeJSON(t, resp, &s)
	if s.LocationHistoryCount != 1 {
		t.Errorf("history count = %d, want 1", s.LocationHistoryCount)
	}
}

func TestAssessModelFailure(t *testing.T) {
	ts := httptest.NewServer(newTestHandler(t, &stubScorer{err: errors.New("model timeout")}))
	defer ts.Close()

	resp := postJSON(t, ts, "/api/assess", map[string]interface{}{
		"features": map[string]interface{}{"latitude": 1, "longitude": 2},
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 on scoring failure, got %d", resp.StatusCode)
	}
}
