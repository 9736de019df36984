package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRemoteScorer(t *testing.T) {
	var gotAuth, gotContentType string
	var gotFeatures Features

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotFeatures); err != nil {
			t.Errorf("decode features: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]float64{"risk_score": 0.42})
	}))
	defer ts.Close()

	s := NewRemoteScorer(ts.URL, "secret-key")
	score, err := s.Score(context.Background(), Features{Latitude: 23.03, Longitude: 72.58})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if score != 0.42 {
		t.Errorf("score = %v, want 0.42", score)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("authorization = %q, want bearer token", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotFeatures.Latitude != 23.03 {
		t.Errorf("forwarded latitude = %v, want 23.03", gotFeatures.Latitude)
	}
}

func TestRemoteScorerNoAPIKey(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		json.NewEncoder(w).Encode(map[string]float64{"risk_score": 0.1})
	}))
	defer ts.Close()

	s := NewRemoteScorer(ts.URL, "")
	if _, err := s.Score(context.Background(), Features{}); err != nil {
		t.Fatalf("score: %v", err)
	}
}

func TestRemoteScorerServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	}))
	defer ts.Close()

	s := NewRemoteScorer(ts.URL, "")
	_, err := s.Score(context.Background(), Features{})
	if err == nil {
		t.Fatal("expected error on 500 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should carry the status code: %v", err)
	}
}
