package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RemoteScorer implements Scorer against the model service's JSON API.
type RemoteScorer struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewRemoteScorer creates a scorer for the given model endpoint.
func NewRemoteScorer(endpoint, apiKey string) *RemoteScorer {
	return &RemoteScorer{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   http.DefaultClient,
	}
}

type scoreResponse struct {
	RiskScore float64 `json:"risk_score"`
}

// Score posts the features to the model service and returns its risk score.
func (s *RemoteScorer) Score(ctx context.Context, f Features) (float64, error) {
	body, err := json.Marshal(f)
	if err != nil {
		return 0, fmt.Errorf("scoring: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("scoring: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("scoring: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("scoring: model returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("scoring: decode response: %w", err)
	}
	return result.RiskScore, nil
}
