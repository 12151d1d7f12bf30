package matching

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RemoteScorer calls an external scoring service over HTTP. Transient
// failures are retried with exponential backoff; a final failure leaves
// campaign state untouched, the caller simply reruns matching.
type RemoteScorer struct {
	baseURL string
	client  *http.Client
}

// NewRemoteScorer builds a scorer pointed at the given endpoint.
func NewRemoteScorer(baseURL string, timeout time.Duration) *RemoteScorer {
	return &RemoteScorer{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type scoreRequest struct {
	Campaign   CampaignContext `json:"campaign"`
	Candidates []Candidate     `json:"candidates"`
}

type scoreResponse struct {
	Results []Result `json:"results"`
}

// Score posts the campaign context and candidate batch and decodes the
// ranked results.
func (s *RemoteScorer) Score(ctx context.Context, campaign CampaignContext, candidates []Candidate) ([]Result, error) {
	payload, err := json.Marshal(scoreRequest{Campaign: campaign, Candidates: candidates})
	if err != nil {
		return nil, fmt.Errorf("encode score request: %w", err)
	}

	operation := func() ([]Result, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/score", bytes.NewReader(payload))
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("scorer returned %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, backoff.Permanent(fmt.Errorf("scorer returned %d: %s", resp.StatusCode, body))
		}

		var decoded scoreResponse
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("decode score response: %w", err))
		}
		return decoded.Results, nil
	}

	results, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(4))
	if err != nil {
		return nil, fmt.Errorf("remote scorer: %w", err)
	}
	return results, nil
}

var _ Scorer = (*RemoteScorer)(nil)
