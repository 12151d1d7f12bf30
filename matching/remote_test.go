package matching

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarweej.app/models"
)

func TestRemoteScorerSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/score", r.URL.Path)

		var req scoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint(7), req.Campaign.CampaignID)
		require.Len(t, req.Candidates, 1)

		_ = json.NewEncoder(w).Encode(scoreResponse{Results: []Result{
			{InfluencerID: req.Candidates[0].InfluencerID, Score: 85, Rationale: "strong fit"},
		}})
	}))
	defer server.Close()

	scorer := NewRemoteScorer(server.URL, 5*time.Second)
	results, err := scorer.Score(context.Background(),
		CampaignContext{CampaignID: 7, City: "Riyadh"},
		[]Candidate{{InfluencerID: 42, Category: models.CategoryFoodReviews}})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint(42), results[0].InfluencerID)
	assert.Equal(t, 85, results[0].Score)
}

func TestRemoteScorerRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(scoreResponse{Results: []Result{{InfluencerID: 1, Score: 40}}})
	}))
	defer server.Close()

	scorer := NewRemoteScorer(server.URL, 5*time.Second)
	results, err := scorer.Score(context.Background(), CampaignContext{}, []Candidate{{InfluencerID: 1}})

	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRemoteScorerClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	scorer := NewRemoteScorer(server.URL, 5*time.Second)
	_, err := scorer.Score(context.Background(), CampaignContext{}, []Candidate{{InfluencerID: 1}})

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx is not retried")
}
