package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/spendlens/internal/api/dto"
)

func TestRecommendationHandler_List(t *testing.T) {
	f := newAPIFixture(nil)
	f.seed(t)
	handler := NewRecommendationHandler(f.sync, f.log)

	rr := call(handler.List, http.MethodGet, "/api/v1/recommendations", "", 1, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.RecommendationListResponse
	decode(t, rr, &resp)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, 400.0, resp.Recommendations[0].Savings)
	assert.Equal(t, "compute", resp.Recommendations[0].Category)
	assert.Equal(t, 100.0, resp.Recommendations[1].Savings)
	assert.Equal(t, 500.0, resp.Summary.TotalSavings)
	assert.Equal(t, 2, resp.Summary.Count)
}

func TestRecommendationHandler_ListFilters(t *testing.T) {
	f := newAPIFixture(nil)
	f.seed(t)
	handler := NewRecommendationHandler(f.sync, f.log)

	tests := []struct {
		query string
		want  int
	}{
		{"?category=storage", 1},
		{"?category=network", 0},
		{"?provider=azure", 2},
		{"?provider=gcp", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rr := call(handler.List, http.MethodGet, "/api/v1/recommendations"+tt.query, "", 1, nil)
			require.Equal(t, http.StatusOK, rr.Code)

			var resp dto.RecommendationListResponse
			decode(t, rr, &resp)
			assert.Len(t, resp.Recommendations, tt.want)
			assert.Equal(t, 2, resp.Summary.Count, "summary covers the unfiltered list")
		})
	}
}

func TestRecommendationHandler_Summary(t *testing.T) {
	f := newAPIFixture(nil)
	handler := NewRecommendationHandler(f.sync, f.log)

	rr := call(handler.Summary, http.MethodGet, "/api/v1/recommendations/summary", "", 1, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var summary dto.RecommendationSummaryDTO
	decode(t, rr, &summary)
	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.PercentageReduction)
}
