package client

import (
	"context"
	"net/http"
	"net/url"
)

// RecommendationService handles recommendation API calls
type RecommendationService struct {
	client *Client
}

// RecommendationListOptions narrows the returned list. The summary always
// covers every recommendation.
type RecommendationListOptions struct {
	Provider string
	Category string
	Effort   string
}

// List generates ranked recommendations from the stored data
func (s *RecommendationService) List(ctx context.Context, opts *RecommendationListOptions) (*RecommendationList, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Provider != "" {
			query.Set("provider", opts.Provider)
		}
		if opts.Category != "" {
			query.Set("category", opts.Category)
		}
		if opts.Effort != "" {
			query.Set("effort", opts.Effort)
		}
	}

	var list RecommendationList
	if err := s.client.doRequest(ctx, http.MethodGet, withQuery("/api/v1/recommendations", query), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Summary returns the aggregate savings figures
func (s *RecommendationService) Summary(ctx context.Context) (*RecommendationSummary, error) {
	var summary RecommendationSummary
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/recommendations/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
