package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CostService handles cost and budget API calls
type CostService struct {
	client *Client
}

// CostRecordOptions filters cost records
type CostRecordOptions struct {
	ListOptions
	Provider string
	Start    string // YYYY-MM-DD, requires End
	End      string // YYYY-MM-DD, requires Start
}

// Summary returns per-provider cost breakdowns. An empty provider returns all.
func (s *CostService) Summary(ctx context.Context, provider string) (*CostOverview, error) {
	query := url.Values{}
	if provider != "" {
		query.Set("provider", provider)
	}

	var overview CostOverview
	if err := s.client.doRequest(ctx, http.MethodGet, withQuery("/api/v1/costs", query), nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// Records lists stored cost records
func (s *CostService) Records(ctx context.Context, opts *CostRecordOptions) (*Page[CostRecord], error) {
	query := url.Values{}
	if opts != nil {
		setPage(query, opts.ListOptions)
		if opts.Provider != "" {
			query.Set("provider", opts.Provider)
		}
		if opts.Start != "" {
			query.Set("start", opts.Start)
		}
		if opts.End != "" {
			query.Set("end", opts.End)
		}
	}

	var page Page[CostRecord]
	if err := s.client.doRequest(ctx, http.MethodGet, withQuery("/api/v1/costs/records", query), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Budgets lists budgets. An empty provider returns all.
func (s *CostService) Budgets(ctx context.Context, provider string) ([]Budget, error) {
	query := url.Values{}
	if provider != "" {
		query.Set("provider", provider)
	}

	var budgets []Budget
	if err := s.client.doRequest(ctx, http.MethodGet, withQuery("/api/v1/budgets", query), nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

func setPage(query url.Values, opts ListOptions) {
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(opts.PageSize))
	}
}
