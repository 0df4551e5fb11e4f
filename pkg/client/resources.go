package client

import (
	"context"
	"net/http"
	"net/url"
)

// ResourceService handles resource-related API calls
type ResourceService struct {
	client *Client
}

// ResourceListOptions contains options for listing resources
type ResourceListOptions struct {
	ListOptions
	Provider string
	Category string
	Region   string
	Status   string
}

// List retrieves a page of resources
func (s *ResourceService) List(ctx context.Context, opts *ResourceListOptions) (*Page[Resource], error) {
	query := url.Values{}
	if opts != nil {
		setPage(query, opts.ListOptions)
		for k, v := range map[string]string{
			"provider": opts.Provider,
			"category": opts.Category,
			"region":   opts.Region,
			"status":   opts.Status,
		} {
			if v != "" {
				query.Set(k, v)
			}
		}
	}

	var page Page[Resource]
	if err := s.client.doRequest(ctx, http.MethodGet, withQuery("/api/v1/resources", query), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves one resource of a provider
func (s *ResourceService) Get(ctx context.Context, provider, id string) (*Resource, error) {
	var res Resource
	path := "/api/v1/resources/" + url.PathEscape(provider) + "/" + url.PathEscape(id)
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Summary returns resource counts and their total estimated cost
func (s *ResourceService) Summary(ctx context.Context) (*ResourceSummary, error) {
	var summary ResourceSummary
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/resources/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
