package client

import (
	"context"
	"net/http"
	"net/url"
)

// ProviderService handles provider-related API calls
type ProviderService struct {
	client *Client
}

// List retrieves the caller's provider accounts
func (s *ProviderService) List(ctx context.Context) ([]Provider, error) {
	var providers []Provider
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/providers", nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// Connect tests and stores credentials for a provider (aws, gcp or azure)
func (s *ProviderService) Connect(ctx context.Context, provider string, creds Credentials) (*Provider, error) {
	var p Provider
	path := "/api/v1/providers/" + url.PathEscape(provider) + "/connect"
	if err := s.client.doRequest(ctx, http.MethodPost, path, creds, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Disconnect removes a provider account and its synced data
func (s *ProviderService) Disconnect(ctx context.Context, provider string) error {
	return s.client.doRequest(ctx, http.MethodDelete, "/api/v1/providers/"+url.PathEscape(provider), nil, nil)
}

// Test checks connectivity of every connected provider
func (s *ProviderService) Test(ctx context.Context) ([]ConnectionTest, error) {
	var results []ConnectionTest
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/v1/providers/test", nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Status returns the sync status of every provider account
func (s *ProviderService) Status(ctx context.Context) ([]ProviderStatus, error) {
	var statuses []ProviderStatus
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/v1/providers/status", nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}
