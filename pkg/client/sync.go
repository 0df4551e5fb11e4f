package client

import (
	"context"
	"net/http"
)

// Sync fetches every connected provider and stores the result. A nil req
// uses the server's default lookback.
func (c *Client) Sync(ctx context.Context, req *SyncRequest) (*SyncResult, error) {
	var body interface{}
	if req != nil {
		body = req
	}
	var result SyncResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/sync", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Snapshot returns the stored, correlated data of every connected provider
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/snapshot", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
