package provider

import (
	"context"
	"time"
)

// Repository defines the interface for provider account data access
type Repository interface {
	// Upsert creates or updates a provider account
	Upsert(ctx context.Context, account *Account) error

	// Get retrieves a provider account by provider
	Get(ctx context.Context, userID int64, id ID) (*Account, error)

	// List retrieves all provider accounts for a user
	List(ctx context.Context, userID int64) ([]*Account, error)

	// ListUsers returns every user with at least one connected account
	ListUsers(ctx context.Context) ([]int64, error)

	// Delete deletes a provider account
	Delete(ctx context.Context, userID int64, id ID) error

	// UpdateSyncStatus records the time of the last successful sync
	UpdateSyncStatus(ctx context.Context, userID int64, id ID, lastSynced time.Time) error
}
