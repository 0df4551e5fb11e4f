package resource

import (
	"context"

	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
)

// Repository defines the interface for resource data access
type Repository interface {
	// ReplaceResources deletes a provider's resources and inserts the given set
	// in one transaction
	ReplaceResources(ctx context.Context, userID int64, id provider.ID, resources []Resource) error

	// ListResources returns all of a user's resources
	ListResources(ctx context.Context, userID int64) ([]Resource, error)

	// DeleteByProvider deletes all resources for a provider
	DeleteByProvider(ctx context.Context, userID int64, id provider.ID) error
}
