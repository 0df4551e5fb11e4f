package cost

import (
	"context"

	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
)

// Repository defines the interface for cost and budget data access.
// Each Replace call deletes every row for (userID, id) and inserts
// the given set in one transaction.
type Repository interface {
	// ReplaceCosts replaces the cost records of one provider
	ReplaceCosts(ctx context.Context, userID int64, id provider.ID, records []Record) error

	// ListCosts returns a user's cost records keyed by provider
	ListCosts(ctx context.Context, userID int64) (map[provider.ID][]Record, error)

	// ReplaceBudgets replaces the budgets of one provider
	ReplaceBudgets(ctx context.Context, userID int64, id provider.ID, budgets []Budget) error

	// ListBudgets returns all of a user's budgets
	ListBudgets(ctx context.Context, userID int64) ([]Budget, error)

	// DeleteByProvider removes cost records and budgets for a provider
	DeleteByProvider(ctx context.Context, userID int64, id provider.ID) error
}
