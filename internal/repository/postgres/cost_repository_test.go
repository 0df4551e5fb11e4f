package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
)

func TestCostRepository_ReplaceCosts(t *testing.T) {
	repo := NewCostRepository(newTestDB(t))
	ctx := context.Background()
	jan := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.ReplaceCosts(ctx, 1, provider.AWS, []cost.Record{
		{Date: jan, Amount: 10, Currency: "USD", Service: "Amazon EC2", Region: "us-east-1"},
		{Date: jan, Amount: 99, Currency: "USD", Service: "Amazon S3"},
	}))
	require.NoError(t, repo.ReplaceCosts(ctx, 1, provider.GCP, []cost.Record{
		{Date: jan, Amount: 5.5, Currency: "USD", Service: "Compute Engine"},
	}))
	require.NoError(t, repo.ReplaceCosts(ctx, 2, provider.AWS, []cost.Record{
		{Date: jan, Amount: 1, Currency: "USD", Service: "Amazon EC2"},
	}))

	// A second sync replaces the first one's rows.
	require.NoError(t, repo.ReplaceCosts(ctx, 1, provider.AWS, []cost.Record{
		{Date: jan.AddDate(0, 0, 1), Amount: 12.25, Currency: "USD", Service: "Amazon EC2", Region: "us-east-1"},
	}))

	got, err := repo.ListCosts(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Len(t, got[provider.AWS], 1)
	assert.Equal(t, cost.Record{
		Date: jan.AddDate(0, 0, 1), Amount: 12.25, Currency: "USD", Service: "Amazon EC2", Region: "us-east-1",
	}, got[provider.AWS][0])
	assert.Len(t, got[provider.GCP], 1)

	require.NoError(t, repo.ReplaceCosts(ctx, 1, provider.AWS, nil))
	got, err = repo.ListCosts(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, got[provider.AWS])
}

func TestCostRepository_Budgets(t *testing.T) {
	repo := NewCostRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceBudgets(ctx, 1, provider.Azure, []cost.Budget{
		{ID: "b-2", Name: "Quarterly", Amount: 9000, Spent: 100, Period: cost.PeriodQuarterly},
		{ID: "b-1", Name: "Monthly", Amount: 3000, Spent: 2500, Period: cost.PeriodMonthly},
	}))

	got, err := repo.ListBudgets(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b-1", got[0].ID)
	assert.Equal(t, provider.Azure, got[0].Provider)
	assert.Equal(t, 2500.0, got[0].Spent)

	require.NoError(t, repo.DeleteByProvider(ctx, 1, provider.Azure))
	got, err = repo.ListBudgets(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCostRepository_DuplicateBudgetRollsBack(t *testing.T) {
	repo := NewCostRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceBudgets(ctx, 1, provider.AWS, []cost.Budget{
		{ID: "keep", Name: "Existing", Amount: 10, Period: cost.PeriodMonthly},
	}))

	err := repo.ReplaceBudgets(ctx, 1, provider.AWS, []cost.Budget{
		{ID: "dup", Name: "A", Amount: 1, Period: cost.PeriodMonthly},
		{ID: "dup", Name: "B", Amount: 2, Period: cost.PeriodMonthly},
	})
	require.Error(t, err)

	got, err := repo.ListBudgets(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "keep", got[0].ID)
}
