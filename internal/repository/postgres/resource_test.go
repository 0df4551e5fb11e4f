package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
)

func TestResourceRepository_ReplaceAndList(t *testing.T) {
	repo := NewResourceRepository(newTestDB(t))
	ctx := context.Background()
	util := 12.5

	require.NoError(t, repo.ReplaceResources(ctx, 1, provider.AWS, []resource.Resource{
		{ID: "i-2", Name: "worker", Type: "EC2 Instance", Region: "us-east-1", Status: resource.StatusRunning, Cost: 42.1, Utilization: &util, Tags: map[string]string{"env": "dev"}},
		{ID: "i-1", Name: "api", Type: "EC2 Instance", Region: "us-east-1", Status: resource.StatusStopped},
	}))
	require.NoError(t, repo.ReplaceResources(ctx, 1, provider.GCP, []resource.Resource{
		{ID: "gs://logs", Name: "logs", Type: "Cloud Storage Bucket"},
	}))

	got, err := repo.ListResources(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "i-1", got[0].ID)
	assert.Equal(t, "api", got[0].Name)
	assert.Nil(t, got[0].Utilization)
	assert.Equal(t, provider.AWS, got[0].Provider)

	assert.Equal(t, "i-2", got[1].ID)
	require.NotNil(t, got[1].Utilization)
	assert.Equal(t, 12.5, *got[1].Utilization)
	assert.Equal(t, 42.1, got[1].Cost)
	assert.Equal(t, "dev", got[1].Tags["env"])

	assert.Equal(t, provider.GCP, got[2].Provider)

	require.NoError(t, repo.DeleteByProvider(ctx, 1, provider.AWS))
	got, err = repo.ListResources(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "gs://logs", got[0].ID)
}

func TestResourceRepository_DuplicateIDRollsBack(t *testing.T) {
	repo := NewResourceRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceResources(ctx, 1, provider.AWS, []resource.Resource{{ID: "i-1", Name: "api", Type: "EC2 Instance"}}))

	err := repo.ReplaceResources(ctx, 1, provider.AWS, []resource.Resource{
		{ID: "i-2", Name: "worker", Type: "EC2 Instance"},
		{ID: "i-2", Name: "worker-again", Type: "EC2 Instance"},
	})
	require.Error(t, err)

	got, err := repo.ListResources(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "api", got[0].Name)
}

func TestResourceRepository_UsersAreIsolated(t *testing.T) {
	repo := NewResourceRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceResources(ctx, 1, provider.Azure, []resource.Resource{{ID: "vm-1", Name: "a", Type: "Virtual Machine"}}))
	require.NoError(t, repo.ReplaceResources(ctx, 2, provider.Azure, []resource.Resource{{ID: "vm-1", Name: "b", Type: "Virtual Machine"}}))
	require.NoError(t, repo.ReplaceResources(ctx, 1, provider.Azure, nil))

	got, err := repo.ListResources(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Name)

	got, err = repo.ListResources(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}
