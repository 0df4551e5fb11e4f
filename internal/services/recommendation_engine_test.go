package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/recommendation"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
)

func utilization(v float64) *float64 {
	return &v
}

func byCategory(recs []recommendation.Recommendation, category string) []recommendation.Recommendation {
	var out []recommendation.Recommendation
	for _, r := range recs {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

func TestRecommendationEngine_EndToEnd(t *testing.T) {
	engine := NewRecommendationEngine(DefaultRecommendationPolicy())
	resources := []resource.Resource{
		{ID: "vm-1", Type: "Virtual Machine", Provider: provider.Azure, Utilization: utilization(10), Cost: 1000},
		{ID: "blob-1", Type: "Blob Storage", Provider: provider.Azure, Cost: 500},
	}

	recs := engine.Generate(resources, []provider.ID{provider.Azure})

	require.Len(t, recs, 2)
	assert.Equal(t, recommendation.CategoryCompute, recs[0].Category)
	assert.Equal(t, 400.0, recs[0].PotentialSavings)
	assert.Equal(t, []string{"vm-1"}, recs[0].ResourceIDs)
	assert.Equal(t, recommendation.CategoryStorage, recs[1].Category)
	assert.Equal(t, 100.0, recs[1].PotentialSavings)

	summary := Summarize(recs, map[provider.ID][]cost.Record{
		provider.Azure: {rec("Virtual Machines", "", 1500), rec("Storage", "", 500)},
	})
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 500.0, summary.TotalSavings)
	assert.Equal(t, 2, summary.AffectedResources)
	assert.Equal(t, 1, summary.QuickWins)
	assert.Equal(t, 2000.0, summary.TotalSpend)
	assert.Equal(t, 25.0, summary.PercentageReduction)
}

func TestRecommendationEngine_NetworkThreshold(t *testing.T) {
	engine := NewRecommendationEngine(DefaultRecommendationPolicy())

	tests := []struct {
		name      string
		firstCost float64
		want      int
	}{
		{name: "99.99 is suppressed", firstCost: 500, want: 0},
		{name: "100.01 is emitted", firstCost: 500.2, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resources := []resource.Resource{
				{ID: "lb-1", Type: "Load Balancer", Provider: provider.AWS, Cost: tt.firstCost},
				{ID: "agw-1", Type: "Application Gateway", Provider: provider.AWS, Cost: 499.9},
			}

			recs := engine.Generate(resources, []provider.ID{provider.AWS})

			network := byCategory(recs, recommendation.CategoryNetwork)
			require.Len(t, network, tt.want)
			if tt.want == 1 {
				assert.Equal(t, 100.01, network[0].PotentialSavings)
				assert.Equal(t, 2, network[0].Resources)
			}
		})
	}
}

func TestRecommendationEngine_DevTestThreshold(t *testing.T) {
	engine := NewRecommendationEngine(DefaultRecommendationPolicy())

	tests := []struct {
		name string
		tags map[string]string
		cost float64
		want int
	}{
		{name: "dev tag above threshold", tags: map[string]string{"env": "dev"}, cost: 1000, want: 1},
		{name: "case-insensitive key and value", tags: map[string]string{"Environment": "Testing"}, cost: 1000, want: 1},
		{name: "stage key", tags: map[string]string{"stage": "dev-eu"}, cost: 1000, want: 1},
		{name: "savings equal to threshold", tags: map[string]string{"env": "dev"}, cost: 666.67, want: 0},
		{name: "production tag", tags: map[string]string{"env": "prod"}, cost: 5000, want: 0},
		{name: "no tags", cost: 5000, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resources := []resource.Resource{
				{ID: "app-1", Type: "Lambda Function", Provider: provider.AWS, Cost: tt.cost, Tags: tt.tags},
			}

			recs := engine.Generate(resources, []provider.ID{provider.AWS})

			assert.Len(t, recs, tt.want)
		})
	}
}

func TestRecommendationEngine_MissingUtilizationIsNotUnderutilized(t *testing.T) {
	engine := NewRecommendationEngine(DefaultRecommendationPolicy())
	resources := []resource.Resource{
		{ID: "vm-1", Type: "EC2 Instance", Provider: provider.AWS, Cost: 800},
		{ID: "vm-2", Type: "EC2 Instance", Provider: provider.AWS, Cost: 800, Utilization: utilization(30)},
	}

	recs := engine.Generate(resources, []provider.ID{provider.AWS})

	assert.Empty(t, recs)
}

func TestRecommendationEngine_ReservedCapacity(t *testing.T) {
	engine := NewRecommendationEngine(DefaultRecommendationPolicy())
	resources := []resource.Resource{
		{ID: "vm-1", Type: "Compute Engine VM Instance", Provider: provider.GCP, Cost: 2000, Utilization: utilization(80)},
		{ID: "db-1", Type: "Cloud SQL Instance", Provider: provider.GCP, Cost: 1500},
		{ID: "vm-2", Type: "Compute Engine VM Instance", Provider: provider.GCP, Cost: 1000, Utilization: utilization(80)},
	}

	recs := engine.Generate(resources, []provider.ID{provider.GCP})

	require.Len(t, recs, 1)
	assert.Equal(t, recommendation.CategoryCommitment, recs[0].Category)
	assert.Equal(t, 525.0, recs[0].PotentialSavings)
	assert.ElementsMatch(t, []string{"vm-1", "db-1"}, recs[0].ResourceIDs)
}

func TestRecommendationEngine_ProvidersAndIDs(t *testing.T) {
	engine := NewRecommendationEngine(DefaultRecommendationPolicy())
	resources := []resource.Resource{
		{ID: "gcs-1", Type: "Cloud Storage Bucket", Provider: provider.GCP, Cost: 2000},
		{ID: "vm-1", Type: "EC2 Instance", Provider: provider.AWS, Cost: 100, Utilization: utilization(5)},
		{ID: "s3-1", Type: "S3 Bucket Storage", Provider: provider.AWS, Cost: 50},
		{ID: "vm-9", Type: "Virtual Machine", Provider: provider.Azure, Cost: 9000, Utilization: utilization(1)},
	}

	// Azure is not registered; GCP is listed twice.
	recs := engine.Generate(resources, []provider.ID{provider.GCP, provider.AWS, provider.GCP})

	require.Len(t, recs, 3)
	assert.Equal(t, provider.GCP, recs[0].Provider)
	assert.Equal(t, 400.0, recs[0].PotentialSavings)
	assert.Equal(t, 3, recs[0].ID)
	assert.Equal(t, provider.AWS, recs[1].Provider)
	assert.Equal(t, 40.0, recs[1].PotentialSavings)
	assert.Equal(t, 1, recs[1].ID)
	assert.Equal(t, 10.0, recs[2].PotentialSavings)
	assert.Equal(t, 2, recs[2].ID)
}

func TestRecommendationEngine_NoResources(t *testing.T) {
	engine := NewRecommendationEngine(DefaultRecommendationPolicy())

	recs := engine.Generate(nil, provider.Known())

	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRank(t *testing.T) {
	recs := []recommendation.Recommendation{
		{ID: 1, PotentialSavings: 50},
		{ID: 2, PotentialSavings: 200},
		{ID: 3, PotentialSavings: 10},
		{ID: 4, PotentialSavings: 50},
	}

	got := Rank(recs)

	savings := make([]float64, len(got))
	ids := make([]int, len(got))
	for i, r := range got {
		savings[i] = r.PotentialSavings
		ids[i] = r.ID
	}
	assert.Equal(t, []float64{200, 50, 50, 10}, savings)
	assert.Equal(t, []int{2, 1, 4, 3}, ids)
}

func TestSummarize_NoSpend(t *testing.T) {
	recs := []recommendation.Recommendation{
		{PotentialSavings: 10.005, Resources: 2, Effort: recommendation.EffortLow},
		{PotentialSavings: 5, Resources: 1, Effort: recommendation.EffortMedium},
	}

	summary := Summarize(recs, nil)

	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 3, summary.AffectedResources)
	assert.Equal(t, 1, summary.QuickWins)
	assert.Equal(t, 0.0, summary.TotalSpend)
	assert.Equal(t, 0.0, summary.PercentageReduction)
}
