package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
)

var day = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func rec(service, region string, amount float64) cost.Record {
	return cost.Record{Date: day, Amount: amount, Currency: "USD", Service: service, Region: region}
}

func TestCorrelationEngine_Estimate(t *testing.T) {
	engine := NewCorrelationEngine(DefaultCorrelationPolicy())

	tests := []struct {
		name     string
		resource resource.Resource
		records  []cost.Record
		count    int
		wantCost float64
		wantTier string
	}{
		{
			name:     "category match sums every compatible record",
			resource: resource.Resource{ID: "i-1", Type: "Virtual Machine", Region: "us-east-1"},
			records: []cost.Record{
				rec("Amazon EC2", "us-east-1", 100),
				rec("EC2 - Other", "global", 50),
				rec("Amazon EC2", "eu-west-1", 70),
				rec("Amazon S3", "us-east-1", 30),
			},
			count:    1,
			wantCost: 150,
			wantTier: TierCategory,
		},
		{
			name:     "category match with empty region accepts every region",
			resource: resource.Resource{ID: "i-2", Type: "EC2 Instance"},
			records: []cost.Record{
				rec("Amazon EC2", "us-east-1", 10),
				rec("Amazon EC2", "eu-west-1", 20),
			},
			count:    1,
			wantCost: 30,
			wantTier: TierCategory,
		},
		{
			name:     "partial match averages after stripping vendor prefixes",
			resource: resource.Resource{ID: "w-1", Type: "Custom Widget"},
			records: []cost.Record{
				rec("Widget", "", 40),
				rec("Amazon Widget", "", 60),
				rec("Something Else", "", 1000),
			},
			count:    1,
			wantCost: 50,
			wantTier: TierPartial,
		},
		{
			name:     "proportional share uses the minimum divisor",
			resource: resource.Resource{ID: "m1", Type: "Mystery"},
			records:  []cost.Record{rec("Foo Service", "", 1000)},
			count:    2,
			wantCost: 10,
			wantTier: TierProportional,
		},
		{
			name:     "proportional share divides by resource count above the minimum",
			resource: resource.Resource{ID: "m1", Type: "Mystery"},
			records:  []cost.Record{rec("Foo Service", "", 1000)},
			count:    20,
			wantCost: 5,
			wantTier: TierProportional,
		},
		{
			name:     "no records",
			resource: resource.Resource{ID: "i-3", Type: "Virtual Machine"},
			count:    1,
			wantCost: 0,
			wantTier: TierNone,
		},
		{
			name:     "records summing to zero",
			resource: resource.Resource{ID: "m2", Type: "Mystery"},
			records:  []cost.Record{rec("Foo Service", "", 0)},
			count:    1,
			wantCost: 0,
			wantTier: TierNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tier := engine.Estimate(tt.resource, tt.records, tt.count)
			assert.InDelta(t, tt.wantCost, got, 1e-9)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func TestCorrelationEngine_Correlate_ZeroCostProvider(t *testing.T) {
	engine := NewCorrelationEngine(DefaultCorrelationPolicy())
	resources := []resource.Resource{
		{ID: "a", Type: "Virtual Machine", Provider: provider.AWS},
		{ID: "b", Type: "Blob Storage", Provider: provider.Azure},
		{ID: "c", Type: "Mystery", Provider: provider.Azure},
	}
	costs := map[provider.ID][]cost.Record{
		provider.AWS:   {rec("Amazon EC2", "", 80)},
		provider.Azure: {},
	}

	got := engine.Correlate(resources, costs)

	require.Len(t, got, 3)
	assert.Equal(t, 80.0, got[0].Cost)
	assert.Equal(t, 0.0, got[1].Cost)
	assert.Equal(t, 0.0, got[2].Cost)
}

func TestCorrelationEngine_Correlate_RoundsAndStaysNonNegative(t *testing.T) {
	engine := NewCorrelationEngine(DefaultCorrelationPolicy())
	resources := []resource.Resource{
		{ID: "x", Type: "Mystery", Provider: provider.GCP},
		{ID: "y", Type: "Virtual Machine", Provider: provider.GCP},
		{ID: "z", Type: "Cloud Storage Bucket", Provider: provider.GCP},
	}
	costs := map[provider.ID][]cost.Record{
		provider.GCP: {
			rec("Compute Engine", "", 33.3333),
			rec("Cloud Storage", "", 0.005),
			rec("BigQuery", "", 1.2345),
		},
	}

	got := engine.Correlate(resources, costs)

	for _, r := range got {
		assert.GreaterOrEqual(t, r.Cost, 0.0, r.ID)
		cents := r.Cost * 100
		assert.InDelta(t, math.Round(cents), cents, 1e-6, r.ID)
	}
	assert.Equal(t, 33.33, got[1].Cost)
}

func TestCorrelationEngine_Correlate_IsPure(t *testing.T) {
	engine := NewCorrelationEngine(DefaultCorrelationPolicy())
	resources := []resource.Resource{
		{ID: "a", Type: "Virtual Machine", Provider: provider.AWS, Cost: 999},
		{ID: "b", Type: "S3 Bucket Storage", Provider: provider.AWS},
	}
	costs := map[provider.ID][]cost.Record{
		provider.AWS: {rec("Amazon EC2", "", 120), rec("Amazon S3", "", 12.5)},
	}

	first := engine.Correlate(resources, costs)
	second := engine.Correlate(resources, costs)

	assert.Equal(t, first, second)
	assert.Equal(t, 999.0, resources[0].Cost, "input must not be modified")
	assert.Equal(t, 120.0, first[0].Cost)
	assert.Equal(t, 12.5, first[1].Cost)
}

func TestNewCorrelationEngine_ClampsMinimumDivisor(t *testing.T) {
	engine := NewCorrelationEngine(CorrelationPolicy{FallbackShare: 0.5, FallbackMinResources: 0})

	got, tier := engine.Estimate(resource.Resource{ID: "m", Type: "Mystery"}, []cost.Record{rec("Foo", "", 10)}, 1)

	assert.Equal(t, TierProportional, tier)
	assert.InDelta(t, 5.0, got, 1e-9)
}

func TestRegionCompatible(t *testing.T) {
	tests := []struct {
		resource, cost string
		want           bool
	}{
		{"us-east-1", "us-east-1", true},
		{"us-east-1a", "us-east-1", true},
		{"us-east-1", "", true},
		{"", "eu-west-1", true},
		{"us-east-1", "Global", true},
		{"eastus", "westeurope", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, regionCompatible(tt.resource, tt.cost), "%q vs %q", tt.resource, tt.cost)
	}
}
