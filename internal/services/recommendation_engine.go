package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/recommendation"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/metrics"
)

// RecommendationPolicy holds the savings fractions and thresholds of every rule.
// These are tunable estimates, not derived figures.
type RecommendationPolicy struct {
	UnderutilizedBelow float64 `json:"underutilized_below"`
	UnderutilizedShare float64 `json:"underutilized_share"`
	StorageShare       float64 `json:"storage_share"`
	ReservedMinCost    float64 `json:"reserved_min_cost"`
	ReservedShare      float64 `json:"reserved_share"`
	NetworkShare       float64 `json:"network_share"`
	NetworkMinSavings  float64 `json:"network_min_savings"`
	DevTestShare       float64 `json:"dev_test_share"`
	DevTestMinSavings  float64 `json:"dev_test_min_savings"`
}

// DefaultRecommendationPolicy returns the stock rule constants.
func DefaultRecommendationPolicy() RecommendationPolicy {
	return RecommendationPolicy{
		UnderutilizedBelow: 30,
		UnderutilizedShare: 0.4,
		StorageShare:       0.2,
		ReservedMinCost:    1000,
		ReservedShare:      0.15,
		NetworkShare:       0.1,
		NetworkMinSavings:  100,
		DevTestShare:       0.3,
		DevTestMinSavings:  200,
	}
}

// Tag keys and values that mark a non-production resource.
var (
	environmentTagKeys = []string{"env", "environment", "stage"}
	devTestMarkers     = []string{"dev", "test"}
)

// rule is one heuristic. A rule fires when at least one resource matches and
// the summed savings clear minSavings, if set.
type rule struct {
	name       string
	category   string
	effort     string
	impact     string
	share      float64
	minSavings float64
	match      func(r resource.Resource) bool
	title      func(id provider.ID, n int) string
	describe   func(n int, spend, savings float64) string
}

func (p RecommendationPolicy) rules() []rule {
	return []rule{
		{
			name:     "underutilized_compute",
			category: recommendation.CategoryCompute,
			effort:   recommendation.EffortMedium,
			impact:   recommendation.ImpactHigh,
			share:    p.UnderutilizedShare,
			match: func(r resource.Resource) bool {
				return resource.IsCompute(r.Type) && r.Utilization != nil && *r.Utilization < p.UnderutilizedBelow
			},
			title: func(id provider.ID, n int) string {
				return fmt.Sprintf("Right-size %d underutilized %s compute %s", n, id.DisplayName(), plural(n, "instance", "instances"))
			},
			describe: func(n int, spend, savings float64) string {
				return fmt.Sprintf("%d compute %s run below %.0f%% utilization and cost %.2f per month. Downsizing or consolidating them could save about %.2f.",
					n, plural(n, "resource", "resources"), p.UnderutilizedBelow, spend, savings)
			},
		},
		{
			name:     "storage_optimization",
			category: recommendation.CategoryStorage,
			effort:   recommendation.EffortLow,
			impact:   recommendation.ImpactMedium,
			share:    p.StorageShare,
			match: func(r resource.Resource) bool {
				return resource.IsStorage(r.Type)
			},
			title: func(id provider.ID, n int) string {
				return fmt.Sprintf("Optimize %s storage tiers and lifecycle policies", id.DisplayName())
			},
			describe: func(n int, spend, savings float64) string {
				return fmt.Sprintf("%d storage %s cost %.2f per month. Moving cold data to cheaper tiers and expiring stale snapshots could save about %.2f.",
					n, plural(n, "resource", "resources"), spend, savings)
			},
		},
		{
			name:     "reserved_capacity",
			category: recommendation.CategoryCommitment,
			effort:   recommendation.EffortMedium,
			impact:   recommendation.ImpactHigh,
			share:    p.ReservedShare,
			match: func(r resource.Resource) bool {
				return r.Cost > p.ReservedMinCost && resource.IsCommitmentEligible(r.Type)
			},
			title: func(id provider.ID, n int) string {
				return fmt.Sprintf("Buy reserved capacity for %d steady %s %s", n, id.DisplayName(), plural(n, "workload", "workloads"))
			},
			describe: func(n int, spend, savings float64) string {
				return fmt.Sprintf("%d VM or database %s each cost more than %.0f per month (%.2f in total). Reserved instances or savings plans could save about %.2f.",
					n, plural(n, "resource", "resources"), p.ReservedMinCost, spend, savings)
			},
		},
		{
			name:       "idle_network",
			category:   recommendation.CategoryNetwork,
			effort:     recommendation.EffortLow,
			impact:     recommendation.ImpactLow,
			share:      p.NetworkShare,
			minSavings: p.NetworkMinSavings,
			match: func(r resource.Resource) bool {
				return resource.IsNetworkGear(r.Type)
			},
			title: func(id provider.ID, n int) string {
				return fmt.Sprintf("Review %d %s load %s and gateways", n, id.DisplayName(), plural(n, "balancer", "balancers"))
			},
			describe: func(n int, spend, savings float64) string {
				return fmt.Sprintf("%d load %s or gateways cost %.2f per month. Removing idle ones and consolidating the rest could save about %.2f.",
					n, plural(n, "balancer", "balancers"), spend, savings)
			},
		},
		{
			name:       "dev_test_rightsizing",
			category:   recommendation.CategoryCompute,
			effort:     recommendation.EffortLow,
			impact:     recommendation.ImpactMedium,
			share:      p.DevTestShare,
			minSavings: p.DevTestMinSavings,
			match:      isDevTest,
			title: func(id provider.ID, n int) string {
				return fmt.Sprintf("Schedule or downsize %d %s dev/test %s", n, id.DisplayName(), plural(n, "resource", "resources"))
			},
			describe: func(n int, spend, savings float64) string {
				return fmt.Sprintf("%d %s tagged as development or test cost %.2f per month. Stopping them outside working hours could save about %.2f.",
					n, plural(n, "resource", "resources"), spend, savings)
			},
		},
	}
}

// RecommendationEngine derives cost-optimization recommendations from
// correlated resources. It performs no I/O.
type RecommendationEngine struct {
	policy RecommendationPolicy
	rules  []rule
}

// NewRecommendationEngine creates a recommendation engine
func NewRecommendationEngine(policy RecommendationPolicy) *RecommendationEngine {
	return &RecommendationEngine{policy: policy, rules: policy.rules()}
}

// Generate evaluates every rule for each registered provider, in sorted
// provider order, and returns the recommendations ranked by savings.
// IDs run from 1 in the order the rules fired.
func (e *RecommendationEngine) Generate(resources []resource.Resource, registered []provider.ID) []recommendation.Recommendation {
	byProvider := lo.GroupBy(resources, func(r resource.Resource) provider.ID { return r.Provider })
	ids := provider.SortIDs(lo.Uniq(registered))

	recs := []recommendation.Recommendation{}
	for _, id := range ids {
		subset := byProvider[id]
		if len(subset) == 0 {
			continue
		}
		for _, rl := range e.rules {
			rec, ok := rl.evaluate(id, subset)
			if !ok {
				continue
			}
			rec.ID = len(recs) + 1
			recs = append(recs, rec)
			metrics.RecordRecommendation(id.String(), rec.Category)
		}
	}
	return Rank(recs)
}

func (rl rule) evaluate(id provider.ID, resources []resource.Resource) (recommendation.Recommendation, bool) {
	matched := lo.Filter(resources, func(r resource.Resource, _ int) bool { return rl.match(r) })
	if len(matched) == 0 {
		return recommendation.Recommendation{}, false
	}

	spend := lo.SumBy(matched, func(r resource.Resource) float64 { return r.Cost })
	savings := cost.Round2(lo.SumBy(matched, func(r resource.Resource) float64 { return r.Cost * rl.share }))
	if rl.minSavings > 0 && !(savings > rl.minSavings) {
		return recommendation.Recommendation{}, false
	}

	n := len(matched)
	return recommendation.Recommendation{
		Title:            rl.title(id, n),
		Description:      rl.describe(n, cost.Round2(spend), savings),
		PotentialSavings: savings,
		Effort:           rl.effort,
		Impact:           rl.impact,
		Category:         rl.category,
		Resources:        n,
		ResourceIDs:      lo.Map(matched, func(r resource.Resource, _ int) string { return r.ID }),
		Provider:         id,
	}, true
}

// Rank sorts recs by potential savings, highest first. Ties keep their order.
func Rank(recs []recommendation.Recommendation) []recommendation.Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].PotentialSavings > recs[j].PotentialSavings
	})
	return recs
}

// Summarize derives the aggregate figures for recs against the observed spend.
// A resource matched by several rules is counted once per rule.
func Summarize(recs []recommendation.Recommendation, costs map[provider.ID][]cost.Record) recommendation.Summary {
	total := lo.SumBy(recs, func(r recommendation.Recommendation) float64 { return r.PotentialSavings })
	spend := cost.GrandTotal(costs)

	s := recommendation.Summary{
		Count:             len(recs),
		TotalSavings:      cost.Round2(total),
		AffectedResources: lo.SumBy(recs, func(r recommendation.Recommendation) int { return r.Resources }),
		QuickWins:         lo.CountBy(recs, func(r recommendation.Recommendation) bool { return r.QuickWin() }),
		TotalSpend:        cost.Round2(spend),
	}
	if spend > 0 {
		s.PercentageReduction = cost.Round2(total / spend * 100)
	}
	return s
}

func isDevTest(r resource.Resource) bool {
	v, ok := r.Tag(environmentTagKeys...)
	if !ok {
		return false
	}
	v = strings.ToLower(v)
	for _, marker := range devTestMarkers {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
