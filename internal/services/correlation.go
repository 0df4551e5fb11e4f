package services

import (
	"strings"

	"github.com/samber/lo"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/metrics"
)

// Correlation tiers, in the order they are tried.
const (
	TierCategory     = "category"
	TierPartial      = "partial"
	TierProportional = "proportional"
	TierNone         = "none"
)

// CorrelationPolicy holds the tunable constants of the proportional tier.
type CorrelationPolicy struct {
	// FallbackShare is the fraction of the per-resource average assigned
	// to a resource no label matched.
	FallbackShare float64
	// FallbackMinResources is the smallest divisor used for that average.
	FallbackMinResources int
}

// DefaultCorrelationPolicy returns the stock constants.
func DefaultCorrelationPolicy() CorrelationPolicy {
	return CorrelationPolicy{
		FallbackShare:        0.1,
		FallbackMinResources: 10,
	}
}

// Region labels that mean a cost applies everywhere.
var globalRegions = map[string]bool{
	"global":      true,
	"all":         true,
	"all regions": true,
	"noregion":    true,
	"no region":   true,
	"unassigned":  true,
}

// Vendor namespace prefixes stripped before partial matching.
var vendorPrefixes = []string{
	"microsoft.",
	"aws::",
	"amazon ",
	"aws ",
	"azure ",
	"google cloud ",
	"google ",
	"gcp ",
}

// CorrelationEngine estimates a monthly cost for every resource from cost
// records that share no key with it.
type CorrelationEngine struct {
	policy CorrelationPolicy
}

// NewCorrelationEngine creates a correlation engine
func NewCorrelationEngine(policy CorrelationPolicy) *CorrelationEngine {
	if policy.FallbackMinResources < 1 {
		policy.FallbackMinResources = 1
	}
	return &CorrelationEngine{policy: policy}
}

// Correlate returns a copy of resources with Cost set from the cost records of
// each resource's provider. The input slice is not modified. The result is a
// pure function of the inputs.
func (e *CorrelationEngine) Correlate(resources []resource.Resource, costs map[provider.ID][]cost.Record) []resource.Resource {
	out := make([]resource.Resource, len(resources))
	counts := lo.CountValuesBy(resources, func(r resource.Resource) provider.ID { return r.Provider })

	for i, r := range resources {
		amount, tier := e.Estimate(r, costs[r.Provider], counts[r.Provider])
		r.Cost = cost.Round2(amount)
		out[i] = r
		metrics.RecordCorrelationTier(r.Provider.String(), tier)
	}
	return out
}

// Estimate returns the unrounded cost of r and the tier that produced it.
// records are r's provider's cost records and providerResources the number
// of resources that provider has.
func (e *CorrelationEngine) Estimate(r resource.Resource, records []cost.Record, providerResources int) (float64, string) {
	if len(records) == 0 {
		return 0, TierNone
	}
	if v := categoryMatch(r, records); v > 0 {
		return v, TierCategory
	}
	if v := partialMatch(r, records); v > 0 {
		return v, TierPartial
	}
	if providerResources > 0 {
		divisor := max(providerResources, e.policy.FallbackMinResources)
		if v := cost.Total(records) / float64(divisor) * e.policy.FallbackShare; v > 0 {
			return v, TierProportional
		}
	}
	return 0, TierNone
}

// categoryMatch sums every record whose service belongs to the resource's
// category and whose region is compatible with the resource's.
func categoryMatch(r resource.Resource, records []cost.Record) float64 {
	category := r.Category()
	if category == resource.CategoryOther {
		return 0
	}
	matched := lo.Filter(records, func(rec cost.Record, _ int) bool {
		return category.MatchesService(rec.Service) && regionCompatible(r.Region, rec.Region)
	})
	return cost.Total(matched)
}

// partialMatch averages every record whose stripped service label and the
// resource's stripped type or name contain one another.
func partialMatch(r resource.Resource, records []cost.Record) float64 {
	typ := stripVendor(r.Type)
	name := stripVendor(r.Name)

	matched := lo.Filter(records, func(rec cost.Record, _ int) bool {
		svc := stripVendor(rec.Service)
		if svc == "" {
			return false
		}
		return overlaps(typ, svc) || overlaps(name, svc)
	})
	if len(matched) == 0 {
		return 0
	}
	return cost.Total(matched) / float64(len(matched))
}

func overlaps(label, svc string) bool {
	if label == "" {
		return false
	}
	return strings.Contains(label, svc) || strings.Contains(svc, label)
}

func regionCompatible(resourceRegion, costRegion string) bool {
	rr := strings.ToLower(strings.TrimSpace(resourceRegion))
	cr := strings.ToLower(strings.TrimSpace(costRegion))
	if rr == "" || cr == "" {
		return true
	}
	if globalRegions[cr] {
		return true
	}
	return strings.Contains(rr, cr) || strings.Contains(cr, rr)
}

func stripVendor(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, prefix := range vendorPrefixes {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(s, prefix))
		}
	}
	return s
}
