package recommendation

import "github.com/pratik-mahalle/spendlens/internal/domain/provider"

// Recommendation is one optimization opportunity for one provider.
// IDs are unique only within the run that produced them.
type Recommendation struct {
	ID               int         `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	PotentialSavings float64     `json:"potential_savings"`
	Effort           string      `json:"effort"`
	Impact           string      `json:"impact"`
	Category         string      `json:"category"`
	Resources        int         `json:"resources"`
	ResourceIDs      []string    `json:"resource_ids,omitempty"`
	Provider         provider.ID `json:"provider"`
}

// Effort levels
const (
	EffortLow    = "low"
	EffortMedium = "medium"
	EffortHigh   = "high"
)

// Impact levels
const (
	ImpactHigh   = "high"
	ImpactMedium = "medium"
	ImpactLow    = "low"
)

// Categories
const (
	CategoryCompute    = "compute"
	CategoryStorage    = "storage"
	CategoryNetwork    = "network"
	CategoryCommitment = "commitment"
)

// QuickWin reports whether the recommendation needs little effort.
func (r Recommendation) QuickWin() bool {
	return r.Effort == EffortLow
}

// Summary holds the aggregate figures derived from one recommendation list.
type Summary struct {
	Count               int     `json:"count"`
	TotalSavings        float64 `json:"total_savings"`
	AffectedResources   int     `json:"affected_resources"`
	QuickWins           int     `json:"quick_wins"`
	TotalSpend          float64 `json:"total_spend"`
	PercentageReduction float64 `json:"percentage_reduction"`
}

// Filter contains recommendation filtering options
type Filter struct {
	Provider provider.ID
	Category string
	Effort   string
}

// Match reports whether r passes every non-empty filter field.
func (f Filter) Match(r Recommendation) bool {
	if f.Provider != "" && r.Provider != f.Provider {
		return false
	}
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Effort != "" && r.Effort != f.Effort {
		return false
	}
	return true
}
