package dto

import (
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/recommendation"
)

// RecommendationDTO represents a recommendation in API responses
type RecommendationDTO struct {
	ID          int         `json:"id"`
	Provider    provider.ID `json:"provider"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Savings     float64     `json:"savings"`
	Effort      string      `json:"effort"`
	Impact      string      `json:"impact"`
	Category    string      `json:"category"`
	Resources   int         `json:"resources"`
	ResourceIDs []string    `json:"resourceIds,omitempty"`
}

// RecommendationSummaryDTO holds the aggregate savings figures
type RecommendationSummaryDTO struct {
	Count               int     `json:"count"`
	TotalSavings        float64 `json:"totalSavings"`
	AffectedResources   int     `json:"affectedResources"`
	QuickWins           int     `json:"quickWins"`
	TotalSpend          float64 `json:"totalSpend"`
	PercentageReduction float64 `json:"percentageReduction"`
}

// RecommendationListResponse pairs a filtered list with the summary of the
// full, unfiltered list.
type RecommendationListResponse struct {
	Recommendations []RecommendationDTO      `json:"recommendations"`
	Summary         RecommendationSummaryDTO `json:"summary"`
}

// NewRecommendationDTO converts a recommendation
func NewRecommendationDTO(r recommendation.Recommendation) RecommendationDTO {
	return RecommendationDTO{
		ID:          r.ID,
		Provider:    r.Provider,
		Title:       r.Title,
		Description: r.Description,
		Savings:     r.PotentialSavings,
		Effort:      r.Effort,
		Impact:      r.Impact,
		Category:    r.Category,
		Resources:   r.Resources,
		ResourceIDs: r.ResourceIDs,
	}
}

// NewRecommendationSummaryDTO converts a summary
func NewRecommendationSummaryDTO(s recommendation.Summary) RecommendationSummaryDTO {
	return RecommendationSummaryDTO{
		Count:               s.Count,
		TotalSavings:        s.TotalSavings,
		AffectedResources:   s.AffectedResources,
		QuickWins:           s.QuickWins,
		TotalSpend:          s.TotalSpend,
		PercentageReduction: s.PercentageReduction,
	}
}
