package dto

import (
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
)

// ResourceDTO represents a cloud resource in API responses
// Uses camelCase for frontend compatibility
type ResourceDTO struct {
	ID          string            `json:"id"`
	Provider    provider.ID       `json:"provider"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Category    string            `json:"category"`
	Region      string            `json:"region"`
	Status      string            `json:"status"`
	Cost        float64           `json:"cost"`
	Utilization *float64          `json:"utilization,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// NewResourceDTO converts a correlated resource
func NewResourceDTO(r resource.Resource) ResourceDTO {
	return ResourceDTO{
		ID:          r.ID,
		Provider:    r.Provider,
		Name:        r.Name,
		Type:        r.Type,
		Category:    string(r.Category()),
		Region:      r.Region,
		Status:      r.Status,
		Cost:        r.Cost,
		Utilization: r.Utilization,
		Tags:        r.Tags,
	}
}

// ResourceSummaryDTO represents resource summary statistics
type ResourceSummaryDTO struct {
	Total      int                 `json:"total"`
	ByProvider map[provider.ID]int `json:"byProvider"`
	ByCategory map[string]int      `json:"byCategory"`
	ByStatus   map[string]int      `json:"byStatus"`
	TotalCost  float64             `json:"totalCost"`
}
