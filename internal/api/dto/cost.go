package dto

import (
	"time"

	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
)

// CostSummaryDTO is one provider's cost breakdown
type CostSummaryDTO struct {
	Provider  provider.ID        `json:"provider"`
	TotalCost float64            `json:"totalCost"`
	Currency  string             `json:"currency"`
	Records   int                `json:"records"`
	ByService map[string]float64 `json:"byService"`
	ByRegion  map[string]float64 `json:"byRegion"`
}

// CostOverviewDTO is the response of the cost summary endpoint
type CostOverviewDTO struct {
	TotalCost float64          `json:"totalCost"`
	Providers []CostSummaryDTO `json:"providers"`
}

// CostRecordDTO is one daily spend bucket
type CostRecordDTO struct {
	Provider provider.ID `json:"provider"`
	Date     string      `json:"date"`
	Service  string      `json:"service"`
	Region   string      `json:"region,omitempty"`
	Amount   float64     `json:"amount"`
	Currency string      `json:"currency"`
}

// BudgetDTO represents a budget with its utilization
type BudgetDTO struct {
	ID          string      `json:"id"`
	Provider    provider.ID `json:"provider"`
	Name        string      `json:"name"`
	Amount      float64     `json:"amount"`
	Spent       float64     `json:"spent"`
	Period      string      `json:"period"`
	Utilization float64     `json:"utilization"`
}

// NewCostSummaryDTO converts a cost summary
func NewCostSummaryDTO(s cost.Summary) CostSummaryDTO {
	return CostSummaryDTO{
		Provider:  s.Provider,
		TotalCost: s.TotalCost,
		Currency:  s.Currency,
		Records:   s.Records,
		ByService: s.ByService,
		ByRegion:  s.ByRegion,
	}
}

// NewCostRecordDTO converts a cost record
func NewCostRecordDTO(id provider.ID, r cost.Record) CostRecordDTO {
	return CostRecordDTO{
		Provider: id,
		Date:     r.Date.Format(cost.DateLayout),
		Service:  r.Service,
		Region:   r.Region,
		Amount:   r.Amount,
		Currency: r.Currency,
	}
}

// NewBudgetDTO converts a budget
func NewBudgetDTO(b cost.Budget) BudgetDTO {
	return BudgetDTO{
		ID:          b.ID,
		Provider:    b.Provider,
		Name:        b.Name,
		Amount:      b.Amount,
		Spent:       b.Spent,
		Period:      b.Period,
		Utilization: cost.Round2(b.Utilization()),
	}
}

// SyncRequest selects the date range of a sync. Start and End take
// precedence over Days; with neither, the server default lookback applies.
type SyncRequest struct {
	Start string `json:"start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"end,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Days  int    `json:"days,omitempty" validate:"omitempty,min=1,max=366"`
}

// SyncResponse reports a finished sync
type SyncResponse struct {
	Start         string                 `json:"start"`
	End           string                 `json:"end"`
	Providers     []provider.ID          `json:"providers"`
	Resources     int                    `json:"resources"`
	Budgets       int                    `json:"budgets"`
	TotalCost     float64                `json:"totalCost"`
	PersistErrors map[provider.ID]string `json:"persistErrors,omitempty"`
	DurationMs    int64                  `json:"durationMs"`
	SyncedAt      time.Time              `json:"syncedAt"`
}

// SnapshotDTO is the correlated view of a user's providers
type SnapshotDTO struct {
	Providers   []provider.ID    `json:"providers"`
	TotalCost   float64          `json:"totalCost"`
	Costs       []CostSummaryDTO `json:"costs"`
	Resources   []ResourceDTO    `json:"resources"`
	Budgets     []BudgetDTO      `json:"budgets"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
