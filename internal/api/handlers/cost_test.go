package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/spendlens/internal/api/dto"
	"github.com/pratik-mahalle/spendlens/internal/pkg/utils"
)

func TestCostHandler_Summary(t *testing.T) {
	f := newAPIFixture(nil)
	f.seed(t)
	handler := NewCostHandler(f.sync, f.log)

	rr := call(handler.Summary, http.MethodGet, "/api/v1/costs", "", 1, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var overview dto.CostOverviewDTO
	decode(t, rr, &overview)
	assert.Equal(t, 1500.0, overview.TotalCost)
	require.Len(t, overview.Providers, 1)
	assert.Equal(t, 1000.0, overview.Providers[0].ByService["Virtual Machines"])
	assert.Equal(t, 1500.0, overview.Providers[0].ByRegion["eastus"])

	rr = call(handler.Summary, http.MethodGet, "/api/v1/costs?provider=aws", "", 1, nil)
	decode(t, rr, &overview)
	assert.Zero(t, overview.TotalCost)
	assert.Empty(t, overview.Providers)

	rr = call(handler.Summary, http.MethodGet, "/api/v1/costs?provider=oracle", "", 1, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCostHandler_Records(t *testing.T) {
	f := newAPIFixture(nil)
	f.seed(t)
	handler := NewCostHandler(f.sync, f.log)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantTotal  int64
	}{
		{"all records", "", http.StatusOK, 2},
		{"range covering first day", "?start=2025-01-10&end=2025-01-10", http.StatusOK, 1},
		{"range before data", "?start=2024-01-01&end=2024-01-31", http.StatusOK, 0},
		{"other provider", "?provider=gcp", http.StatusOK, 0},
		{"half range", "?start=2025-01-10", http.StatusBadRequest, 0},
		{"inverted range", "?start=2025-02-01&end=2025-01-01", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := call(handler.Records, http.MethodGet, "/api/v1/costs/records"+tt.query, "", 1, nil)
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var page utils.PaginatedResponse
			decode(t, rr, &page)
			assert.Equal(t, tt.wantTotal, page.TotalItems)
		})
	}
}

func TestCostHandler_Budgets(t *testing.T) {
	f := newAPIFixture(nil)
	f.seed(t)
	handler := NewCostHandler(f.sync, f.log)

	rr := call(handler.Budgets, http.MethodGet, "/api/v1/budgets", "", 1, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var budgets []dto.BudgetDTO
	decode(t, rr, &budgets)
	require.Len(t, budgets, 1)
	assert.Equal(t, "b-1", budgets[0].ID)
	assert.Equal(t, 75.0, budgets[0].Utilization)

	rr = call(handler.Budgets, http.MethodGet, "/api/v1/budgets?provider=aws", "", 1, nil)
	decode(t, rr, &budgets)
	assert.Empty(t, budgets)
}
