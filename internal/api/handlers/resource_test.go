package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/pratik-mahalle/spendlens/internal/api/dto"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/utils"
)

func TestResourceHandler_List(t *testing.T) {
	f := newAPIFixture(nil)
	f.seed(t)
	handler := NewResourceHandler(f.sync, f.log)

	tests := []struct {
		name           string
		userID         int64
		queryParams    string
		expectedStatus int
		expectedCount  int
		expectedTotal  int64
	}{
		{
			name:           "list all resources",
			userID:         1,
			expectedStatus: http.StatusOK,
			expectedCount:  2,
			expectedTotal:  2,
		},
		{
			name:           "list with pagination",
			userID:         1,
			queryParams:    "?page=2&page_size=1",
			expectedStatus: http.StatusOK,
			expectedCount:  1,
			expectedTotal:  2,
		},
		{
			name:           "page past the end",
			userID:         1,
			queryParams:    "?page=5&page_size=10",
			expectedStatus: http.StatusOK,
			expectedCount:  0,
			expectedTotal:  2,
		},
		{
			name:           "filter by category",
			userID:         1,
			queryParams:    "?category=storage",
			expectedStatus: http.StatusOK,
			expectedCount:  1,
			expectedTotal:  1,
		},
		{
			name:           "filter by provider",
			userID:         1,
			queryParams:    "?provider=aws",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "other user",
			userID:         2,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown category",
			userID:         1,
			queryParams:    "?category=quantum",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := call(handler.List, http.MethodGet, "/api/v1/resources"+tt.queryParams, "", tt.userID, nil)

			if status := rr.Code; status != tt.expectedStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v", status, tt.expectedStatus)
			}
			if rr.Code != http.StatusOK {
				return
			}

			var page utils.PaginatedResponse
			decode(t, rr, &page)
			raw, _ := json.Marshal(page.Data)
			var items []dto.ResourceDTO
			if err := json.Unmarshal(raw, &items); err != nil {
				t.Fatalf("failed to decode items: %v", err)
			}
			if len(items) != tt.expectedCount {
				t.Errorf("got %d items, want %d", len(items), tt.expectedCount)
			}
			if page.TotalItems != tt.expectedTotal {
				t.Errorf("total = %d, want %d", page.TotalItems, tt.expectedTotal)
			}
		})
	}
}

func TestResourceHandler_Get(t *testing.T) {
	f := newAPIFixture(nil)
	f.seed(t)
	handler := NewResourceHandler(f.sync, f.log)

	rr := call(handler.Get, http.MethodGet, "/api/v1/resources/azure/vm-1", "", 1,
		map[string]string{"provider": "azure", "*": "vm-1"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var res dto.ResourceDTO
	decode(t, rr, &res)
	if res.Cost != 1000 {
		t.Errorf("cost = %v, want 1000", res.Cost)
	}

	rr = call(handler.Get, http.MethodGet, "/api/v1/resources/aws/vm-1", "", 1,
		map[string]string{"provider": "aws", "*": "vm-1"})
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestResourceHandler_GetEscapedID(t *testing.T) {
	f := newAPIFixture(nil)
	f.seed(t)
	armID := "/subscriptions/0000/resourceGroups/app/providers/Microsoft.Compute/virtualMachines/app-vm-1"
	err := f.resourceRepo.ReplaceResources(context.Background(), 1, provider.Azure, []resource.Resource{
		{ID: armID, Name: "app-vm-1", Type: "Microsoft.Compute/virtualMachines", Provider: provider.Azure, Region: "eastus", Status: "running"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	handler := NewResourceHandler(f.sync, f.log)

	tests := []struct {
		name       string
		param      string
		wantStatus int
	}{
		{"escaped slashes", url.PathEscape(armID), http.StatusOK},
		{"raw slashes", armID, http.StatusOK},
		{"invalid escape", "%zz", http.StatusBadRequest},
		{"empty id", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := call(handler.Get, http.MethodGet, "/api/v1/resources/azure/x", "", 1,
				map[string]string{"provider": "azure", "*": tt.param})
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var res dto.ResourceDTO
			decode(t, rr, &res)
			if res.ID != armID {
				t.Errorf("id = %q, want %q", res.ID, armID)
			}
		})
	}
}

func TestResourceHandler_Summary(t *testing.T) {
	f := newAPIFixture(nil)
	f.seed(t)
	handler := NewResourceHandler(f.sync, f.log)

	rr := call(handler.Summary, http.MethodGet, "/api/v1/resources/summary", "", 1, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var summary dto.ResourceSummaryDTO
	decode(t, rr, &summary)
	if summary.Total != 2 || summary.TotalCost != 1500 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.ByCategory["compute"] != 1 || summary.ByCategory["storage"] != 1 {
		t.Errorf("by category = %v", summary.ByCategory)
	}
}
