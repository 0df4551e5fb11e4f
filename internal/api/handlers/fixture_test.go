package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/spendlens/internal/api/middleware"
	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/providers"
	"github.com/pratik-mahalle/spendlens/internal/services"
	"github.com/pratik-mahalle/spendlens/internal/testutil"
)

var seedDay = time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

type apiFixture struct {
	providerRepo *testutil.MockProviderRepository
	costRepo     *testutil.MockCostRepository
	resourceRepo *testutil.MockResourceRepository
	providers    *services.ProviderService
	sync         *services.SyncService
	log          *logger.Logger
}

func newAPIFixture(backends map[provider.ID]providers.Backends) apiFixture {
	f := apiFixture{
		providerRepo: testutil.NewMockProviderRepository(),
		costRepo:     testutil.NewMockCostRepository(),
		resourceRepo: testutil.NewMockResourceRepository(),
		log:          logger.Nop(),
	}
	f.providers = services.NewProviderService(f.providerRepo, f.costRepo, f.resourceRepo, backends, time.Second, f.log)
	f.sync = services.NewSyncService(
		f.providers,
		f.providerRepo,
		f.costRepo,
		f.resourceRepo,
		backends,
		services.NewCorrelationEngine(services.DefaultCorrelationPolicy()),
		services.NewRecommendationEngine(services.DefaultRecommendationPolicy()),
		time.Second,
		f.log,
	)
	return f
}

func utilization(v float64) *float64 { return &v }

// seed stores a connected Azure account for user 1 with one underutilized
// VM and one storage account already synced.
func (f apiFixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	must(f.providerRepo.Upsert(ctx, &provider.Account{UserID: 1, Provider: provider.Azure, IsConnected: true}))
	must(f.costRepo.ReplaceCosts(ctx, 1, provider.Azure, []cost.Record{
		{Date: seedDay, Amount: 1000, Currency: "USD", Service: "Virtual Machines", Region: "eastus"},
		{Date: seedDay.AddDate(0, 0, 1), Amount: 500, Currency: "USD", Service: "Storage", Region: "eastus"},
	}))
	must(f.resourceRepo.ReplaceResources(ctx, 1, provider.Azure, []resource.Resource{
		{ID: "vm-1", Name: "web-01", Type: "Virtual Machine", Provider: provider.Azure, Region: "eastus", Status: "running", Utilization: utilization(10)},
		{ID: "blob-1", Name: "logs", Type: "Blob Storage", Provider: provider.Azure, Region: "eastus", Status: "running"},
	}))
	must(f.costRepo.ReplaceBudgets(ctx, 1, provider.Azure, []cost.Budget{
		{ID: "b-1", Name: "Monthly", Amount: 2000, Spent: 1500, Period: cost.PeriodMonthly, Provider: provider.Azure},
	}))
}

// call invokes h directly with the user and chi URL params set on the context.
func call(h http.HandlerFunc, method, target, body string, userID int64, params map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	ctx := middleware.WithUserID(req.Context(), userID)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}

	rr := httptest.NewRecorder()
	h(rr, req.WithContext(ctx))
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
	}
	return env
}
