package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/spendlens/internal/api/dto"
	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/validator"
	"github.com/pratik-mahalle/spendlens/internal/providers"
	"github.com/pratik-mahalle/spendlens/internal/testutil"
)

// rangeRecorder answers with one record on the first requested day and
// remembers the range it was asked for.
type rangeRecorder struct {
	start, end time.Time
}

func (rr *rangeRecorder) backends() map[provider.ID]providers.Backends {
	return map[provider.ID]providers.Backends{
		provider.Azure: {Primary: &testutil.MockClient{
			FetchCostsFunc: func(_ context.Context, _ provider.Credentials, start, end time.Time) ([]cost.Record, error) {
				rr.start, rr.end = start, end
				return []cost.Record{{Date: start, Amount: 42.5, Currency: "USD", Service: "Virtual Machines", Region: "eastus"}}, nil
			},
			FetchResourcesFunc: func(context.Context, provider.Credentials) ([]resource.Resource, error) {
				return []resource.Resource{{ID: "vm-1", Type: "Virtual Machine", Region: "eastus"}}, nil
			},
		}},
	}
}

func newTestSyncHandler(f apiFixture, now time.Time) *SyncHandler {
	h := NewSyncHandler(f.sync, validator.New(), 30, f.log)
	h.now = func() time.Time { return now }
	return h
}

func TestSyncHandler_Sync(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		body      string
		wantStart string
		wantEnd   string
	}{
		{"default lookback", "", "2025-02-14", "2025-03-15"},
		{"explicit days", `{"days": 7}`, "2025-03-09", "2025-03-15"},
		{"explicit range", `{"start": "2025-01-01", "end": "2025-01-31"}`, "2025-01-01", "2025-01-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &rangeRecorder{}
			f := newAPIFixture(rec.backends())
			require.NoError(t, f.providerRepo.Upsert(context.Background(), &provider.Account{UserID: 1, Provider: provider.Azure, IsConnected: true}))

			rr := call(newTestSyncHandler(f, now).Sync, http.MethodPost, "/api/v1/sync", tt.body, 1, nil)
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

			var resp dto.SyncResponse
			decode(t, rr, &resp)
			assert.Equal(t, tt.wantStart, resp.Start)
			assert.Equal(t, tt.wantEnd, resp.End)
			assert.Equal(t, tt.wantStart, rec.start.Format(cost.DateLayout))
			assert.Equal(t, []provider.ID{provider.Azure}, resp.Providers)
			assert.Equal(t, 1, resp.Resources)
			assert.Equal(t, 42.5, resp.TotalCost)
			assert.Empty(t, resp.PersistErrors)
		})
	}
}

func TestSyncHandler_SyncRejectsBadRanges(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"inverted range", `{"start": "2025-02-01", "end": "2025-01-01"}`, "PRECONDITION_FAILED"},
		{"start without end", `{"start": "2025-02-01"}`, "BAD_REQUEST"},
		{"bad date format", `{"start": "01/02/2025", "end": "2025-01-03"}`, "VALIDATION_ERROR"},
		{"too many days", `{"days": 1000}`, "VALIDATION_ERROR"},
		{"unknown field", `{"from": "2025-01-01"}`, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &rangeRecorder{}
			f := newAPIFixture(rec.backends())

			rr := call(newTestSyncHandler(f, time.Now()).Sync, http.MethodPost, "/api/v1/sync", tt.body, 1, nil)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			env := decode(t, rr, nil)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.True(t, rec.start.IsZero(), "backend must not be called")
		})
	}
}

func TestSyncHandler_Snapshot(t *testing.T) {
	f := newAPIFixture(nil)
	f.seed(t)

	rr := call(newTestSyncHandler(f, time.Now()).Snapshot, http.MethodGet, "/api/v1/snapshot", "", 1, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var snap dto.SnapshotDTO
	decode(t, rr, &snap)
	assert.Equal(t, []provider.ID{provider.Azure}, snap.Providers)
	assert.Equal(t, 1500.0, snap.TotalCost)
	require.Len(t, snap.Resources, 2)
	for _, res := range snap.Resources {
		switch res.ID {
		case "vm-1":
			assert.Equal(t, 1000.0, res.Cost)
			assert.Equal(t, "compute", res.Category)
		case "blob-1":
			assert.Equal(t, 500.0, res.Cost)
			assert.Equal(t, "storage", res.Category)
		}
	}
	require.Len(t, snap.Budgets, 1)
	assert.Equal(t, 75.0, snap.Budgets[0].Utilization)
}
