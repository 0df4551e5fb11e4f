package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/pratik-mahalle/spendlens/internal/api/dto"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/providers"
	"github.com/pratik-mahalle/spendlens/internal/testutil"
)

const azureConnectBody = `{
	"tenantId": "0f8fad5b-d9cb-469f-a165-70867728950e",
	"clientId": "7c9e6679-7425-40de-944b-e07fc1f90ae7",
	"clientSecret": "s3cr3t",
	"subscriptionId": "16fd2706-8baf-433b-82eb-8c7fada847da"
}`

func reachableBackends(ok bool) map[provider.ID]providers.Backends {
	client := &testutil.MockClient{
		TestConnectionFunc: func(context.Context, provider.Credentials) (bool, error) { return ok, nil },
	}
	return map[provider.ID]providers.Backends{
		provider.AWS:   {Primary: client},
		provider.GCP:   {Primary: client},
		provider.Azure: {Primary: client},
	}
}

func TestProviderHandler_Connect(t *testing.T) {
	tests := []struct {
		name           string
		provider       string
		body           string
		reachable      bool
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "valid azure credentials",
			provider:       "azure",
			body:           azureConnectBody,
			reachable:      true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown provider",
			provider:       "oracle",
			body:           azureConnectBody,
			reachable:      true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:           "missing fields",
			provider:       "azure",
			body:           `{"tenantId": "not-a-uuid"}`,
			reachable:      true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "malformed body",
			provider:       "azure",
			body:           `{"tenantId": `,
			reachable:      true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name:           "unreachable provider",
			provider:       "azure",
			body:           azureConnectBody,
			reachable:      false,
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "PROVIDER_AUTH_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(reachableBackends(tt.reachable))
			handler := NewProviderHandler(f.providers, f.log)

			rr := call(handler.Connect, http.MethodPost, "/api/v1/providers/"+tt.provider+"/connect",
				tt.body, 1, map[string]string{"provider": tt.provider})

			if rr.Code != tt.expectedStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v (%s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			var got dto.ProviderDTO
			env := decode(t, rr, &got)
			if tt.expectedCode != "" {
				if env.Error.Code != tt.expectedCode {
					t.Errorf("error code = %q, want %q", env.Error.Code, tt.expectedCode)
				}
				return
			}
			if got.Provider != provider.Azure || !got.IsConnected {
				t.Errorf("unexpected provider in response: %+v", got)
			}
		})
	}
}

func TestProviderHandler_ConnectDoesNotEchoSecrets(t *testing.T) {
	f := newAPIFixture(reachableBackends(true))
	handler := NewProviderHandler(f.providers, f.log)

	rr := call(handler.Connect, http.MethodPost, "/api/v1/providers/azure/connect",
		azureConnectBody, 1, map[string]string{"provider": "azure"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	if body := rr.Body.String(); strings.Contains(body, "s3cr3t") || strings.Contains(body, "clientSecret") {
		t.Errorf("response leaks credentials: %s", body)
	}
}

func TestProviderHandler_ListAndStatus(t *testing.T) {
	f := newAPIFixture(reachableBackends(true))
	f.seed(t)
	handler := NewProviderHandler(f.providers, f.log)

	rr := call(handler.List, http.MethodGet, "/api/v1/providers", "", 1, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	var list []dto.ProviderDTO
	decode(t, rr, &list)
	if len(list) != 1 || list[0].Provider != provider.Azure {
		t.Errorf("list = %+v, want only azure", list)
	}

	rr = call(handler.GetStatus, http.MethodGet, "/api/v1/providers/status", "", 1, nil)
	var statuses []dto.ProviderStatusResponse
	decode(t, rr, &statuses)
	if len(statuses) != 1 || statuses[0].Status != "never_synced" {
		t.Errorf("statuses = %+v, want one never_synced", statuses)
	}

	rr = call(handler.List, http.MethodGet, "/api/v1/providers", "", 2, nil)
	decode(t, rr, &list)
	if len(list) != 0 {
		t.Errorf("other user sees %d providers", len(list))
	}
}

func TestProviderHandler_Test(t *testing.T) {
	f := newAPIFixture(reachableBackends(true))
	f.seed(t)
	handler := NewProviderHandler(f.providers, f.log)

	rr := call(handler.Test, http.MethodPost, "/api/v1/providers/test", "", 1, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var results []dto.ConnectionTestDTO
	decode(t, rr, &results)
	if len(results) != 1 || results[0].Provider != provider.Azure || !results[0].Reachable {
		t.Errorf("results = %+v", results)
	}
}

func TestProviderHandler_Disconnect(t *testing.T) {
	f := newAPIFixture(reachableBackends(true))
	f.seed(t)
	handler := NewProviderHandler(f.providers, f.log)
	params := map[string]string{"provider": "azure"}

	rr := call(handler.Disconnect, http.MethodDelete, "/api/v1/providers/azure", "", 1, params)
	if rr.Code != http.StatusOK {
		t.Fatalf("first disconnect status = %d", rr.Code)
	}

	resources, _ := f.resourceRepo.ListResources(context.Background(), 1)
	if len(resources) != 0 {
		t.Errorf("resources left after disconnect: %d", len(resources))
	}

	rr = call(handler.Disconnect, http.MethodDelete, "/api/v1/providers/azure", "", 1, params)
	if rr.Code != http.StatusNotFound {
		t.Errorf("second disconnect status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
