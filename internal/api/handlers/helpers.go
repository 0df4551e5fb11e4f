package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/spendlens/internal/api/middleware"
	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/recommendation"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/utils"
	"github.com/pratik-mahalle/spendlens/internal/services"
)

// ProviderManager is the provider account surface the handlers need.
type ProviderManager interface {
	Connect(ctx context.Context, userID int64, id provider.ID, creds provider.Credentials) (*provider.Account, error)
	Disconnect(ctx context.Context, userID int64, id provider.ID) error
	List(ctx context.Context, userID int64) ([]*provider.Account, error)
	Test(ctx context.Context, userID int64) (map[provider.ID]bool, error)
	GetSyncStatus(ctx context.Context, userID int64) ([]*provider.SyncStatus, error)
}

// SnapshotSource serves synced data and runs syncs.
type SnapshotSource interface {
	Sync(ctx context.Context, userID int64, r cost.DateRange) (*services.SyncResult, error)
	LoadSnapshot(ctx context.Context, userID int64) (*services.Snapshot, error)
	Recommend(ctx context.Context, userID int64) ([]recommendation.Recommendation, recommendation.Summary, error)
	CostSummaries(ctx context.Context, userID int64) ([]cost.Summary, error)
}

// writeServiceError writes err, logging it unless it is a client error.
func writeServiceError(w http.ResponseWriter, log *logger.Logger, err error, msg string) {
	appErr := errors.AsAppError(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		log.ErrorWithErr(err, msg)
	}
	utils.WriteError(w, appErr)
}

// decodeJSON decodes the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.BadRequest("Invalid request body")
	}
	return nil
}

// providerParam reads and checks the {provider} path parameter.
func providerParam(r *http.Request) (provider.ID, error) {
	id, err := parseProvider(chi.URLParam(r, "provider"))
	if err == nil && id == "" {
		return "", errors.BadRequest("Provider is required")
	}
	return id, err
}

// parseProvider accepts "" as no filter.
func parseProvider(raw string) (provider.ID, error) {
	id := provider.ID(strings.ToLower(strings.TrimSpace(raw)))
	if id != "" && !id.Valid() {
		return "", errors.BadRequest("Unsupported provider type: " + raw)
	}
	return id, nil
}

func userID(r *http.Request) int64 {
	id, _ := middleware.GetUserID(r)
	return id
}

// resourceIDParam returns the resource ID captured by the route wildcard.
// IDs may contain slashes (Azure ARM IDs), so clients escape them.
func resourceIDParam(r *http.Request) (string, error) {
	id, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		return "", errors.BadRequest("Invalid resource ID")
	}
	if id == "" {
		return "", errors.BadRequest("Resource ID is required")
	}
	return id, nil
}
