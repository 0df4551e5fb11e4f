package handlers

import (
	"net/http"
	"time"

	"github.com/pratik-mahalle/spendlens/internal/api/dto"
	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/utils"
	"github.com/pratik-mahalle/spendlens/internal/pkg/validator"
	"github.com/pratik-mahalle/spendlens/internal/services"
)

// SyncHandler runs syncs and serves the correlated snapshot
type SyncHandler struct {
	service      SnapshotSource
	validator    *validator.Validator
	lookbackDays int
	now          func() time.Time
	logger       *logger.Logger
}

func NewSyncHandler(service SnapshotSource, val *validator.Validator, lookbackDays int, log *logger.Logger) *SyncHandler {
	return &SyncHandler{
		service:      service,
		validator:    val,
		lookbackDays: lookbackDays,
		now:          time.Now,
		logger:       log,
	}
}

// Sync fetches every connected provider and writes the result through
// @Summary Run sync
// @Description Fetch costs, resources and budgets of every connected provider and store them
// @Tags Sync
// @Accept json
// @Produce json
// @Param request body dto.SyncRequest false "Date range or lookback days"
// @Success 200 {object} dto.SyncResponse "Sync result"
// @Failure 400 {object} utils.ErrorResponse "Invalid date range"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Security UserID
// @Router /sync [post]
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req dto.SyncRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request body")
		return
	}
	if errs := h.validator.Validate(req); len(errs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", errs))
		return
	}

	dr, err := h.dateRange(req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid date range")
		return
	}

	result, err := h.service.Sync(r.Context(), userID(r), dr)
	if err != nil {
		writeServiceError(w, h.logger, err, "Sync failed")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, newSyncResponse(result))
}

// Snapshot returns the stored data of every connected provider, re-correlated
// @Summary Get snapshot
// @Description Get the stored data of every connected provider
// @Tags Sync
// @Produce json
// @Success 200 {object} dto.SnapshotDTO "Snapshot"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Security UserID
// @Router /snapshot [get]
func (h *SyncHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.LoadSnapshot(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load snapshot")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, newSnapshotDTO(snap))
}

func (h *SyncHandler) dateRange(req dto.SyncRequest) (cost.DateRange, error) {
	switch {
	case req.Start != "" && req.End != "":
		return cost.ParseDateRange(req.Start, req.End)
	case req.Start != "" || req.End != "":
		return cost.DateRange{}, errors.BadRequest("start and end must be given together")
	case req.Days > 0:
		return cost.LastDays(h.now(), req.Days), nil
	default:
		return cost.LastDays(h.now(), h.lookbackDays), nil
	}
}

func newSyncResponse(res *services.SyncResult) dto.SyncResponse {
	snap := res.Snapshot
	return dto.SyncResponse{
		Start:         res.Range.Start.Format(cost.DateLayout),
		End:           res.Range.End.Format(cost.DateLayout),
		Providers:     snap.Providers,
		Resources:     len(snap.Resources),
		Budgets:       len(snap.Budgets),
		TotalCost:     cost.Round2(cost.GrandTotal(snap.CostsByProvider)),
		PersistErrors: res.PersistErrors,
		DurationMs:    res.Duration.Milliseconds(),
		SyncedAt:      snap.GeneratedAt,
	}
}

func newSnapshotDTO(snap *services.Snapshot) dto.SnapshotDTO {
	out := dto.SnapshotDTO{
		Providers:   snap.Providers,
		TotalCost:   cost.Round2(cost.GrandTotal(snap.CostsByProvider)),
		Costs:       make([]dto.CostSummaryDTO, 0, len(snap.CostsByProvider)),
		Resources:   make([]dto.ResourceDTO, 0, len(snap.Resources)),
		Budgets:     make([]dto.BudgetDTO, 0, len(snap.Budgets)),
		GeneratedAt: snap.GeneratedAt,
	}
	for _, s := range cost.Summarize(snap.CostsByProvider) {
		out.Costs = append(out.Costs, dto.NewCostSummaryDTO(s))
	}
	for _, res := range snap.Resources {
		out.Resources = append(out.Resources, dto.NewResourceDTO(res))
	}
	for _, b := range snap.Budgets {
		out.Budgets = append(out.Budgets, dto.NewBudgetDTO(b))
	}
	return out
}
