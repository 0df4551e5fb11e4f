package handlers

import (
	"net/http"
	"sort"

	"github.com/samber/lo"

	"github.com/pratik-mahalle/spendlens/internal/api/dto"
	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/utils"
)

// CostHandler serves stored cost records, summaries and budgets
type CostHandler struct {
	service SnapshotSource
	logger  *logger.Logger
}

func NewCostHandler(service SnapshotSource, log *logger.Logger) *CostHandler {
	return &CostHandler{
		service: service,
		logger:  log,
	}
}

// Summary returns per-provider totals with service and region breakdowns
// @Summary Cost summary
// @Description Get per-provider cost totals with service and region breakdowns
// @Tags Costs
// @Produce json
// @Param provider query string false "Provider" Enums(aws, gcp, azure)
// @Success 200 {object} dto.CostOverviewDTO "Cost overview"
// @Failure 400 {object} utils.ErrorResponse "Invalid provider"
// @Security UserID
// @Router /costs [get]
func (h *CostHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, err := parseProvider(r.URL.Query().Get("provider"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid provider")
		return
	}

	summaries, err := h.service.CostSummaries(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get cost summary")
		return
	}
	if id != "" {
		summaries = lo.Filter(summaries, func(s cost.Summary, _ int) bool { return s.Provider == id })
	}

	overview := dto.CostOverviewDTO{Providers: make([]dto.CostSummaryDTO, 0, len(summaries))}
	for _, s := range summaries {
		overview.TotalCost += s.TotalCost
		overview.Providers = append(overview.Providers, dto.NewCostSummaryDTO(s))
	}
	overview.TotalCost = cost.Round2(overview.TotalCost)

	utils.WriteSuccess(w, http.StatusOK, overview)
}

// Records lists stored cost records, optionally limited to a provider and
// a start/end date range.
// @Summary List cost records
// @Description Get stored daily cost records
// @Tags Costs
// @Produce json
// @Param provider query string false "Provider" Enums(aws, gcp, azure)
// @Param start query string false "Start date (YYYY-MM-DD)"
// @Param end query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.CostRecordDTO "Cost records"
// @Failure 400 {object} utils.ErrorResponse "Invalid filter"
// @Security UserID
// @Router /costs/records [get]
func (h *CostHandler) Records(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := parseProvider(q.Get("provider"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid provider")
		return
	}

	var dr *cost.DateRange
	if start, end := q.Get("start"), q.Get("end"); start != "" || end != "" {
		if start == "" || end == "" {
			utils.WriteError(w, errors.BadRequest("start and end must be given together"))
			return
		}
		parsed, err := cost.ParseDateRange(start, end)
		if err != nil {
			writeServiceError(w, h.logger, err, "Invalid date range")
			return
		}
		dr = &parsed
	}

	snap, err := h.service.LoadSnapshot(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list costs")
		return
	}

	records := []dto.CostRecordDTO{}
	for p, recs := range snap.CostsByProvider {
		if id != "" && p != id {
			continue
		}
		for _, rec := range recs {
			if dr != nil && !dr.Contains(rec.Date) {
				continue
			}
			records = append(records, dto.NewCostRecordDTO(p, rec))
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		if records[i].Provider != records[j].Provider {
			return records[i].Provider < records[j].Provider
		}
		return records[i].Service < records[j].Service
	})

	p := utils.ParsePaginationParams(r)
	utils.WriteSuccess(w, http.StatusOK,
		utils.NewPaginatedResponse(utils.Paginate(records, p), p.Page, p.PageSize, int64(len(records))))
}

// Budgets lists stored budgets with their utilization
// @Summary List budgets
// @Description Get stored budgets with their utilization
// @Tags Costs
// @Produce json
// @Param provider query string false "Provider" Enums(aws, gcp, azure)
// @Success 200 {array} dto.BudgetDTO "Budgets"
// @Failure 400 {object} utils.ErrorResponse "Invalid provider"
// @Security UserID
// @Router /budgets [get]
func (h *CostHandler) Budgets(w http.ResponseWriter, r *http.Request) {
	id, err := parseProvider(r.URL.Query().Get("provider"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid provider")
		return
	}

	snap, err := h.service.LoadSnapshot(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list budgets")
		return
	}

	budgets := make([]dto.BudgetDTO, 0, len(snap.Budgets))
	for _, b := range snap.Budgets {
		if id == "" || b.Provider == id {
			budgets = append(budgets, dto.NewBudgetDTO(b))
		}
	}

	utils.WriteSuccess(w, http.StatusOK, budgets)
}
