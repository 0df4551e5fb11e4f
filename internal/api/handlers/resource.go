package handlers

import (
	"net/http"
	"strings"

	"github.com/samber/lo"

	"github.com/pratik-mahalle/spendlens/internal/api/dto"
	"github.com/pratik-mahalle/spendlens/internal/domain/cost"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/domain/resource"
	"github.com/pratik-mahalle/spendlens/internal/pkg/errors"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/utils"
)

type ResourceHandler struct {
	service SnapshotSource
	logger  *logger.Logger
}

func NewResourceHandler(service SnapshotSource, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		logger:  log,
	}
}

// List returns correlated resources with pagination
// @Summary List resources
// @Description Get correlated resources with their estimated monthly cost
// @Tags Resources
// @Produce json
// @Param provider query string false "Provider" Enums(aws, gcp, azure)
// @Param category query string false "Category (compute, storage, database, network, ...)"
// @Param region query string false "Region"
// @Param status query string false "Status" Enums(running, stopped, terminated)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse "Resources"
// @Failure 400 {object} utils.ErrorResponse "Invalid filter"
// @Security UserID
// @Router /resources [get]
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseResourceFilter(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid filter")
		return
	}

	snap, err := h.service.LoadSnapshot(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list resources")
		return
	}

	dtos := []dto.ResourceDTO{}
	for _, res := range snap.Resources {
		if filter.Match(res) {
			dtos = append(dtos, dto.NewResourceDTO(res))
		}
	}

	p := utils.ParsePaginationParams(r)
	response := utils.NewPaginatedResponse(utils.Paginate(dtos, p), p.Page, p.PageSize, int64(len(dtos)))
	utils.WriteSuccess(w, http.StatusOK, response)
}

// Get returns a single resource of a provider
// @Summary Get resource
// @Description Get one resource. IDs containing slashes must be path-escaped.
// @Tags Resources
// @Produce json
// @Param provider path string true "Provider" Enums(aws, gcp, azure)
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.ResourceDTO "Resource"
// @Failure 400 {object} utils.ErrorResponse "Invalid provider or ID"
// @Failure 404 {object} utils.ErrorResponse "Resource not found"
// @Security UserID
// @Router /resources/{provider}/{id} [get]
func (h *ResourceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := providerParam(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid provider")
		return
	}
	resourceID, err := resourceIDParam(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid resource ID")
		return
	}

	snap, err := h.service.LoadSnapshot(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get resource")
		return
	}

	for _, res := range snap.Resources {
		if res.Provider == id && res.ID == resourceID {
			utils.WriteSuccess(w, http.StatusOK, dto.NewResourceDTO(res))
			return
		}
	}

	utils.WriteError(w, errors.NotFound("Resource"))
}

// Summary returns resource counts and total estimated cost
// @Summary Resource summary
// @Description Get resource counts by provider, category and status
// @Tags Resources
// @Produce json
// @Success 200 {object} dto.ResourceSummaryDTO "Resource summary"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Security UserID
// @Router /resources/summary [get]
func (h *ResourceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.LoadSnapshot(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to summarize resources")
		return
	}

	summary := dto.ResourceSummaryDTO{
		Total:      len(snap.Resources),
		ByProvider: make(map[provider.ID]int),
		ByCategory: make(map[string]int),
		ByStatus:   make(map[string]int),
	}
	for _, res := range snap.Resources {
		summary.ByProvider[res.Provider]++
		summary.ByCategory[string(res.Category())]++
		summary.ByStatus[res.Status]++
		summary.TotalCost += res.Cost
	}
	summary.TotalCost = cost.Round2(summary.TotalCost)

	utils.WriteSuccess(w, http.StatusOK, summary)
}

func parseResourceFilter(r *http.Request) (resource.Filter, error) {
	q := r.URL.Query()
	id, err := parseProvider(q.Get("provider"))
	if err != nil {
		return resource.Filter{}, err
	}

	filter := resource.Filter{
		Provider: id,
		Region:   q.Get("region"),
		Status:   strings.ToLower(q.Get("status")),
	}

	if raw := strings.ToLower(q.Get("category")); raw != "" {
		if !lo.Contains(resource.Categories(), resource.Category(raw)) {
			return resource.Filter{}, errors.BadRequest("Unknown resource category: " + raw)
		}
		filter.Category = resource.Category(raw)
	}

	return filter, nil
}
