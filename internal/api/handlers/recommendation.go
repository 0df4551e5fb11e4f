package handlers

import (
	"net/http"
	"strings"

	"github.com/pratik-mahalle/spendlens/internal/api/dto"
	"github.com/pratik-mahalle/spendlens/internal/domain/recommendation"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/utils"
)

type RecommendationHandler struct {
	service SnapshotSource
	logger  *logger.Logger
}

func NewRecommendationHandler(service SnapshotSource, log *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		logger:  log,
	}
}

// List returns ranked recommendations. Filters narrow the list; the summary
// always covers the full list.
// @Summary List recommendations
// @Description Get savings recommendations ranked by estimated monthly savings
// @Tags Recommendations
// @Produce json
// @Param provider query string false "Provider" Enums(aws, gcp, azure)
// @Param category query string false "Category" Enums(compute, storage, network, commitment)
// @Param effort query string false "Effort" Enums(low, medium, high)
// @Success 200 {object} dto.RecommendationListResponse "Recommendations"
// @Failure 400 {object} utils.ErrorResponse "Invalid provider"
// @Security UserID
// @Router /recommendations [get]
func (h *RecommendationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := parseProvider(q.Get("provider"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid provider")
		return
	}
	filter := recommendation.Filter{
		Provider: id,
		Category: strings.ToLower(q.Get("category")),
		Effort:   strings.ToLower(q.Get("effort")),
	}

	recs, summary, err := h.service.Recommend(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to generate recommendations")
		return
	}

	resp := dto.RecommendationListResponse{
		Recommendations: []dto.RecommendationDTO{},
		Summary:         dto.NewRecommendationSummaryDTO(summary),
	}
	for _, rec := range recs {
		if filter.Match(rec) {
			resp.Recommendations = append(resp.Recommendations, dto.NewRecommendationDTO(rec))
		}
	}

	utils.WriteSuccess(w, http.StatusOK, resp)
}

// Summary returns the aggregate savings figures only
// @Summary Recommendation summary
// @Description Get aggregate savings figures
// @Tags Recommendations
// @Produce json
// @Success 200 {object} dto.RecommendationSummaryDTO "Savings summary"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Security UserID
// @Router /recommendations/summary [get]
func (h *RecommendationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	_, summary, err := h.service.Recommend(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to generate recommendations")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewRecommendationSummaryDTO(summary))
}
