package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/spendlens/internal/api/dto"
	"github.com/pratik-mahalle/spendlens/internal/api/middleware"
	"github.com/pratik-mahalle/spendlens/internal/domain/provider"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/utils"
)

type ProviderHandler struct {
	service ProviderManager
	logger  *logger.Logger
}

func NewProviderHandler(service ProviderManager, log *logger.Logger) *ProviderHandler {
	return &ProviderHandler{
		service: service,
		logger:  log,
	}
}

// List returns all connected providers
// @Summary List providers
// @Description Get every provider account of the user
// @Tags Providers
// @Produce json
// @Success 200 {array} dto.ProviderDTO "Provider accounts"
// @Failure 401 {object} utils.ErrorResponse "Missing user"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Security UserID
// @Router /providers [get]
func (h *ProviderHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.List(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list providers")
		return
	}

	dtos := make([]dto.ProviderDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = dto.NewProviderDTO(a)
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// Connect validates, tests and stores credentials for the provider in the path
// @Summary Connect provider
// @Description Validate, test and store credentials for a provider
// @Tags Providers
// @Accept json
// @Produce json
// @Param provider path string true "Provider" Enums(aws, gcp, azure)
// @Param request body dto.ConnectProviderRequest true "Provider credentials"
// @Success 201 {object} dto.ProviderDTO "Connected provider"
// @Failure 400 {object} utils.ErrorResponse "Invalid credentials"
// @Failure 401 {object} utils.ErrorResponse "Provider rejected the credentials"
// @Security UserID
// @Router /providers/{provider}/connect [post]
func (h *ProviderHandler) Connect(w http.ResponseWriter, r *http.Request) {
	id, err := providerParam(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid provider")
		return
	}

	var req dto.ConnectProviderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request body")
		return
	}
	middleware.AddLogField(w, "provider", id)

	account, err := h.service.Connect(r.Context(), userID(r), id, req.Credentials())
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to connect provider")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Provider connected successfully", dto.NewProviderDTO(account))
}

// Disconnect disconnects a provider and removes its synced data
// @Summary Disconnect provider
// @Description Remove a provider account and its synced data
// @Tags Providers
// @Produce json
// @Param provider path string true "Provider" Enums(aws, gcp, azure)
// @Success 200 {object} utils.SuccessResponse "Provider disconnected"
// @Failure 404 {object} utils.ErrorResponse "Provider not connected"
// @Security UserID
// @Router /providers/{provider} [delete]
func (h *ProviderHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	id, err := providerParam(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "Invalid provider")
		return
	}
	middleware.AddLogField(w, "provider", id)

	if err := h.service.Disconnect(r.Context(), userID(r), id); err != nil {
		writeServiceError(w, h.logger, err, "Failed to disconnect provider")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Provider disconnected successfully", nil)
}

// Test checks connectivity of every connected provider
// @Summary Test provider connections
// @Description Check connectivity of every connected provider
// @Tags Providers
// @Produce json
// @Success 200 {array} dto.ConnectionTestDTO "Connection results"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Security UserID
// @Router /providers/test [post]
func (h *ProviderHandler) Test(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Test(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to test providers")
		return
	}

	ids := make([]provider.ID, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}

	dtos := make([]dto.ConnectionTestDTO, 0, len(ids))
	for _, id := range provider.SortIDs(ids) {
		dtos = append(dtos, dto.ConnectionTestDTO{Provider: id, Reachable: results[id]})
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}

// GetStatus gets the sync status for all providers
// @Summary Provider sync status
// @Description Get the sync status of every provider
// @Tags Providers
// @Produce json
// @Success 200 {array} dto.ProviderStatusResponse "Sync status"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Security UserID
// @Router /providers/status [get]
func (h *ProviderHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.service.GetSyncStatus(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get provider status")
		return
	}

	dtos := make([]dto.ProviderStatusResponse, len(statuses))
	for i, s := range statuses {
		dtos[i] = dto.ProviderStatusResponse{
			Provider:    s.Provider,
			IsConnected: s.IsConnected,
			LastSynced:  s.LastSynced,
			Status:      s.Status,
			Message:     s.Message,
		}
	}

	utils.WriteSuccess(w, http.StatusOK, dtos)
}
