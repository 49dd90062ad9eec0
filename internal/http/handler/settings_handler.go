package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sitecraft/estimate-api/internal/domain"
	"github.com/sitecraft/estimate-api/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
	logger          *zap.Logger
}

func NewSettingsHandler(settingsService *service.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "ownerId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid owner ID")
		return
	}

	settings, err := h.settingsService.Get(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("failed to get settings", zap.Error(err), zap.String("owner_id", ownerID.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(chi.URLParam(r, "ownerId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid owner ID")
		return
	}

	var req domain.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	settings, err := h.settingsService.Update(r.Context(), ownerID, &req)
	if err != nil {
		h.logger.Error("failed to update settings", zap.Error(err), zap.String("owner_id", ownerID.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}
