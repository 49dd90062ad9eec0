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

type MaterialHandler struct {
	materialService        *service.MaterialService
	projectMaterialService *service.ProjectMaterialService
	logger                 *zap.Logger
}

func NewMaterialHandler(
	materialService *service.MaterialService,
	projectMaterialService *service.ProjectMaterialService,
	logger *zap.Logger,
) *MaterialHandler {
	return &MaterialHandler{
		materialService:        materialService,
		projectMaterialService: projectMaterialService,
		logger:                 logger,
	}
}

func (h *MaterialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	material, err := h.materialService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create material", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, material)
}

func (h *MaterialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid material ID")
		return
	}

	material, err := h.materialService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, material)
}

// List returns the catalogue visible to an owner: their materials plus
// global ones.
func (h *MaterialHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.URL.Query().Get("ownerId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'ownerId' is required")
		return
	}

	materials, err := h.materialService.List(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("failed to list materials", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, materials)
}

// Lookup resolves a material name case-insensitively, preferring the
// owner's catalogue over the global one.
func (h *MaterialHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'name' is required")
		return
	}
	ownerID, err := uuid.Parse(r.URL.Query().Get("ownerId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Query parameter 'ownerId' is required")
		return
	}

	material, err := h.materialService.LookupByName(r.Context(), ownerID, name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, material)
}

func (h *MaterialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid material ID")
		return
	}

	var req domain.UpdateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	material, err := h.materialService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update material", zap.Error(err), zap.String("material_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, material)
}

func (h *MaterialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid material ID")
		return
	}

	if err := h.materialService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete material", zap.Error(err), zap.String("material_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// SelectForProject adds a catalogue material to a project.
func (h *MaterialHandler) SelectForProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.SelectMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	pm, err := h.projectMaterialService.Select(r.Context(), projectID, &req)
	if err != nil {
		h.logger.Error("failed to select material", zap.Error(err), zap.String("project_id", projectID.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, pm)
}

// ListForProject returns a project's material selections with derived
// quantities.
func (h *MaterialHandler) ListForProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	pms, err := h.projectMaterialService.ListByProject(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list project materials", zap.Error(err), zap.String("project_id", projectID.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, pms)
}

// UpdateSelection changes a selection's unit or price snapshot.
func (h *MaterialHandler) UpdateSelection(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid selection ID")
		return
	}

	var req domain.UpdateProjectMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	pm, err := h.projectMaterialService.UpdateSelection(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update material selection", zap.Error(err), zap.String("selection_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, pm)
}

// DeselectFromProject removes a material selection.
func (h *MaterialHandler) DeselectFromProject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid selection ID")
		return
	}

	if err := h.projectMaterialService.Deselect(r.Context(), id); err != nil {
		h.logger.Error("failed to deselect material", zap.Error(err), zap.String("selection_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
