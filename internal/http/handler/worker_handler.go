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

type WorkerHandler struct {
	workerService *service.WorkerService
	logger        *zap.Logger
}

func NewWorkerHandler(workerService *service.WorkerService, logger *zap.Logger) *WorkerHandler {
	return &WorkerHandler{
		workerService: workerService,
		logger:        logger,
	}
}

func (h *WorkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	worker, err := h.workerService.Create(r.Context(), projectID, &req)
	if err != nil {
		h.logger.Error("failed to create worker", zap.Error(err), zap.String("project_id", projectID.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, worker)
}

func (h *WorkerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	worker, err := h.workerService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, worker)
}

func (h *WorkerHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	workers, err := h.workerService.ListByProject(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list workers", zap.Error(err), zap.String("project_id", projectID.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, workers)
}

func (h *WorkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	var req domain.UpdateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	worker, err := h.workerService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update worker", zap.Error(err), zap.String("worker_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, worker)
}

func (h *WorkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	if err := h.workerService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete worker", zap.Error(err), zap.String("worker_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
