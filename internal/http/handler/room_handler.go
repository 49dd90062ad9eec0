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

type RoomHandler struct {
	roomService *service.RoomService
	logger      *zap.Logger
}

func NewRoomHandler(roomService *service.RoomService, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		logger:      logger,
	}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	room, err := h.roomService.Create(r.Context(), projectID, &req)
	if err != nil {
		h.logger.Error("failed to create room", zap.Error(err), zap.String("project_id", projectID.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	room, err := h.roomService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	rooms, err := h.roomService.ListByProject(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list rooms", zap.Error(err), zap.String("project_id", projectID.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	var req domain.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	room, err := h.roomService.Update(r.Context(), id, &req)
	if err != nil {
		h.logger.Error("failed to update room", zap.Error(err), zap.String("room_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid room ID")
		return
	}

	if err := h.roomService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete room", zap.Error(err), zap.String("room_id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
