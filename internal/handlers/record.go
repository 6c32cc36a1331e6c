package handlers

import (
	"InfoVault/internal/middleware"
	"InfoVault/internal/model"
	"InfoVault/internal/repo"
	"InfoVault/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RecordHandler обрабатывает CRUD записей. Все контентные поля — шифртексты.
type RecordHandler struct {
	RecordService *service.RecordService
	Logger        *zap.SugaredLogger
}

// NewRecordHandler создаёт хендлер records
func NewRecordHandler(recordService *service.RecordService, logger *zap.SugaredLogger) *RecordHandler {
	return &RecordHandler{RecordService: recordService, Logger: logger}
}

// RecordDTO — запись на проводе.
type RecordDTO struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Importance string    `json:"importance"`
	Content    string    `json:"content,omitempty"`
	BlobRef    string    `json:"blob_ref,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// recordPatchDTO — частичное обновление, nil = «не менять».
type recordPatchDTO struct {
	Kind       *string `json:"kind,omitempty"`
	Name       *string `json:"name,omitempty"`
	Category   *string `json:"category,omitempty"`
	Importance *string `json:"importance,omitempty"`
	Content    *string `json:"content,omitempty"`
	BlobRef    *string `json:"blob_ref,omitempty"`
}

func toDTO(rec *model.Record) RecordDTO {
	return RecordDTO{
		ID:         rec.ID,
		Kind:       rec.Kind,
		Name:       rec.Name,
		Category:   rec.Category,
		Importance: rec.Importance,
		Content:    rec.Content,
		BlobRef:    rec.BlobRef,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

// List отдаёт все записи владельца токена.
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	recs, err := h.RecordService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("List: service error", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	dtos := make([]RecordDTO, 0, len(recs))
	for i := range recs {
		dtos = append(dtos, toDTO(&recs[i]))
	}
	respondData(w, http.StatusOK, dtos)
}

// Create создаёт новую запись.
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var dto RecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	rec, err := h.RecordService.Create(r.Context(), userID, service.RecordFields{
		Kind:       dto.Kind,
		Name:       dto.Name,
		Category:   dto.Category,
		Importance: dto.Importance,
		Content:    dto.Content,
		BlobRef:    dto.BlobRef,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Errorw("Create: service error", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondData(w, http.StatusCreated, toDTO(rec))
}

// Update частично обновляет запись владельца токена.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id := chi.URLParam(r, "id")
	var patch recordPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	rec, err := h.RecordService.Update(r.Context(), userID, id, service.RecordPatch{
		Kind:       patch.Kind,
		Name:       patch.Name,
		Category:   patch.Category,
		Importance: patch.Importance,
		Content:    patch.Content,
		BlobRef:    patch.BlobRef,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			respondError(w, http.StatusNotFound, "record not found")
		case errors.Is(err, service.ErrValidation):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.Logger.Errorw("Update: service error", "user_id", userID, "id", id, "error", err)
			respondError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	respondData(w, http.StatusOK, toDTO(rec))
}

// Delete удаляет одну запись владельца токена.
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.RecordService.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			respondError(w, http.StatusNotFound, "record not found")
			return
		}
		h.Logger.Errorw("Delete: service error", "user_id", userID, "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"deleted": id})
}

// BulkReset удаляет ВСЕ записи владельца токена (безвозвратный сброс вольта).
// Область строго ограничена user_id из токена.
func (h *RecordHandler) BulkReset(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	count, err := h.RecordService.Reset(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("BulkReset: service error", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.Logger.Infow("BulkReset: vault wiped", "user_id", userID, "count", count)
	respondData(w, http.StatusOK, map[string]any{"deleted_count": count})
}
