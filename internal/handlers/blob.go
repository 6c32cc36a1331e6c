package handlers

import (
	"InfoVault/internal/config"
	"InfoVault/internal/middleware"
	"InfoVault/internal/storage"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// BlobHandler обрабатывает загрузку, подпись ссылок и удаление блобов.
// Пути блобов всегда начинаются с "<user_id>/": это единственная проверка
// владения на стороне blob-хендлеров.
type BlobHandler struct {
	Store  storage.BlobStore
	Logger *zap.SugaredLogger
	Config *config.Config
}

// NewBlobHandler создаёт хендлер blobs
func NewBlobHandler(store storage.BlobStore, logger *zap.SugaredLogger, cfg *config.Config) *BlobHandler {
	return &BlobHandler{Store: store, Logger: logger, Config: cfg}
}

// ownsPath проверяет, что путь лежит в префиксе пользователя.
func ownsPath(userID int64, p string) bool {
	return strings.HasPrefix(p, strconv.FormatInt(userID, 10)+"/")
}

// Upload принимает multipart-файл и кладёт его в бакет под
// путь "<user_id>/<folder>/<unixnano>-<rand>.<ext>".
func (h *BlobHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	maxBody := int64(h.Config.BlobMaxSizeMB)*1024*1024 + 1*1024*1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}
	// folder — одно имя каталога, без вложенности и ".."
	if strings.ContainsAny(folder, "/\\") || folder == ".." {
		respondError(w, http.StatusBadRequest, "invalid folder")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	rnd := make([]byte, 6)
	_, _ = rand.Read(rnd)
	ext := path.Ext(header.Filename)
	key := fmt.Sprintf("%d/%s/%d-%s%s", userID, folder, time.Now().UnixNano(), hex.EncodeToString(rnd), ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := h.Store.Upload(r.Context(), key, file, contentType); err != nil {
		h.Logger.Errorw("Upload: store error", "user_id", userID, "key", key, "error", err)
		respondError(w, http.StatusInternalServerError, "upload failed")
		return
	}
	respondData(w, http.StatusCreated, map[string]any{"path": key})
}

// Sign выдаёт временную подписанную ссылку на чтение блоба.
func (h *BlobHandler) Sign(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p := r.URL.Query().Get("path")
	if p == "" {
		respondError(w, http.StatusBadRequest, "missing path")
		return
	}
	if !ownsPath(userID, p) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}
	ttl := time.Duration(h.Config.SignedURLTTL) * time.Second
	url, err := h.Store.SignedURL(r.Context(), p, ttl)
	if err != nil {
		h.Logger.Errorw("Sign: store error", "user_id", userID, "path", p, "error", err)
		respondError(w, http.StatusInternalServerError, "sign failed")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"url": url})
}

// Delete удаляет блоб пользователя.
func (h *BlobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p := r.URL.Query().Get("path")
	if p == "" {
		respondError(w, http.StatusBadRequest, "missing path")
		return
	}
	if !ownsPath(userID, p) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}
	if err := h.Store.Delete(r.Context(), p); err != nil {
		h.Logger.Errorw("Delete: store error", "user_id", userID, "path", p, "error", err)
		respondError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	respondData(w, http.StatusOK, map[string]any{"deleted": p})
}
