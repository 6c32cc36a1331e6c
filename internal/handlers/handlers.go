package handlers

import (
	"InfoVault/internal/config"
	"InfoVault/internal/middleware"
	"InfoVault/internal/service"
	"InfoVault/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	recordService *service.RecordService,
	blobs storage.BlobStore,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	recordHandler := NewRecordHandler(recordService, logger)
	blobHandler := NewBlobHandler(blobs, logger, config)

	// User routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)

	// Record routes (шифртексты, сервер не видит plaintext)
	r.Get("/api/records", recordHandler.List)
	r.Post("/api/records", recordHandler.Create)
	r.Patch("/api/records/{id}", recordHandler.Update)
	r.Delete("/api/records/_bulkResetForCaller", recordHandler.BulkReset)
	r.Delete("/api/records/{id}", recordHandler.Delete)

	// Blob routes
	r.Post("/api/blobs", blobHandler.Upload)
	r.Get("/api/blobs/sign", blobHandler.Sign)
	r.Delete("/api/blobs", blobHandler.Delete)

	return &Handler{Router: r}
}
