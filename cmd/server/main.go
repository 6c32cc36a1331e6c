package main

import (
	"InfoVault/internal/config"
	"InfoVault/internal/handlers"
	"InfoVault/internal/middleware"
	"InfoVault/internal/repo"
	"InfoVault/internal/service"
	"InfoVault/internal/storage"
	"context"
	"net/http"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	blobStore, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		sugar.Fatalw("failed to initialize blob store", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	recordRepo := repo.NewRecordRepository(gormDB)
	userService := service.NewUserService(userRepo)
	recordService := service.NewRecordService(recordRepo)

	h := handlers.NewHandler(userService, recordService, blobStore, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"S3Bucket", cfg.S3Bucket,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
