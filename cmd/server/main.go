package main

import (
	"log"
	"net/http"
	"os"

	"pdfhub/docs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"pdfhub/internal/auth"
	"pdfhub/internal/cache"
	"pdfhub/internal/config"
	"pdfhub/internal/db"
	"pdfhub/internal/handler"
	"pdfhub/internal/model"
	"pdfhub/internal/repository"
	"pdfhub/internal/router"
	"pdfhub/internal/service"
	"pdfhub/internal/storage"
	"pdfhub/web"
)

// @title PDF Project Hub API
// @version 1.0
// @description Shared PDF project registry with session-based authentication.
// @host localhost:8080
// @schemes http
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("template init: %v", err)
	}
	e.Renderer = renderer

	gormDB, err := db.New(cfg)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Project{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	var store storage.Storage
	switch cfg.StorageBackend {
	case "minio":
		store, err = storage.NewMinIO(cfg.MinIO)
	default:
		store, err = storage.NewLocal(cfg.UploadDir)
	}
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)

	// Initialize session signing
	sessionService := auth.NewSessionService(cfg.SessionSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, cacheClient)
	projectService := service.NewProjectService(projectRepo, store, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessionService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)

	// Register routes
	if err := router.Register(e, sessionService, prometheus.NewRegistry(), authHandler, userHandler, projectHandler); err != nil {
		log.Fatalf("router init: %v", err)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
