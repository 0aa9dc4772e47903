package main

import (
	"bytes"
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"pdfhub/internal/config"
	"pdfhub/internal/db"
	"pdfhub/internal/model"
	"pdfhub/internal/repository"
	"pdfhub/internal/service"
	"pdfhub/internal/storage"
)

const (
	demoUsername = "demo_user"
	demoPassword = "Demo123!pass"
	demoEmail    = "demo@example.com"
)

// samplePDF is a minimal single-page PDF document.
var samplePDF = []byte("%PDF-1.4\n1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n" +
	"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n" +
	"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>endobj\n" +
	"trailer<</Root 1 0 R>>\n%%EOF\n")

// Seeds a demo user and one sample project for local development.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Project{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	store, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	authService := service.NewAuthService(userRepo)
	projectService := service.NewProjectService(projectRepo, store, nil)

	user, err := userRepo.FindByUsername(ctx, demoUsername)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check demo user: %v", err)
	}
	if user != nil {
		log.Printf("Demo user %q already exists, nothing to do", demoUsername)
		return
	}

	user, err = authService.Register(ctx, demoUsername, demoPassword, demoEmail)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	log.Printf("Created demo user %q (id=%d)", user.Username, user.ID)

	project, err := projectService.Create(ctx, "Sample Report", bytes.NewReader(samplePDF), int64(len(samplePDF)), user.Username)
	if err != nil {
		log.Fatalf("Failed to create sample project: %v", err)
	}
	log.Printf("Created sample project %q (id=%d, file=%s)", project.Title, project.ID, project.PDFPath)

	log.Println("Seed completed successfully!")
	log.Printf("Login with %s / %s", demoUsername, demoPassword)
}
