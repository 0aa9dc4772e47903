package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pdfhub/internal/cache"
	apperrors "pdfhub/internal/errors"
	"pdfhub/internal/model"
	"pdfhub/internal/repository"
	"pdfhub/internal/storage"
)

const projectCacheTTL = 5 * time.Minute

// pdfContentType is attached to every stored object; uploads are trusted to
// be PDFs, nothing inspects the bytes.
const pdfContentType = "application/pdf"

// ProjectService handles the project registry workflow.
type ProjectService interface {
	// Create stores the uploaded file and inserts the registry record.
	Create(ctx context.Context, title string, r io.Reader, size int64, owner string) (*model.Project, error)
	// List returns every project, unfiltered.
	List(ctx context.Context) ([]model.Project, error)
	// Get returns a single project by id.
	Get(ctx context.Context, id uint) (*model.Project, error)
	// OpenFile resolves the stored path of a project and opens it for
	// streaming.
	OpenFile(ctx context.Context, id uint) (io.ReadCloser, *model.Project, error)
}

type projectService struct {
	repo  repository.ProjectRepository
	store storage.Storage
	cache *cache.Client
}

// NewProjectService builds a ProjectService with repository, storage and cache.
func NewProjectService(repo repository.ProjectRepository, store storage.Storage, cache *cache.Client) ProjectService {
	return &projectService{repo: repo, store: store, cache: cache}
}

func (s *projectService) cacheKey(id uint) string {
	return fmt.Sprintf("project:%d", id)
}

// Create writes the file under a random UUID key, then inserts the record.
// Keys are never derived from the title, so same-titled uploads cannot
// collide. If the insert fails the stored object is deleted again, so a
// registry record always points at an existing file.
func (s *projectService) Create(ctx context.Context, title string, r io.Reader, size int64, owner string) (*model.Project, error) {
	if r == nil {
		return nil, fmt.Errorf("upload reader is nil")
	}

	key := path.Join("uploads", uuid.New().String()+".pdf")
	if _, err := s.store.Put(ctx, key, r, storage.PutOptions{Size: size, ContentType: pdfContentType}); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	project := &model.Project{
		Title:       title,
		PDFPath:     key,
		DateCreated: time.Now().UTC(),
		Owner:       owner,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("insert project: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	return s.repo.List(ctx)
}

// Get returns a project by id, serving repeat lookups from cache. Projects
// are immutable after creation.
func (s *projectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Project
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(project); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, projectCacheTTL)
	}
	return project, nil
}

// OpenFile opens the stored file for a project. A registry record whose
// backing file is missing is a storage inconsistency, reported as
// ErrFileUnavailable rather than a crash or a silent empty response.
func (s *projectService) OpenFile(ctx context.Context, id uint) (io.ReadCloser, *model.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, _, err := s.store.Get(ctx, project.PDFPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, apperrors.ErrFileUnavailable
		}
		return nil, nil, fmt.Errorf("open stored file: %w", err)
	}
	return rc, project, nil
}
