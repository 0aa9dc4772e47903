package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pdfhub/internal/cache"
	"pdfhub/internal/model"
	"pdfhub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService serves profile lookups for the dashboard and profile pages.
type UserService interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(username string) string {
	return fmt.Sprintf("user:%s", username)
}

// GetByUsername returns the user, serving repeat lookups from cache. Users
// are immutable after registration so the cached copy never goes stale.
func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(username)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(username), payload, userCacheTTL)
	}
	return user, nil
}
