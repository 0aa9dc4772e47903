package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "pdfhub/internal/errors"
	"pdfhub/internal/model"
	"pdfhub/internal/repository"
)

const bcryptCost = 10

const passwordSymbols = "!@#$%^&*"

// AuthService handles the credential store workflow: registration and
// credential verification.
type AuthService interface {
	Register(ctx context.Context, username, password, email string) (*model.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// validateRegistration enforces the registration rules. Messages are the
// user-facing rule text returned verbatim in the error envelope.
func validateRegistration(username, password, email string) error {
	if len(username) < 6 {
		return apperrors.NewValidationError("Username must be at least 6 characters.")
	}
	if len(password) < 8 {
		return apperrors.NewValidationError("Password must be at least 8 characters.")
	}
	if !strings.ContainsAny(password, "0123456789") {
		return apperrors.NewValidationError("Password must contain at least 1 number.")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		return apperrors.NewValidationError("Password must contain at least 1 symbol (!@#$%^&*).")
	}
	if email == "" {
		return apperrors.NewValidationError("Email is required.")
	}
	if !strings.Contains(email, "@") {
		return apperrors.NewValidationError("Email must contain @.")
	}
	return nil
}

// Register validates input, checks for conflicts and stores the user with a
// bcrypt password hash. The plaintext password never leaves this call.
func (s *authService) Register(ctx context.Context, username, password, email string) (*model.User, error) {
	if err := validateRegistration(username, password, email); err != nil {
		return nil, err
	}

	// Single combined lookup; a username collision is reported before an
	// email collision when both exist.
	existing, err := s.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err == nil && existing != nil {
		if existing.Username == username {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Email:        email,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique index is the safety net and must surface as a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyConflict(ctx, username, email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// classifyConflict decides which field collided after a duplicate-key insert.
func (s *authService) classifyConflict(ctx context.Context, username, email string) error {
	existing, err := s.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err == nil && existing != nil && existing.Username != username {
		return apperrors.ErrEmailTaken
	}
	return apperrors.ErrUsernameTaken
}

// VerifyCredentials looks up the user and compares the supplied password
// against the stored hash. bcrypt's comparison is constant-time on the hash.
func (s *authService) VerifyCredentials(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
