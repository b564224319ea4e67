package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portsrepo "github.com/inforlary/belkys-backend/internal/core/ports/repositories"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/dto"
	"github.com/inforlary/belkys-backend/internal/middleware"
	"github.com/inforlary/belkys-backend/internal/utils"
)

// userService handles user registration and account management.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new user with a bcrypt-hashed password.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()

	user := domain.User{
		UserID:       newUserID,
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Name:         req.Name,
		PasswordHash: passwordHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID, // self registration
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("username", user.Username))
		}
		return nil, err
	}

	logger.Info("User created", slog.String("user_id", newUserID), slog.String("username", user.Username))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByUsername retrieves a user by username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
}

// ListUsers retrieves a page of users.
func (s *userService) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// UpdateUser updates mutable user fields. Users may only update themselves.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if userID != updaterUserID {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name == nil {
		return user, nil
	}

	now := time.Now()
	user.Name = *req.Name
	user.LastUpdatedAt = now
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes a user. Users may only delete themselves.
func (s *userService) DeleteUser(ctx context.Context, userID string, deleterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if userID != deleterUserID {
		return apperrors.ErrForbidden
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), deleterUserID); err != nil {
		logger.Error("Failed to soft-delete user", slog.String("error", err.Error()), slog.String("user_id", userID))
		return err
	}
	logger.Info("User soft-deleted", slog.String("user_id", userID))
	return nil
}

// FindOrCreateOAuthUser returns the user registered under the given external
// identity, creating one on first sign-in. The email doubles as the username;
// OAuth users carry no usable password hash.
func (s *userService) FindOrCreateOAuthUser(ctx context.Context, email string, name string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	username := strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up oauth user: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	newUser := domain.User{
		UserID:   newUserID,
		Username: username,
		Name:     name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		logger.Error("Failed to create oauth user", slog.String("error", err.Error()), slog.String("username", username))
		return nil, err
	}
	logger.Info("User created via oauth sign-in", slog.String("user_id", newUserID), slog.String("username", username))
	return &newUser, nil
}

// SetRefreshTokenDetails stores the hash and expiry of a refresh token.
func (s *userService) SetRefreshTokenDetails(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, &tokenHash, &expiryTime)
}

// ClearRefreshTokenDetails invalidates the stored refresh token.
func (s *userService) ClearRefreshTokenDetails(ctx context.Context, userID string) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, nil, nil)
}
