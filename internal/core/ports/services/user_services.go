package services

import (
	"context"
	"time"

	"github.com/inforlary/belkys-backend/internal/core/domain"
	"github.com/inforlary/belkys-backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves a page of users.
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates mutable user fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)

	// DeleteUser soft-deletes a user.
	DeleteUser(ctx context.Context, userID string, deleterUserID string) error

	// FindOrCreateOAuthUser returns the user registered under the given
	// external identity, creating one on first sign-in.
	FindOrCreateOAuthUser(ctx context.Context, email string, name string) (*domain.User, error)

	// SetRefreshTokenDetails stores the hash and expiry of a refresh token.
	SetRefreshTokenDetails(ctx context.Context, userID string, tokenHash string, expiryTime time.Time) error

	// ClearRefreshTokenDetails invalidates the stored refresh token.
	ClearRefreshTokenDetails(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
