package services

import (
	"context"
	"time"

	"github.com/inforlary/belkys-backend/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues and validates the application's access and refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a new JWT access token for the given user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a new opaque refresh token for the given user.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken validates a refresh token string against
	// the stored hash and returns the associated user.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthHandlerSvcFacade wraps the Google sign-in flow.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates the anti-CSRF state for the redirect flow.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL builds the Google consent screen URL.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken trades an authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken verifies an ID token and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
