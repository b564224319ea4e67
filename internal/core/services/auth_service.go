package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/inforlary/belkys-backend/internal/apperrors"
	"github.com/inforlary/belkys-backend/internal/core/domain"
	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/middleware"
	"github.com/inforlary/belkys-backend/internal/platform/config"
	"github.com/inforlary/belkys-backend/internal/utils"
)

// tokenService issues access and refresh tokens for authenticated users.
type tokenService struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// NewTokenService creates a new token service.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade) *tokenService {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
	}
}

// GenerateAccessToken creates a signed JWT for the user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)
	tokenString, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return tokenString, expiryTime, nil
}

// GenerateRefreshToken creates an opaque refresh token, stores its hash on
// the user record and returns the plaintext token for the cookie.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tokenString, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)
	tokenHash := utils.HashRefreshToken(tokenString)

	if err := s.userService.SetRefreshTokenDetails(ctx, user.UserID, tokenHash, expiryTime); err != nil {
		logger.Error("Failed to store refresh token details", "error", err, "userID", user.UserID)
		return "", time.Time{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return tokenString, expiryTime, nil
}

// ValidateAndParseRefreshToken checks the presented refresh token against the
// stored hash and expiry for the user.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		logger.Warn("Refresh token validation failed: user lookup", "error", err, "userID", userID)
		return nil, apperrors.ErrUnauthorized
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		logger.Warn("Refresh token validation failed: no token on record", "userID", userID)
		return nil, apperrors.ErrUnauthorized
	}

	if time.Now().After(*user.RefreshTokenExpiryTime) {
		logger.Warn("Refresh token validation failed: token expired", "userID", userID)
		return nil, apperrors.ErrRefreshTokenExpired
	}

	if !utils.CompareRefreshTokenHash(refreshTokenString, user.RefreshTokenHash) {
		logger.Warn("Refresh token validation failed: hash mismatch", "userID", userID)
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// googleOAuthHandlerService implements the Google sign-in flow.
type googleOAuthHandlerService struct {
	cfg         *config.Config
	oauthConfig *oauth2.Config
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*googleOAuthHandlerService)(nil)

// NewGoogleOAuthHandlerService creates a new Google OAuth handler service.
func NewGoogleOAuthHandlerService(cfg *config.Config) *googleOAuthHandlerService {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
	return &googleOAuthHandlerService{
		cfg:         cfg,
		oauthConfig: oauthConfig,
	}
}

// GenerateStateString creates the anti-CSRF state parameter.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL builds the Google consent screen URL for the given state.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCodeForToken trades an authorization code for Google tokens.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken verifies the ID token signature and audience.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate google id token: %w", err)
	}
	return payload, nil
}
