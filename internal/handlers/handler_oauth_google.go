package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/inforlary/belkys-backend/internal/core/ports/services"
	"github.com/inforlary/belkys-backend/internal/middleware"
)

// GoogleOAuthHandler handles the Google sign-in flow: exchanging the
// authorization code the frontend obtained, validating Google's ID token and
// issuing the application's own JWT.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// ExchangeCodeRequest defines the expected JSON body for the exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExchangeCodeResponse defines the successful response for the exchange-code endpoint.
type ExchangeCodeResponse struct {
	Token string `json:"token"`
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService)

	googleRoutes := rg.Group("/api/v1/auth/google")
	{
		googleRoutes.GET("/login-url", h.GetLoginURL)
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}

// GetLoginURL godoc
// @Summary Get Google consent screen URL
// @Description Returns the Google OAuth consent URL plus the anti-CSRF state the frontend must echo back.
// @Tags oauth
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Failed to generate state"
// @Router /auth/google/login-url [get]
func (h *GoogleOAuthHandler) GetLoginURL(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.Error("Failed to generate oauth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate login URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":   h.googleOAuthService.GetGoogleLoginURL(ctx, state),
		"state": state,
	})
}

// ExchangeCodeGoogle godoc
// @Summary Exchange authorization code for access token
// @Description Exchanges a Google authorization code for the application's JWT, creating the user on first sign-in.
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} ExchangeCodeResponse
// @Failure 400 {object} map[string]string "Invalid authorization code"
// @Failure 401 {object} map[string]string "Invalid Google ID token"
// @Failure 500 {object} map[string]string "Failed to process sign-in"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired authorization code"})
		} else {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to communicate with Google"})
		}
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ID token from Google"})
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		logger.Error("Email claim missing from Google ID token payload", slog.String("google_user_id", payload.Subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Essential user information missing from Google token"})
		return
	}

	user, err := h.userService.FindOrCreateOAuthUser(ctx, email, name)
	if err != nil {
		logger.Error("Failed to find or create OAuth user", slog.String("error", err.Error()), slog.String("email", email))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process sign-in"})
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token for OAuth user", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	logger.Info("User signed in via Google OAuth", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, ExchangeCodeResponse{Token: accessToken})
}
