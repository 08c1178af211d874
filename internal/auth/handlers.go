package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/sprintsync/sprintsync-api/internal/errors"
	"github.com/sprintsync/sprintsync-api/internal/logger"
)

// Handler handles HTTP requests for accounts.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Signup handles POST /auth/signup
func (h *Handler) Signup(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context()).WithComponent("auth-handler")

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "Invalid request body.", map[string]any{"reason": err.Error()})
		return
	}

	user, token, err := h.service.Signup(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrMissingFields):
		apierrors.AbortWithBadRequest(c, "Name, email, and password are required.", nil)
		return
	case errors.Is(err, ErrPasswordTooShort):
		apierrors.AbortWithBadRequest(c, "Password must be at least 6 characters long.", nil)
		return
	case errors.Is(err, ErrEmailTaken):
		apierrors.AbortWithBadRequest(c, "User with this email already exists.", nil)
		return
	case err != nil:
		log.Error("failed to sign up user", slog.String("error", err.Error()))
		apierrors.AbortWithInternal(c, "Internal Server Error", nil)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Message: "User created successfully.",
		Token:   token,
		User:    user,
	})
}

// Login handles POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	log := h.logger.WithContext(c.Request.Context()).WithComponent("auth-handler")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.AbortWithBadRequest(c, "Invalid request body.", map[string]any{"reason": err.Error()})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrMissingCredentials):
		apierrors.AbortWithBadRequest(c, "Email and password are required.", nil)
		return
	case errors.Is(err, ErrInvalidCredentials):
		apierrors.AbortWithUnauthorized(c, "Invalid email or password.", nil)
		return
	case err != nil:
		log.Error("failed to log in user", slog.String("error", err.Error()))
		apierrors.AbortWithInternal(c, "Internal Server Error", nil)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Message: "Login successful.",
		Token:   token,
		User:    user,
	})
}

// Me handles GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	user, ok := GetUser(c)
	if !ok {
		apierrors.AbortWithUnauthorized(c, "Unauthorized", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
