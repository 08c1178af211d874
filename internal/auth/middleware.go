package auth

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/sprintsync/sprintsync-api/internal/errors"
	"github.com/sprintsync/sprintsync-api/internal/logger"
)

// Define a custom type for context keys to avoid collisions.
type contextKey string

// UserKey is the gin context key holding the authenticated *User.
const UserKey contextKey = "user"

// UserResolver turns a bearer token into the user it was issued for.
type UserResolver interface {
	UserFromToken(ctx context.Context, token string) (*User, error)
}

type Middleware struct {
	users  UserResolver
	logger *logger.Logger
}

func NewMiddleware(users UserResolver, logger *logger.Logger) *Middleware {
	return &Middleware{
		users:  users,
		logger: logger,
	}
}

// RequireAuth validates the bearer token and attaches the user to the context.
// The user must still exist; deleted accounts lose access immediately.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := m.logger.WithContext(c.Request.Context()).WithComponent("auth")

		authHeader := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			apierrors.AbortWithUnauthorized(c, "Access denied. No token provided or invalid format.", nil)
			return
		}

		user, err := m.users.UserFromToken(c.Request.Context(), strings.TrimSpace(token))
		switch {
		case errors.Is(err, ErrUserNotFound):
			apierrors.AbortWithUnauthorized(c, "Access denied. User not found.", nil)
			return
		case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrExpiredToken):
			log.Warn("token verification failed", slog.String("error", err.Error()))
			apierrors.AbortWithUnauthorized(c, "Access denied. Invalid token.", nil)
			return
		case err != nil:
			log.Error("auth middleware error", slog.String("error", err.Error()))
			apierrors.AbortWithInternal(c, "Internal server error during authentication.", nil)
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), strconv.FormatInt(user.ID, 10))
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(UserKey), user)

		c.Next()
	}
}

// GetUser extracts the authenticated user from the Gin context.
func GetUser(c *gin.Context) (*User, bool) {
	value, exists := c.Get(string(UserKey))
	if !exists {
		return nil, false
	}

	user, ok := value.(*User)
	return user, ok && user != nil
}

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) (int64, bool) {
	user, ok := GetUser(c)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
