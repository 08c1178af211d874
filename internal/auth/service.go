package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/lib/pq"
	"github.com/sprintsync/sprintsync-api/internal/logger"
	pgdb "github.com/sprintsync/sprintsync-api/internal/storage/pg/sqlc"
)

var (
	ErrMissingFields      = errors.New("name, email, and password are required")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Service handles account creation, login and user lookup.
type Service struct {
	queries    pgdb.Querier
	tokens     *TokenIssuer
	logger     *logger.Logger
	bcryptCost int
}

// NewService creates a new auth service.
func NewService(queries pgdb.Querier, tokens *TokenIssuer, logger *logger.Logger, bcryptCost int) *Service {
	return &Service{
		queries:    queries,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Signup creates an account and returns it with a fresh token.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, string, error) {
	log := s.logger.WithContext(ctx).WithComponent("auth-service")

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, "", ErrMissingFields
	}

	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	_, err := s.queries.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, "", ErrEmailTaken
	case !errors.Is(err, sql.ErrNoRows):
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := hashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	dbUser, err := s.queries.CreateUser(ctx, pgdb.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(dbUser.ID)
	if err != nil {
		return nil, "", err
	}

	log.Info("user signed up successfully",
		slog.Int64("user_id", dbUser.ID),
		slog.String("email", dbUser.Email))

	return userFromDB(dbUser), token, nil
}

// Login checks credentials and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	log := s.logger.WithContext(ctx).WithComponent("auth-service")

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, "", ErrMissingCredentials
	}

	dbUser, err := s.queries.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := checkPassword(dbUser.PasswordHash, req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(dbUser.ID)
	if err != nil {
		return nil, "", err
	}

	log.Info("user logged in successfully",
		slog.Int64("user_id", dbUser.ID),
		slog.String("email", dbUser.Email))

	return userFromDB(dbUser), token, nil
}

// GetUser loads a user by ID.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	dbUser, err := s.queries.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userFromDB(dbUser), nil
}

// UserFromToken verifies a bearer token and loads the user it belongs to.
func (s *Service) UserFromToken(ctx context.Context, token string) (*User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, userID)
}
