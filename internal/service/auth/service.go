package auth

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/jobdeck/jobdeck/internal/domain"
	"github.com/jobdeck/jobdeck/internal/repository"
	"github.com/jobdeck/jobdeck/internal/validation"
	"github.com/jobdeck/jobdeck/pkg/config"
	"github.com/jobdeck/jobdeck/pkg/crypto"
	jwtpkg "github.com/jobdeck/jobdeck/pkg/jwt"
)

// Service handles registration, login and token verification.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// Register validates the payload, stores the account with a hashed password
// and returns the user plus a freshly minted token, mirroring login.
func (s Service) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if err := validation.Registration(name, email, password); err != nil {
		return nil, "", err
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}
	token, err := jwtpkg.GenerateToken(user.ID, user.Name, s.cfg.JWTSecret, s.cfg.TokenLifetime)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login authenticates a user and returns a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if err := validation.Login(email, password); err != nil {
		return nil, "", err
	}
	user, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}
	token, err := jwtpkg.GenerateToken(user.ID, user.Name, s.cfg.JWTSecret, s.cfg.TokenLifetime)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Authorize validates a bearer token and returns the embedded claims. The
// token is self contained, so no database round trip happens per request.
func (s Service) Authorize(token string) (*jwtpkg.Claims, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, domain.ErrInvalidCredentials
	}
	claims, err := jwtpkg.Parse(trimmed, s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
