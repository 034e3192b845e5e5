package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/contact-funnel/internal/auth"
	"github.com/spec-kit/contact-funnel/internal/config"
	"github.com/spec-kit/contact-funnel/internal/domain"
	"github.com/spec-kit/contact-funnel/internal/events"
	"github.com/spec-kit/contact-funnel/internal/repository"
	apperrors "github.com/spec-kit/contact-funnel/pkg/util"
)

// AuthService coordinates signup and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	limiter    *RateLimiter
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Limiter    *RateLimiter
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher: deps.Dispatcher,
		limiter:    deps.Limiter,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup creates a new account. The welcome notification is published as
// an event; its delivery never affects the outcome.
func (s *AuthService) Signup(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user already exists with this email", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// the unique index settles concurrent signups with the same email
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("user already exists with this email", nil)
		}
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventUserSignedUp, events.UserSignedUpPayload{
			UserID:   user.ID,
			FullName: user.FullName,
			Email:    user.Email,
		}))
	}
	return user, nil
}

// Signin authenticates a user. Unknown email and wrong password produce
// the identical message so callers cannot probe which check failed.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !s.limiter.Allow(ctx, "signin:"+email) {
		return nil, "", time.Time{}, apperrors.NewTooManyRequests("too many login attempts, try again later")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, false)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// AdminLogin authenticates an admin. Non-admins are rejected with 403
// before the password check; that asymmetry with Signin is deliberate.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !s.limiter.Allow(ctx, "admin-login:"+email) {
		return nil, "", time.Time{}, apperrors.NewTooManyRequests("too many login attempts, try again later")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !user.IsAdmin {
		return nil, "", time.Time{}, apperrors.NewForbidden("access denied, admin privileges required")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, true)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
