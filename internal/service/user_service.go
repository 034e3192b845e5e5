package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/contact-funnel/internal/auth"
	"github.com/spec-kit/contact-funnel/internal/config"
	"github.com/spec-kit/contact-funnel/internal/domain"
	"github.com/spec-kit/contact-funnel/internal/repository"
	apperrors "github.com/spec-kit/contact-funnel/pkg/util"
)

// Caller identifies the authenticated principal invoking an operation.
type Caller struct {
	UserID string
}

// UserUpdateInput carries the optional fields of a profile update.
type UserUpdateInput struct {
	FullName *string
	Email    *string
	Password *string
}

// UserService handles account CRUD.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.Auth.BcryptCost}
}

// List returns every account, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Get fetches one account. A malformed identifier reads as not found.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("user", nil)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// canModify allows the account owner, or an admin per the stored record.
// Admin status is read from the store rather than the token so a
// revoked admin loses access immediately.
func (s *UserService) canModify(ctx context.Context, caller Caller, id string) error {
	if caller.UserID == id {
		return nil
	}
	actor, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil || !actor.IsAdmin {
		return apperrors.NewForbidden("cannot modify another user's account")
	}
	return nil
}

// Update applies a partial profile change. Only the account owner or an
// admin may modify a record; a new password is re-hashed before storage.
func (s *UserService) Update(ctx context.Context, caller Caller, id string, input UserUpdateInput) (*domain.User, error) {
	if err := s.canModify(ctx, caller, id); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil && *input.FullName != "" {
		user.FullName = *input.FullName
	}
	if input.Email != nil && *input.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("user already exists with this email", nil)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Only the account owner or an admin may do so.
func (s *UserService) Delete(ctx context.Context, caller Caller, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound("user", nil)
	}
	if err := s.canModify(ctx, caller, id); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}
	return nil
}
