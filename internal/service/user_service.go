// Package service provides business logic implementations.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/naturalize-app/api/internal/models"
	apierrors "github.com/naturalize-app/api/internal/pkg/errors"
	"github.com/naturalize-app/api/internal/repository"
)

const (
	// DefaultListLimit is applied when the caller does not specify a page size.
	DefaultListLimit = 20
	// MaxListLimit is the hard pagination ceiling.
	MaxListLimit = 100
)

// UserService defines the interface for user administration operations.
type UserService interface {
	List(ctx context.Context, skip, limit int) ([]*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

// List returns users ordered newest first. A limit above MaxListLimit is
// rejected before any data is read.
func (s *userService) List(ctx context.Context, skip, limit int) ([]*models.User, error) {
	if skip < 0 {
		return nil, apierrors.NewValidationError("skip", "skip cannot be negative")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		return nil, apierrors.NewValidationError("limit", "limit cannot exceed 100")
	}

	users, err := s.users.List(ctx, skip, limit)
	if err != nil {
		slog.Error("failed to list users", slog.String("op", "user.list"), slog.Any("error", err))
		return nil, apierrors.ErrInternal
	}
	return users, nil
}

// Get returns the user with the given id.
func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		slog.Error("failed to get user", slog.String("op", "user.get"), slog.String("user_id", id.String()), slog.Any("error", err))
		return nil, apierrors.ErrInternal
	}
	if user == nil {
		return nil, apierrors.NewNotFoundError("User")
	}
	return user, nil
}

// Delete permanently removes the user. Related leaderboard and progress
// rows are not cleaned up; see the schema notes.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		slog.Error("failed to delete user", slog.String("op", "user.delete"), slog.String("user_id", id.String()), slog.Any("error", err))
		return apierrors.ErrInternal
	}
	if !deleted {
		return apierrors.NewNotFoundError("User")
	}
	slog.Info("user deleted", slog.String("op", "user.delete"), slog.String("user_id", id.String()))
	return nil
}
