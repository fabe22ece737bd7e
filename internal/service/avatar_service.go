package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	apierrors "github.com/naturalize-app/api/internal/pkg/errors"
	"github.com/naturalize-app/api/internal/repository"
	"github.com/naturalize-app/api/internal/storage"
)

// MaxAvatarSize is the inclusive upload ceiling: exactly this many bytes
// is accepted, one more is rejected.
const MaxAvatarSize = 5 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AvatarService validates, stores, and links uploaded profile images.
type AvatarService interface {
	// Replace stores the image and writes its public URL onto the user
	// record. Returns the URL. The record is only touched after the blob
	// write succeeds.
	Replace(ctx context.Context, userID uuid.UUID, data []byte, filename string) (string, error)
}

type avatarService struct {
	users   repository.UserRepository
	blobs   storage.BlobStore
	baseURL string
}

// NewAvatarService creates a new avatar service. baseURL is the externally
// visible origin used to build the stored image URL.
func NewAvatarService(users repository.UserRepository, blobs storage.BlobStore, baseURL string) AvatarService {
	return &avatarService{
		users:   users,
		blobs:   blobs,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *avatarService) Replace(ctx context.Context, userID uuid.UUID, data []byte, filename string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		slog.Error("failed to get user", slog.String("op", "avatar.replace"), slog.String("user_id", userID.String()), slog.Any("error", err))
		return "", apierrors.ErrInternal
	}
	if user == nil {
		return "", apierrors.NewNotFoundError("User")
	}

	ext := strings.ToLower(path.Ext(filename))
	if !allowedImageExtensions[ext] {
		return "", apierrors.NewValidationError("profile_image",
			"invalid file type, allowed types: .jpg, .jpeg, .png, .gif, .webp")
	}

	if len(data) > MaxAvatarSize {
		return "", apierrors.NewValidationError("profile_image",
			fmt.Sprintf("file size exceeds maximum allowed size of %dMB", MaxAvatarSize/(1024*1024)))
	}

	name := uuid.New().String() + ext

	if err := s.blobs.Write(name, bytes.NewReader(data)); err != nil {
		slog.Error("image upload failed", slog.String("op", "avatar.replace"), slog.String("user_id", userID.String()), slog.Any("error", err))
		return "", apierrors.ErrStorageFailure
	}

	imageURL := fmt.Sprintf("%s/static/%s", s.baseURL, name)

	// The previous file is left in place; there is no cleanup policy yet.
	if err := s.users.Update(ctx, userID, repository.UserPatch{ProfileImage: &imageURL}); err != nil {
		slog.Error("failed to link profile image", slog.String("op", "avatar.replace"), slog.String("user_id", userID.String()), slog.Any("error", err))
		return "", apierrors.ErrInternal
	}

	slog.Info("profile image updated", slog.String("op", "avatar.replace"), slog.String("user_id", userID.String()))
	return imageURL, nil
}
