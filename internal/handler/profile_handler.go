package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/naturalize-app/api/internal/middleware"
	"github.com/naturalize-app/api/internal/models"
	apierrors "github.com/naturalize-app/api/internal/pkg/errors"
	"github.com/naturalize-app/api/internal/pkg/response"
	"github.com/naturalize-app/api/internal/service"
)

// ProfileHandler handles the authenticated user's own profile requests.
type ProfileHandler struct {
	profileService service.ProfileService
	avatarService  service.AvatarService
	validate       *validator.Validate
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService, avatarService service.AvatarService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		avatarService:  avatarService,
		validate:       validator.New(),
	}
}

// RegisterRoutes attaches the profile routes. All of them act on the
// caller's own record; the target id comes from the auth context only.
func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Get("/info/me", h.GetMe)
	r.Patch("/update/info", h.UpdateMe)
	r.Post("/update_profile_image", h.UploadAvatar)
}

// GetMe handles GET /v1/users/info/me
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, profile)
}

// UpdateMe handles PATCH /v1/users/update/info
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}

	if err := h.validate.Struct(update); err != nil {
		fields := map[string]string{}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
		}
		response.ValidationErrors(w, fields)
		return
	}

	user, err := h.profileService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]any{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// UploadAvatar handles POST /v1/users/update_profile_image
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == uuid.Nil {
		response.Error(w, apierrors.ErrUnauthorized)
		return
	}

	// Leave headroom above the service-side cap so an oversized upload is
	// rejected with a validation error instead of a truncated read.
	if err := r.ParseMultipartForm(service.MaxAvatarSize + 1<<20); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("profile_image")
	if err != nil {
		response.Error(w, apierrors.NewValidationError("profile_image", "profile_image file is required"))
		return
	}
	defer file.Close()

	// Read one byte past the cap; the service treats anything longer
	// than the cap as oversized.
	data, err := io.ReadAll(io.LimitReader(file, service.MaxAvatarSize+1))
	if err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Failed to read uploaded file"))
		return
	}

	imageURL, err := h.avatarService.Replace(r.Context(), userID, data, header.Filename)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.Created(w, map[string]string{
		"message":       "Successfully updated profile image",
		"profile_image": imageURL,
	})
}
