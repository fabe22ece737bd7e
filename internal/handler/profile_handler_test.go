package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naturalize-app/api/internal/middleware"
	"github.com/naturalize-app/api/internal/models"
	"github.com/naturalize-app/api/internal/pkg/response"
)

// MockProfileService is a mock implementation of service.ProfileService.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ExtendedProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExtendedProfile), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, update models.UserUpdate) (*models.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockAvatarService is a mock implementation of service.AvatarService.
type MockAvatarService struct {
	mock.Mock
}

func (m *MockAvatarService) Replace(ctx context.Context, userID uuid.UUID, data []byte, filename string) (string, error) {
	args := m.Called(ctx, userID, data, filename)
	return args.String(0), args.Error(1)
}

// authedRequest builds a request carrying an authenticated user id.
func authedRequest(method, path string, body *bytes.Buffer, userID uuid.UUID) *http.Request {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestProfileHandler_GetMe(t *testing.T) {
	mockProfile := new(MockProfileService)
	mockAvatar := new(MockAvatarService)
	h := NewProfileHandler(mockProfile, mockAvatar)

	user := models.NewUser("learner@example.com")
	profile := &models.ExtendedProfile{
		TotalScore:   10,
		TotalLessons: 12,
		SuccessRate:  5.0,
		UserDetails:  user,
	}
	mockProfile.On("GetProfile", mock.Anything, user.ID).Return(profile, nil)

	req := authedRequest(http.MethodGet, "/info/me", nil, user.ID)
	rr := httptest.NewRecorder()

	h.GetMe(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, 5.0, data["success_rate"])
	assert.Equal(t, float64(12), data["total_lessons"])
}

func TestProfileHandler_GetMe_Unauthenticated(t *testing.T) {
	h := NewProfileHandler(new(MockProfileService), new(MockAvatarService))

	req := httptest.NewRequest(http.MethodGet, "/info/me", nil)
	rr := httptest.NewRecorder()

	h.GetMe(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestProfileHandler_UpdateMe(t *testing.T) {
	mockProfile := new(MockProfileService)
	h := NewProfileHandler(mockProfile, new(MockAvatarService))

	user := models.NewUser("learner@example.com")
	first := "Mamadou"
	updated := *user
	updated.FirstName = &first

	mockProfile.On("UpdateProfile", mock.Anything, user.ID, mock.AnythingOfType("models.UserUpdate")).
		Return(&updated, nil)

	body := bytes.NewBufferString(`{"first_name":"Mamadou"}`)
	req := authedRequest(http.MethodPatch, "/update/info", body, user.ID)
	rr := httptest.NewRecorder()

	h.UpdateMe(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Profile updated successfully", data["message"])

	// Only the supplied field is forwarded to the service.
	call := mockProfile.Calls[0].Arguments.Get(2).(models.UserUpdate)
	require.NotNil(t, call.FirstName)
	assert.Equal(t, "Mamadou", *call.FirstName)
	assert.Nil(t, call.LastName)
	assert.Nil(t, call.Password)
}

func TestProfileHandler_UpdateMe_MalformedBody(t *testing.T) {
	mockProfile := new(MockProfileService)
	h := NewProfileHandler(mockProfile, new(MockAvatarService))

	body := bytes.NewBufferString(`{"first_name":`)
	req := authedRequest(http.MethodPatch, "/update/info", body, uuid.New())
	rr := httptest.NewRecorder()

	h.UpdateMe(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockProfile.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestProfileHandler_UpdateMe_InvalidEmail(t *testing.T) {
	mockProfile := new(MockProfileService)
	h := NewProfileHandler(mockProfile, new(MockAvatarService))

	body := bytes.NewBufferString(`{"email":"not-an-email"}`)
	req := authedRequest(http.MethodPatch, "/update/info", body, uuid.New())
	rr := httptest.NewRecorder()

	h.UpdateMe(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockProfile.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestProfileHandler_UploadAvatar(t *testing.T) {
	mockAvatar := new(MockAvatarService)
	h := NewProfileHandler(new(MockProfileService), mockAvatar)

	user := models.NewUser("learner@example.com")
	content := []byte("fake image bytes")
	imageURL := "http://localhost:8080/static/abc.png"

	mockAvatar.On("Replace", mock.Anything, user.ID, content, "selfie.png").Return(imageURL, nil)

	body, contentType := multipartBody(t, "profile_image", "selfie.png", content)
	req := authedRequest(http.MethodPost, "/update_profile_image", body, user.ID)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.UploadAvatar(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, imageURL, data["profile_image"])
	mockAvatar.AssertExpectations(t)
}

func TestProfileHandler_UploadAvatar_MissingFile(t *testing.T) {
	mockAvatar := new(MockAvatarService)
	h := NewProfileHandler(new(MockProfileService), mockAvatar)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("unrelated", "value"))
	require.NoError(t, w.Close())

	req := authedRequest(http.MethodPost, "/update_profile_image", &buf, uuid.New())
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr := httptest.NewRecorder()

	h.UploadAvatar(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "profile_image"))
	mockAvatar.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
