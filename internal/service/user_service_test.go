package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naturalize-app/api/internal/models"
	apierrors "github.com/naturalize-app/api/internal/pkg/errors"
	"github.com/naturalize-app/api/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, skip, limit int) ([]*models.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, patch repository.UserPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	users := []*models.User{models.NewUser("a@example.com"), models.NewUser("b@example.com")}
	mockRepo.On("List", ctx, 0, 20).Return(users, nil)

	got, err := svc.List(ctx, 0, 20)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	mockRepo.AssertExpectations(t)
}

func TestUserService_List_LimitTooLarge(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	got, err := svc.List(ctx, 0, 101)
	require.Error(t, err)
	assert.Nil(t, got)

	apiErr := apierrors.AsAPIError(err)
	assert.Equal(t, "validation_error", apiErr.Code)

	// The repository must never be touched on a rejected limit.
	mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_List_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("List", ctx, 0, DefaultListLimit).Return([]*models.User{}, nil)

	_, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	id := uuid.New()
	mockRepo.On("GetByID", ctx, id).Return(nil, nil)

	got, err := svc.Get(ctx, id)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, "not_found", apierrors.AsAPIError(err).Code)
}

func TestUserService_Delete_Twice(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	id := uuid.New()
	mockRepo.On("Delete", ctx, id).Return(true, nil).Once()
	mockRepo.On("Delete", ctx, id).Return(false, nil).Once()

	require.NoError(t, svc.Delete(ctx, id))

	err := svc.Delete(ctx, id)
	require.Error(t, err)
	assert.Equal(t, "not_found", apierrors.AsAPIError(err).Code)
	mockRepo.AssertExpectations(t)
}
