package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/naturalize-app/api/internal/models"
	apierrors "github.com/naturalize-app/api/internal/pkg/errors"
	"github.com/naturalize-app/api/internal/repository"
)

// ProfileService assembles and mutates the authenticated user's profile.
// Both operations take the caller's id from the authenticated context, never
// an arbitrary target.
type ProfileService interface {
	// GetProfile returns the user's extended profile view.
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.ExtendedProfile, error)
	// UpdateProfile applies a partial update and returns the record as
	// re-read from storage after the write.
	UpdateProfile(ctx context.Context, userID uuid.UUID, update models.UserUpdate) (*models.User, error)
}

type profileService struct {
	users       repository.UserRepository
	leaderboard repository.LeaderboardRepository
	lessons     repository.LessonRepository
	questions   repository.QuestionRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(
	users repository.UserRepository,
	leaderboard repository.LeaderboardRepository,
	lessons repository.LessonRepository,
	questions repository.QuestionRepository,
) ProfileService {
	return &profileService{
		users:       users,
		leaderboard: leaderboard,
		lessons:     lessons,
		questions:   questions,
	}
}

// GetProfile fetches the user record, then the leaderboard score, global
// lesson count, and global question count concurrently, joins the results,
// and merges them with the in-progress lesson list into one view.
func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ExtendedProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		slog.Error("failed to get user", slog.String("op", "profile.get"), slog.String("user_id", userID.String()), slog.Any("error", err))
		return nil, apierrors.ErrInternal
	}
	if user == nil {
		// The caller authenticated but the record is gone; that is an
		// error, not something to default.
		return nil, apierrors.NewNotFoundError("User")
	}

	// The three counts write disjoint fields and have no ordering
	// dependency, so they are fetched in parallel and joined here.
	var (
		wg             sync.WaitGroup
		entry          *models.LeaderboardEntry
		totalLessons   int
		totalQuestions int
		entryErr       error
		lessonsErr     error
		questionsErr   error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		entry, entryErr = s.leaderboard.GetByUserID(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		totalLessons, lessonsErr = s.lessons.CountAll(ctx)
	}()
	go func() {
		defer wg.Done()
		totalQuestions, questionsErr = s.questions.CountAll(ctx)
	}()
	wg.Wait()

	for _, err := range []error{entryErr, lessonsErr, questionsErr} {
		if err != nil {
			slog.Error("failed to fetch profile statistics", slog.String("op", "profile.get"), slog.String("user_id", userID.String()), slog.Any("error", err))
			return nil, apierrors.ErrInternal
		}
	}

	// A missing leaderboard entry is a normal state, not an error.
	totalScore := 0
	if entry != nil {
		totalScore = entry.TotalScore
	}

	inProgress, err := s.lessons.InProgressForUser(ctx, userID)
	if err != nil {
		slog.Error("failed to fetch in-progress lessons", slog.String("op", "profile.get"), slog.String("user_id", userID.String()), slog.Any("error", err))
		return nil, apierrors.ErrInternal
	}

	return assembleProfile(user, totalScore, totalLessons, totalQuestions, inProgress), nil
}

// assembleProfile merges already-fetched inputs into the profile view.
// Kept free of I/O so the statistics math is testable in isolation.
func assembleProfile(user *models.User, totalScore, totalLessons, totalQuestions int, inProgress []models.LessonProgress) *models.ExtendedProfile {
	successRate := 0.0
	if totalQuestions > 0 {
		successRate = float64(totalQuestions*totalScore) / 100
	}

	return &models.ExtendedProfile{
		TotalScore:        totalScore,
		TotalLessons:      totalLessons,
		SuccessRate:       successRate,
		UserDetails:       user,
		InProgressLessons: inProgress,
	}
}

// UpdateProfile validates and applies a partial update. The password, if
// supplied, is bcrypt-hashed before it reaches the repository.
func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, update models.UserUpdate) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		slog.Error("failed to get user", slog.String("op", "profile.update"), slog.String("user_id", userID.String()), slog.Any("error", err))
		return nil, apierrors.ErrInternal
	}
	if user == nil {
		return nil, apierrors.NewNotFoundError("User")
	}

	if update.IsEmpty() {
		return nil, apierrors.ErrBadRequest.WithMessage("No data provided for update")
	}

	if update.AccountStatus != nil && !update.AccountStatus.Valid() {
		return nil, apierrors.NewValidationError("account_status", "invalid account status")
	}
	if update.Plan != nil && !update.Plan.Valid() {
		return nil, apierrors.NewValidationError("plan", "invalid subscription plan")
	}
	if update.Role != nil && !update.Role.Valid() {
		return nil, apierrors.NewValidationError("role", "invalid role")
	}

	patch := repository.UserPatch{
		FirstName:     update.FirstName,
		LastName:      update.LastName,
		Email:         update.Email,
		PhoneNumber:   update.PhoneNumber,
		IsVerified:    update.IsVerified,
		AccountStatus: update.AccountStatus,
		Plan:          update.Plan,
		Role:          update.Role,
	}

	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("failed to hash password", slog.String("op", "profile.update"), slog.String("user_id", userID.String()), slog.Any("error", err))
			return nil, apierrors.ErrInternal
		}
		hashStr := string(hash)
		patch.PasswordHash = &hashStr
	}

	if err := s.users.Update(ctx, userID, patch); err != nil {
		slog.Error("failed to update user", slog.String("op", "profile.update"), slog.String("user_id", userID.String()), slog.Any("error", err))
		return nil, apierrors.ErrInternal
	}

	// Re-read so the response reflects storage's final state.
	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		slog.Error("failed to re-read user", slog.String("op", "profile.update"), slog.String("user_id", userID.String()), slog.Any("error", err))
		return nil, apierrors.ErrInternal
	}
	if updated == nil {
		return nil, apierrors.NewNotFoundError("User")
	}

	slog.Info("profile updated", slog.String("op", "profile.update"), slog.String("user_id", userID.String()))
	return updated, nil
}
