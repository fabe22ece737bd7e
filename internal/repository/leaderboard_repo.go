package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/naturalize-app/api/internal/models"
)

// LeaderboardRepository provides read access to cumulative user scores.
// Entries are written by the quiz flow; this API only looks them up.
type LeaderboardRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.LeaderboardEntry, error)
}

type leaderboardRepo struct {
	pool *pgxpool.Pool
}

// NewLeaderboardRepository creates a new leaderboard repository.
func NewLeaderboardRepository(pool *pgxpool.Pool) LeaderboardRepository {
	return &leaderboardRepo{pool: pool}
}

// GetByUserID retrieves a user's leaderboard entry.
// A missing entry is a normal state and returns (nil, nil).
func (r *leaderboardRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.LeaderboardEntry, error) {
	query := `SELECT user_id, total_score, updated_at FROM leaderboard WHERE user_id = $1`

	var entry models.LeaderboardEntry
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&entry.UserID,
		&entry.TotalScore,
		&entry.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
