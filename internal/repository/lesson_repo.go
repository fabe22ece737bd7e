package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/naturalize-app/api/internal/models"
)

// LessonRepository provides read access to lesson content and progress.
type LessonRepository interface {
	// CountAll returns the system-wide lesson count.
	CountAll(ctx context.Context) (int, error)
	// InProgressForUser returns the user's lessons with progress strictly
	// between 0 and 100.
	InProgressForUser(ctx context.Context, userID uuid.UUID) ([]models.LessonProgress, error)
}

type lessonRepo struct {
	pool *pgxpool.Pool
}

// NewLessonRepository creates a new lesson repository.
func NewLessonRepository(pool *pgxpool.Pool) LessonRepository {
	return &lessonRepo{pool: pool}
}

func (r *lessonRepo) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&count)
	return count, err
}

func (r *lessonRepo) InProgressForUser(ctx context.Context, userID uuid.UUID) ([]models.LessonProgress, error) {
	query := `
		SELECT p.user_id, p.lesson_id, l.title, p.progress, p.updated_at
		FROM lesson_progress p
		JOIN lessons l ON l.id = p.lesson_id
		WHERE p.user_id = $1 AND p.progress > 0 AND p.progress < 100
		ORDER BY p.updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []models.LessonProgress
	for rows.Next() {
		var lp models.LessonProgress
		if err := rows.Scan(&lp.UserID, &lp.LessonID, &lp.Title, &lp.Progress, &lp.UpdatedAt); err != nil {
			return nil, err
		}
		lessons = append(lessons, lp)
	}
	return lessons, rows.Err()
}
