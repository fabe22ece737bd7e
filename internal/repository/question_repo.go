package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository provides read access to quiz questions.
type QuestionRepository interface {
	// CountAll returns the system-wide question count.
	CountAll(ctx context.Context) (int, error)
}

type questionRepo struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository.
func NewQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &questionRepo{pool: pool}
}

func (r *questionRepo) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count)
	return count, err
}
