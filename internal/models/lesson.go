package models

import (
	"time"

	"github.com/google/uuid"
)

// Lesson is a unit of learning content.
type Lesson struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Theme     *string   `json:"theme,omitempty" db:"theme"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Question is a single quiz question attached to a lesson.
type Question struct {
	ID        uuid.UUID `json:"id" db:"id"`
	LessonID  uuid.UUID `json:"lesson_id" db:"lesson_id"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LeaderboardEntry maps a user to their cumulative total score.
// This core only reads entries; the quiz flow writes them.
type LeaderboardEntry struct {
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	TotalScore int       `json:"total_score" db:"total_score"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// LessonProgress tracks a user's completion percentage for one lesson.
// A lesson is "in progress" when 0 < Progress < 100.
type LessonProgress struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	LessonID  uuid.UUID `json:"lesson_id" db:"lesson_id"`
	Title     string    `json:"title" db:"title"`
	Progress  int       `json:"progress" db:"progress"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
