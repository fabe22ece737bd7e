package models

// ExtendedProfile is the aggregated profile view returned to the
// authenticated user. It is assembled fresh on every request and never
// persisted.
type ExtendedProfile struct {
	TotalScore        int              `json:"total_score"`
	TotalLessons      int              `json:"total_lessons"`
	SuccessRate       float64          `json:"success_rate"`
	UserDetails       *User            `json:"user_details"`
	InProgressLessons []LessonProgress `json:"in_progress_lessons"`
}
