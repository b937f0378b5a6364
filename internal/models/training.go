package models

import (
	"time"

	"github.com/google/uuid"
)

// Training statuses
const (
	TrainingStatusDraft     = "draft"
	TrainingStatusPublished = "published"
	TrainingStatusArchived  = "archived"
)

// Training levels
const (
	TrainingLevelBeginner     = "beginner"
	TrainingLevelIntermediate = "intermediate"
	TrainingLevelAdvanced     = "advanced"
)

type Training struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Price            int64     `json:"price"` // minor currency units
	Duration         *string   `json:"duration,omitempty"`
	Level            string    `json:"level"`
	Chapters         any       `json:"chapters,omitempty"` // [{title, subchapters:[{title, description, files}]}]
	InstructorID     uuid.UUID `json:"instructor_id"`
	AverageRating    float64   `json:"average_rating"`
	TotalEnrollments int       `json:"total_enrollments"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Enrollment struct {
	TrainingID uuid.UUID `json:"training_id"`
	UserID     uuid.UUID `json:"user_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

type TrainingRating struct {
	ID         uuid.UUID `json:"id"`
	TrainingID uuid.UUID `json:"training_id"`
	UserID     uuid.UUID `json:"user_id"`
	Rating     int       `json:"rating"` // 1..5
	Review     *string   `json:"review,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
