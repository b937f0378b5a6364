package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID           uuid.UUID `json:"id"`
	ReviewerID   uuid.UUID `json:"reviewer_id"`
	FreelancerID uuid.UUID `json:"freelancer_id"`
	JobID        uuid.UUID `json:"job_id"`
	Rating       int       `json:"rating"` // 1..5
	Comment      *string   `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewWithReviewer embeds Review and adds reviewer info to avoid N+1 queries.
type ReviewWithReviewer struct {
	Review
	ReviewerName  *string `json:"reviewer_name,omitempty"`
	ReviewerEmail *string `json:"reviewer_email,omitempty"`
}
