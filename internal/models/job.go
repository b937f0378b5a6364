package models

import (
	"time"

	"github.com/google/uuid"
)

// Job statuses
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
)

type Job struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Budget       int64      `json:"budget"` // minor currency units
	Deadline     time.Time  `json:"deadline"`
	Image        *string    `json:"image,omitempty"`
	Status       string     `json:"status"`
	EmployerID   uuid.UUID  `json:"employer_id"`
	FreelancerID *uuid.UUID `json:"freelancer_id,omitempty"` // assigned freelancer
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// JobWithApplicants embeds Job and adds applicant ids to avoid N+1 queries.
type JobWithApplicants struct {
	Job
	Applicants []uuid.UUID `json:"applicants"`
}
