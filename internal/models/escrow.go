package models

import (
	"time"

	"github.com/google/uuid"
)

// Escrow statuses
const (
	EscrowStatusPending   = "pending"
	EscrowStatusCompleted = "completed"
	EscrowStatusDisputed  = "disputed"
)

// Valid state transitions: from -> []to. completed and disputed are terminal;
// dispute resolution happens outside this system.
var ValidEscrowTransitions = map[string][]string{
	EscrowStatusPending:   {EscrowStatusCompleted, EscrowStatusDisputed},
	EscrowStatusCompleted: {},
	EscrowStatusDisputed:  {},
}

func IsValidEscrowTransition(from, to string) bool {
	allowed, ok := ValidEscrowTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Escrow is one held payment for one job, released to the freelancer only
// after both parties confirm completion and the gateway payout succeeds.
type Escrow struct {
	ID                  uuid.UUID `json:"id"`
	JobID               uuid.UUID `json:"job_id"`
	EmployerID          uuid.UUID `json:"employer_id"`
	FreelancerID        uuid.UUID `json:"freelancer_id"`
	Amount              int64     `json:"amount"` // minor currency units (XAF)
	Status              string    `json:"status"`
	EmployerConfirmed   bool      `json:"employer_confirmed"`
	FreelancerConfirmed bool      `json:"freelancer_confirmed"`
	TransID             string    `json:"trans_id"` // gateway transaction id
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// PaymentLink is returned by the gateway at deposit time and is not stored.
	PaymentLink string `json:"payment_link,omitempty"`
}

// Party returns which side of the escrow userID is on, or "" if neither.
func (e *Escrow) Party(userID uuid.UUID) string {
	switch userID {
	case e.EmployerID:
		return "employer"
	case e.FreelancerID:
		return "freelancer"
	}
	return ""
}
