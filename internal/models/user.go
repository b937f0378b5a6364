package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RoleFreelancer = "freelancer"
	RoleEmployer   = "employer"
	RoleAdmin      = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Skills       []string  `json:"skills,omitempty"` // freelancers only
	Company      *string   `json:"company,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Avatar       *string   `json:"avatar,omitempty"`
	Earnings     int64     `json:"earnings"` // lifetime payouts received, minor units
	CreatedAt    time.Time `json:"created_at"`
}
