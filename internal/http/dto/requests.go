package dto

import "time"

type RegisterRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Role     string   `json:"role" validate:"required,oneof=freelancer employer"`
	Skills   []string `json:"skills,omitempty"`
	Company  *string  `json:"company,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Location *string  `json:"location,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     string   `json:"name" validate:"required"`
	Skills   []string `json:"skills,omitempty"`
	Company  *string  `json:"company,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Location *string  `json:"location,omitempty"`
	Avatar   *string  `json:"avatar,omitempty"`
}

// Jobs

type CreateJobRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Budget      int64     `json:"budget" validate:"required,gt=0"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	Image       *string   `json:"image,omitempty"`
}

type AssignJobRequest struct {
	FreelancerID string `json:"freelancer_id" validate:"required,uuid"`
}

// Posts

type CreatePostRequest struct {
	Content   string   `json:"content" validate:"required"`
	Tags      []string `json:"tags,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Trainings

type CreateTrainingRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       int64   `json:"price" validate:"gte=0"`
	Duration    *string `json:"duration,omitempty"`
	Level       string  `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Chapters    any     `json:"chapters,omitempty"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

type PurchaseTrainingRequest struct {
	Phone  string `json:"phone" validate:"required"`
	Medium string `json:"medium,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email" validate:"required,email"`
}

type RateTrainingRequest struct {
	Rating int     `json:"rating" validate:"required,min=1,max=5"`
	Review *string `json:"review,omitempty"`
}

// Messaging

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	Content    string `json:"content" validate:"required"`
}

// Reviews

type CreateReviewRequest struct {
	JobID   string  `json:"job_id" validate:"required,uuid"`
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

// Escrow

type DepositEscrowRequest struct {
	JobID string `json:"job_id" validate:"required,uuid"`
}

type DisputeEscrowRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Payments

type InitiatePaymentRequest struct {
	Amount     int64  `json:"amount" validate:"required,gt=0"`
	Phone      string `json:"phone" validate:"required"`
	Medium     string `json:"medium,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email" validate:"required,email"`
	ExternalID string `json:"external_id,omitempty"`
	Message    string `json:"message,omitempty"`
}
