package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jobive/backend/internal/models"
	"github.com/jobive/backend/internal/repositories"
	"go.uber.org/zap"
)

type ReviewService struct {
	reviews *repositories.ReviewRepo
	jobs    *repositories.JobRepo
	log     *zap.Logger
}

func NewReviewService(reviews *repositories.ReviewRepo, jobs *repositories.JobRepo, log *zap.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, jobs: jobs, log: log}
}

// Create accepts one review per completed job, written by its employer about
// its freelancer.
func (s *ReviewService) Create(ctx context.Context, reviewerID, jobID uuid.UUID, rating int, comment *string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: job", ErrNotFound)
	}
	if job.EmployerID != reviewerID {
		return nil, fmt.Errorf("%w: only the job's employer can review", ErrUnauthorized)
	}
	if job.Status != models.JobStatusCompleted {
		return nil, fmt.Errorf("%w: job is not completed", ErrInvalidState)
	}
	if job.FreelancerID == nil {
		return nil, fmt.Errorf("%w: job has no freelancer", ErrInvalidState)
	}

	exists, err := s.reviews.Exists(ctx, jobID, reviewerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: job already reviewed", ErrAlreadyExists)
	}

	review := &models.Review{
		ReviewerID:   reviewerID,
		FreelancerID: *job.FreelancerID,
		JobID:        jobID,
		Rating:       rating,
		Comment:      comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.ReviewWithReviewer, error) {
	return s.reviews.ListByFreelancer(ctx, freelancerID)
}

// Delete removes a review written by the caller.
func (s *ReviewService) Delete(ctx context.Context, reviewID, reviewerID uuid.UUID) error {
	removed, err := s.reviews.Delete(ctx, reviewID, reviewerID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: review", ErrNotFound)
	}
	return nil
}
