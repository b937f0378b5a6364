package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobive/backend/internal/models"
	"github.com/jobive/backend/internal/rbac"
	"github.com/jobive/backend/internal/repositories"
	"go.uber.org/zap"
)

type JobService struct {
	jobs  *repositories.JobRepo
	audit *repositories.AuditRepo
	log   *zap.Logger
}

func NewJobService(jobs *repositories.JobRepo, audit *repositories.AuditRepo, log *zap.Logger) *JobService {
	return &JobService{jobs: jobs, audit: audit, log: log}
}

func (s *JobService) Create(ctx context.Context, employerID uuid.UUID, role string, j *models.Job) error {
	if !rbac.HasPermission(role, rbac.PermPostJob) {
		return fmt.Errorf("%w: only employers can post jobs", ErrUnauthorized)
	}
	if j.Title == "" || j.Description == "" {
		return fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	if j.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive", ErrValidation)
	}
	if j.Deadline.Before(time.Now()) {
		return fmt.Errorf("%w: deadline must be in the future", ErrValidation)
	}
	j.EmployerID = employerID
	j.Status = models.JobStatusOpen

	if err := s.jobs.Create(ctx, j); err != nil {
		return err
	}
	_ = s.audit.Insert(ctx, &models.AuditLog{
		ActorUserID: &employerID,
		ActorType:   "user",
		Action:      "job_created",
		EntityType:  "job",
		EntityID:    &j.ID,
		Meta:        map[string]any{"budget": j.Budget},
	})
	return nil
}

func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*models.JobWithApplicants, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: job", ErrNotFound)
	}
	applicants, err := s.jobs.GetApplicants(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.JobWithApplicants{Job: *job, Applicants: applicants}, nil
}

func (s *JobService) List(ctx context.Context, limit, offset int) ([]models.Job, error) {
	return s.jobs.List(ctx, limit, offset)
}

func (s *JobService) Apply(ctx context.Context, jobID, userID uuid.UUID, role string) error {
	if !rbac.HasPermission(role, rbac.PermApplyJob) {
		return fmt.Errorf("%w: only freelancers can apply", ErrUnauthorized)
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("%w: job", ErrNotFound)
	}
	if job.Status != models.JobStatusOpen {
		return fmt.Errorf("%w: job is not open", ErrInvalidState)
	}
	return s.jobs.Apply(ctx, jobID, userID)
}

func (s *JobService) Assign(ctx context.Context, jobID, employerID, freelancerID uuid.UUID) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("%w: job", ErrNotFound)
	}
	if job.EmployerID != employerID {
		return fmt.Errorf("%w: only the job's employer can assign", ErrUnauthorized)
	}

	applicants, err := s.jobs.GetApplicants(ctx, jobID)
	if err != nil {
		return err
	}
	applied := false
	for _, id := range applicants {
		if id == freelancerID {
			applied = true
			break
		}
	}
	if !applied {
		return fmt.Errorf("%w: freelancer has not applied to this job", ErrValidation)
	}

	assigned, err := s.jobs.Assign(ctx, jobID, freelancerID)
	if err != nil {
		return err
	}
	if !assigned {
		return fmt.Errorf("%w: job is not open", ErrInvalidState)
	}

	_ = s.audit.Insert(ctx, &models.AuditLog{
		ActorUserID: &employerID,
		ActorType:   "user",
		Action:      "job_assigned",
		EntityType:  "job",
		EntityID:    &jobID,
		Meta:        map[string]any{"freelancer_id": freelancerID.String()},
	})
	return nil
}
