package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jobive/backend/internal/models"
	"github.com/jobive/backend/internal/repositories"
	"go.uber.org/zap"
)

type trainingStore interface {
	Create(ctx context.Context, t *models.Training) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Training, error)
	List(ctx context.Context, f repositories.ListFilter) ([]models.Training, error)
	ListByInstructor(ctx context.Context, instructorID uuid.UUID, limit, offset int) ([]models.Training, error)
	Update(ctx context.Context, t *models.Training) error
	Delete(ctx context.Context, id uuid.UUID) error
	CompleteChapter(ctx context.Context, trainingID, userID uuid.UUID, chapterID string) (bool, error)
	ListCompletedChapters(ctx context.Context, trainingID, userID uuid.UUID) ([]string, error)
	IsEnrolled(ctx context.Context, trainingID, userID uuid.UUID) (bool, error)
	Enroll(ctx context.Context, trainingID, userID uuid.UUID) (bool, error)
	Rate(ctx context.Context, rating *models.TrainingRating) error
	ListEnrolled(ctx context.Context, userID uuid.UUID) ([]models.Training, error)
}

// paymentInitiator is the slice of PaymentService that training purchases
// need.
type paymentInitiator interface {
	Initiate(ctx context.Context, userID uuid.UUID, in InitiatePaymentInput) (*models.Payment, error)
}

type TrainingService struct {
	trainings trainingStore
	payments  paymentInitiator
	audit     auditStore
	log       *zap.Logger
}

func NewTrainingService(trainings trainingStore, payments paymentInitiator, audit auditStore, log *zap.Logger) *TrainingService {
	return &TrainingService{trainings: trainings, payments: payments, audit: audit, log: log}
}

func (s *TrainingService) Create(ctx context.Context, instructorID uuid.UUID, t *models.Training) error {
	if t.Title == "" || t.Description == "" || t.Category == "" {
		return fmt.Errorf("%w: title, description and category are required", ErrValidation)
	}
	if t.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if t.Level == "" {
		t.Level = models.TrainingLevelBeginner
	}
	if t.Status == "" {
		t.Status = models.TrainingStatusDraft
	}
	t.InstructorID = instructorID
	return s.trainings.Create(ctx, t)
}

func (s *TrainingService) Get(ctx context.Context, id uuid.UUID) (*models.Training, error) {
	t, err := s.trainings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: training", ErrNotFound)
	}
	return t, nil
}

func (s *TrainingService) List(ctx context.Context, f repositories.ListFilter) ([]models.Training, error) {
	return s.trainings.List(ctx, f)
}

func (s *TrainingService) ListByInstructor(ctx context.Context, instructorID uuid.UUID, limit, offset int) ([]models.Training, error) {
	return s.trainings.ListByInstructor(ctx, instructorID, limit, offset)
}

func (s *TrainingService) Update(ctx context.Context, trainingID, actorID uuid.UUID, updated *models.Training) (*models.Training, error) {
	t, err := s.trainings.GetByID(ctx, trainingID)
	if err != nil {
		return nil, fmt.Errorf("%w: training", ErrNotFound)
	}
	if t.InstructorID != actorID {
		return nil, fmt.Errorf("%w: only the instructor can update a training", ErrUnauthorized)
	}
	t.Title = updated.Title
	t.Description = updated.Description
	t.Category = updated.Category
	t.Price = updated.Price
	t.Duration = updated.Duration
	t.Level = updated.Level
	t.Chapters = updated.Chapters
	if updated.Status != "" {
		t.Status = updated.Status
	}
	if err := s.trainings.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TrainingService) Delete(ctx context.Context, trainingID, actorID uuid.UUID, role string) error {
	t, err := s.trainings.GetByID(ctx, trainingID)
	if err != nil {
		return fmt.Errorf("%w: training", ErrNotFound)
	}
	if t.InstructorID != actorID && role != models.RoleAdmin {
		return fmt.Errorf("%w: only the instructor can delete a training", ErrUnauthorized)
	}
	return s.trainings.Delete(ctx, trainingID)
}

// Purchase starts a paid enrollment. The enrollment itself only happens once
// the collect payment settles; a free training enrolls immediately.
func (s *TrainingService) Purchase(ctx context.Context, trainingID, userID uuid.UUID, phone, medium, name, email string) (*models.Payment, error) {
	t, err := s.trainings.GetByID(ctx, trainingID)
	if err != nil {
		return nil, fmt.Errorf("%w: training", ErrNotFound)
	}
	if t.Status != models.TrainingStatusPublished {
		return nil, fmt.Errorf("%w: training is not published", ErrInvalidState)
	}
	enrolled, err := s.trainings.IsEnrolled(ctx, trainingID, userID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, ErrAlreadyEnrolled
	}

	if t.Price == 0 {
		if _, err := s.trainings.Enroll(ctx, trainingID, userID); err != nil {
			return nil, err
		}
		_ = s.audit.Insert(ctx, &models.AuditLog{
			ActorUserID: &userID,
			ActorType:   "user",
			Action:      "training_enrolled_free",
			EntityType:  "training",
			EntityID:    &trainingID,
		})
		return nil, nil
	}

	// One purchase attempt per user per training shares the external id, so
	// the gateway side stays idempotent across retries.
	return s.payments.Initiate(ctx, userID, InitiatePaymentInput{
		Amount:     t.Price,
		Phone:      phone,
		Medium:     medium,
		Name:       name,
		Email:      email,
		ExternalID: fmt.Sprintf("training:%s:user:%s", trainingID, userID),
		Message:    "training purchase: " + t.Title,
		Purpose:    models.PaymentPurposeTrainingPurchase,
		TrainingID: &trainingID,
	})
}

// CompleteChapter marks a chapter finished for an enrolled user and returns
// the user's completed chapter ids.
func (s *TrainingService) CompleteChapter(ctx context.Context, trainingID, userID uuid.UUID, chapterID string) ([]string, error) {
	t, err := s.trainings.GetByID(ctx, trainingID)
	if err != nil {
		return nil, fmt.Errorf("%w: training", ErrNotFound)
	}
	enrolled, err := s.trainings.IsEnrolled(ctx, trainingID, userID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, fmt.Errorf("%w: not enrolled in this training", ErrInvalidState)
	}
	if !chapterExists(t.Chapters, chapterID) {
		return nil, fmt.Errorf("%w: chapter", ErrNotFound)
	}

	recorded, err := s.trainings.CompleteChapter(ctx, trainingID, userID, chapterID)
	if err != nil {
		return nil, err
	}
	if !recorded {
		return nil, fmt.Errorf("%w: chapter already completed", ErrInvalidState)
	}
	return s.trainings.ListCompletedChapters(ctx, trainingID, userID)
}

// chapterExists looks a chapter id up in the stored chapters document.
func chapterExists(chapters any, chapterID string) bool {
	list, ok := chapters.([]any)
	if !ok {
		return false
	}
	for _, raw := range list {
		ch, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if id, _ := ch["id"].(string); id == chapterID {
			return true
		}
	}
	return false
}

func (s *TrainingService) Rate(ctx context.Context, trainingID, userID uuid.UUID, rating int, review *string) (*models.TrainingRating, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	enrolled, err := s.trainings.IsEnrolled(ctx, trainingID, userID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, fmt.Errorf("%w: only enrolled users can rate a training", ErrUnauthorized)
	}

	r := &models.TrainingRating{
		TrainingID: trainingID,
		UserID:     userID,
		Rating:     rating,
		Review:     review,
	}
	if err := s.trainings.Rate(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *TrainingService) ListEnrolled(ctx context.Context, userID uuid.UUID) ([]models.Training, error) {
	return s.trainings.ListEnrolled(ctx, userID)
}
