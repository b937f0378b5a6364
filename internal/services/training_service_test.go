package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jobive/backend/internal/models"
	"github.com/jobive/backend/internal/repositories"
	"go.uber.org/zap"
)

type fakeTrainingStore struct {
	trainings   map[uuid.UUID]*models.Training
	enrollment  fakeEnrollments
	ratings     map[string]*models.TrainingRating
	completions map[string][]string
}

func newFakeTrainingStore() *fakeTrainingStore {
	return &fakeTrainingStore{
		trainings:   make(map[uuid.UUID]*models.Training),
		ratings:     make(map[string]*models.TrainingRating),
		completions: make(map[string][]string),
	}
}

func (f *fakeTrainingStore) Create(_ context.Context, t *models.Training) error {
	t.ID = uuid.New()
	cp := *t
	f.trainings[t.ID] = &cp
	return nil
}

func (f *fakeTrainingStore) GetByID(_ context.Context, id uuid.UUID) (*models.Training, error) {
	t, ok := f.trainings[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTrainingStore) List(_ context.Context, _ repositories.ListFilter) ([]models.Training, error) {
	var out []models.Training
	for _, t := range f.trainings {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTrainingStore) Update(_ context.Context, t *models.Training) error {
	if _, ok := f.trainings[t.ID]; !ok {
		return errors.New("no rows")
	}
	cp := *t
	f.trainings[t.ID] = &cp
	return nil
}

func (f *fakeTrainingStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.trainings, id)
	return nil
}

func (f *fakeTrainingStore) IsEnrolled(_ context.Context, trainingID, userID uuid.UUID) (bool, error) {
	return f.enrollment.enrolled[trainingID.String()+":"+userID.String()], nil
}

func (f *fakeTrainingStore) Enroll(ctx context.Context, trainingID, userID uuid.UUID) (bool, error) {
	return f.enrollment.Enroll(ctx, trainingID, userID)
}

func (f *fakeTrainingStore) Rate(_ context.Context, rating *models.TrainingRating) error {
	rating.ID = uuid.New()
	f.ratings[rating.TrainingID.String()+":"+rating.UserID.String()] = rating
	return nil
}

func (f *fakeTrainingStore) ListEnrolled(_ context.Context, _ uuid.UUID) ([]models.Training, error) {
	return nil, nil
}

func (f *fakeTrainingStore) ListByInstructor(_ context.Context, instructorID uuid.UUID, _, _ int) ([]models.Training, error) {
	var out []models.Training
	for _, t := range f.trainings {
		if t.InstructorID == instructorID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTrainingStore) CompleteChapter(_ context.Context, trainingID, userID uuid.UUID, chapterID string) (bool, error) {
	key := trainingID.String() + ":" + userID.String()
	for _, done := range f.completions[key] {
		if done == chapterID {
			return false, nil
		}
	}
	f.completions[key] = append(f.completions[key], chapterID)
	return true, nil
}

func (f *fakeTrainingStore) ListCompletedChapters(_ context.Context, trainingID, userID uuid.UUID) ([]string, error) {
	return f.completions[trainingID.String()+":"+userID.String()], nil
}

type initiateRecorder struct {
	inputs []InitiatePaymentInput
	fail   error
}

func (r *initiateRecorder) Initiate(_ context.Context, userID uuid.UUID, in InitiatePaymentInput) (*models.Payment, error) {
	r.inputs = append(r.inputs, in)
	if r.fail != nil {
		return nil, r.fail
	}
	return &models.Payment{
		ID:         uuid.New(),
		Amount:     in.Amount,
		UserID:     userID,
		ExternalID: in.ExternalID,
		TransID:    "tx-" + in.ExternalID,
		Status:     "PENDING",
		Purpose:    in.Purpose,
		TrainingID: in.TrainingID,
	}, nil
}

func newTrainingFixture(t *testing.T, price int64) (*TrainingService, *fakeTrainingStore, *initiateRecorder, uuid.UUID) {
	t.Helper()
	store := newFakeTrainingStore()
	payments := &initiateRecorder{}
	svc := NewTrainingService(store, payments, &fakeAudit{}, zap.NewNop())

	trainingID := uuid.New()
	store.trainings[trainingID] = &models.Training{
		ID:           trainingID,
		Title:        "Go for backend",
		Description:  "desc",
		Category:     "web development",
		Price:        price,
		Level:        models.TrainingLevelBeginner,
		InstructorID: uuid.New(),
		Status:       models.TrainingStatusPublished,
	}
	return svc, store, payments, trainingID
}

func TestPurchasePaidTraining(t *testing.T) {
	svc, store, payments, trainingID := newTrainingFixture(t, 2500)
	userID := uuid.New()

	payment, err := svc.Purchase(context.Background(), trainingID, userID, "670000000", "mobile money", "Payer", "payer@example.cm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment == nil {
		t.Fatal("paid training must return a payment")
	}
	if payment.Amount != 2500 {
		t.Errorf("amount = %d, want 2500", payment.Amount)
	}

	// Enrollment waits for settlement.
	enrolled, _ := store.IsEnrolled(context.Background(), trainingID, userID)
	if enrolled {
		t.Error("must not enroll before the payment settles")
	}

	wantExternal := fmt.Sprintf("training:%s:user:%s", trainingID, userID)
	if payments.inputs[0].ExternalID != wantExternal {
		t.Errorf("external id = %q, want %q", payments.inputs[0].ExternalID, wantExternal)
	}
	if payments.inputs[0].Purpose != models.PaymentPurposeTrainingPurchase {
		t.Errorf("purpose = %q, want training_purchase", payments.inputs[0].Purpose)
	}
}

func TestPurchaseFreeTrainingEnrollsImmediately(t *testing.T) {
	svc, store, payments, trainingID := newTrainingFixture(t, 0)
	userID := uuid.New()

	payment, err := svc.Purchase(context.Background(), trainingID, userID, "", "", "", "payer@example.cm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment != nil {
		t.Error("free training must not create a payment")
	}
	if len(payments.inputs) != 0 {
		t.Error("free training must not touch the gateway")
	}
	enrolled, _ := store.IsEnrolled(context.Background(), trainingID, userID)
	if !enrolled {
		t.Error("free training must enroll immediately")
	}
}

func TestPurchaseAlreadyEnrolled(t *testing.T) {
	svc, store, _, trainingID := newTrainingFixture(t, 2500)
	userID := uuid.New()
	store.Enroll(context.Background(), trainingID, userID)

	_, err := svc.Purchase(context.Background(), trainingID, userID, "670000000", "", "", "payer@example.cm")
	if !errors.Is(err, ErrAlreadyEnrolled) {
		t.Errorf("err = %v, want ErrAlreadyEnrolled", err)
	}
}

func TestPurchaseUnpublishedTraining(t *testing.T) {
	svc, store, _, trainingID := newTrainingFixture(t, 2500)
	store.trainings[trainingID].Status = models.TrainingStatusDraft

	_, err := svc.Purchase(context.Background(), trainingID, uuid.New(), "670000000", "", "", "payer@example.cm")
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
}

func TestRateRequiresEnrollment(t *testing.T) {
	svc, store, _, trainingID := newTrainingFixture(t, 0)
	userID := uuid.New()

	if _, err := svc.Rate(context.Background(), trainingID, userID, 4, nil); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}

	store.Enroll(context.Background(), trainingID, userID)
	rating, err := svc.Rate(context.Background(), trainingID, userID, 4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rating.Rating != 4 {
		t.Errorf("rating = %d, want 4", rating.Rating)
	}
}

func TestRateRange(t *testing.T) {
	svc, _, _, trainingID := newTrainingFixture(t, 0)

	for _, bad := range []int{0, 6, -1} {
		if _, err := svc.Rate(context.Background(), trainingID, uuid.New(), bad, nil); !errors.Is(err, ErrValidation) {
			t.Errorf("Rate(%d) err = %v, want ErrValidation", bad, err)
		}
	}
}

func TestCompleteChapter(t *testing.T) {
	svc, store, _, trainingID := newTrainingFixture(t, 0)
	userID := uuid.New()
	store.trainings[trainingID].Chapters = []any{
		map[string]any{"id": "ch-1", "title": "Intro"},
		map[string]any{"id": "ch-2", "title": "Basics"},
	}

	if _, err := svc.CompleteChapter(context.Background(), trainingID, userID, "ch-1"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("unenrolled err = %v, want ErrInvalidState", err)
	}

	store.Enroll(context.Background(), trainingID, userID)

	if _, err := svc.CompleteChapter(context.Background(), trainingID, userID, "ch-9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown chapter err = %v, want ErrNotFound", err)
	}

	completed, err := svc.CompleteChapter(context.Background(), trainingID, userID, "ch-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(completed) != 1 || completed[0] != "ch-1" {
		t.Errorf("completed = %v, want [ch-1]", completed)
	}

	if _, err := svc.CompleteChapter(context.Background(), trainingID, userID, "ch-1"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("repeat err = %v, want ErrInvalidState", err)
	}

	completed, err = svc.CompleteChapter(context.Background(), trainingID, userID, "ch-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(completed) != 2 {
		t.Errorf("completed = %v, want both chapters", completed)
	}
}

func TestListByInstructor(t *testing.T) {
	svc, store, _, trainingID := newTrainingFixture(t, 0)
	instructorID := store.trainings[trainingID].InstructorID

	trainings, err := svc.ListByInstructor(context.Background(), instructorID, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trainings) != 1 || trainings[0].ID != trainingID {
		t.Errorf("trainings = %v, want the instructor's training", trainings)
	}

	if got, _ := svc.ListByInstructor(context.Background(), uuid.New(), 20, 0); len(got) != 0 {
		t.Errorf("unknown instructor returned %d trainings, want 0", len(got))
	}
}

func TestUpdateByNonInstructor(t *testing.T) {
	svc, _, _, trainingID := newTrainingFixture(t, 0)

	_, err := svc.Update(context.Background(), trainingID, uuid.New(), &models.Training{Title: "x", Description: "y", Category: "z"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}
