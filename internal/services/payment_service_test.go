package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jobive/backend/internal/gateway"
	"github.com/jobive/backend/internal/models"
	"go.uber.org/zap"
)

type fakePaymentStore struct {
	payments map[string]*models.Payment
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[string]*models.Payment)}
}

func (f *fakePaymentStore) Create(_ context.Context, p *models.Payment) error {
	if _, ok := f.payments[p.TransID]; ok {
		return errors.New("duplicate trans id")
	}
	p.ID = uuid.New()
	cp := *p
	f.payments[p.TransID] = &cp
	return nil
}

func (f *fakePaymentStore) GetByTransID(_ context.Context, transID string) (*models.Payment, error) {
	p, ok := f.payments[transID]
	if !ok {
		return nil, errors.New("no rows")
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentStore) UpdateStatusByTransID(_ context.Context, transID, status string) (bool, error) {
	p, ok := f.payments[transID]
	if !ok || p.Status == status {
		return false, nil
	}
	p.Status = status
	return true, nil
}

func (f *fakePaymentStore) ListNonTerminal(_ context.Context, _ int) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if !gateway.IsTerminalStatus(p.Status) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.UserID == userID && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeEnrollments struct {
	enrolled map[string]bool
	calls    int
}

func (f *fakeEnrollments) Enroll(_ context.Context, trainingID, userID uuid.UUID) (bool, error) {
	if f.enrolled == nil {
		f.enrolled = make(map[string]bool)
	}
	f.calls++
	key := trainingID.String() + ":" + userID.String()
	if f.enrolled[key] {
		return false, nil
	}
	f.enrolled[key] = true
	return true, nil
}

type paymentFixture struct {
	svc         *PaymentService
	store       *fakePaymentStore
	enrollments *fakeEnrollments
	gw          *fakeGateway
	userID      uuid.UUID
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	store := newFakePaymentStore()
	enrollments := &fakeEnrollments{}
	gw := &fakeGateway{}
	svc := NewPaymentService(store, enrollments, &fakeAudit{}, gw, publisherStub{}, zap.NewNop())
	return &paymentFixture{svc: svc, store: store, enrollments: enrollments, gw: gw, userID: uuid.New()}
}

func TestInitiatePayment(t *testing.T) {
	fx := newPaymentFixture(t)

	p, err := fx.svc.Initiate(context.Background(), fx.userID, InitiatePaymentInput{
		Amount:     1000,
		Phone:      "670000000",
		Email:      "payer@example.cm",
		ExternalID: "order-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != gateway.StatusPending {
		t.Errorf("status = %q, want PENDING", p.Status)
	}
	if p.Purpose != models.PaymentPurposeStandalone {
		t.Errorf("purpose = %q, want standalone", p.Purpose)
	}
	if p.TransID == "" {
		t.Error("trans id not recorded")
	}
}

func TestInitiateSettledImmediately(t *testing.T) {
	fx := newPaymentFixture(t)
	trainingID := uuid.New()
	fx.gw.directFn = func(gateway.DirectPayRequest) (*gateway.Result, error) {
		return &gateway.Result{StatusCode: http.StatusOK, TransID: "dp-instant", Status: gateway.StatusSuccessful}, nil
	}

	p, err := fx.svc.Initiate(context.Background(), fx.userID, InitiatePaymentInput{
		Amount:     2000,
		Phone:      "670000000",
		Email:      "payer@example.cm",
		Purpose:    models.PaymentPurposeTrainingPurchase,
		TrainingID: &trainingID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Status != gateway.StatusSuccessful {
		t.Errorf("status = %q, want SUCCESSFUL", p.Status)
	}
	if stored := fx.store.payments[p.TransID]; stored.Status != gateway.StatusSuccessful {
		t.Errorf("stored status = %q, initiation status not persisted", stored.Status)
	}
	if fx.enrollments.calls != 1 {
		t.Errorf("enroll calls = %d, want 1 for an instantly settled purchase", fx.enrollments.calls)
	}

	// A later status check is a no-op; the record is already terminal.
	if _, err := fx.svc.CheckStatus(context.Background(), p.TransID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.enrollments.calls != 1 {
		t.Errorf("enroll calls = %d after recheck, want 1", fx.enrollments.calls)
	}
}

func TestInitiatePaymentRequiresEmail(t *testing.T) {
	fx := newPaymentFixture(t)

	_, err := fx.svc.Initiate(context.Background(), fx.userID, InitiatePaymentInput{Amount: 1000, Phone: "670000000"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestInitiatePaymentGatewayRejection(t *testing.T) {
	fx := newPaymentFixture(t)
	fx.gw.directFn = func(gateway.DirectPayRequest) (*gateway.Result, error) {
		return &gateway.Result{StatusCode: http.StatusBadRequest, Message: "invalid phone number"}, nil
	}

	_, err := fx.svc.Initiate(context.Background(), fx.userID, InitiatePaymentInput{
		Amount: 1000, Phone: "bad", Email: "payer@example.cm",
	})
	var gwErr *gateway.Error
	if !errors.As(err, &gwErr) {
		t.Fatalf("err = %v, want *gateway.Error", err)
	}
	if gwErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", gwErr.StatusCode)
	}
	if len(fx.store.payments) != 0 {
		t.Error("rejected payment must not be stored")
	}
}

func TestCheckStatusWritesBack(t *testing.T) {
	fx := newPaymentFixture(t)
	p, _ := fx.svc.Initiate(context.Background(), fx.userID, InitiatePaymentInput{
		Amount: 1000, Phone: "670000000", Email: "payer@example.cm",
	})

	fx.gw.statusFn = func(transID string) (*gateway.Result, error) {
		return &gateway.Result{StatusCode: http.StatusOK, TransID: transID, Status: gateway.StatusSuccessful}, nil
	}

	got, err := fx.svc.CheckStatus(context.Background(), p.TransID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != gateway.StatusSuccessful {
		t.Errorf("status = %q, want SUCCESSFUL", got.Status)
	}
	if stored := fx.store.payments[p.TransID]; stored.Status != gateway.StatusSuccessful {
		t.Errorf("stored status = %q, write-back missing", stored.Status)
	}
}

func TestCheckStatusTerminalSkipsGateway(t *testing.T) {
	fx := newPaymentFixture(t)
	p, _ := fx.svc.Initiate(context.Background(), fx.userID, InitiatePaymentInput{
		Amount: 1000, Phone: "670000000", Email: "payer@example.cm",
	})
	fx.store.payments[p.TransID].Status = gateway.StatusFailed

	got, err := fx.svc.CheckStatus(context.Background(), p.TransID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != gateway.StatusFailed {
		t.Errorf("status = %q, want FAILED", got.Status)
	}
	if fx.gw.statusCalls != 0 {
		t.Error("terminal payments must not hit the gateway")
	}
}

func TestCheckStatusUnknownTransID(t *testing.T) {
	fx := newPaymentFixture(t)
	_, err := fx.svc.CheckStatus(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSettledPurchaseEnrolls(t *testing.T) {
	fx := newPaymentFixture(t)
	trainingID := uuid.New()

	p, _ := fx.svc.Initiate(context.Background(), fx.userID, InitiatePaymentInput{
		Amount:     2000,
		Phone:      "670000000",
		Email:      "payer@example.cm",
		Purpose:    models.PaymentPurposeTrainingPurchase,
		TrainingID: &trainingID,
	})

	fx.gw.statusFn = func(transID string) (*gateway.Result, error) {
		return &gateway.Result{StatusCode: http.StatusOK, TransID: transID, Status: gateway.StatusSuccessful}, nil
	}

	if _, err := fx.svc.CheckStatus(context.Background(), p.TransID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.enrollments.calls != 1 {
		t.Fatalf("enroll calls = %d, want 1", fx.enrollments.calls)
	}

	// A second status check must not enroll again; the status is terminal.
	if _, err := fx.svc.CheckStatus(context.Background(), p.TransID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.enrollments.calls != 1 {
		t.Errorf("enroll calls = %d after recheck, want 1", fx.enrollments.calls)
	}
}

func TestPollPending(t *testing.T) {
	fx := newPaymentFixture(t)
	p1, _ := fx.svc.Initiate(context.Background(), fx.userID, InitiatePaymentInput{
		Amount: 1000, Phone: "670000000", Email: "a@example.cm", ExternalID: "a",
	})
	p2, _ := fx.svc.Initiate(context.Background(), fx.userID, InitiatePaymentInput{
		Amount: 1500, Phone: "670000001", Email: "b@example.cm", ExternalID: "b",
	})

	fx.gw.statusFn = func(transID string) (*gateway.Result, error) {
		if transID == p1.TransID {
			return &gateway.Result{StatusCode: http.StatusOK, Status: gateway.StatusSuccessful}, nil
		}
		return &gateway.Result{StatusCode: http.StatusOK, Status: gateway.StatusExpired}, nil
	}

	if err := fx.svc.PollPending(context.Background(), 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.store.payments[p1.TransID].Status != gateway.StatusSuccessful {
		t.Error("p1 not reconciled to SUCCESSFUL")
	}
	if fx.store.payments[p2.TransID].Status != gateway.StatusExpired {
		t.Error("p2 not reconciled to EXPIRED")
	}
}
