package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jobive/backend/internal/events"
	"github.com/jobive/backend/internal/gateway"
	"github.com/jobive/backend/internal/models"
	"go.uber.org/zap"
)

type paymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByTransID(ctx context.Context, transID string) (*models.Payment, error)
	UpdateStatusByTransID(ctx context.Context, transID, status string) (bool, error)
	ListNonTerminal(ctx context.Context, limit int) ([]models.Payment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Payment, error)
}

type enrollmentStore interface {
	Enroll(ctx context.Context, trainingID, userID uuid.UUID) (bool, error)
}

// PaymentService tracks direct collect payments. The stored status is a
// cache of the gateway's view, refreshed on every explicit check and by the
// reconciliation worker.
type PaymentService struct {
	payments    paymentStore
	enrollments enrollmentStore
	audit       auditStore
	gw          gateway.Client
	publisher   events.Publisher
	log         *zap.Logger
}

func NewPaymentService(
	payments paymentStore,
	enrollments enrollmentStore,
	audit auditStore,
	gw gateway.Client,
	publisher events.Publisher,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:    payments,
		enrollments: enrollments,
		audit:       audit,
		gw:          gw,
		publisher:   publisher,
		log:         log,
	}
}

type InitiatePaymentInput struct {
	Amount     int64
	Phone      string
	Medium     string
	Name       string
	Email      string
	ExternalID string
	Message    string
	Purpose    string
	TrainingID *uuid.UUID
}

// Initiate pushes a collect request to the payer's phone and records the
// resulting transaction. Gateway-side validation failures come back as
// *gateway.Error with the gateway's own status code.
func (s *PaymentService) Initiate(ctx context.Context, userID uuid.UUID, in InitiatePaymentInput) (*models.Payment, error) {
	if in.Email == "" {
		return nil, fmt.Errorf("%w: email required", ErrValidation)
	}
	purpose := in.Purpose
	if purpose == "" {
		purpose = models.PaymentPurposeStandalone
	}

	res, err := s.gw.DirectPay(ctx, gateway.DirectPayRequest{
		Amount:     in.Amount,
		Phone:      in.Phone,
		Medium:     in.Medium,
		Name:       in.Name,
		Email:      in.Email,
		UserID:     userID.String(),
		ExternalID: in.ExternalID,
		Message:    in.Message,
	})
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.Err()
	}

	payment := &models.Payment{
		Amount:     in.Amount,
		Email:      in.Email,
		UserID:     userID,
		ExternalID: in.ExternalID,
		TransID:    res.TransID,
		Status:     gateway.StatusPending,
		Purpose:    purpose,
		TrainingID: in.TrainingID,
	}
	if res.Link != "" {
		payment.PaymentLink = &res.Link
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	_ = s.audit.Insert(ctx, &models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "payment_initiated",
		EntityType:  "payment",
		EntityID:    &payment.ID,
		Meta:        map[string]any{"amount": in.Amount, "trans_id": res.TransID, "purpose": purpose},
	})

	// Some collects settle inside the DirectPay call itself. Apply that
	// status now so settlement side effects do not wait for a poll.
	if res.Status != "" && res.Status != gateway.StatusPending {
		if err := s.applyStatus(ctx, payment, res.Status); err != nil {
			s.log.Error("failed to apply initiation status",
				zap.String("trans_id", payment.TransID),
				zap.Error(err),
			)
		}
	}
	return payment, nil
}

// CheckStatus polls the gateway and writes the fresh status back so later
// reads do not depend on the gateway being up.
func (s *PaymentService) CheckStatus(ctx context.Context, transID string) (*models.Payment, error) {
	payment, err := s.payments.GetByTransID(ctx, transID)
	if err != nil {
		return nil, fmt.Errorf("%w: payment", ErrNotFound)
	}
	if gateway.IsTerminalStatus(payment.Status) {
		return payment, nil
	}

	res, err := s.gw.PaymentStatus(ctx, transID)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.Err()
	}

	if res.Status != payment.Status {
		if err := s.applyStatus(ctx, payment, res.Status); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

// applyStatus persists a status change and runs its side effects once. The
// conditional UPDATE means a concurrent check and worker poll cannot both
// observe the transition.
func (s *PaymentService) applyStatus(ctx context.Context, payment *models.Payment, status string) error {
	changed, err := s.payments.UpdateStatusByTransID(ctx, payment.TransID, status)
	if err != nil {
		return err
	}
	if !changed {
		payment.Status = status
		return nil
	}
	payment.Status = status

	_ = s.publisher.Publish(ctx, events.StreamNotifications, events.Event{
		Type: events.EventPaymentStatusUpdated,
		Payload: map[string]any{
			"payment_id": payment.ID.String(),
			"trans_id":   payment.TransID,
			"user_id":    payment.UserID.String(),
			"status":     status,
		},
	})

	if status != gateway.StatusSuccessful {
		return nil
	}

	_ = s.publisher.Publish(ctx, events.StreamNotifications, events.Event{
		Type: events.EventPaymentReceived,
		Payload: map[string]any{
			"payment_id": payment.ID.String(),
			"user_id":    payment.UserID.String(),
			"amount":     payment.Amount,
		},
	})

	if payment.Purpose == models.PaymentPurposeTrainingPurchase && payment.TrainingID != nil {
		enrolled, err := s.enrollments.Enroll(ctx, *payment.TrainingID, payment.UserID)
		if err != nil {
			s.log.Error("failed to enroll after settled purchase",
				zap.String("payment_id", payment.ID.String()),
				zap.String("training_id", payment.TrainingID.String()),
				zap.Error(err),
			)
			return nil
		}
		if enrolled {
			_ = s.publisher.Publish(ctx, events.StreamNotifications, events.Event{
				Type: events.EventTrainingEnrolled,
				Payload: map[string]any{
					"training_id": payment.TrainingID.String(),
					"user_id":     payment.UserID.String(),
				},
			})
		}
	}
	return nil
}

// ListMine returns the caller's recent payments, newest first.
func (s *PaymentService) ListMine(ctx context.Context, userID uuid.UUID, limit int) ([]models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.payments.ListByUser(ctx, userID, limit)
}

// PollPending refreshes every non-terminal payment. The worker calls this on
// a ticker; a gateway outage skips the row and tries again next round.
func (s *PaymentService) PollPending(ctx context.Context, limit int) error {
	payments, err := s.payments.ListNonTerminal(ctx, limit)
	if err != nil {
		return err
	}
	for i := range payments {
		p := &payments[i]
		res, err := s.gw.PaymentStatus(ctx, p.TransID)
		if err != nil {
			return err
		}
		if !res.OK() {
			s.log.Warn("status poll failed",
				zap.String("trans_id", p.TransID),
				zap.Int("status_code", res.StatusCode),
			)
			continue
		}
		if res.Status != p.Status {
			if err := s.applyStatus(ctx, p, res.Status); err != nil {
				s.log.Error("failed to apply polled status",
					zap.String("trans_id", p.TransID),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}
