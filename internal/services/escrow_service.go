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

type escrowStore interface {
	Create(ctx context.Context, e *models.Escrow) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Escrow, error)
	Confirm(ctx context.Context, id uuid.UUID, party string) (employerConfirmed, freelancerConfirmed, confirmed bool, err error)
	MarkCompleted(ctx context.Context, id uuid.UUID) (bool, error)
	MarkDisputed(ctx context.Context, id uuid.UUID) (bool, error)
}

type escrowJobStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type escrowUserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	AddEarnings(ctx context.Context, id uuid.UUID, amount int64) error
}

type auditStore interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
}

type mailSender interface {
	Send(ctx context.Context, to, subject, text string) error
}

// EscrowService holds job payments until both sides confirm completion, then
// pays the freelancer out through the mobile-money gateway.
type EscrowService struct {
	escrows   escrowStore
	jobs      escrowJobStore
	users     escrowUserStore
	audit     auditStore
	gw        gateway.Client
	mail      mailSender
	publisher events.Publisher
	log       *zap.Logger
}

func NewEscrowService(
	escrows escrowStore,
	jobs escrowJobStore,
	users escrowUserStore,
	audit auditStore,
	gw gateway.Client,
	mail mailSender,
	publisher events.Publisher,
	log *zap.Logger,
) *EscrowService {
	return &EscrowService{
		escrows:   escrows,
		jobs:      jobs,
		users:     users,
		audit:     audit,
		gw:        gw,
		mail:      mail,
		publisher: publisher,
		log:       log,
	}
}

// Deposit collects the job budget from the employer and opens a pending
// escrow. The gateway transaction keys on the job id, so retrying a failed
// deposit reuses the same external reference.
func (s *EscrowService) Deposit(ctx context.Context, jobID, employerID uuid.UUID) (*models.Escrow, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("%w: job", ErrNotFound)
	}
	if job.EmployerID != employerID {
		return nil, fmt.Errorf("%w: only the job's employer can fund escrow", ErrUnauthorized)
	}
	if job.FreelancerID == nil {
		return nil, fmt.Errorf("%w: job has no assigned freelancer", ErrInvalidState)
	}
	if job.Status != models.JobStatusInProgress {
		return nil, fmt.Errorf("%w: job is %s, expected %s", ErrInvalidState, job.Status, models.JobStatusInProgress)
	}

	employer, err := s.users.GetByID(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("%w: employer", ErrNotFound)
	}

	res, err := s.gw.InitiatePay(ctx, gateway.InitiateRequest{
		Amount:     job.Budget,
		Email:      employer.Email,
		UserID:     employerID.String(),
		ExternalID: jobID.String(),
		Message:    "escrow deposit for " + job.Title,
	})
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, res.Err()
	}

	escrow := &models.Escrow{
		JobID:        jobID,
		EmployerID:   employerID,
		FreelancerID: *job.FreelancerID,
		Amount:       job.Budget,
		Status:       models.EscrowStatusPending,
		TransID:      res.TransID,
	}
	if err := s.escrows.Create(ctx, escrow); err != nil {
		return nil, err
	}

	_ = s.audit.Insert(ctx, &models.AuditLog{
		ActorUserID: &employerID,
		ActorType:   "user",
		Action:      "escrow_created",
		EntityType:  "escrow",
		EntityID:    &escrow.ID,
		Meta:        map[string]any{"job_id": jobID.String(), "amount": job.Budget, "trans_id": res.TransID},
	})
	_ = s.publisher.Publish(ctx, events.StreamNotifications, events.Event{
		Type: events.EventEscrowCreated,
		Payload: map[string]any{
			"escrow_id":     escrow.ID.String(),
			"job_id":        jobID.String(),
			"freelancer_id": escrow.FreelancerID.String(),
			"amount":        job.Budget,
		},
	})

	escrow.PaymentLink = res.Link
	return escrow, nil
}

// ConfirmCompletion records the caller's confirmation. The party flags are
// set by a single conditional UPDATE, so two concurrent confirmations cannot
// both observe a partial state; whichever request sees both flags set runs
// the release.
func (s *EscrowService) ConfirmCompletion(ctx context.Context, escrowID, actorID uuid.UUID) (*models.Escrow, error) {
	escrow, err := s.escrows.GetByID(ctx, escrowID)
	if err != nil {
		return nil, fmt.Errorf("%w: escrow", ErrNotFound)
	}
	party := escrow.Party(actorID)
	if party == "" {
		return nil, fmt.Errorf("%w: only the employer or freelancer can confirm", ErrUnauthorized)
	}
	if escrow.Status != models.EscrowStatusPending {
		return nil, fmt.Errorf("%w: escrow is %s", ErrInvalidState, escrow.Status)
	}

	empOK, freeOK, confirmed, err := s.escrows.Confirm(ctx, escrowID, party)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		// Raced with a dispute or release between the read and the update.
		return nil, fmt.Errorf("%w: escrow is no longer pending", ErrInvalidState)
	}
	escrow.EmployerConfirmed = empOK
	escrow.FreelancerConfirmed = freeOK

	_ = s.audit.Insert(ctx, &models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "user",
		Action:      "escrow_confirmed_" + party,
		EntityType:  "escrow",
		EntityID:    &escrowID,
	})

	if empOK && freeOK {
		if err := s.release(ctx, escrow); err != nil {
			// Both confirmations are durable; the retry loop picks this up,
			// but the caller must see the payout failure.
			s.log.Error("escrow release failed, will retry",
				zap.String("escrow_id", escrowID.String()),
				zap.Error(err),
			)
			return nil, fmt.Errorf("payout failed: %w", err)
		}
	}
	return escrow, nil
}

// release pays the freelancer and closes the escrow. The payout keys on the
// job id, so a retry after a crash cannot double-pay. Status only moves to
// completed after the gateway accepts the payout.
func (s *EscrowService) release(ctx context.Context, escrow *models.Escrow) error {
	freelancer, err := s.users.GetByID(ctx, escrow.FreelancerID)
	if err != nil {
		return fmt.Errorf("load freelancer: %w", err)
	}
	if freelancer.Phone == nil || *freelancer.Phone == "" {
		return fmt.Errorf("freelancer has no payout phone number")
	}

	res, err := s.gw.Payout(ctx, gateway.PayoutRequest{
		Amount:     escrow.Amount,
		Phone:      *freelancer.Phone,
		Medium:     "mobile money",
		Name:       freelancer.Name,
		Email:      freelancer.Email,
		UserID:     escrow.FreelancerID.String(),
		ExternalID: escrow.JobID.String(),
		Message:    "job payout",
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return res.Err()
	}

	moved, err := s.escrows.MarkCompleted(ctx, escrow.ID)
	if err != nil {
		return err
	}
	if !moved {
		// Another request already released it.
		return nil
	}
	escrow.Status = models.EscrowStatusCompleted

	if err := s.users.AddEarnings(ctx, escrow.FreelancerID, escrow.Amount); err != nil {
		s.log.Error("failed to credit freelancer earnings",
			zap.String("escrow_id", escrow.ID.String()),
			zap.Error(err),
		)
	}
	if err := s.jobs.UpdateStatus(ctx, escrow.JobID, models.JobStatusCompleted); err != nil {
		s.log.Error("failed to mark job completed",
			zap.String("job_id", escrow.JobID.String()),
			zap.Error(err),
		)
	}

	_ = s.audit.Insert(ctx, &models.AuditLog{
		ActorType:  "system",
		Action:     "escrow_released",
		EntityType: "escrow",
		EntityID:   &escrow.ID,
		Meta:       map[string]any{"amount": escrow.Amount, "payout_trans_id": res.TransID},
	})
	_ = s.publisher.Publish(ctx, events.StreamNotifications, events.Event{
		Type: events.EventEscrowReleased,
		Payload: map[string]any{
			"escrow_id":     escrow.ID.String(),
			"job_id":        escrow.JobID.String(),
			"freelancer_id": escrow.FreelancerID.String(),
			"amount":        escrow.Amount,
		},
	})
	_ = s.mail.Send(ctx, freelancer.Email, "Payment released",
		fmt.Sprintf("Your payment of %d XAF has been released.", escrow.Amount))

	return nil
}

// Dispute freezes a pending escrow until an admin resolves it.
func (s *EscrowService) Dispute(ctx context.Context, escrowID, actorID uuid.UUID, reason string) (*models.Escrow, error) {
	escrow, err := s.escrows.GetByID(ctx, escrowID)
	if err != nil {
		return nil, fmt.Errorf("%w: escrow", ErrNotFound)
	}
	if escrow.Party(actorID) == "" {
		return nil, fmt.Errorf("%w: only the employer or freelancer can open a dispute", ErrUnauthorized)
	}

	moved, err := s.escrows.MarkDisputed(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, fmt.Errorf("%w: escrow is %s", ErrInvalidState, escrow.Status)
	}
	escrow.Status = models.EscrowStatusDisputed

	_ = s.audit.Insert(ctx, &models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "user",
		Action:      "escrow_disputed",
		EntityType:  "escrow",
		EntityID:    &escrowID,
		Meta:        map[string]any{"reason": reason},
	})
	_ = s.publisher.Publish(ctx, events.StreamNotifications, events.Event{
		Type: events.EventEscrowDisputed,
		Payload: map[string]any{
			"escrow_id": escrowID.String(),
			"job_id":    escrow.JobID.String(),
			"reason":    reason,
		},
	})
	return escrow, nil
}

func (s *EscrowService) Get(ctx context.Context, escrowID, actorID uuid.UUID, role string) (*models.Escrow, error) {
	escrow, err := s.escrows.GetByID(ctx, escrowID)
	if err != nil {
		return nil, fmt.Errorf("%w: escrow", ErrNotFound)
	}
	if escrow.Party(actorID) == "" && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: not a party to this escrow", ErrUnauthorized)
	}
	return escrow, nil
}

// Release retries the payout for an escrow that already has both
// confirmations. The worker calls this for stuck rows.
func (s *EscrowService) Release(ctx context.Context, escrow *models.Escrow) error {
	if escrow.Status != models.EscrowStatusPending || !escrow.EmployerConfirmed || !escrow.FreelancerConfirmed {
		return fmt.Errorf("%w: escrow not ready for release", ErrInvalidState)
	}
	return s.release(ctx, escrow)
}
