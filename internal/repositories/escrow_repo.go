package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobive/backend/internal/models"
)

type EscrowRepo struct {
	pool *pgxpool.Pool
}

func NewEscrowRepo(pool *pgxpool.Pool) *EscrowRepo {
	return &EscrowRepo{pool: pool}
}

func (r *EscrowRepo) Create(ctx context.Context, e *models.Escrow) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO escrows (job_id, employer_id, freelancer_id, amount, status, trans_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employer_confirmed, freelancer_confirmed, created_at, updated_at
	`, e.JobID, e.EmployerID, e.FreelancerID, e.Amount, e.Status, e.TransID,
	).Scan(&e.ID, &e.EmployerConfirmed, &e.FreelancerConfirmed, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EscrowRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Escrow, error) {
	var e models.Escrow
	err := r.pool.QueryRow(ctx, `
		SELECT id, job_id, employer_id, freelancer_id, amount, status,
		       employer_confirmed, freelancer_confirmed, trans_id, created_at, updated_at
		FROM escrows WHERE id = $1
	`, id).Scan(&e.ID, &e.JobID, &e.EmployerID, &e.FreelancerID, &e.Amount, &e.Status,
		&e.EmployerConfirmed, &e.FreelancerConfirmed, &e.TransID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Confirm sets the given party's confirmation flag in a single conditional
// UPDATE and reports both flags as of that statement. Re-confirming an
// already-set flag is a no-op, and a non-pending escrow is left untouched
// (confirmed == false). The compound read-and-set closes the race between
// two parties confirming concurrently.
func (r *EscrowRepo) Confirm(ctx context.Context, id uuid.UUID, party string) (employerConfirmed, freelancerConfirmed, confirmed bool, err error) {
	err = r.pool.QueryRow(ctx, `
		UPDATE escrows SET
			employer_confirmed = employer_confirmed OR ($2 = 'employer'),
			freelancer_confirmed = freelancer_confirmed OR ($2 = 'freelancer'),
			updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING employer_confirmed, freelancer_confirmed
	`, id, party).Scan(&employerConfirmed, &freelancerConfirmed)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, false, false, nil
	}
	if err != nil {
		return false, false, false, err
	}
	return employerConfirmed, freelancerConfirmed, true, nil
}

// MarkCompleted transitions to completed only from pending with both flags
// set; reports whether the row was updated.
func (r *EscrowRepo) MarkCompleted(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE escrows SET status = 'completed', updated_at = now()
		WHERE id = $1 AND status = 'pending' AND employer_confirmed AND freelancer_confirmed
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// MarkDisputed transitions to disputed only from pending; reports whether
// the row was updated.
func (r *EscrowRepo) MarkDisputed(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE escrows SET status = 'disputed', updated_at = now()
		WHERE id = $1 AND status = 'pending'
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListStuckReleases returns escrows that have both confirmations but are
// still pending, i.e. a payout failed after the second confirmation. olderThan
// keeps freshly confirmed escrows out of the retry loop.
func (r *EscrowRepo) ListStuckReleases(ctx context.Context, olderThan time.Duration, limit int) ([]models.Escrow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, job_id, employer_id, freelancer_id, amount, status,
		       employer_confirmed, freelancer_confirmed, trans_id, created_at, updated_at
		FROM escrows
		WHERE status = 'pending' AND employer_confirmed AND freelancer_confirmed
		  AND updated_at < now() - ($1 || ' seconds')::interval
		ORDER BY updated_at
		LIMIT $2
	`, fmt.Sprintf("%d", int(olderThan.Seconds())), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var escrows []models.Escrow
	for rows.Next() {
		var e models.Escrow
		if err := rows.Scan(&e.ID, &e.JobID, &e.EmployerID, &e.FreelancerID, &e.Amount, &e.Status,
			&e.EmployerConfirmed, &e.FreelancerConfirmed, &e.TransID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		escrows = append(escrows, e)
	}
	return escrows, rows.Err()
}

func (r *EscrowRepo) GetByJobID(ctx context.Context, jobID uuid.UUID) (*models.Escrow, error) {
	var e models.Escrow
	err := r.pool.QueryRow(ctx, `
		SELECT id, job_id, employer_id, freelancer_id, amount, status,
		       employer_confirmed, freelancer_confirmed, trans_id, created_at, updated_at
		FROM escrows WHERE job_id = $1
		ORDER BY created_at DESC LIMIT 1
	`, jobID).Scan(&e.ID, &e.JobID, &e.EmployerID, &e.FreelancerID, &e.Amount, &e.Status,
		&e.EmployerConfirmed, &e.FreelancerConfirmed, &e.TransID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
