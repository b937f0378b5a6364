package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobive/backend/internal/models"
)

type PaymentRepo struct {
	pool *pgxpool.Pool
}

func NewPaymentRepo(pool *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

const paymentColumns = `id, amount, email, user_id, external_id, trans_id, status, payment_link, purpose, training_id, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.Amount, &p.Email, &p.UserID, &p.ExternalID, &p.TransID,
		&p.Status, &p.PaymentLink, &p.Purpose, &p.TrainingID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO payments (amount, email, user_id, external_id, trans_id, status, payment_link, purpose, training_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, p.Amount, p.Email, p.UserID, p.ExternalID, p.TransID, p.Status, p.PaymentLink, p.Purpose, p.TrainingID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PaymentRepo) GetByTransID(ctx context.Context, transID string) (*models.Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE trans_id = $1`, transID))
}

// UpdateStatusByTransID writes the gateway's latest status back; reports
// whether anything changed so callers can skip redundant event publishes.
func (r *PaymentRepo) UpdateStatusByTransID(ctx context.Context, transID, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE payments SET status = $1, updated_at = now()
		WHERE trans_id = $2 AND status <> $1
	`, status, transID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListNonTerminal returns payments the reconciliation worker still needs to
// poll, oldest first.
func (r *PaymentRepo) ListNonTerminal(ctx context.Context, limit int) ([]models.Payment, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE status NOT IN ('SUCCESSFUL', 'FAILED', 'EXPIRED')
		ORDER BY updated_at
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.Email, &p.UserID, &p.ExternalID, &p.TransID,
			&p.Status, &p.PaymentLink, &p.Purpose, &p.TrainingID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *PaymentRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.Email, &p.UserID, &p.ExternalID, &p.TransID,
			&p.Status, &p.PaymentLink, &p.Purpose, &p.TrainingID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
