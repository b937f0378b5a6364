package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobive/backend/internal/models"
)

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

const jobColumns = `id, title, description, budget, deadline, image, status, employer_id, freelancer_id, created_at, updated_at`

func (r *JobRepo) Create(ctx context.Context, j *models.Job) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO jobs (title, description, budget, deadline, image, status, employer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, j.Title, j.Description, j.Budget, j.Deadline, j.Image, j.Status, j.EmployerID,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
}

func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var j models.Job
	err := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id,
	).Scan(&j.ID, &j.Title, &j.Description, &j.Budget, &j.Deadline, &j.Image, &j.Status,
		&j.EmployerID, &j.FreelancerID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepo) List(ctx context.Context, limit, offset int) ([]models.Job, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var j models.Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Description, &j.Budget, &j.Deadline, &j.Image, &j.Status,
			&j.EmployerID, &j.FreelancerID, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// Apply records a freelancer's application; re-applying is a no-op.
func (r *JobRepo) Apply(ctx context.Context, jobID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO job_applications (job_id, user_id) VALUES ($1, $2)
		ON CONFLICT (job_id, user_id) DO NOTHING
	`, jobID, userID)
	return err
}

func (r *JobRepo) GetApplicants(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id FROM job_applications WHERE job_id = $1 ORDER BY applied_at
	`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Assign sets the freelancer and moves an open job to in_progress; reports
// whether the row was updated.
func (r *JobRepo) Assign(ctx context.Context, jobID, freelancerID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE jobs SET freelancer_id = $1, status = 'in_progress', updated_at = now()
		WHERE id = $2 AND status = 'open'
	`, freelancerID, jobID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *JobRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE jobs SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}
