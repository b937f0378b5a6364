package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobive/backend/internal/models"
)

type ReviewRepo struct {
	pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

func (r *ReviewRepo) Create(ctx context.Context, rv *models.Review) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO reviews (reviewer_id, freelancer_id, job_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, rv.ReviewerID, rv.FreelancerID, rv.JobID, rv.Rating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt)
}

func (r *ReviewRepo) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.ReviewWithReviewer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT rv.id, rv.reviewer_id, rv.freelancer_id, rv.job_id, rv.rating, rv.comment, rv.created_at,
		       u.name, u.email
		FROM reviews rv
		JOIN users u ON u.id = rv.reviewer_id
		WHERE rv.freelancer_id = $1
		ORDER BY rv.created_at DESC
	`, freelancerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.ReviewWithReviewer
	for rows.Next() {
		var rv models.ReviewWithReviewer
		if err := rows.Scan(&rv.ID, &rv.ReviewerID, &rv.FreelancerID, &rv.JobID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.ReviewerName, &rv.ReviewerEmail); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// Delete removes a review if the caller wrote it and reports whether a row
// was removed.
func (r *ReviewRepo) Delete(ctx context.Context, id, reviewerID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM reviews WHERE id = $1 AND reviewer_id = $2
	`, id, reviewerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Exists reports whether the reviewer already reviewed this job.
func (r *ReviewRepo) Exists(ctx context.Context, jobID, reviewerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM reviews WHERE job_id = $1 AND reviewer_id = $2)
	`, jobID, reviewerID).Scan(&exists)
	return exists, err
}
