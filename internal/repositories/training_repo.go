package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobive/backend/internal/models"
)

type TrainingRepo struct {
	pool *pgxpool.Pool
}

func NewTrainingRepo(pool *pgxpool.Pool) *TrainingRepo {
	return &TrainingRepo{pool: pool}
}

const trainingColumns = `id, title, description, category, price, duration, level, chapters, instructor_id, average_rating, total_enrollments, status, created_at, updated_at`

func scanTraining(row interface{ Scan(...any) error }) (*models.Training, error) {
	var t models.Training
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Price, &t.Duration, &t.Level,
		&t.Chapters, &t.InstructorID, &t.AverageRating, &t.TotalEnrollments, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrainingRepo) Create(ctx context.Context, t *models.Training) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO trainings (title, description, category, price, duration, level, chapters, instructor_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, average_rating, total_enrollments, created_at, updated_at
	`, t.Title, t.Description, t.Category, t.Price, t.Duration, t.Level, t.Chapters, t.InstructorID, t.Status,
	).Scan(&t.ID, &t.AverageRating, &t.TotalEnrollments, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TrainingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Training, error) {
	return scanTraining(r.pool.QueryRow(ctx, `SELECT `+trainingColumns+` FROM trainings WHERE id = $1`, id))
}

// ListFilter narrows List; zero values mean no constraint.
type ListFilter struct {
	Category string
	Level    string
	Status   string
	MaxPrice int64
	Sort     string // newest (default), rating, popular
	Limit    int
	Offset   int
}

func (r *TrainingRepo) List(ctx context.Context, f ListFilter) ([]models.Training, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	order := "created_at DESC"
	switch f.Sort {
	case "rating":
		order = "average_rating DESC, created_at DESC"
	case "popular":
		order = "total_enrollments DESC, created_at DESC"
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+trainingColumns+` FROM trainings
		WHERE ($1 = '' OR category = $1)
		  AND ($2 = '' OR level = $2)
		  AND ($3 = '' OR status = $3)
		  AND ($4 <= 0 OR price <= $4)
		ORDER BY `+order+`
		LIMIT $5 OFFSET $6
	`, f.Category, f.Level, f.Status, f.MaxPrice, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []models.Training
	for rows.Next() {
		var t models.Training
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Price, &t.Duration, &t.Level,
			&t.Chapters, &t.InstructorID, &t.AverageRating, &t.TotalEnrollments, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}

func (r *TrainingRepo) ListByInstructor(ctx context.Context, instructorID uuid.UUID, limit, offset int) ([]models.Training, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+trainingColumns+` FROM trainings
		WHERE instructor_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, instructorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []models.Training
	for rows.Next() {
		var t models.Training
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Price, &t.Duration, &t.Level,
			&t.Chapters, &t.InstructorID, &t.AverageRating, &t.TotalEnrollments, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}

func (r *TrainingRepo) Update(ctx context.Context, t *models.Training) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE trainings SET title = $1, description = $2, category = $3, price = $4,
			duration = $5, level = $6, chapters = $7, status = $8, updated_at = now()
		WHERE id = $9
	`, t.Title, t.Description, t.Category, t.Price, t.Duration, t.Level, t.Chapters, t.Status, t.ID)
	return err
}

func (r *TrainingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trainings WHERE id = $1`, id)
	return err
}

func (r *TrainingRepo) IsEnrolled(ctx context.Context, trainingID, userID uuid.UUID) (bool, error) {
	var enrolled bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM training_enrollments WHERE training_id = $1 AND user_id = $2)
	`, trainingID, userID).Scan(&enrolled)
	return enrolled, err
}

// Enroll inserts the enrollment and bumps the counter in one transaction.
// Reports false without error when the user is already enrolled.
func (r *TrainingRepo) Enroll(ctx context.Context, trainingID, userID uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		INSERT INTO training_enrollments (training_id, user_id) VALUES ($1, $2)
		ON CONFLICT (training_id, user_id) DO NOTHING
	`, trainingID, userID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, tx.Commit(ctx)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE trainings SET total_enrollments = total_enrollments + 1, updated_at = now()
		WHERE id = $1
	`, trainingID); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

// CompleteChapter records a finished chapter for an enrolled user. Reports
// false without error when the chapter is already marked.
func (r *TrainingRepo) CompleteChapter(ctx context.Context, trainingID, userID uuid.UUID, chapterID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO chapter_completions (training_id, user_id, chapter_id) VALUES ($1, $2, $3)
		ON CONFLICT (training_id, user_id, chapter_id) DO NOTHING
	`, trainingID, userID, chapterID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TrainingRepo) ListCompletedChapters(ctx context.Context, trainingID, userID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT chapter_id FROM chapter_completions
		WHERE training_id = $1 AND user_id = $2
		ORDER BY completed_at
	`, trainingID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		chapters = append(chapters, id)
	}
	return chapters, rows.Err()
}

// Rate upserts the user's rating and recomputes the average from stored rows,
// so repeated ratings replace rather than skew.
func (r *TrainingRepo) Rate(ctx context.Context, rating *models.TrainingRating) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO training_ratings (training_id, user_id, rating, review)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (training_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, review = EXCLUDED.review
		RETURNING id, created_at
	`, rating.TrainingID, rating.UserID, rating.Rating, rating.Review,
	).Scan(&rating.ID, &rating.CreatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE trainings SET average_rating = (
			SELECT COALESCE(AVG(rating), 0) FROM training_ratings WHERE training_id = $1
		), updated_at = now()
		WHERE id = $1
	`, rating.TrainingID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *TrainingRepo) ListEnrolled(ctx context.Context, userID uuid.UUID) ([]models.Training, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.title, t.description, t.category, t.price, t.duration, t.level, t.chapters,
		       t.instructor_id, t.average_rating, t.total_enrollments, t.status, t.created_at, t.updated_at
		FROM trainings t
		JOIN training_enrollments e ON e.training_id = t.id
		WHERE e.user_id = $1
		ORDER BY e.enrolled_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trainings []models.Training
	for rows.Next() {
		var t models.Training
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Category, &t.Price, &t.Duration, &t.Level,
			&t.Chapters, &t.InstructorID, &t.AverageRating, &t.TotalEnrollments, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}
