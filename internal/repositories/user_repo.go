package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jobive/backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, skills, company, phone, location, avatar, earnings, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Skills,
		&u.Company, &u.Phone, &u.Location, &u.Avatar, &u.Earnings, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role, skills, company, phone, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, u.Name, u.Email, u.PasswordHash, u.Role, u.Skills, u.Company, u.Phone, u.Location,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// UpdateProfile updates the mutable profile fields only; email, password and
// role have their own paths.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, u *models.User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET name = $1, skills = $2, company = $3, phone = $4, location = $5, avatar = $6
		WHERE id = $7
	`, u.Name, u.Skills, u.Company, u.Phone, u.Location, u.Avatar, id)
	return err
}

// AddEarnings credits a released payout to the freelancer's lifetime total.
func (r *UserRepo) AddEarnings(ctx context.Context, id uuid.UUID, amount int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET earnings = earnings + $1 WHERE id = $2`, amount, id)
	return err
}
