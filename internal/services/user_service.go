package services

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jobive/backend/internal/auth"
	"github.com/jobive/backend/internal/config"
	"github.com/jobive/backend/internal/models"
	"github.com/jobive/backend/internal/rbac"
	"go.uber.org/zap"
)

type accountStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, u *models.User) error
}

type UserService struct {
	users accountStore
	cfg   *config.Config
	mail  mailSender
	log   *zap.Logger
}

func NewUserService(users accountStore, cfg *config.Config, mail mailSender, log *zap.Logger) *UserService {
	return &UserService{users: users, cfg: cfg, mail: mail, log: log}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Skills   []string
	Company  *string
	Phone    *string
	Location *string
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if in.Name == "" {
		return nil, "", fmt.Errorf("%w: name required", ErrValidation)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if !rbac.IsValidRole(in.Role) || in.Role == rbac.RoleAdmin {
		return nil, "", fmt.Errorf("%w: role must be freelancer or employer", ErrValidation)
	}
	if in.Role == rbac.RoleFreelancer && len(in.Skills) == 0 {
		return nil, "", fmt.Errorf("%w: freelancers must list at least one skill", ErrValidation)
	}

	exists, err := s.users.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", fmt.Errorf("%w: email already registered", ErrAlreadyExists)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrValidation, err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Skills:       in.Skills,
		Company:      in.Company,
		Phone:        in.Phone,
		Location:     in.Location,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateJWT(s.cfg.JWTSecret, user.ID, user.Role, user.Email, s.cfg.JWTExpiration)
	if err != nil {
		return nil, "", err
	}

	// Fire and forget; a mail outage must not block registration.
	_ = s.mail.Send(ctx, user.Email, "Welcome to Jobive",
		fmt.Sprintf("Hi %s, your %s account is ready.", user.Name, user.Role))

	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password.
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := auth.GenerateJWT(s.cfg.JWTSecret, user.ID, user.Role, user.Email, s.cfg.JWTExpiration)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, updated *models.User) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	user.Name = updated.Name
	user.Skills = updated.Skills
	user.Company = updated.Company
	user.Phone = updated.Phone
	user.Location = updated.Location
	user.Avatar = updated.Avatar
	if err := s.users.UpdateProfile(ctx, id, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TokenTTL is exposed for the cookie the HTTP layer sets alongside the JSON
// token.
func (s *UserService) TokenTTL() time.Duration {
	return s.cfg.JWTExpiration
}
