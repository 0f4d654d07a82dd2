package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/Arthur-020/labstock-backend/pkg/config"
	"github.com/Arthur-020/labstock-backend/pkg/db"
	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	"github.com/Arthur-020/labstock-backend/pkg/enums"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
	"github.com/Arthur-020/labstock-backend/pkg/logger"
	"github.com/Arthur-020/labstock-backend/pkg/security"
)

type repository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int) error
}

// Account is the listing read model. It deliberately omits the password
// hash so views never see credential material.
type Account struct {
	ID          int
	DisplayName string
	Login       string
	Role        enums.UserRole
}

// CreateInput carries the new-account form fields.
type CreateInput struct {
	DisplayName string `validate:"required"`
	Login       string `validate:"required"`
	Password    string `validate:"required"`
	Role        string `validate:"required"`
}

// Service exposes account administration and the startup admin seed.
type Service interface {
	List(ctx context.Context) ([]Account, error)
	Create(ctx context.Context, input CreateInput) error
	Delete(ctx context.Context, id int) error
	EnsureAdmin(ctx context.Context) error
}

type service struct {
	repo      repository
	password  config.PasswordConfig
	bootstrap config.BootstrapConfig
	log       *logger.Logger
	validate  *validator.Validate
}

// NewService wires account administration.
func NewService(repo repository, password config.PasswordConfig, bootstrap config.BootstrapConfig, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      repo,
		password:  password,
		bootstrap: bootstrap,
		log:       log,
		validate:  validator.New(),
	}, nil
}

func (s *service) List(ctx context.Context) ([]Account, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	accounts := make([]Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, Account{
			ID:          row.ID,
			DisplayName: row.DisplayName,
			Login:       row.Login,
			Role:        row.Role,
		})
	}
	return accounts, nil
}

// Create hashes the password and inserts the account. A duplicate login
// maps to a conflict so the form can re-render with an inline message.
func (s *service) Create(ctx context.Context, input CreateInput) error {
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.Login = strings.TrimSpace(input.Login)
	if err := s.validate.Struct(input); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user")
	}
	role, err := enums.ParseUserRole(input.Role)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		DisplayName:  input.DisplayName,
		Login:        input.Login,
		PasswordHash: hash,
		Role:         role,
	}
	if _, err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "login") {
			return pkgerrors.New(pkgerrors.CodeConflict, "login is already taken")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

// EnsureAdmin seeds the bootstrap teacher account on startup when it does
// not exist yet, so a fresh deployment is immediately usable.
func (s *service) EnsureAdmin(ctx context.Context) error {
	_, err := s.repo.FindByLogin(ctx, s.bootstrap.AdminLogin)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup admin")
	}

	hash, err := security.HashPassword(s.bootstrap.AdminPassword, s.password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash admin password")
	}
	admin := &models.User{
		DisplayName:  s.bootstrap.AdminName,
		Login:        s.bootstrap.AdminLogin,
		PasswordHash: hash,
		Role:         enums.UserRoleTeacher,
	}
	if _, err := s.repo.Create(ctx, admin); err != nil {
		if db.IsUniqueViolation(err, "login") {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seed admin")
	}
	s.log.Info(s.log.WithField(ctx, "login", s.bootstrap.AdminLogin), "seeded bootstrap admin account")
	return nil
}
