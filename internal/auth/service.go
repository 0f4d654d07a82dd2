package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
	"github.com/Arthur-020/labstock-backend/pkg/security"
	"github.com/Arthur-020/labstock-backend/pkg/session"
)

type repository interface {
	FindByLogin(ctx context.Context, login string) (*models.User, error)
}

type sessionManager interface {
	Create(ctx context.Context, user session.User) (string, error)
	Destroy(ctx context.Context, sessionID string) error
}

// Service authenticates credentials and manages session lifecycles.
type Service interface {
	Login(ctx context.Context, login, password string) (string, *session.User, error)
	Logout(ctx context.Context, sessionID string) error
}

type service struct {
	repo     repository
	sessions sessionManager
}

// NewService wires credential checks to the session store.
func NewService(repo repository, sessions sessionManager) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &service{repo: repo, sessions: sessions}, nil
}

// Login verifies the credentials and opens a session. Unknown logins and
// wrong passwords return the same unauthorized error so the form cannot be
// used to probe for accounts.
func (s *service) Login(ctx context.Context, login, password string) (string, *session.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", nil, pkgerrors.New(pkgerrors.CodeValidation, "login and password are required")
	}

	user, err := s.repo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return "", nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	identity := session.User{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Login:       user.Login,
		Role:        user.Role,
	}
	sessionID, err := s.sessions.Create(ctx, identity)
	if err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}
	return sessionID, &identity, nil
}

// Logout drops the session. A missing session is not an error; the user
// ends up logged out either way.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "destroy session")
	}
	return nil
}
