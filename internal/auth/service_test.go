package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Arthur-020/labstock-backend/pkg/config"
	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	"github.com/Arthur-020/labstock-backend/pkg/enums"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
	"github.com/Arthur-020/labstock-backend/pkg/security"
	"github.com/Arthur-020/labstock-backend/pkg/session"
)

type stubUserRepo struct {
	users map[string]*models.User
	err   error
}

func (s *stubUserRepo) FindByLogin(_ context.Context, login string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[login]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type stubSessions struct {
	created   []session.User
	destroyed []string
	createErr error
}

func (s *stubSessions) Create(_ context.Context, user session.User) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created = append(s.created, user)
	return "session-1", nil
}

func (s *stubSessions) Destroy(_ context.Context, sessionID string) error {
	s.destroyed = append(s.destroyed, sessionID)
	return nil
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	return hash
}

func TestLoginSuccess(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*models.User{
		"ana": {ID: 7, DisplayName: "Ana", Login: "ana", PasswordHash: hashFor(t, "s3cret"), Role: enums.UserRoleTeacher},
	}}
	sessions := &stubSessions{}
	svc, err := NewService(repo, sessions)
	require.NoError(t, err)

	sessionID, identity, err := svc.Login(context.Background(), " ana ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "session-1", sessionID)
	assert.Equal(t, 7, identity.ID)
	assert.Equal(t, enums.UserRoleTeacher, identity.Role)
	require.Len(t, sessions.created, 1)
	assert.Equal(t, "ana", sessions.created[0].Login)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*models.User{
		"ana": {ID: 7, Login: "ana", PasswordHash: hashFor(t, "s3cret"), Role: enums.UserRoleStudent},
	}}
	sessions := &stubSessions{}
	svc, err := NewService(repo, sessions)
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ana", "wrong")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Empty(t, sessions.created)
}

func TestLoginUnknownUserLooksLikeWrongPassword(t *testing.T) {
	svc, err := NewService(&stubUserRepo{users: map[string]*models.User{}}, &stubSessions{})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "nobody", "whatever")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	assert.Equal(t, "invalid credentials", typed.Message())
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc, err := NewService(&stubUserRepo{}, &stubSessions{})
	require.NoError(t, err)

	for _, tc := range []struct{ login, password string }{{"", "pw"}, {"ana", ""}, {"  ", "pw"}} {
		_, _, err := svc.Login(context.Background(), tc.login, tc.password)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestLoginRepoFailure(t *testing.T) {
	svc, err := NewService(&stubUserRepo{err: errors.New("db down")}, &stubSessions{})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ana", "pw")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}

func TestLogout(t *testing.T) {
	sessions := &stubSessions{}
	svc, err := NewService(&stubUserRepo{}, sessions)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "session-1"))
	assert.Equal(t, []string{"session-1"}, sessions.destroyed)

	// blank session ids are a no-op
	require.NoError(t, svc.Logout(context.Background(), ""))
	assert.Len(t, sessions.destroyed, 1)
}
