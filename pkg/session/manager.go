package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Arthur-020/labstock-backend/pkg/config"
	"github.com/Arthur-020/labstock-backend/pkg/enums"
	redisclient "github.com/Arthur-020/labstock-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

// ErrNoSession signals a missing or expired session.
var ErrNoSession = errors.New("no active session")

// User is the identity payload stored against a session ID. It carries
// everything the request pipeline needs so handlers never re-read the
// users table for authorization.
type User struct {
	ID          int            `json:"id"`
	DisplayName string         `json:"display_name"`
	Login       string         `json:"login"`
	Role        enums.UserRole `json:"role"`
}

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager handles opaque browser sessions backed by Redis.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Reader exposes the read-only surface needed by middleware.
type Reader interface {
	Get(ctx context.Context, sessionID string) (*User, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		store: client,
		keyer: client,
		ttl:   cfg.TTL,
	}, nil
}

// Create stores the user payload under a fresh opaque session ID.
func (m *Manager) Create(ctx context.Context, user User) (string, error) {
	if user.ID <= 0 {
		return "", fmt.Errorf("user id is required")
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("encoding session payload: %w", err)
	}
	sessionID := uuid.NewString()
	if err := m.store.Set(ctx, m.keyer.SessionKey(sessionID), payload, m.ttl); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Get loads the user payload for the provided session ID and slides the TTL
// forward so active sessions stay alive.
func (m *Manager) Get(ctx context.Context, sessionID string) (*User, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrNoSession
	}
	key := m.keyer.SessionKey(sessionID)
	raw, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decoding session payload: %w", err)
	}
	if err := m.store.Expire(ctx, key, m.ttl); err != nil {
		return nil, err
	}
	return &user, nil
}

// Destroy deletes the session, logging the user out everywhere that cookie
// is presented.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}
