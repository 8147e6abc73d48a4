// Package session tracks server-side authenticated sessions in Redis.
// Clients hold only the opaque token; everything else is resolved here.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Session is the server-side record behind one token. IsAdmin is a
// snapshot taken at creation time and is never re-checked against the
// live user row; demoting a user does not revoke sessions already issued.
type Session struct {
	UserID    uint      `json:"user_id"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Anonymous reports whether the session is not bound to any user.
func (s Session) Anonymous() bool { return s.UserID == 0 }

type Manager struct {
	client *redis.Client
	// ttl of zero keeps sessions alive until destroyed.
	ttl time.Duration
}

func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	return &Manager{client: client, ttl: ttl}
}

func newToken() (string, error) {
	var raw [32]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}

func (m *Manager) Create(ctx context.Context, userID uint, isAdmin bool) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}

	blob, err := json.Marshal(Session{
		UserID:    userID,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("session encode: %w", err)
	}

	if err := m.client.Set(ctx, keyPrefix+token, blob, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}
	return token, nil
}

// Resolve returns the session behind token, or the anonymous session when
// the token is empty, unknown, expired or the blob is unreadable. A miss
// is never an error; only a store outage is.
func (m *Manager) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, nil
	}

	blob, err := m.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("session store: %w", err)
	}

	var s Session
	if err := json.Unmarshal(blob, &s); err != nil {
		return Session{}, nil
	}
	return s, nil
}

// Destroy invalidates the token. Destroying an unknown or already
// destroyed token is a no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}
