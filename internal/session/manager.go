package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/munivisitas/gateway/internal/domain"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

const recordKeyPrefix = "munivisitas:session:"

// Manager owns the persisted copy of each session: one serialized identity
// record per session ID, written on login and erased on logout. Records
// carry no expiry; a session lives until explicit logout or the store is
// cleared externally.
type Manager struct {
	redis *Redis
}

// NewManager constructs the manager.
func NewManager(r *Redis) *Manager {
	return &Manager{redis: r}
}

func recordKey(sessionID string) string {
	return recordKeyPrefix + sessionID
}

// Create persists the identity record and returns the new session ID.
func (m *Manager) Create(ctx context.Context, rec domain.Session) (string, error) {
	if !rec.Authenticated() {
		return "", errors.New("cannot persist an anonymous session")
	}

	encoded, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	sessionID := uuid.NewString()
	if err := m.redis.Client.Set(ctx, recordKey(sessionID), encoded, 0).Err(); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return sessionID, nil
}

// Get hydrates the identity record for the session ID.
func (m *Manager) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	raw, err := m.redis.Client.Get(ctx, recordKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, apperrors.NewUnauthorized("session not found")
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}

	var rec domain.Session
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return rec, nil
}

// Destroy purges the persisted record.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	return m.redis.Client.Del(ctx, recordKey(sessionID)).Err()
}
