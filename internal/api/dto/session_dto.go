package dto

import (
	"time"

	"github.com/munivisitas/gateway/internal/domain"
)

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Session   domain.Session `json:"session"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// SessionResponse describes the caller's current session and route tree.
type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Session       *domain.Session `json:"session,omitempty"`
	Tree          string          `json:"tree"`
}
