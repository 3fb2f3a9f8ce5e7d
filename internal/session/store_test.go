package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/munivisitas/gateway/internal/domain"
)

func TestStoreLoginLogout(t *testing.T) {
	store := NewStore()

	_, ok := store.Current()
	require.False(t, ok)

	store.Login(domain.Session{
		UserID:     "u1",
		Role:       domain.RoleAdministrator,
		Name:       "Ana",
		SiteName:   "Sede Central",
		OfficeName: "Mesa de Partes",
		OfficeID:   "of-1",
	})

	rec, ok := store.Current()
	require.True(t, ok)
	require.Equal(t, "u1", rec.UserID)
	require.Equal(t, domain.RoleAdministrator, rec.Role)

	store.Logout()
	rec, ok = store.Current()
	require.False(t, ok)
	require.Equal(t, domain.Session{}, rec)
}

func TestStoreRejectsAnonymousLogin(t *testing.T) {
	store := NewStore()
	store.Login(domain.Session{Name: "sin id"})

	rec, ok := store.Current()
	require.False(t, ok)
	require.Equal(t, domain.Session{}, rec)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	signed, expires, err := tm.Issue("sess-1", domain.RoleAssistant)
	require.NoError(t, err)
	require.True(t, expires.After(time.Now()))

	claims, err := tm.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, "sess-1", claims.SessionID)
	require.Equal(t, domain.RoleAssistant, claims.Role)
}

func TestTokenRejectsForeignSignature(t *testing.T) {
	tm := NewTokenManager("secret-a", time.Hour)
	other := NewTokenManager("secret-b", time.Hour)

	signed, _, err := tm.Issue("sess-1", domain.RoleAssistant)
	require.NoError(t, err)

	_, err = other.Parse(signed)
	require.Error(t, err)
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("secret"), ttl: -time.Minute}

	signed, _, err := tm.Issue("sess-1", domain.RoleAssistant)
	require.NoError(t, err)

	_, err = tm.Parse(signed)
	require.Error(t, err)
}
