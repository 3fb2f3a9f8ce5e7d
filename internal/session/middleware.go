package session

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const storeKey = "session_store"
const idKey = "session_id"

// Middleware hydrates the per-request session store from the cookie token
// and the persisted record. A missing or stale cookie leaves the request
// anonymous; route gates decide whether that is acceptable.
type Middleware struct {
	tokens     *TokenManager
	manager    *Manager
	cookieName string
	logger     *zap.Logger
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, manager *Manager, cookieName string, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, manager: manager, cookieName: cookieName, logger: logger}
}

// CookieName exposes the configured cookie name for handlers that set it.
func (m *Middleware) CookieName() string {
	return m.cookieName
}

// Handle loads the session, if any, into fiber locals.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	cookie := c.Cookies(m.cookieName)
	if cookie == "" {
		return c.Next()
	}

	claims, err := m.tokens.Parse(cookie)
	if err != nil {
		return c.Next()
	}

	rec, err := m.manager.Get(c.UserContext(), claims.SessionID)
	if err != nil {
		m.logger.Debug("session record not hydrated", zap.Error(err))
		return c.Next()
	}

	c.Locals(storeKey, NewStoreFrom(rec))
	c.Locals(idKey, claims.SessionID)
	return c.Next()
}

// FromContext retrieves the hydrated store and session ID.
func FromContext(c *fiber.Ctx) (*Store, string, bool) {
	val := c.Locals(storeKey)
	if val == nil {
		return nil, "", false
	}
	store, ok := val.(*Store)
	if !ok {
		return nil, "", false
	}
	id, _ := c.Locals(idKey).(string)
	return store, id, true
}

// Seed installs a store directly, bypassing cookie parsing. Used by tests
// and internal tooling.
func Seed(c *fiber.Ctx, store *Store, sessionID string) {
	c.Locals(storeKey, store)
	c.Locals(idKey, sessionID)
}
