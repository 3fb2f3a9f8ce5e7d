package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/munivisitas/gateway/internal/api/dto"
	"github.com/munivisitas/gateway/internal/backend"
	"github.com/munivisitas/gateway/internal/domain"
	"github.com/munivisitas/gateway/internal/forms"
	"github.com/munivisitas/gateway/internal/session"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

// TreeNamer maps a session to the name of its route tree. Injected to keep
// the tree taxonomy with the router.
type TreeNamer func(authenticated bool, role domain.Role) string

// AuthHandler owns login, logout, and session introspection.
type AuthHandler struct {
	client     *backend.Client
	manager    *session.Manager
	tokens     *session.TokenManager
	cookieName string
	treeName   TreeNamer
	cleanups   []func(sessionID string)
	logger     *zap.Logger
}

func NewAuthHandler(
	client *backend.Client,
	manager *session.Manager,
	tokens *session.TokenManager,
	cookieName string,
	treeName TreeNamer,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		client:     client,
		manager:    manager,
		tokens:     tokens,
		cookieName: cookieName,
		treeName:   treeName,
		logger:     logger,
	}
}

// OnLogout registers a cleanup to run when a session ends, used to discard
// per-session screen state.
func (h *AuthHandler) OnLogout(cleanup func(sessionID string)) {
	h.cleanups = append(h.cleanups, cleanup)
}

// sessionRecord flattens the backend account into the identity the gateway
// keeps between login and logout.
func sessionRecord(user domain.User) domain.Session {
	rec := domain.Session{UserID: user.ID, Name: user.Name}
	if user.Role != nil {
		rec.Role = domain.Role(user.Role.Name)
	}
	if user.Office != nil {
		rec.OfficeID = user.Office.ID
		rec.OfficeName = user.Office.Name
		if user.Office.Site != nil {
			rec.SiteName = user.Office.Site.Name
		}
	}
	return rec
}

// Login verifies the credentials upstream, persists the session record, and
// sets the cookie. Bad credentials come back as a single generic message.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("malformed body", nil)
	}
	if err := forms.Validate(form); err != nil {
		return err
	}

	user, err := h.client.Login(c.UserContext(), form.Handle, form.Password)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			return apperrors.NewUnauthorized("Credenciales incorrectas")
		}
		return err
	}

	rec := sessionRecord(user)
	sessionID, err := h.manager.Create(c.UserContext(), rec)
	if err != nil {
		return err
	}

	token, expiresAt, err := h.tokens.Issue(sessionID, rec.Role)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	h.logger.Info("session opened",
		zap.String("user_id", rec.UserID),
		zap.String("role", string(rec.Role)))
	return c.JSON(dto.LoginResponse{Session: rec, ExpiresAt: expiresAt})
}

// Logout destroys the persisted record, drops the session's screen state,
// and expires the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_, sessionID, ok := session.FromContext(c)
	if !ok || sessionID == "" {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.manager.Destroy(c.UserContext(), sessionID); err != nil {
		h.logger.Warn("session record not destroyed", zap.Error(err))
	}
	for _, cleanup := range h.cleanups {
		cleanup(sessionID)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.SendStatus(fiber.StatusNoContent)
}

// Session reports the caller's identity and which route tree applies, so
// the client can render the right navigation without guessing.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	resp := dto.SessionResponse{Tree: h.treeName(false, "")}
	if store, _, ok := session.FromContext(c); ok {
		if rec, authenticated := store.Current(); authenticated {
			resp.Authenticated = true
			resp.Session = &rec
			resp.Tree = h.treeName(true, rec.Role)
		}
	}
	return c.JSON(resp)
}
