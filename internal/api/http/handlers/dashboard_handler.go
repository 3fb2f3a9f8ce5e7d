package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/munivisitas/gateway/internal/backend"
	"github.com/munivisitas/gateway/internal/forms"
	"github.com/munivisitas/gateway/internal/session"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

// DashboardHandler serves the office summary counters and the DNI registry
// lookup the visit dialog uses to auto-fill visitor names.
type DashboardHandler struct {
	client *backend.Client
	logger *zap.Logger
}

func NewDashboardHandler(client *backend.Client, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{client: client, logger: logger}
}

// Summary returns the counters for the session's office.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	store, _, ok := session.FromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	rec, _ := store.Current()
	if rec.OfficeID == "" {
		return apperrors.NewForbidden("no office assigned to this account")
	}
	summary, err := h.client.Dashboard(c.UserContext(), rec.OfficeID)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// Lookup queries the national registry by DNI. The request is only issued
// for a complete eight-digit DNI; anything else, including an upstream
// failure, comes back as a null person so typing never breaks the dialog.
func (h *DashboardHandler) Lookup(c *fiber.Ctx) error {
	dni := c.Query("dni")
	if !forms.ShouldLookup(dni) {
		return c.JSON(fiber.Map{"person": nil})
	}
	person, err := h.client.LookupPerson(c.UserContext(), dni)
	if err != nil {
		h.logger.Debug("registry lookup failed", zap.String("dni", dni), zap.Error(err))
		return c.JSON(fiber.Map{"person": nil})
	}
	if person == nil {
		return c.JSON(fiber.Map{"person": nil})
	}
	return c.JSON(fiber.Map{
		"person": person,
		"name":   person.FullName(),
	})
}

func (h *DashboardHandler) Register(r fiber.Router) {
	r.Get("/", h.Summary)
	r.Get("/consulta", h.Lookup)
}
