package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/munivisitas/gateway/internal/backend"
	"github.com/munivisitas/gateway/internal/forms"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

type selectorRequest struct {
	SiteID   string `json:"sedeId"`
	OfficeID string `json:"officeId,omitempty"`
}

// officeSelector recomputes the dependent site → office selector for a
// dialog. Switching the site clears the office; a stale office ID that does
// not belong to the chosen site is dropped.
func officeSelector(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req selectorRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("malformed body", nil)
		}
		sites, err := client.Sites(c.UserContext())
		if err != nil {
			return err
		}
		selector := forms.OfficeSelector{}.WithSite(sites, req.SiteID).WithOffice(req.OfficeID)
		return c.JSON(selector)
	}
}
