package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/munivisitas/gateway/internal/backend"
	"github.com/munivisitas/gateway/internal/domain"
	"github.com/munivisitas/gateway/internal/forms"
	"github.com/munivisitas/gateway/internal/listing"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

// SitesHandler serves the site administration screen plus the unpaged
// options list the dependent selectors feed from.
type SitesHandler struct {
	*Screen[domain.Site, backend.SitePayload]
	client *backend.Client
}

func NewSitesHandler(client *backend.Client, logger *zap.Logger) *SitesHandler {
	registry := listing.NewRegistry(func(string) *listing.Controller[domain.Site, backend.SitePayload] {
		return listing.New(listing.Config[domain.Site, backend.SitePayload]{
			PageSizes: []int{10, 50, 100},
			Load: func(ctx context.Context, page, size int) (listing.Page[domain.Site], error) {
				p, err := client.SitesPage(ctx, page, size)
				if err != nil {
					return listing.Page[domain.Site]{}, err
				}
				return listing.Page[domain.Site]{Items: p.Items, Total: p.Total}, nil
			},
			Create: func(ctx context.Context, payload backend.SitePayload) error {
				return client.CreateSite(ctx, payload)
			},
			Update: func(ctx context.Context, id string, payload backend.SitePayload) error {
				return client.UpdateSite(ctx, id, payload)
			},
			Delete: client.DeleteSite,
			ID:       func(s domain.Site) string { return s.ID },
			FormFrom: func(s domain.Site) any { return forms.SiteFormFrom(s) },
			SearchText: func(s domain.Site) []string {
				return []string{s.Name, s.Address}
			},
			Messages: listing.Messages{
				Created: "La sede fue registrada correctamente.",
				Updated: "La sede fue actualizada correctamente.",
				Deleted: "La sede fue eliminada correctamente.",
				Failed:  "No se pudo completar la operación. Intenta nuevamente.",
			},
			Logger: logger,
		})
	})

	return &SitesHandler{
		Screen: NewScreen(registry, parseSiteForm, nil),
		client: client,
	}
}

func parseSiteForm(c *fiber.Ctx, _ bool) (backend.SitePayload, error) {
	var form forms.SiteForm
	if err := c.BodyParser(&form); err != nil {
		return backend.SitePayload{}, apperrors.NewValidationError("malformed body", nil)
	}
	if err := forms.Validate(form); err != nil {
		return backend.SitePayload{}, err
	}
	return backend.SitePayload{Name: form.Name, Address: form.Address}, nil
}

// Options returns every site with its offices, unpaged, for selectors.
func (h *SitesHandler) Options(c *fiber.Ctx) error {
	sites, err := h.client.Sites(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"sites": sites})
}

func (h *SitesHandler) Register(r fiber.Router) {
	r.Get("/options", h.Options)
	h.Screen.Register(r)
}
