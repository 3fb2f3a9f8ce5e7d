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

// OfficesHandler serves the office administration screen.
type OfficesHandler struct {
	*Screen[domain.Office, backend.OfficePayload]
	client *backend.Client
}

func NewOfficesHandler(client *backend.Client, logger *zap.Logger) *OfficesHandler {
	registry := listing.NewRegistry(func(string) *listing.Controller[domain.Office, backend.OfficePayload] {
		return listing.New(listing.Config[domain.Office, backend.OfficePayload]{
			PageSizes: []int{10, 50, 100},
			Load: func(ctx context.Context, page, size int) (listing.Page[domain.Office], error) {
				p, err := client.OfficesPage(ctx, page, size)
				if err != nil {
					return listing.Page[domain.Office]{}, err
				}
				return listing.Page[domain.Office]{Items: p.Items, Total: p.Total}, nil
			},
			Create: func(ctx context.Context, payload backend.OfficePayload) error {
				return client.CreateOffice(ctx, payload)
			},
			Update: func(ctx context.Context, id string, payload backend.OfficePayload) error {
				return client.UpdateOffice(ctx, id, payload)
			},
			Delete:   client.DeleteOffice,
			ID:       func(o domain.Office) string { return o.ID },
			FormFrom: func(o domain.Office) any { return forms.OfficeFormFrom(o) },
			SearchText: func(o domain.Office) []string {
				fields := []string{o.Name, o.Floor}
				if o.Site != nil {
					fields = append(fields, o.Site.Name)
				}
				return fields
			},
			Messages: listing.Messages{
				Created: "La oficina fue registrada correctamente.",
				Updated: "La oficina fue actualizada correctamente.",
				Deleted: "La oficina fue eliminada correctamente.",
				Failed:  "No se pudo completar la operación. Intenta nuevamente.",
			},
			Logger: logger,
		})
	})

	return &OfficesHandler{
		Screen: NewScreen(registry, parseOfficeForm, nil),
		client: client,
	}
}

func parseOfficeForm(c *fiber.Ctx, _ bool) (backend.OfficePayload, error) {
	var form forms.OfficeForm
	if err := c.BodyParser(&form); err != nil {
		return backend.OfficePayload{}, apperrors.NewValidationError("malformed body", nil)
	}
	if err := forms.Validate(form); err != nil {
		return backend.OfficePayload{}, err
	}
	return backend.OfficePayload{Name: form.Name, Floor: form.Floor, SiteID: form.SiteID}, nil
}

// Options returns the unpaged office list for selectors.
func (h *OfficesHandler) Options(c *fiber.Ctx) error {
	offices, err := h.client.Offices(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"offices": offices})
}

func (h *OfficesHandler) Register(r fiber.Router) {
	r.Get("/options", h.Options)
	r.Post("/selector", officeSelector(h.client))
	h.Screen.Register(r)
}
