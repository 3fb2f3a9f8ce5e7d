package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/munivisitas/gateway/internal/backend"
	"github.com/munivisitas/gateway/internal/domain"
	"github.com/munivisitas/gateway/internal/forms"
	"github.com/munivisitas/gateway/internal/listing"
	"github.com/munivisitas/gateway/internal/session"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

// VisitsHandler serves the visit log, the pending-visit checkout screen,
// and the administrator's per-office inspection view. All three are scoped
// by office through the registry key.
type VisitsHandler struct {
	screen  *Screen[domain.Visit, backend.VisitPayload]
	inspect *Screen[domain.Visit, backend.VisitPayload]
	pending *Screen[domain.Visit, backend.VisitPayload]
	client  *backend.Client
}

func NewVisitsHandler(client *backend.Client, logger *zap.Logger) *VisitsHandler {
	visitSearch := func(v domain.Visit) []string {
		fields := []string{v.VisitorName, v.DNI, v.Entity, v.Reason}
		if v.Employee != nil {
			fields = append(fields, v.Employee.Name)
		}
		return fields
	}

	registry := listing.NewRegistry(func(key string) *listing.Controller[domain.Visit, backend.VisitPayload] {
		officeID := scopeFromKey(key)
		return listing.New(listing.Config[domain.Visit, backend.VisitPayload]{
			PageSizes: []int{10, 50, 100},
			Load: func(ctx context.Context, page, size int) (listing.Page[domain.Visit], error) {
				p, err := client.VisitsPage(ctx, officeID, page, size)
				if err != nil {
					return listing.Page[domain.Visit]{}, err
				}
				return listing.Page[domain.Visit]{Items: resolvePhotos(client, p.Items), Total: p.Total}, nil
			},
			Create: func(ctx context.Context, payload backend.VisitPayload) error {
				return client.CreateVisit(ctx, payload)
			},
			Update: func(ctx context.Context, id string, payload backend.VisitPayload) error {
				return client.UpdateVisit(ctx, id, payload)
			},
			Delete:     client.DeleteVisit,
			ID:         func(v domain.Visit) string { return v.ID },
			FormFrom:   func(v domain.Visit) any { return forms.VisitFormFrom(v) },
			SearchText: visitSearch,
			Messages: listing.Messages{
				Created: "La visita fue registrada correctamente.",
				Updated: "La visita fue actualizada correctamente.",
				Deleted: "La visita fue eliminada correctamente.",
				Failed:  "No se pudo completar la operación. Intenta nuevamente.",
			},
			Logger: logger,
		})
	})

	// The pending screen reuses the list workflow with checkout in the
	// delete slot: checking a visitor out removes the row from this list.
	pendingRegistry := listing.NewRegistry(func(key string) *listing.Controller[domain.Visit, backend.VisitPayload] {
		officeID := scopeFromKey(key)
		return listing.New(listing.Config[domain.Visit, backend.VisitPayload]{
			PageSizes: []int{5, 10, 15},
			Load: func(ctx context.Context, page, size int) (listing.Page[domain.Visit], error) {
				p, err := client.PendingVisitsPage(ctx, officeID, page, size)
				if err != nil {
					return listing.Page[domain.Visit]{}, err
				}
				// The pending endpoint must only hand back open visits; a
				// row that already carries a checkout is dropped here so
				// it can never be checked out twice.
				open := p.Items[:0]
				for _, v := range p.Items {
					if v.Open() {
						open = append(open, v)
					}
				}
				return listing.Page[domain.Visit]{Items: resolvePhotos(client, open), Total: p.Total}, nil
			},
			Delete: func(ctx context.Context, id string) error {
				return client.CheckOutVisit(ctx, id, time.Now())
			},
			ID:         func(v domain.Visit) string { return v.ID },
			SearchText: visitSearch,
			Messages: listing.Messages{
				Deleted: "La salida fue registrada correctamente.",
				Failed:  "No se pudo registrar la salida. Intenta nuevamente.",
			},
			Logger: logger,
		})
	})

	return &VisitsHandler{
		screen:  NewScreen(registry, parseVisitForm, OfficeKey),
		inspect: NewScreen(registry, parseVisitForm, ParamOfficeKey("officeId")),
		pending: NewScreen(pendingRegistry, nil, OfficeKey),
		client:  client,
	}
}

// resolvePhotos rewrites stored photo references to absolute upload-host
// URLs before the visits leave the gateway.
func resolvePhotos(client *backend.Client, items []domain.Visit) []domain.Visit {
	for i := range items {
		items[i].PhotoRef = client.UploadURL(items[i].PhotoRef)
	}
	return items
}

func parseVisitForm(c *fiber.Ctx, editing bool) (backend.VisitPayload, error) {
	var form forms.VisitForm
	if err := c.BodyParser(&form); err != nil {
		return backend.VisitPayload{}, apperrors.NewValidationError("malformed body", nil)
	}
	store, _, ok := session.FromContext(c)
	if !ok {
		return backend.VisitPayload{}, apperrors.NewUnauthorized("authentication required")
	}
	rec, _ := store.Current()
	return form.Payload(time.Now(), rec.UserID, editing)
}

// FormOptions returns what the visit dialog needs up front: the office's
// employees and the accepted reason list.
func (h *VisitsHandler) FormOptions(c *fiber.Ctx) error {
	key, err := OfficeKey(c)
	if err != nil {
		return err
	}
	employees, err := h.client.Employees(c.UserContext(), scopeFromKey(key))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"employees": employees,
		"reasons":   domain.VisitReasons,
	})
}

// Register mounts the visit log and the pending screen.
func (h *VisitsHandler) Register(r fiber.Router) {
	pending := r.Group("/pending")
	pending.Get("/", h.pending.List)
	pending.Post("/search", h.pending.Search)
	pending.Post("/:id/checkout", h.pending.Remove)

	r.Get("/form/options", h.FormOptions)
	h.screen.Register(r)
}

// RegisterInspection mounts the read-and-prune view administrators get for
// any office.
func (h *VisitsHandler) RegisterInspection(r fiber.Router) {
	r.Get("/", h.inspect.List)
	r.Post("/search", h.inspect.Search)
	r.Delete("/:id", h.inspect.Remove)
}

// DropSession discards all visit screen state for the session.
func (h *VisitsHandler) DropSession(sessionID string) {
	h.screen.DropSession(sessionID)
	h.pending.DropSession(sessionID)
}
