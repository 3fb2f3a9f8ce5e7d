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

// UsersHandler serves the staff-account administration screen. A duplicate
// login handle on create is reported as an informational message rather
// than an error, matching the upstream conflict response.
type UsersHandler struct {
	*Screen[domain.User, backend.UserPayload]
	client *backend.Client
}

func NewUsersHandler(client *backend.Client, logger *zap.Logger) *UsersHandler {
	registry := listing.NewRegistry(func(string) *listing.Controller[domain.User, backend.UserPayload] {
		return listing.New(listing.Config[domain.User, backend.UserPayload]{
			PageSizes: []int{10, 50, 100},
			Load: func(ctx context.Context, page, size int) (listing.Page[domain.User], error) {
				p, err := client.UsersPage(ctx, page, size)
				if err != nil {
					return listing.Page[domain.User]{}, err
				}
				return listing.Page[domain.User]{Items: p.Items, Total: p.Total}, nil
			},
			Create: func(ctx context.Context, payload backend.UserPayload) error {
				return client.CreateUser(ctx, payload)
			},
			Update: func(ctx context.Context, id string, payload backend.UserPayload) error {
				return client.UpdateUser(ctx, id, payload)
			},
			Delete:   client.DeleteUser,
			ID:       func(u domain.User) string { return u.ID },
			FormFrom: func(u domain.User) any { return forms.UserFormFrom(u) },
			SearchText: func(u domain.User) []string {
				fields := []string{u.Name, u.LoginHandle}
				if u.Office != nil {
					fields = append(fields, u.Office.Name)
				}
				return fields
			},
			Messages: listing.Messages{
				Created:  "El usuario fue registrado correctamente.",
				Updated:  "El usuario fue actualizado correctamente.",
				Deleted:  "El usuario fue eliminado correctamente.",
				Failed:   "No se pudo completar la operación. Intenta nuevamente.",
				Conflict: "El correo ya está registrado. Por favor, usa otro.",
			},
			Logger: logger,
		})
	})

	return &UsersHandler{
		Screen: NewScreen(registry, parseUserForm, nil),
		client: client,
	}
}

func parseUserForm(c *fiber.Ctx, editing bool) (backend.UserPayload, error) {
	var form forms.UserForm
	if err := c.BodyParser(&form); err != nil {
		return backend.UserPayload{}, apperrors.NewValidationError("malformed body", nil)
	}
	if err := forms.Validate(form); err != nil {
		return backend.UserPayload{}, err
	}
	// Password is required on create; editing may leave it blank to keep
	// the current one.
	if !editing && form.Password == "" {
		return backend.UserPayload{}, apperrors.NewValidationError("invalid form", map[string]any{"Password": "required"})
	}
	return backend.UserPayload{
		Name:     form.Name,
		Handle:   form.Handle,
		Password: form.Password,
		RoleID:   form.RoleID,
		OfficeID: form.OfficeID,
	}, nil
}

// Roles returns the fixed role options for the account dialog.
func (h *UsersHandler) Roles(c *fiber.Ctx) error {
	roles, err := h.client.Roles(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"roles": roles})
}

func (h *UsersHandler) Register(r fiber.Router) {
	r.Get("/roles", h.Roles)
	r.Post("/selector", officeSelector(h.client))
	h.Screen.Register(r)
}
