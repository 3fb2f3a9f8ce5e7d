package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/munivisitas/gateway/internal/backend"
	"github.com/munivisitas/gateway/internal/domain"
	"github.com/munivisitas/gateway/internal/forms"
	"github.com/munivisitas/gateway/internal/listing"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

// EmployeesHandler serves the employee screen. The list is scoped to the
// signed-in assistant's office; the office comes from the registry key so a
// stale session snapshot can never leak another office's records.
type EmployeesHandler struct {
	*Screen[domain.Employee, backend.EmployeePayload]
	client *backend.Client
}

func NewEmployeesHandler(client *backend.Client, logger *zap.Logger) *EmployeesHandler {
	registry := listing.NewRegistry(func(key string) *listing.Controller[domain.Employee, backend.EmployeePayload] {
		officeID := scopeFromKey(key)
		return listing.New(listing.Config[domain.Employee, backend.EmployeePayload]{
			PageSizes: []int{10, 50, 100},
			Load: func(ctx context.Context, page, size int) (listing.Page[domain.Employee], error) {
				p, err := client.EmployeesPage(ctx, officeID, page, size)
				if err != nil {
					return listing.Page[domain.Employee]{}, err
				}
				return listing.Page[domain.Employee]{Items: p.Items, Total: p.Total}, nil
			},
			Create: func(ctx context.Context, payload backend.EmployeePayload) error {
				return client.CreateEmployee(ctx, payload)
			},
			Update: func(ctx context.Context, id string, payload backend.EmployeePayload) error {
				return client.UpdateEmployee(ctx, id, payload)
			},
			Delete:   client.DeleteEmployee,
			ID:       func(e domain.Employee) string { return e.ID },
			FormFrom: func(e domain.Employee) any { return forms.EmployeeFormFrom(e) },
			SearchText: func(e domain.Employee) []string {
				fields := []string{e.Name}
				if e.Office != nil {
					fields = append(fields, e.Office.Name)
				}
				return fields
			},
			Messages: listing.Messages{
				Created: "El funcionario fue registrado correctamente.",
				Updated: "El funcionario fue actualizado correctamente.",
				Deleted: "El funcionario fue eliminado correctamente.",
				Failed:  "No se pudo completar la operación. Intenta nuevamente.",
			},
			Logger: logger,
		})
	})

	return &EmployeesHandler{
		Screen: NewScreen(registry, parseEmployeeForm, OfficeKey),
		client: client,
	}
}

// scopeFromKey extracts the scope suffix from a "sessionID|scope" key.
func scopeFromKey(key string) string {
	if i := strings.IndexByte(key, '|'); i >= 0 {
		return key[i+1:]
	}
	return ""
}

func parseEmployeeForm(c *fiber.Ctx, _ bool) (backend.EmployeePayload, error) {
	var form forms.EmployeeForm
	if err := c.BodyParser(&form); err != nil {
		return backend.EmployeePayload{}, apperrors.NewValidationError("malformed body", nil)
	}
	if err := forms.Validate(form); err != nil {
		return backend.EmployeePayload{}, err
	}
	return backend.EmployeePayload{Name: form.Name, OfficeID: form.OfficeID, SiteID: form.SiteID}, nil
}

// Options returns the unpaged employee list for the visit dialog's
// selector, scoped to the session's office.
func (h *EmployeesHandler) Options(c *fiber.Ctx) error {
	key, err := OfficeKey(c)
	if err != nil {
		return err
	}
	employees, err := h.client.Employees(c.UserContext(), scopeFromKey(key))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"employees": employees})
}

func (h *EmployeesHandler) Register(r fiber.Router) {
	r.Get("/options", h.Options)
	r.Post("/selector", officeSelector(h.client))
	h.Screen.Register(r)
}
