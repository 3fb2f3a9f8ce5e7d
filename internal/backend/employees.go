package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/munivisitas/gateway/internal/domain"
)

// EmployeePayload is the create/update body for employees.
type EmployeePayload struct {
	Name     string `json:"name"`
	OfficeID string `json:"officeId"`
	SiteID   string `json:"sedeId"`
}

// Employees returns the unpaged employee list for the given office, used by
// the visit form's selector.
func (c *Client) Employees(ctx context.Context, officeID string) ([]domain.Employee, error) {
	return getData[[]domain.Employee](ctx, c, "/functionaries?officeId="+url.QueryEscape(officeID))
}

// EmployeesPage returns one page of employees scoped by office.
func (c *Client) EmployeesPage(ctx context.Context, officeID string, page, limit int) (Page[domain.Employee], error) {
	return getPaged[domain.Employee](ctx, c, "/functionaries/filter/"+url.PathEscape(officeID), page, limit)
}

func (c *Client) CreateEmployee(ctx context.Context, payload EmployeePayload) error {
	return c.send(ctx, http.MethodPost, "/functionaries", payload)
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, payload EmployeePayload) error {
	return c.send(ctx, http.MethodPut, "/functionaries/"+id, payload)
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/functionaries/"+id, nil)
}
