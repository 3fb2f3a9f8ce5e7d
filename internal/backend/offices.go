package backend

import (
	"context"
	"net/http"

	"github.com/munivisitas/gateway/internal/domain"
)

// OfficePayload is the create/update body for offices.
type OfficePayload struct {
	Name   string `json:"name"`
	Floor  string `json:"floor"`
	SiteID string `json:"sedeId"`
}

// Offices returns the full office list for selector options.
func (c *Client) Offices(ctx context.Context) ([]domain.Office, error) {
	return getData[[]domain.Office](ctx, c, "/offices")
}

// OfficesPage returns one page of offices.
func (c *Client) OfficesPage(ctx context.Context, page, limit int) (Page[domain.Office], error) {
	return getPaged[domain.Office](ctx, c, "/offices/filter", page, limit)
}

func (c *Client) CreateOffice(ctx context.Context, payload OfficePayload) error {
	return c.send(ctx, http.MethodPost, "/offices", payload)
}

func (c *Client) UpdateOffice(ctx context.Context, id string, payload OfficePayload) error {
	return c.send(ctx, http.MethodPut, "/offices/"+id, payload)
}

func (c *Client) DeleteOffice(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/offices/"+id, nil)
}
