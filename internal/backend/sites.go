package backend

import (
	"context"
	"net/http"

	"github.com/munivisitas/gateway/internal/domain"
)

// SitePayload is the create/update body for sites.
type SitePayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Sites returns the full site list, offices included, for selector options.
func (c *Client) Sites(ctx context.Context) ([]domain.Site, error) {
	return getData[[]domain.Site](ctx, c, "/sedes")
}

// SitesPage returns one page of sites.
func (c *Client) SitesPage(ctx context.Context, page, limit int) (Page[domain.Site], error) {
	return getPaged[domain.Site](ctx, c, "/sedes/filter", page, limit)
}

func (c *Client) CreateSite(ctx context.Context, payload SitePayload) error {
	return c.send(ctx, http.MethodPost, "/sedes", payload)
}

func (c *Client) UpdateSite(ctx context.Context, id string, payload SitePayload) error {
	return c.send(ctx, http.MethodPut, "/sedes/"+id, payload)
}

func (c *Client) DeleteSite(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/sedes/"+id, nil)
}
