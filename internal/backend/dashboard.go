package backend

import (
	"context"
	"net/url"

	"github.com/munivisitas/gateway/internal/domain"
)

type personEnvelope struct {
	Person *domain.Person `json:"datosPersona"`
}

// Dashboard returns the summary counters for the office.
func (c *Client) Dashboard(ctx context.Context, officeID string) (domain.DashboardSummary, error) {
	return getData[domain.DashboardSummary](ctx, c, "/dashboard/"+url.PathEscape(officeID))
}

// LookupPerson queries the national registry by DNI. Callers gate this on a
// complete 8-digit DNI; a miss is reported as a nil person, not an error.
func (c *Client) LookupPerson(ctx context.Context, dni string) (*domain.Person, error) {
	envelope, err := getData[personEnvelope](ctx, c, "/dashboard/consulta?dni="+url.QueryEscape(dni))
	if err != nil {
		return nil, err
	}
	return envelope.Person, nil
}
