package forms

import "github.com/munivisitas/gateway/internal/domain"

// OfficeSelector is the dependent site → office selector pair used by the
// office-scoped dialogs.
type OfficeSelector struct {
	SiteID   string          `json:"sedeId"`
	OfficeID string          `json:"officeId"`
	Options  []domain.Office `json:"options"`
}

// WithSite switches the parent site: the dependent office choice is cleared
// and its option set recomputed from the chosen site's children.
func (s OfficeSelector) WithSite(sites []domain.Site, siteID string) OfficeSelector {
	next := OfficeSelector{SiteID: siteID}
	for _, site := range sites {
		if site.ID == siteID {
			next.Options = site.Offices
			break
		}
	}
	return next
}

// WithOffice picks an office among the current options; unknown IDs are
// ignored so a stale choice cannot survive a site switch.
func (s OfficeSelector) WithOffice(officeID string) OfficeSelector {
	for _, office := range s.Options {
		if office.ID == officeID {
			s.OfficeID = officeID
			return s
		}
	}
	return s
}
