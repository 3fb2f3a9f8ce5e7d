package domain

import "strings"

// DashboardSummary carries the per-office counters shown on the home screen.
type DashboardSummary struct {
	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	OpenCount int `json:"openVisits"`
	Employees int `json:"employees"`
}

// Person is the national-registry record returned by the DNI lookup.
type Person struct {
	FirstSurname  string `json:"apPrimer"`
	SecondSurname string `json:"apSegundo"`
	GivenNames    string `json:"prenombres"`
	Photo         string `json:"foto,omitempty"`
}

// FullName assembles the display name the way the registry orders it.
func (p Person) FullName() string {
	parts := []string{p.FirstSurname, p.SecondSurname, p.GivenNames}
	joined := strings.Join(parts, " ")
	return strings.Join(strings.Fields(joined), " ")
}
