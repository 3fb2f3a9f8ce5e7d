package domain

// Employee ("functionary") is a public official visitors come to see.
// Belongs to exactly one office.
type Employee struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Office *Office `json:"office,omitempty"`
}
