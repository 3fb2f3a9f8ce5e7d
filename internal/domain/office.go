package domain

// Office belongs to exactly one site.
type Office struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Floor string `json:"floor"`
	Site  *Site  `json:"sede,omitempty"`
}
