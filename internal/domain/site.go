package domain

// Site ("sede") is a municipal building housing offices.
type Site struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Offices []Office `json:"offices,omitempty"`
}
