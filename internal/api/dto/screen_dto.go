package dto

// SearchRequest updates a screen's client-side filter.
type SearchRequest struct {
	Search string `json:"search"`
}

// DialogRequest opens a screen dialog: with an ID for editing, without one
// for creating.
type DialogRequest struct {
	ID string `json:"id,omitempty"`
}
