package domain

// User is an office staff account able to log into the gateway. The login
// handle is unique; the backend reports a duplicate as a conflict.
type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	LoginHandle string   `json:"user"`
	Role        *RoleRef `json:"role,omitempty"`
	Office      *Office  `json:"office,omitempty"`
}
