package domain

// Role is the backend-owned role name attached to a user.
// The backend emits Spanish display names; anything outside the two known
// values is treated as an auxiliary role with a reduced screen set.
type Role string

const (
	RoleAdministrator Role = "Administrador"
	RoleAssistant     Role = "Asistente"
)

// RoleRef is the role record as served by the backend.
type RoleRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
