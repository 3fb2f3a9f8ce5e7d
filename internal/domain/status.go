package domain

// StatusKind is the closed set of transient status message kinds.
type StatusKind string

const (
	StatusKindSuccess StatusKind = "success"
	StatusKindError   StatusKind = "error"
	StatusKindInfo    StatusKind = "info"
)

// StatusMessage is a transient, user-visible outcome of an operation.
type StatusMessage struct {
	Kind  StatusKind `json:"kind"`
	Title string     `json:"title"`
	Body  string     `json:"body"`
}

// SuccessStatus builds a success message with the standard title.
func SuccessStatus(body string) StatusMessage {
	return StatusMessage{Kind: StatusKindSuccess, Title: "Operación exitosa", Body: body}
}

// ErrorStatus builds an error message with the standard title.
func ErrorStatus(body string) StatusMessage {
	return StatusMessage{Kind: StatusKindError, Title: "Ocurrió un error", Body: body}
}

// InfoStatus builds an informational message with the standard title.
func InfoStatus(body string) StatusMessage {
	return StatusMessage{Kind: StatusKindInfo, Title: "Advertencia", Body: body}
}
