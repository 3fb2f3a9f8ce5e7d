package domain

import "time"

// VisitReason enumerates the accepted reasons for a visit.
var VisitReasons = []string{
	"Reunión de Trabajo",
	"Motivos Académicos",
	"Entrega de Documentos",
}

// Visit records one visitor entering an office. A visit is open until a
// checkout timestamp is set; when present it is never before check-in.
type Visit struct {
	ID           string     `json:"id"`
	VisitorName  string     `json:"name"`
	DNI          string     `json:"dni"`
	Entity       string     `json:"entity,omitempty"`
	Reason       string     `json:"reason"`
	Description  string     `json:"description,omitempty"`
	PhotoRef     string     `json:"visit_url,omitempty"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	Employee     *Employee  `json:"functionary,omitempty"`
	RegisteredBy *User      `json:"registeredBy,omitempty"`
}

// Open reports whether the visitor is still inside.
func (v Visit) Open() bool {
	return v.CheckOutTime == nil
}

// ValidReason reports membership in the accepted reason set.
func ValidReason(reason string) bool {
	for _, r := range VisitReasons {
		if r == reason {
			return true
		}
	}
	return false
}
