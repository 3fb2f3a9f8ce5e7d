package forms

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/munivisitas/gateway/internal/backend"
	"github.com/munivisitas/gateway/internal/domain"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

// VisitForm is the visit dialog schema. Check-in and check-out are captured
// as time-of-day strings; for new visits the client clock supplies check-in
// at submission time.
type VisitForm struct {
	DNI           string `json:"dni" validate:"required,len=8,numeric"`
	VisitorName   string `json:"name" validate:"required"`
	Entity        string `json:"entity" validate:"required"`
	Reason        string `json:"reason" validate:"required"`
	EmployeeID    string `json:"functionaryId" validate:"required"`
	CheckInClock  string `json:"check_in_time,omitempty"`
	CheckOutClock string `json:"check_out_time,omitempty"`
	PhotoDataURL  string `json:"photo,omitempty"`
}

// VisitFormFrom pre-populates the dialog from a selected visit, rendering
// timestamps as editable time-of-day values.
func VisitFormFrom(v domain.Visit) VisitForm {
	form := VisitForm{
		DNI:         v.DNI,
		VisitorName: v.VisitorName,
		Entity:      v.Entity,
		Reason:      v.Reason,
	}
	if v.Employee != nil {
		form.EmployeeID = v.Employee.ID
	}
	if !v.CheckInTime.IsZero() {
		form.CheckInClock = v.CheckInTime.Format("15:04:05")
	}
	if v.CheckOutTime != nil {
		form.CheckOutClock = v.CheckOutTime.Format("15:04:05")
	}
	return form
}

// ShouldLookup gates the registry enrichment: exactly eight digits.
func ShouldLookup(dni string) bool {
	if len(dni) != 8 {
		return false
	}
	for _, r := range dni {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CombineClock merges a time-of-day string with the current date.
func CombineClock(now time.Time, clock string) (time.Time, error) {
	layouts := []string{"15:04:05", "15:04"}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		return time.Date(now.Year(), now.Month(), now.Day(),
			parsed.Hour(), parsed.Minute(), parsed.Second(), 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q", clock)
}

// DecodePhotoDataURL turns a captured data URL into a binary attachment.
func DecodePhotoDataURL(dataURL string) (*backend.PhotoAttachment, error) {
	if dataURL == "" {
		return nil, nil
	}
	header, encoded, found := strings.Cut(dataURL, ",")
	if !found || !strings.HasPrefix(header, "data:") {
		return nil, fmt.Errorf("invalid data url")
	}
	mimeType := strings.TrimPrefix(header, "data:")
	mimeType = strings.TrimSuffix(mimeType, ";base64")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	return &backend.PhotoAttachment{FileName: "photo.jpg", MIME: mimeType, Data: data}, nil
}

// Payload validates the form and assembles the multipart body. isEdit
// switches check-in from the client clock to the edited time-of-day, and
// enables check-out editing.
func (f VisitForm) Payload(now time.Time, registeredByID string, isEdit bool) (backend.VisitPayload, error) {
	if err := Validate(f); err != nil {
		return backend.VisitPayload{}, err
	}
	if !domain.ValidReason(f.Reason) {
		return backend.VisitPayload{}, apperrors.NewValidationError("invalid form", map[string]any{"Reason": "oneof"})
	}

	payload := backend.VisitPayload{
		VisitorName:    f.VisitorName,
		DNI:            f.DNI,
		Entity:         f.Entity,
		Reason:         f.Reason,
		EmployeeID:     f.EmployeeID,
		RegisteredByID: registeredByID,
		CheckInTime:    now,
	}

	if isEdit {
		if f.CheckInClock == "" {
			return backend.VisitPayload{}, apperrors.NewValidationError("invalid form", map[string]any{"CheckInClock": "required"})
		}
		checkIn, err := CombineClock(now, f.CheckInClock)
		if err != nil {
			return backend.VisitPayload{}, apperrors.NewValidationError("invalid form", map[string]any{"CheckInClock": "timeofday"})
		}
		payload.CheckInTime = checkIn

		if f.CheckOutClock != "" {
			checkOut, err := CombineClock(now, f.CheckOutClock)
			if err != nil {
				return backend.VisitPayload{}, apperrors.NewValidationError("invalid form", map[string]any{"CheckOutClock": "timeofday"})
			}
			if checkOut.Before(checkIn) {
				return backend.VisitPayload{}, apperrors.NewValidationError("invalid form", map[string]any{"CheckOutClock": "after_check_in"})
			}
			payload.CheckOutTime = &checkOut
		}
	}

	photo, err := DecodePhotoDataURL(f.PhotoDataURL)
	if err != nil {
		return backend.VisitPayload{}, apperrors.NewValidationError("invalid form", map[string]any{"PhotoDataURL": "dataurl"})
	}
	payload.Photo = photo

	return payload, nil
}
