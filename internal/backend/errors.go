package backend

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/munivisitas/gateway/pkg/util"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// mapStatusError translates a backend failure status into the gateway's
// error taxonomy. The body, when parseable, only refines the message.
func mapStatusError(status int, payload []byte) error {
	message := http.StatusText(status)
	var body errorBody
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Message != "" {
			message = body.Message
		} else if body.Error != "" {
			message = body.Error
		}
	}

	switch status {
	case http.StatusBadRequest:
		return apperrors.NewValidationError(message, nil)
	case http.StatusUnauthorized:
		return apperrors.NewUnauthorized(message)
	case http.StatusForbidden:
		return apperrors.NewForbidden(message)
	case http.StatusNotFound:
		return apperrors.NewNotFound("resource", nil)
	case http.StatusConflict:
		return apperrors.NewConflict(message, nil)
	default:
		return apperrors.NewUpstreamError(status, errors.New(message))
	}
}
