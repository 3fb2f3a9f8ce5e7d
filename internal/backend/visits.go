package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/munivisitas/gateway/internal/domain"
)

// PhotoAttachment is a visitor photo captured as binary data.
type PhotoAttachment struct {
	FileName string
	MIME     string
	Data     []byte
}

// VisitPayload is the create/update body for visits. It is sent as a
// multipart form because of the optional photo part.
type VisitPayload struct {
	VisitorName    string
	DNI            string
	Entity         string
	Reason         string
	CheckInTime    time.Time
	CheckOutTime   *time.Time
	EmployeeID     string
	RegisteredByID string
	Photo          *PhotoAttachment
}

func encodeVisitForm(payload VisitPayload) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	fields := map[string]string{
		"name":          payload.VisitorName,
		"dni":           payload.DNI,
		"entity":        payload.Entity,
		"reason":        payload.Reason,
		"check_in_time": payload.CheckInTime.Format(time.RFC3339),
	}
	if payload.CheckOutTime != nil {
		fields["check_out_time"] = payload.CheckOutTime.Format(time.RFC3339)
	}
	if payload.EmployeeID != "" {
		fields["functionaryId"] = payload.EmployeeID
	}
	if payload.RegisteredByID != "" {
		fields["registeredById"] = payload.RegisteredByID
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if payload.Photo != nil {
		part, err := writer.CreateFormFile("photo", payload.Photo.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create photo part: %w", err)
		}
		if _, err := part.Write(payload.Photo.Data); err != nil {
			return nil, "", fmt.Errorf("write photo part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}

// VisitsPage returns one page of visits for the office.
func (c *Client) VisitsPage(ctx context.Context, officeID string, page, limit int) (Page[domain.Visit], error) {
	return getPaged[domain.Visit](ctx, c, "/visits/filter/"+url.PathEscape(officeID), page, limit)
}

// PendingVisitsPage returns one page of still-open visits for the office.
func (c *Client) PendingVisitsPage(ctx context.Context, officeID string, page, limit int) (Page[domain.Visit], error) {
	return getPaged[domain.Visit](ctx, c, "/visits/filter/pending/"+url.PathEscape(officeID), page, limit)
}

func (c *Client) CreateVisit(ctx context.Context, payload VisitPayload) error {
	return c.sendVisit(ctx, http.MethodPost, "/visits", payload)
}

func (c *Client) UpdateVisit(ctx context.Context, id string, payload VisitPayload) error {
	return c.sendVisit(ctx, http.MethodPut, "/visits/"+id, payload)
}

func (c *Client) sendVisit(ctx context.Context, method, path string, payload VisitPayload) error {
	body, contentType, err := encodeVisitForm(payload)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// CheckOutVisit sets the checkout timestamp only, closing the visit.
func (c *Client) CheckOutVisit(ctx context.Context, id string, at time.Time) error {
	payload := map[string]string{"check_out_time": at.Format(time.RFC3339)}
	return c.send(ctx, http.MethodPut, "/visits/check/"+id, payload)
}

func (c *Client) DeleteVisit(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/visits/"+id, nil)
}
