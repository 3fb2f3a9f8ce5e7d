package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/munivisitas/gateway/internal/backend"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

// ReportsHandler proxies the per-office visit report download. The file is
// streamed through; the gateway never buffers it.
type ReportsHandler struct {
	client *backend.Client
	logger *zap.Logger
}

func NewReportsHandler(client *backend.Client, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{client: client, logger: logger}
}

// Download streams the report for an office and date range.
func (h *ReportsHandler) Download(c *fiber.Ctx) error {
	officeID := c.Params("officeId")
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		return apperrors.NewValidationError("invalid form", map[string]any{
			"start": "required",
			"end":   "required",
		})
	}

	resp, err := h.client.DownloadReport(c.UserContext(), officeID, start, end)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get(fiber.HeaderContentType); ct != "" {
		c.Set(fiber.HeaderContentType, ct)
	}
	if cd := resp.Header.Get(fiber.HeaderContentDisposition); cd != "" {
		c.Set(fiber.HeaderContentDisposition, cd)
	}

	if _, err := io.Copy(c.Response().BodyWriter(), resp.Body); err != nil {
		h.logger.Warn("report stream interrupted", zap.String("office_id", officeID), zap.Error(err))
	}
	return nil
}

func (h *ReportsHandler) Register(r fiber.Router) {
	r.Get("/office/:officeId", h.Download)
}
