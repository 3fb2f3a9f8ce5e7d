// Package handlers exposes the gateway's HTTP surface: one generic screen
// handler reused by every entity list, plus the auth, dashboard, and report
// endpoints that fall outside the list workflow.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/munivisitas/gateway/internal/api/dto"
	"github.com/munivisitas/gateway/internal/listing"
	"github.com/munivisitas/gateway/internal/session"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

// ParseFunc turns a request body into the entity's backend payload. The
// editing flag lets schemas relax rules that only apply on create, such as
// a staff account's password.
type ParseFunc[P any] func(c *fiber.Ctx, editing bool) (P, error)

// KeyFunc derives the registry key for the request, binding screen state to
// the session and, for scoped screens, to an office.
type KeyFunc func(c *fiber.Ctx) (string, error)

// Screen adapts one listing controller registry to HTTP. Every endpoint
// responds with the full screen snapshot so the client never has to merge
// partial state.
type Screen[E, P any] struct {
	registry *listing.Registry[E, P]
	parse    ParseFunc[P]
	key      KeyFunc
}

// NewScreen builds a screen handler. A nil key binds state per session.
func NewScreen[E, P any](registry *listing.Registry[E, P], parse ParseFunc[P], key KeyFunc) *Screen[E, P] {
	if key == nil {
		key = SessionKey
	}
	return &Screen[E, P]{registry: registry, parse: parse, key: key}
}

// SessionKey keys screen state by session ID alone.
func SessionKey(c *fiber.Ctx) (string, error) {
	_, id, ok := session.FromContext(c)
	if !ok || id == "" {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	return id, nil
}

// OfficeKey keys screen state by session and the session's office.
func OfficeKey(c *fiber.Ctx) (string, error) {
	store, id, ok := session.FromContext(c)
	if !ok || id == "" {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	rec, _ := store.Current()
	if rec.OfficeID == "" {
		return "", apperrors.NewForbidden("no office assigned to this account")
	}
	return id + "|" + rec.OfficeID, nil
}

// ParamOfficeKey keys screen state by session and a path office parameter,
// used when an administrator inspects an arbitrary office.
func ParamOfficeKey(param string) KeyFunc {
	return func(c *fiber.Ctx) (string, error) {
		_, id, ok := session.FromContext(c)
		if !ok || id == "" {
			return "", apperrors.NewUnauthorized("authentication required")
		}
		officeID := c.Params(param)
		if officeID == "" {
			return "", apperrors.NewValidationError("missing office id", nil)
		}
		return id + "|" + officeID, nil
	}
}

func (s *Screen[E, P]) controller(c *fiber.Ctx) (*listing.Controller[E, P], error) {
	key, err := s.key(c)
	if err != nil {
		return nil, err
	}
	return s.registry.For(key), nil
}

func (s *Screen[E, P]) respond(c *fiber.Ctx, ctrl *listing.Controller[E, P]) error {
	return c.JSON(ctrl.Snapshot())
}

// List syncs pagination from the query and fetches the current page. A
// fetch failure still renders the previous items; the snapshot's status
// carries the retry hint.
func (s *Screen[E, P]) List(c *fiber.Ctx) error {
	ctrl, err := s.controller(c)
	if err != nil {
		return err
	}
	if size := c.QueryInt("pageSize"); size > 0 {
		ctrl.SetPageSize(size)
	}
	if page := c.QueryInt("page"); page > 0 {
		ctrl.SetPage(page)
	}
	_ = ctrl.Load(c.UserContext())
	return s.respond(c, ctrl)
}

// Search updates the client-side filter. No backend request is made; the
// filter narrows the already-loaded page.
func (s *Screen[E, P]) Search(c *fiber.Ctx) error {
	ctrl, err := s.controller(c)
	if err != nil {
		return err
	}
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("malformed body", nil)
	}
	ctrl.SetSearchText(req.Search)
	return s.respond(c, ctrl)
}

// OpenDialog opens the dialog: with an ID it selects the loaded record for
// editing, without one it prepares a blank create.
func (s *Screen[E, P]) OpenDialog(c *fiber.Ctx) error {
	ctrl, err := s.controller(c)
	if err != nil {
		return err
	}
	var req dto.DialogRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("malformed body", nil)
	}
	if req.ID == "" {
		ctrl.OpenCreate()
		return s.respond(c, ctrl)
	}
	record, ok := ctrl.Find(req.ID)
	if !ok {
		return apperrors.NewNotFound("record", map[string]any{"id": req.ID})
	}
	ctrl.OpenEdit(record)
	return s.respond(c, ctrl)
}

// CloseDialog dismisses the dialog and clears the selection.
func (s *Screen[E, P]) CloseDialog(c *fiber.Ctx) error {
	ctrl, err := s.controller(c)
	if err != nil {
		return err
	}
	ctrl.CloseDialog()
	return s.respond(c, ctrl)
}

// Submit validates the dialog body and runs create or update depending on
// the selection. A submission while another mutation is running is rejected
// with 429; backend failures surface as the snapshot's status message.
func (s *Screen[E, P]) Submit(c *fiber.Ctx) error {
	ctrl, err := s.controller(c)
	if err != nil {
		return err
	}
	_, editing := ctrl.Selected()
	payload, err := s.parse(c, editing)
	if err != nil {
		return err
	}
	if err := ctrl.SubmitDialog(c.UserContext(), payload); err != nil {
		if errors.Is(err, listing.ErrMutationInFlight) {
			return apperrors.NewTooManyRequests("another operation is still running")
		}
		// Refetch failed after a successful write; the status says so.
	}
	return s.respond(c, ctrl)
}

// Remove deletes the record and refetches the page.
func (s *Screen[E, P]) Remove(c *fiber.Ctx) error {
	ctrl, err := s.controller(c)
	if err != nil {
		return err
	}
	if err := ctrl.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, listing.ErrMutationInFlight) {
			return apperrors.NewTooManyRequests("another operation is still running")
		}
	}
	return s.respond(c, ctrl)
}

// Register mounts the screen workflow on the router. The delete-by-ID route
// goes last so named subroutes keep precedence.
func (s *Screen[E, P]) Register(r fiber.Router) {
	r.Get("/", s.List)
	r.Post("/search", s.Search)
	r.Post("/dialog", s.OpenDialog)
	r.Delete("/dialog", s.CloseDialog)
	r.Post("/submit", s.Submit)
	r.Delete("/:id", s.Remove)
}

// DropSession discards the session's screen state on logout.
func (s *Screen[E, P]) DropSession(sessionID string) {
	s.registry.DropSession(sessionID)
}
