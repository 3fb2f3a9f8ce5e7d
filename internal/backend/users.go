package backend

import (
	"context"
	"net/http"

	"github.com/munivisitas/gateway/internal/domain"
)

// UserPayload is the create/update body for staff accounts. Password is
// omitted on updates that do not change it.
type UserPayload struct {
	Name     string `json:"name"`
	Handle   string `json:"user"`
	Password string `json:"password_hash,omitempty"`
	RoleID   string `json:"roleId"`
	OfficeID string `json:"officeId"`
}

type loginRequest struct {
	Handle   string `json:"user"`
	Password string `json:"password_hash"`
}

// UsersPage returns one page of staff accounts.
func (c *Client) UsersPage(ctx context.Context, page, limit int) (Page[domain.User], error) {
	return getPaged[domain.User](ctx, c, "/users/filter", page, limit)
}

func (c *Client) CreateUser(ctx context.Context, payload UserPayload) error {
	return c.send(ctx, http.MethodPost, "/users", payload)
}

func (c *Client) UpdateUser(ctx context.Context, id string, payload UserPayload) error {
	return c.send(ctx, http.MethodPut, "/users/"+id, payload)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/users/"+id, nil)
}

// Login verifies credentials against the backend and returns the account
// with its role and office references resolved.
func (c *Client) Login(ctx context.Context, handle, password string) (domain.User, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/users/login", loginRequest{Handle: handle, Password: password})
	if err != nil {
		return domain.User{}, err
	}
	return decodeInto[domain.User](resp)
}

// Roles returns the fixed role enumeration.
func (c *Client) Roles(ctx context.Context) ([]domain.RoleRef, error) {
	return getData[[]domain.RoleRef](ctx, c, "/roles")
}
