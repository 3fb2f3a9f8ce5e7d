package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/munivisitas/gateway/internal/domain"
	"github.com/munivisitas/gateway/internal/session"
)

func TestTreeFor(t *testing.T) {
	cases := []struct {
		name          string
		authenticated bool
		role          domain.Role
		want          Tree
	}{
		{"anonymous", false, "", TreeLogin},
		{"anonymous ignores role", false, domain.RoleAdministrator, TreeLogin},
		{"administrator", true, domain.RoleAdministrator, TreeAdmin},
		{"assistant", true, domain.RoleAssistant, TreeStaff},
		{"unknown role", true, "Practicante", TreeReduced},
		{"empty role", true, "", TreeReduced},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, TreeFor(tc.authenticated, tc.role))
		})
	}
}

func newGatedApp(rec *domain.Session) *fiber.App {
	app := fiber.New()
	app.Use(errorHandlingMiddleware(zap.NewNop(), nil))
	app.Use(func(c *fiber.Ctx) error {
		if rec != nil {
			session.Seed(c, session.NewStoreFrom(*rec), "sess-1")
		}
		return c.Next()
	})
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/admin-only", RequireTree(TreeAdmin), ok)
	app.Get("/staff-only", RequireTree(TreeStaff), ok)
	app.Get("/shared", RequireTree(TreeStaff, TreeReduced), ok)
	return app
}

func TestRequireTreeAnonymous(t *testing.T) {
	app := newGatedApp(nil)
	for _, path := range []string{"/admin-only", "/staff-only", "/shared"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRequireTreeRoleBoundaries(t *testing.T) {
	admin := &domain.Session{UserID: "u1", Role: domain.RoleAdministrator}
	assistant := &domain.Session{UserID: "u2", Role: domain.RoleAssistant}
	unknown := &domain.Session{UserID: "u3", Role: "Practicante"}

	cases := []struct {
		name string
		rec  *domain.Session
		path string
		want int
	}{
		{"admin reaches admin tree", admin, "/admin-only", fiber.StatusOK},
		{"admin blocked from staff tree", admin, "/staff-only", fiber.StatusForbidden},
		{"admin blocked from shared tree", admin, "/shared", fiber.StatusForbidden},
		{"assistant blocked from admin tree", assistant, "/admin-only", fiber.StatusForbidden},
		{"assistant reaches staff tree", assistant, "/staff-only", fiber.StatusOK},
		{"assistant reaches shared tree", assistant, "/shared", fiber.StatusOK},
		{"unknown role blocked from staff tree", unknown, "/staff-only", fiber.StatusForbidden},
		{"unknown role reaches shared tree", unknown, "/shared", fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newGatedApp(tc.rec)
			resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
			require.NoError(t, err)
			require.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRequireTreeAnonymousRecordIsLoginTree(t *testing.T) {
	// A seeded store holding a zero record must still gate as anonymous.
	app := newGatedApp(&domain.Session{})
	resp, err := app.Test(httptest.NewRequest("GET", "/shared", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
