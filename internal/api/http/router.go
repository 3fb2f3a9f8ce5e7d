package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/munivisitas/gateway/internal/api/http/handlers"
	"github.com/munivisitas/gateway/internal/domain"
	"github.com/munivisitas/gateway/internal/session"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

// Tree identifies which route tree a session is allowed to use.
type Tree string

const (
	TreeLogin   Tree = "login"
	TreeAdmin   Tree = "admin"
	TreeStaff   Tree = "staff"
	TreeReduced Tree = "reduced"
)

// TreeFor selects exactly one route tree from the session state. Unknown
// roles get the reduced tree.
func TreeFor(authenticated bool, role domain.Role) Tree {
	if !authenticated {
		return TreeLogin
	}
	switch role {
	case domain.RoleAdministrator:
		return TreeAdmin
	case domain.RoleAssistant:
		return TreeStaff
	default:
		return TreeReduced
	}
}

// RequireTree gates a route group on tree membership. The session is read
// per request, so a login or logout takes effect immediately.
func RequireTree(allowed ...Tree) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tree Tree = TreeLogin
		if store, _, ok := session.FromContext(c); ok {
			rec, authenticated := store.Current()
			tree = TreeFor(authenticated, rec.Role)
		}
		if tree == TreeLogin {
			return apperrors.NewUnauthorized("authentication required")
		}
		for _, t := range allowed {
			if t == tree {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("route not available for this role")
	}
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Session   *session.Middleware
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Sites     *handlers.SitesHandler
	Offices   *handlers.OfficesHandler
	Employees *handlers.EmployeesHandler
	Users     *handlers.UsersHandler
	Visits    *handlers.VisitsHandler
	Dashboard *handlers.DashboardHandler
	Reports   *handlers.ReportsHandler
}

// RegisterRoutes wires the three role trees plus the login tree.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Session.Handle)

	auth := app.Group("/auth")
	auth.Post("/login", cfg.Auth.Login)
	auth.Post("/logout", RequireTree(TreeAdmin, TreeStaff, TreeReduced), cfg.Auth.Logout)
	auth.Get("/session", cfg.Auth.Session)

	admin := app.Group("", RequireTree(TreeAdmin))
	cfg.Sites.Register(admin.Group("/sites"))
	cfg.Offices.Register(admin.Group("/offices"))
	cfg.Users.Register(admin.Group("/users"))
	cfg.Visits.RegisterInspection(admin.Group("/offices/:officeId/visits"))
	cfg.Reports.Register(admin.Group("/reports"))

	staff := app.Group("", RequireTree(TreeStaff))
	cfg.Employees.Register(staff.Group("/employees"))

	shared := app.Group("", RequireTree(TreeStaff, TreeReduced))
	cfg.Visits.Register(shared.Group("/visits"))
	cfg.Dashboard.Register(shared.Group("/dashboard"))
}
