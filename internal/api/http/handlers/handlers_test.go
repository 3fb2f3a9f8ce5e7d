package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/munivisitas/gateway/internal/backend"
	"github.com/munivisitas/gateway/internal/config"
	"github.com/munivisitas/gateway/internal/domain"
	"github.com/munivisitas/gateway/internal/listing"
	"github.com/munivisitas/gateway/internal/observability"
	"github.com/munivisitas/gateway/internal/session"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

func newBackendClient(t *testing.T, handler http.Handler) *backend.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := config.BackendConfig{
		BaseURL:        server.URL + "/api/v1",
		UploadBaseURL:  server.URL,
		TimeoutSeconds: 5,
		RetryAttempts:  0,
	}
	return backend.NewClient(cfg, zap.NewNop(), observability.NewMetrics())
}

// newApp builds a fiber app with the session pre-seeded, the way the cookie
// middleware would hydrate it in production.
func newApp(rec domain.Session, register func(app *fiber.App)) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})
	app.Use(func(c *fiber.Ctx) error {
		if rec.Authenticated() {
			session.Seed(c, session.NewStoreFrom(rec), "sess-1")
		}
		return c.Next()
	})
	register(app)
	return app
}

func assistantSession() domain.Session {
	return domain.Session{
		UserID:     "u-7",
		Role:       domain.RoleAssistant,
		Name:       "Rosa Mamani",
		OfficeID:   "off-1",
		OfficeName: "Mesa de Partes",
	}
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeSnapshot[E any](t *testing.T, resp *http.Response) listing.Snapshot[E] {
	t.Helper()
	var snap listing.Snapshot[E]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	return snap
}

func TestSitesScreenListAndCreate(t *testing.T) {
	var created backend.SitePayload
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/sedes/filter":
			_, _ = w.Write([]byte(`{"data":{"data":[{"id":"s1","name":"Sede Central","address":"Av. Principal 100"}],"total":1}}`))
		case r.URL.Path == "/api/v1/sedes" && r.Method == http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))

	handler := NewSitesHandler(client, zap.NewNop())
	app := newApp(domain.Session{UserID: "adm", Role: domain.RoleAdministrator}, func(app *fiber.App) {
		handler.Register(app.Group("/sites"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/sites/?page=1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	snap := decodeSnapshot[domain.Site](t, resp)
	require.Len(t, snap.Items, 1)
	require.Equal(t, 1, snap.TotalCount)

	resp, err = app.Test(jsonRequest("POST", "/sites/dialog", map[string]string{}))
	require.NoError(t, err)
	snap = decodeSnapshot[domain.Site](t, resp)
	require.True(t, snap.DialogOpen)
	require.Nil(t, snap.Selected)

	resp, err = app.Test(jsonRequest("POST", "/sites/submit", map[string]string{
		"name":    "Sede Norte",
		"address": "Jr. Lima 220",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	snap = decodeSnapshot[domain.Site](t, resp)
	require.False(t, snap.DialogOpen)
	require.NotNil(t, snap.Status)
	require.Equal(t, domain.StatusKindSuccess, snap.Status.Kind)
	require.Equal(t, "Sede Norte", created.Name)
}

func TestSitesSubmitRejectsInvalidForm(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/sedes/filter" {
			_, _ = w.Write([]byte(`{"data":{"data":[],"total":0}}`))
			return
		}
		t.Fatalf("mutation must not reach the backend: %s %s", r.Method, r.URL.Path)
	}))

	handler := NewSitesHandler(client, zap.NewNop())
	app := newApp(domain.Session{UserID: "adm", Role: domain.RoleAdministrator}, func(app *fiber.App) {
		handler.Register(app.Group("/sites"))
	})

	resp, err := app.Test(jsonRequest("POST", "/sites/submit", map[string]string{"name": "Solo nombre"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestScreenRequiresSession(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("anonymous request must not reach the backend")
	}))

	handler := NewSitesHandler(client, zap.NewNop())
	app := newApp(domain.Session{}, func(app *fiber.App) {
		handler.Register(app.Group("/sites"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/sites/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUsersCreateRequiresPassword(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/users/filter" {
			_, _ = w.Write([]byte(`{"data":{"data":[],"total":0}}`))
			return
		}
		t.Fatalf("create without password must not reach the backend")
	}))

	handler := NewUsersHandler(client, zap.NewNop())
	app := newApp(domain.Session{UserID: "adm", Role: domain.RoleAdministrator}, func(app *fiber.App) {
		handler.Register(app.Group("/users"))
	})

	resp, err := app.Test(jsonRequest("POST", "/users/submit", map[string]string{
		"name":     "Nuevo Usuario",
		"user":     "nuevo@muni.gob.pe",
		"roleId":   "r1",
		"officeId": "off-1",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUsersDuplicateHandleIsInformational(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/users/filter":
			_, _ = w.Write([]byte(`{"data":{"data":[],"total":0}}`))
		case r.URL.Path == "/api/v1/users" && r.Method == http.MethodPost:
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"duplicate"}`))
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))

	handler := NewUsersHandler(client, zap.NewNop())
	app := newApp(domain.Session{UserID: "adm", Role: domain.RoleAdministrator}, func(app *fiber.App) {
		handler.Register(app.Group("/users"))
	})

	resp, err := app.Test(jsonRequest("POST", "/users/submit", map[string]string{
		"name":          "Nuevo Usuario",
		"user":          "repetido@muni.gob.pe",
		"password_hash": "secreto",
		"roleId":        "r1",
		"officeId":      "off-1",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	snap := decodeSnapshot[domain.User](t, resp)
	require.NotNil(t, snap.Status)
	require.Equal(t, domain.StatusKindInfo, snap.Status.Kind)
}

func TestEmployeesScopedToSessionOffice(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/functionaries/filter/off-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"data":[{"id":"f1","name":"Carlos Quispe"}],"total":1}}`))
	}))

	handler := NewEmployeesHandler(client, zap.NewNop())
	app := newApp(assistantSession(), func(app *fiber.App) {
		handler.Register(app.Group("/employees"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/employees/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	snap := decodeSnapshot[domain.Employee](t, resp)
	require.Len(t, snap.Items, 1)
}

func TestPendingCheckoutHitsCheckEndpoint(t *testing.T) {
	var checkedOut bool
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/visits/filter/pending/off-1":
			_, _ = w.Write([]byte(`{"data":{"data":[{"id":"v1","name":"Ana Torres","dni":"12345678","reason":"Reunión de Trabajo","check_in_time":"2026-08-31T09:00:00Z"}],"total":1}}`))
		case r.URL.Path == "/api/v1/visits/check/v1" && r.Method == http.MethodPut:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.NotEmpty(t, body["check_out_time"])
			checkedOut = true
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))

	handler := NewVisitsHandler(client, zap.NewNop())
	app := newApp(assistantSession(), func(app *fiber.App) {
		handler.Register(app.Group("/visits"))
	})

	resp, err := app.Test(jsonRequest("POST", "/visits/pending/v1/checkout", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, checkedOut)
	snap := decodeSnapshot[domain.Visit](t, resp)
	require.NotNil(t, snap.Status)
	require.Equal(t, domain.StatusKindSuccess, snap.Status.Kind)
}

func TestVisitSubmitCreatesMultipart(t *testing.T) {
	var gotRegisteredBy string
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/visits/filter/off-1":
			_, _ = w.Write([]byte(`{"data":{"data":[],"total":0}}`))
		case r.URL.Path == "/api/v1/visits" && r.Method == http.MethodPost:
			require.NoError(t, r.ParseMultipartForm(1<<20))
			require.Equal(t, "Ana Torres", r.FormValue("name"))
			require.Equal(t, "12345678", r.FormValue("dni"))
			gotRegisteredBy = r.FormValue("registeredById")
			w.WriteHeader(http.StatusCreated)
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))

	handler := NewVisitsHandler(client, zap.NewNop())
	app := newApp(assistantSession(), func(app *fiber.App) {
		handler.Register(app.Group("/visits"))
	})

	resp, err := app.Test(jsonRequest("POST", "/visits/submit", map[string]string{
		"dni":           "12345678",
		"name":          "Ana Torres",
		"entity":        "UNSA",
		"reason":        "Reunión de Trabajo",
		"functionaryId": "f1",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "u-7", gotRegisteredBy)
}

func TestVisitSubmitRejectsUnknownReason(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/visits/filter/off-1" {
			_, _ = w.Write([]byte(`{"data":{"data":[],"total":0}}`))
			return
		}
		t.Fatalf("invalid reason must not reach the backend")
	}))

	handler := NewVisitsHandler(client, zap.NewNop())
	app := newApp(assistantSession(), func(app *fiber.App) {
		handler.Register(app.Group("/visits"))
	})

	resp, err := app.Test(jsonRequest("POST", "/visits/submit", map[string]string{
		"dni":           "12345678",
		"name":          "Ana Torres",
		"entity":        "UNSA",
		"reason":        "Paseo",
		"functionaryId": "f1",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInspectionListUsesPathOffice(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/visits/filter/off-9", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"data":[],"total":0}}`))
	}))

	handler := NewVisitsHandler(client, zap.NewNop())
	app := newApp(domain.Session{UserID: "adm", Role: domain.RoleAdministrator}, func(app *fiber.App) {
		handler.RegisterInspection(app.Group("/offices/:officeId/visits"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/offices/off-9/visits/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOfficeDialogCarriesFlattenedForm(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/offices/filter", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"data":[{"id":"o1","name":"Mesa de Partes","floor":"2","sede":{"id":"s1","name":"Sede Central"}}],"total":1}}`))
	}))

	handler := NewOfficesHandler(client, zap.NewNop())
	app := newApp(domain.Session{UserID: "adm", Role: domain.RoleAdministrator}, func(app *fiber.App) {
		handler.Register(app.Group("/offices"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/offices/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/offices/dialog", map[string]string{"id": "o1"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	snap := decodeSnapshot[domain.Office](t, resp)
	require.True(t, snap.DialogOpen)
	form, ok := snap.Form.(map[string]any)
	require.True(t, ok, "edit dialog must carry the flattened form")
	require.Equal(t, "Mesa de Partes", form["name"])
	require.Equal(t, "2", form["floor"])
	require.Equal(t, "s1", form["sedeId"], "nested sede reference flattened to its ID")

	// A create dialog has nothing to pre-populate.
	resp, err = app.Test(jsonRequest("POST", "/offices/dialog", map[string]string{}))
	require.NoError(t, err)
	snap = decodeSnapshot[domain.Office](t, resp)
	require.True(t, snap.DialogOpen)
	require.Nil(t, snap.Form)
}

func TestVisitListResolvesPhotoAgainstUploadHost(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/visits/filter/off-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"data":[{"id":"v1","name":"Ana Torres","dni":"12345678","reason":"Reunión de Trabajo","visit_url":"uploads/v1.jpg","check_in_time":"2026-08-31T09:00:00Z"},{"id":"v2","name":"Luis Rojas","dni":"87654321","reason":"Entrega de Documentos","check_in_time":"2026-08-31T10:00:00Z"}],"total":2}}`))
	}))

	handler := NewVisitsHandler(client, zap.NewNop())
	app := newApp(assistantSession(), func(app *fiber.App) {
		handler.Register(app.Group("/visits"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/visits/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	snap := decodeSnapshot[domain.Visit](t, resp)
	require.Len(t, snap.Items, 2)
	require.True(t, strings.HasPrefix(snap.Items[0].PhotoRef, "http"),
		"photo reference resolved against the upload host")
	require.True(t, strings.HasSuffix(snap.Items[0].PhotoRef, "/uploads/v1.jpg"))
	require.Empty(t, snap.Items[1].PhotoRef, "a visit without a photo stays empty")
}

func TestPendingListKeepsOnlyOpenVisits(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/visits/filter/pending/off-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"data":[{"id":"v1","name":"Ana Torres","dni":"12345678","reason":"Reunión de Trabajo","check_in_time":"2026-08-31T09:00:00Z"},{"id":"v2","name":"Luis Rojas","dni":"87654321","reason":"Entrega de Documentos","check_in_time":"2026-08-31T08:00:00Z","check_out_time":"2026-08-31T08:30:00Z"}],"total":2}}`))
	}))

	handler := NewVisitsHandler(client, zap.NewNop())
	app := newApp(assistantSession(), func(app *fiber.App) {
		handler.Register(app.Group("/visits"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/visits/pending/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	snap := decodeSnapshot[domain.Visit](t, resp)
	require.Len(t, snap.Items, 1, "an already checked-out row never reaches the checkout screen")
	require.Equal(t, "v1", snap.Items[0].ID)
}

func TestDashboardLookupGatesShortDNI(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("incomplete DNI must not reach the backend")
	}))

	handler := NewDashboardHandler(client, zap.NewNop())
	app := newApp(assistantSession(), func(app *fiber.App) {
		handler.Register(app.Group("/dashboard"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard/consulta?dni=1234", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Nil(t, body["person"])
}

func TestDashboardLookupSwallowsUpstreamFailure(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/dashboard/consulta", r.URL.Path)
		w.WriteHeader(http.StatusBadGateway)
	}))

	handler := NewDashboardHandler(client, zap.NewNop())
	app := newApp(assistantSession(), func(app *fiber.App) {
		handler.Register(app.Group("/dashboard"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard/consulta?dni=12345678", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Nil(t, body["person"])
}

func TestDashboardSummaryUsesSessionOffice(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/dashboard/off-1", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"today":4,"thisWeek":12,"openVisits":2,"employees":7}}`))
	}))

	handler := NewDashboardHandler(client, zap.NewNop())
	app := newApp(assistantSession(), func(app *fiber.App) {
		handler.Register(app.Group("/dashboard"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/dashboard/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var summary domain.DashboardSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	require.Equal(t, 4, summary.Today)
}

func TestReportDownloadStreamsHeadersAndBody(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/report/office/off-1", r.URL.Path)
		require.Equal(t, "2026-08-01", r.URL.Query().Get("start"))
		require.Equal(t, "2026-08-31", r.URL.Query().Get("end"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="reporte.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.7 ..."))
	}))

	handler := NewReportsHandler(client, zap.NewNop())
	app := newApp(domain.Session{UserID: "adm", Role: domain.RoleAdministrator}, func(app *fiber.App) {
		handler.Register(app.Group("/reports"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/office/off-1?start=2026-08-01&end=2026-08-31", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "reporte.pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "%PDF")
}

func TestReportDownloadRequiresRange(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("missing range must not reach the backend")
	}))

	handler := NewReportsHandler(client, zap.NewNop())
	app := newApp(domain.Session{UserID: "adm", Role: domain.RoleAdministrator}, func(app *fiber.App) {
		handler.Register(app.Group("/reports"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/office/off-1", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/users/login", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	tokens := session.NewTokenManager("test-secret", 0)
	handler := NewAuthHandler(client, nil, tokens, "munivisitas_session", func(bool, domain.Role) string { return "login" }, zap.NewNop())
	app := newApp(domain.Session{}, func(app *fiber.App) {
		app.Post("/auth/login", handler.Login)
	})

	resp, err := app.Test(jsonRequest("POST", "/auth/login", map[string]string{
		"user":          "rosa@muni.gob.pe",
		"password_hash": "incorrecta",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionEndpointReportsTree(t *testing.T) {
	client := newBackendClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("session introspection must not call the backend")
	}))

	treeName := func(authenticated bool, role domain.Role) string {
		if !authenticated {
			return "login"
		}
		if role == domain.RoleAdministrator {
			return "admin"
		}
		return "reduced"
	}
	tokens := session.NewTokenManager("test-secret", 0)
	handler := NewAuthHandler(client, nil, tokens, "munivisitas_session", treeName, zap.NewNop())

	app := newApp(domain.Session{UserID: "adm", Role: domain.RoleAdministrator, Name: "Admin"}, func(app *fiber.App) {
		app.Get("/auth/session", handler.Session)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/auth/session", nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, true, body["authenticated"])
	require.Equal(t, "admin", body["tree"])

	anon := newApp(domain.Session{}, func(app *fiber.App) {
		app.Get("/auth/session", handler.Session)
	})
	resp, err = anon.Test(httptest.NewRequest("GET", "/auth/session", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, false, body["authenticated"])
	require.Equal(t, "login", body["tree"])
}

func TestSessionRecordFlattensAccount(t *testing.T) {
	user := domain.User{
		ID:   "u-1",
		Name: "Rosa Mamani",
		Role: &domain.RoleRef{ID: "r2", Name: "Asistente"},
		Office: &domain.Office{
			ID:   "off-1",
			Name: "Mesa de Partes",
			Site: &domain.Site{ID: "s1", Name: "Sede Central"},
		},
	}
	rec := sessionRecord(user)
	require.Equal(t, "u-1", rec.UserID)
	require.Equal(t, domain.RoleAssistant, rec.Role)
	require.Equal(t, "off-1", rec.OfficeID)
	require.Equal(t, "Mesa de Partes", rec.OfficeName)
	require.Equal(t, "Sede Central", rec.SiteName)
	require.True(t, rec.Authenticated())
}
