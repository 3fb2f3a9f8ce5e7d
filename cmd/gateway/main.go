package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apihttp "github.com/munivisitas/gateway/internal/api/http"
	"github.com/munivisitas/gateway/internal/api/http/handlers"
	"github.com/munivisitas/gateway/internal/backend"
	"github.com/munivisitas/gateway/internal/config"
	"github.com/munivisitas/gateway/internal/domain"
	"github.com/munivisitas/gateway/internal/observability"
	"github.com/munivisitas/gateway/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	defer logger.Sync()

	metrics := observability.NewMetrics()

	redis := session.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	manager := session.NewManager(redis)
	tokens := session.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.TokenTTL())
	sessionMW := session.NewMiddleware(tokens, manager, cfg.Session.CookieName, logger)

	client := backend.NewClient(cfg.Backend, logger, metrics)

	treeName := func(authenticated bool, role domain.Role) string {
		return string(apihttp.TreeFor(authenticated, role))
	}

	auth := handlers.NewAuthHandler(client, manager, tokens, cfg.Session.CookieName, treeName, logger)
	sites := handlers.NewSitesHandler(client, logger)
	offices := handlers.NewOfficesHandler(client, logger)
	employees := handlers.NewEmployeesHandler(client, logger)
	users := handlers.NewUsersHandler(client, logger)
	visits := handlers.NewVisitsHandler(client, logger)
	dashboard := handlers.NewDashboardHandler(client, logger)
	reports := handlers.NewReportsHandler(client, logger)

	auth.OnLogout(sites.DropSession)
	auth.OnLogout(offices.DropSession)
	auth.OnLogout(employees.DropSession)
	auth.OnLogout(users.DropSession)
	auth.OnLogout(visits.DropSession)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.App.RequestTimeout(),
		WriteTimeout: cfg.App.RequestTimeout(),
	})

	apihttp.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	apihttp.RegisterRoutes(app, apihttp.RouteConfig{
		Session:   sessionMW,
		Health:    handlers.NewHealthHandler(redis),
		Auth:      auth,
		Sites:     sites,
		Offices:   offices,
		Employees: employees,
		Users:     users,
		Visits:    visits,
		Dashboard: dashboard,
		Reports:   reports,
	})

	go func() {
		addr := cfg.App.Addr()
		logger.Info("gateway listening", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
	logger.Info("gateway stopped")
}

func waitForShutdown(logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutdown signal received", zap.String("signal", sig.String()))
}
