package main

import (
	"context"
	"fmt"

	"go-crm-leads/internal/app"
	common_api "go-crm-leads/internal/common/api"
	"go-crm-leads/internal/config"
	"go-crm-leads/internal/features/leadsync"
	"go-crm-leads/internal/features/settings"
	"go-crm-leads/internal/features/system"
	"go-crm-leads/internal/middleware"

	_ "go-crm-leads/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	log.Info("Registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		log.Debug("Setting up route", zap.String("type", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *zap.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				log.Info("HTTP server listening", zap.String("addr", port))
				if err := app.Listen(port); err != nil {
					log.Error("Server failed to start", zap.Error(err))
					shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

// StartScheduler runs the lead sync cron entry for the life of the server.
func StartScheduler(lc fx.Lifecycle, scheduler *leadsync.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start()
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

// @title           Lead Sync API
// @version         1.0
// @description     Imports Housing.com builder leads into the CRM enquiries store.

// @host            localhost:8000
// @BasePath        /
func main() {
	fx.New(
		app.Core,
		fx.Provide(
			NewFiberServer,
			leadsync.NewScheduler,

			settings.NewSettingsController,
			leadsync.NewLeadSyncController,
			system.NewHealthController,

			AsRoute(settings.NewSettingsApi),
			AsRoute(leadsync.NewLeadSyncApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		app.ZapEventLogger(),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			StartScheduler,
		),
	).Run()
}
