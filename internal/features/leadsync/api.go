package leadsync

import (
	"go-crm-leads/internal/common/api"
	"go-crm-leads/internal/config"
	"go-crm-leads/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type LeadSyncApi struct {
	controller *LeadSyncController
	hub        *Hub
	config     *config.Config
}

func NewLeadSyncApi(controller *LeadSyncController, hub *Hub, config *config.Config) api.Route {
	return &LeadSyncApi{
		controller: controller,
		hub:        hub,
		config:     config,
	}
}

// Setup registers all lead sync routes
func (h *LeadSyncApi) Setup(app *fiber.App) {
	group := app.Group("/api/lead-sync")
	group.Post("/scheduled", middleware.CronSecretMiddleware(h.config.CronSecret), h.controller.RunScheduled)

	auth := middleware.AuthMiddleware(h.config.SkipAuth)
	group.Post("/manual", auth, h.controller.RunManual)
	group.Get("/test", auth, h.controller.TestConnection)
	group.Get("/logs", auth, h.controller.ListRuns)
	group.Get("/logs/:id", auth, h.controller.GetRun)
	group.Get("/logs/:id/export", auth, h.controller.ExportRun)

	app.Use("/api/ws/lead-sync", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/api/ws/lead-sync", websocket.New(h.hub.HandleWebSocket))
}
