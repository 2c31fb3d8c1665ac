package system

import (
	"go-crm-leads/internal/common/api"
	"go-crm-leads/internal/config"
	"go-crm-leads/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type HealthApi struct {
	controller *HealthController
	config     *config.Config
}

func NewHealthApi(controller *HealthController, cfg *config.Config) api.Route {
	return &HealthApi{
		controller: controller,
		config:     cfg,
	}
}

func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.controller.Health)
	app.Get("/api/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Me)
}
