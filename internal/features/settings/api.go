package settings

import (
	"go-crm-leads/internal/common/api"
	"go-crm-leads/internal/config"
	"go-crm-leads/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SettingsApi struct {
	Controller *SettingsController
	Config     *config.Config
}

func NewSettingsApi(controller *SettingsController, config *config.Config) api.Route {
	return &SettingsApi{
		Controller: controller,
		Config:     config,
	}
}

func (a *SettingsApi) Setup(app *fiber.App) {
	group := app.Group("/api/settings", middleware.AuthMiddleware(a.Config.SkipAuth))

	group.Get("/lead-sync/watermark", a.Controller.GetWatermark)
}
