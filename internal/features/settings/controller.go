package settings

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type SettingsController struct {
	Watermark WatermarkStore
}

func NewSettingsController(watermark WatermarkStore) *SettingsController {
	return &SettingsController{
		Watermark: watermark,
	}
}

// GetWatermark godoc
// @Summary Get the lead sync watermark
// @Description Epoch seconds of the last successful scheduled sync (now-24h when none is stored)
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/settings/lead-sync/watermark [get]
func (ctrl *SettingsController) GetWatermark(c *fiber.Ctx) error {
	ts := ctrl.Watermark.GetLastFetchTimestamp(c.UserContext())
	return c.JSON(fiber.Map{
		"last_fetch_timestamp": ts,
		"last_fetch_at":        time.Unix(ts, 0).UTC(),
	})
}
