package leadsync

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type LeadSyncController struct {
	Service LeadSyncService
}

func NewLeadSyncController(service LeadSyncService) *LeadSyncController {
	return &LeadSyncController{
		Service: service,
	}
}

func respond(c *fiber.Ctx, result *SyncResult) error {
	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(result)
}

// RunScheduled godoc
// @Summary      Run the incremental lead sync
// @Description  Syncs leads created since the stored watermark
// @Tags         lead-sync
// @Produce      json
// @Success      200  {object}  SyncResult
// @Failure      500  {object}  SyncResult
// @Router       /api/lead-sync/scheduled [post]
func (ctrl *LeadSyncController) RunScheduled(c *fiber.Ctx) error {
	return respond(c, ctrl.Service.RunScheduledSync(c.UserContext()))
}

// RunManual godoc
// @Summary      Fetch and sync a fixed lookback window
// @Tags         lead-sync
// @Produce      json
// @Param        hours  query  int  false  "Hours to look back (1-720)"
// @Success      200  {object}  SyncResult
// @Failure      400  {object}  SyncResult
// @Failure      500  {object}  SyncResult
// @Router       /api/lead-sync/manual [post]
func (ctrl *LeadSyncController) RunManual(c *fiber.Ctx) error {
	hours := DefaultManualHours
	if raw := c.Query("hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxManualHours {
			return c.Status(fiber.StatusBadRequest).JSON(SyncResult{
				Success: false,
				Message: fmt.Sprintf("hours must be between 1 and %d", MaxManualHours),
			})
		}
		hours = n
	}
	return respond(c, ctrl.Service.RunManualFetch(c.UserContext(), hours))
}

// TestConnection godoc
// @Summary      Check upstream credentials
// @Tags         lead-sync
// @Produce      json
// @Success      200  {object}  SyncResult
// @Failure      500  {object}  SyncResult
// @Router       /api/lead-sync/test [get]
func (ctrl *LeadSyncController) TestConnection(c *fiber.Ctx) error {
	return respond(c, ctrl.Service.RunConnectionTest(c.UserContext()))
}

// ListRuns godoc
// @Summary      List recent sync runs
// @Tags         lead-sync
// @Produce      json
// @Param        limit  query  int  false  "Max runs"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/lead-sync/logs [get]
func (ctrl *LeadSyncController) ListRuns(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultListLimit)
	runs, err := ctrl.Service.ListRuns(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"data": runs,
	})
}

// GetRun godoc
// @Summary      Get one sync run with details
// @Tags         lead-sync
// @Produce      json
// @Param        id  path  string  true  "Run ID"
// @Success      200  {object}  SyncRun
// @Router       /api/lead-sync/logs/{id} [get]
func (ctrl *LeadSyncController) GetRun(c *fiber.Ctx) error {
	run, err := ctrl.Service.GetRun(c.UserContext(), c.Params("id"))
	if err != nil {
		return runError(c, err)
	}
	return c.JSON(run)
}

// ExportRun godoc
// @Summary      Export a sync run as XLSX
// @Tags         lead-sync
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "Run ID"
// @Router       /api/lead-sync/logs/{id}/export [get]
func (ctrl *LeadSyncController) ExportRun(c *fiber.Ctx) error {
	run, err := ctrl.Service.GetRun(c.UserContext(), c.Params("id"))
	if err != nil {
		return runError(c, err)
	}

	data, filename, err := ExportRunToExcel(run)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}

func runError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrRunNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
