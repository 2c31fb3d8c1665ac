package system

import (
	"context"
	"time"

	"go-crm-leads/internal/config"
	"go-crm-leads/internal/database"
	"go-crm-leads/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

type HealthController struct {
	config  *config.Config
	mongodb *database.MongodbDB
	pg      *database.PostgresDB
	redis   *redis.Client
}

func NewHealthController(cfg *config.Config, mongodb *database.MongodbDB, pg *database.PostgresDB, rdb *redis.Client) *HealthController {
	return &HealthController{
		config:  cfg,
		mongodb: mongodb,
		pg:      pg,
		redis:   rdb,
	}
}

// Health godoc
// @Summary      Service health
// @Description  Pings the configured store and Redis
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
	defer cancel()

	checks := fiber.Map{}
	healthy := true
	record := func(name string, err error) {
		if err != nil {
			checks[name] = err.Error()
			healthy = false
			return
		}
		checks[name] = "ok"
	}

	if h.config.UsesPostgres() {
		if h.pg != nil && h.pg.DB != nil {
			record("postgres", h.pg.DB.PingContext(ctx))
		}
	} else if h.mongodb != nil && h.mongodb.DB != nil {
		record("mongodb", h.mongodb.DB.Client().Ping(ctx, nil))
	}
	if h.redis != nil {
		record("redis", h.redis.Ping(ctx).Err())
	}

	status := fiber.StatusOK
	state := "ok"
	if !healthy {
		status = fiber.StatusServiceUnavailable
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": state,
		"store":  h.config.StoreDriver,
		"checks": checks,
	})
}

// Me godoc
// @Summary      Get current user info
// @Description  Get the current user's info from JWT
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/me [get]
func (h *HealthController) Me(c *fiber.Ctx) error {
	claims, _ := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(fiber.Map{
		"user_id": claims.UserID,
		"roles":   claims.Roles,
	})
}
