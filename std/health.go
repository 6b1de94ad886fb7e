package std

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Health struct {
	db      Pinger
	started time.Time
}

func NewHealth(db Pinger) *Health {
	return &Health{db: db, started: time.Now()}
}

func (my *Health) Base() string {
	return "/health"
}

func (my *Health) Init(r fiber.Router) {
	r.Get("/", my.Check)
	r.Get("/live", my.Liveness)
	r.Get("/ready", my.Readiness)
}

// Check 通用健康检查
func (my *Health) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// Liveness 存活检查
func (my *Health) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "alive",
		"timestamp": time.Now().Unix(),
		"uptime":    time.Since(my.started).Seconds(),
	})
}

// Readiness 就绪检查，数据库不可达时返回503
func (my *Health) Readiness(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := my.db.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":    "not_ready",
			"timestamp": time.Now().Unix(),
			"checks":    fiber.Map{"database": err.Error()},
		})
	}
	return c.JSON(fiber.Map{
		"status":    "ready",
		"timestamp": time.Now().Unix(),
		"checks":    fiber.Map{"database": "ok"},
	})
}
