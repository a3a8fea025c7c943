package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthChecker - зависимость, состояние которой отражается в /health
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	redis  HealthChecker
	logger *zap.Logger
}

func NewHealthHandler(redis HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{redis: redis, logger: logger}
}

// Health godoc
// @Summary Проверка состояния сервиса
// @Description Возвращает healthy, если Redis доступен, иначе degraded с кодом 503
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.redis.Health(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"redis":  "unavailable",
			"time":   time.Now(),
		})
	}

	return c.JSON(fiber.Map{
		"status": "healthy",
		"redis":  "ok",
		"time":   time.Now(),
	})
}
