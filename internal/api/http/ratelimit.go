package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/spec-kit/storefront/internal/config"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// Limiters are the per-IP request budgets applied to route groups.
type Limiters struct {
	Auth  fiber.Handler
	API   fiber.Handler
	Order fiber.Handler
}

// NewLimiters builds limiters from cfg. A nil storage keeps counters in process memory.
func NewLimiters(cfg config.RateLimitConfig, storage fiber.Storage) Limiters {
	window := cfg.Window()
	return Limiters{
		Auth:  newLimiter("auth", cfg.AuthMax, window, storage, "too many authentication attempts, please try again later"),
		API:   newLimiter("api", cfg.APIMax, window, storage, "too many requests, please try again later"),
		Order: newLimiter("order", cfg.OrderMax, window, storage, "too many orders placed, please try again later"),
	}
}

func newLimiter(name string, max int, window time.Duration, storage fiber.Storage, message string) fiber.Handler {
	if max <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return apperrors.NewRateLimited(message)
		},
	})
}
