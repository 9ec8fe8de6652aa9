package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"portfolio-server/pkg/utils"
)

// LoginRateLimit throttles login attempts per client IP. There is no account
// lockout behind this; the limiter is the only brute-force control, so keep
// the budget small.
func LoginRateLimit(attemptsPerMinute int) fiber.Handler {
	if attemptsPerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return limiter.New(limiter.Config{
		Max:        attemptsPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.ErrorCode(c, fiber.StatusTooManyRequests, "rate_limited", "Too many login attempts, try again later")
		},
	})
}
