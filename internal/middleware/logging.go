package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"portfolio-server/pkg/logger"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		c.Locals("requestID", requestID)

		err := c.Next()

		latency := time.Since(start)
		statusCode := c.Response().StatusCode()

		details := map[string]interface{}{
			"method":       c.Method(),
			"path":         c.Path(),
			"status_code":  statusCode,
			"latency_ms":   latency.Milliseconds(),
			"ip":           c.IP(),
			"user_agent":   c.Get("User-Agent"),
			"request_body": logger.SummarizeBody(c.Body()),
			"request_id":   requestID,
		}

		if statusCode >= 400 {
			logger.Error("http_request", err, details)
		} else {
			logger.Info("http_request", details)
		}

		return err
	}
}

// SecurityLogger records rejected authentication attempts separately from
// the request log so failed logins are easy to audit.
func SecurityLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		statusCode := c.Response().StatusCode()
		if statusCode != fiber.StatusUnauthorized && statusCode != fiber.StatusForbidden {
			return err
		}

		logger.Warn("auth_rejected", map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"status": statusCode,
			"ip":     c.IP(),
		})

		return err
	}
}
