package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"portfolio-server/internal/models"
	"portfolio-server/internal/services"
	"portfolio-server/pkg/logger"
	"portfolio-server/pkg/utils"
)

const adminIDKey = "adminID"

type AuthMiddleware struct {
	Settings *services.SettingsService
}

func NewAuthMiddleware(settings *services.SettingsService) *AuthMiddleware {
	return &AuthMiddleware{Settings: settings}
}

func CORS(allowedOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

// RequireAdmin guards the admin surface. It accepts only a bearer session
// token whose subject is the live settings row; a token surviving a database
// reset is rejected rather than trusted.
func (a *AuthMiddleware) RequireAdmin(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		logger.Warn("admin_session_missing", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.ErrorCode(c, fiber.StatusUnauthorized, "unauthorized", "Admin session required")
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	claims, err := utils.ValidateAdminToken(tokenString)
	if err != nil {
		logger.Warn("admin_session_invalid", map[string]interface{}{
			"ip":    c.IP(),
			"path":  c.Path(),
			"error": err.Error(),
		})
		return utils.ErrorCode(c, fiber.StatusUnauthorized, "unauthorized", "Invalid or expired admin session")
	}

	if claims.AdminID != models.AdminSettingsID {
		return utils.ErrorCode(c, fiber.StatusUnauthorized, "unauthorized", "Invalid or expired admin session")
	}

	if _, err := a.Settings.GetStrict(); err != nil {
		logger.Warn("admin_session_orphaned", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.ErrorCode(c, fiber.StatusUnauthorized, "unauthorized", "Invalid or expired admin session")
	}

	c.Locals(adminIDKey, claims.AdminID)
	return c.Next()
}

func GetAdminID(c *fiber.Ctx) (uint, bool) {
	value := c.Locals(adminIDKey)
	if value == nil {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
