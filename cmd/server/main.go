package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"portfolio-server/internal/config"
	"portfolio-server/internal/database"
	"portfolio-server/internal/handlers"
	"portfolio-server/internal/middleware"
	"portfolio-server/internal/services"
	"portfolio-server/pkg/logger"
	"portfolio-server/pkg/utils"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	utils.ConfigureJWT(cfg.Admin.SessionSecret, cfg.Admin.SessionTTL)
	utils.ConfigureSecretCipher(cfg.Admin.SessionSecret)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	settingsService := services.NewSettingsService(db, cfg.Admin)
	totpService := services.NewTOTPService(cfg.Admin.TOTPLabel, cfg.Admin.TOTPIssuer)

	// Runs the lazy initialization eagerly so a deployment missing its
	// bootstrap passcode or TOTP secret dies here instead of on the first
	// login attempt.
	if _, err := settingsService.Ensure(); err != nil {
		log.Fatalf("admin settings initialization failed: %v", err)
	}

	authHandler := handlers.NewAuthHandler(settingsService, totpService)
	contentHandler := handlers.NewContentHandler(db)
	collectionsHandler := handlers.NewCollectionsHandler(db)
	authMiddleware := middleware.NewAuthMiddleware(settingsService)

	app := fiber.New(fiber.Config{BodyLimit: 5 * 1024 * 1024})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	api.Get("/hero", contentHandler.GetHero)
	api.Get("/contact", contentHandler.GetContact)
	api.Get("/collections/:resource", collectionsHandler.List)

	admin := api.Group("/admin")
	admin.Get("/auth/status", authHandler.Status)
	admin.Post("/auth/login", middleware.LoginRateLimit(cfg.Admin.LoginRatePerMinute), authHandler.Login)

	admin.Use(authMiddleware.RequireAdmin)
	admin.Get("/auth/settings", authHandler.GetSettings)
	admin.Put("/auth/settings", authHandler.UpdateSettings)
	admin.Post("/auth/totp/provision", authHandler.ProvisionTOTP)
	admin.Post("/auth/totp/rotate", authHandler.RotateTOTP)

	admin.Get("/hero", contentHandler.GetHero)
	admin.Put("/hero", contentHandler.UpdateHero)
	admin.Get("/contact", contentHandler.GetContact)
	admin.Put("/contact", contentHandler.UpdateContact)
	admin.Get("/collections/:resource", collectionsHandler.List)
	admin.Post("/collections/:resource", collectionsHandler.Create)
	admin.Put("/collections/:resource/:id", collectionsHandler.Update)
	admin.Delete("/collections/:resource/:id", collectionsHandler.Delete)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":    cfg.Server.Port,
		"address": listenAddr,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(10 * time.Second):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
