package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"portfolio-server/internal/config"
	"portfolio-server/internal/database"
	"portfolio-server/internal/middleware"
	"portfolio-server/internal/services"
	"portfolio-server/pkg/utils"
)

const (
	testPasscode   = "bootstrap-passcode"
	testTOTPSecret = "JBSWY3DPEHPK3PXP"
)

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	settings *services.SettingsService
	totp     *services.TOTPService
}

// setupTestEnv builds a full application instance against an in-memory
// database, with the same routing shape as the real server. The login rate
// limiter is disabled so tests can hammer the endpoint.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	utils.ConfigureJWT("test-secret", time.Hour)
	utils.ConfigureSecretCipher("test-session-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	adminCfg := config.AdminConfig{
		BootstrapPasscode:   testPasscode,
		BootstrapTOTPSecret: testTOTPSecret,
		SessionSecret:       "test-session-secret",
		SessionTTL:          time.Hour,
		TOTPLabel:           "Portfolio Admin",
		TOTPIssuer:          "Portfolio",
	}

	settingsService := services.NewSettingsService(db, adminCfg)
	totpService := services.NewTOTPService(adminCfg.TOTPLabel, adminCfg.TOTPIssuer)

	if _, err := settingsService.Ensure(); err != nil {
		t.Fatalf("failed to initialize admin settings: %v", err)
	}

	authHandler := NewAuthHandler(settingsService, totpService)
	contentHandler := NewContentHandler(db)
	collectionsHandler := NewCollectionsHandler(db)
	authMiddleware := middleware.NewAuthMiddleware(settingsService)

	app := fiber.New()
	app.Use(recover.New())

	api := app.Group("/api")

	api.Get("/hero", contentHandler.GetHero)
	api.Get("/contact", contentHandler.GetContact)
	api.Get("/collections/:resource", collectionsHandler.List)

	admin := api.Group("/admin")
	admin.Get("/auth/status", authHandler.Status)
	admin.Post("/auth/login", authHandler.Login)

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

	return &testEnv{
		app:      app,
		db:       db,
		settings: settingsService,
		totp:     totpService,
	}
}

func performRequest(t *testing.T, app *fiber.App, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	return resp
}

func performJSONRequest(t *testing.T, app *fiber.App, method, path string, payload interface{}, headers map[string]string) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	if headers == nil {
		headers = map[string]string{}
	}
	headers["Content-Type"] = "application/json"

	return performRequest(t, app, method, path, body, headers)
}

func decodeJSONMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return result
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()

	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}

func authHeaders(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// loginAdmin performs a login with the given credentials and returns the
// session token.
func loginAdmin(t *testing.T, env *testEnv, passcode, totpCode string) string {
	t.Helper()

	resp := performJSONRequest(t, env.app, http.MethodPost, "/api/admin/auth/login", map[string]string{
		"passcode": passcode,
		"totpCode": totpCode,
	}, nil)
	assertStatus(t, resp, http.StatusOK)

	body := decodeJSONMap(t, resp)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object in login response, got %v", body)
	}
	token, ok := data["token"].(string)
	if !ok || token == "" {
		t.Fatalf("expected session token in login response, got %v", data)
	}
	return token
}
