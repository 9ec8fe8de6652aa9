package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"portfolio-server/internal/models"
	"portfolio-server/internal/services"
	"portfolio-server/pkg/logger"
	"portfolio-server/pkg/utils"
)

// AuthHandler orchestrates admin login, the session-guarded settings flows,
// and TOTP provisioning. Every mutation re-verifies the current passcode even
// when a valid session token is presented: a stolen token alone must not be
// enough to change security settings.
type AuthHandler struct {
	Settings *services.SettingsService
	TOTP     *services.TOTPService
}

func NewAuthHandler(settings *services.SettingsService, totp *services.TOTPService) *AuthHandler {
	return &AuthHandler{Settings: settings, TOTP: totp}
}

// serializeSettings is the one public view of the settings row. Both the
// pre-login status probe and the authenticated settings read share it; only
// the access control differs.
func serializeSettings(settings *models.AdminSettings) fiber.Map {
	return fiber.Map{"twoFactorEnabled": settings.TwoFactorEnabled}
}

func (h *AuthHandler) settingsError(c *fiber.Ctx, err error) error {
	logger.Error("admin_settings_unavailable", err, map[string]interface{}{
		"path": c.Path(),
	})
	if errors.Is(err, services.ErrNotInitialized) {
		return utils.ErrorCode(c, fiber.StatusInternalServerError, "not_initialized", "Admin settings are not initialized")
	}
	return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
}

// Status is the unauthenticated probe the login form uses to decide whether
// to show the authenticator field before first submission. No secrets leave.
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	settings, err := h.Settings.GetStrict()
	if err != nil {
		return h.settingsError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, serializeSettings(settings))
}

type loginRequest struct {
	Passcode string `json:"passcode"`
	TOTPCode string `json:"totpCode"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorCode(c, fiber.StatusBadRequest, "invalid_request", "invalid request body")
	}

	if req.Passcode == "" {
		return utils.ErrorCode(c, fiber.StatusBadRequest, "invalid_request", "Passcode is required")
	}

	settings, err := h.Settings.GetStrict()
	if err != nil {
		return h.settingsError(c, err)
	}

	if !utils.CheckPassword(req.Passcode, settings.PasscodeHash) {
		logger.Warn("admin_login_failed", map[string]interface{}{
			"ip":     c.IP(),
			"reason": "passcode_mismatch",
		})
		return utils.ErrorCode(c, fiber.StatusUnauthorized, "invalid_credentials", "Invalid passcode")
	}

	if settings.TwoFactorEnabled {
		// A missing code is a distinct signal from a wrong one so the client
		// can prompt for the second factor without re-asking the passcode.
		if req.TOTPCode == "" {
			return utils.ErrorCode(c, fiber.StatusBadRequest, "totp_required", "Authenticator code required")
		}
		secret := utils.OpenSecretOrPlaintext(settings.TOTPSecret)
		if !h.TOTP.Verify(req.TOTPCode, secret) {
			logger.Warn("admin_login_failed", map[string]interface{}{
				"ip":     c.IP(),
				"reason": "totp_mismatch",
			})
			return utils.ErrorCode(c, fiber.StatusUnauthorized, "invalid_credentials", "Invalid authenticator code")
		}
	}

	token, err := utils.GenerateAdminToken(settings.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed generating session token")
	}

	logger.Info("admin_login", map[string]interface{}{
		"ip":         c.IP(),
		"two_factor": settings.TwoFactorEnabled,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"token":            token,
		"twoFactorEnabled": settings.TwoFactorEnabled,
	})
}

// GetSettings returns the same view as Status but sits behind the session
// token; it backs the settings page rather than the login form.
func (h *AuthHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.Settings.GetStrict()
	if err != nil {
		return h.settingsError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, serializeSettings(settings))
}

type updateSecurityRequest struct {
	CurrentPasscode  string `json:"currentPasscode"`
	NewPasscode      string `json:"newPasscode"`
	TOTPCode         string `json:"totpCode"`
	TwoFactorEnabled *bool  `json:"twoFactorEnabled"`
}

func (h *AuthHandler) UpdateSettings(c *fiber.Ctx) error {
	var req updateSecurityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorCode(c, fiber.StatusBadRequest, "invalid_request", "invalid request body")
	}

	if req.CurrentPasscode == "" {
		return utils.ErrorCode(c, fiber.StatusBadRequest, "invalid_request", "Current passcode is required")
	}
	if req.NewPasscode == "" && req.TwoFactorEnabled == nil {
		return utils.ErrorCode(c, fiber.StatusBadRequest, "invalid_request", "Provide at least one setting to update")
	}
	if req.NewPasscode != "" && len(req.NewPasscode) < 6 {
		return utils.ErrorCode(c, fiber.StatusBadRequest, "invalid_request", "New passcode must be at least 6 characters")
	}

	settings, err := h.Settings.GetStrict()
	if err != nil {
		return h.settingsError(c, err)
	}

	if !utils.CheckPassword(req.CurrentPasscode, settings.PasscodeHash) {
		logger.Warn("admin_settings_update_rejected", map[string]interface{}{
			"ip":     c.IP(),
			"reason": "passcode_mismatch",
		})
		return utils.ErrorCode(c, fiber.StatusUnauthorized, "invalid_credentials", "Current passcode is incorrect")
	}

	var patch services.SettingsPatch

	if req.NewPasscode != "" {
		hash, err := utils.HashPassword(req.NewPasscode)
		if err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, "failed to hash passcode")
		}
		patch.PasscodeHash = &hash
	}

	if req.TwoFactorEnabled != nil {
		// Enabling 2FA requires proof that an authenticator already holds the
		// current secret. Disabling, or re-asserting the current value, is
		// covered by the passcode check above.
		if *req.TwoFactorEnabled && !settings.TwoFactorEnabled {
			if req.TOTPCode == "" {
				return utils.ErrorCode(c, fiber.StatusBadRequest, "totp_required", "Authenticator code required to enable 2FA")
			}
			secret := utils.OpenSecretOrPlaintext(settings.TOTPSecret)
			if !h.TOTP.Verify(req.TOTPCode, secret) {
				return utils.ErrorCode(c, fiber.StatusUnauthorized, "invalid_credentials", "Invalid authenticator code")
			}
		}
		patch.TwoFactorEnabled = req.TwoFactorEnabled
	}

	updated, err := h.Settings.Update(patch)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating settings")
	}

	logger.Info("admin_settings_updated", map[string]interface{}{
		"passcode_changed":   req.NewPasscode != "",
		"two_factor_enabled": updated.TwoFactorEnabled,
	})

	return utils.Success(c, fiber.StatusOK, serializeSettings(updated))
}

type passcodeRequest struct {
	CurrentPasscode string `json:"currentPasscode"`
}

// verifyPasscode parses a {currentPasscode} body and checks it against the
// stored hash. On failure the rejection has already been written; callers
// must stop when the returned settings are nil.
func (h *AuthHandler) verifyPasscode(c *fiber.Ctx) (*models.AdminSettings, error) {
	var req passcodeRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, utils.ErrorCode(c, fiber.StatusBadRequest, "invalid_request", "invalid request body")
	}
	if req.CurrentPasscode == "" {
		return nil, utils.ErrorCode(c, fiber.StatusBadRequest, "invalid_request", "Current passcode is required")
	}

	settings, err := h.Settings.GetStrict()
	if err != nil {
		return nil, h.settingsError(c, err)
	}

	if !utils.CheckPassword(req.CurrentPasscode, settings.PasscodeHash) {
		return nil, utils.ErrorCode(c, fiber.StatusUnauthorized, "invalid_credentials", "Current passcode is incorrect")
	}

	return settings, nil
}

// ProvisionTOTP re-displays the provisioning payload for the secret already
// on file, e.g. to show the QR code again. It never rotates.
func (h *AuthHandler) ProvisionTOTP(c *fiber.Ctx) error {
	settings, err := h.verifyPasscode(c)
	if settings == nil {
		return err
	}

	payload, err := h.TOTP.SetupPayload(utils.OpenSecretOrPlaintext(settings.TOTPSecret))
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed building provisioning payload")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"secret":           payload.Secret,
		"otpauthUrl":       payload.OtpauthURL,
		"label":            payload.Label,
		"issuer":           payload.Issuer,
		"twoFactorEnabled": settings.TwoFactorEnabled,
	})
}

// RotateTOTP replaces the secret and forces two-factor back off: any
// previously enrolled authenticator is invalid after rotation, so 2FA must be
// re-enabled through the update flow with a code from the new secret.
func (h *AuthHandler) RotateTOTP(c *fiber.Ctx) error {
	if settings, err := h.verifyPasscode(c); settings == nil {
		return err
	}

	newSecret, err := h.TOTP.GenerateSecret()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed generating TOTP secret")
	}

	sealed, err := utils.SealSecret(newSecret)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed storing TOTP secret")
	}

	disabled := false
	updated, err := h.Settings.Update(services.SettingsPatch{
		TOTPSecret:       &sealed,
		TwoFactorEnabled: &disabled,
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating settings")
	}

	payload, err := h.TOTP.SetupPayload(newSecret)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed building provisioning payload")
	}

	logger.Info("admin_totp_rotated", map[string]interface{}{
		"two_factor_enabled": updated.TwoFactorEnabled,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"secret":           payload.Secret,
		"otpauthUrl":       payload.OtpauthURL,
		"label":            payload.Label,
		"issuer":           payload.Issuer,
		"twoFactorEnabled": updated.TwoFactorEnabled,
	})
}
