package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio-server/internal/config"
	"portfolio-server/internal/models"
	"portfolio-server/pkg/utils"
)

// ErrNotInitialized signals that the settings row is missing even though
// Ensure should have created it. This is a deployment defect, not user error.
var ErrNotInitialized = errors.New("admin settings are not initialized")

type SettingsService struct {
	DB  *gorm.DB
	cfg config.AdminConfig
}

func NewSettingsService(db *gorm.DB, cfg config.AdminConfig) *SettingsService {
	return &SettingsService{DB: db, cfg: cfg}
}

// Ensure returns the settings singleton, creating it from the bootstrap
// passcode and TOTP secret on first call. Creation is an ON CONFLICT DO
// NOTHING insert on the fixed row ID, so concurrent first calls cannot
// produce duplicates; whichever insert wins, every caller re-reads the row.
func (s *SettingsService) Ensure() (*models.AdminSettings, error) {
	var settings models.AdminSettings
	err := s.DB.First(&settings, "id = ?", models.AdminSettingsID).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if s.cfg.BootstrapPasscode == "" {
		return nil, fmt.Errorf("ADMIN_PASSCODE must be defined to initialize admin settings")
	}
	if s.cfg.BootstrapTOTPSecret == "" {
		return nil, fmt.Errorf("ADMIN_TOTP_SECRET must be defined to initialize admin settings")
	}

	hash, err := utils.HashPassword(s.cfg.BootstrapPasscode)
	if err != nil {
		return nil, err
	}

	sealed, err := utils.SealSecret(s.cfg.BootstrapTOTPSecret)
	if err != nil {
		return nil, err
	}

	seed := models.AdminSettings{
		ID:           models.AdminSettingsID,
		PasscodeHash: hash,
		TOTPSecret:   sealed,
	}
	if err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}

	if err := s.DB.First(&settings, "id = ?", models.AdminSettingsID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetStrict loads the settings singleton and treats its absence as a fault.
func (s *SettingsService) GetStrict() (*models.AdminSettings, error) {
	var settings models.AdminSettings
	if err := s.DB.First(&settings, "id = ?", models.AdminSettingsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInitialized
		}
		return nil, err
	}
	return &settings, nil
}

// SettingsPatch is a partial update over the three security fields. Nil
// means "leave unchanged"; TwoFactorEnabled must be a pointer so an explicit
// false survives the patch.
type SettingsPatch struct {
	PasscodeHash     *string
	TOTPSecret       *string
	TwoFactorEnabled *bool
}

// Update applies the patch in a single UPDATE statement and returns the new
// state. Callers verify the current passcode before reaching this point, so
// nothing here is written unless authentication already succeeded.
func (s *SettingsService) Update(patch SettingsPatch) (*models.AdminSettings, error) {
	updates := map[string]interface{}{}
	if patch.PasscodeHash != nil {
		updates["passcode_hash"] = *patch.PasscodeHash
	}
	if patch.TOTPSecret != nil {
		updates["totp_secret"] = *patch.TOTPSecret
	}
	if patch.TwoFactorEnabled != nil {
		updates["two_factor_enabled"] = *patch.TwoFactorEnabled
	}

	if len(updates) > 0 {
		err := s.DB.Model(&models.AdminSettings{}).
			Where("id = ?", models.AdminSettingsID).
			Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}

	return s.GetStrict()
}
