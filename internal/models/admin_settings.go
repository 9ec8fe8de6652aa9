package models

import "time"

// AdminSettingsID is the fixed identity of the one settings row. There is a
// single admin; all security state lives on this row.
const AdminSettingsID uint = 1

// AdminSettings holds the admin's security configuration. PasscodeHash is a
// bcrypt hash and TOTPSecret is sealed at rest; neither is ever serialized.
type AdminSettings struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	PasscodeHash     string    `json:"-" gorm:"type:text;not null"`
	TOTPSecret       string    `json:"-" gorm:"type:text;not null"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled" gorm:"not null;default:false"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
