package models

import "time"

const ContactInfoID uint = 1

type ContactInfo struct {
	ID                   uint         `json:"id" gorm:"primaryKey"`
	Name                 string       `json:"name" gorm:"type:varchar(255);not null"`
	Tagline              string       `json:"tagline" gorm:"type:text"`
	Summary              string       `json:"summary" gorm:"type:text"`
	Email                string       `json:"email" gorm:"type:varchar(255);not null"`
	WhatsappNumber       *string      `json:"whatsappNumber,omitempty" gorm:"type:varchar(50)"`
	WhatsappLink         *string      `json:"whatsappLink,omitempty" gorm:"type:text"`
	WhatsappAvailability *string      `json:"whatsappAvailability,omitempty" gorm:"type:varchar(255)"`
	Socials              []SocialLink `json:"socials" gorm:"foreignKey:ContactInfoID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

type SocialLink struct {
	BaseModel
	ContactInfoID uint   `json:"-" gorm:"not null;index"`
	Platform      string `json:"platform" gorm:"type:varchar(100);not null"`
	URL           string `json:"url" gorm:"type:text;not null"`
	SortOrder     int    `json:"sortOrder" gorm:"not null;default:0"`
}
