package models

import "time"

// HeroContentID pins the hero section to a single row, mirroring the
// settings singleton.
const HeroContentID uint = 1

type HeroContent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Headline  string    `json:"headline" gorm:"type:varchar(255);not null"`
	Subtitle  string    `json:"subtitle" gorm:"type:text"`
	IntroText string    `json:"introText" gorm:"type:text"`
	ImageURL  *string   `json:"imageURL,omitempty" gorm:"type:text"`
	ResumeURL *string   `json:"resumeURL,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type HeroHighlight struct {
	BaseModel
	Title       string `json:"title" gorm:"type:varchar(255);not null"`
	Description string `json:"description" gorm:"type:text"`
	Icon        string `json:"icon" gorm:"type:varchar(100)"`
	SortOrder   int    `json:"sortOrder" gorm:"not null;default:0"`
}

// HeroSpotlight is a headline statistic shown alongside the hero section.
type HeroSpotlight struct {
	BaseModel
	Title      string `json:"title" gorm:"type:varchar(255);not null"`
	Stat       string `json:"stat" gorm:"type:varchar(100);not null"`
	Descriptor string `json:"descriptor" gorm:"type:text"`
	SortOrder  int    `json:"sortOrder" gorm:"not null;default:0"`
}
