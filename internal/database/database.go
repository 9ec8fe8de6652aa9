package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"portfolio-server/internal/config"
	"portfolio-server/internal/models"
)

func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate is exported so the test harness can run the same schema against
// its in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AdminSettings{},
		&models.HeroContent{},
		&models.HeroHighlight{},
		&models.HeroSpotlight{},
		&models.ContactInfo{},
		&models.SocialLink{},
		&models.Project{},
		&models.ExperienceEntry{},
		&models.EducationEntry{},
		&models.SkillGroup{},
		&models.Achievement{},
		&models.ConsultingProject{},
	)
}
