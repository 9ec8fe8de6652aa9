package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"portfolio-server/internal/models"
	"portfolio-server/pkg/logger"
	"portfolio-server/pkg/utils"
)

// ContentHandler serves the portfolio content the admin edits: the hero
// section and contact info, both singletons keyed like the settings row.
type ContentHandler struct {
	DB *gorm.DB
}

func NewContentHandler(db *gorm.DB) *ContentHandler {
	return &ContentHandler{DB: db}
}

func (h *ContentHandler) GetHero(c *fiber.Ctx) error {
	var hero models.HeroContent
	if err := h.DB.First(&hero, "id = ?", models.HeroContentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Success(c, fiber.StatusOK, nil)
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading hero content")
	}
	return utils.Success(c, fiber.StatusOK, hero)
}

type heroRequest struct {
	Headline  string  `json:"headline"`
	Subtitle  string  `json:"subtitle"`
	IntroText string  `json:"introText"`
	ImageURL  *string `json:"imageURL"`
	ResumeURL *string `json:"resumeURL"`
}

func (h *ContentHandler) UpdateHero(c *fiber.Ctx) error {
	var req heroRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Headline == "" {
		return utils.Error(c, fiber.StatusBadRequest, "headline is required")
	}

	hero := models.HeroContent{
		ID:        models.HeroContentID,
		Headline:  req.Headline,
		Subtitle:  req.Subtitle,
		IntroText: req.IntroText,
		ImageURL:  req.ImageURL,
		ResumeURL: req.ResumeURL,
	}

	if err := h.DB.Save(&hero).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed saving hero content")
	}

	logger.Info("hero_content_updated", map[string]interface{}{
		"headline": hero.Headline,
	})

	return utils.Success(c, fiber.StatusOK, hero)
}

func (h *ContentHandler) GetContact(c *fiber.Ctx) error {
	var contact models.ContactInfo
	err := h.DB.Preload("Socials", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order asc")
	}).First(&contact, "id = ?", models.ContactInfoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Success(c, fiber.StatusOK, nil)
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading contact info")
	}
	return utils.Success(c, fiber.StatusOK, contact)
}

type socialLinkRequest struct {
	Platform  string `json:"platform"`
	URL       string `json:"url"`
	SortOrder *int   `json:"sortOrder"`
}

type contactRequest struct {
	Name                 string              `json:"name"`
	Tagline              string              `json:"tagline"`
	Summary              string              `json:"summary"`
	Email                string              `json:"email"`
	WhatsappNumber       *string             `json:"whatsappNumber"`
	WhatsappLink         *string             `json:"whatsappLink"`
	WhatsappAvailability *string             `json:"whatsappAvailability"`
	Socials              []socialLinkRequest `json:"socials"`
}

// UpdateContact replaces the contact singleton and its social links in one
// transaction; links keep their submitted order unless an explicit sortOrder
// is given.
func (h *ContentHandler) UpdateContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name and email are required")
	}

	contact := models.ContactInfo{
		ID:                   models.ContactInfoID,
		Name:                 req.Name,
		Tagline:              req.Tagline,
		Summary:              req.Summary,
		Email:                req.Email,
		WhatsappNumber:       req.WhatsappNumber,
		WhatsappLink:         req.WhatsappLink,
		WhatsappAvailability: req.WhatsappAvailability,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&contact).Error; err != nil {
			return err
		}
		if err := tx.Where("contact_info_id = ?", contact.ID).Delete(&models.SocialLink{}).Error; err != nil {
			return err
		}
		for i, social := range req.Socials {
			order := i + 1
			if social.SortOrder != nil {
				order = *social.SortOrder
			}
			link := models.SocialLink{
				ContactInfoID: contact.ID,
				Platform:      social.Platform,
				URL:           social.URL,
				SortOrder:     order,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed saving contact info")
	}

	return h.GetContact(c)
}
