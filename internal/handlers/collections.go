package handlers

import (
	"reflect"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio-server/internal/models"
	"portfolio-server/pkg/logger"
	"portfolio-server/pkg/utils"
)

// CollectionsHandler implements uniform CRUD over the ordered portfolio
// lists. Each resource key maps to a concrete gorm model; unknown keys are a
// 404, mirroring unknown paths.
type CollectionsHandler struct {
	DB *gorm.DB
}

func NewCollectionsHandler(db *gorm.DB) *CollectionsHandler {
	return &CollectionsHandler{DB: db}
}

type collectionDef struct {
	newRecord func() interface{}
	newSlice  func() interface{}
}

var collectionDefs = map[string]collectionDef{
	"projects": {
		newRecord: func() interface{} { return &models.Project{} },
		newSlice:  func() interface{} { return &[]models.Project{} },
	},
	"experience": {
		newRecord: func() interface{} { return &models.ExperienceEntry{} },
		newSlice:  func() interface{} { return &[]models.ExperienceEntry{} },
	},
	"education": {
		newRecord: func() interface{} { return &models.EducationEntry{} },
		newSlice:  func() interface{} { return &[]models.EducationEntry{} },
	},
	"skill-groups": {
		newRecord: func() interface{} { return &models.SkillGroup{} },
		newSlice:  func() interface{} { return &[]models.SkillGroup{} },
	},
	"achievements": {
		newRecord: func() interface{} { return &models.Achievement{} },
		newSlice:  func() interface{} { return &[]models.Achievement{} },
	},
	"hero-highlights": {
		newRecord: func() interface{} { return &models.HeroHighlight{} },
		newSlice:  func() interface{} { return &[]models.HeroHighlight{} },
	},
	"hero-spotlights": {
		newRecord: func() interface{} { return &models.HeroSpotlight{} },
		newSlice:  func() interface{} { return &[]models.HeroSpotlight{} },
	},
	"consulting": {
		newRecord: func() interface{} { return &models.ConsultingProject{} },
		newSlice:  func() interface{} { return &[]models.ConsultingProject{} },
	},
}

func resolveCollection(c *fiber.Ctx) (collectionDef, bool) {
	def, ok := collectionDefs[c.Params("resource")]
	return def, ok
}

func (h *CollectionsHandler) List(c *fiber.Ctx) error {
	def, ok := resolveCollection(c)
	if !ok {
		return utils.Error(c, fiber.StatusNotFound, "Unknown resource")
	}

	items := def.newSlice()
	if err := h.DB.Order("sort_order asc").Find(items).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing items")
	}
	return utils.Success(c, fiber.StatusOK, items)
}

func (h *CollectionsHandler) Create(c *fiber.Ctx) error {
	def, ok := resolveCollection(c)
	if !ok {
		return utils.Error(c, fiber.StatusNotFound, "Unknown resource")
	}

	record := def.newRecord()
	if err := c.BodyParser(record); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	// The row key is always generated server-side; an id in the body must not
	// become the primary key.
	reflect.ValueOf(record).Elem().FieldByName("ID").Set(reflect.ValueOf(uuid.Nil))

	if err := h.DB.Create(record).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating item")
	}

	logger.Info("collection_item_created", map[string]interface{}{
		"resource": c.Params("resource"),
	})

	return utils.Success(c, fiber.StatusCreated, record)
}

func (h *CollectionsHandler) Update(c *fiber.Ctx) error {
	def, ok := resolveCollection(c)
	if !ok {
		return utils.Error(c, fiber.StatusNotFound, "Unknown resource")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid id parameter")
	}

	record := def.newRecord()
	if err := h.DB.First(record, "id = ?", id).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "item not found")
	}

	// Parsing into the loaded record gives patch semantics: absent fields
	// keep their stored values.
	if err := c.BodyParser(record); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	// The path is authoritative for identity; an id in the body must not
	// redirect the write to another row.
	reflect.ValueOf(record).Elem().FieldByName("ID").Set(reflect.ValueOf(id))

	if err := h.DB.Save(record).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed updating item")
	}

	return utils.Success(c, fiber.StatusOK, record)
}

func (h *CollectionsHandler) Delete(c *fiber.Ctx) error {
	def, ok := resolveCollection(c)
	if !ok {
		return utils.Error(c, fiber.StatusNotFound, "Unknown resource")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid id parameter")
	}

	record := def.newRecord()
	if err := h.DB.First(record, "id = ?", id).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, "item not found")
	}

	if err := h.DB.Delete(record).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting item")
	}

	logger.Info("collection_item_deleted", map[string]interface{}{
		"resource": c.Params("resource"),
		"id":       id.String(),
	})

	return c.SendStatus(fiber.StatusNoContent)
}
