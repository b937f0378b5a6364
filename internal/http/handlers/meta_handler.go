package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jobive/backend/internal/models"
)

// MetaHandler serves the static vocabularies clients build pickers from.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

var trainingCategories = []string{
	"web development",
	"mobile development",
	"design",
	"marketing",
	"writing",
	"data science",
	"business",
}

func (h *MetaHandler) GetTrainingCategories(c *fiber.Ctx) error {
	return ok(c, "", trainingCategories)
}

func (h *MetaHandler) GetTrainingLevels(c *fiber.Ctx) error {
	return ok(c, "", []string{
		models.TrainingLevelBeginner,
		models.TrainingLevelIntermediate,
		models.TrainingLevelAdvanced,
	})
}
