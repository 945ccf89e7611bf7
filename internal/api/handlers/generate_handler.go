package handlers

import (
	"pantry-manager/domain"
	"pantry-manager/pkg/generator"

	"github.com/gofiber/fiber/v2"
)

type (
	GenerateHandler interface {
		GenerateRecipe(c *fiber.Ctx) error
	}

	generateHandler struct {
		generatorService generator.GeneratorService
	}
)

func NewGenerateHandler(generatorService generator.GeneratorService) GenerateHandler {
	return &generateHandler{generatorService: generatorService}
}

// GenerateRecipe answers every failure, bad input included, with 500 and
// {"error": message}.
func (h *generateHandler) GenerateRecipe(c *fiber.Ctx) error {
	req := new(domain.GenerateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(domain.GenerateRecipeError{Error: err.Error()})
	}

	res, err := h.generatorService.GenerateRecipe(c.Context(), *req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(domain.GenerateRecipeError{Error: err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(res)
}
