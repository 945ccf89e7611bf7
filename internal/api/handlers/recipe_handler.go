package handlers

import (
	"errors"
	"pantry-manager/domain"
	"pantry-manager/internal/api/presenters"
	"pantry-manager/pkg/recipe"
	"pantry-manager/pkg/reconcile"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error
		ToggleFavorite(c *fiber.Ctx) error
		MarkAsCooked(c *fiber.Ctx) error
		GetRecipeHistory(c *fiber.Ctx) error
		GetNotes(c *fiber.Ctx) error
		AddNote(c *fiber.Ctx) error
		DeleteNote(c *fiber.Ctx) error
		CheckIngredients(c *fiber.Ctx) error
		AddShortfalls(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService    recipe.RecipeService
		reconcileService reconcile.ReconcileService
		validator        *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, reconcileService reconcile.ReconcileService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService:    recipeService,
		reconcileService: reconcileService,
		validator:        validator,
	}
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedCreateRecipe, domain.ErrSessionMissing)
	}

	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	page, limit := pagination(c)

	filter := domain.RecipeFilter{
		Search:        c.Query("search"),
		FavoritesOnly: c.QueryBool("favorites", false),
		Page:          page,
		Limit:         limit,
	}
	for _, t := range strings.Split(c.Query("dietary_types"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			filter.DietaryTypes = append(filter.DietaryTypes, t)
		}
	}

	res, err := h.recipeService.GetRecipes(c.Context(), filter, ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID, ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	ownerID := c.Locals("owner_id").(string)
	recipeID := c.Params("id")

	req := new(domain.UpdateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), recipeID, *req, userID, ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	res, err := h.recipeService.UploadRecipeImage(c.Context(), domain.UploadRecipeImageRequest{Image: file})
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) ToggleFavorite(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.ToggleFavorite(c.Context(), recipeID, ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedToggleFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleFavorite)
}

func (h *recipeHandler) MarkAsCooked(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.MarkAsCooked(c.Context(), recipeID, ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedMarkAsCooked, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessMarkAsCooked)
}

func (h *recipeHandler) GetRecipeHistory(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	res, err := h.recipeService.GetCookedHistory(c.Context(), ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetHistory, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHistory)
}

func (h *recipeHandler) GetNotes(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.GetNotes(c.Context(), recipeID, ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetNotes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetNotes)
}

func (h *recipeHandler) AddNote(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	recipeID := c.Params("id")

	req := new(domain.AddNoteRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddNote, err)
	}

	res, err := h.recipeService.AddNote(c.Context(), recipeID, *req, ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedAddNote, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddNote)
}

func (h *recipeHandler) DeleteNote(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	if err := h.recipeService.DeleteNote(c.Context(), c.Params("id"), c.Params("noteId"), ownerID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedDeleteNote, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteNote)
}

func (h *recipeHandler) CheckIngredients(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	recipeID := c.Params("id")

	res, err := h.reconcileService.CheckBeforeCook(c.Context(), recipeID, ownerID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCheckIngredients, err)
	}

	if !res.CanCook {
		return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageMissingIngredients)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCheckIngredients)
}

// AddShortfalls merges the missing list into the shopping list and points
// the client at it. A failure midway reports the entries already applied.
func (h *recipeHandler) AddShortfalls(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	req := new(domain.AddShortfallsRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddShortfalls, err)
	}

	res, err := h.reconcileService.AddShortfalls(c.Context(), ownerID, req.Missing)
	if err != nil {
		var mergeErr *reconcile.MergeError
		if errors.As(err, &mergeErr) && len(res.Applied) > 0 {
			return presenters.PartialErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedAddShortfalls, res, err)
		}
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedAddShortfalls, err)
	}

	c.Location(reconcile.ShoppingListPath)
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAddShortfalls)
}
