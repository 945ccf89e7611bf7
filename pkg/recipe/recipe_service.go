package recipe

import (
	"context"
	"errors"
	"pantry-manager/domain"
	"pantry-manager/entities"
	"pantry-manager/internal/utils/storage"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter, ownerID string) (domain.RecipeListResponse, error)
		GetRecipeDetail(ctx context.Context, recipeID string, ownerID string) (domain.RecipeDetail, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string, ownerID string) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID string, userID string) error
		UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest) (domain.UploadRecipeImageResponse, error)

		ToggleFavorite(ctx context.Context, recipeID string, ownerID string) (domain.ToggleFavoriteResponse, error)
		MarkAsCooked(ctx context.Context, recipeID string, ownerID string) (domain.Recipe, error)
		GetCookedHistory(ctx context.Context, ownerID string) (domain.RecipeHistoryResponse, error)

		GetNotes(ctx context.Context, recipeID string, ownerID string) ([]domain.Note, error)
		AddNote(ctx context.Context, recipeID string, req domain.AddNoteRequest, ownerID string) (domain.Note, error)
		DeleteNote(ctx context.Context, recipeID string, noteID string, ownerID string) error

		IngredientQuantities(ctx context.Context, recipeID string) ([]domain.Quantity, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		s3               storage.AwsS3
		ingredients      *ingredientCache
	}
)

func NewRecipeService(recipeRepository RecipeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		s3:               s3,
		ingredients:      newIngredientCache(defaultIngredientCacheSize),
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, userID string) (domain.RecipeDetail, error) {
	if userID == "" {
		return domain.RecipeDetail{}, domain.ErrSessionMissing
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	title := strings.TrimSpace(req.Title)
	if err := validateRecipeFields(title, req.PrepTime, req.Servings, req.DietaryType); err != nil {
		return domain.RecipeDetail{}, err
	}

	recipeID := uuid.New()
	ingredients, err := buildIngredients(recipeID, req.Ingredients)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	recipe := &entities.Recipe{
		ID:          recipeID,
		UserID:      &userUUID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		PrepTime:    req.PrepTime,
		Servings:    req.Servings,
		DietaryType: req.DietaryType,
		Ingredients: ingredients,
	}

	gen := s.ingredients.begin()
	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		log.Errorf("recipe: failed to create %q: %v", title, err)
		return domain.RecipeDetail{}, err
	}

	s.ingredients.put(recipeID.String(), gen, toQuantities(ingredients))
	return toDetail(recipe, ingredients, false), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, filter domain.RecipeFilter, ownerID string) (domain.RecipeListResponse, error) {
	for _, t := range filter.DietaryTypes {
		if !domain.IsDietaryType(t) {
			return domain.RecipeListResponse{}, domain.ErrInvalidDietaryType
		}
	}

	favoriteOwner := ""
	if filter.FavoritesOnly {
		favoriteOwner = ownerID
	}

	recipes, err := s.recipeRepository.GetRecipes(ctx, filter.DietaryTypes, favoriteOwner)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}
	recipes = searchRecipes(recipes, filter.Search)

	favorites, err := s.favoriteSet(ctx, ownerID)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total := int64(len(recipes))
	start := (page - 1) * limit
	if start > len(recipes) {
		start = len(recipes)
	}
	end := start + limit
	if end > len(recipes) {
		end = len(recipes)
	}

	list := make([]domain.Recipe, 0, end-start)
	for _, recipe := range recipes[start:end] {
		list = append(list, toRecipe(recipe, favorites[recipe.ID.String()]))
	}

	return domain.RecipeListResponse{
		Recipes:    list,
		Pagination: domain.NewPagination(page, limit, total),
	}, nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, ownerID string) (domain.RecipeDetail, error) {
	gen := s.ingredients.begin()
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	ingredients, err := s.recipeRepository.GetIngredients(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	s.ingredients.put(recipeID, gen, toQuantities(ingredients))

	favorite, err := s.isFavorite(ctx, ownerID, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	return toDetail(recipe, ingredients, favorite), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, userID string, ownerID string) (domain.RecipeDetail, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}
	if err := authorize(recipe, userID); err != nil {
		return domain.RecipeDetail{}, err
	}

	title := strings.TrimSpace(req.Title)
	prepTime, servings := recipe.PrepTime, recipe.Servings
	if req.PrepTime != nil {
		prepTime = *req.PrepTime
	}
	if req.Servings != nil {
		servings = *req.Servings
	}
	dietaryType := recipe.DietaryType
	if req.DietaryType != "" {
		dietaryType = req.DietaryType
	}
	if err := validateRecipeFields(title, prepTime, servings, dietaryType); err != nil {
		return domain.RecipeDetail{}, err
	}

	var replacement []*entities.RecipeIngredient
	if req.Ingredients != nil {
		replacement, err = buildIngredients(recipe.ID, *req.Ingredients)
		if err != nil {
			return domain.RecipeDetail{}, err
		}
	}

	recipe.Title = title
	recipe.Description = strings.TrimSpace(req.Description)
	recipe.PrepTime = prepTime
	recipe.Servings = servings
	recipe.DietaryType = dietaryType
	if req.ImageURL != nil {
		recipe.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		log.Errorf("recipe: failed to update %s: %v", recipeID, err)
		return domain.RecipeDetail{}, err
	}

	if req.Ingredients != nil {
		if err := s.replaceIngredients(ctx, recipeID, replacement); err != nil {
			return domain.RecipeDetail{}, err
		}
	}

	return s.GetRecipeDetail(ctx, recipeID, ownerID)
}

// replaceIngredients swaps the stored ingredient list. The cache entry is
// dropped once the writes are over, whether or not they succeeded.
func (s *recipeService) replaceIngredients(ctx context.Context, recipeID string, replacement []*entities.RecipeIngredient) error {
	defer s.ingredients.invalidate(recipeID)

	if err := s.recipeRepository.DeleteIngredientsByRecipe(ctx, recipeID); err != nil {
		log.Errorf("recipe: failed to clear ingredients of %s: %v", recipeID, err)
		return err
	}
	if err := s.recipeRepository.CreateIngredients(ctx, replacement); err != nil {
		log.Errorf("recipe: failed to store ingredients of %s: %v", recipeID, err)
		return err
	}
	return nil
}

// DeleteRecipe removes dependent rows one table at a time before the recipe
// itself. A failure part way leaves the earlier deletes in place.
func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, userID string) error {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := authorize(recipe, userID); err != nil {
		return err
	}

	defer s.ingredients.invalidate(recipeID)

	steps := []struct {
		name string
		run  func(context.Context, string) error
	}{
		{"notes", s.recipeRepository.DeleteNotesByRecipe},
		{"ingredients", s.recipeRepository.DeleteIngredientsByRecipe},
		{"favorites", s.recipeRepository.DeleteFavoritesByRecipe},
		{"cook history", s.recipeRepository.DeleteCookedByRecipe},
		{"recipe", s.recipeRepository.DeleteRecipe},
	}
	for _, step := range steps {
		if err := step.run(ctx, recipeID); err != nil {
			log.Errorf("recipe: failed to delete %s of %s: %v", step.name, recipeID, err)
			return err
		}
	}

	if recipe.ImageURL != "" {
		if key := s.s3.GetObjectKeyFromLink(recipe.ImageURL); key != "" {
			if err := s.s3.DeleteFile(ctx, key); err != nil {
				log.Warnf("recipe: failed to remove image %s: %v", key, err)
			}
		}
	}

	return nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, req domain.UploadRecipeImageRequest) (domain.UploadRecipeImageResponse, error) {
	objectKey, err := s.s3.UploadFile(ctx, req.Image, "", storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return domain.UploadRecipeImageResponse{}, domain.ErrInvalidImageFormat
		}
		log.Errorf("recipe: image upload failed: %v", err)
		return domain.UploadRecipeImageResponse{}, err
	}

	return domain.UploadRecipeImageResponse{ImageURL: s.s3.GetPublicLinkKey(objectKey)}, nil
}

// ToggleFavorite inserts the favorite row when absent and deletes it when
// present. Concurrent toggles are not deduplicated.
func (s *recipeService) ToggleFavorite(ctx context.Context, recipeID string, ownerID string) (domain.ToggleFavoriteResponse, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}

	existing, err := s.recipeRepository.GetFavorite(ctx, ownerID, recipeID)
	if err == nil {
		if err := s.recipeRepository.RemoveFavorite(ctx, existing.ID.String()); err != nil {
			log.Errorf("recipe: failed to unfavorite %s: %v", recipeID, err)
			return domain.ToggleFavoriteResponse{}, err
		}
		return domain.ToggleFavoriteResponse{RecipeID: recipeID, Favorited: false}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ToggleFavoriteResponse{}, err
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, domain.ErrParseUUID
	}

	favorite := &entities.FavoriteRecipe{
		ID:        uuid.New(),
		UserID:    ownerUUID,
		RecipeID:  recipe.ID,
		CreatedAt: time.Now(),
	}
	if err := s.recipeRepository.AddFavorite(ctx, favorite); err != nil {
		log.Errorf("recipe: failed to favorite %s: %v", recipeID, err)
		return domain.ToggleFavoriteResponse{}, err
	}
	return domain.ToggleFavoriteResponse{RecipeID: recipeID, Favorited: true}, nil
}

func (s *recipeService) MarkAsCooked(ctx context.Context, recipeID string, ownerID string) (domain.Recipe, error) {
	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.Recipe{}, domain.ErrParseUUID
	}

	cooked := &entities.CookedRecipe{
		ID:       uuid.New(),
		UserID:   ownerUUID,
		RecipeID: recipe.ID,
		CookedAt: time.Now(),
	}
	if err := s.recipeRepository.AddCooked(ctx, cooked); err != nil {
		log.Errorf("recipe: failed to record cooking %s: %v", recipeID, err)
		return domain.Recipe{}, err
	}

	favorite, err := s.isFavorite(ctx, ownerID, recipeID)
	if err != nil {
		return domain.Recipe{}, err
	}

	res := toRecipe(recipe, favorite)
	res.CookedAt = &cooked.CookedAt
	return res, nil
}

func (s *recipeService) GetCookedHistory(ctx context.Context, ownerID string) (domain.RecipeHistoryResponse, error) {
	history, err := s.recipeRepository.GetCookedHistory(ctx, ownerID)
	if err != nil {
		return domain.RecipeHistoryResponse{}, err
	}

	favorites, err := s.favoriteSet(ctx, ownerID)
	if err != nil {
		return domain.RecipeHistoryResponse{}, err
	}

	recipes := make([]domain.Recipe, 0, len(history))
	for _, entry := range history {
		if entry.Recipe == nil {
			continue
		}
		r := toRecipe(entry.Recipe, favorites[entry.RecipeID.String()])
		cookedAt := entry.CookedAt
		r.CookedAt = &cookedAt
		recipes = append(recipes, r)
	}

	return domain.RecipeHistoryResponse{Recipes: recipes, Total: len(recipes)}, nil
}

func (s *recipeService) GetNotes(ctx context.Context, recipeID string, ownerID string) ([]domain.Note, error) {
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	notes, err := s.recipeRepository.GetNotes(ctx, recipeID, ownerID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.Note, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNote(note))
	}
	return res, nil
}

func (s *recipeService) AddNote(ctx context.Context, recipeID string, req domain.AddNoteRequest, ownerID string) (domain.Note, error) {
	text := strings.TrimSpace(req.Note)
	if text == "" {
		return domain.Note{}, domain.ErrEmptyNote
	}

	recipe, err := s.getRecipe(ctx, recipeID)
	if err != nil {
		return domain.Note{}, err
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.Note{}, domain.ErrParseUUID
	}

	note := &entities.RecipeNote{
		ID:       uuid.New(),
		RecipeID: recipe.ID,
		UserID:   ownerUUID,
		Note:     text,
	}
	if err := s.recipeRepository.AddNote(ctx, note); err != nil {
		log.Errorf("recipe: failed to add note to %s: %v", recipeID, err)
		return domain.Note{}, err
	}
	return toNote(note), nil
}

func (s *recipeService) DeleteNote(ctx context.Context, recipeID string, noteID string, ownerID string) error {
	if _, err := uuid.Parse(noteID); err != nil {
		return domain.ErrNoteNotFound
	}

	note, err := s.recipeRepository.GetNoteByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNoteNotFound
		}
		return err
	}
	if note.RecipeID.String() != recipeID {
		return domain.ErrNoteNotFound
	}
	if note.UserID.String() != ownerID {
		return domain.ErrUnauthorizedAccess
	}

	if err := s.recipeRepository.DeleteNote(ctx, noteID); err != nil {
		log.Errorf("recipe: failed to delete note %s: %v", noteID, err)
		return err
	}
	return nil
}

// IngredientQuantities serves a recipe's ingredients from the cache, loading
// them on a miss.
func (s *recipeService) IngredientQuantities(ctx context.Context, recipeID string) ([]domain.Quantity, error) {
	if cached, ok := s.ingredients.get(recipeID); ok {
		return cached, nil
	}

	gen := s.ingredients.begin()
	if _, err := s.getRecipe(ctx, recipeID); err != nil {
		return nil, err
	}

	ingredients, err := s.recipeRepository.GetIngredients(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	quantities := toQuantities(ingredients)
	s.ingredients.put(recipeID, gen, quantities)
	return quantities, nil
}

func (s *recipeService) getRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) isFavorite(ctx context.Context, ownerID, recipeID string) (bool, error) {
	_, err := s.recipeRepository.GetFavorite(ctx, ownerID, recipeID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *recipeService) favoriteSet(ctx context.Context, ownerID string) (map[string]bool, error) {
	ids, err := s.recipeRepository.GetFavoriteRecipeIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// authorize lets anyone edit recipes that carry no owner.
func authorize(recipe *entities.Recipe, userID string) error {
	if recipe.UserID != nil && recipe.UserID.String() != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}
	return nil
}

func validateRecipeFields(title string, prepTime, servings int, dietaryType string) error {
	if title == "" {
		return domain.ErrInvalidTitle
	}
	if prepTime < 0 {
		return domain.ErrNegativePrepTime
	}
	if servings < 0 {
		return domain.ErrNegativeServings
	}
	if dietaryType != "" && !domain.IsDietaryType(dietaryType) {
		return domain.ErrInvalidDietaryType
	}
	return nil
}

// buildIngredients drops rows with blank names and trims the rest.
func buildIngredients(recipeID uuid.UUID, reqs []domain.IngredientRequest) ([]*entities.RecipeIngredient, error) {
	ingredients := make([]*entities.RecipeIngredient, 0, len(reqs))
	now := time.Now()
	for i, req := range reqs {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			continue
		}
		if req.Quantity < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		ingredients = append(ingredients, &entities.RecipeIngredient{
			ID:       uuid.New(),
			RecipeID: recipeID,
			Name:     name,
			Quantity: req.Quantity,
			// keeps input order when read back by created_at
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
		})
	}
	return ingredients, nil
}

func toQuantities(ingredients []*entities.RecipeIngredient) []domain.Quantity {
	quantities := make([]domain.Quantity, 0, len(ingredients))
	for _, ingredient := range ingredients {
		quantities = append(quantities, domain.Quantity{Name: ingredient.Name, Quantity: ingredient.Quantity})
	}
	return quantities
}

func toRecipe(recipe *entities.Recipe, favorite bool) domain.Recipe {
	return domain.Recipe{
		ID:          recipe.ID.String(),
		Title:       recipe.Title,
		Description: recipe.Description,
		ImageURL:    recipe.ImageURL,
		PrepTime:    recipe.PrepTime,
		Servings:    recipe.Servings,
		DietaryType: recipe.DietaryType,
		CreatedAt:   recipe.CreatedAt,
		IsFavorite:  favorite,
	}
}

func toDetail(recipe *entities.Recipe, ingredients []*entities.RecipeIngredient, favorite bool) domain.RecipeDetail {
	list := make([]domain.Ingredient, 0, len(ingredients))
	for _, ingredient := range ingredients {
		list = append(list, domain.Ingredient{
			ID:       ingredient.ID.String(),
			Name:     ingredient.Name,
			Quantity: ingredient.Quantity,
		})
	}
	return domain.RecipeDetail{
		Recipe:      toRecipe(recipe, favorite),
		Ingredients: list,
	}
}

func toNote(note *entities.RecipeNote) domain.Note {
	return domain.Note{
		ID:        note.ID.String(),
		Note:      note.Note,
		CreatedAt: note.CreatedAt,
	}
}
