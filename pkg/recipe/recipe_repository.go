package recipe

import (
	"context"
	"pantry-manager/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, dietaryTypes []string, favoriteOwnerID string) ([]*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRandomImageURL(ctx context.Context) (string, error)

		GetIngredients(ctx context.Context, recipeID string) ([]*entities.RecipeIngredient, error)
		CreateIngredients(ctx context.Context, ingredients []*entities.RecipeIngredient) error
		DeleteIngredientsByRecipe(ctx context.Context, recipeID string) error

		GetFavorite(ctx context.Context, ownerID, recipeID string) (*entities.FavoriteRecipe, error)
		GetFavoriteRecipeIDs(ctx context.Context, ownerID string) ([]string, error)
		AddFavorite(ctx context.Context, favorite *entities.FavoriteRecipe) error
		RemoveFavorite(ctx context.Context, id string) error
		DeleteFavoritesByRecipe(ctx context.Context, recipeID string) error

		AddCooked(ctx context.Context, cooked *entities.CookedRecipe) error
		GetCookedHistory(ctx context.Context, ownerID string) ([]*entities.CookedRecipe, error)
		DeleteCookedByRecipe(ctx context.Context, recipeID string) error

		GetNotes(ctx context.Context, recipeID, ownerID string) ([]*entities.RecipeNote, error)
		GetNoteByID(ctx context.Context, id string) (*entities.RecipeNote, error)
		AddNote(ctx context.Context, note *entities.RecipeNote) error
		DeleteNote(ctx context.Context, id string) error
		DeleteNotesByRecipe(ctx context.Context, recipeID string) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, dietaryTypes []string, favoriteOwnerID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})
	if len(dietaryTypes) > 0 {
		query = query.Where("recipes.dietary_type IN ?", dietaryTypes)
	}
	if favoriteOwnerID != "" {
		query = query.
			Joins("JOIN favorite_recipes ON recipes.id = favorite_recipes.recipe_id").
			Where("favorite_recipes.user_id = ?", favoriteOwnerID)
	}

	if err := query.Order("recipes.created_at desc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit("Ingredients").Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

// GetRandomImageURL picks the image of a random recipe that has one.
func (r *recipeRepository) GetRandomImageURL(ctx context.Context) (string, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Select("image_url").
		Where("image_url IS NOT NULL AND image_url <> ''").
		Order("RANDOM()").
		First(&recipe).Error; err != nil {
		return "", err
	}
	return recipe.ImageURL, nil
}

func (r *recipeRepository) GetIngredients(ctx context.Context, recipeID string) ([]*entities.RecipeIngredient, error) {
	var ingredients []*entities.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *recipeRepository) CreateIngredients(ctx context.Context, ingredients []*entities.RecipeIngredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ingredients).Error
}

func (r *recipeRepository) DeleteIngredientsByRecipe(ctx context.Context, recipeID string) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&entities.RecipeIngredient{}).Error
}

func (r *recipeRepository) GetFavorite(ctx context.Context, ownerID, recipeID string) (*entities.FavoriteRecipe, error) {
	var favorite entities.FavoriteRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", ownerID, recipeID).
		First(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *recipeRepository) GetFavoriteRecipeIDs(ctx context.Context, ownerID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&entities.FavoriteRecipe{}).
		Where("user_id = ?", ownerID).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *recipeRepository) AddFavorite(ctx context.Context, favorite *entities.FavoriteRecipe) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FavoriteRecipe{}).Error
}

func (r *recipeRepository) DeleteFavoritesByRecipe(ctx context.Context, recipeID string) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&entities.FavoriteRecipe{}).Error
}

func (r *recipeRepository) AddCooked(ctx context.Context, cooked *entities.CookedRecipe) error {
	return r.db.WithContext(ctx).Create(cooked).Error
}

func (r *recipeRepository) GetCookedHistory(ctx context.Context, ownerID string) ([]*entities.CookedRecipe, error) {
	var history []*entities.CookedRecipe
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Where("user_id = ?", ownerID).
		Order("cooked_at desc").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

func (r *recipeRepository) DeleteCookedByRecipe(ctx context.Context, recipeID string) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&entities.CookedRecipe{}).Error
}

func (r *recipeRepository) GetNotes(ctx context.Context, recipeID, ownerID string) ([]*entities.RecipeNote, error) {
	var notes []*entities.RecipeNote
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, ownerID).
		Order("created_at desc").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *recipeRepository) GetNoteByID(ctx context.Context, id string) (*entities.RecipeNote, error) {
	var note entities.RecipeNote
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *recipeRepository) AddNote(ctx context.Context, note *entities.RecipeNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *recipeRepository) DeleteNote(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.RecipeNote{}).Error
}

func (r *recipeRepository) DeleteNotesByRecipe(ctx context.Context, recipeID string) error {
	return r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&entities.RecipeNote{}).Error
}
