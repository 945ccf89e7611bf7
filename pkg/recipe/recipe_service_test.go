package recipe

import (
	"context"
	"errors"
	"mime/multipart"
	"pantry-manager/domain"
	"pantry-manager/entities"
	"pantry-manager/internal/utils/storage"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	sessionUser = "0b6f5a8e-7a51-4c2a-9d7e-3f4b1c2d5e6f"
	owner       = "a5fdafd5-b250-46bc-a3c3-8c6ed6605faa"
)

type fakeRecipeRepo struct {
	recipes         map[string]*entities.Recipe
	ingredients     map[string][]*entities.RecipeIngredient
	favorites       []*entities.FavoriteRecipe
	cooked          []*entities.CookedRecipe
	notes           []*entities.RecipeNote
	deletes         []string
	ingredientReads int
	clock           time.Time
	failDelete      string
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{
		recipes:     map[string]*entities.Recipe{},
		ingredients: map[string][]*entities.RecipeIngredient{},
		clock:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRecipeRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeRecipeRepo) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	recipe.CreatedAt = f.tick()
	f.recipes[recipe.ID.String()] = recipe
	f.ingredients[recipe.ID.String()] = recipe.Ingredients
	return nil
}

func (f *fakeRecipeRepo) GetRecipeByID(_ context.Context, id string) (*entities.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *recipe
	return &copied, nil
}

func (f *fakeRecipeRepo) GetRecipes(_ context.Context, dietaryTypes []string, favoriteOwnerID string) ([]*entities.Recipe, error) {
	var out []*entities.Recipe
	for _, recipe := range f.recipes {
		if len(dietaryTypes) > 0 && !contains(dietaryTypes, recipe.DietaryType) {
			continue
		}
		if favoriteOwnerID != "" {
			if _, err := f.GetFavorite(context.Background(), favoriteOwnerID, recipe.ID.String()); err != nil {
				continue
			}
		}
		out = append(out, recipe)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func (f *fakeRecipeRepo) UpdateRecipe(_ context.Context, recipe *entities.Recipe) error {
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepo) DeleteRecipe(_ context.Context, id string) error {
	f.deletes = append(f.deletes, "recipe")
	delete(f.recipes, id)
	return nil
}

func (f *fakeRecipeRepo) GetRandomImageURL(context.Context) (string, error) {
	for _, recipe := range f.recipes {
		if recipe.ImageURL != "" {
			return recipe.ImageURL, nil
		}
	}
	return "", gorm.ErrRecordNotFound
}

func (f *fakeRecipeRepo) GetIngredients(_ context.Context, recipeID string) ([]*entities.RecipeIngredient, error) {
	f.ingredientReads++
	return f.ingredients[recipeID], nil
}

func (f *fakeRecipeRepo) CreateIngredients(_ context.Context, ingredients []*entities.RecipeIngredient) error {
	for _, ingredient := range ingredients {
		id := ingredient.RecipeID.String()
		f.ingredients[id] = append(f.ingredients[id], ingredient)
	}
	return nil
}

func (f *fakeRecipeRepo) DeleteIngredientsByRecipe(_ context.Context, recipeID string) error {
	f.deletes = append(f.deletes, "ingredients")
	delete(f.ingredients, recipeID)
	return nil
}

func (f *fakeRecipeRepo) GetFavorite(_ context.Context, ownerID, recipeID string) (*entities.FavoriteRecipe, error) {
	for _, fav := range f.favorites {
		if fav.UserID.String() == ownerID && fav.RecipeID.String() == recipeID {
			return fav, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecipeRepo) GetFavoriteRecipeIDs(_ context.Context, ownerID string) ([]string, error) {
	var ids []string
	for _, fav := range f.favorites {
		if fav.UserID.String() == ownerID {
			ids = append(ids, fav.RecipeID.String())
		}
	}
	return ids, nil
}

func (f *fakeRecipeRepo) AddFavorite(_ context.Context, favorite *entities.FavoriteRecipe) error {
	f.favorites = append(f.favorites, favorite)
	return nil
}

func (f *fakeRecipeRepo) RemoveFavorite(_ context.Context, id string) error {
	for i, fav := range f.favorites {
		if fav.ID.String() == id {
			f.favorites = append(f.favorites[:i], f.favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRecipeRepo) DeleteFavoritesByRecipe(context.Context, string) error {
	f.deletes = append(f.deletes, "favorites")
	if f.failDelete == "favorites" {
		return errors.New("favorites table locked")
	}
	return nil
}

func (f *fakeRecipeRepo) AddCooked(_ context.Context, cooked *entities.CookedRecipe) error {
	f.cooked = append(f.cooked, cooked)
	return nil
}

func (f *fakeRecipeRepo) GetCookedHistory(_ context.Context, ownerID string) ([]*entities.CookedRecipe, error) {
	var out []*entities.CookedRecipe
	for i := len(f.cooked) - 1; i >= 0; i-- {
		entry := f.cooked[i]
		if entry.UserID.String() == ownerID {
			entry.Recipe = f.recipes[entry.RecipeID.String()]
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) DeleteCookedByRecipe(context.Context, string) error {
	f.deletes = append(f.deletes, "cooked")
	return nil
}

func (f *fakeRecipeRepo) GetNotes(_ context.Context, recipeID, ownerID string) ([]*entities.RecipeNote, error) {
	var out []*entities.RecipeNote
	for _, note := range f.notes {
		if note.RecipeID.String() == recipeID && note.UserID.String() == ownerID {
			out = append(out, note)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRecipeRepo) GetNoteByID(_ context.Context, id string) (*entities.RecipeNote, error) {
	for _, note := range f.notes {
		if note.ID.String() == id {
			return note, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecipeRepo) AddNote(_ context.Context, note *entities.RecipeNote) error {
	note.CreatedAt = f.tick()
	f.notes = append(f.notes, note)
	return nil
}

func (f *fakeRecipeRepo) DeleteNote(_ context.Context, id string) error {
	for i, note := range f.notes {
		if note.ID.String() == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRecipeRepo) DeleteNotesByRecipe(context.Context, string) error {
	f.deletes = append(f.deletes, "notes")
	return nil
}

type fakeS3 struct {
	deleted   []string
	uploadErr error
}

func (s *fakeS3) UploadFile(context.Context, *multipart.FileHeader, string, ...string) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	return "generated.png", nil
}

func (s *fakeS3) DeleteFile(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeS3) GetPublicLinkKey(key string) string {
	return "https://cdn.example.com/" + key
}

func (s *fakeS3) GetObjectKeyFromLink(link string) string {
	const prefix = "https://cdn.example.com/"
	if len(link) > len(prefix) && link[:len(prefix)] == prefix {
		return link[len(prefix):]
	}
	return ""
}

func newTestRecipeService() (RecipeService, *fakeRecipeRepo, *fakeS3) {
	repo := newFakeRecipeRepo()
	s3 := &fakeS3{}
	return NewRecipeService(repo, s3), repo, s3
}

func createRecipe(t *testing.T, svc RecipeService, title string, dietary string) domain.RecipeDetail {
	t.Helper()
	res, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{
		Title:       title,
		DietaryType: dietary,
		Servings:    2,
		Ingredients: []domain.IngredientRequest{
			{Name: " tomato ", Quantity: 500},
			{Name: "", Quantity: 10},
			{Name: "onion", Quantity: 100},
		},
	}, sessionUser)
	require.NoError(t, err)
	return res
}

func TestCreateRecipe(t *testing.T) {
	svc, _, _ := newTestRecipeService()

	res := createRecipe(t, svc, " Shakshuka ", domain.DietaryVegetarian)
	assert.Equal(t, "Shakshuka", res.Title)
	require.Len(t, res.Ingredients, 2)
	assert.Equal(t, "tomato", res.Ingredients[0].Name)
	assert.Equal(t, "onion", res.Ingredients[1].Name)
}

func TestCreateRecipe_Validation(t *testing.T) {
	svc, repo, _ := newTestRecipeService()

	_, err := svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{Title: "Soup"}, "")
	assert.ErrorIs(t, err, domain.ErrSessionMissing)

	_, err = svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{Title: "  "}, sessionUser)
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{Title: "Soup", Servings: -1}, sessionUser)
	assert.ErrorIs(t, err, domain.ErrNegativeServings)

	_, err = svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{Title: "Soup", PrepTime: -5}, sessionUser)
	assert.ErrorIs(t, err, domain.ErrNegativePrepTime)

	_, err = svc.CreateRecipe(context.Background(), domain.CreateRecipeRequest{Title: "Soup", DietaryType: "keto"}, sessionUser)
	assert.ErrorIs(t, err, domain.ErrInvalidDietaryType)

	assert.Empty(t, repo.recipes)
}

func TestToggleFavorite_InsertsThenDeletes(t *testing.T) {
	svc, repo, _ := newTestRecipeService()
	recipe := createRecipe(t, svc, "Lasagna", domain.DietaryCarnivore)

	res, err := svc.ToggleFavorite(context.Background(), recipe.ID, owner)
	require.NoError(t, err)
	assert.True(t, res.Favorited)
	assert.Len(t, repo.favorites, 1)

	detail, err := svc.GetRecipeDetail(context.Background(), recipe.ID, owner)
	require.NoError(t, err)
	assert.True(t, detail.IsFavorite)

	res, err = svc.ToggleFavorite(context.Background(), recipe.ID, owner)
	require.NoError(t, err)
	assert.False(t, res.Favorited)
	assert.Empty(t, repo.favorites)

	_, err = svc.ToggleFavorite(context.Background(), uuid.NewString(), owner)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestGetRecipes_Filters(t *testing.T) {
	svc, _, _ := newTestRecipeService()
	lasagna := createRecipe(t, svc, "Beef Lasagna", domain.DietaryCarnivore)
	createRecipe(t, svc, "Vegan Chili", domain.DietaryVegan)
	createRecipe(t, svc, "Grilled Salmon", domain.DietaryPescatarian)

	all, err := svc.GetRecipes(context.Background(), domain.RecipeFilter{}, owner)
	require.NoError(t, err)
	assert.Len(t, all.Recipes, 3)
	assert.Equal(t, int64(3), all.Pagination.Total)

	byType, err := svc.GetRecipes(context.Background(), domain.RecipeFilter{DietaryTypes: []string{"vegan", "pescatarian"}}, owner)
	require.NoError(t, err)
	assert.Len(t, byType.Recipes, 2)

	searched, err := svc.GetRecipes(context.Background(), domain.RecipeFilter{Search: "lsgna"}, owner)
	require.NoError(t, err)
	require.Len(t, searched.Recipes, 1)
	assert.Equal(t, lasagna.ID, searched.Recipes[0].ID)

	_, err = svc.ToggleFavorite(context.Background(), lasagna.ID, owner)
	require.NoError(t, err)
	favorites, err := svc.GetRecipes(context.Background(), domain.RecipeFilter{FavoritesOnly: true}, owner)
	require.NoError(t, err)
	require.Len(t, favorites.Recipes, 1)
	assert.True(t, favorites.Recipes[0].IsFavorite)

	paged, err := svc.GetRecipes(context.Background(), domain.RecipeFilter{Page: 2, Limit: 2}, owner)
	require.NoError(t, err)
	assert.Len(t, paged.Recipes, 1)
	assert.Equal(t, int64(2), paged.Pagination.TotalPages)

	_, err = svc.GetRecipes(context.Background(), domain.RecipeFilter{DietaryTypes: []string{"keto"}}, owner)
	assert.ErrorIs(t, err, domain.ErrInvalidDietaryType)
}

func TestIngredientQuantities_CachedUntilUpdate(t *testing.T) {
	svc, repo, _ := newTestRecipeService()
	recipe := createRecipe(t, svc, "Pasta", domain.DietaryVegetarian)

	first, err := svc.IngredientQuantities(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Quantity{{Name: "tomato", Quantity: 500}, {Name: "onion", Quantity: 100}}, first)
	assert.Zero(t, repo.ingredientReads)

	ingredients := []domain.IngredientRequest{{Name: "basil", Quantity: 20}}
	_, err = svc.UpdateRecipe(context.Background(), recipe.ID, domain.UpdateRecipeRequest{
		Title:       "Pesto Pasta",
		Ingredients: &ingredients,
	}, sessionUser, owner)
	require.NoError(t, err)

	after, err := svc.IngredientQuantities(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Quantity{{Name: "basil", Quantity: 20}}, after)

	_, err = svc.IngredientQuantities(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

// readingRepo reads ingredients through the service in the middle of a write,
// the way a concurrent ingredient check would.
type readingRepo struct {
	*fakeRecipeRepo
	svc   RecipeService
	reads [][]domain.Quantity
}

func (r *readingRepo) read(recipeID string) {
	q, err := r.svc.IngredientQuantities(context.Background(), recipeID)
	if err == nil {
		r.reads = append(r.reads, q)
	}
}

func (r *readingRepo) DeleteNotesByRecipe(ctx context.Context, recipeID string) error {
	r.read(recipeID)
	return r.fakeRecipeRepo.DeleteNotesByRecipe(ctx, recipeID)
}

func (r *readingRepo) CreateIngredients(ctx context.Context, ingredients []*entities.RecipeIngredient) error {
	if len(ingredients) > 0 {
		r.read(ingredients[0].RecipeID.String())
	}
	return r.fakeRecipeRepo.CreateIngredients(ctx, ingredients)
}

func newReadingRecipeService() (RecipeService, *readingRepo) {
	repo := &readingRepo{fakeRecipeRepo: newFakeRecipeRepo()}
	repo.svc = NewRecipeService(repo, &fakeS3{})
	return repo.svc, repo
}

func TestIngredientQuantities_ReadDuringDeleteIsNotCached(t *testing.T) {
	svc, repo := newReadingRecipeService()
	recipe := createRecipe(t, svc, "Pasta", domain.DietaryVegetarian)
	svc.(*recipeService).ingredients.invalidate(recipe.ID)

	require.NoError(t, svc.DeleteRecipe(context.Background(), recipe.ID, sessionUser))
	require.Len(t, repo.reads, 1)

	_, err := svc.IngredientQuantities(context.Background(), recipe.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestIngredientQuantities_ReadDuringUpdateIsNotCached(t *testing.T) {
	svc, repo := newReadingRecipeService()
	recipe := createRecipe(t, svc, "Pasta", domain.DietaryVegetarian)

	ingredients := []domain.IngredientRequest{{Name: "basil", Quantity: 20}}
	_, err := svc.UpdateRecipe(context.Background(), recipe.ID, domain.UpdateRecipeRequest{
		Title:       "Pesto Pasta",
		Ingredients: &ingredients,
	}, sessionUser, owner)
	require.NoError(t, err)
	require.Len(t, repo.reads, 1)

	after, err := svc.IngredientQuantities(context.Background(), recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Quantity{{Name: "basil", Quantity: 20}}, after)
}

func TestIngredientCache_RejectsStalePut(t *testing.T) {
	cache := newIngredientCache(4)
	gen := cache.begin()
	cache.invalidate("r-1")

	assert.False(t, cache.put("r-1", gen, []domain.Quantity{{Name: "tomato", Quantity: 500}}))
	_, ok := cache.get("r-1")
	assert.False(t, ok)

	assert.True(t, cache.put("r-1", cache.begin(), []domain.Quantity{{Name: "tomato", Quantity: 500}}))
	_, ok = cache.get("r-1")
	assert.True(t, ok)
}

func TestUpdateRecipe_OnlyOwnerMayEdit(t *testing.T) {
	svc, _, _ := newTestRecipeService()
	recipe := createRecipe(t, svc, "Pasta", domain.DietaryVegetarian)

	_, err := svc.UpdateRecipe(context.Background(), recipe.ID, domain.UpdateRecipeRequest{Title: "Mine now"}, uuid.NewString(), owner)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	servings := 6
	updated, err := svc.UpdateRecipe(context.Background(), recipe.ID, domain.UpdateRecipeRequest{Title: "Pasta", Servings: &servings}, sessionUser, owner)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Servings)
	assert.Equal(t, domain.DietaryVegetarian, updated.DietaryType)
}

func TestDeleteRecipe_RemovesDependentsInOrder(t *testing.T) {
	svc, repo, s3 := newTestRecipeService()
	recipe := createRecipe(t, svc, "Pasta", domain.DietaryVegetarian)
	repo.recipes[recipe.ID].ImageURL = "https://cdn.example.com/pasta.png"

	require.NoError(t, svc.DeleteRecipe(context.Background(), recipe.ID, sessionUser))
	assert.Equal(t, []string{"notes", "ingredients", "favorites", "cooked", "recipe"}, repo.deletes)
	assert.Equal(t, []string{"pasta.png"}, s3.deleted)
	assert.Empty(t, repo.recipes)
}

func TestDeleteRecipe_StopsOnFailure(t *testing.T) {
	svc, repo, s3 := newTestRecipeService()
	recipe := createRecipe(t, svc, "Pasta", domain.DietaryVegetarian)
	repo.failDelete = "favorites"

	err := svc.DeleteRecipe(context.Background(), recipe.ID, sessionUser)
	require.Error(t, err)
	assert.Equal(t, []string{"notes", "ingredients", "favorites"}, repo.deletes)
	assert.Contains(t, repo.recipes, recipe.ID)
	assert.Empty(t, s3.deleted)
}

func TestNotes(t *testing.T) {
	svc, _, _ := newTestRecipeService()
	recipe := createRecipe(t, svc, "Pasta", domain.DietaryVegetarian)

	_, err := svc.AddNote(context.Background(), recipe.ID, domain.AddNoteRequest{Note: "   "}, owner)
	assert.ErrorIs(t, err, domain.ErrEmptyNote)

	first, err := svc.AddNote(context.Background(), recipe.ID, domain.AddNoteRequest{Note: "less salt"}, owner)
	require.NoError(t, err)
	_, err = svc.AddNote(context.Background(), recipe.ID, domain.AddNoteRequest{Note: " double garlic "}, owner)
	require.NoError(t, err)

	notes, err := svc.GetNotes(context.Background(), recipe.ID, owner)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "double garlic", notes[0].Note)
	assert.Equal(t, "less salt", notes[1].Note)

	err = svc.DeleteNote(context.Background(), recipe.ID, first.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	require.NoError(t, svc.DeleteNote(context.Background(), recipe.ID, first.ID, owner))
	err = svc.DeleteNote(context.Background(), recipe.ID, first.ID, owner)
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestMarkAsCookedAndHistory(t *testing.T) {
	svc, _, _ := newTestRecipeService()
	pasta := createRecipe(t, svc, "Pasta", domain.DietaryVegetarian)
	soup := createRecipe(t, svc, "Soup", domain.DietaryVegan)

	cooked, err := svc.MarkAsCooked(context.Background(), pasta.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, cooked.CookedAt)

	_, err = svc.MarkAsCooked(context.Background(), soup.ID, owner)
	require.NoError(t, err)

	history, err := svc.GetCookedHistory(context.Background(), owner)
	require.NoError(t, err)
	require.Equal(t, 2, history.Total)
	assert.Equal(t, soup.ID, history.Recipes[0].ID)
	assert.Equal(t, pasta.ID, history.Recipes[1].ID)
}

func TestUploadRecipeImage(t *testing.T) {
	svc, _, s3 := newTestRecipeService()

	res, err := svc.UploadRecipeImage(context.Background(), domain.UploadRecipeImageRequest{Image: &multipart.FileHeader{Filename: "a.png"}})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/generated.png", res.ImageURL)

	s3.uploadErr = storage.ErrFileTypeNotAllowed
	_, err = svc.UploadRecipeImage(context.Background(), domain.UploadRecipeImageRequest{Image: &multipart.FileHeader{Filename: "a.txt"}})
	assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)
}
