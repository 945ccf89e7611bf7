package reconcile

import (
	"context"
	"errors"
	"pantry-manager/domain"
	"pantry-manager/entities"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngredients map[string][]domain.Quantity

func (f fakeIngredients) IngredientQuantities(_ context.Context, recipeID string) ([]domain.Quantity, error) {
	rows, ok := f[recipeID]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return rows, nil
}

type fakePantry struct {
	rows []domain.Quantity
	err  error
}

func (f fakePantry) ListQuantities(context.Context, string) ([]domain.Quantity, error) {
	return f.rows, f.err
}

type fakeOpenShopping struct {
	rows []domain.Quantity
	err  error
}

func (f fakeOpenShopping) ListOpenQuantities(context.Context, string) ([]domain.Quantity, error) {
	return f.rows, f.err
}

func TestCheckBeforeCook(t *testing.T) {
	ingredients := fakeIngredients{"r1": {q("tomato", 500), q("onion", 100)}}
	svc := NewReconcileService(
		ingredients,
		fakePantry{rows: []domain.Quantity{q("tomato", 200), q("onion", 100)}},
		fakeOpenShopping{},
		&fakeShoppingStore{},
		FirstMatch,
	)

	res, err := svc.CheckBeforeCook(context.Background(), "r1", testOwner)
	require.NoError(t, err)
	assert.False(t, res.CanCook)
	assert.Equal(t, "r1", res.RecipeID)
	require.Len(t, res.Missing, 1)
	assert.Equal(t, "tomato", res.Missing[0].Name)
	assert.Equal(t, 200.0, res.Missing[0].AvailableQuantity)
}

func TestCheckBeforeCook_CanCook(t *testing.T) {
	svc := NewReconcileService(
		fakeIngredients{"r1": {q("tomato", 500)}},
		fakePantry{rows: []domain.Quantity{q("tomato", 300)}},
		fakeOpenShopping{rows: []domain.Quantity{q("tomato", 300)}},
		&fakeShoppingStore{},
		FirstMatch,
	)

	res, err := svc.CheckBeforeCook(context.Background(), "r1", testOwner)
	require.NoError(t, err)
	assert.True(t, res.CanCook)
	assert.Empty(t, res.Missing)
}

func TestCheckBeforeCook_ReadFailureAborts(t *testing.T) {
	boom := errors.New("pantry unavailable")
	svc := NewReconcileService(
		fakeIngredients{"r1": {q("tomato", 500)}},
		fakePantry{err: boom},
		fakeOpenShopping{},
		&fakeShoppingStore{},
		FirstMatch,
	)

	_, err := svc.CheckBeforeCook(context.Background(), "r1", testOwner)
	assert.ErrorIs(t, err, boom)

	_, err = svc.CheckBeforeCook(context.Background(), "missing", testOwner)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestAddShortfalls(t *testing.T) {
	store := &fakeShoppingStore{items: []*entities.ShoppingListItem{openItem("onion", 100)}}
	svc := NewReconcileService(fakeIngredients{}, fakePantry{}, fakeOpenShopping{}, store, FirstMatch)

	res, err := svc.AddShortfalls(context.Background(), testOwner, []domain.MissingIngredient{
		{Name: "onion", RequiredQuantity: 200},
		{Name: "tomato", RequiredQuantity: 500, AvailableQuantity: 200},
	})

	require.NoError(t, err)
	assert.Equal(t, ShoppingListPath, res.Next)
	require.Len(t, res.Applied, 2)
	assert.Equal(t, 300.0, store.open("onion")[0].Quantity)
	assert.Equal(t, 300.0, store.open("tomato")[0].Quantity)
}

func TestAddShortfalls_RejectsCoveredEntriesBeforeWriting(t *testing.T) {
	store := &fakeShoppingStore{}
	svc := NewReconcileService(fakeIngredients{}, fakePantry{}, fakeOpenShopping{}, store, FirstMatch)

	_, err := svc.AddShortfalls(context.Background(), testOwner, []domain.MissingIngredient{
		{Name: "onion", RequiredQuantity: 200},
		{Name: "tomato", RequiredQuantity: 100, AvailableQuantity: 100},
	})

	assert.ErrorIs(t, err, domain.ErrNoShortfall)
	assert.Empty(t, store.items)
}
