package shopping

import (
	"context"
	"errors"
	"pantry-manager/domain"
	"pantry-manager/entities"
	"pantry-manager/pkg/reconcile"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const owner = "a5fdafd5-b250-46bc-a3c3-8c6ed6605faa"

type fakeRepo struct {
	items []*entities.ShoppingListItem
	calls int
}

func (f *fakeRepo) CreateItem(_ context.Context, item *entities.ShoppingListItem) error {
	f.calls++
	item.CreatedAt = time.Now()
	f.items = append(f.items, item)
	return nil
}

func (f *fakeRepo) find(id string) *entities.ShoppingListItem {
	for _, item := range f.items {
		if item.ID.String() == id {
			return item
		}
	}
	return nil
}

func (f *fakeRepo) GetShoppingItemByID(_ context.Context, id string) (*entities.ShoppingListItem, error) {
	f.calls++
	item := f.find(id)
	if item == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeRepo) GetShoppingItems(_ context.Context, ownerID string, completed *bool) ([]*entities.ShoppingListItem, error) {
	f.calls++
	var out []*entities.ShoppingListItem
	for _, item := range f.items {
		if item.UserID.String() != ownerID {
			continue
		}
		if completed != nil && item.Completed != *completed {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeRepo) FindOpenByName(_ context.Context, ownerID string, name string) (*entities.ShoppingListItem, error) {
	f.calls++
	for _, item := range f.items {
		if item.UserID.String() == ownerID && !item.Completed && reconcile.NormalizeName(item.Name) == reconcile.NormalizeName(name) {
			copied := *item
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateQuantity(_ context.Context, id string, quantity float64) error {
	f.calls++
	f.find(id).Quantity = quantity
	return nil
}

func (f *fakeRepo) UpdateShoppingItem(_ context.Context, item *entities.ShoppingListItem) error {
	f.calls++
	*f.find(item.ID.String()) = *item
	return nil
}

func (f *fakeRepo) SetCompleted(_ context.Context, id string, completed bool) error {
	f.calls++
	f.find(id).Completed = completed
	return nil
}

func (f *fakeRepo) DeleteShoppingItem(_ context.Context, id string) error {
	f.calls++
	for i, item := range f.items {
		if item.ID.String() == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

type fakeMailer struct {
	to, subject, body string
	err               error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func TestAddShoppingItem_MergesIntoOpenRow(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewShoppingService(repo, &fakeMailer{})

	first, err := svc.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: "Onion", Quantity: 100}, owner)
	require.NoError(t, err)
	assert.False(t, first.Merged)

	second, err := svc.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: "onion", Quantity: 200}, owner)
	require.NoError(t, err)
	assert.True(t, second.Merged)
	assert.Equal(t, first.Item.ID, second.Item.ID)
	assert.Equal(t, 300.0, second.Item.Quantity)
	assert.Len(t, repo.items, 1)
}

func TestAddShoppingItem_DoesNotMergeIntoCompletedRow(t *testing.T) {
	repo := &fakeRepo{items: []*entities.ShoppingListItem{{
		ID: uuid.New(), UserID: uuid.MustParse(owner), Name: "milk", Quantity: 500, Completed: true,
	}}}
	svc := NewShoppingService(repo, &fakeMailer{})

	res, err := svc.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: "milk", Quantity: 200}, owner)
	require.NoError(t, err)
	assert.False(t, res.Merged)
	assert.Len(t, repo.items, 2)
}

func TestAddShoppingItem_RejectsInvalidInput(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewShoppingService(repo, &fakeMailer{})

	_, err := svc.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: " ", Quantity: 1}, owner)
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: "egg", Quantity: 0}, owner)
	assert.ErrorIs(t, err, domain.ErrNonPositiveQuantity)

	assert.Zero(t, repo.calls)
}

func TestToggleShoppingItem(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewShoppingService(repo, &fakeMailer{})
	added, err := svc.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: "rice", Quantity: 1000}, owner)
	require.NoError(t, err)

	toggled, err := svc.ToggleShoppingItem(context.Background(), added.Item.ID, owner)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	open, err := svc.ListOpenQuantities(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, open)

	toggled, err = svc.ToggleShoppingItem(context.Background(), added.Item.ID, owner)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestReopenedDuplicateLeavesOlderRowAsMergeTarget(t *testing.T) {
	older := &entities.ShoppingListItem{
		ID: uuid.New(), UserID: uuid.MustParse(owner), Name: "milk", Quantity: 500, Completed: true,
	}
	repo := &fakeRepo{items: []*entities.ShoppingListItem{older}}
	svc := NewShoppingService(repo, &fakeMailer{})

	newer, err := svc.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: "milk", Quantity: 200}, owner)
	require.NoError(t, err)
	require.False(t, newer.Merged)

	_, err = svc.ToggleShoppingItem(context.Background(), older.ID.String(), owner)
	require.NoError(t, err)

	open, err := svc.ListOpenQuantities(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, open, 2)

	merged, err := svc.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: "Milk", Quantity: 100}, owner)
	require.NoError(t, err)
	assert.True(t, merged.Merged)
	assert.Equal(t, older.ID.String(), merged.Item.ID)
	assert.Equal(t, 600.0, merged.Item.Quantity)
	assert.Equal(t, 200.0, repo.find(newer.Item.ID).Quantity)
}

func TestUpdateAndDeleteShoppingItem(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewShoppingService(repo, &fakeMailer{})
	added, err := svc.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: "pasta", Quantity: 500}, owner)
	require.NoError(t, err)

	updated, err := svc.UpdateShoppingItem(context.Background(), added.Item.ID, domain.UpdateShoppingItemRequest{Name: " Penne ", Quantity: 250}, owner)
	require.NoError(t, err)
	assert.Equal(t, "Penne", updated.Name)
	assert.Equal(t, 250.0, updated.Quantity)

	_, err = svc.UpdateShoppingItem(context.Background(), added.Item.ID, domain.UpdateShoppingItemRequest{Name: "Penne", Quantity: 1}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	require.NoError(t, svc.DeleteShoppingItem(context.Background(), added.Item.ID, owner))
	assert.Empty(t, repo.items)

	err = svc.DeleteShoppingItem(context.Background(), added.Item.ID, owner)
	assert.ErrorIs(t, err, domain.ErrShoppingItemNotFound)
}

func TestShareShoppingList(t *testing.T) {
	repo := &fakeRepo{}
	mailer := &fakeMailer{}
	svc := NewShoppingService(repo, mailer)

	err := svc.ShareShoppingList(context.Background(), domain.ShareShoppingListRequest{Email: "a@b.co"}, owner)
	assert.ErrorIs(t, err, domain.ErrEmptyShoppingList)

	_, err = svc.AddShoppingItem(context.Background(), domain.AddShoppingItemRequest{Name: "<b>eggs</b>", Quantity: 12}, owner)
	require.NoError(t, err)

	require.NoError(t, svc.ShareShoppingList(context.Background(), domain.ShareShoppingListRequest{Email: "a@b.co"}, owner))
	assert.Equal(t, "a@b.co", mailer.to)
	assert.Contains(t, mailer.body, "&lt;b&gt;eggs&lt;/b&gt;: 12g")

	mailer.err = errors.New("smtp down")
	err = svc.ShareShoppingList(context.Background(), domain.ShareShoppingListRequest{Email: "a@b.co"}, owner)
	assert.EqualError(t, err, "smtp down")
}
