package shopping

import (
	"context"
	"pantry-manager/entities"

	"gorm.io/gorm"
)

type (
	ShoppingRepository interface {
		CreateItem(ctx context.Context, item *entities.ShoppingListItem) error
		GetShoppingItemByID(ctx context.Context, id string) (*entities.ShoppingListItem, error)
		GetShoppingItems(ctx context.Context, ownerID string, completed *bool) ([]*entities.ShoppingListItem, error)
		FindOpenByName(ctx context.Context, ownerID string, name string) (*entities.ShoppingListItem, error)
		UpdateQuantity(ctx context.Context, id string, quantity float64) error
		UpdateShoppingItem(ctx context.Context, item *entities.ShoppingListItem) error
		SetCompleted(ctx context.Context, id string, completed bool) error
		DeleteShoppingItem(ctx context.Context, id string) error
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) CreateItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *shoppingRepository) GetShoppingItemByID(ctx context.Context, id string) (*entities.ShoppingListItem, error) {
	var item entities.ShoppingListItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) GetShoppingItems(ctx context.Context, ownerID string, completed *bool) ([]*entities.ShoppingListItem, error) {
	var items []*entities.ShoppingListItem

	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}

	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOpenByName returns the oldest open row whose trimmed, lower-cased name
// equals the given one.
func (r *shoppingRepository) FindOpenByName(ctx context.Context, ownerID string, name string) (*entities.ShoppingListItem, error) {
	var item entities.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND completed = ?", ownerID, false).
		Where("LOWER(TRIM(name)) = LOWER(TRIM(?))", name).
		Order("created_at asc").
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *shoppingRepository) UpdateQuantity(ctx context.Context, id string, quantity float64) error {
	return r.db.WithContext(ctx).Model(&entities.ShoppingListItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *shoppingRepository) UpdateShoppingItem(ctx context.Context, item *entities.ShoppingListItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *shoppingRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	return r.db.WithContext(ctx).Model(&entities.ShoppingListItem{}).
		Where("id = ?", id).
		Update("completed", completed).Error
}

func (r *shoppingRepository) DeleteShoppingItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingListItem{}).Error
}
