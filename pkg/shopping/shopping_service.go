package shopping

import (
	"context"
	"errors"
	"pantry-manager/domain"
	"pantry-manager/entities"
	"pantry-manager/internal/utils/mailing"
	"pantry-manager/pkg/reconcile"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ShoppingService interface {
		GetShoppingItems(ctx context.Context, ownerID string, completed *bool) ([]domain.ShoppingItemResponse, error)
		AddShoppingItem(ctx context.Context, req domain.AddShoppingItemRequest, ownerID string) (domain.AddShoppingItemResponse, error)
		UpdateShoppingItem(ctx context.Context, id string, req domain.UpdateShoppingItemRequest, ownerID string) (domain.ShoppingItemResponse, error)
		ToggleShoppingItem(ctx context.Context, id string, ownerID string) (domain.ShoppingItemResponse, error)
		DeleteShoppingItem(ctx context.Context, id string, ownerID string) error
		ShareShoppingList(ctx context.Context, req domain.ShareShoppingListRequest, ownerID string) error
		ListOpenQuantities(ctx context.Context, ownerID string) ([]domain.Quantity, error)
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		mailer             mailing.Mailer
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, mailer mailing.Mailer) ShoppingService {
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		mailer:             mailer,
	}
}

func (s *shoppingService) GetShoppingItems(ctx context.Context, ownerID string, completed *bool) ([]domain.ShoppingItemResponse, error) {
	items, err := s.shoppingRepository.GetShoppingItems(ctx, ownerID, completed)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ShoppingItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toResponse(item))
	}
	return response, nil
}

// AddShoppingItem folds the quantity into an open row with the same name when
// one exists, otherwise opens a new row.
func (s *shoppingService) AddShoppingItem(ctx context.Context, req domain.AddShoppingItemRequest, ownerID string) (domain.AddShoppingItemResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return domain.AddShoppingItemResponse{}, domain.ErrInvalidName
	}
	if req.Quantity <= 0 {
		return domain.AddShoppingItemResponse{}, domain.ErrNonPositiveQuantity
	}

	entry, err := reconcile.MergeOne(ctx, s.shoppingRepository, ownerID, req.Name, req.Quantity)
	if err != nil {
		log.Errorf("shopping: failed to add %q: %v", req.Name, err)
		return domain.AddShoppingItemResponse{}, err
	}

	item, err := s.shoppingRepository.GetShoppingItemByID(ctx, entry.ItemID)
	if err != nil {
		return domain.AddShoppingItemResponse{}, err
	}

	return domain.AddShoppingItemResponse{
		Item:   toResponse(item),
		Merged: !entry.Created,
	}, nil
}

func (s *shoppingService) UpdateShoppingItem(ctx context.Context, id string, req domain.UpdateShoppingItemRequest, ownerID string) (domain.ShoppingItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ShoppingItemResponse{}, domain.ErrInvalidName
	}
	if req.Quantity <= 0 {
		return domain.ShoppingItemResponse{}, domain.ErrNonPositiveQuantity
	}

	item, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return domain.ShoppingItemResponse{}, err
	}

	item.Name = name
	item.Quantity = req.Quantity
	if err := s.shoppingRepository.UpdateShoppingItem(ctx, item); err != nil {
		log.Errorf("shopping: failed to update item %s: %v", id, err)
		return domain.ShoppingItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *shoppingService) ToggleShoppingItem(ctx context.Context, id string, ownerID string) (domain.ShoppingItemResponse, error) {
	item, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return domain.ShoppingItemResponse{}, err
	}

	item.Completed = !item.Completed
	if err := s.shoppingRepository.SetCompleted(ctx, id, item.Completed); err != nil {
		log.Errorf("shopping: failed to toggle item %s: %v", id, err)
		return domain.ShoppingItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *shoppingService) DeleteShoppingItem(ctx context.Context, id string, ownerID string) error {
	if _, err := s.getOwned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.shoppingRepository.DeleteShoppingItem(ctx, id); err != nil {
		log.Errorf("shopping: failed to delete item %s: %v", id, err)
		return err
	}
	return nil
}

func (s *shoppingService) ShareShoppingList(ctx context.Context, req domain.ShareShoppingListRequest, ownerID string) error {
	open := false
	items, err := s.shoppingRepository.GetShoppingItems(ctx, ownerID, &open)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrEmptyShoppingList
	}

	lines := make([]mailing.ListLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, mailing.ListLine{Name: item.Name, Quantity: item.Quantity})
	}

	if err := s.mailer.Send(req.Email, "Your shopping list", mailing.ShoppingListBody(lines)); err != nil {
		log.Errorf("shopping: failed to send list to %s: %v", req.Email, err)
		return err
	}
	return nil
}

func (s *shoppingService) ListOpenQuantities(ctx context.Context, ownerID string) ([]domain.Quantity, error) {
	open := false
	items, err := s.shoppingRepository.GetShoppingItems(ctx, ownerID, &open)
	if err != nil {
		return nil, err
	}

	quantities := make([]domain.Quantity, 0, len(items))
	for _, item := range items {
		quantities = append(quantities, domain.Quantity{Name: item.Name, Quantity: item.Quantity})
	}
	return quantities, nil
}

func (s *shoppingService) getOwned(ctx context.Context, id string, ownerID string) (*entities.ShoppingListItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrShoppingItemNotFound
	}

	item, err := s.shoppingRepository.GetShoppingItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingItemNotFound
		}
		return nil, err
	}

	if item.UserID.String() != ownerID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return item, nil
}

func toResponse(item *entities.ShoppingListItem) domain.ShoppingItemResponse {
	return domain.ShoppingItemResponse{
		ID:        item.ID.String(),
		Name:      item.Name,
		Quantity:  item.Quantity,
		Completed: item.Completed,
		CreatedAt: item.CreatedAt,
	}
}
