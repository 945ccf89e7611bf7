package pantry

import (
	"context"
	"errors"
	"pantry-manager/domain"
	"pantry-manager/entities"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PantryService interface {
		AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest, ownerID string) (domain.PantryItemResponse, error)
		UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest, ownerID string) (domain.PantryItemResponse, error)
		DeletePantryItem(ctx context.Context, id string, ownerID string) error
		GetPantryItems(ctx context.Context, ownerID string, page, limit int) ([]domain.PantryItemResponse, int64, error)
		GetPantryItemByID(ctx context.Context, id string, ownerID string) (domain.PantryItemResponse, error)
		ListQuantities(ctx context.Context, ownerID string) ([]domain.Quantity, error)
	}

	pantryService struct {
		pantryRepository PantryRepository
		now              func() time.Time
	}
)

func NewPantryService(pantryRepository PantryRepository) PantryService {
	return &pantryService{
		pantryRepository: pantryRepository,
		now:              time.Now,
	}
}

func (s *pantryService) AddPantryItem(ctx context.Context, req domain.AddPantryItemRequest, ownerID string) (domain.PantryItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.PantryItemResponse{}, domain.ErrInvalidName
	}

	if req.Quantity < 0 {
		return domain.PantryItemResponse{}, domain.ErrInvalidQuantity
	}

	expirationDate, err := time.Parse(domain.DateLayout, strings.TrimSpace(req.ExpirationDate))
	if err != nil {
		return domain.PantryItemResponse{}, domain.ErrInvalidExpiryDate
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.PantryItemResponse{}, domain.ErrParseUUID
	}

	item := &entities.PantryItem{
		ID:             uuid.New(),
		UserID:         ownerUUID,
		Name:           name,
		Quantity:       req.Quantity,
		ExpirationDate: expirationDate,
	}

	if err := s.pantryRepository.AddPantryItem(ctx, item); err != nil {
		log.Errorf("pantry: failed to add item %q: %v", name, err)
		return domain.PantryItemResponse{}, err
	}

	return s.toResponse(item), nil
}

func (s *pantryService) UpdatePantryItem(ctx context.Context, id string, req domain.UpdatePantryItemRequest, ownerID string) (domain.PantryItemResponse, error) {
	item, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}

	if req.Name != "" {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return domain.PantryItemResponse{}, domain.ErrInvalidName
		}
		item.Name = name
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.PantryItemResponse{}, domain.ErrInvalidQuantity
		}
		item.Quantity = *req.Quantity
	}

	if req.ExpirationDate != "" {
		expirationDate, err := time.Parse(domain.DateLayout, strings.TrimSpace(req.ExpirationDate))
		if err != nil {
			return domain.PantryItemResponse{}, domain.ErrInvalidExpiryDate
		}
		item.ExpirationDate = expirationDate
	}

	if err := s.pantryRepository.UpdatePantryItem(ctx, item); err != nil {
		log.Errorf("pantry: failed to update item %s: %v", id, err)
		return domain.PantryItemResponse{}, err
	}

	return s.toResponse(item), nil
}

func (s *pantryService) DeletePantryItem(ctx context.Context, id string, ownerID string) error {
	if _, err := s.getOwned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.pantryRepository.DeletePantryItem(ctx, id); err != nil {
		log.Errorf("pantry: failed to delete item %s: %v", id, err)
		return err
	}
	return nil
}

func (s *pantryService) GetPantryItems(ctx context.Context, ownerID string, page, limit int) ([]domain.PantryItemResponse, int64, error) {
	items, count, err := s.pantryRepository.GetPantryItems(ctx, ownerID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.PantryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, s.toResponse(item))
	}

	return response, count, nil
}

func (s *pantryService) GetPantryItemByID(ctx context.Context, id string, ownerID string) (domain.PantryItemResponse, error) {
	item, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return domain.PantryItemResponse{}, err
	}
	return s.toResponse(item), nil
}

func (s *pantryService) ListQuantities(ctx context.Context, ownerID string) ([]domain.Quantity, error) {
	items, err := s.pantryRepository.GetAllPantryItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	quantities := make([]domain.Quantity, 0, len(items))
	for _, item := range items {
		quantities = append(quantities, domain.Quantity{Name: item.Name, Quantity: item.Quantity})
	}
	return quantities, nil
}

func (s *pantryService) getOwned(ctx context.Context, id string, ownerID string) (*entities.PantryItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrPantryItemNotFound
	}

	item, err := s.pantryRepository.GetPantryItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPantryItemNotFound
		}
		return nil, err
	}

	if item.UserID.String() != ownerID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return item, nil
}

func (s *pantryService) toResponse(item *entities.PantryItem) domain.PantryItemResponse {
	days := daysUntil(s.now(), item.ExpirationDate)
	return domain.PantryItemResponse{
		ID:              item.ID.String(),
		Name:            item.Name,
		Quantity:        item.Quantity,
		ExpirationDate:  item.ExpirationDate,
		DaysUntilExpiry: days,
		ExpiryStatus:    expiryStatus(days),
		CreatedAt:       item.CreatedAt,
	}
}

// daysUntil counts whole calendar days between today and the expiration date.
func daysUntil(now, expirationDate time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expiry := time.Date(expirationDate.Year(), expirationDate.Month(), expirationDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(today).Hours() / 24)
}

func expiryStatus(days int) string {
	switch {
	case days < 0:
		return domain.ExpiryStatusExpired
	case days < 7:
		return domain.ExpiryStatusExpiring
	default:
		return domain.ExpiryStatusFresh
	}
}
