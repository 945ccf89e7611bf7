package reconcile

import (
	"context"
	"errors"
	"fmt"
	"pantry-manager/domain"
	"pantry-manager/entities"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// ShoppingListWriter is the slice of the shopping-list store that merges
	// need. FindOpenByName returns gorm.ErrRecordNotFound when no open row
	// matches.
	ShoppingListWriter interface {
		FindOpenByName(ctx context.Context, ownerID string, name string) (*entities.ShoppingListItem, error)
		UpdateQuantity(ctx context.Context, id string, quantity float64) error
		CreateItem(ctx context.Context, item *entities.ShoppingListItem) error
	}

	MergeResult struct {
		Applied []domain.MergedEntry
	}

	// MergeError reports the entry that stopped a merge. Entries before it
	// stay committed.
	MergeError struct {
		Name string
		Err  error
	}
)

func (e *MergeError) Error() string {
	return fmt.Sprintf("failed to add %q to shopping list: %v", e.Name, e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}

// Merge adds each shortfall to the owner's open shopping list, one entry at a
// time. The first failing entry aborts the rest; nothing is rolled back.
func Merge(ctx context.Context, store ShoppingListWriter, ownerID string, missing []domain.MissingIngredient, metrics *Metrics) (MergeResult, error) {
	result := MergeResult{Applied: make([]domain.MergedEntry, 0, len(missing))}

	for _, m := range missing {
		entry, err := MergeOne(ctx, store, ownerID, m.Name, m.Shortfall())
		if err != nil {
			if metrics != nil {
				metrics.MergeEntriesTotal.WithLabelValues("failed").Inc()
			}
			return result, &MergeError{Name: m.Name, Err: err}
		}

		if metrics != nil {
			if entry.Created {
				metrics.MergeEntriesTotal.WithLabelValues("created").Inc()
			} else {
				metrics.MergeEntriesTotal.WithLabelValues("updated").Inc()
			}
		}
		result.Applied = append(result.Applied, entry)
	}

	return result, nil
}

// MergeOne adds quantity to the first open row named like name, or opens a
// new row when none exists.
func MergeOne(ctx context.Context, store ShoppingListWriter, ownerID string, name string, quantity float64) (domain.MergedEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.MergedEntry{}, domain.ErrInvalidName
	}
	if quantity <= 0 {
		return domain.MergedEntry{}, domain.ErrNoShortfall
	}

	existing, err := store.FindOpenByName(ctx, ownerID, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.MergedEntry{}, err
	}

	if existing != nil && err == nil {
		total := existing.Quantity + quantity
		if err := store.UpdateQuantity(ctx, existing.ID.String(), total); err != nil {
			return domain.MergedEntry{}, err
		}
		return domain.MergedEntry{
			Name:     existing.Name,
			ItemID:   existing.ID.String(),
			Added:    quantity,
			Quantity: total,
		}, nil
	}

	ownerUUID, err := uuid.Parse(ownerID)
	if err != nil {
		return domain.MergedEntry{}, domain.ErrParseUUID
	}

	item := &entities.ShoppingListItem{
		ID:       uuid.New(),
		UserID:   ownerUUID,
		Name:     name,
		Quantity: quantity,
	}
	if err := store.CreateItem(ctx, item); err != nil {
		return domain.MergedEntry{}, err
	}

	return domain.MergedEntry{
		Name:     item.Name,
		ItemID:   item.ID.String(),
		Added:    quantity,
		Quantity: quantity,
		Created:  true,
	}, nil
}
