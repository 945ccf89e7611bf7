package reconcile

import (
	"pantry-manager/domain"
	"strings"
)

// MatchPolicy decides how duplicate-named pantry or shopping rows count
// towards availability.
type MatchPolicy int

const (
	// FirstMatch counts only the first row whose name matches.
	FirstMatch MatchPolicy = iota
	// SumMatches counts every matching row.
	SumMatches
)

// NormalizeName is the single matching key used by reconciliation and by
// shopping-list merge lookups.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Reconcile compares recipe ingredients against pantry stock plus open
// shopping-list quantities. The result keeps ingredient order and only lists
// ingredients whose combined availability is below the required quantity.
func Reconcile(ingredients, pantry, shopping []domain.Quantity, policy MatchPolicy) []domain.MissingIngredient {
	missing := make([]domain.MissingIngredient, 0)

	for _, ingredient := range ingredients {
		// a recipe that needs none of an ingredient never has a shortfall,
		// even when a stock row was stored negative
		if ingredient.Quantity <= 0 {
			continue
		}

		key := NormalizeName(ingredient.Name)
		pantryQty := lookup(pantry, key, policy)
		shoppingQty := lookup(shopping, key, policy)
		available := pantryQty + shoppingQty

		if available < ingredient.Quantity {
			missing = append(missing, domain.MissingIngredient{
				Name:                 ingredient.Name,
				RequiredQuantity:     ingredient.Quantity,
				AvailableQuantity:    available,
				PantryQuantity:       pantryQty,
				ShoppingListQuantity: shoppingQty,
			})
		}
	}

	return missing
}

func lookup(rows []domain.Quantity, key string, policy MatchPolicy) float64 {
	var total float64
	for _, row := range rows {
		if NormalizeName(row.Name) != key {
			continue
		}
		if policy == FirstMatch {
			return row.Quantity
		}
		total += row.Quantity
	}
	return total
}

// PolicyFromConfig maps the RECONCILE_SUM_DUPLICATES setting to a policy.
func PolicyFromConfig(value string) MatchPolicy {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return SumMatches
	default:
		return FirstMatch
	}
}
