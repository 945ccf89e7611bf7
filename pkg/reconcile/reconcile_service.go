package reconcile

import (
	"context"
	"pantry-manager/domain"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"
)

type (
	IngredientSource interface {
		IngredientQuantities(ctx context.Context, recipeID string) ([]domain.Quantity, error)
	}

	PantrySource interface {
		ListQuantities(ctx context.Context, ownerID string) ([]domain.Quantity, error)
	}

	ShoppingSource interface {
		ListOpenQuantities(ctx context.Context, ownerID string) ([]domain.Quantity, error)
	}

	ReconcileService interface {
		CheckBeforeCook(ctx context.Context, recipeID string, ownerID string) (domain.CheckIngredientsResponse, error)
		AddShortfalls(ctx context.Context, ownerID string, missing []domain.MissingIngredient) (domain.AddShortfallsResponse, error)
	}

	reconcileService struct {
		ingredients IngredientSource
		pantry      PantrySource
		shopping    ShoppingSource
		writer      ShoppingListWriter
		policy      MatchPolicy
		metrics     *Metrics
	}
)

const ShoppingListPath = "/api/v1/shopping-list"

func NewReconcileService(
	ingredients IngredientSource,
	pantry PantrySource,
	shopping ShoppingSource,
	writer ShoppingListWriter,
	policy MatchPolicy,
) ReconcileService {
	return &reconcileService{
		ingredients: ingredients,
		pantry:      pantry,
		shopping:    shopping,
		writer:      writer,
		policy:      policy,
		metrics:     NewMetrics(),
	}
}

func (s *reconcileService) CheckBeforeCook(ctx context.Context, recipeID string, ownerID string) (domain.CheckIngredientsResponse, error) {
	ingredients, err := s.ingredients.IngredientQuantities(ctx, recipeID)
	if err != nil {
		s.metrics.ChecksTotal.WithLabelValues("error").Inc()
		return domain.CheckIngredientsResponse{}, err
	}

	var pantry, shopping []domain.Quantity
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pantry, err = s.pantry.ListQuantities(gctx, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		shopping, err = s.shopping.ListOpenQuantities(gctx, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Errorf("reconcile: failed to load stock for recipe %s: %v", recipeID, err)
		s.metrics.ChecksTotal.WithLabelValues("error").Inc()
		return domain.CheckIngredientsResponse{}, err
	}

	missing := Reconcile(ingredients, pantry, shopping, s.policy)
	if len(missing) > 0 {
		s.metrics.ChecksTotal.WithLabelValues("missing").Inc()
		s.metrics.MissingIngredientsTotal.Add(float64(len(missing)))
	} else {
		s.metrics.ChecksTotal.WithLabelValues("can_cook").Inc()
	}

	return domain.CheckIngredientsResponse{
		Missing:  missing,
		CanCook:  len(missing) == 0,
		RecipeID: recipeID,
	}, nil
}

func (s *reconcileService) AddShortfalls(ctx context.Context, ownerID string, missing []domain.MissingIngredient) (domain.AddShortfallsResponse, error) {
	for _, m := range missing {
		if m.Shortfall() <= 0 {
			return domain.AddShortfallsResponse{}, domain.ErrNoShortfall
		}
	}

	result, err := Merge(ctx, s.writer, ownerID, missing, s.metrics)
	res := domain.AddShortfallsResponse{
		Applied: result.Applied,
		Next:    ShoppingListPath,
	}
	if err != nil {
		log.Errorf("reconcile: merge stopped after %d of %d entries: %v", len(result.Applied), len(missing), err)
		return res, err
	}

	return res, nil
}
