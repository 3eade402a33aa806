package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bazarfresh/backend/internal/domain"
	"go.uber.org/zap"
)

// InventoryMatcher resolves free-text ingredient names against the live
// product catalog. The catalog snapshot is fetched fresh on every call -
// there is deliberately no caching, so prices and stock are always current.
type InventoryMatcher struct {
	catalog domain.CatalogGateway
	logger  *zap.Logger
}

// NewInventoryMatcher creates a matcher backed by the given catalog gateway.
func NewInventoryMatcher(catalog domain.CatalogGateway, logger *zap.Logger) *InventoryMatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryMatcher{
		catalog: catalog,
		logger:  logger,
	}
}

// Match partitions the given ingredient names into products that are in
// stock (Available) and products that exist in the catalog but should be
// added to the shopper's basket (Purchasable, summed into TotalCost).
//
// Matching is intentionally permissive: an ingredient matches a product when
// either lowercased string contains the other, which tolerates generated
// phrasings like "Ginger" against "Fresh Ginger, 100g". The first catalog
// row satisfying the predicate wins; there is no scoring. Duplicate
// ingredient names are resolved per occurrence. Ingredients with no catalog
// match at all are silently dropped.
func (m *InventoryMatcher) Match(ctx context.Context, ingredients []string) (*domain.MatchResult, error) {
	products, err := m.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	result := &domain.MatchResult{}

	for _, ingredient := range ingredients {
		ingLower := strings.ToLower(ingredient)

		// First pass: an in-stock match counts as available.
		found := false
		for _, p := range products {
			if containsEither(ingLower, strings.ToLower(p.Name)) && p.InStock() {
				result.Available = append(result.Available, p)
				found = true
				break
			}
		}
		if found {
			continue
		}

		// Second pass: the catalog still sells it, so it can be bought even
		// when nothing is on hand right now.
		for _, p := range products {
			if containsEither(ingLower, strings.ToLower(p.Name)) {
				result.Purchasable = append(result.Purchasable, p)
				result.TotalCost += p.Price
				found = true
				break
			}
		}

		if !found {
			m.logger.Debug("ingredient not in catalog", zap.String("ingredient", ingredient))
		}
	}

	m.logger.Debug("inventory match complete",
		zap.Int("ingredients", len(ingredients)),
		zap.Int("available", len(result.Available)),
		zap.Int("purchasable", len(result.Purchasable)),
		zap.Float64("total_cost", result.TotalCost),
	)

	return result, nil
}

// containsEither reports bidirectional substring containment between two
// already-lowercased strings.
func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
