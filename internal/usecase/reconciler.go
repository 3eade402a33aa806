package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bazarfresh/backend/internal/domain"
	"go.uber.org/zap"
)

const (
	tagOpen          = "[BUY_RECIPE_"
	basketMarkerFmt  = "\n\n[BUY_INGREDIENTS: %s]"
	fallbackPrice    = 100.0
	maxFallbackItems = 3
)

// IngredientMatcher resolves ingredient names against the catalog. Satisfied
// by *InventoryMatcher.
type IngredientMatcher interface {
	Match(ctx context.Context, ingredients []string) (*domain.MatchResult, error)
}

// Reconciler rewrites machine-generated recipe text: every well-formed
// [BUY_RECIPE_N: a, b, c] tag is replaced exactly once with a priced
// [BUY_INGREDIENTS: <JSON>] buy basket resolved through the inventory
// matcher. Text outside tags passes through byte-for-byte, and malformed tag
// candidates are treated as plain text. Reconcile never fails outward:
// catalog trouble degrades to placeholder pricing so the client always gets
// an actionable basket.
type Reconciler struct {
	matcher IngredientMatcher
	logger  *zap.Logger
}

// NewReconciler creates a reconciler backed by the given matcher.
func NewReconciler(matcher IngredientMatcher, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		matcher: matcher,
		logger:  logger,
	}
}

// recipeTag is one parsed [BUY_RECIPE_N: ...] occurrence.
type recipeTag struct {
	index       int
	ingredients []string
}

// Reconcile scans text left to right and replaces each well-formed recipe
// tag with its buy basket marker.
func (r *Reconciler) Reconcile(ctx context.Context, text string) string {
	var out strings.Builder
	rest := text

	for {
		idx := strings.Index(rest, tagOpen)
		if idx < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:idx])

		tag, consumed, ok := parseRecipeTag(rest[idx:])
		if !ok {
			// Malformed tag syntax: keep the opener as plain text and keep
			// scanning after it.
			out.WriteString(tagOpen)
			rest = rest[idx+len(tagOpen):]
			continue
		}

		out.WriteString(r.basketMarker(ctx, tag))
		rest = rest[idx+consumed:]
	}

	return out.String()
}

// parseRecipeTag parses a tag at the start of s, which must begin with
// tagOpen. It returns the parsed tag, the number of bytes consumed, and
// whether the candidate was well formed (digits, a colon, and a closing
// bracket, in that order).
func parseRecipeTag(s string) (recipeTag, int, bool) {
	i := len(tagOpen)

	digitStart := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digitStart {
		return recipeTag{}, 0, false
	}
	index, err := strconv.Atoi(s[digitStart:i])
	if err != nil {
		return recipeTag{}, 0, false
	}

	if i >= len(s) || s[i] != ':' {
		return recipeTag{}, 0, false
	}
	i++

	end := strings.IndexByte(s[i:], ']')
	if end < 0 {
		return recipeTag{}, 0, false
	}

	return recipeTag{
		index:       index,
		ingredients: splitIngredients(s[i : i+end]),
	}, i + end + 1, true
}

// splitIngredients splits the raw capture on commas, trimming each token.
// Interior empty tokens (from consecutive commas) are preserved as empty
// strings; a capture that trims to nothing yields zero tokens.
func splitIngredients(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	tokens := strings.Split(list, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	return tokens
}

// basketMarker resolves one tag into its replacement marker.
func (r *Reconciler) basketMarker(ctx context.Context, tag recipeTag) string {
	result, err := r.matcher.Match(ctx, tag.ingredients)
	if err != nil {
		r.logger.Warn("inventory lookup failed, using placeholder prices",
			zap.Int("recipe", tag.index),
			zap.Error(err),
		)
		return renderBasket(fallbackBasket(tag.ingredients))
	}

	if !result.Matched() {
		return renderBasket(fallbackBasket(tag.ingredients))
	}

	basket := domain.BuyBasket{Items: make([]domain.BasketItem, 0, len(result.Available)+len(result.Purchasable))}
	for _, p := range result.Available {
		basket.Items = append(basket.Items, domain.BasketItem{Name: p.Name, Price: p.Price})
		basket.Total += p.Price
	}
	for _, p := range result.Purchasable {
		basket.Items = append(basket.Items, domain.BasketItem{Name: p.Name, Price: p.Price})
		basket.Total += p.Price
	}

	r.logger.Debug("recipe tag reconciled",
		zap.Int("recipe", tag.index),
		zap.Int("items", len(basket.Items)),
		zap.Float64("total", basket.Total),
	)
	return renderBasket(basket)
}

// fallbackBasket prices up to the first three raw tokens at a flat
// placeholder value so the client always receives a basket it can render.
func fallbackBasket(ingredients []string) domain.BuyBasket {
	n := len(ingredients)
	if n > maxFallbackItems {
		n = maxFallbackItems
	}
	basket := domain.BuyBasket{Items: make([]domain.BasketItem, 0, n)}
	for _, ing := range ingredients[:n] {
		basket.Items = append(basket.Items, domain.BasketItem{Name: ing, Price: fallbackPrice})
		basket.Total += fallbackPrice
	}
	return basket
}

// renderBasket serializes the basket into the marker the frontend parses.
func renderBasket(basket domain.BuyBasket) string {
	payload, err := json.Marshal(basket)
	if err != nil {
		// A BuyBasket of strings and floats cannot fail to marshal; keep the
		// contract anyway.
		payload = []byte(`{"items":[],"total":0}`)
	}
	return fmt.Sprintf(basketMarkerFmt, payload)
}
