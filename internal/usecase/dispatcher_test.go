package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bazarfresh/backend/internal/domain"
)

// replyForIntent builds a generator that answers the classification prompt
// with the given token and every other prompt with reply.
func replyForIntent(token, reply string) *fakeGenerator {
	return &fakeGenerator{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Classify the following user query") {
			return token, nil
		}
		return reply, nil
	}}
}

// failAfterClassification builds a generator that classifies fine and then
// fails every subsequent call.
func failAfterClassification(token string) *fakeGenerator {
	return &fakeGenerator{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "Classify the following user query") {
			return token, nil
		}
		return "", errors.New("model unavailable")
	}}
}

func newTestDispatcher(gen *fakeGenerator, catalog *fakeCatalog, knowledge *fakeKnowledge) *Dispatcher {
	classifier := NewIntentClassifier(gen, nil)
	matcher := NewInventoryMatcher(catalog, nil)
	reconciler := NewReconciler(matcher, nil)
	return NewDispatcher(classifier, reconciler, catalog, knowledge, gen, 5, nil)
}

func TestDispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("cooking path reconciles recipe tags", func(t *testing.T) {
		gen := replyForIntent("COOKING_QUERY",
			"### 🍛 Chicken Curry\n\n**🛒 Missing Ingredients for this recipe:**\n[BUY_RECIPE_1: Onion, Garam Masala]")
		catalog := &fakeCatalog{products: []domain.Product{
			{ID: 1, Name: "Onion", Price: 40, StockQuantity: 300},
			{ID: 2, Name: "Garam Masala", Price: 120, StockQuantity: 0},
		}}
		knowledge := &fakeKnowledge{recipes: []domain.RecipeDoc{
			{Title: "Chicken Curry", Ingredients: []string{"Chicken", "Onion", "Garam Masala"}},
		}}

		out := newTestDispatcher(gen, catalog, knowledge).Dispatch(ctx, "what can I cook with chicken?")

		if strings.Contains(out, "[BUY_RECIPE_") {
			t.Error("response still contains an unreconciled recipe tag")
		}
		if !strings.Contains(out, "[BUY_INGREDIENTS:") {
			t.Error("response is missing the buy basket marker")
		}
	})

	t.Run("support path answers from the generator", func(t *testing.T) {
		gen := replyForIntent("SUPPORT_QUERY", "You can return any item at the door.")

		out := newTestDispatcher(gen, &fakeCatalog{}, &fakeKnowledge{}).Dispatch(ctx, "What is your return policy?")

		if out != "You can return any item at the door." {
			t.Errorf("out = %q, want the generator reply", out)
		}
	})

	t.Run("product path feeds catalog rows to the generator", func(t *testing.T) {
		gen := replyForIntent("PRODUCT_QUERY", "**Tomato** - 30 ✅")
		catalog := &fakeCatalog{products: []domain.Product{
			{ID: 1, Name: "Tomato", Price: 30, Category: "Vegetables", StockQuantity: 80},
		}}

		out := newTestDispatcher(gen, catalog, &fakeKnowledge{}).Dispatch(ctx, "How much is tomato?")

		if out != "**Tomato** - 30 ✅" {
			t.Errorf("out = %q, want the generator reply", out)
		}
		// The last prompt is the product prompt; it must carry the catalog row.
		last := gen.prompts[len(gen.prompts)-1]
		if !strings.Contains(last, "Tomato") || !strings.Contains(last, "price: 30") {
			t.Errorf("product prompt missing catalog data: %q", last)
		}
	})

	t.Run("other path answers general chat", func(t *testing.T) {
		gen := replyForIntent("OTHER", "Hello! How can I help you today? 😊")

		out := newTestDispatcher(gen, &fakeCatalog{}, &fakeKnowledge{}).Dispatch(ctx, "Hello")

		if out != "Hello! How can I help you today? 😊" {
			t.Errorf("out = %q, want the generator reply", out)
		}
	})

	t.Run("classifier failure returns the diagnostic without dispatching", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("402 quota exceeded")}

		out := newTestDispatcher(gen, &fakeCatalog{}, &fakeKnowledge{}).Dispatch(ctx, "anything")

		if out != classifierDownMessage {
			t.Errorf("out = %q, want the classifier diagnostic", out)
		}
		if len(gen.prompts) != 1 {
			t.Errorf("generator called %d times, want 1 (no further dispatch)", len(gen.prompts))
		}
	})

	t.Run("every branch degrades to a non-empty message with the hotline", func(t *testing.T) {
		intents := []string{"COOKING_QUERY", "SUPPORT_QUERY", "PRODUCT_QUERY", "OTHER"}

		for _, token := range intents {
			gen := failAfterClassification(token)
			catalog := &fakeCatalog{err: errors.New("catalog down")}
			knowledge := &fakeKnowledge{err: errors.New("knowledge down")}

			out := newTestDispatcher(gen, catalog, knowledge).Dispatch(ctx, "message")

			if strings.TrimSpace(out) == "" {
				t.Errorf("%s: degraded response is empty", token)
			}
			if !strings.Contains(out, "16716") {
				t.Errorf("%s: degraded response %q does not name the support hotline", token, out)
			}
		}
	})

	t.Run("knowledge failure on cooking path skips generation and reconciliation", func(t *testing.T) {
		gen := replyForIntent("COOKING_QUERY", "should never be used")
		knowledge := &fakeKnowledge{err: errors.New("rpc failed")}

		out := newTestDispatcher(gen, &fakeCatalog{}, knowledge).Dispatch(ctx, "recipe please")

		if out != recipesDownMessage {
			t.Errorf("out = %q, want recipesDownMessage", out)
		}
		if len(gen.prompts) != 1 {
			t.Errorf("generator called %d times, want 1 (classification only)", len(gen.prompts))
		}
	})
}
