package usecase

import (
	"context"

	"github.com/bazarfresh/backend/internal/domain"
)

// fakeCatalog is a CatalogGateway test double backed by a fixed slice.
type fakeCatalog struct {
	products []domain.Product
	err      error
	calls    int
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

// fakeKnowledge is a KnowledgeGateway test double.
type fakeKnowledge struct {
	recipes []domain.RecipeDoc
	err     error
}

func (f *fakeKnowledge) SearchRecipes(ctx context.Context, query string, limit int) ([]domain.RecipeDoc, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recipes, nil
}

// fakeGenerator is a TextGenerator test double. When respond is set it is
// called with the prompt; otherwise reply/err are returned as-is.
type fakeGenerator struct {
	reply   string
	err     error
	respond func(prompt string) (string, error)
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.respond != nil {
		return f.respond(prompt)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// fakeMatcher is an IngredientMatcher test double.
type fakeMatcher struct {
	result *domain.MatchResult
	err    error
	inputs [][]string
}

func (f *fakeMatcher) Match(ctx context.Context, ingredients []string) (*domain.MatchResult, error) {
	f.inputs = append(f.inputs, ingredients)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &domain.MatchResult{}, nil
}
