package domain

import "context"

// CatalogGateway defines read access to the live product catalog.
type CatalogGateway interface {
	// ListProducts returns the full catalog snapshot in the gateway's stable
	// enumeration order. Callers must not cache the result across requests.
	ListProducts(ctx context.Context) ([]Product, error)

	// SearchProducts returns products whose name or category matches the
	// query, in-stock items first.
	SearchProducts(ctx context.Context, query string) ([]Product, error)
}

// KnowledgeGateway defines semantic search over the recipe knowledge base.
// Ranking and embeddings live entirely behind this boundary.
type KnowledgeGateway interface {
	SearchRecipes(ctx context.Context, query string, limit int) ([]RecipeDoc, error)
}

// TextGenerator defines a single synchronous call to the generative model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
