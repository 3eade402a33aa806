package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bazarfresh/backend/config"
	"github.com/bazarfresh/backend/internal/domain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client reads the product catalog and the recipe knowledge base through the
// Supabase REST (PostgREST) interface. It implements domain.CatalogGateway
// and domain.KnowledgeGateway. All access is read-only.
type Client struct {
	client      *resty.Client
	searchLimit int
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a Supabase REST client from configuration.
func NewClient(cfg config.SupabaseConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("apikey", cfg.Key).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Key))

	return &Client{
		client:      client,
		searchLimit: cfg.SearchLimit,
		rateLimiter: rate.NewLimiter(rate.Limit(10), 20),
		logger:      logger,
	}
}

// ListProducts returns the full catalog snapshot ordered by id, so the
// enumeration order the matcher sees is stable between calls.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "id.asc").
		Get("/rest/v1/products")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrCatalogUnavailable, resp.StatusCode(), resp.String())
	}

	var products []domain.Product
	if err := json.Unmarshal(resp.Body(), &products); err != nil {
		return nil, fmt.Errorf("%w: decode products: %v", domain.ErrCatalogUnavailable, err)
	}

	c.logger.Debug("catalog snapshot fetched", zap.Int("products", len(products)))
	return products, nil
}

// SearchProducts returns products whose name or category matches the query,
// in-stock items first. Mirrors the storefront's case-insensitive ilike
// search.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "stock_quantity.desc").
		SetQueryParam("limit", fmt.Sprintf("%d", c.searchLimit))
	if query != "" {
		req.SetQueryParam("or", fmt.Sprintf("(name.ilike.*%s*,category.ilike.*%s*)", query, query))
	}

	resp, err := req.Get("/rest/v1/products")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrCatalogUnavailable, resp.StatusCode(), resp.String())
	}

	var products []domain.Product
	if err := json.Unmarshal(resp.Body(), &products); err != nil {
		return nil, fmt.Errorf("%w: decode products: %v", domain.ErrCatalogUnavailable, err)
	}

	c.logger.Debug("product search",
		zap.String("query", query),
		zap.Int("hits", len(products)),
	)
	return products, nil
}

// searchRecipesParams is the body of the search_recipes RPC. Embedding and
// similarity ranking happen inside the database function.
type searchRecipesParams struct {
	Query      string `json:"query"`
	MatchCount int    `json:"match_count"`
}

// SearchRecipes runs the semantic recipe search RPC and returns the ranked
// hits.
func (c *Client) SearchRecipes(ctx context.Context, query string, limit int) ([]domain.RecipeDoc, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(searchRecipesParams{Query: query, MatchCount: limit}).
		Post("/rest/v1/rpc/search_recipes")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrKnowledgeUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrKnowledgeUnavailable, resp.StatusCode(), resp.String())
	}

	var recipes []domain.RecipeDoc
	if err := json.Unmarshal(resp.Body(), &recipes); err != nil {
		return nil, fmt.Errorf("%w: decode recipes: %v", domain.ErrKnowledgeUnavailable, err)
	}

	c.logger.Debug("recipe search",
		zap.String("query", query),
		zap.Int("hits", len(recipes)),
	)
	return recipes, nil
}
