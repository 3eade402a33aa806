package domain

// Product represents a single catalog row from the store inventory.
// The catalog is administered externally; the core only reads it.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Category      string  `json:"category,omitempty"`
	StockQuantity int     `json:"stock_quantity"`
	Description   string  `json:"description,omitempty"`
}

// InStock reports whether the product can be fulfilled from current stock.
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

// MatchResult is the outcome of resolving one ingredient list against the
// catalog. Each ingredient occurrence lands in at most one bucket: Available
// if a matching product is in stock, Purchasable if it exists in the catalog
// but could not be served from stock. TotalCost is the sum of Purchasable
// prices.
type MatchResult struct {
	Available   []Product
	Purchasable []Product
	TotalCost   float64
}

// Matched reports whether any ingredient matched the catalog at all.
func (r *MatchResult) Matched() bool {
	return len(r.Available) > 0 || len(r.Purchasable) > 0
}

// BasketItem is a single priced line of a buy basket.
type BasketItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// BuyBasket is the shoppable payload embedded back into the chat response as
// a [BUY_INGREDIENTS: <JSON>] marker. The JSON key names are a wire contract
// with the frontend cart and must not change.
type BuyBasket struct {
	Items []BasketItem `json:"items"`
	Total float64      `json:"total"`
}

// RecipeDoc is one hit from the recipe knowledge search.
type RecipeDoc struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Similarity   float64  `json:"similarity,omitempty"`
}
