package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the product catalog cannot be read
	ErrCatalogUnavailable = errors.New("product catalog unavailable")

	// ErrKnowledgeUnavailable is returned when the recipe knowledge search fails
	ErrKnowledgeUnavailable = errors.New("recipe knowledge base unavailable")

	// ErrClassifierUnavailable is returned when intent classification cannot reach the model
	ErrClassifierUnavailable = errors.New("intent classifier unavailable")

	// ErrGenerationUnavailable is returned when the generative model call fails
	ErrGenerationUnavailable = errors.New("text generation unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
