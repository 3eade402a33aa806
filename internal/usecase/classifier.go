package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/bazarfresh/backend/internal/domain"
	"go.uber.org/zap"
)

// IntentClassifier maps a raw user utterance to an Intent by delegating the
// categorical decision to the generative model. The model is instructed to
// answer with exactly one category token; parsing is tolerant of extra prose
// around it.
type IntentClassifier struct {
	generator domain.TextGenerator
	logger    *zap.Logger
}

// NewIntentClassifier creates a classifier backed by the given generator.
func NewIntentClassifier(generator domain.TextGenerator, logger *zap.Logger) *IntentClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntentClassifier{
		generator: generator,
		logger:    logger,
	}
}

// Classify returns the intent category for the utterance. A response that
// mentions several tokens resolves by fixed priority (cooking, support,
// product), not by confidence; anything else is OTHER. A failed model call
// returns ErrClassifierUnavailable.
func (c *IntentClassifier) Classify(ctx context.Context, utterance string) (domain.Intent, error) {
	prompt := classificationPrompt(utterance)

	raw, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return domain.IntentOther, fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}

	intent := parseIntent(raw)
	c.logger.Debug("classified utterance",
		zap.String("intent", intent.String()),
		zap.String("raw", strings.TrimSpace(raw)),
	)
	return intent, nil
}

// parseIntent resolves the model's reply by substring containment in fixed
// priority order.
func parseIntent(raw string) domain.Intent {
	reply := strings.TrimSpace(raw)
	switch {
	case strings.Contains(reply, string(domain.IntentCooking)):
		return domain.IntentCooking
	case strings.Contains(reply, string(domain.IntentSupport)):
		return domain.IntentSupport
	case strings.Contains(reply, string(domain.IntentProduct)):
		return domain.IntentProduct
	default:
		return domain.IntentOther
	}
}
