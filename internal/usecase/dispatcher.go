package usecase

import (
	"context"

	"github.com/bazarfresh/backend/internal/domain"
	"go.uber.org/zap"
)

// Classifier determines the intent of an utterance. Satisfied by
// *IntentClassifier.
type Classifier interface {
	Classify(ctx context.Context, utterance string) (domain.Intent, error)
}

// TagReconciler rewrites recipe tags into buy baskets. Satisfied by
// *Reconciler.
type TagReconciler interface {
	Reconcile(ctx context.Context, text string) string
}

// Degraded responses. Every dispatch branch has one: no collaborator failure
// ever reaches the caller as an error, the shopper always sees a complete,
// actionable message.
const (
	classifierDownMessage = `### ⚠️ Service Temporarily Unavailable

I'm having trouble connecting to the AI service right now. This could be due to:

- **API Key Issues**: The model API key may be invalid or expired
- **Model Availability**: The selected model may not be available
- **Rate Limits**: API quota may have been exceeded

**Meanwhile, you can:**
- 📞 Call **16716** for immediate assistance
- 🌐 Visit **bazarfresh.com** to browse products
- 📱 Use our mobile app

Sorry for the inconvenience! 😊`

	recipesDownMessage = `### 👨‍🍳 Recipe Feature Temporarily Unavailable

I'd love to help you discover amazing recipes with your ingredients! 🥘

Unfortunately I can't reach our recipe database right now.

**Meanwhile, I can help you with:**
- 🛒 Product availability and prices
- 📞 Customer support questions (or call **16716**)
- 🚚 Delivery information
- 💳 Refund and return policies

What else can I assist you with today? 😊`

	productsDownMessage = `### 🛍️ Oops! Having Trouble Accessing Products

I'd love to help you find what you're looking for, but I'm having trouble connecting to our product catalog right now. 😔

**Here's what you can do:**
- 🌐 Visit **bazarfresh.com** - shop online anytime
- 📞 Call **16716** - our team is ready to help!

**Or I can help you with:**
- 👨‍🍳 Recipe suggestions based on ingredients
- 🚚 Delivery timing and areas
- 💳 Return and refund policies

What would you like to know? 😊`

	genericDownMessage = "I'm having trouble processing your request. Please try again or contact support at 16716."
)

// Dispatcher routes a classified chat message to the matching handler and
// normalizes every collaborator failure into a fixed user-facing response.
type Dispatcher struct {
	classifier Classifier
	reconciler TagReconciler
	catalog    domain.CatalogGateway
	knowledge  domain.KnowledgeGateway
	generator  domain.TextGenerator
	recipeK    int
	logger     *zap.Logger
}

// NewDispatcher wires the dispatcher with its collaborators. recipeK is the
// number of knowledge hits fed into the chef prompt.
func NewDispatcher(
	classifier Classifier,
	reconciler TagReconciler,
	catalog domain.CatalogGateway,
	knowledge domain.KnowledgeGateway,
	generator domain.TextGenerator,
	recipeK int,
	logger *zap.Logger,
) *Dispatcher {
	if recipeK <= 0 {
		recipeK = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		classifier: classifier,
		reconciler: reconciler,
		catalog:    catalog,
		knowledge:  knowledge,
		generator:  generator,
		recipeK:    recipeK,
		logger:     logger,
	}
}

// Dispatch processes one chat message end to end and always returns a
// complete response string, never an error.
func (d *Dispatcher) Dispatch(ctx context.Context, message string) string {
	intent, err := d.classifier.Classify(ctx, message)
	if err != nil {
		// Almost always a misconfiguration (bad key, dead model); retrying
		// won't fix it, so fail fast with guidance.
		d.logger.Error("intent classification failed", zap.Error(err))
		return classifierDownMessage
	}

	d.logger.Info("dispatching message", zap.String("intent", intent.String()))

	switch intent {
	case domain.IntentCooking:
		return d.handleCooking(ctx, message)
	case domain.IntentSupport:
		return d.handleSupport(ctx, message)
	case domain.IntentProduct:
		return d.handleProduct(ctx, message)
	case domain.IntentOther:
		return d.handleGeneral(ctx, message)
	default:
		return d.handleGeneral(ctx, message)
	}
}

// handleCooking runs the recipe path: knowledge search, chef generation,
// then tag reconciliation against live inventory.
func (d *Dispatcher) handleCooking(ctx context.Context, message string) string {
	recipes, err := d.knowledge.SearchRecipes(ctx, message, d.recipeK)
	if err != nil {
		d.logger.Error("recipe search failed", zap.Error(err))
		return recipesDownMessage
	}

	text, err := d.generator.Generate(ctx, chefPrompt(message, recipes))
	if err != nil {
		d.logger.Error("chef generation failed", zap.Error(err))
		return recipesDownMessage
	}

	return d.reconciler.Reconcile(ctx, text)
}

func (d *Dispatcher) handleSupport(ctx context.Context, message string) string {
	text, err := d.generator.Generate(ctx, supportPrompt(message))
	if err != nil {
		d.logger.Error("support generation failed", zap.Error(err))
		return genericDownMessage
	}
	return text
}

func (d *Dispatcher) handleProduct(ctx context.Context, message string) string {
	products, err := d.catalog.SearchProducts(ctx, message)
	if err != nil {
		d.logger.Error("product search failed", zap.Error(err))
		return productsDownMessage
	}

	text, err := d.generator.Generate(ctx, productPrompt(message, products))
	if err != nil {
		d.logger.Error("product generation failed", zap.Error(err))
		return productsDownMessage
	}
	return text
}

func (d *Dispatcher) handleGeneral(ctx context.Context, message string) string {
	text, err := d.generator.Generate(ctx, generalPrompt(message))
	if err != nil {
		d.logger.Error("general chat generation failed", zap.Error(err))
		return genericDownMessage
	}
	return text
}
