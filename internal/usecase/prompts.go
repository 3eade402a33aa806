package usecase

import (
	"fmt"
	"strings"

	"github.com/bazarfresh/backend/internal/domain"
)

// classificationPrompt renders the fixed instruction template the model uses
// to pick an intent category. The exemplars matter: small models follow them
// far more reliably than the category descriptions alone.
func classificationPrompt(utterance string) string {
	return fmt.Sprintf(`Classify the following user query into one of these categories:

1. COOKING_QUERY - User wants recipe suggestions, cooking ideas, or meal planning
   Examples:
   - "I have chicken and rice, what can I cook?"
   - "Show me fish recipes"
   - "What can I make for dinner?"
   - "I want to cook something with potato"
   - "Suggest me a dessert recipe"
   - "Give me a recipe for breakfast"

2. PRODUCT_QUERY - User asks about specific product price, availability, or wants to buy something
   Examples:
   - "How much does tomato cost?"
   - "Is chicken available?"
   - "Show me vegetables"

3. SUPPORT_QUERY - User asks about policies, delivery, refunds, or customer service
   Examples:
   - "What is your return policy?"
   - "How long does delivery take?"
   - "How do I get a refund?"

4. OTHER - General greetings, thanks, or casual conversation
   Examples:
   - "Hello"
   - "Thank you"
   - "Who are you?"

User Query: "%s"

Return ONLY the category name (COOKING_QUERY, PRODUCT_QUERY, SUPPORT_QUERY, or OTHER).`, utterance)
}

// chefPrompt asks the model to present the found recipes and to emit one
// [BUY_RECIPE_N: ...] tag per recipe. The tags are rewritten into priced
// baskets by the Reconciler afterwards.
func chefPrompt(userQuery string, recipes []domain.RecipeDoc) string {
	var ctx strings.Builder
	for i, r := range recipes {
		fmt.Fprintf(&ctx, "Recipe %d: %s\n", i+1, r.Title)
		if r.Description != "" {
			fmt.Fprintf(&ctx, "Description: %s\n", r.Description)
		}
		if len(r.Ingredients) > 0 {
			ctx.WriteString("Ingredients:\n")
			for _, ing := range r.Ingredients {
				fmt.Fprintf(&ctx, "  - %s\n", ing)
			}
		}
		if r.Instructions != "" {
			fmt.Fprintf(&ctx, "Instructions: %s\n", r.Instructions)
		}
		ctx.WriteString("\n")
	}

	return fmt.Sprintf(`You are a friendly, enthusiastic Chef for BazarFresh, an online grocery platform.

Customer Query: "%s"

Here are recipes found for this customer:

%s
Present the top 2-3 most relevant recipes beautifully in markdown:
- An appetizing title with an emoji
- Brief description
- List of ingredients needed
- Simple cooking instructions

IMPORTANT: After EACH recipe, add a line that says:
**🛒 Missing Ingredients for this recipe:**

Then add a special tag: [BUY_RECIPE_X: INGREDIENTS_LIST]
Where X is the recipe number (1, 2, 3) and INGREDIENTS_LIST is comma-separated ingredients needed for that specific recipe.

Example:
[BUY_RECIPE_1: Onion, Garam Masala, Ginger, Turmeric]

Make it exciting and encourage them to cook!`, userQuery, ctx.String())
}

// supportKnowledge is the policy knowledge base embedded into the support
// prompt. Answers must come from here, not from the model's imagination.
const supportKnowledge = `[RETURN POLICY]
- "No Questions Asked" Return Policy: If you are dissatisfied with any item, you can return it to the delivery man at the door for a full refund.
- Perishables (Fish, Meat, Veg): Must be reported within 24 hours if issues are found after delivery.
- Non-Perishables (Packaged Goods): Can be returned within 7 days if unopened.
- How to return: Call 16716 or use the "Issue Report" button in the Order History tab.

[REFUND POLICY]
- Cash on Delivery: The amount is deducted from the total bill immediately.
- Online Payment (Card/Mobile Banking): Refunds are processed within 5-7 working days to the original payment method.
- Account Balance: Refunds can be instantly credited to your BazarFresh balance for future purchases.

[DELIVERY INFO]
- Slots: We deliver in 1-hour windows from 8:00 AM to 10:00 PM.
- Express Delivery: Available in select areas (delivery in 1 hour).
- Delivery Charge: Free for orders over 400. Regular charge is 29-49.

[CUSTOMER SUPPORT]
- Hotline: 16716 (Available 8 AM - 11 PM)
- Email: support@bazarfresh.com
- Live Chat: Available in the app menu.`

// supportPrompt renders the customer-support instruction with the knowledge
// base inlined.
func supportPrompt(userQuery string) string {
	return fmt.Sprintf(`You are a helpful, friendly, and professional Customer Support Agent for BazarFresh, an online grocery platform.

Use ONLY the following knowledge base to answer accurately:

%s

Customer Question: "%s"

Be warm and empathetic, format the answer in clean markdown with headers and bullet points, bold the important numbers and times, and end with a friendly offer of further assistance.`, supportKnowledge, userQuery)
}

// productPrompt renders the product-showcase instruction with the catalog
// rows found for the query.
func productPrompt(userQuery string, products []domain.Product) string {
	var rows strings.Builder
	for _, p := range products {
		status := "out of stock"
		if p.InStock() {
			status = fmt.Sprintf("in stock: %d", p.StockQuantity)
		}
		fmt.Fprintf(&rows, "- %s | category: %s | price: %.0f | %s\n", p.Name, p.Category, p.Price, status)
	}
	if rows.Len() == 0 {
		rows.WriteString("(no matching products found)\n")
	}

	return fmt.Sprintf(`You are a friendly Product Search Agent for BazarFresh, an online grocery platform.

Customer Query: "%s"

Matching products from the live catalog:

%s
Create a warm, engaging markdown response: group products with clear headers, show each product name in **bold** with its price, mark availability with ✅ or ❌ and the stock count for available items, and close with a friendly call to action (suggest recipes or adding to cart). If everything is out of stock, be empathetic and suggest alternatives.`, userQuery, rows.String())
}

// generalPrompt handles greetings and casual conversation.
func generalPrompt(userQuery string) string {
	return fmt.Sprintf(`You are a friendly AI assistant for BazarFresh, an online grocery platform. You help customers with recipes, products, and support questions.

Answer this user query politely and conversationally, using emojis sparingly, and offer to help with recipes, products, or support: "%s"`, userQuery)
}
