package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bazarfresh/backend/internal/domain"
)

func TestIntentClassifierClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies the canonical examples", func(t *testing.T) {
		cases := []struct {
			utterance string
			reply     string
			want      domain.Intent
		}{
			{"I have chicken and rice, what can I cook?", "COOKING_QUERY", domain.IntentCooking},
			{"What is your return policy?", "SUPPORT_QUERY", domain.IntentSupport},
			{"How much is tomato?", "PRODUCT_QUERY", domain.IntentProduct},
			{"Hello", "OTHER", domain.IntentOther},
		}

		for _, tc := range cases {
			classifier := NewIntentClassifier(&fakeGenerator{reply: tc.reply}, nil)
			got, err := classifier.Classify(ctx, tc.utterance)
			if err != nil {
				t.Fatalf("Classify(%q) error = %v", tc.utterance, err)
			}
			if got != tc.want {
				t.Errorf("Classify(%q) = %v, want %v", tc.utterance, got, tc.want)
			}
		}
	})

	t.Run("tolerates prose around the token", func(t *testing.T) {
		classifier := NewIntentClassifier(&fakeGenerator{reply: "The category is: COOKING_QUERY."}, nil)
		got, err := classifier.Classify(ctx, "fish recipes please")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != domain.IntentCooking {
			t.Errorf("intent = %v, want IntentCooking", got)
		}
	})

	t.Run("multiple tokens resolve by fixed priority", func(t *testing.T) {
		// Cooking beats support beats product, regardless of order in the reply.
		classifier := NewIntentClassifier(&fakeGenerator{reply: "PRODUCT_QUERY or maybe COOKING_QUERY"}, nil)
		got, err := classifier.Classify(ctx, "ambiguous")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != domain.IntentCooking {
			t.Errorf("intent = %v, want IntentCooking (priority)", got)
		}

		classifier = NewIntentClassifier(&fakeGenerator{reply: "PRODUCT_QUERY SUPPORT_QUERY"}, nil)
		got, _ = classifier.Classify(ctx, "ambiguous")
		if got != domain.IntentSupport {
			t.Errorf("intent = %v, want IntentSupport (priority)", got)
		}
	})

	t.Run("unknown reply defaults to other", func(t *testing.T) {
		classifier := NewIntentClassifier(&fakeGenerator{reply: "no idea"}, nil)
		got, err := classifier.Classify(ctx, "gibberish")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != domain.IntentOther {
			t.Errorf("intent = %v, want IntentOther", got)
		}
	})

	t.Run("wraps generator failure as ErrClassifierUnavailable", func(t *testing.T) {
		classifier := NewIntentClassifier(&fakeGenerator{err: errors.New("401 unauthorized")}, nil)
		_, err := classifier.Classify(ctx, "hello")
		if !errors.Is(err, domain.ErrClassifierUnavailable) {
			t.Errorf("error = %v, want ErrClassifierUnavailable", err)
		}
	})

	t.Run("prompt embeds the utterance and category tokens", func(t *testing.T) {
		gen := &fakeGenerator{reply: "OTHER"}
		classifier := NewIntentClassifier(gen, nil)
		classifier.Classify(ctx, "show me fish recipes")

		if len(gen.prompts) != 1 {
			t.Fatalf("generator called %d times, want 1", len(gen.prompts))
		}
		prompt := gen.prompts[0]
		if !strings.Contains(prompt, `"show me fish recipes"`) {
			t.Error("prompt does not embed the quoted utterance")
		}
		for _, token := range []string{"COOKING_QUERY", "PRODUCT_QUERY", "SUPPORT_QUERY", "OTHER"} {
			if !strings.Contains(prompt, token) {
				t.Errorf("prompt missing category token %s", token)
			}
		}
	})
}
