package taste

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-meal-ranker/internal/reco"
)

type MockEmbeddingGenerator struct {
	lastText string
	err      error
}

func (m *MockEmbeddingGenerator) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	m.lastText = text
	if m.err != nil {
		return nil, m.err
	}
	return []float32{1.0, 0.0}, nil
}

func TestSentence(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		got := Sentence(reco.UserProfile{}, "")
		if got != "no dislikes 30 minutes 2 servings" {
			t.Errorf("Expected default sentence, got '%s'", got)
		}
	})

	t.Run("FullProfile", func(t *testing.T) {
		minutes := 20
		user := reco.UserProfile{
			Diet:                []string{"vegan"},
			LikedCuisines:       []string{"thai", "mexican"},
			DislikedIngredients: []string{"cilantro", "olives"},
			MinutesMax:          &minutes,
			HouseholdSize:       4,
		}
		got := Sentence(user, "  spicy and bright ")
		want := "vegan thai, mexican no cilantro, no olives 20 minutes 4 servings spicy and bright"
		if got != want {
			t.Errorf("Expected '%s', got '%s'", want, got)
		}
	})
}

func TestProfilerEmbed(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		gen := &MockEmbeddingGenerator{}
		vec, err := NewProfiler(gen).Embed(ctx, reco.UserProfile{LikedCuisines: []string{"korean"}}, "umami")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(vec) != 2 {
			t.Errorf("Expected embedding of length 2, got %d", len(vec))
		}
		if !strings.HasPrefix(gen.lastText, "korean") || !strings.HasSuffix(gen.lastText, "umami") {
			t.Errorf("Expected sentence to carry cuisine and text, got '%s'", gen.lastText)
		}
	})

	t.Run("GeneratorError", func(t *testing.T) {
		gen := &MockEmbeddingGenerator{err: errors.New("LLM error")}
		_, err := NewProfiler(gen).Embed(ctx, reco.UserProfile{}, "")
		if err == nil {
			t.Fatal("Expected an error, got nil")
		}
		expectedError := "failed to embed taste profile: LLM error"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})
}
