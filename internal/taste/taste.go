// Package taste turns a user profile into a taste embedding.
package taste

import (
	"context"
	"fmt"
	"strings"

	"ai-meal-ranker/internal/llm"
	"ai-meal-ranker/internal/reco"
)

// Sentence renders the profile and optional free text as one preference sentence.
func Sentence(user reco.UserProfile, text string) string {
	dislikes := "no dislikes"
	if len(user.DislikedIngredients) > 0 {
		parts := make([]string, len(user.DislikedIngredients))
		for i, d := range user.DislikedIngredients {
			parts[i] = "no " + d
		}
		dislikes = strings.Join(parts, ", ")
	}

	minutes := 30
	if user.MinutesMax != nil && *user.MinutesMax > 0 {
		minutes = *user.MinutesMax
	}
	servings := 2
	if user.HouseholdSize > 0 {
		servings = user.HouseholdSize
	}

	fields := []string{
		strings.Join(user.Diet, ", "),
		strings.Join(user.LikedCuisines, ", "),
		dislikes,
		fmt.Sprintf("%d minutes", minutes),
		fmt.Sprintf("%d servings", servings),
		strings.TrimSpace(text),
	}

	var kept []string
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// Profiler produces taste embeddings through an embedding generator.
type Profiler struct {
	embedGen llm.EmbeddingGenerator
}

// NewProfiler creates a new Profiler.
func NewProfiler(embedGen llm.EmbeddingGenerator) *Profiler {
	return &Profiler{embedGen: embedGen}
}

// Embed returns the taste embedding for the profile and free text.
func (p *Profiler) Embed(ctx context.Context, user reco.UserProfile, text string) (reco.Embedding, error) {
	vec, err := p.embedGen.GenerateEmbedding(ctx, Sentence(user, text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed taste profile: %w", err)
	}
	return reco.Embedding(vec), nil
}
