package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiEmbedder generates embeddings with a Gemini embedding model.
type geminiEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

// GeminiEmbedder is an EmbeddingGenerator that owns a Gemini client.
type GeminiEmbedder interface {
	EmbeddingGenerator
	Closer
}

// NewGeminiEmbedder creates a new Gemini embedding client.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (GeminiEmbedder, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	em := client.EmbeddingModel(model)
	em.TaskType = genai.TaskTypeSemanticSimilarity
	return &geminiEmbedder{client: client, model: em}, nil
}

// GenerateEmbedding embeds text with the configured model.
func (g *geminiEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, errors.New("no embedding generated")
	}
	return resp.Embedding.Values, nil
}

// Close closes the underlying Gemini client.
func (g *geminiEmbedder) Close() error {
	return g.client.Close()
}
