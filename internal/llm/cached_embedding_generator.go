package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// CachedEmbeddingGenerator wraps an EmbeddingGenerator and memoizes vectors by
// input text. When a cache path is set the cache is loaded from and saved to a JSON file.
type CachedEmbeddingGenerator struct {
	realGen       EmbeddingGenerator
	cache         map[string][]float32
	cacheFilePath string
	mu            sync.Mutex
	// inflight collapses concurrent misses on the same text into one remote call.
	inflight singleflight.Group
}

// NewCachedEmbeddingGenerator creates a new CachedEmbeddingGenerator.
// An empty cacheFilePath keeps the cache in memory only.
func NewCachedEmbeddingGenerator(realGen EmbeddingGenerator, cacheFilePath string) (*CachedEmbeddingGenerator, error) {
	c := &CachedEmbeddingGenerator{
		realGen:       realGen,
		cache:         make(map[string][]float32),
		cacheFilePath: cacheFilePath,
	}
	if cacheFilePath == "" {
		return c, nil
	}

	if err := os.MkdirAll(filepath.Dir(cacheFilePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory for %s: %w", cacheFilePath, err)
	}

	data, err := os.ReadFile(cacheFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info().Str("path", cacheFilePath).Msg("embedding cache file not found, starting empty")
			return c, nil
		}
		return nil, fmt.Errorf("failed to read cache file %s: %w", cacheFilePath, err)
	}

	if err := json.Unmarshal(data, &c.cache); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data from %s: %w", cacheFilePath, err)
	}

	log.Info().Int("entries", len(c.cache)).Str("path", cacheFilePath).Msg("loaded embedding cache")
	return c, nil
}

// GenerateEmbedding returns the cached vector for text, calling the wrapped generator on a miss.
// The lock is not held during the remote call.
func (c *CachedEmbeddingGenerator) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if embedding, ok := c.lookup(text); ok {
		return embedding, nil
	}

	v, err, _ := c.inflight.Do(text, func() (any, error) {
		if embedding, ok := c.lookup(text); ok {
			return embedding, nil
		}
		embedding, err := c.realGen.GenerateEmbedding(ctx, text)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[text] = embedding
		c.mu.Unlock()
		return embedding, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding using real generator: %w", err)
	}
	return v.([]float32), nil
}

func (c *CachedEmbeddingGenerator) lookup(text string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	embedding, ok := c.cache[text]
	return embedding, ok
}

// Len returns the number of cached entries.
func (c *CachedEmbeddingGenerator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// SaveCache persists the cache to its file. It is a no-op for memory-only caches.
func (c *CachedEmbeddingGenerator) SaveCache() error {
	if c.cacheFilePath == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(c.cache)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := os.WriteFile(c.cacheFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", c.cacheFilePath, err)
	}

	log.Info().Int("entries", len(c.cache)).Str("path", c.cacheFilePath).Msg("saved embedding cache")
	return nil
}
