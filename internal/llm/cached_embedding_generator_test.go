package llm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingEmbedder struct {
	calls int
	err   error
}

func (m *countingEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return []float32{float32(len(text)), 1}, nil
}

// barrierEmbedder blocks every call until `want` calls are in flight at once.
type barrierEmbedder struct {
	want    int32
	entered atomic.Int32
	release chan struct{}
	once    sync.Once
}

func (b *barrierEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if b.entered.Add(1) == b.want {
		b.once.Do(func() { close(b.release) })
	}
	select {
	case <-b.release:
		return []float32{float32(len(text))}, nil
	case <-time.After(2 * time.Second):
		return nil, errors.New("calls were serialized")
	}
}

func TestCachedEmbeddingGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("MemoizesByText", func(t *testing.T) {
		inner := &countingEmbedder{}
		gen, err := NewCachedEmbeddingGenerator(inner, "")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		for i := 0; i < 3; i++ {
			if _, err := gen.GenerateEmbedding(ctx, "mexican, thai"); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
		}
		if inner.calls != 1 {
			t.Errorf("Expected 1 call to the inner generator, got %d", inner.calls)
		}
		if gen.Len() != 1 {
			t.Errorf("Expected 1 cached entry, got %d", gen.Len())
		}
		if err := gen.SaveCache(); err != nil {
			t.Errorf("Expected memory-only save to be a no-op, got %v", err)
		}
	})

	t.Run("ErrorsAreNotCached", func(t *testing.T) {
		inner := &countingEmbedder{err: errors.New("quota exceeded")}
		gen, _ := NewCachedEmbeddingGenerator(inner, "")

		_, err := gen.GenerateEmbedding(ctx, "vegan")
		if err == nil {
			t.Fatal("Expected an error, got nil")
		}
		expectedError := "failed to generate embedding using real generator: quota exceeded"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
		if gen.Len() != 0 {
			t.Errorf("Expected empty cache, got %d entries", gen.Len())
		}
	})

	t.Run("PersistsToFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cache", "embeddings.json")

		gen, err := NewCachedEmbeddingGenerator(&countingEmbedder{}, path)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if _, err := gen.GenerateEmbedding(ctx, "italian"); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if err := gen.SaveCache(); err != nil {
			t.Fatalf("Failed to save cache: %v", err)
		}

		inner := &countingEmbedder{}
		reloaded, err := NewCachedEmbeddingGenerator(inner, path)
		if err != nil {
			t.Fatalf("Failed to reload cache: %v", err)
		}
		got, _ := reloaded.GenerateEmbedding(ctx, "italian")
		if inner.calls != 0 {
			t.Errorf("Expected cache hit after reload, got %d inner calls", inner.calls)
		}
		if len(got) != 2 || got[0] != 7 {
			t.Errorf("Expected [7 1], got %v", got)
		}
	})

	t.Run("CorruptFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "embeddings.json")
		if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := NewCachedEmbeddingGenerator(&countingEmbedder{}, path); err == nil {
			t.Fatal("Expected an error for a corrupt cache file, got nil")
		}
	})

	t.Run("ConcurrentMissesRunInParallel", func(t *testing.T) {
		inner := &barrierEmbedder{want: 4, release: make(chan struct{})}
		gen, _ := NewCachedEmbeddingGenerator(inner, "")

		texts := []string{"a", "bb", "ccc", "dddd"}
		errs := make([]error, len(texts))
		var wg sync.WaitGroup
		for i, text := range texts {
			i, text := i, text
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = gen.GenerateEmbedding(ctx, text)
			}()
		}
		wg.Wait()

		for i, err := range errs {
			if err != nil {
				t.Errorf("Expected no error for %q, got %v", texts[i], err)
			}
		}
		if gen.Len() != len(texts) {
			t.Errorf("Expected %d cached entries, got %d", len(texts), gen.Len())
		}
	})
}
