package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/logger"
)

// ErrEmptyText is returned when Embed is asked to embed blank text.
var ErrEmptyText = errors.New("embedding: text is empty")

// Embedder produces one fixed-length vector per input text.
type Embedder interface {
	// Embed returns vectors in the same order as texts. Every text must be non-blank.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Dimensions is the length of every returned vector.
	Dimensions() int
	// Name identifies the backend and model for logging.
	Name() string
	// Close releases any resources held by the embedder
	Close() error
}

// New builds the embedder described by cfg. A gemini provider without an API key
// falls back to the local embedder and logs a warning.
func New(ctx context.Context, cfg Config, log *zap.Logger) (Embedder, error) {
	log = logger.Named(log, "embedding")

	provider, fellBack := cfg.resolveProvider()
	if fellBack {
		log.Warn("gemini embedding requested without an API key, using local embedder")
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiEmbedder(ctx, cfg)
	case ProviderLocal:
		dims := cfg.Dimensions
		if dims <= 0 || fellBack {
			dims = DefaultLocalDimensions
		}
		return NewHashEmbedder(dims), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

func checkTexts(texts []string) error {
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("text %d: %w", i, ErrEmptyText)
		}
	}
	return nil
}

// Cosine returns the cosine similarity of a and b. Mismatched, empty or zero-norm
// vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) {
		return 0
	}
	return sim
}
