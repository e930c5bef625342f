package embedding

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/jonathan/resume-fit/internal/parsing"
)

// Feature weights for the hashing embedder
const (
	unigramWeight  = 1.0
	bigramWeight   = 0.5
	trigramWeight  = 0.25
	trigramPadding = "#"
)

// HashEmbedder is a deterministic local embedder. It hashes stemmed words, word bigrams and
// character trigrams into a fixed number of signed buckets and L2-normalizes the result.
// Character trigrams give partial credit to related word forms ("postgres" and "postgresql").
type HashEmbedder struct {
	dims       int
	normalizer parsing.Normalizer
}

// NewHashEmbedder returns a local embedder producing vectors of length dims.
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultLocalDimensions
	}
	return &HashEmbedder{dims: dims, normalizer: parsing.NewNormalizer()}
}

// Embed embeds each text independently. It only fails on blank text or a cancelled context.
func (h *HashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := checkTexts(texts); err != nil {
		return nil, err
	}

	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, h.vector(t))
	}
	return out, nil
}

func (h *HashEmbedder) vector(text string) []float32 {
	acc := make([]float64, h.dims)

	surface := h.normalizer.Tokenize(text)
	stems := make([]string, len(surface))
	for i, tok := range surface {
		stems[i] = parsing.Stem(tok)
	}

	for i, stem := range stems {
		h.add(acc, "w:"+stem, unigramWeight)
		if i > 0 {
			h.add(acc, "b:"+stems[i-1]+" "+stem, bigramWeight)
		}
	}
	for _, tok := range surface {
		padded := []rune(trigramPadding + tok + trigramPadding)
		for i := 0; i+3 <= len(padded); i++ {
			h.add(acc, "c:"+string(padded[i:i+3]), trigramWeight)
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	vec := make([]float32, h.dims)
	if norm == 0 {
		return vec
	}
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec
}

// add hashes feature into a bucket; the top bit of the hash picks the sign.
func (h *HashEmbedder) add(acc []float64, feature string, weight float64) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	idx := int(sum % uint64(h.dims))
	if sum>>63 == 1 {
		acc[idx] -= weight
	} else {
		acc[idx] += weight
	}
}

// Dimensions returns the vector length
func (h *HashEmbedder) Dimensions() int {
	return h.dims
}

// Name returns the backend name
func (h *HashEmbedder) Name() string {
	return string(ProviderLocal) + "/feature-hash"
}

// Close is a no-op
func (h *HashEmbedder) Close() error {
	return nil
}
