package embedding

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	h := NewHashEmbedder(128)
	ctx := context.Background()

	a, err := h.Embed(ctx, []string{"Python developer with Flask"})
	require.NoError(t, err)
	b, err := h.Embed(ctx, []string{"Python developer with Flask"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	require.Len(t, a[0], 128)
}

func TestHashEmbedder_UnitNorm(t *testing.T) {
	h := NewHashEmbedder(0)
	vecs, err := h.Embed(context.Background(), []string{"Kubernetes and Docker in production"})
	require.NoError(t, err)

	var norm float64
	for _, v := range vecs[0] {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
	assert.Equal(t, DefaultLocalDimensions, h.Dimensions())
}

func TestHashEmbedder_StopWordsOnlyIsZeroVector(t *testing.T) {
	h := NewHashEmbedder(32)
	vecs, err := h.Embed(context.Background(), []string{"the and of"})
	require.NoError(t, err)
	assert.Equal(t, make([]float32, 32), vecs[0])
}

func TestHashEmbedder_RelatedTextsAreCloser(t *testing.T) {
	h := NewHashEmbedder(DefaultLocalDimensions)
	vecs, err := h.Embed(context.Background(), []string{
		"Python developer building REST APIs with Flask and PostgreSQL",
		"Backend Python engineer, Flask REST services, PostgreSQL databases",
		"Graphic designer skilled in Photoshop, Illustrator and painting",
	})
	require.NoError(t, err)

	related := Cosine(vecs[0], vecs[1])
	unrelated := Cosine(vecs[0], vecs[2])
	assert.Greater(t, related, unrelated)
	assert.Greater(t, related, 0.2)
}

func TestHashEmbedder_EmptyText(t *testing.T) {
	h := NewHashEmbedder(16)
	_, err := h.Embed(context.Background(), []string{"ok", "  "})
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestHashEmbedder_CancelledContext(t *testing.T) {
	h := NewHashEmbedder(16)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Embed(ctx, []string{"text"})
	assert.ErrorIs(t, err, context.Canceled)
}
