package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainWriter hides the recorder's Flush method.
type plainWriter struct {
	http.ResponseWriter
}

func TestSSEWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent(EventStep, map[string]string{"step": "skills"}))
	sse.WriteComplete(map[string]int{"total": 3})

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t,
		"id: 1\nevent: step\ndata: {\"step\":\"skills\"}\n\n"+
			"id: 2\nevent: complete\ndata: {\"total\":3}\n\n",
		rec.Body.String())
	assert.True(t, rec.Flushed)
}

func TestSSEWriter_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	sse.WriteError("boom")
	assert.Equal(t, "id: 1\nevent: error\ndata: {\"error\":\"boom\"}\n\n", rec.Body.String())
}

func TestSSEWriter_UnencodableData(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	err = sse.WriteEvent(EventStep, make(chan int))
	require.Error(t, err)
	assert.Empty(t, rec.Body.String())
}

func TestNewSSEWriter_RequiresFlusher(t *testing.T) {
	_, err := NewSSEWriter(plainWriter{httptest.NewRecorder()})
	assert.ErrorIs(t, err, errStreamingUnsupported)
}
