package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-fit/internal/fetch"
)

const postingHTML = `<html><body>
<nav>Jobs | Careers</nav>
<div class="job-description">
  <h2>Senior Data Scientist</h2>
  <p>We need strong Python,   SQL and Machine Learning skills.</p>
</div>
<footer>Equal opportunity employer</footer>
</body></html>`

func TestIngestFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	text, meta, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Senior Data Scientist We need strong Python, SQL and Machine Learning skills.", text)
	assert.NotContains(t, text, "Careers")
	assert.NotContains(t, text, "Equal opportunity")

	require.NotNil(t, meta)
	assert.Equal(t, server.URL, meta.Source)
	assert.Equal(t, "html", meta.Format)
	assert.Equal(t, string(fetch.PlatformUnknown), meta.Platform)
	assert.Equal(t, computeHash(text), meta.Hash)
	assert.False(t, meta.FromCache)
	assert.False(t, meta.Browser)
}

func TestIngestFromURL_UsesCachedFetcher(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	fetcher := fetch.NewCachedFetcher(&fetch.Options{Client: server.Client()}, 0)

	first, meta1, err := IngestFromURL(context.Background(), server.URL, URLOptions{Fetcher: fetcher})
	require.NoError(t, err)
	second, meta2, err := IngestFromURL(context.Background(), server.URL, URLOptions{Fetcher: fetcher})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.False(t, meta1.FromCache)
	assert.True(t, meta2.FromCache)
	assert.Equal(t, int32(1), hits.Load())
}

func TestIngestFromURL_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := IngestFromURL(context.Background(), server.URL, URLOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.True(t, strings.Contains(err.Error(), "500"))
}

func TestIngestFromURL_InvalidURL(t *testing.T) {
	_, _, err := IngestFromURL(context.Background(), "not a url", URLOptions{})
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}
