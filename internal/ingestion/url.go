package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures IngestFromURL.
type URLOptions struct {
	// Fetcher reuses recently fetched pages. Nil fetches directly.
	Fetcher *fetch.CachedFetcher
	// FetchOptions apply when Fetcher is nil.
	FetchOptions *fetch.Options
	// UseBrowser enables headless rendering when the static page has too little text.
	UseBrowser     bool
	BrowserTimeout time.Duration
	Logger         *zap.Logger
}

// IngestFromURL fetches a job posting page, extracts its main text with platform-specific
// selectors, and returns the cleaned text with metadata.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	platform := fetch.DetectPlatform(urlStr)
	log.Debug("ingesting job posting",
		zap.String("url", urlStr),
		zap.String("platform", string(platform)),
	)

	var (
		html      string
		fromCache bool
	)
	if opts.Fetcher != nil {
		res, err := opts.Fetcher.Fetch(ctx, urlStr)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
		}
		html, fromCache = res.HTML, res.FromCache
	} else {
		res, err := fetch.URL(ctx, urlStr, opts.FetchOptions)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
		}
		html = res.HTML
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	textContent, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	log.Debug("extracted page text",
		zap.Int("html_bytes", len(html)),
		zap.Int("text_chars", len(textContent)),
		zap.Bool("from_cache", fromCache),
	)

	usedBrowser := false
	if opts.UseBrowser && fetch.ShouldUseBrowser(textContent) {
		log.Info("page text too short, rendering with headless browser",
			zap.Int("text_chars", len(textContent)),
			zap.Int("min_chars", fetch.MinContentLength),
		)
		browserHTML, browserErr := fetch.WithBrowser(ctx, urlStr, opts.BrowserTimeout, log)
		if browserErr != nil {
			log.Warn("browser rendering failed, keeping static content", zap.Error(browserErr))
		} else if rendered, err := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...); err != nil {
			log.Warn("browser content extraction failed", zap.Error(err))
		} else {
			textContent = rendered
			usedBrowser = true
		}
	}

	cleanedText := CleanText(textContent)

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Format = "html"
	metadata.Platform = string(platform)
	metadata.FromCache = fromCache
	metadata.Browser = usedBrowser

	return cleanedText, metadata, nil
}
