// Package fetch downloads job posting pages and reduces them to readable text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a single page download.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent identifies the service to job boards.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeFit/1.0)"

// MaxBodyBytes caps how much of a page is read when Options.MaxBytes is unset.
const MaxBodyBytes = 5 << 20

// Result is a downloaded page.
type Result struct {
	URL         string
	FinalURL    string // after redirects
	HTML        string
	ContentType string
	StatusCode  int
	Truncated   bool // body was longer than the read limit
}

// Error describes which stage of a download failed.
type Error struct {
	URL        string
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: %s: HTTP status %d", e.URL, e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Op, e.Err)
	default:
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Op)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options tunes a download. The zero value is usable.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	MaxBytes  int64
	// Client overrides the HTTP client; Timeout is ignored when set.
	Client *http.Client
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  MaxBodyBytes,
	}
}

func (o *Options) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func (o *Options) limit() int64 {
	if o.MaxBytes > 0 {
		return o.MaxBytes
	}
	return MaxBodyBytes
}

// URL downloads an http(s) page. A non-200 response returns both the Result and an *Error.
func URL(ctx context.Context, rawURL string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Op: "invalid URL", Err: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &Error{URL: rawURL, Op: fmt.Sprintf("unsupported scheme %q", parsed.Scheme)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Op: "build request", Err: err}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := opts.client().Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Op: "request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	limit := opts.limit()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &Error{URL: rawURL, Op: "read body", Err: err}
	}

	result := &Result{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	if int64(len(body)) > limit {
		body = body[:limit]
		result.Truncated = true
	}
	result.HTML = string(body)

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: rawURL, Op: "unexpected response", StatusCode: resp.StatusCode}
	}
	return result, nil
}

// baseNoise is stripped from every page before content selection.
var baseNoise = []string{
	"script", "style", "noscript", "template", "svg",
	"nav", "header", "footer", "aside",
	".ad", ".ads", ".advertisement", ".sidebar", ".popup", ".cookie-banner",
}

// blockElements end a line in the extracted text.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"br": true, "li": true, "ul": true, "ol": true, "tr": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "dd": true, "dt": true,
}

// ExtractMainText returns the text of the first element matching contentSelectors (in
// order), or of <body> when none match. noiseSelectors are removed first. Block elements
// such as paragraphs and list items become separate lines.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(strings.Join(baseNoise, ", ")).Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	var sb strings.Builder
	writeText(&sb, content)
	return cleanLines(sb.String()), nil
}

func writeText(sb *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		if name == "#text" {
			sb.WriteString(node.Text())
			return
		}
		block := blockElements[name]
		if block {
			sb.WriteByte('\n')
		}
		writeText(sb, node)
		if block {
			sb.WriteByte('\n')
		}
	})
}

// DefaultTextSelectors returns selectors for ordinary documents.
func DefaultTextSelectors() []string {
	return []string{"main", "article", ".content", "#content", ".main-content", "#main-content"}
}

// cleanLines collapses spaces inside each line and drops empty lines.
func cleanLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
