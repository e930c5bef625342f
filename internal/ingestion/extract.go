package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-fit/internal/fetch"
)

var (
	// ErrUnsupportedFormat is returned for file types that cannot be converted to text
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrFileNotFound is returned when the input file does not exist
	ErrFileNotFound = errors.New("file not found")
	// ErrNoText is returned when a supported document yields no text
	ErrNoText = errors.New("no text extracted")
)

// MaxUploadBytes caps how much of an uploaded document is spooled to disk.
const MaxUploadBytes = 10 << 20

// ExtractionError wraps a failure to read text out of a document.
type ExtractionError struct {
	Path   string
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s text from %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// SupportedFormats lists the extensions ExtractText accepts.
func SupportedFormats() []string {
	return []string{".pdf", ".docx", ".txt", ".md", ".html", ".htm"}
}

// ExtractText reads a resume document and returns its cleaned text.
func ExtractText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var (
		raw string
		err error
	)
	switch ext {
	case ".pdf":
		raw, err = readPDF(path)
	case ".docx":
		raw, err = readDocx(path)
	case ".txt", ".md":
		raw, err = readPlain(path)
	case ".html", ".htm":
		raw, err = readHTML(path)
	case ".doc":
		return "", fmt.Errorf("%w: .doc is not supported, convert to .docx or .pdf", ErrUnsupportedFormat)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return "", &ExtractionError{Path: path, Format: strings.TrimPrefix(ext, "."), Err: err}
	}

	text := CleanText(raw)
	if text == "" {
		return "", &ExtractionError{Path: path, Format: strings.TrimPrefix(ext, "."), Err: ErrNoText}
	}
	return text, nil
}

// ExtractFromReader spools an uploaded document to a temporary file named after the
// upload's extension and extracts its text. Reads beyond MaxUploadBytes are rejected.
func ExtractFromReader(name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !isSupported(ext) {
		if ext == ".doc" {
			return "", fmt.Errorf("%w: .doc is not supported, convert to .docx or .pdf", ErrUnsupportedFormat)
		}
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	tmp, err := os.CreateTemp("", "resume-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	n, err := io.Copy(tmp, io.LimitReader(r, MaxUploadBytes+1))
	closeErr := tmp.Close()
	if err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to save upload: %w", closeErr)
	}
	if n > MaxUploadBytes {
		return "", fmt.Errorf("upload %s exceeds %d bytes", name, MaxUploadBytes)
	}

	return ExtractText(tmp.Name())
}

func isSupported(ext string) bool {
	for _, s := range SupportedFormats() {
		if s == ext {
			return true
		}
	}
	return false
}

// readPDF concatenates the plain text of every page.
func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if text != "" {
			buf.WriteString(text)
			buf.WriteByte('\n')
		}
	}
	return buf.String(), nil
}

func readDocx(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	body, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return "", err
	}
	return body, nil
}

func readPlain(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func readHTML(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return fetch.ExtractMainText(string(content), fetch.DefaultTextSelectors())
}
