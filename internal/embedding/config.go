// Package embedding turns text into dense vectors for semantic similarity.
// It supports the Gemini embedding API and a deterministic local embedder.
package embedding

// Provider names an embedding backend
type Provider string

// Provider constants define supported embedding backends
const (
	// ProviderGemini uses the Google Gemini embedding API
	ProviderGemini Provider = "gemini"
	// ProviderLocal uses the in-process feature hashing embedder
	ProviderLocal Provider = "local"
)

// Default model settings
const (
	DefaultGeminiModel      = "text-embedding-004"
	DefaultGeminiDimensions = 768
	DefaultLocalDimensions  = 384
)

// Config selects and tunes the embedder
type Config struct {
	// Provider is gemini, local, or empty to choose gemini when an API key is present.
	Provider   Provider
	Model      string
	APIKey     string
	Dimensions int
}

// DefaultConfig returns the configuration used when nothing is set: the local embedder.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderLocal,
		Model:      DefaultGeminiModel,
		Dimensions: DefaultLocalDimensions,
	}
}

// resolveProvider returns the provider to build, and whether a gemini request fell back to local.
func (c Config) resolveProvider() (Provider, bool) {
	switch c.Provider {
	case "":
		if c.APIKey != "" {
			return ProviderGemini, false
		}
		return ProviderLocal, false
	case ProviderGemini:
		if c.APIKey == "" {
			return ProviderLocal, true
		}
		return ProviderGemini, false
	default:
		return c.Provider, false
	}
}
