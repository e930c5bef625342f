// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RESUME_FIT_PORT.
const EnvPrefix = "RESUME_FIT"

// Embedding providers
const (
	ProviderAuto   = ""
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
)

// Config represents the service configuration that can be loaded from a JSON or YAML file,
// environment variables and CLI flags. Missing values use Defaults.
type Config struct {
	DataDir   string          `mapstructure:"data_dir" json:"data_dir,omitempty"`   // Directory holding the three catalog documents
	Port      int             `mapstructure:"port" json:"port,omitempty"`           // HTTP listen port
	LogJSON   bool            `mapstructure:"log_json" json:"log_json,omitempty"`   // JSON log encoding
	Debug     bool            `mapstructure:"debug" json:"debug,omitempty"`         // Debug log level
	Embedding EmbeddingConfig `mapstructure:"embedding" json:"embedding,omitempty"` // Semantic embedding provider
	Fetch     FetchConfig     `mapstructure:"fetch" json:"fetch,omitempty"`         // Job description URL fetching
	RateLimit RateLimitConfig `mapstructure:"rate_limit" json:"rate_limit,omitempty"`
}

// EmbeddingConfig selects and tunes the embedding collaborator.
type EmbeddingConfig struct {
	Provider   string `mapstructure:"provider" json:"provider,omitempty"`
	Model      string `mapstructure:"model" json:"model,omitempty"`
	APIKey     string `mapstructure:"api_key" json:"-"`
	Dimensions int    `mapstructure:"dimensions" json:"dimensions,omitempty"` // Local embedder only
}

// FetchConfig controls how job descriptions are fetched from URLs.
type FetchConfig struct {
	UseBrowser bool          `mapstructure:"use_browser" json:"use_browser,omitempty"`
	Timeout    time.Duration `mapstructure:"timeout" json:"timeout,omitempty"`
}

// RateLimitConfig controls the HTTP rate limiter.
type RateLimitConfig struct {
	Enabled       bool          `mapstructure:"enabled" json:"enabled"`
	DefaultLimit  int           `mapstructure:"default_limit" json:"default_limit,omitempty"`
	DefaultWindow time.Duration `mapstructure:"default_window" json:"default_window,omitempty"`
	Whitelist     []string      `mapstructure:"whitelist" json:"whitelist,omitempty"`
	Blacklist     []string      `mapstructure:"blacklist" json:"blacklist,omitempty"`
}

// Defaults returns the configuration used when nothing else is specified.
func Defaults() Config {
	return Config{
		DataDir: "data",
		Port:    8080,
		Embedding: EmbeddingConfig{
			Provider:   ProviderAuto,
			Model:      "text-embedding-004",
			Dimensions: 384,
		},
		Fetch: FetchConfig{
			Timeout: 30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:       true,
			DefaultLimit:  600,
			DefaultWindow: time.Minute,
		},
	}
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"data-dir":    "data_dir",
	"port":        "port",
	"json":        "log_json",
	"debug":       "debug",
	"use-browser": "fetch.use_browser",
}

// Load reads configuration from path (optional), RESUME_FIT_* environment variables and the
// given flag set (optional). Flags win over environment, which wins over the file.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("embedding.api_key", EnvPrefix+"_EMBEDDING_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key environment: %w", err)
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		// Resolve path relative to current directory if not absolute
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("port", d.Port)
	v.SetDefault("log_json", d.LogJSON)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("embedding.provider", d.Embedding.Provider)
	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.api_key", "")
	v.SetDefault("embedding.dimensions", d.Embedding.Dimensions)
	v.SetDefault("fetch.use_browser", d.Fetch.UseBrowser)
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.default_limit", d.RateLimit.DefaultLimit)
	v.SetDefault("rate_limit.default_window", d.RateLimit.DefaultWindow)
	v.SetDefault("rate_limit.whitelist", []string{})
	v.SetDefault("rate_limit.blacklist", []string{})
}

// Validate checks that the configuration has valid values.
// It does not touch the filesystem; see ValidateDataDir.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch c.Embedding.Provider {
	case ProviderAuto, ProviderGemini, ProviderLocal:
	default:
		return fmt.Errorf("config error: unknown embedding provider %q", c.Embedding.Provider)
	}

	if c.Embedding.Dimensions < 0 {
		return fmt.Errorf("config error: 'embedding.dimensions' must be non-negative")
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("config error: 'fetch.timeout' must be non-negative")
	}
	if c.RateLimit.DefaultLimit < 0 {
		return fmt.Errorf("config error: 'rate_limit.default_limit' must be non-negative")
	}
	if c.RateLimit.DefaultWindow < 0 {
		return fmt.Errorf("config error: 'rate_limit.default_window' must be non-negative")
	}

	return nil
}

// ValidateDataDir reports whether the catalog directory exists and is a directory.
func (c *Config) ValidateDataDir() error {
	info, err := os.Stat(c.DataDir)
	if err != nil {
		return fmt.Errorf("config error: data directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("config error: data directory %s is not a directory", c.DataDir)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.Embedding.Model == "" {
		result.Embedding.Model = defaults.Embedding.Model
	}
	if result.Embedding.Provider == "" {
		result.Embedding.Provider = defaults.Embedding.Provider
	}
	if result.Embedding.APIKey == "" {
		result.Embedding.APIKey = defaults.Embedding.APIKey
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Embedding.Dimensions == 0 {
		result.Embedding.Dimensions = defaults.Embedding.Dimensions
	}
	if result.RateLimit.DefaultLimit == 0 {
		result.RateLimit.DefaultLimit = defaults.RateLimit.DefaultLimit
	}

	// Durations
	if result.Fetch.Timeout == 0 {
		result.Fetch.Timeout = defaults.Fetch.Timeout
	}
	if result.RateLimit.DefaultWindow == 0 {
		result.RateLimit.DefaultWindow = defaults.RateLimit.DefaultWindow
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}
