package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/catalog"
	"github.com/jonathan/resume-fit/internal/config"
	"github.com/jonathan/resume-fit/internal/embedding"
	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/parsing"
	"github.com/jonathan/resume-fit/internal/pipeline"
)

var (
	rootConfigPath string

	// Set by setupRoot before any subcommand runs
	appCfg *config.Config
	appLog *zap.Logger
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootConfigPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by flags)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Bool("json", false, "Emit JSON logs and JSON command output")
	flags.String("data-dir", "", "Directory holding the catalog documents (default \"data\")")
}

// setupRoot loads configuration for the command being run and builds the logger.
func setupRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootConfigPath, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	appCfg = cfg
	appLog = log
	return nil
}

// embeddingConfig translates the service configuration for the embedding package.
func embeddingConfig(cfg *config.Config) embedding.Config {
	return embedding.Config{
		Provider:   embedding.Provider(cfg.Embedding.Provider),
		Model:      cfg.Embedding.Model,
		APIKey:     cfg.Embedding.APIKey,
		Dimensions: cfg.Embedding.Dimensions,
	}
}

// buildAnalyzer loads the catalog and the embedder and wires the pipeline.
// The returned embedder must be closed by the caller.
func buildAnalyzer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pipeline.Analyzer, embedding.Embedder, error) {
	store := catalog.LoadDir(cfg.DataDir, log)

	embedder, err := embedding.New(ctx, embeddingConfig(cfg), log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	log.Debug("embedder ready", zap.String("embedder", embedder.Name()), zap.Int("dimensions", embedder.Dimensions()))

	analyzer := pipeline.NewAnalyzer(pipeline.Deps{
		Store:      store,
		Normalizer: parsing.NewNormalizer(),
		Embedder:   embedder,
		Logger:     log,
	})
	return analyzer, embedder, nil
}
