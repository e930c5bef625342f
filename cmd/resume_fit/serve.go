package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for resume analysis, matching and the catalogs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().Bool("use-browser", false, "Render job posting URLs with a headless browser when static HTML has too little text (requires Chrome)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// A missing catalog directory is a deployment mistake, not a degraded mode
	if err := appCfg.ValidateDataDir(); err != nil {
		return err
	}

	analyzer, embedder, err := buildAnalyzer(cmd.Context(), appCfg, appLog)
	if err != nil {
		return err
	}
	defer func() {
		if err := embedder.Close(); err != nil {
			appLog.Warn("failed to close embedder", zap.Error(err))
		}
	}()

	srv := server.New(server.Config{
		Port:      appCfg.Port,
		Fetch:     appCfg.Fetch,
		RateLimit: appCfg.RateLimit,
	}, analyzer, appLog)

	return srv.Start(cmd.Context())
}
