package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/fetch"
	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/observability"
	"github.com/jonathan/resume-fit/internal/pipeline"
	"github.com/jonathan/resume-fit/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against the role catalog and an optional job description",
	Long: `Extracts skills from the resume, ranks every catalog role, scores the resume against the
job description (from --job or --job-url) and prints recommendations and a learning roadmap.

Resumes may be PDF, DOCX, TXT, Markdown or HTML files.`,
	RunE: runAnalyze,
}

var (
	analyzeResume     string
	analyzeJob        string
	analyzeJobURL     string
	analyzeTargetRole string
	analyzeOut        string
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to the resume file")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to a job description file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	analyzeCmd.Flags().StringVarP(&analyzeTargetRole, "target-role", "t", "", "Role to build the learning roadmap for (default: best fitting role)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Also write the analysis as JSON to this file")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print pipeline progress")
	analyzeCmd.Flags().Bool("use-browser", false, "Render --job-url with a headless browser when static HTML has too little text (requires Chrome)")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	resume, err := ingestion.ExtractText(analyzeResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	jd, err := readJobDescription(cmd, analyzeJob, analyzeJobURL)
	if err != nil {
		return err
	}

	analyzer, embedder, err := buildAnalyzer(ctx, appCfg, appLog)
	if err != nil {
		return err
	}
	defer func() { _ = embedder.Close() }()

	var onProgress pipeline.ProgressCallback
	if analyzeVerbose {
		stderr := cmd.ErrOrStderr()
		onProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(stderr, "[%s] %s\n", event.Step, event.Message)
		}
	}

	analysis, err := analyzer.AnalyzeWithProgress(ctx, types.AnalysisInput{
		ResumeText:     resume,
		JobDescription: jd,
		TargetRole:     analyzeTargetRole,
	}, onProgress)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeOut != "" {
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		if err := os.WriteFile(analyzeOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		appLog.Info("analysis written", zap.String("file", analyzeOut))
	}

	if appCfg.LogJSON {
		return writeJSON(cmd.OutOrStdout(), analysis)
	}
	observability.NewPrinter(cmd.OutOrStdout()).
		WithCategoryOrder(analyzer.Catalog().Taxonomy().Names()).
		PrintAnalysis(analysis)
	return nil
}

// readJobDescription returns the job description from a file or a URL. Neither yields "".
func readJobDescription(cmd *cobra.Command, path, url string) (string, error) {
	switch {
	case path != "":
		text, err := ingestion.ExtractText(path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	case url != "":
		timeout := appCfg.Fetch.Timeout
		if timeout <= 0 {
			timeout = fetch.DefaultTimeout
		}
		opts := fetch.DefaultOptions()
		opts.Timeout = timeout

		text, meta, err := ingestion.IngestFromURL(cmd.Context(), url, ingestion.URLOptions{
			FetchOptions:   opts,
			UseBrowser:     appCfg.Fetch.UseBrowser,
			BrowserTimeout: timeout,
			Logger:         appLog,
		})
		if err != nil {
			return "", fmt.Errorf("failed to fetch job description: %w", err)
		}
		appLog.Debug("job description fetched",
			zap.String("platform", meta.Platform),
			zap.Bool("browser", meta.Browser),
			zap.String("hash", meta.Hash))
		return text, nil
	default:
		return "", nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
