package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/observability"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against a job description",
	Long:  `Computes the keyword, semantic and overall match scores between a resume and a job description.`,
	RunE:  runMatch,
}

var (
	matchResume string
	matchJob    string
	matchJobURL string
)

func init() {
	matchCmd.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to the resume file")
	matchCmd.Flags().StringVarP(&matchJob, "job", "j", "", "Path to a job description file")
	matchCmd.Flags().StringVar(&matchJobURL, "job-url", "", "URL to fetch the job description from")
	matchCmd.Flags().Bool("use-browser", false, "Render --job-url with a headless browser when static HTML has too little text (requires Chrome)")

	_ = matchCmd.MarkFlagRequired("resume")
	matchCmd.MarkFlagsMutuallyExclusive("job", "job-url")
	matchCmd.MarkFlagsOneRequired("job", "job-url")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	resume, err := ingestion.ExtractText(matchResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	jd, err := readJobDescription(cmd, matchJob, matchJobURL)
	if err != nil {
		return err
	}

	analyzer, embedder, err := buildAnalyzer(cmd.Context(), appCfg, appLog)
	if err != nil {
		return err
	}
	defer func() { _ = embedder.Close() }()

	result := analyzer.Match(cmd.Context(), resume, jd)
	if appCfg.LogJSON {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintMatch(result)
	return nil
}
