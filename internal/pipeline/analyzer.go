// Package pipeline orchestrates a full resume analysis: skill extraction, role ranking,
// recommendations and resume/job-description matching.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-fit/internal/catalog"
	"github.com/jonathan/resume-fit/internal/embedding"
	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/matching"
	"github.com/jonathan/resume-fit/internal/parsing"
	"github.com/jonathan/resume-fit/internal/ranking"
	"github.com/jonathan/resume-fit/internal/recommend"
	"github.com/jonathan/resume-fit/internal/skills"
	"github.com/jonathan/resume-fit/internal/types"
)

// ProgressEvent represents a progress update during an analysis
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when analysis progress occurs. Calls are serialized.
type ProgressCallback func(event ProgressEvent)

// Deps are the collaborators an Analyzer is built from.
type Deps struct {
	Store      *catalog.Store
	Normalizer parsing.Normalizer
	Embedder   embedding.Embedder
	Logger     *zap.Logger
}

// Analyzer runs analyses. It is built once and shared by all requests.
type Analyzer struct {
	store       *catalog.Store
	normalizer  parsing.Normalizer
	extractor   *skills.Extractor
	scorer      *ranking.Scorer
	matcher     *matching.Engine
	recommender *recommend.Engine
	log         *zap.Logger
}

// NewAnalyzer wires the pipeline components. Missing dependencies get defaults:
// an empty catalog, the English normalizer and the local embedder.
func NewAnalyzer(d Deps) *Analyzer {
	log := logger.Named(d.Logger, "pipeline")

	store := d.Store
	if store == nil {
		store = catalog.New(nil, nil, nil)
	}
	normalizer := d.Normalizer
	if normalizer == nil {
		normalizer = parsing.NewNormalizer()
	}
	embedder := d.Embedder
	if embedder == nil {
		embedder = embedding.NewHashEmbedder(embedding.DefaultLocalDimensions)
	}

	return &Analyzer{
		store:       store,
		normalizer:  normalizer,
		extractor:   skills.NewExtractor(store.Taxonomy(), d.Logger),
		scorer:      ranking.NewScorer(store.Roles()),
		matcher:     matching.NewEngine(embedder, d.Logger),
		recommender: recommend.NewEngine(store),
		log:         log,
	}
}

// Catalog returns the catalog the analyzer was built with.
func (a *Analyzer) Catalog() *catalog.Store {
	return a.store
}

// Analyze runs the full analysis. Only context cancellation returns an error.
func (a *Analyzer) Analyze(ctx context.Context, in types.AnalysisInput) (*types.Analysis, error) {
	return a.AnalyzeWithProgress(ctx, in, nil)
}

// AnalyzeWithProgress is Analyze with a progress callback invoked after each step.
// The profile path (skills, roles, recommendations) and the match path run concurrently.
func (a *Analyzer) AnalyzeWithProgress(ctx context.Context, in types.AnalysisInput, onProgress ProgressCallback) (*types.Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	emit := newEmitter(runID, onProgress)
	log := a.log.With(zap.String("run_id", runID))

	result := &types.Analysis{
		ID:       runID,
		Warnings: in.Warnings,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Profile path
	g.Go(func() error {
		extracted := a.extractor.ExtractText(a.normalizer, in.ResumeText)
		emit(StepSkills, fmt.Sprintf("Found %d skills", extracted.Count()), extracted)
		if err := gCtx.Err(); err != nil {
			return err
		}

		ranked := a.scorer.Score(extracted)
		best := "none"
		if r, ok := ranked.Best(); ok {
			best = fmt.Sprintf("%s (%.1f%%)", r.Role, r.Score)
		}
		emit(StepRoles, fmt.Sprintf("Ranked %d roles, best fit %s", len(ranked), best), ranked)
		if err := gCtx.Err(); err != nil {
			return err
		}

		recs := a.recommender.Recommend(ranked, in.TargetRole)
		roadmap := []string{}
		targetRole := ""
		if target, ok := recommend.SelectTarget(ranked, in.TargetRole); ok {
			roadmap = a.recommender.Roadmap(target.Role)
			targetRole = target.Role
			if in.TargetRole != "" && target.Role != in.TargetRole {
				log.Debug("target role not ranked, using best fit",
					zap.String("requested", in.TargetRole), zap.String("used", target.Role))
			}
		}
		emit(StepRecommendations, fmt.Sprintf("Generated %d recommendations", len(recs)), recs)

		// Only this goroutine writes these fields
		result.Skills = extracted
		result.Roles = ranked
		result.Recommendations = recs
		result.Roadmap = roadmap
		result.TargetRole = targetRole
		return nil
	})

	// Match path
	g.Go(func() error {
		match := a.matcher.Evaluate(gCtx, in.ResumeText, in.JobDescription)
		emit(StepMatch, fmt.Sprintf("Overall match %.1f%%", match.OverallScore), match)
		result.Match = match
		return gCtx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Info("analysis complete",
		zap.Int("skills", result.Skills.Count()),
		zap.Int("roles", len(result.Roles)),
		zap.Float64("overall_score", result.Match.OverallScore),
		zap.Strings("degraded", result.Match.Degraded))

	return result, nil
}

// Match runs only the matching path.
func (a *Analyzer) Match(ctx context.Context, resume, jd string) types.MatchResult {
	return a.matcher.Evaluate(ctx, resume, jd)
}

// newEmitter returns a function that serializes progress callbacks.
func newEmitter(runID string, cb ProgressCallback) func(step, message string, content any) {
	if cb == nil {
		return func(string, string, any) {}
	}
	var mu sync.Mutex
	return func(step, message string, content any) {
		category := ""
		if def, ok := GetStepDefinition(step); ok {
			category = def.Category
		}
		mu.Lock()
		defer mu.Unlock()
		cb(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    runID,
			Content:  content,
		})
	}
}
