// Package matching scores how well a resume fits a job description by fusing a lexical
// TF-IDF similarity with an embedding similarity.
package matching

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/embedding"
	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/ranking"
	"github.com/jonathan/resume-fit/internal/types"
)

// Fusion weights for the overall score
const (
	SemanticWeight = 0.6
	KeywordWeight  = 0.4
)

// Sub-score names reported in MatchResult.Degraded
const (
	SubScoreKeyword  = "keyword"
	SubScoreSemantic = "semantic"
)

// Engine evaluates resume/job-description similarity. It holds no per-request state.
type Engine struct {
	embedder embedding.Embedder
	log      *zap.Logger
}

// NewEngine returns an engine using embedder for the semantic sub-score.
// A nil embedder makes every semantic score degrade to 0.
func NewEngine(embedder embedding.Embedder, log *zap.Logger) *Engine {
	return &Engine{embedder: embedder, log: logger.Named(log, "matching")}
}

// Evaluate returns the keyword, semantic and overall scores as percentages. It never fails:
// a sub-score that cannot be computed counts as 0 and is listed in Degraded.
func (e *Engine) Evaluate(ctx context.Context, resume, jd string) types.MatchResult {
	keyword := KeywordScore(resume, jd)
	semantic := e.SemanticScore(ctx, resume, jd)

	result := types.MatchResult{
		OverallScore:  ranking.Round1(100 * (SemanticWeight*semantic.Value + KeywordWeight*keyword.Value)),
		KeywordMatch:  ranking.Round1(100 * keyword.Value),
		SemanticMatch: ranking.Round1(100 * semantic.Value),
	}

	if keyword.Degraded {
		result.Degraded = append(result.Degraded, SubScoreKeyword)
		e.log.Warn("keyword score degraded", zap.String("reason", keyword.Reason))
	}
	if semantic.Degraded {
		result.Degraded = append(result.Degraded, SubScoreSemantic)
		e.log.Warn("semantic score degraded", zap.String("reason", semantic.Reason))
	}

	return result
}

// KeywordScore is the TF-IDF cosine similarity of the two texts, in [0,1].
// Blank input is a computed 0; input without any usable terms is a degraded 0.
func KeywordScore(resume, jd string) (out types.Outcome) {
	if blank(resume) || blank(jd) {
		return types.Computed(0)
	}

	defer func() {
		if r := recover(); r != nil {
			out = types.DegradedOutcome(fmt.Sprintf("keyword scoring panicked: %v", r))
		}
	}()

	sim, ok := tfidfCosine(resume, jd)
	if !ok {
		return types.DegradedOutcome("empty vocabulary")
	}
	return types.Computed(clamp01(sim))
}

// SemanticScore is the cosine similarity of the two texts' embeddings, clamped to [0,1].
// Blank input is a computed 0; an embedder failure is a degraded 0.
func (e *Engine) SemanticScore(ctx context.Context, resume, jd string) (out types.Outcome) {
	if blank(resume) || blank(jd) {
		return types.Computed(0)
	}
	if e.embedder == nil {
		return types.DegradedOutcome("no embedder configured")
	}

	defer func() {
		if r := recover(); r != nil {
			out = types.DegradedOutcome(fmt.Sprintf("embedding panicked: %v", r))
		}
	}()

	vecs, err := e.embedder.Embed(ctx, []string{resume, jd})
	if err != nil {
		return types.DegradedOutcome(err.Error())
	}
	if len(vecs) != 2 {
		return types.DegradedOutcome(fmt.Sprintf("expected 2 embeddings, got %d", len(vecs)))
	}
	return types.Computed(clamp01(embedding.Cosine(vecs[0], vecs[1])))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
