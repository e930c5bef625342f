package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/logger"
	"github.com/jonathan/resume-fit/internal/pipeline"
	"github.com/jonathan/resume-fit/internal/server/middleware"
	"github.com/jonathan/resume-fit/internal/types"
)

// multipartMemory is how much of a multipart form is held in memory before spilling to disk.
const multipartMemory = 4 << 20

// RoadmapResponse is returned by GET /roadmaps/{role}.
type RoadmapResponse struct {
	Role  string   `json:"role"`
	Steps []string `json:"steps"`
}

// SkillsResponse is returned by GET /skills.
type SkillsResponse struct {
	Categories []types.SkillCategory `json:"categories"`
	Total      int                   `json:"total"`
}

// RolesResponse is returned by GET /roles.
type RolesResponse struct {
	Roles []types.RoleRequirement `json:"roles"`
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// readAnalyzeRequest decodes and validates the JSON analyze body.
func (s *Server) readAnalyzeRequest(w http.ResponseWriter, r *http.Request) (*types.AnalyzeRequest, error) {
	var req types.AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	return &req, nil
}

// buildInput resolves the job description, fetching job_url when given.
// A failed fetch becomes a warning and an empty job description.
func (s *Server) buildInput(ctx context.Context, resume, jd, jobURL, targetRole string, warnings []string) types.AnalysisInput {
	if jobURL != "" {
		text, meta, err := ingestion.IngestFromURL(ctx, jobURL, ingestion.URLOptions{
			Fetcher:        s.fetcher,
			UseBrowser:     s.fetchCfg.UseBrowser,
			BrowserTimeout: s.fetchCfg.Timeout,
			Logger:         s.log,
		})
		if err != nil {
			s.log.Warn("job description fetch failed", zap.String("url", jobURL), zap.Error(err))
			warnings = append(warnings, "job description could not be fetched: "+err.Error())
		} else {
			jd = text
			s.log.Debug("job description fetched",
				zap.String("platform", meta.Platform),
				zap.Bool("from_cache", meta.FromCache),
				zap.String("hash", meta.Hash))
		}
	}

	return types.AnalysisInput{
		ResumeText:     resume,
		JobDescription: jd,
		TargetRole:     strings.TrimSpace(targetRole),
		Warnings:       warnings,
	}
}

// handleAnalyze runs a full analysis on a JSON body
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.readAnalyzeRequest(w, r)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	in := s.buildInput(r.Context(), req.ResumeText, req.JobDescription, req.JobURL, req.TargetRole, nil)
	analysis, err := s.analyzer.Analyze(r.Context(), in)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleAnalyzeUpload runs a full analysis on a multipart upload.
// Form fields: resume (file), job_description, job_url, target_role.
func (s *Server) handleAnalyzeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxUploadBytes+MaxRequestBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		s.errorFrom(w, &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "resume", Message: "file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	jd := r.FormValue("job_description")
	jobURL := strings.TrimSpace(r.FormValue("job_url"))
	if jd != "" && jobURL != "" {
		s.errorFrom(w, &ErrValidation{Field: "job_description", Message: "cannot be combined with job_url"})
		return
	}

	var warnings []string
	resume, err := ingestion.ExtractFromReader(header.Filename, file)
	if err != nil {
		s.log.Warn("resume upload unreadable",
			zap.String("filename", header.Filename),
			zap.String(logger.FieldRequestID, middleware.GetRequestID(r)),
			zap.Error(err))
		warnings = append(warnings, "resume could not be read: "+err.Error())
		resume = ""
	}

	in := s.buildInput(r.Context(), resume, jd, jobURL, r.FormValue("target_role"), warnings)
	analysis, err := s.analyzer.Analyze(r.Context(), in)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleAnalyzeStream runs an analysis and streams progress via SSE
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.readAnalyzeRequest(w, r)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	in := s.buildInput(r.Context(), req.ResumeText, req.JobDescription, req.JobURL, req.TargetRole, nil)
	analysis, err := s.analyzer.AnalyzeWithProgress(r.Context(), in, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent(EventStep, event); err != nil {
			s.log.Warn("failed to write SSE event", zap.Error(err))
		}
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Error("streaming analysis failed", zap.Error(err))
		}
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(analysis)
}

// handleMatch scores a resume against a job description only
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.analyzer.Match(r.Context(), req.ResumeText, req.JobDescription))
}

// handleSkills lists the skills taxonomy
func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request) {
	taxonomy := s.analyzer.Catalog().Taxonomy()
	categories := []types.SkillCategory(taxonomy)
	if categories == nil {
		categories = []types.SkillCategory{}
	}
	s.jsonResponse(w, http.StatusOK, SkillsResponse{Categories: categories, Total: taxonomy.SkillCount()})
}

// handleRoles lists the role requirements catalog
func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	roles := s.analyzer.Catalog().Roles()
	if roles == nil {
		roles = []types.RoleRequirement{}
	}
	s.jsonResponse(w, http.StatusOK, RolesResponse{Roles: roles})
}

// handleRoadmap returns the learning roadmap for a role. Unknown roles get an empty list.
func (s *Server) handleRoadmap(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	s.jsonResponse(w, http.StatusOK, RoadmapResponse{
		Role:  role,
		Steps: s.analyzer.Catalog().Roadmap(role),
	})
}
