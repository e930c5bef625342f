package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/catalog"
	"github.com/jonathan/resume-fit/internal/config"
	"github.com/jonathan/resume-fit/internal/pipeline"
	"github.com/jonathan/resume-fit/internal/server/middleware"
	"github.com/jonathan/resume-fit/internal/types"
)

func testStore() *catalog.Store {
	return catalog.New(
		[]types.SkillCategory{
			{Name: "Programming Languages", Skills: []string{"Python", "JavaScript", "SQL"}},
			{Name: "Frameworks", Skills: []string{"React", "Pandas"}},
		},
		[]types.RoleRequirement{
			{Role: "Data Scientist", CriticalSkills: []string{"Python", "SQL"}, RecommendedSkills: []string{"Pandas"}},
			{Role: "Frontend Developer", CriticalSkills: []string{"JavaScript", "React"}},
		},
		map[string][]string{
			"Data Scientist": {"Learn Python", "Practice SQL"},
		},
	)
}

func newTestServer(t *testing.T, rl config.RateLimitConfig) http.Handler {
	t.Helper()
	analyzer := pipeline.NewAnalyzer(pipeline.Deps{Store: testStore(), Logger: zap.NewNop()})
	s := New(Config{Port: 0, RateLimit: rl, Fetch: config.FetchConfig{Timeout: 5 * time.Second}}, analyzer, zap.NewNop())
	t.Cleanup(s.Close)
	return s.Handler()
}

func noLimit() config.RateLimitConfig {
	return config.RateLimitConfig{Enabled: false}
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, noLimit())

	w := doJSON(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, true, resp["catalog_loaded"])
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestServer(t, noLimit())

	w := doJSON(t, h, http.MethodPost, "/analyze",
		`{"resume_text":"Python and SQL developer","job_description":"We want Python and SQL"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	analysis := decodeBody[types.Analysis](t, w)
	assert.NotEmpty(t, analysis.ID)
	assert.Equal(t, []string{"Python", "SQL"}, analysis.Skills["Programming Languages"])
	assert.Empty(t, analysis.Skills["Frameworks"])

	require.Len(t, analysis.Roles, 2)
	assert.Equal(t, "Data Scientist", analysis.Roles[0].Role)
	assert.Equal(t, 80.0, analysis.Roles[0].Score)
	assert.Equal(t, []string{"Learn Python", "Practice SQL"}, analysis.Roadmap)
	assert.Greater(t, analysis.Match.OverallScore, 0.0)
	assert.NotNil(t, analysis.Recommendations)
}

func TestAnalyzeEndpoint_Validation(t *testing.T) {
	h := newTestServer(t, noLimit())

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "invalid json", body: `{"resume_text":`, message: "invalid JSON"},
		{name: "missing resume", body: `{"job_description":"Python"}`, message: "resume_text"},
		{name: "bad url", body: `{"resume_text":"x","job_url":"not a url"}`, message: "job_url"},
		{
			name:    "both job sources",
			body:    `{"resume_text":"x","job_description":"y","job_url":"https://example.com/job"}`,
			message: "cannot be combined",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, h, http.MethodPost, "/analyze", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decodeBody[map[string]string](t, w)
			assert.Contains(t, resp["error"], tt.message)
		})
	}
}

func TestAnalyzeEndpoint_JobURL(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div class="job-description">Python and SQL required</div></body></html>`))
	}))
	defer posting.Close()

	h := newTestServer(t, noLimit())
	w := doJSON(t, h, http.MethodPost, "/analyze",
		`{"resume_text":"Python and SQL developer","job_url":"`+posting.URL+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	analysis := decodeBody[types.Analysis](t, w)
	assert.Empty(t, analysis.Warnings)
	assert.Greater(t, analysis.Match.KeywordMatch, 0.0)
}

func TestAnalyzeEndpoint_JobURLFailureIsWarning(t *testing.T) {
	posting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer posting.Close()

	h := newTestServer(t, noLimit())
	w := doJSON(t, h, http.MethodPost, "/analyze",
		`{"resume_text":"Python developer","job_url":"`+posting.URL+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	analysis := decodeBody[types.Analysis](t, w)
	require.Len(t, analysis.Warnings, 1)
	assert.Contains(t, analysis.Warnings[0], "job description could not be fetched")
	assert.Zero(t, analysis.Match.OverallScore)
}

func multipartRequest(t *testing.T, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyzeUploadEndpoint(t *testing.T) {
	h := newTestServer(t, noLimit())

	req := multipartRequest(t, "resume.txt", "JavaScript\n\nReact developer", map[string]string{
		"job_description": "Frontend role with React",
		"target_role":     "Frontend Developer",
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	analysis := decodeBody[types.Analysis](t, w)
	assert.Equal(t, "Frontend Developer", analysis.Roles[0].Role)
	assert.Equal(t, 100.0, analysis.Roles[0].Score)
	assert.Equal(t, "Frontend Developer", analysis.TargetRole)
	assert.Empty(t, analysis.Warnings)
}

func TestAnalyzeUploadEndpoint_UnsupportedFileIsWarning(t *testing.T) {
	h := newTestServer(t, noLimit())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, multipartRequest(t, "resume.doc", "binary", nil))
	require.Equal(t, http.StatusOK, w.Code)

	analysis := decodeBody[types.Analysis](t, w)
	require.Len(t, analysis.Warnings, 1)
	assert.Contains(t, analysis.Warnings[0], "resume could not be read")
	assert.Zero(t, analysis.Skills.Count())
	for _, role := range analysis.Roles {
		assert.Zero(t, role.Score)
	}
}

func TestAnalyzeUploadEndpoint_MissingFile(t *testing.T) {
	h := newTestServer(t, noLimit())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, multipartRequest(t, "", "", map[string]string{"job_description": "x"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "resume")
}

func TestAnalyzeStreamEndpoint(t *testing.T) {
	h := newTestServer(t, noLimit())

	w := doJSON(t, h, http.MethodPost, "/analyze/stream",
		`{"resume_text":"Python and SQL developer","job_description":"Python"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	var events []string
	var last string
	scanner := bufio.NewScanner(strings.NewReader(w.Body.String()))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if name, ok := strings.CutPrefix(line, "event: "); ok {
			events = append(events, name)
		}
		if data, ok := strings.CutPrefix(line, "data: "); ok {
			last = data
		}
	}

	require.Len(t, events, 5)
	assert.Equal(t, "complete", events[len(events)-1])
	for _, e := range events[:4] {
		assert.Equal(t, "step", e)
	}

	var analysis types.Analysis
	require.NoError(t, json.Unmarshal([]byte(last), &analysis))
	assert.Equal(t, "Data Scientist", analysis.Roles[0].Role)
}

func TestMatchEndpoint(t *testing.T) {
	h := newTestServer(t, noLimit())

	w := doJSON(t, h, http.MethodPost, "/match", `{"resume_text":"Python SQL","job_description":"Python SQL"}`)
	require.Equal(t, http.StatusOK, w.Code)
	match := decodeBody[types.MatchResult](t, w)
	assert.Greater(t, match.OverallScore, 90.0)

	w = doJSON(t, h, http.MethodPost, "/match", `{"resume_text":"","job_description":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, decodeBody[types.MatchResult](t, w).OverallScore)

	w = doJSON(t, h, http.MethodPost, "/match", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	h := newTestServer(t, noLimit())

	w := doJSON(t, h, http.MethodGet, "/skills", "")
	require.Equal(t, http.StatusOK, w.Code)
	skills := decodeBody[SkillsResponse](t, w)
	assert.Equal(t, 5, skills.Total)
	assert.Equal(t, "Programming Languages", skills.Categories[0].Name)

	w = doJSON(t, h, http.MethodGet, "/roles", "")
	require.Equal(t, http.StatusOK, w.Code)
	roles := decodeBody[RolesResponse](t, w)
	require.Len(t, roles.Roles, 2)
	assert.Equal(t, "Data Scientist", roles.Roles[0].Role)

	w = doJSON(t, h, http.MethodGet, "/roadmaps/Data%20Scientist", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Learn Python", "Practice SQL"}, decodeBody[RoadmapResponse](t, w).Steps)

	w = doJSON(t, h, http.MethodGet, "/roadmaps/Astronaut", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"Astronaut","steps":[]}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, noLimit())

	w := doJSON(t, h, http.MethodOptions, "/analyze", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiting(t *testing.T) {
	h := newTestServer(t, config.RateLimitConfig{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})

	w := doJSON(t, h, http.MethodGet, "/roles", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = doJSON(t, h, http.MethodGet, "/roles", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decodeBody[map[string]any](t, w)["error"])

	// Health checks are never limited
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doJSON(t, h, http.MethodGet, "/health", "").Code)
	}
}
