package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-fit/internal/ingestion"
	"github.com/jonathan/resume-fit/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "resume_text", Message: "is required"}
	assert.Equal(t, "validation error: resume_text - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "validation",
			err:      &ErrValidation{Field: "job_url", Message: "must be a valid URL"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped validation",
			err:      fmt.Errorf("decode: %w", &ErrValidation{Field: "body"}),
			expected: http.StatusBadRequest,
		},
		{
			name:     "unsupported upload",
			err:      fmt.Errorf("%w: .doc", ingestion.ErrUnsupportedFormat),
			expected: http.StatusUnsupportedMediaType,
		},
		{
			name:     "job url fetch failed",
			err:      fmt.Errorf("%w: boom", ingestion.ErrHTTPRequestFailed),
			expected: http.StatusBadGateway,
		},
		{
			name:     "deadline",
			err:      context.DeadlineExceeded,
			expected: http.StatusGatewayTimeout,
		},
		{
			name:     "canceled",
			err:      context.Canceled,
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "Unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestValidationError_FromValidator(t *testing.T) {
	tests := []struct {
		name    string
		req     types.AnalyzeRequest
		field   string
		message string
	}{
		{
			name:    "missing resume",
			req:     types.AnalyzeRequest{},
			field:   "resume_text",
			message: "is required",
		},
		{
			name:    "bad url",
			req:     types.AnalyzeRequest{ResumeText: "x", JobURL: "nope"},
			field:   "job_url",
			message: "must be a valid URL",
		},
		{
			name:    "both job sources",
			req:     types.AnalyzeRequest{ResumeText: "x", JobDescription: "y", JobURL: "https://example.com"},
			field:   "job_description",
			message: "cannot be combined with job_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validationError(tt.req.Validate())
			var verr *ErrValidation
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "job_url", toSnake("JobURL"))
	assert.Equal(t, "resume_text", toSnake("ResumeText"))
	assert.Equal(t, "target_role", toSnake("TargetRole"))
	assert.Equal(t, "id", toSnake("ID"))
}
