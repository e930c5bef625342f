package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/abc-123", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"https://jobs.ashbyhq.com/company/5f1c", PlatformAshby},
		{"https://jobs.smartrecruiters.com/Acme/7436", PlatformSmartRecruiters},
		{"https://JOBS.LEVER.CO:443/company/abc", PlatformLever},
		{"https://greenhouse.io.example.com/jobs/1", PlatformUnknown},
		{"https://notlever.co/jobs/1", PlatformUnknown},
		{"https://example.com/careers/data-scientist", PlatformUnknown},
		{"://bad url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Equal(t, ".job__description.body", PlatformContentSelectors(PlatformGreenhouse)[0])
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-description")
	assert.Contains(t, PlatformContentSelectors(PlatformWorkday), "[data-automation-id='jobDescription']")
	assert.Contains(t, PlatformContentSelectors(PlatformAshby), "main")
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	common := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, common, "form")
	assert.Contains(t, common, ".eeo-statement")

	for _, p := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformAshby, PlatformSmartRecruiters} {
		specific := PlatformNoiseSelectors(p)
		assert.Greater(t, len(specific), len(common), "platform %s adds its own noise selectors", p)
	}
}

func TestPlatformSelectors_ReturnCopies(t *testing.T) {
	sel := PlatformContentSelectors(PlatformLever)
	sel[0] = "mutated"
	assert.NotEqual(t, "mutated", PlatformContentSelectors(PlatformLever)[0])

	noise := PlatformNoiseSelectors(PlatformUnknown)
	noise[0] = "mutated"
	assert.Equal(t, "form", PlatformNoiseSelectors(PlatformUnknown)[0])
}
