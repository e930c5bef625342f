package fetch

import (
	"net/url"
	"strings"
)

// Platform names a job board whose page layout is known.
type Platform string

// Known platforms
const (
	PlatformGreenhouse      Platform = "greenhouse"
	PlatformLever           Platform = "lever"
	PlatformWorkday         Platform = "workday"
	PlatformAshby           Platform = "ashby"
	PlatformSmartRecruiters Platform = "smartrecruiters"
	PlatformUnknown         Platform = "unknown"
)

type boardLayout struct {
	platform Platform
	hosts    []string // matched as the host or a parent domain of it
	content  []string
	noise    []string
}

var boards = []boardLayout{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"myworkdayjobs.com", "workday.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".gwt-HTML", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='descriptionText']", ".ashby-job-posting-right-pane", "main"},
		noise:    []string{"[class*='applicationForm']", ".ashby-application-form-container"},
	},
	{
		platform: PlatformSmartRecruiters,
		hosts:    []string{"smartrecruiters.com"},
		content:  []string{"[itemprop='description']", ".job-sections", "main"},
		noise:    []string{".job-apply", ".apply-btn-container"},
	},
}

// genericContent is tried on pages from unknown boards.
var genericContent = []string{
	".job-description", ".job-content", "#job-description", "#job-content",
	".posting-content", ".job-details", "[data-testid='job-description']",
	"main", "article", ".content", "#content",
}

// commonNoise covers application forms, EEO and legal blocks, share widgets and consent banners.
var commonNoise = []string{
	"form", "#application-form", ".application-form", ".application--container",
	".apply-button-container", "[data-testid='application-form']",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", "[data-testid='eeo']",
	".legal-disclosure", ".self-identification",
	".social-share", ".share-buttons", ".social-links",
	".cookie-consent", ".gdpr-notice",
}

func layoutFor(p Platform) (boardLayout, bool) {
	for _, b := range boards {
		if b.platform == p {
			return b, true
		}
	}
	return boardLayout{}, false
}

// DetectPlatform identifies the job board from a posting URL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return PlatformUnknown
	}

	for _, b := range boards {
		for _, h := range b.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return b.platform
			}
		}
	}
	return PlatformUnknown
}

// JobPostingSelectors returns the content selectors used for unknown boards.
func JobPostingSelectors() []string {
	return append([]string(nil), genericContent...)
}

// PlatformContentSelectors returns content selectors in priority order for a board.
func PlatformContentSelectors(p Platform) []string {
	if b, ok := layoutFor(p); ok {
		return append([]string(nil), b.content...)
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the common noise selectors plus the board's own.
func PlatformNoiseSelectors(p Platform) []string {
	out := append([]string(nil), commonNoise...)
	if b, ok := layoutFor(p); ok {
		out = append(out, b.noise...)
	}
	return out
}
