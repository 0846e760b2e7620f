package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScrapeConfig holds settings for one scraping run.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// RequestDelay is the politeness pause between consecutive
	// requests: detail pages within one source, keyword queries, and
	// listing fetches across sources (default 800ms).
	RequestDelay time.Duration `json:"request_delay" yaml:"request_delay"`

	// DetailConcurrency is the number of detail pages fetched in
	// parallel during enrichment. 1 reproduces strictly serial
	// fetching; output order is preserved either way.
	DetailConcurrency int `json:"detail_concurrency" yaml:"detail_concurrency"`

	// OutputDir is where reports and debug dumps are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Debug enables raw-markup dumps of fetched pages.
	Debug bool `json:"debug" yaml:"debug"`
}

// Default configuration values applied by the CLI when neither flags
// nor the config file set them.
const (
	DefaultTimeout           = 20 * time.Second
	DefaultRequestDelay      = 800 * time.Millisecond
	DefaultDetailConcurrency = 1
	DefaultOutputDir         = "output"
)

// DefaultUserAgent mimics a desktop browser; several conference sites
// refuse requests with obvious bot agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0 Safari/537.36"
