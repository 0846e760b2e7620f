// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperscout/internal/scout"
	"github.com/pdiddy/paperscout/pkg/types"
)

// SearchFile is the on-disk representation of a search and its
// results. A search can be saved to a file and reloaded later without
// re-scraping.
type SearchFile struct {
	Request scout.Request `yaml:"request"`
	Config  SearchConfig  `yaml:"config"`
	Results []SavedSource `yaml:"results"`
	Summary SearchSummary `yaml:"summary"`
}

// SearchConfig stores the scrape settings that produced the results.
type SearchConfig struct {
	RequestDelayMS    int `yaml:"request_delay_ms"`
	DetailConcurrency int `yaml:"detail_concurrency"`
}

// SavedSource is one venue+year outcome in serializable form.
type SavedSource struct {
	Venue   string              `yaml:"venue"`
	Year    int                 `yaml:"year"`
	Error   string              `yaml:"error,omitempty"`
	Records []types.PaperRecord `yaml:"records"`
}

// SearchSummary stores result statistics and a timestamp.
type SearchSummary struct {
	Total             int       `yaml:"total"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	FailedSources     int       `yaml:"failed_sources"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// WriteSearchFile saves the request, settings, and results to a YAML
// file.
func WriteSearchFile(path string, req scout.Request, cfg types.ScrapeConfig, res scout.RunResult, now time.Time) error {
	sf := SearchFile{
		Request: req,
		Config: SearchConfig{
			RequestDelayMS:    int(cfg.RequestDelay.Milliseconds()),
			DetailConcurrency: cfg.DetailConcurrency,
		},
		Summary: SearchSummary{
			Total:             res.Total,
			DuplicatesRemoved: res.DupsRemoved,
			FailedSources:     res.Failed,
			Timestamp:         now,
		},
	}
	for _, vr := range res.Results {
		sf.Results = append(sf.Results, SavedSource{
			Venue:   vr.Venue,
			Year:    vr.Year,
			Error:   vr.Err,
			Records: vr.Records,
		})
	}

	data, err := yaml.Marshal(&sf)
	if err != nil {
		return fmt.Errorf("marshaling search file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSearchFile loads a previously saved search file from disk.
func ReadSearchFile(path string) (*SearchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading search file: %w", err)
	}
	var sf SearchFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing search file: %w", err)
	}
	return &sf, nil
}

// Run reassembles a RunResult from the saved sources so the stored
// search can be re-rendered with the usual formatters.
func (sf *SearchFile) Run() scout.RunResult {
	res := scout.RunResult{
		Total:       sf.Summary.Total,
		DupsRemoved: sf.Summary.DuplicatesRemoved,
		Failed:      sf.Summary.FailedSources,
	}
	for _, s := range sf.Results {
		res.Results = append(res.Results, scout.VenueResult{
			Venue:   s.Venue,
			Year:    s.Year,
			Err:     s.Error,
			Records: s.Records,
		})
	}
	return res
}
