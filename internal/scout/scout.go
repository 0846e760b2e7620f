// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scout runs the scraping pipeline: registry lookup, listing
// fetch, rule-based extraction, keyword filtering, detail-page
// enrichment, and final normalization into paper records. Failures are
// isolated per venue+year pair; one broken source never aborts the
// others.
package scout

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/paperscout/internal/debugdump"
	"github.com/pdiddy/paperscout/internal/enrich"
	"github.com/pdiddy/paperscout/internal/extract"
	"github.com/pdiddy/paperscout/internal/fetch"
	"github.com/pdiddy/paperscout/internal/registry"
	"github.com/pdiddy/paperscout/pkg/types"
)

// Request holds one search invocation's selections, in the order the
// caller wants them processed.
type Request struct {
	Venues   []string `json:"venues" yaml:"venues"`
	Years    []int    `json:"years" yaml:"years"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// VenueResult is the outcome for one venue+year pair: its records in
// listing order, or an error note when the source could not be
// scraped at all.
type VenueResult struct {
	Venue   string              `json:"venue" yaml:"venue"`
	Year    int                 `json:"year" yaml:"year"`
	Records []types.PaperRecord `json:"records" yaml:"records"`
	Err     string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunResult accumulates per-source outcomes in request order. It is
// owned by the invocation that created it; nothing outlives the run.
type RunResult struct {
	Results     []VenueResult `json:"results" yaml:"results"`
	Total       int           `json:"total" yaml:"total"`
	DupsRemoved int           `json:"duplicates_removed" yaml:"duplicates_removed"`
	Failed      int           `json:"failed_sources" yaml:"failed_sources"`
}

// Records flattens all per-source records, preserving request order.
func (r RunResult) Records() []types.PaperRecord {
	var out []types.PaperRecord
	for _, vr := range r.Results {
		out = append(out, vr.Records...)
	}
	return out
}

// Runner wires the pipeline's collaborators for one or more runs.
type Runner struct {
	Registry *registry.Registry
	Fetcher  *fetch.Fetcher
	Config   types.ScrapeConfig
	Sink     debugdump.Sink
}

// NewRunner builds a Runner with a fetcher derived from cfg and a
// debug sink honoring cfg.Debug.
func NewRunner(reg *registry.Registry, cfg types.ScrapeConfig, log io.Writer) *Runner {
	sink := debugdump.Sink(debugdump.Discard)
	if cfg.Debug {
		sink = &debugdump.DirSink{Dir: cfg.OutputDir, Log: log}
	}
	return &Runner{
		Registry: reg,
		Fetcher:  fetch.New(cfg.HTTPConfig),
		Config:   cfg,
		Sink:     sink,
	}
}

// Run processes every requested venue x year combination in request
// order and returns the accumulated results. Progress and warnings go
// to w.
func (r *Runner) Run(ctx context.Context, req Request, w io.Writer) RunResult {
	var result RunResult
	for _, venue := range req.Venues {
		for _, year := range req.Years {
			if len(result.Results) > 0 {
				r.pause(ctx)
			}
			vr := r.runSource(ctx, venue, year, req.Keywords, w)
			if vr.Err != "" {
				result.Failed++
			}
			result.Total += len(vr.Records)
			result.DupsRemoved += vr.dupsRemoved
			result.Results = append(result.Results, vr.VenueResult)
		}
	}
	fmt.Fprintf(w, "\nRun summary: %d papers from %d sources (%d failed, %d duplicates removed)\n",
		result.Total, len(result.Results), result.Failed, result.DupsRemoved)
	return result
}

type sourceResult struct {
	VenueResult
	dupsRemoved int
}

// runSource scrapes one venue+year pair end to end. A registry or
// listing-level failure is recorded on the result and scraping moves
// on; detail-level failures are handled inside enrichment.
func (r *Runner) runSource(ctx context.Context, venue string, year int, keywords []string, w io.Writer) sourceResult {
	res := sourceResult{VenueResult: VenueResult{Venue: venue, Year: year}}

	desc, err := r.Registry.Lookup(venue, year)
	if err != nil {
		res.Err = err.Error()
		fmt.Fprintf(w, "error: %v\n", err)
		return res
	}
	res.Venue = desc.VenueID
	if !r.Registry.YearKnown(venue, year) {
		fmt.Fprintf(w, "note: %s %d may not be available, trying anyway\n", desc.VenueID, year)
	}

	fmt.Fprintf(w, "searching %s %d\n", desc.VenueID, year)
	stubs, err := r.collectStubs(ctx, desc, keywords, w)
	if err != nil {
		res.Err = err.Error()
		fmt.Fprintf(w, "error: %v\n", err)
		return res
	}
	fmt.Fprintf(w, "  %d entries collected\n", len(stubs))

	before := len(stubs)
	stubs = Dedupe(stubs)
	res.dupsRemoved = before - len(stubs)
	stubs = prefilter(stubs, keywords)

	stubs = enrich.Enrich(ctx, r.Fetcher, stubs, enrich.Options{
		Venue:       desc.VenueID,
		Year:        year,
		ListingURL:  desc.ListingURL,
		BaseURL:     desc.BaseURL,
		Rules:       desc.DetailRules,
		Concurrency: r.Config.DetailConcurrency,
		Delay:       r.Config.RequestDelay,
	}, r.Sink, w)

	// Links on the listing page may be relative; make them absolute
	// before the records are sealed.
	for i := range stubs {
		stubs[i].DetailLink = enrich.ResolveLink(desc.BaseURL, desc.ListingURL, stubs[i].DetailLink)
	}

	res.Records = Normalize(stubs, desc.VenueID, year, keywords)
	fmt.Fprintf(w, "  %d papers matched for %s %d\n", len(res.Records), desc.VenueID, year)
	return res
}

// collectStubs gathers raw stubs for one source. Venues with a search
// URL are queried once per keyword first; the full listing is fetched
// only when no keyword query produced anything. A failed keyword query
// is a warning, a failed listing fetch is the source's error.
func (r *Runner) collectStubs(ctx context.Context, desc registry.SourceDescriptor, keywords []string, w io.Writer) ([]types.PaperStub, error) {
	var stubs []types.PaperStub
	if desc.SearchURL != "" && len(keywords) > 0 {
		for i, kw := range keywords {
			if i > 0 {
				r.pause(ctx)
			}
			queryURL := desc.SearchURLFor(kw)
			fmt.Fprintf(w, "  query %q: %s\n", kw, queryURL)
			markup, err := r.Fetcher.Get(ctx, queryURL)
			if err != nil {
				fmt.Fprintf(w, "  warning: keyword query failed: %v\n", err)
				continue
			}
			r.Sink.Listing(desc.VenueID, desc.Year, markup)
			got, err := extract.ExtractList(markup, desc.ListRules)
			if err != nil {
				fmt.Fprintf(w, "  warning: keyword query page unreadable: %v\n", err)
				continue
			}
			stubs = append(stubs, got...)
		}
		if len(stubs) > 0 {
			return stubs, nil
		}
		fmt.Fprintf(w, "  keyword queries found nothing, trying the full listing\n")
		r.pause(ctx)
	}

	fmt.Fprintf(w, "  listing: %s\n", desc.ListingURL)
	markup, err := r.Fetcher.Get(ctx, desc.ListingURL)
	if err != nil {
		return nil, err
	}
	r.Sink.Listing(desc.VenueID, desc.Year, markup)
	return extract.ExtractList(markup, desc.ListRules)
}

// pause sleeps for the configured politeness delay, returning early on
// context cancellation.
func (r *Runner) pause(ctx context.Context) {
	if r.Config.RequestDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(r.Config.RequestDelay):
	}
}
