// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich fills in missing abstracts by fetching per-paper
// detail pages. A detail fetch that fails leaves the stub unchanged;
// enrichment never fails a run.
package enrich

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/paperscout/internal/debugdump"
	"github.com/pdiddy/paperscout/internal/extract"
	"github.com/pdiddy/paperscout/internal/fetch"
	"github.com/pdiddy/paperscout/pkg/types"
)

// Options control one enrichment pass over a source's stubs.
type Options struct {
	// Venue and Year label debug dumps and progress output.
	Venue string
	Year  int

	// ListingURL resolves relative detail links when BaseURL is empty.
	ListingURL string

	// BaseURL, when set, overrides the listing URL's origin for
	// relative link resolution.
	BaseURL string

	// Rules locate the abstract on detail pages.
	Rules extract.DetailRules

	// Concurrency is the number of detail pages fetched in parallel;
	// values below 1 mean serial fetching.
	Concurrency int

	// Delay is the pause between consecutive request launches.
	Delay time.Duration
}

// Enrich fetches detail pages for stubs that lack an abstract but carry
// a detail link, and fills in the first abstract the detail rules
// locate. Stubs are returned in their original order regardless of
// fetch completion order; per-stub failures are noted on w and leave
// the stub unchanged.
func Enrich(ctx context.Context, fetcher *fetch.Fetcher, stubs []types.PaperStub, opts Options, sink debugdump.Sink, w io.Writer) []types.PaperStub {
	var pending []int
	for i, s := range stubs {
		if s.Abstract == "" && s.DetailLink != "" {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return stubs
	}

	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(pending) {
		workers = len(pending)
	}

	// The feeder paces request launches; workers write only to their
	// own stub index, so the slice needs no locking.
	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for n, idx := range pending {
			if n > 0 && opts.Delay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(opts.Delay):
				}
			}
			select {
			case <-ctx.Done():
				return
			case jobs <- idx:
			}
		}
	}()

	var wg sync.WaitGroup
	var mu sync.Mutex // serializes progress output and dump sequencing
	seq := 0
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				enrichOne(ctx, fetcher, &stubs[idx], opts, sink, w, &mu, &seq)
			}
		}()
	}
	wg.Wait()

	return stubs
}

func enrichOne(ctx context.Context, fetcher *fetch.Fetcher, stub *types.PaperStub, opts Options, sink debugdump.Sink, w io.Writer, mu *sync.Mutex, seq *int) {
	link := ResolveLink(opts.BaseURL, opts.ListingURL, stub.DetailLink)
	if link == "" {
		return
	}

	markup, err := fetcher.Get(ctx, link)
	if err != nil {
		mu.Lock()
		fmt.Fprintf(w, "  warning: detail fetch failed, abstract left empty: %v\n", err)
		mu.Unlock()
		return
	}

	mu.Lock()
	*seq++
	sink.Detail(opts.Venue, opts.Year, *seq, markup)
	mu.Unlock()

	abstract, err := extract.ExtractAbstract(markup, opts.Rules)
	if err != nil || abstract == "" {
		mu.Lock()
		fmt.Fprintf(w, "  note: no abstract found on %s\n", link)
		mu.Unlock()
		return
	}
	stub.Abstract = abstract
	stub.DetailLink = link
}

// ResolveLink makes a detail link absolute. Absolute links pass
// through; relative links join against base when set, otherwise
// against the listing URL.
func ResolveLink(base, listing, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}

	origin := base
	if origin == "" {
		origin = listing
	}
	u, err := url.Parse(origin)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return u.ResolveReference(ref).String()
}
