// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/paperscout/internal/debugdump"
	"github.com/pdiddy/paperscout/internal/extract"
	"github.com/pdiddy/paperscout/internal/fetch"
	"github.com/pdiddy/paperscout/pkg/types"
)

var detailRules = extract.DetailRules{
	Abstract: extract.Chain{{Selector: "#abstract"}},
}

func testOpts(listingURL string) Options {
	return Options{
		Venue:      "TESTCONF",
		Year:       2024,
		ListingURL: listingURL,
		Rules:      detailRules,
	}
}

func TestEnrichFillsAbstract(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><div id="abstract">  Exact   abstract text. </div></html>`)
	}))
	defer ts.Close()

	stubs := []types.PaperStub{
		{Title: "Paper A", DetailLink: ts.URL + "/a"},
		{Title: "Paper B", Abstract: "already here"},
	}

	var out bytes.Buffer
	got := Enrich(context.Background(), fetch.New(types.HTTPConfig{}), stubs, testOpts(ts.URL), debugdump.Discard, &out)

	if got[0].Abstract != "Exact abstract text." {
		t.Errorf("Abstract = %q, want normalized detail text", got[0].Abstract)
	}
	if got[1].Abstract != "already here" {
		t.Errorf("existing abstract changed: %q", got[1].Abstract)
	}
}

func TestEnrichResolvesRelativeLinks(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/papers/42" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<div id="abstract">Found it.</div>`)
	}))
	defer ts.Close()

	stubs := []types.PaperStub{{Title: "Paper A", DetailLink: "/papers/42"}}

	var out bytes.Buffer
	got := Enrich(context.Background(), fetch.New(types.HTTPConfig{}), stubs, testOpts(ts.URL+"/listing"), debugdump.Discard, &out)

	if got[0].Abstract != "Found it." {
		t.Errorf("Abstract = %q", got[0].Abstract)
	}
	if got[0].DetailLink != ts.URL+"/papers/42" {
		t.Errorf("DetailLink = %q, want absolute", got[0].DetailLink)
	}
}

func TestEnrichFetchFailureLeavesStub(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	stubs := []types.PaperStub{{Title: "Paper A", DetailLink: ts.URL + "/a"}}

	var out bytes.Buffer
	got := Enrich(context.Background(), fetch.New(types.HTTPConfig{}), stubs, testOpts(ts.URL), debugdump.Discard, &out)

	if got[0].Abstract != "" {
		t.Errorf("Abstract = %q, want empty after failed fetch", got[0].Abstract)
	}
	if !strings.Contains(out.String(), "warning: detail fetch failed") {
		t.Errorf("missing warning, output: %q", out.String())
	}
}

func TestEnrichAbstractMissIsNoted(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><p>No abstract markup at all.</p></html>`)
	}))
	defer ts.Close()

	stubs := []types.PaperStub{{Title: "Paper A", DetailLink: ts.URL + "/a"}}

	var out bytes.Buffer
	got := Enrich(context.Background(), fetch.New(types.HTTPConfig{}), stubs, testOpts(ts.URL), debugdump.Discard, &out)

	if got[0].Abstract != "" {
		t.Errorf("Abstract = %q, want empty", got[0].Abstract)
	}
	if !strings.Contains(out.String(), "note: no abstract found") {
		t.Errorf("missing note, output: %q", out.String())
	}
}

func TestEnrichConcurrentPreservesOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Echo the path so each stub gets a distinct abstract.
		fmt.Fprintf(w, `<div id="abstract">abstract for %s</div>`, r.URL.Path)
	}))
	defer ts.Close()

	const n = 12
	var stubs []types.PaperStub
	for i := 0; i < n; i++ {
		stubs = append(stubs, types.PaperStub{
			Title:      fmt.Sprintf("Paper %d", i),
			DetailLink: fmt.Sprintf("%s/p/%d", ts.URL, i),
		})
	}

	opts := testOpts(ts.URL)
	opts.Concurrency = 4
	var out bytes.Buffer
	got := Enrich(context.Background(), fetch.New(types.HTTPConfig{}), stubs, opts, debugdump.Discard, &out)

	for i := 0; i < n; i++ {
		want := fmt.Sprintf("abstract for /p/%d", i)
		if got[i].Abstract != want {
			t.Errorf("got[%d].Abstract = %q, want %q", i, got[i].Abstract, want)
		}
	}
}

func TestEnrichNothingPending(t *testing.T) {
	stubs := []types.PaperStub{
		{Title: "No link"},
		{Title: "Has abstract", Abstract: "done", DetailLink: "http://unused.example/"},
	}

	var out bytes.Buffer
	got := Enrich(context.Background(), fetch.New(types.HTTPConfig{}), stubs, testOpts("http://listing.example/"), debugdump.Discard, &out)

	if len(got) != 2 || got[0].Title != "No link" {
		t.Errorf("stubs changed: %+v", got)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output: %q", out.String())
	}
}

// --- ResolveLink ---

func TestResolveLink(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		listing string
		href    string
		want    string
	}{
		{"absolute passes through", "https://conf.org", "https://conf.org/papers", "https://other.org/p/1", "https://other.org/p/1"},
		{"relative against base", "https://conf.org", "https://conf.org/2024/papers", "/p/1", "https://conf.org/p/1"},
		{"relative against listing when no base", "", "https://conf.org/2024/papers", "p/1", "https://conf.org/2024/p/1"},
		{"fragment dropped", "https://conf.org", "https://conf.org/papers", "#section", ""},
		{"javascript dropped", "https://conf.org", "https://conf.org/papers", "javascript:void(0)", ""},
		{"mailto dropped", "https://conf.org", "https://conf.org/papers", "mailto:chair@conf.org", ""},
		{"empty dropped", "https://conf.org", "https://conf.org/papers", "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLink(tt.base, tt.listing, tt.href); got != tt.want {
				t.Errorf("ResolveLink(%q, %q, %q) = %q, want %q", tt.base, tt.listing, tt.href, got, tt.want)
			}
		})
	}
}
