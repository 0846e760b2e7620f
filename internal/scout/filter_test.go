// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scout

import (
	"reflect"
	"testing"

	"github.com/pdiddy/paperscout/pkg/types"
)

// --- MatchKeywords ---

func TestMatchKeywords(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		abstract string
		keywords []string
		want     bool
	}{
		{"empty keywords match everything", "Any Title", "", nil, true},
		{"case-insensitive title match", "Federated Learning at Scale", "", []string{"FEDERATED"}, true},
		{"substring match", "On Defederated Systems", "", []string{"federated"}, true},
		{"abstract match", "Opaque Title", "we study transformer models", []string{"transformer"}, true},
		{"no match", "Graph Networks", "spectral methods", []string{"diffusion"}, false},
		{"any keyword suffices", "Graph Networks", "", []string{"diffusion", "graph"}, true},
		{"blank keywords ignored", "Graph Networks", "", []string{"  ", ""}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchKeywords(tt.title, tt.abstract, tt.keywords); got != tt.want {
				t.Errorf("MatchKeywords() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchKeywordsMonotonic(t *testing.T) {
	// Adding a keyword can only admit more papers, never fewer.
	title, abstract := "Robust Optimization", "convex analysis"
	base := []string{"optimization"}
	if !MatchKeywords(title, abstract, base) {
		t.Fatal("base keyword should match")
	}
	if !MatchKeywords(title, abstract, append(base, "unrelated")) {
		t.Error("adding a keyword removed a match")
	}
}

// --- Dedupe ---

func TestDedupe(t *testing.T) {
	stubs := []types.PaperStub{
		{Title: "Learning to Forget", DetailLink: "/a"},
		{Title: "  learning  to forget ", DetailLink: "/b"},
		{Title: "A Different Paper"},
	}

	got := Dedupe(stubs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// First occurrence wins.
	if got[0].DetailLink != "/a" {
		t.Errorf("got[0].DetailLink = %q, want /a", got[0].DetailLink)
	}
	if got[1].Title != "A Different Paper" {
		t.Errorf("got[1].Title = %q", got[1].Title)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	stubs := []types.PaperStub{
		{Title: "Paper One"},
		{Title: "Paper Two"},
	}
	once := Dedupe(stubs)
	twice := Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Dedupe not idempotent: %v vs %v", once, twice)
	}
}

// --- prefilter ---

func TestPrefilter(t *testing.T) {
	stubs := []types.PaperStub{
		// title match, kept
		{Title: "Diffusion Models", Abstract: "image synthesis"},
		// miss with an abstract present, dropped
		{Title: "Graph Networks", Abstract: "no relevant terms"},
		// miss but enrichable, kept
		{Title: "Opaque Title", DetailLink: "/detail"},
		// miss, no link, dropped
		{Title: "Hopeless", Abstract: ""},
	}

	got := prefilter(stubs, []string{"diffusion"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].Title != "Diffusion Models" || got[1].Title != "Opaque Title" {
		t.Errorf("kept = %q, %q", got[0].Title, got[1].Title)
	}
}

func TestPrefilterNoKeywords(t *testing.T) {
	stubs := []types.PaperStub{{Title: "Anything"}}
	if got := prefilter(stubs, nil); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

// --- Normalize ---

func TestNormalizePlaceholders(t *testing.T) {
	stubs := []types.PaperStub{
		{Title: "  A   Spaced   Title "},
	}

	records := Normalize(stubs, "ICML", 2024, nil)
	if len(records) != 1 {
		t.Fatalf("len = %d, want 1", len(records))
	}
	r := records[0]
	if r.Title != "A Spaced Title" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.Authors != types.NotAvailable || r.Abstract != types.NotAvailable || r.DetailLink != types.NotAvailable {
		t.Errorf("missing fields not substituted: %+v", r)
	}
	if r.Venue != "ICML" || r.Year != 2024 {
		t.Errorf("provenance = %s %d", r.Venue, r.Year)
	}
}

func TestNormalizeFiltersAfterEnrichment(t *testing.T) {
	stubs := []types.PaperStub{
		{Title: "Opaque Title", Abstract: "fetched text about diffusion"},
		{Title: "Still Opaque", Abstract: "nothing relevant"},
	}

	records := Normalize(stubs, "ICML", 2024, []string{"diffusion"})
	if len(records) != 1 {
		t.Fatalf("len = %d, want 1", len(records))
	}
	if records[0].Title != "Opaque Title" {
		t.Errorf("Title = %q", records[0].Title)
	}
}

func TestNormalizeJoinsAuthors(t *testing.T) {
	stubs := []types.PaperStub{
		{Title: "Joint Work", Authors: []string{"Ada Lovelace", "Alan Turing"}},
	}

	records := Normalize(stubs, "ICML", 2024, nil)
	if records[0].Authors != "Ada Lovelace, Alan Turing" {
		t.Errorf("Authors = %q", records[0].Authors)
	}
}
