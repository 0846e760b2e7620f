// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paperscout pipeline.
package types

// NotAvailable is the placeholder exported for absent authors or
// abstracts, so every record field carries defined text.
const NotAvailable = "not available"

// PaperStub is a partially extracted paper from a listing page. The
// abstract may be filled in later by detail-page enrichment; no other
// field changes after extraction.
type PaperStub struct {
	// Title is the paper title as it appeared in the listing markup.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in listing order. May be empty.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// DetailLink is the paper's detail page URL, possibly relative to
	// the listing page. Empty when the listing carries no link.
	DetailLink string `json:"detail_link,omitempty" yaml:"detail_link,omitempty"`

	// Abstract is the abstract text, when the listing page carried one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

// PaperRecord is a final, normalized search hit. Records are created
// only by the pipeline's normalization step and never mutated after.
// Every field holds non-empty text; Authors and Abstract fall back to
// the NotAvailable placeholder.
type PaperRecord struct {
	// Venue is the venue identifier the record was scraped from (e.g. "ICML").
	Venue string `json:"venue" yaml:"venue"`

	// Year is the conference year.
	Year int `json:"year" yaml:"year"`

	// Title is the paper title, whitespace-normalized, first-seen casing.
	Title string `json:"title" yaml:"title"`

	// Authors is the comma-joined author list.
	Authors string `json:"authors" yaml:"authors"`

	// Abstract is the abstract text, from the listing or the detail page.
	Abstract string `json:"abstract" yaml:"abstract"`

	// DetailLink is the absolute detail page URL, or the placeholder.
	DetailLink string `json:"detail_link" yaml:"detail_link"`
}
