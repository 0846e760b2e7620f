// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns listing and detail-page markup into paper stubs
// using declarative locator rules. A locator names where a field's text
// lives; a chain is an ordered fallback list of locators, tried left to
// right until one yields text. Conference sites change markup across
// years, so most fields carry more than one locator.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Locator identifies one place a field's text may live inside a markup
// subtree: a CSS selector relative to the subtree root, and optionally
// an attribute name to read instead of the element text. An empty
// selector addresses the subtree root itself.
type Locator struct {
	Selector string `json:"selector" yaml:"selector"`
	Attr     string `json:"attr,omitempty" yaml:"attr,omitempty"`
}

// Chain is an ordered locator fallback list. Resolution is first
// non-empty wins; a chain that misses entirely resolves to "".
type Chain []Locator

// Sel is shorthand for a chain of text-content locators.
func Sel(selectors ...string) Chain {
	c := make(Chain, len(selectors))
	for i, s := range selectors {
		c[i] = Locator{Selector: s}
	}
	return c
}

// Resolve returns the first non-empty, whitespace-normalized text any
// locator in the chain finds under root.
func (c Chain) Resolve(root *goquery.Selection) string {
	for _, loc := range c {
		if text := loc.resolve(root); text != "" {
			return text
		}
	}
	return ""
}

// ResolveList returns the texts of every element matched by the first
// locator in the chain that matches anything, split into individual
// author names and deduplicated case-insensitively.
func (c Chain) ResolveList(root *goquery.Selection) []string {
	for _, loc := range c {
		sel := root
		if loc.Selector != "" {
			sel = root.Find(loc.Selector)
		}
		var names []string
		seen := make(map[string]bool)
		sel.Each(func(_ int, s *goquery.Selection) {
			for _, name := range SplitAuthors(loc.text(s)) {
				key := strings.ToLower(name)
				if !seen[key] {
					seen[key] = true
					names = append(names, name)
				}
			}
		})
		if len(names) > 0 {
			return names
		}
	}
	return nil
}

// resolve evaluates a single locator, scanning past matches with empty
// text so that, say, an icon-only anchor does not shadow the real one.
func (l Locator) resolve(root *goquery.Selection) string {
	sel := root
	if l.Selector != "" {
		sel = root.Find(l.Selector)
	}
	var text string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text = l.text(s)
		return text == ""
	})
	return text
}

func (l Locator) text(s *goquery.Selection) string {
	if l.Attr != "" {
		v, _ := s.Attr(l.Attr)
		return strings.TrimSpace(v)
	}
	return NormalizeSpace(s.Text())
}

// ListRules describes how to locate paper entries on a listing page:
// the repeating container for one entry, then per-field chains
// evaluated inside each container.
type ListRules struct {
	Container Chain `json:"container" yaml:"container"`
	Title     Chain `json:"title" yaml:"title"`
	Authors   Chain `json:"authors,omitempty" yaml:"authors,omitempty"`
	Link      Chain `json:"link,omitempty" yaml:"link,omitempty"`
	Abstract  Chain `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

// DetailRules describes how to recover the abstract from a paper's
// detail page.
type DetailRules struct {
	Abstract Chain `json:"abstract" yaml:"abstract"`
}

// NormalizeSpace trims s and collapses internal whitespace runs to
// single spaces.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeTitle returns the deduplication key for a title: trimmed,
// lowercased, internal whitespace collapsed.
func NormalizeTitle(s string) string {
	return strings.ToLower(NormalizeSpace(s))
}

// SplitAuthors splits a run of author names on the delimiters
// conference sites use: commas, semicolons, middle dots, and "and".
func SplitAuthors(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, " and ", ",")
	text = strings.ReplaceAll(text, ";", ",")
	text = strings.ReplaceAll(text, "·", ",")
	var authors []string
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			authors = append(authors, part)
		}
	}
	return authors
}
