// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scout

import (
	"strings"

	"github.com/pdiddy/paperscout/internal/extract"
	"github.com/pdiddy/paperscout/pkg/types"
)

// MatchKeywords reports whether any keyword appears, case-insensitively
// and as a plain substring, in the title or abstract. An empty keyword
// set matches everything, which makes filtering monotonic: adding
// keywords can only admit more records.
func MatchKeywords(title, abstract string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	title = strings.ToLower(title)
	abstract = strings.ToLower(abstract)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if strings.Contains(title, kw) || strings.Contains(abstract, kw) {
			return true
		}
	}
	return false
}

// Dedupe collapses stubs sharing a normalized title to the first
// occurrence, preserving order. Running it on already-deduplicated
// input returns the same sequence.
func Dedupe(stubs []types.PaperStub) []types.PaperStub {
	seen := make(map[string]bool, len(stubs))
	out := stubs[:0:0]
	for _, s := range stubs {
		key := extract.NormalizeTitle(s.Title)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// prefilter drops stubs that cannot possibly match the keywords: the
// title misses and an abstract is already present (so enrichment
// cannot change the outcome). Stubs with an empty abstract and a
// detail link stay in, since the fetched abstract may still match.
func prefilter(stubs []types.PaperStub, keywords []string) []types.PaperStub {
	if len(keywords) == 0 {
		return stubs
	}
	out := stubs[:0:0]
	for _, s := range stubs {
		if MatchKeywords(s.Title, s.Abstract, keywords) {
			out = append(out, s)
			continue
		}
		if s.Abstract == "" && s.DetailLink != "" {
			out = append(out, s)
		}
	}
	return out
}

// Normalize builds the final records for one venue+year: keyword
// filtering on the enriched stubs, then placeholder substitution so
// every exported field holds text. Input is assumed deduplicated.
func Normalize(stubs []types.PaperStub, venue string, year int, keywords []string) []types.PaperRecord {
	var records []types.PaperRecord
	for _, s := range stubs {
		if !MatchKeywords(s.Title, s.Abstract, keywords) {
			continue
		}
		records = append(records, types.PaperRecord{
			Venue:      venue,
			Year:       year,
			Title:      extract.NormalizeSpace(s.Title),
			Authors:    textOr(strings.Join(s.Authors, ", ")),
			Abstract:   textOr(strings.TrimSpace(s.Abstract)),
			DetailLink: textOr(s.DetailLink),
		})
	}
	return records
}

func textOr(s string) string {
	if s == "" {
		return types.NotAvailable
	}
	return s
}
