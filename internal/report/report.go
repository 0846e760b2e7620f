// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders run results: a stdout table, a Markdown
// report, a JSON export, and a YAML saved-search file that can be
// reloaded without re-scraping.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paperscout/internal/scout"
	"github.com/pdiddy/paperscout/pkg/types"
)

// FormatTable writes the run's records as a human-readable table to w.
func FormatTable(res scout.RunResult, w io.Writer) {
	records := res.Records()
	if len(records) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-8s  %-4s  %s\n", "Rank", "Title", "Venue", "Year", "Authors")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, r := range records {
		fmt.Fprintf(w, "%-4d  %-60s  %-8s  %-4d  %s\n",
			i+1, truncate(r.Title, 60), r.Venue, r.Year, truncate(r.Authors, 24))
	}

	fmt.Fprintf(w, "\n%d papers", len(records))
	if res.DupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", res.DupsRemoved)
	}
	if res.Failed > 0 {
		fmt.Fprintf(w, ", %d sources failed", res.Failed)
	}
	fmt.Fprintln(w)
}

// WriteJSON writes the full run, request and timestamp included, as
// indented JSON to w.
func WriteJSON(w io.Writer, req scout.Request, res scout.RunResult, now time.Time) error {
	doc := struct {
		GeneratedAt time.Time       `json:"generated_at"`
		Request     scout.Request   `json:"request"`
		Run         scout.RunResult `json:"run"`
	}{GeneratedAt: now, Request: req, Run: res}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteMarkdown writes the human-readable report: search conditions,
// venue and year statistics, then per-venue paper listings.
func WriteMarkdown(w io.Writer, req scout.Request, res scout.RunResult, now time.Time) error {
	records := res.Records()
	venueStats, yearStats := stats(records)

	var b strings.Builder
	b.WriteString("# Paper Search Report\n\n")
	fmt.Fprintf(&b, "**Generated at**: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Venues**: %s\n", strings.Join(req.Venues, ", "))
	fmt.Fprintf(&b, "**Years**: %s\n", joinInts(req.Years))
	fmt.Fprintf(&b, "**Keywords**: %s\n", strings.Join(req.Keywords, ", "))
	fmt.Fprintf(&b, "**Total Papers**: %d\n", len(records))

	b.WriteString("\n## Stats\n\n### By Venue\n\n")
	for _, venue := range sortedKeys(venueStats) {
		fmt.Fprintf(&b, "- **%s**: %d\n", venue, venueStats[venue])
	}
	b.WriteString("\n### By Year\n\n")
	years := make([]int, 0, len(yearStats))
	for y := range yearStats {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	for _, y := range years {
		fmt.Fprintf(&b, "- **%d**: %d\n", y, yearStats[y])
	}

	b.WriteString("\n## Papers\n\n")
	for _, venue := range sortedKeys(venueStats) {
		group := byVenue(records, venue)
		fmt.Fprintf(&b, "### %s (%d)\n\n", venue, len(group))
		for i, r := range group {
			fmt.Fprintf(&b, "#### %d. %s\n\n", i+1, r.Title)
			fmt.Fprintf(&b, "**Venue**: %s %d\n", r.Venue, r.Year)
			fmt.Fprintf(&b, "**Authors**: %s\n", r.Authors)
			if r.DetailLink != types.NotAvailable {
				fmt.Fprintf(&b, "**URL**: [%s](%s)\n", r.DetailLink, r.DetailLink)
			}
			fmt.Fprintf(&b, "**Abstract**: %s\n", r.Abstract)
			b.WriteString("\n---\n\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Export writes the Markdown and JSON reports into dir using a
// basename derived from the search conditions, returning the two
// paths.
func Export(dir string, req scout.Request, res scout.RunResult, now time.Time) (mdPath, jsonPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output directory: %w", err)
	}
	base := Basename(req, now)
	mdPath = filepath.Join(dir, base+".md")
	jsonPath = filepath.Join(dir, base+".json")

	md, err := os.Create(mdPath)
	if err != nil {
		return "", "", fmt.Errorf("creating %s: %w", mdPath, err)
	}
	defer md.Close()
	if err := WriteMarkdown(md, req, res, now); err != nil {
		return "", "", fmt.Errorf("writing Markdown report: %w", err)
	}

	js, err := os.Create(jsonPath)
	if err != nil {
		return "", "", fmt.Errorf("creating %s: %w", jsonPath, err)
	}
	defer js.Close()
	if err := WriteJSON(js, req, res, now); err != nil {
		return "", "", fmt.Errorf("writing JSON export: %w", err)
	}
	return mdPath, jsonPath, nil
}

var unsafeToken = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Basename derives the output file stem from the search conditions,
// keywords+venues+years, with a timestamp suffix against accidental
// overwrites.
func Basename(req scout.Request, now time.Time) string {
	kw := joinTokens(req.Keywords)
	ven := joinTokens(req.Venues)
	var years []string
	for _, y := range req.Years {
		years = append(years, strconv.Itoa(y))
	}
	yrs := joinTokens(years)
	return fmt.Sprintf("%s+%s+%s__%s", kw, ven, yrs, now.Format("20060102_150405"))
}

func joinTokens(tokens []string) string {
	var safe []string
	for _, t := range tokens {
		t = unsafeToken.ReplaceAllString(strings.TrimSpace(strings.ReplaceAll(t, " ", "_")), "_")
		t = strings.Trim(t, "_")
		if t != "" {
			safe = append(safe, t)
		}
	}
	if len(safe) == 0 {
		return "NA"
	}
	return strings.Join(safe, "-")
}

// truncate shortens s to at most max runes, ellipsized. Counting runes
// keeps multi-byte titles and names intact.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func stats(records []types.PaperRecord) (map[string]int, map[int]int) {
	venues := make(map[string]int)
	years := make(map[int]int)
	for _, r := range records {
		venues[r.Venue]++
		years[r.Year]++
	}
	return venues, years
}

func byVenue(records []types.PaperRecord, venue string) []types.PaperRecord {
	var out []types.PaperRecord
	for _, r := range records {
		if r.Venue == venue {
			out = append(out, r)
		}
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinInts(ns []int) string {
	var parts []string
	for _, n := range ns {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ", ")
}
