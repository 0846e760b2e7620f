// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package debugdump persists raw fetched markup for manual inspection
// and analyzes previously dumped pages. The pipeline offers markup to a
// Sink; whether anything is written is the sink's decision, not the
// pipeline's.
package debugdump

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sink receives raw markup taps from the pipeline.
type Sink interface {
	// Listing receives a venue+year listing page.
	Listing(venue string, year int, markup []byte)

	// Detail receives the seq-th detail page fetched for a venue+year.
	Detail(venue string, year int, seq int, markup []byte)
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Listing(string, int, []byte)     {}
func (discard) Detail(string, int, int, []byte) {}

// DirSink writes dumps as debug_<venue>_<year>[_detail_<seq>].html
// files under Dir. Dump failures are warnings on Log, never errors:
// debugging must not break a search.
type DirSink struct {
	Dir string
	Log io.Writer
}

func (s *DirSink) Listing(venue string, year int, markup []byte) {
	s.write(fmt.Sprintf("debug_%s_%d.html", venue, year), markup)
}

func (s *DirSink) Detail(venue string, year int, seq int, markup []byte) {
	s.write(fmt.Sprintf("debug_%s_%d_detail_%d.html", venue, year, seq), markup)
}

func (s *DirSink) write(name string, markup []byte) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		s.logf("creating dump directory: %v", err)
		return
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, markup, 0o644); err != nil {
		s.logf("writing %s: %v", path, err)
		return
	}
	s.logf("dumped %s", path)
}

func (s *DirSink) logf(format string, args ...any) {
	if s.Log != nil {
		fmt.Fprintf(s.Log, "  debug: "+format+"\n", args...)
	}
}

// Analyze summarizes every debug_*.html file under dir: size, link
// count, and rough counts of author- and abstract-bearing tags. The
// counts hint at which locators a venue's rules should declare.
func Analyze(dir string, w io.Writer) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, "debug_") && strings.HasSuffix(name, ".html") {
			files = append(files, name)
		}
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No debug files found.")
		return nil
	}
	sort.Strings(files)

	fmt.Fprintf(w, "Found %d debug files in %s\n", len(files), dir)
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(w, "\n%s: read failed: %v\n", name, err)
			continue
		}
		content := strings.ToLower(string(data))
		links := strings.Count(content, `href="`)
		authors := countAny(content, `class="author`, `class="presenter`, `class="card-subtitle`, `"authors":`, `"presenter":`)
		abstracts := countAny(content, `class="abstract`, `class="summary`, `class="description`, `class="card-text`, `"abstract":`, `"summary":`)

		fmt.Fprintf(w, "\n%s\n", name)
		fmt.Fprintf(w, "  size: %d bytes, links: %d, author tags: %d, abstract tags: %d\n",
			len(data), links, authors, abstracts)
	}
	return nil
}

func countAny(content string, needles ...string) int {
	total := 0
	for _, n := range needles {
		total += strings.Count(content, n)
	}
	return total
}
