// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package debugdump

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirSinkWritesListingAndDetail(t *testing.T) {
	dir := t.TempDir()
	var log bytes.Buffer
	sink := &DirSink{Dir: dir, Log: &log}

	sink.Listing("ICML", 2024, []byte("<html>listing</html>"))
	sink.Detail("ICML", 2024, 1, []byte("<html>detail</html>"))

	data, err := os.ReadFile(filepath.Join(dir, "debug_ICML_2024.html"))
	if err != nil {
		t.Fatalf("listing dump missing: %v", err)
	}
	if string(data) != "<html>listing</html>" {
		t.Errorf("listing dump = %q", data)
	}

	if _, err := os.Stat(filepath.Join(dir, "debug_ICML_2024_detail_1.html")); err != nil {
		t.Errorf("detail dump missing: %v", err)
	}
	if !strings.Contains(log.String(), "dumped") {
		t.Errorf("log output = %q", log.String())
	}
}

func TestDirSinkFailureIsWarningOnly(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail; the
	// sink must log and carry on, never panic or error.
	base := t.TempDir()
	blocked := filepath.Join(base, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	sink := &DirSink{Dir: filepath.Join(blocked, "sub"), Log: &log}
	sink.Listing("ICML", 2024, []byte("ignored"))

	if !strings.Contains(log.String(), "debug:") {
		t.Errorf("expected warning, log = %q", log.String())
	}
}

func TestDirSinkNilLog(t *testing.T) {
	sink := &DirSink{Dir: t.TempDir()}
	sink.Listing("ICML", 2024, []byte("ok")) // must not panic
}

func TestDiscard(t *testing.T) {
	Discard.Listing("ICML", 2024, []byte("x"))
	Discard.Detail("ICML", 2024, 1, []byte("x"))
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	page := `<html>
		<a href="/p/1">one</a><a href="/p/2">two</a>
		<span class="author">Ada</span>
		<div class="abstract">text</div>
	</html>`
	if err := os.WriteFile(filepath.Join(dir, "debug_ICML_2024.html"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Analyze(dir, &out); err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	s := out.String()
	if !strings.Contains(s, "Found 1 debug files") {
		t.Errorf("file count missing: %q", s)
	}
	if !strings.Contains(s, "links: 2") {
		t.Errorf("link count missing: %q", s)
	}
	if !strings.Contains(s, "author tags: 1") {
		t.Errorf("author count missing: %q", s)
	}
	if !strings.Contains(s, "abstract tags: 1") {
		t.Errorf("abstract count missing: %q", s)
	}
}

func TestAnalyzeEmptyDir(t *testing.T) {
	var out bytes.Buffer
	if err := Analyze(t.TempDir(), &out); err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if !strings.Contains(out.String(), "No debug files found.") {
		t.Errorf("output = %q", out.String())
	}
}
