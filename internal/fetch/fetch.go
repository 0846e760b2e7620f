// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch performs single HTTP GETs for the scraping pipeline.
// One page, one request: there are no retries, because a failed fetch
// degrades only that page's extraction, never the whole run.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/paperscout/pkg/types"
)

// FetchError reports a failed page fetch. Network failures and non-2xx
// responses are deliberately indistinguishable to callers; either way
// the page's markup is unavailable.
type FetchError struct {
	URL    string
	Reason string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Reason)
}

// Fetcher issues bounded-timeout GET requests and returns raw markup.
// It is stateless apart from the shared http.Client and safe for
// concurrent use.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// New builds a Fetcher from HTTP settings, filling in defaults for
// zero values.
func New(cfg types.HTTPConfig) *Fetcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = types.DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = types.DefaultUserAgent
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: ua,
	}
}

// Get fetches url and returns the raw response body. Any failure
// (transport error, timeout, non-2xx status) comes back as a
// *FetchError.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: err.Error()}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URL: url, Reason: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: err.Error()}
	}
	return body, nil
}
