// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/paperscout/pkg/types"
)

// Paper titles shorter than this are almost always navigation text or
// section labels, not papers.
const minTitleLen = 5

// ExtractList parses listing markup into paper stubs, in markup order.
// The container chain picks the repeating entry element; entries whose
// title chain resolves empty are dropped silently, since they are
// section headers or malformed rows rather than papers. When no
// container locator matches at all, a heuristic scan over common
// title-bearing shapes is used instead.
func ExtractList(markup []byte, rules ListRules) ([]types.PaperStub, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing listing markup: %w", err)
	}

	// The heuristic scan runs only when no container locator matched at
	// all. A matching container whose entries all lack titles is a page
	// of section headers, not a page with unknown structure.
	containers := resolveContainers(doc, rules.Container)
	if containers == nil {
		return fallbackScan(doc), nil
	}
	var stubs []types.PaperStub
	containers.Each(func(_ int, s *goquery.Selection) {
		if stub, ok := extractStub(s, rules); ok {
			stubs = append(stubs, stub)
		}
	})
	return stubs, nil
}

// ExtractAbstract applies the detail-page abstract chain to detail
// markup, returning "" when every locator misses.
func ExtractAbstract(markup []byte, rules DetailRules) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parsing detail markup: %w", err)
	}
	return rules.Abstract.Resolve(doc.Selection), nil
}

// resolveContainers tries each container locator in declared order and
// returns the first selection with at least one match.
func resolveContainers(doc *goquery.Document, chain Chain) *goquery.Selection {
	for _, loc := range chain {
		if sel := doc.Find(loc.Selector); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

func extractStub(s *goquery.Selection, rules ListRules) (types.PaperStub, bool) {
	title := rules.Title.Resolve(s)
	if title == "" {
		return types.PaperStub{}, false
	}
	return types.PaperStub{
		Title:      title,
		Authors:    rules.Authors.ResolveList(s),
		DetailLink: rules.Link.Resolve(s),
		Abstract:   rules.Abstract.Resolve(s),
	}, true
}

// fallbackScan recovers stubs from pages whose structure matches none
// of the declared containers: headings, title-classed nodes and strong
// runs long enough to plausibly be paper titles become stubs, with the
// nearest anchor as the detail link.
func fallbackScan(doc *goquery.Document) []types.PaperStub {
	var stubs []types.PaperStub
	doc.Find("h1, h2, h3, h4, h5, [class*='title'], strong").Each(func(_ int, s *goquery.Selection) {
		title := NormalizeSpace(s.Text())
		if len(title) < minTitleLen || len(title) > 300 {
			return
		}
		link, ok := s.Find("a").First().Attr("href")
		if !ok {
			link, _ = s.Closest("a").Attr("href")
		}
		stubs = append(stubs, types.PaperStub{Title: title, DetailLink: link})
	})
	return stubs
}
