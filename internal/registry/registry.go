// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry maps conference identifiers to source descriptors:
// the listing URL for a given year plus the extraction rules for that
// venue's markup. The built-in table covers the major AI/ML, vision,
// NLP, data, systems, security and theory venues; a YAML overlay file
// can add or override venues without rebuilding.
package registry

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/paperscout/internal/extract"
)

// ConfigError reports a missing or malformed venue descriptor. It is
// fatal for that source only; other sources in the same run proceed.
type ConfigError struct {
	Venue  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("venue %s: %s", e.Venue, e.Reason)
}

// Venue is one conference or journal in the registry.
type Venue struct {
	// ID is the short venue identifier (e.g. "ICML").
	ID string `yaml:"id"`

	// Name is the full venue name.
	Name string `yaml:"name"`

	// URLTemplate is the accepted-papers listing URL with a {year}
	// placeholder (e.g. "https://icml.cc/virtual/{year}/papers.html").
	URLTemplate string `yaml:"url"`

	// SearchURLTemplate, when set, is a keyword query URL with {year}
	// and {keyword} placeholders. Venues with one are queried per
	// keyword before falling back to the full listing.
	SearchURLTemplate string `yaml:"search_url,omitempty"`

	// BaseURL resolves relative detail links; when empty, the listing
	// URL's origin is used.
	BaseURL string `yaml:"base,omitempty"`

	// Years lists the years the listing is known to exist for. A year
	// outside this list is attempted anyway, with a warning.
	Years []int `yaml:"years,omitempty"`

	// Category groups the venue in the selection menu.
	Category string `yaml:"category,omitempty"`

	// ListRules and DetailRules override the shared default rule sets.
	ListRules   *extract.ListRules   `yaml:"list_rules,omitempty"`
	DetailRules *extract.DetailRules `yaml:"detail_rules,omitempty"`
}

// SourceDescriptor is the resolved configuration for one venue+year
// pair: everything the pipeline needs to scrape it. Built once per
// lookup and not mutated afterward.
type SourceDescriptor struct {
	VenueID     string
	Name        string
	Year        int
	ListingURL  string
	SearchURL   string // year expanded, {keyword} placeholder remains; "" when unsupported
	BaseURL     string
	ListRules   extract.ListRules
	DetailRules extract.DetailRules
}

// SearchURLFor substitutes a query-escaped keyword into the search URL
// template. Returns "" when the venue has no search URL.
func (d SourceDescriptor) SearchURLFor(keyword string) string {
	if d.SearchURL == "" {
		return ""
	}
	return strings.ReplaceAll(d.SearchURL, "{keyword}", url.QueryEscape(keyword))
}

// Registry holds venues in declaration order.
type Registry struct {
	venues map[string]*Venue
	order  []string
}

// Lookup resolves a venue+year pair into a source descriptor. Unknown
// venues and venues without a URL template are ConfigErrors.
func (r *Registry) Lookup(venueID string, year int) (SourceDescriptor, error) {
	v, ok := r.venues[strings.ToUpper(venueID)]
	if !ok {
		return SourceDescriptor{}, &ConfigError{Venue: venueID, Reason: "not in registry"}
	}
	if v.URLTemplate == "" {
		return SourceDescriptor{}, &ConfigError{Venue: v.ID, Reason: "no listing URL configured"}
	}

	desc := SourceDescriptor{
		VenueID:     v.ID,
		Name:        v.Name,
		Year:        year,
		ListingURL:  expandYear(v.URLTemplate, year),
		SearchURL:   expandYear(v.SearchURLTemplate, year),
		BaseURL:     expandYear(v.BaseURL, year),
		ListRules:   defaultListRules,
		DetailRules: defaultDetailRules,
	}
	if v.ListRules != nil {
		desc.ListRules = *v.ListRules
	}
	if v.DetailRules != nil {
		desc.DetailRules = *v.DetailRules
	}
	return desc, nil
}

// YearKnown reports whether the venue's listing is known to exist for
// the given year. Unknown venue counts as unknown year.
func (r *Registry) YearKnown(venueID string, year int) bool {
	v, ok := r.venues[strings.ToUpper(venueID)]
	if !ok {
		return false
	}
	for _, y := range v.Years {
		if y == year {
			return true
		}
	}
	return false
}

// Venues returns all venues in declaration order.
func (r *Registry) Venues() []Venue {
	out := make([]Venue, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.venues[id])
	}
	return out
}

// Categories returns the distinct venue categories in declaration order.
func (r *Registry) Categories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, id := range r.order {
		c := r.venues[id].Category
		if c != "" && !seen[c] {
			seen[c] = true
			cats = append(cats, c)
		}
	}
	return cats
}

// Resolve expands a selection token into venue IDs: a quick-pick group
// name, or a single venue ID (case-insensitive). Unknown tokens return
// a ConfigError.
func (r *Registry) Resolve(token string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(token))
	if key == "all" {
		return append([]string(nil), r.order...), nil
	}
	if ids, ok := quickPicks[key]; ok {
		return ids, nil
	}
	id := strings.ToUpper(strings.TrimSpace(token))
	if _, ok := r.venues[id]; ok {
		return []string{id}, nil
	}
	return nil, &ConfigError{Venue: token, Reason: "not in registry"}
}

func (r *Registry) add(v *Venue) {
	id := strings.ToUpper(v.ID)
	if _, exists := r.venues[id]; !exists {
		r.order = append(r.order, id)
	}
	r.venues[id] = v
}

func expandYear(template string, year int) string {
	return strings.ReplaceAll(template, "{year}", strconv.Itoa(year))
}

// quickPicks are the shorthand selection groups offered by the menu;
// "all" expands to the full declaration order.
var quickPicks = map[string][]string{
	"ai":  {"ICML", "NEURIPS", "ICLR", "AAAI", "IJCAI"},
	"cv":  {"CVPR", "ICCV", "ECCV"},
	"nlp": {"ACL", "EMNLP", "NAACL"},
}

// Shared default rules. Individual venues override these when their
// markup needs it; the chains cover the container and field shapes the
// supported sites have used across years.
var defaultListRules = extract.ListRules{
	Container: extract.Sel(
		"ul.papers li", "li.paper", "div.paper", "div.maincard",
		".track-schedule-card", "div.paper-card", "article", "ul.publ-list li",
	),
	Title: extract.Chain{
		{Selector: ".paper-title"},
		{Selector: ".maincardBody"},
		{Selector: "h5 a"},
		{Selector: "h2"}, {Selector: "h3"}, {Selector: "h4"},
		{Selector: "strong"},
		{Selector: "a"},
		{Selector: ""}, // the container's own text, last resort
	},
	Authors: extract.Chain{
		{Selector: ".paper-authors"},
		{Selector: ".maincardFooter"},
		{Selector: "[class*='author']"},
		{Selector: "[class*='presenter']"},
		{Selector: ".card-subtitle"},
		{Selector: "em"}, {Selector: "i"},
	},
	Link: extract.Chain{
		{Selector: "a", Attr: "href"},
		{Selector: "", Attr: "href"},
		{Selector: "", Attr: "data-url"},
	},
	Abstract: extract.Chain{
		{Selector: "[class*='abstract']"},
		{Selector: ".card-text"},
		{Selector: "[class*='summary']"},
	},
}

var defaultDetailRules = extract.DetailRules{
	Abstract: extract.Chain{
		{Selector: "#abstract"},
		{Selector: "div.abstract"},
		{Selector: "p.abstract"},
		{Selector: "[class*='abstract']"},
		{Selector: ".card-text"},
		{Selector: "[class*='summary']"},
		{Selector: "[class*='description']"},
		{Selector: "meta[name='citation_abstract']", Attr: "content"},
		{Selector: "meta[property='og:description']", Attr: "content"},
	},
}

// Builtin returns the registry of preconfigured venues.
func Builtin() *Registry {
	r := &Registry{venues: make(map[string]*Venue)}
	for i := range builtinVenues {
		r.add(&builtinVenues[i])
	}
	return r
}

var builtinVenues = []Venue{
	{
		ID: "ICML", Category: "AI/ML",
		Name:              "International Conference on Machine Learning",
		URLTemplate:       "https://icml.cc/virtual/{year}/papers.html",
		SearchURLTemplate: "https://icml.cc/virtual/{year}/papers.html?search={keyword}",
		BaseURL:           "https://icml.cc",
		Years:             []int{2020, 2021, 2022, 2023, 2024, 2025},
	},
	{
		ID: "NeurIPS", Category: "AI/ML",
		Name:              "Neural Information Processing Systems",
		URLTemplate:       "https://nips.cc/virtual/{year}/papers.html",
		SearchURLTemplate: "https://nips.cc/virtual/{year}/papers.html?search={keyword}",
		BaseURL:           "https://nips.cc",
		Years:             []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "ICLR", Category: "AI/ML",
		Name:              "International Conference on Learning Representations",
		URLTemplate:       "https://iclr.cc/virtual/{year}/papers.html",
		SearchURLTemplate: "https://iclr.cc/virtual/{year}/papers.html?search={keyword}",
		BaseURL:           "https://iclr.cc",
		Years:             []int{2020, 2021, 2022, 2023, 2024, 2025},
	},
	{
		ID: "AAAI", Category: "AI/ML",
		Name:        "Association for the Advancement of Artificial Intelligence",
		URLTemplate: "https://aaai.org/{year}/accepted-papers/",
		BaseURL:     "https://aaai.org",
		Years:       []int{2020, 2021, 2022, 2023, 2024, 2025},
	},
	{
		ID: "IJCAI", Category: "AI/ML",
		Name:        "International Joint Conference on Artificial Intelligence",
		URLTemplate: "https://ijcai-{year}.org/accepted-papers",
		Years:       []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "CVPR", Category: "Computer Vision",
		Name:        "Conference on Computer Vision and Pattern Recognition",
		URLTemplate: "https://cvpr{year}.thecvf.com/accepted-papers",
		Years:       []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "ICCV", Category: "Computer Vision",
		Name:        "International Conference on Computer Vision",
		URLTemplate: "https://iccv{year}.thecvf.com/accepted-papers",
		Years:       []int{2021, 2023},
	},
	{
		ID: "ECCV", Category: "Computer Vision",
		Name:        "European Conference on Computer Vision",
		URLTemplate: "https://eccv{year}.eu/accepted-papers/",
		BaseURL:     "https://eccv{year}.eu",
		Years:       []int{2020, 2022, 2024},
	},
	{
		ID: "ACL", Category: "NLP",
		Name:        "Association for Computational Linguistics",
		URLTemplate: "https://{year}.aclweb.org/program/accepted/",
		Years:       []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "EMNLP", Category: "NLP",
		Name:        "Empirical Methods in Natural Language Processing",
		URLTemplate: "https://{year}.emnlp.org/program/accepted/",
		Years:       []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "NAACL", Category: "NLP",
		Name:        "North American Chapter of ACL",
		URLTemplate: "https://{year}.naacl.org/program/accepted/",
		Years:       []int{2021, 2022, 2024},
	},
	{
		ID: "KDD", Category: "Databases / Data Mining",
		Name:        "Knowledge Discovery and Data Mining",
		URLTemplate: "https://kdd.org/kdd{year}/accepted-papers/",
		BaseURL:     "https://kdd.org",
		Years:       []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "SIGMOD", Category: "Databases / Data Mining",
		Name:        "ACM SIGMOD International Conference on Management of Data",
		URLTemplate: "https://sigmod{year}.org/accepted-papers/",
		Years:       []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "VLDB", Category: "Databases / Data Mining",
		Name:        "Very Large Data Bases",
		URLTemplate: "https://vldb.org/{year}/accepted-papers/",
		BaseURL:     "https://vldb.org",
		Years:       []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "SOSP", Category: "Systems / Security",
		Name:        "Symposium on Operating Systems Principles",
		URLTemplate: "https://sosp{year}.org/accepted-papers/",
		Years:       []int{2021, 2023},
	},
	{
		ID: "OSDI", Category: "Systems / Security",
		Name:        "Operating Systems Design and Implementation",
		URLTemplate: "https://www.usenix.org/conference/osdi{year}/accepted-papers",
		BaseURL:     "https://www.usenix.org",
		Years:       []int{2020, 2022, 2024},
	},
	{
		ID: "CCS", Category: "Systems / Security",
		Name:        "ACM Conference on Computer and Communications Security",
		URLTemplate: "https://www.sigsac.org/ccs/{year}/accepted-papers/",
		BaseURL:     "https://www.sigsac.org",
		Years:       []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "STOC", Category: "Theory",
		Name:        "Symposium on Theory of Computing",
		URLTemplate: "https://stoc{year}.org/accepted-papers/",
		Years:       []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "FOCS", Category: "Theory",
		Name:        "Foundations of Computer Science",
		URLTemplate: "https://focs{year}.org/accepted-papers/",
		Years:       []int{2020, 2021, 2022, 2023, 2024},
	},
	{
		ID: "TPAMI", Category: "Top Journal",
		Name:        "IEEE Transactions on Pattern Analysis and Machine Intelligence",
		URLTemplate: "https://ieeexplore.ieee.org/xpl/RecentIssue.jsp?punumber=34",
		BaseURL:     "https://ieeexplore.ieee.org",
		Years:       []int{2020, 2021, 2022, 2023, 2024, 2025},
	},
}
