// Package query turns the profile's query sets and a reference date into
// the ordered list of feed sources for one run.
package query

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/deusflow/clipping/internal/config"
	"github.com/deusflow/clipping/internal/news"
)

// GoogleNewsSearch is the search-engine RSS endpoint.
const GoogleNewsSearch = "https://news.google.com/rss/search"

const dateLayout = "2006-01-02"

type Kind string

const (
	KindSearch Kind = "search"
	KindFeed   Kind = "feed"
)

// Source is one feed URL to fetch, tagged with the query set it came from
// and that set's relevance policy.
type Source struct {
	Set    string
	Label  string
	URL    string
	Kind   Kind
	Policy news.Policy
}

// Builder builds search URLs for a locale.
type Builder struct {
	Endpoint string
	Locale   config.Locale
}

func NewBuilder(locale config.Locale) Builder {
	return Builder{Endpoint: GoogleNewsSearch, Locale: locale}
}

// Build expands every query set, in profile order, into sources: search
// terms first, then static feeds. A zero ref selects the "when:1d" range.
func (b Builder) Build(sets []config.QuerySet, ref time.Time) []Source {
	var out []Source
	for _, qs := range sets {
		policy := news.Policy{Topical: qs.TopicalFilter(), Allowlist: qs.Allowlist}
		for _, term := range qs.Terms {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			out = append(out, Source{
				Set:    qs.Name,
				Label:  term,
				URL:    b.SearchURL(term, ref),
				Kind:   KindSearch,
				Policy: policy,
			})
		}
		for _, f := range qs.Feeds {
			out = append(out, Source{
				Set:    qs.Name,
				Label:  f.Name,
				URL:    f.URL,
				Kind:   KindFeed,
				Policy: policy,
			})
		}
	}
	return out
}

// SearchURL returns the RSS search URL for term. The date range is coarser
// than the clipping window (ref-2d to ref+1d) so the window is always a
// subset of what is fetched.
func (b Builder) SearchURL(term string, ref time.Time) string {
	params := url.Values{}
	params.Set("q", Qualified(term, ref))
	if b.Locale.HL != "" {
		params.Set("hl", b.Locale.HL)
	}
	if b.Locale.GL != "" {
		params.Set("gl", b.Locale.GL)
	}
	if b.Locale.CEID != "" {
		params.Set("ceid", b.Locale.CEID)
	}
	return b.Endpoint + "?" + params.Encode()
}

// Qualified quotes term and appends the date qualifiers.
func Qualified(term string, ref time.Time) string {
	q := fmt.Sprintf("%q", strings.Trim(term, `"`))
	if ref.IsZero() {
		return q + " when:1d"
	}
	after := ref.AddDate(0, 0, -2).Format(dateLayout)
	before := ref.AddDate(0, 0, 1).Format(dateLayout)
	return fmt.Sprintf("%s after:%s before:%s", q, after, before)
}
