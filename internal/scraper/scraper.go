// Package scraper extracts headline links from portal search pages. It is
// the fallback for outlets without a usable feed; its entries carry no
// publication date.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/deusflow/clipping/internal/rss"
)

const (
	userAgent       = "Mozilla/5.0"
	maxPerPortal    = 30
	minHeadlineSize = 20
)

// Scraper fetches portal pages with a bounded timeout.
type Scraper struct {
	client *http.Client
}

func New(timeout time.Duration) *Scraper {
	return &Scraper{client: &http.Client{Timeout: timeout}}
}

// Headlines returns the headline links found on pageURL as raw entries
// labelled with portal.
func (s *Scraper) Headlines(ctx context.Context, portal, pageURL string) ([]rss.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	return extractHeadlines(doc, base, portal), nil
}

// selectorsFor picks site-specific headline selectors; the generic ones
// are always tried after them.
func selectorsFor(pageURL string) []string {
	switch {
	case strings.Contains(pageURL, "otempo.com.br"):
		return []string{".list-news a.title", "article h2 a", "h2 a"}
	case strings.Contains(pageURL, "em.com.br"):
		return []string{".news-box a", "article h2 a", "h3 a"}
	case strings.Contains(pageURL, "g1.globo.com"):
		return []string{"a.feed-post-link", ".feed-post-body-title a"}
	case strings.Contains(pageURL, "agenciabrasil.ebc.com.br"):
		return []string{".capa-noticia a", "h2 a", "h3 a"}
	default:
		return nil
	}
}

var genericSelectors = []string{
	"article h2 a",
	"article h3 a",
	".entry-title a",
	".post-title a",
	"h2 a",
	"h3 a",
}

func extractHeadlines(doc *goquery.Document, base *url.URL, portal string) []rss.Entry {
	selectors := append(selectorsFor(base.String()), genericSelectors...)

	seen := map[string]struct{}{}
	var entries []rss.Entry
	for _, selector := range selectors {
		doc.Find(selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
			title := strings.Join(strings.Fields(sel.Text()), " ")
			href, ok := sel.Attr("href")
			if !ok || len(title) < minHeadlineSize {
				return true
			}
			ref, err := url.Parse(strings.TrimSpace(href))
			if err != nil {
				return true
			}
			link := base.ResolveReference(ref).String()
			if _, dup := seen[link]; dup {
				return true
			}
			seen[link] = struct{}{}
			entries = append(entries, rss.Entry{Title: title, Link: link, Source: portal})
			return len(entries) < maxPerPortal
		})
		if len(entries) > 0 {
			break
		}
	}
	return entries
}
