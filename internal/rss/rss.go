// Package rss fetches syndication feeds and flattens their items into raw
// entries for the clipping pipeline.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/rss"
)

const userAgent = "Mozilla/5.0 (compatible; clipping/1.0)"

// sourceKey is the Item.Custom key carrying the RSS <source> label.
const sourceKey = "source"

// Entry is a feed item before normalization.
type Entry struct {
	Title     string
	Link      string
	Summary   string
	Published *time.Time // nil when the feed carries no parseable date
	Source    string
}

// Fetcher downloads and parses feeds one at a time.
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher returns a Fetcher whose requests are bounded by timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = userAgent
	parser.RSSTranslator = &sourceTranslator{}
	return &Fetcher{parser: parser}
}

// Fetch returns the entries of feedURL. label is used as the source label
// of items that carry none. Callers treat an error as "no entries".
func (f *Fetcher) Fetch(ctx context.Context, feedURL, label string) ([]Entry, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, toEntry(item, label))
	}
	return entries, nil
}

func toEntry(item *gofeed.Item, label string) Entry {
	e := Entry{
		Title:   strings.TrimSpace(item.Title),
		Link:    strings.TrimSpace(item.Link),
		Summary: strings.TrimSpace(item.Description),
	}

	switch {
	case item.PublishedParsed != nil:
		t := *item.PublishedParsed
		e.Published = &t
	case item.UpdatedParsed != nil:
		// Atom entries often only carry <updated>.
		t := *item.UpdatedParsed
		e.Published = &t
	}

	if src := item.Custom[sourceKey]; src != "" {
		e.Source = src
	} else if label != "" {
		e.Source = label
	} else {
		e.Source = hostOf(e.Link)
	}
	return e
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}

// sourceTranslator keeps the RSS <source> element, which the default
// translator drops. Search-engine feeds put the outlet name there.
type sourceTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *sourceTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	out, err := t.DefaultRSSTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	raw, ok := feed.(*ext.Feed)
	if !ok || len(raw.Items) != len(out.Items) {
		return out, nil
	}
	for i, it := range raw.Items {
		if it == nil || it.Source == nil || out.Items[i] == nil {
			continue
		}
		name := strings.TrimSpace(it.Source.Title)
		if name == "" {
			name = hostOf(it.Source.URL)
		}
		if name == "" {
			continue
		}
		if out.Items[i].Custom == nil {
			out.Items[i].Custom = map[string]string{}
		}
		out.Items[i].Custom[sourceKey] = name
	}
	return out, nil
}
