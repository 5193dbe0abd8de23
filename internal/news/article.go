package news

import (
	"sort"
	"strings"
	"time"
)

// Bucket is the output group an article is routed to.
type Bucket int

const (
	Dropped Bucket = iota
	Organization
	General
)

func (b Bucket) String() string {
	switch b {
	case Organization:
		return "organization"
	case General:
		return "general"
	default:
		return "dropped"
	}
}

// Article is a normalized feed entry.
type Article struct {
	Title       string
	Outlet      string
	Link        string
	Summary     string
	PublishedAt time.Time // zero when the feed had no parseable date
	Set         string    // query set that produced the entry
}

// DedupeKey identifies an article across sources. Links are not part of it.
func (a Article) DedupeKey() string {
	return strings.ToLower(a.Title)
}

func (a Article) HasPublished() bool {
	return !a.PublishedAt.IsZero()
}

// Groups maps an outlet to its articles in discovery order.
type Groups map[string][]Article

// Outlets returns the outlet names sorted lexicographically.
func (g Groups) Outlets() []string {
	outlets := make([]string, 0, len(g))
	for o := range g {
		outlets = append(outlets, o)
	}
	sort.Strings(outlets)
	return outlets
}

// Len counts the articles across all outlets.
func (g Groups) Len() int {
	n := 0
	for _, list := range g {
		n += len(list)
	}
	return n
}
