package news

import (
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deusflow/clipping/internal/config"
	"github.com/deusflow/clipping/internal/rss"
)

const (
	titleSeparator = " - "
	// maxOutletRunes guards against " - " occurring mid-sentence.
	maxOutletRunes = 40
	unknownOutlet  = "Fonte não identificada"
)

// domainSuffixes are trimmed from source labels, longest first.
var domainSuffixes = []string{
	".com.br", ".org.br", ".gov.br", ".net.br", ".jus.br",
	".com", ".org", ".net", ".br",
}

// Normalizer maps raw feed entries to articles.
type Normalizer struct {
	aliases []config.Alias
	loc     *time.Location
}

func NewNormalizer(aliases []config.Alias, loc *time.Location) *Normalizer {
	return &Normalizer{aliases: aliases, loc: loc}
}

// Normalize returns false when the entry has no usable title.
func (n *Normalizer) Normalize(e rss.Entry) (Article, bool) {
	title, candidate := SplitTitle(StripMarkup(e.Title))
	if title == "" {
		return Article{}, false
	}

	a := Article{
		Title:   title,
		Outlet:  n.Outlet(candidate, e.Source),
		Link:    strings.TrimSpace(e.Link),
		Summary: StripMarkup(e.Summary),
	}
	if e.Published != nil && !e.Published.IsZero() {
		a.PublishedAt = e.Published.In(n.loc)
	}
	return a, true
}

// SplitTitle splits "Title - Outlet" on the last separator. The outlet
// candidate is empty when the tail is too long to be an outlet name.
func SplitTitle(title string) (string, string) {
	i := strings.LastIndex(title, titleSeparator)
	if i < 0 {
		return strings.TrimSpace(title), ""
	}
	head := strings.TrimSpace(title[:i])
	tail := strings.TrimSpace(title[i+len(titleSeparator):])
	if head == "" || tail == "" || utf8.RuneCountInString(tail) >= maxOutletRunes {
		return strings.TrimSpace(title), ""
	}
	return head, tail
}

// Outlet resolves the display name: the title suffix when present, else
// the cleaned source label. Both go through the alias table; an unaliased
// label is title-cased.
func (n *Normalizer) Outlet(candidate, label string) string {
	if candidate != "" {
		if name, ok := n.alias(candidate); ok {
			return name
		}
		return candidate
	}

	cleaned := CleanLabel(label)
	if cleaned == "" {
		return unknownOutlet
	}
	if name, ok := n.alias(cleaned); ok {
		return name
	}
	return cases.Title(language.BrazilianPortuguese).String(cleaned)
}

func (n *Normalizer) alias(label string) (string, bool) {
	compact := compactLabel(label)
	if compact == "" {
		return "", false
	}
	for _, a := range n.aliases {
		if key := compactLabel(a.Match); key != "" && strings.Contains(compact, key) {
			return a.Name, true
		}
	}
	return "", false
}

// CleanLabel strips URL artifacts from a source label:
// "https://www.otempo.com.br" -> "otempo", "hoje-em-dia" -> "hoje em dia".
func CleanLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	for _, p := range []string{"https://", "http://", "www."} {
		s = strings.TrimPrefix(s, p)
	}
	if !strings.Contains(s, " ") {
		if i := strings.IndexByte(s, '/'); i >= 0 {
			s = s[:i]
		}
		for _, suffix := range domainSuffixes {
			if strings.HasSuffix(s, suffix) {
				s = strings.TrimSuffix(s, suffix)
				break
			}
		}
	}
	s = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func compactLabel(s string) string {
	return strings.ReplaceAll(CleanLabel(s), " ", "")
}

// StripMarkup decodes HTML entities (double-encoded ones included) and
// drops inline tags, collapsing whitespace.
func StripMarkup(s string) string {
	s = html.UnescapeString(s)
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
