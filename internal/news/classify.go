package news

import "strings"

// Policy is the topical configuration of one query set.
type Policy struct {
	// Topical false routes every non-organization article to General.
	Topical bool
	// Allowlist, when set, requires one of its terms for General.
	Allowlist []string
}

// Classification holds the two independent predicates for one article.
type Classification struct {
	MentionsOrgan bool
	IsTopical     bool
}

// Classifier matches case-insensitive substrings. There is no word-boundary
// check, so short acronyms can match inside longer words.
type Classifier struct {
	roster    []string
	blocklist []string
}

func NewClassifier(roster, blocklist []string) *Classifier {
	return &Classifier{
		roster:    upperAll(roster),
		blocklist: upperAll(blocklist),
	}
}

// Classify evaluates both predicates over title and summary.
func (c *Classifier) Classify(a Article, p Policy) Classification {
	text := strings.ToUpper(a.Title + " " + a.Summary)
	return Classification{
		MentionsOrgan: c.mentionsOrgan(text),
		IsTopical:     c.isTopical(text, upperAll(p.Allowlist)),
	}
}

// MentionsOrgan reports whether any roster entry occurs in text.
func (c *Classifier) MentionsOrgan(text string) bool {
	return c.mentionsOrgan(strings.ToUpper(text))
}

// IsTopical reports whether text avoids the blocklist and, when allowlist
// is non-empty, contains one of its terms.
func (c *Classifier) IsTopical(text string, allowlist []string) bool {
	return c.isTopical(strings.ToUpper(text), upperAll(allowlist))
}

func (c *Classifier) mentionsOrgan(text string) bool {
	return containsAny(text, c.roster)
}

func (c *Classifier) isTopical(text string, allowlist []string) bool {
	if containsAny(text, c.blocklist) {
		return false
	}
	if len(allowlist) == 0 {
		return true
	}
	return containsAny(text, allowlist)
}

// Route picks the bucket. The organization predicate wins over everything.
func (cl Classification) Route(p Policy) Bucket {
	switch {
	case cl.MentionsOrgan:
		return Organization
	case !p.Topical || cl.IsTopical:
		return General
	default:
		return Dropped
	}
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func upperAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, strings.ToUpper(t))
		}
	}
	return out
}
