package news

// Grouper deduplicates articles by DedupeKey across both buckets and groups
// the survivors by outlet. The first occurrence wins.
type Grouper struct {
	seen         map[string]struct{}
	organization Groups
	general      Groups
}

func NewGrouper() *Grouper {
	return &Grouper{
		seen:         map[string]struct{}{},
		organization: Groups{},
		general:      Groups{},
	}
}

// Add files a into bucket b. It returns false for a duplicate or a
// Dropped bucket.
func (g *Grouper) Add(a Article, b Bucket) bool {
	if b == Dropped {
		return false
	}
	key := a.DedupeKey()
	if _, dup := g.seen[key]; dup {
		return false
	}
	g.seen[key] = struct{}{}

	target := g.general
	if b == Organization {
		target = g.organization
	}
	target[a.Outlet] = append(target[a.Outlet], a)
	return true
}

func (g *Grouper) Organization() Groups { return g.organization }

func (g *Grouper) General() Groups { return g.general }
