// Package news normalizes feed entries, filters them by publication window,
// classifies them into organization/general buckets and deduplicates them.
package news

import (
	"github.com/deusflow/clipping/internal/metrics"
	"github.com/deusflow/clipping/internal/rss"
)

// Pipeline holds the per-profile collaborators. A nil window disables time
// filtering, in which case undated entries are admitted too.
type Pipeline struct {
	normalizer *Normalizer
	classifier *Classifier
	window     *Window
}

func NewPipeline(n *Normalizer, c *Classifier, w *Window) *Pipeline {
	return &Pipeline{normalizer: n, classifier: c, window: w}
}

// Batch is the output of one source together with its query set name and
// policy.
type Batch struct {
	Set     string
	Policy  Policy
	Entries []rss.Entry
}

// Result is the outcome of one run.
type Result struct {
	Organization Groups
	General      Groups
	Window       *Window
	Stats        *metrics.Run
}

// Run accumulates batches for one invocation. It is not safe for
// concurrent use.
type Run struct {
	p       *Pipeline
	grouper *Grouper
	stats   *metrics.Run
}

func (p *Pipeline) Begin() *Run {
	return &Run{p: p, grouper: NewGrouper(), stats: metrics.New()}
}

// Stats exposes the counters so callers can record source failures.
func (r *Run) Stats() *metrics.Run { return r.stats }

// Add processes the entries of one source in order.
func (r *Run) Add(b Batch) {
	r.stats.SourceFetched()
	for _, e := range b.Entries {
		r.stats.EntrySeen()
		a, ok := r.p.normalizer.Normalize(e)
		if !ok {
			r.stats.EntryUnusable()
			continue
		}
		a.Set = b.Set
		if w := r.p.window; w != nil {
			if !a.HasPublished() {
				r.stats.EntryNoTimestamp()
				continue
			}
			if !w.Contains(a.PublishedAt) {
				r.stats.EntryOutOfWindow()
				continue
			}
		}

		bucket := r.p.classifier.Classify(a, b.Policy).Route(b.Policy)
		if bucket == Dropped {
			r.stats.EntryDropped()
			continue
		}
		if !r.grouper.Add(a, bucket) {
			r.stats.DuplicateFiltered()
			continue
		}
		if bucket == Organization {
			r.stats.OrganizationAdded()
		} else {
			r.stats.GeneralAdded()
		}
	}
}

// Result closes the run.
func (r *Run) Result() Result {
	r.stats.Finish()
	return Result{
		Organization: r.grouper.Organization(),
		General:      r.grouper.General(),
		Window:       r.p.window,
		Stats:        r.stats,
	}
}

// Process runs all batches in order and returns the result.
func (p *Pipeline) Process(batches []Batch) Result {
	run := p.Begin()
	for _, b := range batches {
		run.Add(b)
	}
	return run.Result()
}
