// Package metrics holds the counters of a single clipping run. A Run is owned
// by one pipeline pass and returned with its result; nothing is global.
package metrics

import (
	"log/slog"
	"time"
)

type Run struct {
	// Sources
	SourcesFetched int64
	SourcesFailed  int64

	// Entries
	EntriesSeen        int64
	Unusable           int64
	NoTimestamp        int64
	OutOfWindow        int64
	Dropped            int64
	DuplicatesFiltered int64

	// Buckets
	Organization int64
	General      int64

	// Timings
	StartedAt      time.Time
	ProcessingTime time.Duration
}

func New() *Run {
	return &Run{StartedAt: time.Now()}
}

func (m *Run) SourceFetched() { m.SourcesFetched++ }
func (m *Run) SourceFailed() { m.SourcesFailed++ }
func (m *Run) EntrySeen() { m.EntriesSeen++ }
func (m *Run) EntryUnusable() { m.Unusable++ }
func (m *Run) EntryNoTimestamp() { m.NoTimestamp++ }
func (m *Run) EntryOutOfWindow() { m.OutOfWindow++ }
func (m *Run) EntryDropped() { m.Dropped++ }
func (m *Run) DuplicateFiltered() { m.DuplicatesFiltered++ }
func (m *Run) OrganizationAdded() { m.Organization++ }
func (m *Run) GeneralAdded() { m.General++ }

// Finish records the elapsed time since New.
func (m *Run) Finish() {
	m.ProcessingTime = time.Since(m.StartedAt)
}

// LogValue lets a Run be passed directly as a slog attribute.
func (m *Run) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("sources_fetched", m.SourcesFetched),
		slog.Int64("sources_failed", m.SourcesFailed),
		slog.Int64("entries_seen", m.EntriesSeen),
		slog.Int64("unusable", m.Unusable),
		slog.Int64("no_timestamp", m.NoTimestamp),
		slog.Int64("out_of_window", m.OutOfWindow),
		slog.Int64("dropped", m.Dropped),
		slog.Int64("duplicates_filtered", m.DuplicatesFiltered),
		slog.Int64("organization", m.Organization),
		slog.Int64("general", m.General),
		slog.Duration("processing_time", m.ProcessingTime),
	)
}
