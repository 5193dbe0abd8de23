package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/clipping/internal/rss"
)

func at(t time.Time) *time.Time { return &t }

func testPipeline(windowed bool) *Pipeline {
	var w *Window
	if windowed {
		win := DailyWindow(time.Date(2024, 6, 10, 0, 0, 0, 0, brt), clock, brt)
		w = &win
	}
	return NewPipeline(testNormalizer(), testClassifier(), w)
}

func TestPipeline_ReferenceDateScenario(t *testing.T) {
	topical := Policy{Topical: true, Allowlist: environmental}
	res := testPipeline(true).Process([]Batch{{
		Policy: topical,
		Entries: []rss.Entry{
			{
				Title:     "Chuva atinge região - O Tempo",
				Link:      "https://news.example/a",
				Published: at(time.Date(2024, 6, 10, 8, 30, 0, 0, brt)),
			},
			{
				Title:     "IGAM multa empresa por poluição - G1",
				Link:      "https://news.example/b",
				Published: at(time.Date(2024, 6, 9, 20, 0, 0, 0, brt)),
			},
		},
	}})

	assert.Empty(t, res.General, "topical term missing from allowlist")
	require.Len(t, res.Organization["G1"], 1)
	assert.Equal(t, "IGAM multa empresa por poluição", res.Organization["G1"][0].Title)
	assert.EqualValues(t, 1, res.Stats.Dropped)
	assert.EqualValues(t, 1, res.Stats.Organization)
}

func TestPipeline_DuplicateAcrossQueries(t *testing.T) {
	published := at(time.Date(2024, 6, 9, 14, 0, 0, 0, brt))
	batch := func(set, link string) Batch {
		return Batch{
			Set:    set,
			Policy: Policy{Topical: false},
			Entries: []rss.Entry{{
				Title:     "Incêndio atinge parque estadual - Estado de Minas",
				Link:      link,
				Published: published,
			}},
		}
	}

	res := testPipeline(true).Process([]Batch{
		batch("orgaos", "https://news.google.com/rss/articles/one"),
		batch("meio-ambiente", "https://news.google.com/rss/articles/two"),
	})

	require.Len(t, res.General, 1)
	list := res.General["Jornal Estado de Minas"]
	require.Len(t, list, 1)
	assert.Equal(t, "https://news.google.com/rss/articles/one", list[0].Link)
	assert.Equal(t, "orgaos", list[0].Set, "first occurrence keeps its query set")
	assert.EqualValues(t, 1, res.Stats.DuplicatesFiltered)
	assert.EqualValues(t, 2, res.Stats.SourcesFetched)
}

func TestPipeline_WindowExcludesUndatedAndLate(t *testing.T) {
	res := testPipeline(true).Process([]Batch{{
		Policy: Policy{Topical: false},
		Entries: []rss.Entry{
			{Title: "Sem data - G1"},
			{Title: "Tarde demais - G1", Published: at(time.Date(2024, 6, 10, 8, 30, 1, 0, brt))},
			{Title: "Cedo demais - G1", Published: at(time.Date(2024, 6, 9, 8, 29, 59, 0, brt))},
			{Title: "Na borda - G1", Published: at(time.Date(2024, 6, 9, 8, 30, 0, 0, brt))},
		},
	}})

	require.Len(t, res.General["G1"], 1)
	assert.Equal(t, "Na borda", res.General["G1"][0].Title)
	assert.EqualValues(t, 1, res.Stats.NoTimestamp)
	assert.EqualValues(t, 2, res.Stats.OutOfWindow)
}

func TestPipeline_NoWindowAdmitsUndated(t *testing.T) {
	res := testPipeline(false).Process([]Batch{{
		Policy:  Policy{Topical: true},
		Entries: []rss.Entry{{Title: "Parque reabre trilhas", Source: "Portal O Tempo"}},
	}})

	require.Len(t, res.General["Jornal O Tempo"], 1)
	assert.Nil(t, res.Window)
}

func TestPipeline_RoutingIsExclusive(t *testing.T) {
	published := at(time.Date(2024, 6, 9, 10, 0, 0, 0, brt))
	res := testPipeline(true).Process([]Batch{
		{
			Policy:  Policy{Topical: true, Allowlist: environmental},
			Entries: []rss.Entry{{Title: "FEAM debate licenciamento ambiental - O Tempo", Published: published}},
		},
		{
			Policy:  Policy{Topical: false},
			Entries: []rss.Entry{{Title: "FEAM debate licenciamento ambiental - G1", Published: published}},
		},
	})

	assert.Equal(t, 1, res.Organization.Len())
	assert.Equal(t, 0, res.General.Len())
	assert.Contains(t, res.Organization, "Jornal O Tempo")
}
