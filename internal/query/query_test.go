package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/clipping/internal/config"
	"github.com/deusflow/clipping/internal/news"
)

func TestQualified(t *testing.T) {
	ref := time.Date(2024, 6, 10, 0, 0, 0, 0, config.FixedZone(-3))
	assert.Equal(t, `"IGAM" after:2024-06-08 before:2024-06-11`, Qualified("IGAM", ref))
	assert.Equal(t, `"meio ambiente" when:1d`, Qualified(`"meio ambiente"`, time.Time{}))
}

func TestSearchURL(t *testing.T) {
	b := NewBuilder(config.Locale{HL: "pt-BR", GL: "BR", CEID: "BR:pt-419"})
	ref := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	u, err := url.Parse(b.SearchURL("barragem Minas Gerais", ref))
	require.NoError(t, err)
	assert.Equal(t, "news.google.com", u.Host)
	assert.Equal(t, "/rss/search", u.Path)

	q := u.Query()
	assert.Equal(t, `"barragem Minas Gerais" after:2024-02-28 before:2024-03-02`, q.Get("q"))
	assert.Equal(t, "pt-BR", q.Get("hl"))
	assert.Equal(t, "BR", q.Get("gl"))
	assert.Equal(t, "BR:pt-419", q.Get("ceid"))
}

func TestBuild_KeepsProfileOrder(t *testing.T) {
	sets := []config.QuerySet{
		{Name: "orgaos", Terms: []string{"IGAM", " ", "FEAM"}},
		{
			Name:  "feeds",
			Terms: []string{"meio ambiente"},
			Feeds: []config.Source{{Name: "G1 Minas", URL: "https://g1.globo.com/rss/g1/mg/"}},
		},
	}
	sources := NewBuilder(config.Locale{}).Build(sets, time.Time{})
	require.Len(t, sources, 4)

	assert.Equal(t, "IGAM", sources[0].Label)
	assert.Equal(t, "FEAM", sources[1].Label)
	assert.Equal(t, "orgaos", sources[1].Set)
	assert.Equal(t, KindSearch, sources[2].Kind)
	assert.Equal(t, Source{
		Set:    "feeds",
		Label:  "G1 Minas",
		URL:    "https://g1.globo.com/rss/g1/mg/",
		Kind:   KindFeed,
		Policy: news.Policy{Topical: true},
	}, sources[3])
	assert.Contains(t, sources[0].URL, "when%3A1d")
}

func TestBuild_PolicyTravelsWithSource(t *testing.T) {
	off := false
	sets := []config.QuerySet{
		{Name: "x", Terms: []string{"concurso"}, Allowlist: []string{"ambiental"}},
		{Name: "x", Terms: []string{"IGAM"}, Topical: &off},
	}
	sources := NewBuilder(config.Locale{}).Build(sets, time.Time{})
	require.Len(t, sources, 2)

	assert.Equal(t, news.Policy{Topical: true, Allowlist: []string{"ambiental"}}, sources[0].Policy)
	assert.Equal(t, news.Policy{Topical: false}, sources[1].Policy)
}
