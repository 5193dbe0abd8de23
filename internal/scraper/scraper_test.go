package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portalPage = `<html><body>
<article><h2><a href="/meio-ambiente/parque-reabre-trilhas">Parque estadual reabre trilhas após incêndio</a></h2></article>
<article><h2><a href="https://outro.site/materia">Comitê de bacia aprova plano de recursos hídricos</a></h2></article>
<article><h2><a href="/curta">Curta</a></h2></article>
<article><h2><a href="/meio-ambiente/parque-reabre-trilhas">Parque estadual reabre trilhas após incêndio</a></h2></article>
</body></html>`

func TestHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(portalPage))
	}))
	defer srv.Close()

	entries, err := New(2*time.Second).Headlines(context.Background(), "Portal O Tempo", srv.URL+"/busca?q=meio+ambiente")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Parque estadual reabre trilhas após incêndio", entries[0].Title)
	assert.Equal(t, srv.URL+"/meio-ambiente/parque-reabre-trilhas", entries[0].Link)
	assert.Equal(t, "Portal O Tempo", entries[0].Source)
	assert.Nil(t, entries[0].Published)
	assert.Equal(t, "https://outro.site/materia", entries[1].Link)
}

func TestHeadlines_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(time.Second).Headlines(context.Background(), "x", srv.URL)
	assert.ErrorContains(t, err, "403")
}

func TestExtractHeadlines_SiteSelectorsFirst(t *testing.T) {
	page := `<html><body>
<a class="feed-post-link" href="https://g1.globo.com/mg/noticia/a.ghtml">Cheia do Rio das Velhas preocupa moradores da região</a>
<h2><a href="https://g1.globo.com/outra">Outra manchete genérica bem longa aqui</a></h2>
</body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	base, _ := url.Parse("https://g1.globo.com/meio-ambiente/")

	entries := extractHeadlines(doc, base, "Portal G1")
	require.Len(t, entries, 1)
	assert.Equal(t, "https://g1.globo.com/mg/noticia/a.ghtml", entries[0].Link)
}
