package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var got []map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		got = append(got, payload)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New("TOKEN", "-100", time.Second)
	c.BaseURL = srv.URL

	require.NoError(t, c.SendMessage(context.Background(), "<b>Clipping</b>"))
	require.Len(t, got, 1)
	assert.Equal(t, "-100", got[0]["chat_id"])
	assert.Equal(t, "HTML", got[0]["parse_mode"])
	assert.Equal(t, "<b>Clipping</b>", got[0]["text"])
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New("TOKEN", "1", time.Second)
	c.BaseURL = srv.URL
	assert.ErrorContains(t, c.SendMessage(context.Background(), "x"), "status 400")
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{"short"}, Split("short", 100))

	block := strings.Repeat("a", 30)
	text := block + "\n\n" + block + "\n\n" + block
	parts := Split(text, 70)
	require.Len(t, parts, 2)
	assert.Equal(t, block+"\n\n"+block, parts[0])
	assert.Equal(t, block, parts[1])

	for _, p := range Split(strings.Repeat("ã", 50), 25) {
		assert.LessOrEqual(t, len(p), 25)
		assert.True(t, strings.HasPrefix(p, "ã"))
	}
}

func TestSplit_LimitNarrowerThanRune(t *testing.T) {
	assert.Equal(t, []string{"é", "é", "é"}, Split("ééé", 1))
	assert.Equal(t, []string{"a", "b"}, Split("a\n\n\nb", 1))
}
