package events

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/popular-movies/internal/logging"
	"github.com/atomicstack/popular-movies/internal/tmdb"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() {
		logging.SetTraceEnabled(false)
		logging.Close()
	})
	return &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestLoadErrorRecordsKindWithoutTracing(t *testing.T) {
	buf := capture(t)
	logging.SetTraceEnabled(false)

	err := &tmdb.FetchError{Kind: tmdb.KindParse, Op: "fetch catalog", URL: "http://example.test/popular?api_key=secret"}
	Catalog.LoadError("popular", 3, err)

	entry := lastEntry(t, buf)
	assert.Equal(t, "catalog.load.error", entry["event"])
	assert.Equal(t, "parse", entry["kind"])
	assert.Equal(t, "popular", entry["sort"])
	assert.NotContains(t, buf.String(), "secret")
}

func TestDetailLoadErrorKind(t *testing.T) {
	buf := capture(t)
	Detail.LoadError("550", tmdb.NewOfflineError("fetch detail"))
	entry := lastEntry(t, buf)
	assert.Equal(t, "detail.load.error", entry["event"])
	assert.Equal(t, "offline", entry["kind"])
	assert.Equal(t, "550", entry["id"])
}

func TestTraceEventsRespectToggle(t *testing.T) {
	buf := capture(t)
	Catalog.LoadStart("popular", 1)
	assert.Empty(t, buf.String())

	logging.SetTraceEnabled(true)
	Catalog.LoadStart("top_rated", 2)
	entry := lastEntry(t, buf)
	assert.Equal(t, "catalog.load.start", entry["event"])
	payload, ok := entry["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "top_rated", payload["sort"])
	assert.EqualValues(t, 2, payload["generation"])
}
