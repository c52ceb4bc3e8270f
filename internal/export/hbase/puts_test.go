package hbase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSessions = `[
  {
    "session_id": "sess_1a2b",
    "user_id": "user_000001",
    "start_time": "2026-06-01T10:00:00Z",
    "end_time": "2026-06-01T10:05:00Z",
    "duration_seconds": 300,
    "conversion_status": "converted",
    "referrer": "direct",
    "geo_data": {"city": "O'Fallon", "state": "MO", "country": "US", "ip_address": "10.1.2.3"},
    "device_profile": {"type": "mobile", "os": "iOS", "browser": "Safari"},
    "viewed_products": ["prod_00001", "prod_00002"]
  },
  {
    "session_id": "sess_3c4d",
    "user_id": "user_000002",
    "start_time": "2026-06-02T09:00:00Z",
    "end_time": "2026-06-02T09:01:00Z",
    "duration_seconds": 60,
    "conversion_status": "browsed",
    "referrer": "email",
    "geo_data": {"city": "Austin", "state": "TX", "country": "US", "ip_address": "10.4.5.6"},
    "device_profile": {"type": "desktop", "os": "Windows", "browser": "Edge"},
    "viewed_products": []
  }
]`

func writeSampleFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestEmitDir_ScriptShape(t *testing.T) {
	dir := t.TempDir()
	writeSampleFile(t, dir, "sessions_0.json", sampleSessions)

	var out strings.Builder
	e := &Emitter{}
	n, err := e.EmitDir(&out, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "disable 'sessions_by_user'", lines[0])
	assert.Equal(t, "enable 'sessions_by_user'", lines[1])
	assert.Equal(t, "count 'sessions_by_user'", lines[len(lines)-1])

	// 15 columns per session plus the 3 framing lines.
	assert.Len(t, lines, 2*15+3)

	rowKey := "user_000001#2026-06-01T10:00:00Z#sess_1a2b"
	assert.Contains(t, out.String(), "put 'sessions_by_user', '"+rowKey+"', 's:duration_seconds', '300'")
	assert.Contains(t, out.String(), "'s:viewed_products', 'prod_00001,prod_00002'")
}

func TestEmitDir_EscapesQuotes(t *testing.T) {
	dir := t.TempDir()
	writeSampleFile(t, dir, "sessions_0.json", sampleSessions)

	var out strings.Builder
	e := &Emitter{}
	_, err := e.EmitDir(&out, dir)
	require.NoError(t, err)

	assert.Contains(t, out.String(), `'s:geo_city', 'O\'Fallon'`)
	assert.NotContains(t, out.String(), "'O'Fallon'")
}

func TestEmitDir_LimitCapsSessions(t *testing.T) {
	dir := t.TempDir()
	writeSampleFile(t, dir, "sessions_0.json", sampleSessions)

	var out strings.Builder
	e := &Emitter{Limit: 1}
	n, err := e.EmitDir(&out, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotContains(t, out.String(), "sess_3c4d")
}

func TestEmitDir_MultipleFilesSorted(t *testing.T) {
	dir := t.TempDir()
	writeSampleFile(t, dir, "sessions_0.json", `[{"session_id":"sess_first","user_id":"user_000001","start_time":"t0"}]`)
	writeSampleFile(t, dir, "sessions_1.json", `[{"session_id":"sess_second","user_id":"user_000002","start_time":"t1"}]`)

	var out strings.Builder
	e := &Emitter{}
	n, err := e.EmitDir(&out, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Less(t, strings.Index(out.String(), "sess_first"), strings.Index(out.String(), "sess_second"))
}

func TestEmitDir_NoInputFiles(t *testing.T) {
	var out strings.Builder
	e := &Emitter{}
	_, err := e.EmitDir(&out, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sessions_")
}

func TestReadSessions_JSONLinesFallback(t *testing.T) {
	dir := t.TempDir()
	content := `{"session_id":"sess_a","user_id":"user_000001","start_time":"t0"}
not json at all
{"session_id":"sess_b","user_id":"user_000002","start_time":"t1"}`
	writeSampleFile(t, dir, "sessions_0.json", content)

	sessions, err := readSessions(filepath.Join(dir, "sessions_0.json"))
	require.NoError(t, err)
	require.Len(t, sessions, 2, "malformed lines are skipped")
	assert.Equal(t, "sess_a", sessions[0].SessionID)
	assert.Equal(t, "sess_b", sessions[1].SessionID)
}
