package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/readshelf/core/internal/config"
	"github.com/readshelf/core/internal/database/dbtest"
	"github.com/readshelf/core/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Env = "production"
	cfg.Database.Driver = config.DriverSQLite
	cfg.DSN = filepath.Join(t.TempDir(), "readshelf.db")
	cfg.Paths.Logs = t.TempDir()
	cfg.JWTSecret = "app-test"

	a, err := New(zap.NewNop(), &cfg)
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return a
}

func TestReadThenRereadFlow(t *testing.T) {
	a := newTestApp(t)
	f := dbtest.SeedSeries(t, a.db, "Mushishi",
		dbtest.VolumeSeed{Number: 1, Chapters: []dbtest.ChapterSeed{{Pages: 10, SortOrder: 1}}},
	)
	ch := f.Chapters[0][0]
	tok, err := jwt.NewSigner("app-test").Sign(1, time.Hour)
	require.NoError(t, err)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+tok)
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
		a.Router().ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/api/reader/progress", `{"chapterId":`+strconv.Itoa(ch.ID)+`,"pageNum":10}`)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(http.MethodGet, "/api/reader/reread/chapter/"+strconv.Itoa(ch.ID)+"?seriesId="+strconv.Itoa(f.Series.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var verdict struct {
		ShouldPrompt bool `json:"shouldPrompt"`
		FullReread   bool `json:"fullReread"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verdict))
	assert.True(t, verdict.ShouldPrompt)
	assert.True(t, verdict.FullReread)

	w = do(http.MethodGet, "/api/devices", "")
	require.Equal(t, http.StatusOK, w.Code)
	var devices struct {
		Data []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &devices))
	require.Len(t, devices.Data, 1)
	assert.Equal(t, "Chrome on Windows", devices.Data[0].Name)

	w = do(http.MethodPost, "/api/devices/cache/clear", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"cleared":[`+strconv.Itoa(devices.Data[0].ID)+`]}`, w.Body.String())

	w = do(http.MethodGet, "/api/cron-task", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "aggregate_reading_history")
	assert.Contains(t, w.Body.String(), "end_idle_sessions")
}

func TestHealthAndAuth(t *testing.T) {
	a := newTestApp(t)

	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cache":"memory"`)

	w = httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/devices", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMatchOriginPattern(t *testing.T) {
	tests := []struct {
		pattern, origin string
		want            bool
	}{
		{"reader.example.com", "https://reader.example.com", true},
		{"*.example.com", "https://a.example.com", true},
		{"*.example.com", "https://example.org", false},
		{"localhost:*", "http://localhost:5173", true},
		{"localhost:*", "http://127.0.0.1:5173", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchOriginPattern(tt.pattern, extractOriginHost(tt.origin)), tt.pattern+" "+tt.origin)
	}
}

func TestParseTimezoneLocation(t *testing.T) {
	loc, err := parseTimezoneLocation("+05:30")
	require.NoError(t, err)
	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 5*3600+30*60, offset)

	_, err = parseTimezoneLocation("Mars/Olympus")
	assert.Error(t, err)
}

func TestHumanizeDuration(t *testing.T) {
	assert.Equal(t, "42s", humanizeDuration(42*time.Second+300*time.Millisecond))
	assert.Equal(t, "5m0s", humanizeDuration(5*time.Minute+10*time.Second))
	assert.Equal(t, "3h0m0s", humanizeDuration(3*time.Hour+20*time.Minute))
}
