package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alkime/studio/internal/config"
	"github.com/alkime/studio/internal/draft"
	"github.com/alkime/studio/internal/ideas"
	"github.com/alkime/studio/internal/search"
	"github.com/alkime/studio/internal/server"
	"github.com/alkime/studio/internal/store"
	"github.com/alkime/studio/internal/studio"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type offlineSearcher struct{}

func (offlineSearcher) Search(context.Context, string, int) search.Outcome {
	return search.Outcome{Status: search.StatusDegraded, Reason: search.ReasonNotConfigured}
}

type failingProvider struct{}

func (failingProvider) Search(context.Context, string, int) ([]search.Snippet, error) {
	return nil, io.ErrUnexpectedEOF
}

func testConfig() *config.Config {
	return &config.Config{
		Env:        "test",
		Port:       "8080",
		HSTSMaxAge: 31536000,
		CSPMode:    "relaxed",
		LogLevel:   "info",
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *server.Server {
	t.Helper()

	// Create a test logger (discard output)
	return newLoggedServer(t, cfg, io.Discard, slog.LevelError)
}

func newLoggedServer(t *testing.T, cfg *config.Config, out io.Writer, level slog.Level) *server.Server {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		AddSource:   false,
		ReplaceAttr: nil,
	}))

	st, err := store.Open(filepath.Join(t.TempDir(), "studio.json"), logger)
	require.NoError(t, err)

	svc := studio.New(st, offlineSearcher{}, ideas.NewEngine(rand.New(rand.NewPCG(3, 4))), draft.NewComposer(), logger)

	return server.New(cfg, logger, svc, search.NewBackend(failingProvider{}, logger))
}

func do(t *testing.T, srv *server.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())

	return out
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code, "Health endpoint should return 200 OK")
	assert.Contains(t, w.Body.String(), "healthy", "Response should contain 'healthy'")
	assert.Contains(t, w.Body.String(), "studio", "Response should contain service name 'studio'")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name    string
		cspMode string
		csp     string
	}{
		{name: "relaxed", cspMode: "relaxed", csp: "script-src 'self' 'unsafe-inline'"},
		{name: "strict", cspMode: "strict", csp: "object-src 'none'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.CSPMode = tt.cspMode
			srv := newTestServer(t, cfg)

			w := do(t, srv, http.MethodGet, "/health", "")

			assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
			assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
			assert.Contains(t, w.Header().Get("Content-Security-Policy"), tt.csp)
		})
	}
}

func TestAPIResponsesAreNotCached(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv, http.MethodGet, "/api/analytics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = do(t, srv, http.MethodGet, "/health", "")
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestRequestsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	srv := newLoggedServer(t, testConfig(), &buf, slog.LevelInfo)

	do(t, srv, http.MethodGet, "/health", "")
	assert.NotContains(t, buf.String(), `"path":"/health"`, "health checks log at debug")

	do(t, srv, http.MethodGet, "/api/analytics", "")
	assert.Contains(t, buf.String(), `"msg":"Handled request"`)
	assert.Contains(t, buf.String(), `"path":"/api/analytics"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestIndexEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv, http.MethodGet, "/api", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/web-search")
}

func TestWebSearch(t *testing.T) {
	srv := newTestServer(t, testConfig())

	t.Run("empty query", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/web-search", `{"query":"  "}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Query is required", decode(t, w)["error"])
	})

	t.Run("templates on provider failure", func(t *testing.T) {
		w := do(t, srv, http.MethodPost, "/api/web-search", `{"query":"seo","num_results":2}`)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		results, ok := body["results"].([]any)
		require.True(t, ok)
		assert.Len(t, results, 2)
	})
}

func TestIdeasEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv, http.MethodPost, "/api/ideas", `{"topic":"podcasting"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "audience", decode(t, w)["field"])

	w = do(t, srv, http.MethodPost, "/api/ideas", `{"topic":"podcasting","writer":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "templates", body["source"])
	assert.Len(t, body["ideas"], 2)

	w = do(t, srv, http.MethodGet, "/api/analytics", "")
	assert.InDelta(t, 2.0, decode(t, w)["totalIdeas"], 0)
}

func TestContentAndDownload(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv, http.MethodGet, "/api/download", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodPost, "/api/content", `{"topic":"Email Marketing","tone":"friendly","length":"long"}`)
	require.Equal(t, http.StatusOK, w.Code)
	content, ok := decode(t, w)["content"].(string)
	require.True(t, ok)
	assert.Contains(t, content, "## Advanced Strategies")

	w = do(t, srv, http.MethodGet, "/api/download", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "content-")
}

func TestSEOEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv, http.MethodPost, "/api/seo", `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/api/seo", `{"content":"# Title\n\nA few words.","keyword":"words"}`)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Contains(t, body, "score")
	assert.NotEmpty(t, body["recommendations"])
}

func TestFormatEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv, http.MethodPost, "/api/format", `{"content":"Hello\nWorld","twitter":true,"facebook":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	formats, ok := decode(t, w)["formats"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, formats, 2)
	assert.Equal(t, "Hello\n\n#Content #Marketing", formats["twitter"])
	assert.Equal(t, "Hello\nWorld", formats["facebook"])
}

func TestHashtagsEndpoint(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv, http.MethodPost, "/api/hashtags", `{"topic":"Digital Marketing Tips","platform":"instagram","count":10}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decode(t, w)["text"], "#Digital")

	w = do(t, srv, http.MethodPost, "/api/hashtags", `{"topic":"x","platform":"myspace","count":10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleEndpoints(t *testing.T) {
	srv := newTestServer(t, testConfig())

	w := do(t, srv, http.MethodPost, "/api/schedule", `{"title":"Launch","platform":"twitter","date":"2026-11-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodPost, "/api/schedule", `{"title":"Launch","platform":"twitter","date":"2026-11-01","time":"09:00"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	id, ok := decode(t, w)["id"].(string)
	require.True(t, ok)

	w = do(t, srv, http.MethodGet, "/api/schedule", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["scheduled"], 1)

	w = do(t, srv, http.MethodDelete, "/api/schedule/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, srv, http.MethodDelete, "/api/schedule/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>studio</h1>"), 0o600))

	cfg := testConfig()
	cfg.StaticDir = dir
	srv := newTestServer(t, cfg)

	w := do(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>studio</h1>")

	w = do(t, srv, http.MethodGet, "/health", "")
	assert.Contains(t, w.Body.String(), "healthy")
}
