// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ManuGH/skwatch/internal/api/middleware"
	"github.com/ManuGH/skwatch/internal/clay"
	"github.com/ManuGH/skwatch/internal/config"
	"github.com/ManuGH/skwatch/internal/document"
	"github.com/ManuGH/skwatch/internal/health"
	"github.com/ManuGH/skwatch/internal/metrics"
	"github.com/ManuGH/skwatch/internal/skwatch"
)

func newTestServer(t *testing.T, mutate ...func(*config.APIConfig)) *Server {
	t.Helper()
	holder, err := document.Open(context.Background(), "")
	require.NoError(t, err)
	cfg := config.Defaults().API
	cfg.RateLimit = 0
	for _, m := range mutate {
		m(&cfg)
	}
	return New(cfg, holder)
}

func do(t *testing.T, s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body health.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, health.StatusHealthy, body.Status)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec = do(t, s, http.MethodGet, "/healthz?verbose=true", "", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "serving revision 1", body.Checks["document"].Message)
}

func TestReady_DegradedAfterFailedReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"type":"heading","defaultValue":"x"}]`), 0o600))

	holder, err := document.Open(context.Background(), path)
	require.NoError(t, err)
	s := New(config.Defaults().API, holder)

	rec := do(t, s, http.MethodGet, "/readyz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, os.WriteFile(path, []byte(`[`), 0o600))
	require.Error(t, holder.Reload(context.Background()))

	rec = do(t, s, http.MethodGet, "/readyz", "", "")
	require.Equal(t, http.StatusOK, rec.Code, "degraded still serves")
	var body health.ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Ready)
	assert.Equal(t, health.StatusDegraded, body.Status)
	assert.Equal(t, health.StatusDegraded, body.Checks["document"].Status)
}

func TestConfig_ServesBundledDocument(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/config", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	doc, err := clay.Parse(rec.Body.Bytes(), clay.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, skwatch.Schema(), doc)
}

func TestConfig_FormatsAndETag(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/v1/config?format=js", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "module.exports = ["))

	rec = do(t, s, http.MethodGet, "/api/v1/config?format=yaml", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))

	rec = do(t, s, http.MethodGet, "/api/v1/config?format=xml", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_format", decodeError(t, rec).Error)

	rec = do(t, s, http.MethodGet, "/api/v1/config", "", "")
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	req.Header.Set("If-None-Match", etag)
	cached := httptest.NewRecorder()
	s.Handler().ServeHTTP(cached, req)
	assert.Equal(t, http.StatusNotModified, cached.Code)
	assert.Empty(t, cached.Body.String())

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"wildcard", "*", http.StatusNotModified},
		{"list", `"0000000000000000", ` + etag, http.StatusNotModified},
		{"weak", "W/" + etag, http.StatusNotModified},
		{"other tag", `"0000000000000000"`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
			req.Header.Set("If-None-Match", tt.header)
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSchema(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/config/schema", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/schema+json", rec.Header().Get("Content-Type"))
	var schema map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schema))
	assert.Equal(t, clay.SchemaID, schema["$id"])
}

func TestDefaults(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/config/defaults", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"BackgroundColor":"0x000000"}`, rec.Body.String())
}

func TestOutline(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/config/outline", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []clay.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	kinds := make([]clay.Kind, len(entries))
	for i, e := range entries {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []clay.Kind{clay.KindHeading, clay.KindText, clay.KindSection, clay.KindColor, clay.KindSubmit}, kinds)
	assert.Equal(t, skwatch.BackgroundColorKey, entries[3].MessageKey)
	assert.Equal(t, "3x3", entries[3].Layout)
}

func TestValidate(t *testing.T) {
	s := newTestServer(t)
	invalid, err := os.ReadFile("../clay/testdata/invalid.json")
	require.NoError(t, err)
	yamlDoc, err := os.ReadFile("../clay/testdata/skwatch.yaml")
	require.NoError(t, err)

	t.Run("valid bundled artifact", func(t *testing.T) {
		before := metrics.ValidationCount(metrics.OutcomeSuccess)
		rec := do(t, s, http.MethodPost, "/api/v1/config/validate", "application/javascript", string(skwatch.Artifact()))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"valid":true,"elements":5}`, rec.Body.String())
		assert.Equal(t, before+1, metrics.ValidationCount(metrics.OutcomeSuccess))
	})

	t.Run("yaml via query", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/api/v1/config/validate?format=yaml", "", string(yamlDoc))
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("issues", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/api/v1/config/validate", "application/json", string(invalid))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, "invalid_document", resp.Error)
		require.Len(t, resp.Issues, 9)
		assert.Equal(t, "[0].defaultValue", resp.Issues[0].Path)
		assert.Equal(t, "structural", resp.Issues[0].Class)
	})

	t.Run("duplicate key", func(t *testing.T) {
		body := `[{"type":"color","messageKey":"K","defaultValue":"0x000000"},{"type":"color","messageKey":"K","defaultValue":"0x000000"}]`
		rec := do(t, s, http.MethodPost, "/api/v1/config/validate", "", body)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		resp := decodeError(t, rec)
		require.Len(t, resp.Issues, 1)
		assert.Equal(t, "uniqueness", resp.Issues[0].Class)
	})

	t.Run("syntax error", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/api/v1/config/validate", "application/json", `[{"type":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "syntax_error", decodeError(t, rec).Error)
	})

	t.Run("yaml alias expansion", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("- &a0 {type: text, defaultValue: x}\n")
		for i := 1; i <= 8; i++ {
			b.WriteString("- &a" + strconv.Itoa(i) + " [" + strings.TrimSuffix(strings.Repeat("*a"+strconv.Itoa(i-1)+", ", 10), ", ") + "]\n")
		}
		start := time.Now()
		rec := do(t, s, http.MethodPost, "/api/v1/config/validate?format=yaml", "", b.String())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "syntax_error", decodeError(t, rec).Error)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("duplicate object key", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/api/v1/config/validate", "application/json",
			`[{"type":"color","type":"heading","defaultValue":"x"}]`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "syntax_error", decodeError(t, rec).Error)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/api/v1/config/validate", "application/xml", "<a/>")
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestValidate_BodyTooLarge(t *testing.T) {
	s := newTestServer(t, func(c *config.APIConfig) { c.MaxBodyBytes = 16 })
	rec := do(t, s, http.MethodPost, "/api/v1/config/validate", "", string(skwatch.Artifact()))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSettings(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
		wantError  string
	}{
		{"hex string", `{"BackgroundColor":"0x0055ff"}`, http.StatusOK, `{"BackgroundColor":"0x0055ff"}`, ""},
		{"integer", `{"BackgroundColor":170}`, http.StatusOK, `{"BackgroundColor":"0x0000aa"}`, ""},
		{"empty keeps defaults", `{}`, http.StatusOK, `{"BackgroundColor":"0x000000"}`, ""},
		{"unknown key", `{"Nope":"0x000000"}`, http.StatusUnprocessableEntity, "", "invalid_submission"},
		{"bad value", `{"BackgroundColor":"blue"}`, http.StatusUnprocessableEntity, "", "invalid_submission"},
		{"malformed", `{"BackgroundColor":`, http.StatusBadRequest, "", "syntax_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/settings", "application/json", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeError(t, rec).Error)
			}
		})
	}
}

func TestErrors_EnvelopeCarriesRequestID(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "not_found", resp.Error)
	assert.Equal(t, "req-42", resp.RequestID)

	rec = do(t, s, http.MethodDelete, "/api/v1/config", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	_ = do(t, s, http.MethodGet, "/healthz", "", "")
	rec := do(t, s, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "skwatch_http_requests_total")

	disabled := newTestServer(t, func(c *config.APIConfig) { c.EnableMetrics = false })
	rec = do(t, disabled, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 2 * time.Second}
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = client.Get("http://" + ln.Addr().String() + "/healthz")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Error(t, s.Serve(context.Background(), ln), "second Serve must fail")
}
