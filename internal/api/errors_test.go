// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	xglog "github.com/ManuGH/skwatch/internal/log"
)

func TestWriteInternalError_LogsTraceAndHidesCause(t *testing.T) {
	var buf bytes.Buffer
	xglog.Configure(xglog.Config{Output: &buf})
	defer xglog.Configure(xglog.Config{})

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()
	ctx, span := tp.Tracer("test").Start(context.Background(), "GET /api/v1/config")
	defer span.End()
	ctx = xglog.ContextWithRequestID(ctx, "req-7")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	writeInternalError(rec, req, errors.New("encode document: disk on fire"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "internal_error", resp.Error)
	assert.Equal(t, "req-7", resp.RequestID)
	assert.Empty(t, resp.Detail)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), buf.String())
	assert.Equal(t, "request.failed", entry[xglog.FieldEvent])
	assert.Equal(t, "api", entry[xglog.FieldComponent])
	assert.Equal(t, "req-7", entry[xglog.FieldRequestID])
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
	assert.Contains(t, entry["error"], "disk on fire")
}
