// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMiddleware_LogsRoutePatternAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Output: &buf})
	defer Configure(Config{})

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(ContextWithRequestID(req.Context(), "req-42")))
		})
	})
	r.Use(Middleware())
	r.Get("/api/v1/config/{section}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/config/schema", nil))

	var entry map[string]interface{}
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var e map[string]interface{}
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("parse log line: %v", err)
		}
		if e[FieldEvent] == "request.handled" {
			entry = e
		}
	}
	if entry == nil {
		t.Fatalf("no request.handled entry in %q", buf.String())
	}

	if entry[FieldRoute] != "/api/v1/config/{section}" {
		t.Errorf("route = %v, want pattern", entry[FieldRoute])
	}
	if entry[FieldRequestID] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry[FieldRequestID])
	}
	if entry[FieldStatus] != float64(http.StatusTeapot) {
		t.Errorf("status = %v, want 418", entry[FieldStatus])
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn for 4xx", entry["level"])
	}
}
