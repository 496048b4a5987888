// SPDX-License-Identifier: MIT

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	xglog "github.com/ManuGH/skwatch/internal/log"
)

// Recoverer turns handler panics into a 500 JSON response and logs the stack.
// http.ErrAbortHandler is re-panicked so the server aborts the connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel compared by identity
				panic(rec)
			}
			logger := xglog.WithComponentFromContext(r.Context(), "http")
			logger.Error().
				Str(xglog.FieldEvent, "request.panic").
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Msg("recovered from handler panic")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = fmt.Fprintf(w, `{"error":"internal_error","requestId":%q}`, xglog.RequestIDFromContext(r.Context()))
		}()
		next.ServeHTTP(w, r)
	})
}
