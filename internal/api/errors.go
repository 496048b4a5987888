// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"

	xglog "github.com/ManuGH/skwatch/internal/log"
	"github.com/ManuGH/skwatch/internal/validate"
)

// errorResponse is the JSON envelope of every non-2xx response.
type errorResponse struct {
	Error     string      `json:"error"`
	Detail    string      `json:"detail,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
	Issues    []issueJSON `json:"issues,omitempty"`
}

type issueJSON struct {
	Path    string      `json:"path"`
	Class   string      `json:"class"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func toIssues(errs []validate.Error) []issueJSON {
	if len(errs) == 0 {
		return nil
	}
	out := make([]issueJSON, len(errs))
	for i, e := range errs {
		out[i] = issueJSON{Path: e.Field, Class: e.ClassName(), Message: e.Message, Value: e.Value}
	}
	return out
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error envelope, correlated with the request ID.
func writeError(w http.ResponseWriter, r *http.Request, code int, reason string, err error) {
	resp := errorResponse{
		Error:     reason,
		RequestID: xglog.RequestIDFromContext(r.Context()),
	}
	if issues := validate.Issues(err); len(issues) > 0 {
		resp.Issues = toIssues(issues)
	} else if err != nil {
		resp.Detail = err.Error()
	}
	writeJSON(w, code, resp)
}

// writeInternalError logs err and hides it from the client.
func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := xglog.WithContext(ctx, xglog.WithTraceContext(ctx))
	logger.Error().
		Err(err).
		Str(xglog.FieldComponent, "api").
		Str(xglog.FieldEvent, "request.failed").
		Msg("internal error")
	writeError(w, r, http.StatusInternalServerError, "internal_error", nil)
}
