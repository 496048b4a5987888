// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/ManuGH/skwatch/internal/clay"
	xglog "github.com/ManuGH/skwatch/internal/log"
	"github.com/ManuGH/skwatch/internal/metrics"
	"github.com/ManuGH/skwatch/internal/telemetry"
)

var contentTypes = map[clay.Format]string{
	clay.FormatJSON: "application/json",
	clay.FormatJS:   "text/javascript; charset=utf-8",
	clay.FormatYAML: "application/yaml",
}

// handleConfig serves the current document. The wire format defaults to JSON
// and may be selected with ?format=json|js|yaml.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	format := clay.FormatJSON
	if name := r.URL.Query().Get("format"); name != "" {
		f, err := clay.ParseFormat(name)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_format", err)
			return
		}
		format = f
	}

	snap := s.holder.Get()
	body, err := clay.Encode(snap.Doc, format)
	if err != nil {
		writeInternalError(w, r, fmt.Errorf("encode document: %w", err))
		return
	}

	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", snap.LoadedAt.UTC().Format(http.TimeFormat))
	if noneMatch(r.Header.Values("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// noneMatch reports whether an If-None-Match header list matches etag.
// The comparison is weak, so W/"x" matches "x".
func noneMatch(headers []string, etag string) bool {
	for _, h := range headers {
		for _, tag := range strings.Split(h, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "*" || strings.TrimPrefix(tag, "W/") == strings.TrimPrefix(etag, "W/") {
				return true
			}
		}
	}
	return false
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	body, err := clay.JSONSchema().MarshalJSON()
	if err != nil {
		writeInternalError(w, r, fmt.Errorf("encode schema: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.holder.Get().Doc.Defaults())
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.holder.Get().Doc.Outline())
}

// handleValidate validates a posted document. The format comes from
// ?format=, then the Content-Type, and defaults to JSON.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	format, err := requestFormat(r)
	if err != nil {
		writeError(w, r, http.StatusUnsupportedMediaType, "invalid_format", err)
		return
	}
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	doc, err := clay.Parse(body, format)
	if err == nil {
		err = clay.Validate(doc)
	}
	elements := 0
	if doc != nil {
		elements = doc.Count()
	}
	metrics.RecordValidation(err)
	telemetry.ObserveDocument(r.Context(), telemetry.Check{
		Operation: "validate",
		Format:    string(format),
		Elements:  elements,
		Err:       err,
	})

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"valid": true, "elements": elements})
	case errors.Is(err, clay.ErrSyntax):
		writeError(w, r, http.StatusBadRequest, "syntax_error", err)
	default:
		s.logIssues(r, "document.invalid", err)
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_document", err)
	}
}

// handleSettings decodes a settings submission against the current document
// and returns the merged settings.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	settings, err := clay.DecodeSubmission(s.holder.Get().Doc, body)
	metrics.RecordSubmission(err)
	telemetry.ObserveDocument(r.Context(), telemetry.Check{Operation: "settings", Err: err})

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, settings)
	case errors.Is(err, clay.ErrSyntax):
		writeError(w, r, http.StatusBadRequest, "syntax_error", err)
	default:
		s.logIssues(r, "settings.invalid", err)
		writeError(w, r, http.StatusUnprocessableEntity, "invalid_submission", err)
	}
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(s.cfg.MaxBodyBytes)))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "body_too_large", err)
			return nil, false
		}
		writeError(w, r, http.StatusBadRequest, "read_failed", err)
		return nil, false
	}
	return body, true
}

func (s *Server) logIssues(r *http.Request, event string, err error) {
	logger := xglog.WithComponentFromContext(r.Context(), "api")
	logger.Info().Str(xglog.FieldEvent, event).Err(err).Msg("rejected by validation")
}

func requestFormat(r *http.Request) (clay.Format, error) {
	if name := r.URL.Query().Get("format"); name != "" {
		return clay.ParseFormat(name)
	}
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return clay.FormatJSON, nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", fmt.Errorf("invalid Content-Type: %w", err)
	}
	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"), mediaType == "text/plain":
		return clay.FormatJSON, nil
	case strings.HasSuffix(mediaType, "javascript"):
		return clay.FormatJS, nil
	case strings.HasSuffix(mediaType, "yaml"):
		return clay.FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported Content-Type %q", mediaType)
	}
}
