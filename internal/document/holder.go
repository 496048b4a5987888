// SPDX-License-Identifier: MIT

// Package document holds the settings document served by skwatch and keeps
// it in sync with its file.
package document

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ManuGH/skwatch/internal/clay"
	xglog "github.com/ManuGH/skwatch/internal/log"
	"github.com/ManuGH/skwatch/internal/metrics"
	"github.com/ManuGH/skwatch/internal/skwatch"
	"github.com/ManuGH/skwatch/internal/telemetry"
	"github.com/ManuGH/skwatch/internal/validate"
)

// Snapshot is an immutable view of the current document.
type Snapshot struct {
	Doc    *clay.Document
	Format clay.Format
	// Path is empty for the bundled document.
	Path     string
	LoadedAt time.Time
	Revision uint64
}

// Name returns the file name of the snapshot source.
func (s Snapshot) Name() string {
	if s.Path == "" {
		return skwatch.ArtifactName
	}
	return filepath.Base(s.Path)
}

// Holder holds the current document with atomic reloading. A reload that
// fails to load or validate keeps the previous document.
type Holder struct {
	mu      sync.RWMutex
	current Snapshot
	// lastErr is the error of the most recent reload; nil after a success.
	lastErr error

	path     string
	logger   zerolog.Logger
	debounce time.Duration
	limiter  *rate.Limiter

	listenersMu sync.RWMutex
	listeners   []chan<- Snapshot
}

// Option configures a Holder.
type Option func(*Holder)

// WithDebounce sets how long the watcher waits for file events to settle.
func WithDebounce(d time.Duration) Option {
	return func(h *Holder) { h.debounce = d }
}

// WithReloadLimit bounds how often the watcher reloads.
func WithReloadLimit(every time.Duration, burst int) Option {
	return func(h *Holder) { h.limiter = rate.NewLimiter(rate.Every(every), burst) }
}

// Open loads and validates the document at path (the bundled document when
// path is empty) and returns a holder for it.
func Open(ctx context.Context, path string, opts ...Option) (*Holder, error) {
	h := &Holder{
		path:     path,
		logger:   xglog.WithComponent("document"),
		debounce: 300 * time.Millisecond,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 3),
	}
	for _, opt := range opts {
		opt(h)
	}

	snap, err := h.load(ctx, "load")
	if err != nil {
		return nil, err
	}
	snap.Revision = 1
	h.current = snap
	h.logger.Info().
		Str(xglog.FieldEvent, "document.loaded").
		Str(xglog.FieldPath, snap.Name()).
		Int(xglog.FieldElements, snap.Doc.Count()).
		Msg("settings document loaded")
	return h, nil
}

// Get returns the current snapshot.
func (h *Holder) Get() Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// LastError returns the error of the most recent reload, or nil when it
// succeeded or no reload happened yet.
func (h *Holder) LastError() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastErr
}

// Reload re-reads the document. On failure the current document is kept and
// the error is returned. Request and correlation IDs in ctx are logged.
func (h *Holder) Reload(ctx context.Context) error {
	logger := xglog.WithContext(ctx, h.logger)
	logger.Info().Str(xglog.FieldEvent, "document.reload_start").Msg("reloading settings document")

	snap, err := h.load(ctx, "reload")
	metrics.RecordReload(err)
	if err != nil {
		h.mu.Lock()
		h.lastErr = err
		h.mu.Unlock()
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "document.reload_failed").
			Int(xglog.FieldIssues, len(validate.Issues(err))).
			Msg("keeping previous settings document")
		return err
	}

	h.mu.Lock()
	snap.Revision = h.current.Revision + 1
	h.current = snap
	h.lastErr = nil
	h.mu.Unlock()

	h.notifyListeners(snap)
	logger.Info().
		Str(xglog.FieldEvent, "document.reload_success").
		Uint64("revision", snap.Revision).
		Msg("settings document reloaded")
	return nil
}

func (h *Holder) load(ctx context.Context, op string) (Snapshot, error) {
	ctx, span := telemetry.Tracer("skwatch/document").Start(ctx, "document."+op)
	defer span.End()

	var (
		doc    *clay.Document
		format = clay.FormatJS
		err    error
	)
	if h.path == "" {
		doc, err = skwatch.Bundled()
	} else {
		doc, format, err = clay.Load(h.path)
	}
	if err == nil {
		err = clay.Validate(doc)
		metrics.RecordValidation(err)
	}

	check := telemetry.Check{Operation: op, Path: h.path, Format: string(format), Err: err}
	if doc != nil {
		check.Elements = doc.Count()
	}
	telemetry.ObserveDocument(ctx, check)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s document: %w", op, err)
	}

	metrics.SetDocumentElements(doc.Count())
	return Snapshot{Doc: doc, Format: format, Path: h.path, LoadedAt: time.Now()}, nil
}

// Subscribe registers ch to receive every successfully reloaded snapshot.
// Sends never block; a full channel misses the update.
func (h *Holder) Subscribe(ch chan<- Snapshot) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

func (h *Holder) notifyListeners(snap Snapshot) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, ch := range h.listeners {
		select {
		case ch <- snap:
		default:
			h.logger.Warn().
				Str(xglog.FieldEvent, "document.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}
