// SPDX-License-Identifier: MIT

package document

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	xglog "github.com/ManuGH/skwatch/internal/log"
)

// Watch reloads the document whenever its file changes, until ctx is done.
// Each reload carries its own correlation ID.
// The parent directory is watched so editors that save by rename are
// picked up. For the bundled document Watch just waits for ctx.
func (h *Holder) Watch(ctx context.Context) error {
	if h.path == "" {
		h.logger.Info().
			Str(xglog.FieldEvent, "document.watcher_disabled").
			Msg("serving bundled document, file watcher disabled")
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(h.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch document directory: %w", err)
	}

	h.logger.Info().
		Str(xglog.FieldEvent, "document.watcher_started").
		Str(xglog.FieldPath, target).
		Msg("watching settings document for changes")

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str(xglog.FieldEvent, "document.watcher_stopped").Msg("document watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			h.logger.Debug().
				Str(xglog.FieldEvent, "document.file_changed").
				Str("op", event.Op.String()).
				Msg("settings document changed")
			if timer == nil {
				timer = time.NewTimer(h.debounce)
			} else {
				timer.Stop()
				timer.Reset(h.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := h.limiter.Wait(ctx); err != nil {
				return nil
			}
			reloadCtx := xglog.ContextWithCorrelationID(ctx, uuid.NewString())
			if err := h.Reload(reloadCtx); err != nil {
				logger := xglog.WithContext(reloadCtx, h.logger)
				logger.Warn().
					Err(err).
					Str(xglog.FieldEvent, "document.auto_reload_failed").
					Msg("automatic document reload failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Error().
				Err(err).
				Str(xglog.FieldEvent, "document.watcher_error").
				Msg("document watcher error")
		}
	}
}
