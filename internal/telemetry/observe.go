// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ManuGH/skwatch/internal/validate"
)

// Check describes one document check for ObserveDocument.
type Check struct {
	Operation string // load|reload|validate|settings
	Path      string
	Format    string
	Elements  int
	Err       error
}

// Result returns success, invalid (validation issues) or error.
func (c Check) Result() string {
	switch {
	case c.Err == nil:
		return "success"
	case len(validate.Issues(c.Err)) > 0:
		return "invalid"
	default:
		return "error"
	}
}

// ObserveDocument annotates the current span with the check outcome and
// records it on the global meter provider.
func ObserveDocument(ctx context.Context, c Check) {
	issues := validate.Issues(c.Err)
	result := c.Result()

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(DocumentAttributes(c.Path, c.Format, c.Elements, len(issues))...)
	span.SetAttributes(attribute.String(DocumentResultKey, result))
	if c.Err != nil {
		span.RecordError(c.Err)
		span.SetStatus(codes.Error, result)
	}

	// Looked up per call so tests can swap the global provider.
	meter := otel.GetMeterProvider().Meter("skwatch.document")
	checks, _ := meter.Int64Counter("skwatch.document.checks",
		metric.WithDescription("Document checks by operation and result"))
	checks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", c.Operation),
		attribute.String("result", result),
	))
}
