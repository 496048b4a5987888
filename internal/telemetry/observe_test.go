// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ManuGH/skwatch/internal/validate"
)

func TestObserveDocument(t *testing.T) {
	spans := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(mp)
	t.Cleanup(func() { otel.SetMeterProvider(metricnoop.NewMeterProvider()) })

	v := validate.New()
	v.Duplicate("[1].messageKey", "duplicate messageKey", "K")

	ctx, span := tp.Tracer("test").Start(context.Background(), "validate")
	ObserveDocument(ctx, Check{Operation: "validate", Path: "config.js", Format: "js", Elements: 4, Err: v.Err()})
	ObserveDocument(ctx, Check{Operation: "validate", Elements: 4})
	span.End()

	got := spans.GetSpans()
	require.Len(t, got, 1)
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range got[0].Attributes {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "config.js", attrs[DocumentPathKey].AsString())
	assert.Equal(t, "success", attrs[DocumentResultKey].AsString(), "last observation wins")
	assert.Equal(t, int64(0), attrs[DocumentIssuesKey].AsInt64())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "skwatch.document.checks" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				result, _ := dp.Attributes.Value("result")
				counts[result.AsString()] += dp.Value
			}
		}
	}
	assert.Equal(t, map[string]int64{"invalid": 1, "success": 1}, counts)
}

func TestCheck_Result(t *testing.T) {
	assert.Equal(t, "success", Check{}.Result())
	assert.Equal(t, "error", Check{Err: errors.New("read failed")}.Result())
}

func TestDocumentAttributes(t *testing.T) {
	assert.Len(t, DocumentAttributes("", "", 3, 0), 2)
	assert.Len(t, DocumentAttributes("a.json", "json", 3, 1), 4)
	assert.Len(t, HTTPAttributes("GET", "/healthz", 200), 3)
	assert.Len(t, ErrorAttributes("structural"), 2)
}
