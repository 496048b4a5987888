// SPDX-License-Identifier: MIT
package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the application.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"

	// Document attributes
	DocumentPathKey     = "skwatch.document.path"
	DocumentFormatKey   = "skwatch.document.format"
	DocumentElementsKey = "skwatch.document.elements"
	DocumentIssuesKey   = "skwatch.document.issues"
	DocumentResultKey   = "skwatch.document.result"

	// Submission attributes
	SubmissionKeysKey = "skwatch.settings.keys"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// DocumentAttributes describes a loaded or validated document. Empty path
// and format are omitted.
func DocumentAttributes(path, format string, elements, issues int) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 4)
	if path != "" {
		attrs = append(attrs, attribute.String(DocumentPathKey, path))
	}
	if format != "" {
		attrs = append(attrs, attribute.String(DocumentFormatKey, format))
	}
	return append(attrs,
		attribute.Int(DocumentElementsKey, elements),
		attribute.Int(DocumentIssuesKey, issues),
	)
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
