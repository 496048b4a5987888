// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID     = "request_id"
	FieldCorrelationID = "correlation_id"
	FieldService       = "service"
	FieldVersion       = "version"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Document fields
	FieldPath       = "path"
	FieldFormat     = "format"
	FieldMessageKey = "message_key"
	FieldIssues     = "issues"
	FieldElements   = "elements"

	// HTTP fields
	FieldMethod     = "method"
	FieldRoute      = "route"
	FieldStatus     = "status"
	FieldDurationMS = "duration_ms"
	FieldRemoteAddr = "remote_addr"
	FieldListenAddr = "listen_addr"
)
