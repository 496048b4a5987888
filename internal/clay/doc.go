// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package clay models the declarative settings-form documents consumed by the
// companion app's configuration web view.
//
// A Document is an ordered list of Elements. Each Element is one of a closed
// set of kinds (heading, text, section, color, submit); sections nest further
// elements. Documents decode from JSON, YAML or the bundled CommonJS module
// form, encode back to any of them, and are checked by Validate before they
// are shipped.
package clay
