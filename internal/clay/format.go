// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is a document serialization.
type Format string

const (
	// FormatJSON is a bare JSON array.
	FormatJSON Format = "json"
	// FormatJS is the CommonJS module bundled by the companion app:
	// module.exports = [...];
	FormatJS Format = "js"
	// FormatYAML is the authoring form.
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatJS, FormatYAML}

const jsModulePrefix = "module.exports = "

// ErrSyntax classifies documents that are not well-formed in their format.
var ErrSyntax = errors.New("syntax error")

// ParseFormat parses a format name ("json", "js", "yaml"/"yml").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "js", "javascript":
		return FormatJS, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (supported: json, js, yaml)", name)
	}
}

// FormatFromPath detects the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot detect format of %s (no extension)", path)
	}
	return ParseFormat(ext)
}

// Parse decodes data in the given format. Unknown kinds or attributes,
// wrong attribute types and missing required attributes are collected and
// returned together as a validate.ValidationError. Malformed input is
// reported as ErrSyntax.
func Parse(data []byte, format Format) (*Document, error) {
	var (
		tree interface{}
		err  error
	)
	switch format {
	case FormatJSON:
		tree, err = jsonTree(data)
	case FormatJS:
		var body []byte
		body, err = stripModule(data)
		if err == nil {
			tree, err = jsonTree(body)
		}
	case FormatYAML:
		tree, err = yamlDocumentTree(data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return build(tree)
}

// Load reads and decodes the document at path, detecting its format from
// the extension.
func Load(path string) (*Document, Format, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	// #nosec G304 -- document paths are provided by the operator via CLI/config
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("read document: %w", err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, format, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, format, nil
}

// stripModule removes the "module.exports =" wrapper and the optional
// trailing semicolon, leaving the JSON array literal.
func stripModule(data []byte) ([]byte, error) {
	body := bytes.TrimSpace(data)
	const exports = "module.exports"
	if !bytes.HasPrefix(body, []byte(exports)) {
		return nil, fmt.Errorf("%w: expected %q assignment", ErrSyntax, exports)
	}
	body = bytes.TrimSpace(body[len(exports):])
	if !bytes.HasPrefix(body, []byte("=")) {
		return nil, fmt.Errorf("%w: expected '=' after %s", ErrSyntax, exports)
	}
	body = bytes.TrimSpace(body[1:])
	body = bytes.TrimSpace(bytes.TrimSuffix(body, []byte(";")))
	return body, nil
}
