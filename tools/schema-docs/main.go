// SPDX-License-Identifier: MIT

// schema-docs generates Markdown reference documentation for settings
// documents from the JSON Schema.
//
// Usage:
//
//	go run ./tools/schema-docs [output.md]
//
// Defaults:
//   - output: docs/settings.md
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ManuGH/skwatch/internal/clay"
)

type Schema map[string]any

type propInfo struct {
	Name        string
	Type        string
	Required    bool
	Description string
	Pattern     string
}

func main() {
	out := "docs/settings.md"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	data, err := json.Marshal(clay.JSONSchema())
	check(err)
	var root Schema
	check(json.Unmarshal(data, &root))

	check(os.MkdirAll(filepath.Dir(out), 0o755))
	check(os.WriteFile(out, render(root), 0o644))
	fmt.Printf("generated %s from %s\n", out, clay.SchemaID)
}

// render documents every element kind referenced by $defs/element, followed
// by the shared definitions.
func render(root Schema) []byte {
	defs := getMap(root, "$defs")
	kinds := refNames(getMap(defs, "element"))

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "# %s\n\n", root["title"])
	fmt.Fprintf(buf, "> Source: `%s` (Draft 2020-12)\n\n", root["$id"])
	if d, ok := root["description"].(string); ok {
		fmt.Fprintf(buf, "%s\n\n", mdSan(d))
	}

	fmt.Fprintln(buf, "## Element kinds")
	fmt.Fprintln(buf, "| Kind | Description |")
	fmt.Fprintln(buf, "|---|---|")
	for _, k := range kinds {
		fmt.Fprintf(buf, "| `%s` | %s |\n", k, mdSan(description(getMap(defs, k))))
	}
	fmt.Fprintln(buf)

	for _, k := range kinds {
		fmt.Fprintf(buf, "## `%s`\n\n", k)
		renderObject(buf, getMap(defs, k))
		fmt.Fprintln(buf)
	}

	fmt.Fprintln(buf, "## Definitions")
	for _, k := range sortedKeys(defs) {
		if k == "element" || contains(kinds, k) {
			continue
		}
		p := extractProp(k, getMap(defs, k), false)
		fmt.Fprintf(buf, "\n### `%s`\n\n**Type:** %s  \n", k, mdCode(p.Type))
		if p.Pattern != "" {
			fmt.Fprintf(buf, "**Pattern:** `%s`  \n", p.Pattern)
		}
		if p.Description != "" {
			fmt.Fprintf(buf, "\n%s\n", mdSan(p.Description))
		}
	}
	return buf.Bytes()
}

func renderObject(buf *bytes.Buffer, node Schema) {
	if d := description(node); d != "" {
		fmt.Fprintf(buf, "%s\n\n", mdSan(d))
	}
	reqSet := map[string]bool{}
	if req, ok := node["required"].([]any); ok {
		for _, r := range req {
			reqSet[fmt.Sprint(r)] = true
		}
	}
	props := getMap(node, "properties")
	fmt.Fprintln(buf, "| Field | Type | Required | Description |")
	fmt.Fprintln(buf, "|---|---|:---:|---|")
	for _, k := range sortedKeys(props) {
		p := extractProp(k, getMap(props, k), reqSet[k])
		fmt.Fprintf(buf, "| `%s` | %s | %s | %s |\n",
			p.Name, mdCode(p.Type), boolIcon(p.Required), mdSan(p.Description))
	}
}

func extractProp(name string, node Schema, required bool) propInfo {
	pi := propInfo{Name: name, Required: required}
	pi.Type = typeOf(node)
	pi.Description = description(node)
	if p, ok := node["pattern"].(string); ok {
		pi.Pattern = p
	}
	if pi.Type == "array" {
		pi.Type = "array<" + typeOf(getMap(node, "items")) + ">"
	}
	return pi
}

func typeOf(node Schema) string {
	if ref, ok := node["$ref"].(string); ok {
		return strings.TrimPrefix(ref, "#/$defs/")
	}
	if c, ok := node["const"]; ok {
		b, _ := json.Marshal(c)
		return string(b)
	}
	if t, ok := node["type"].(string); ok {
		return t
	}
	if alts, ok := node["oneOf"].([]any); ok {
		parts := make([]string, 0, len(alts))
		for _, a := range alts {
			if m, ok := a.(map[string]any); ok {
				parts = append(parts, typeOf(Schema(m)))
			}
		}
		return strings.Join(parts, "|")
	}
	return "any"
}

func description(node Schema) string {
	d, _ := node["description"].(string)
	return d
}

// refNames lists the $defs names referenced by a oneOf, in order.
func refNames(node Schema) []string {
	var out []string
	alts, _ := node["oneOf"].([]any)
	for _, a := range alts {
		if m, ok := a.(map[string]any); ok {
			if ref, ok := m["$ref"].(string); ok {
				out = append(out, strings.TrimPrefix(ref, "#/$defs/"))
			}
		}
	}
	return out
}

func getMap(m Schema, key string) Schema {
	if v, ok := m[key]; ok {
		if mm, ok := v.(map[string]any); ok {
			return Schema(mm)
		}
	}
	return Schema{}
}

func sortedKeys(m Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func mdSan(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.TrimSpace(s)
}

func mdCode(s string) string {
	return "`" + strings.ReplaceAll(s, "|", "\\|") + "`"
}

func boolIcon(b bool) string {
	if b {
		return "✓"
	}
	return ""
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
