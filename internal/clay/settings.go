// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/ManuGH/skwatch/internal/validate"
)

// Settings maps a color messageKey to its value.
type Settings map[string]HexColor

// Defaults returns the default value of every color element.
func (d *Document) Defaults() Settings {
	out := make(Settings)
	for _, c := range d.Colors() {
		if c.MessageKey != "" {
			out[c.MessageKey] = c.DefaultValue
		}
	}
	return out
}

// Keys returns the message keys in sorted order.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DecodeSubmission decodes the key/value object a settings page submits and
// overlays it on the document defaults. Values may be hex literals
// ("0x0055ff"), integers (21759, as the watch receives them) or objects of the
// form {"value": ...}. A null value keeps the default.
func DecodeSubmission(doc *Document, payload []byte) (Settings, error) {
	raw, err := jsonTree(payload)
	if err != nil {
		return nil, err
	}

	v := validate.New()
	obj, ok := raw.(map[string]interface{})
	if !ok {
		v.Structural("$", fmt.Sprintf("submission must be an object, got %s", typeName(raw)))
		return nil, v.Err()
	}

	out := doc.Defaults()
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, known := doc.Color(key); !known {
			v.Structural(key, fmt.Sprintf("unknown messageKey %q", key))
			continue
		}
		val := obj[key]
		if wrapped, ok := val.(map[string]interface{}); ok {
			inner, ok := wrapped["value"]
			if !ok || len(wrapped) != 1 {
				v.Structural(key, `wrapped value must be an object with exactly one "value" attribute`)
				continue
			}
			val = inner
		}
		if val == nil {
			continue
		}
		c, err := submittedColor(val)
		if err != nil {
			v.AddError(key, err.Error(), val)
			continue
		}
		out[key] = c
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func submittedColor(val interface{}) (HexColor, error) {
	switch x := val.(type) {
	case string:
		return ParseHexColor(x)
	case json.Number:
		n, err := strconv.ParseInt(x.String(), 10, 64)
		if err != nil || n < 0 || n > 0xFFFFFF {
			return "", fmt.Errorf("color value %s out of range (0..16777215)", x)
		}
		return FromRGB(uint32(n)), nil
	default:
		return "", fmt.Errorf("color value must be a hex string or integer, got %s", typeName(val))
	}
}
