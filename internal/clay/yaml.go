// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package clay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxYAMLNodes bounds the number of nodes produced after alias expansion.
// A settings document has a few dozen; nested aliases can multiply a tiny
// input into billions.
const maxYAMLNodes = 10000

// yamlDocumentTree decodes exactly one YAML document into generic values.
func yamlDocumentTree(data []byte) (interface{}, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node yaml.Node
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrSyntax)
		}
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: multiple YAML documents are not supported", ErrSyntax)
	}
	w := &yamlWalker{budget: maxYAMLNodes}
	return w.tree(&node)
}

// yamlWalker converts nodes into the same generic shape jsonTree produces.
// Unquoted 0x literals resolve to !!int in YAML; their text is kept so hex
// colors survive without quoting.
type yamlWalker struct {
	budget int
}

func (w *yamlWalker) tree(n *yaml.Node) (interface{}, error) {
	if w.budget <= 0 {
		return nil, fmt.Errorf("%w: line %d: document expands to more than %d nodes", ErrSyntax, n.Line, maxYAMLNodes)
	}
	w.budget--

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return w.tree(n.Content[0])
	case yaml.AliasNode:
		return w.tree(n.Alias)
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := w.tree(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: mapping keys must be scalars", ErrSyntax, key.Line)
			}
			if _, dup := out[key.Value]; dup {
				return nil, fmt.Errorf("%w: line %d: duplicate key %q", ErrSyntax, key.Line, key.Value)
			}
			v, err := w.tree(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key.Value] = v
		}
		return out, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return nil, fmt.Errorf("%w: line %d: unsupported YAML node", ErrSyntax, n.Line)
	}
}

func yamlScalar(n *yaml.Node) (interface{}, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, n.Line, err)
		}
		return b, nil
	case "!!int":
		if strings.HasPrefix(strings.ToLower(n.Value), "0x") {
			return n.Value, nil
		}
		return json.Number(n.Value), nil
	case "!!float":
		return json.Number(n.Value), nil
	default:
		return n.Value, nil
	}
}
