// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/skwatch/internal/clay"
	"github.com/ManuGH/skwatch/internal/skwatch"
	"github.com/ManuGH/skwatch/internal/validate"
)

// source is a loaded document and where it came from.
type source struct {
	doc    *clay.Document
	format clay.Format
	name   string
}

// loadSource loads path, or the bundled document when path is empty.
func loadSource(path string) (source, error) {
	if path == "" {
		doc, err := skwatch.Bundled()
		if err != nil {
			return source{name: skwatch.ArtifactName}, fmt.Errorf("bundled document: %w", err)
		}
		return source{doc: doc, format: clay.FormatJS, name: skwatch.ArtifactName}, nil
	}
	doc, format, err := clay.Load(path)
	if err != nil {
		return source{name: path}, err
	}
	return source{doc: doc, format: format, name: path}, nil
}

// printIssues writes one line per validation issue, or the error itself when
// it carries none.
func (a *app) printIssues(w io.Writer, err error) {
	issues := validate.Issues(err)
	if len(issues) == 0 {
		fmt.Fprintf(w, "  %v\n", err)
		return
	}
	for _, issue := range issues {
		fmt.Fprintf(w, "  %s: %s %s\n", issue.Field, issue.Message, a.dim.Sprintf("(%s)", issue.ClassName()))
	}
}

func (a *app) reportInvalid(name string, err error) {
	fmt.Fprintf(a.stderr, "%s %s is invalid:\n", a.fail.Sprint("✗"), name)
	a.printIssues(a.stderr, err)
}

// writeOutput writes data to stdout, or atomically to path.
func (a *app) writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := a.stdout.Write(data)
		return err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readInput reads path, or stdin for "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
