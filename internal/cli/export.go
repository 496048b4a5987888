// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ManuGH/skwatch/internal/clay"
)

func (a *app) exportCmd() *cobra.Command {
	var file, formatName, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Encode a settings document as JSON, YAML or a JS module",
		Example: `  skwatch export --format js -o src/pkjs/config.js
  skwatch export -f config.yaml --format json`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := clay.ParseFormat(formatName)
			if err != nil {
				return usageError(err)
			}
			src, err := loadSource(file)
			if err == nil {
				err = clay.Validate(src.doc)
			}
			if err != nil {
				a.reportInvalid(src.name, err)
				return &exitError{code: ExitFailure, err: errReported}
			}
			data, err := clay.Encode(src.doc, format)
			if err != nil {
				return err
			}
			return a.writeOutput(out, data)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "document to export (default: bundled document)")
	cmd.Flags().StringVar(&formatName, "format", string(clay.FormatJSON), "output format (json, js, yaml)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file atomically instead of stdout")
	return cmd
}

func (a *app) fmtCmd() *cobra.Command {
	var write, check bool

	cmd := &cobra.Command{
		Use:   "fmt files...",
		Short: "Rewrite settings documents in canonical form",
		Long: `Re-encode documents in their own format with the canonical key order and
indentation. Without -w the result is printed; with --check nothing is
printed and the exit code is 1 when a file is not canonical.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && check {
				return usageError(errors.New("-w and --check are mutually exclusive"))
			}
			failed := false
			for _, path := range args {
				if err := a.formatOne(path, write, check); err != nil {
					if !errors.Is(err, errReported) {
						fmt.Fprintf(a.stderr, "%s %s: %v\n", a.fail.Sprint("✗"), path, err)
					}
					failed = true
				}
			}
			if failed {
				return &exitError{code: ExitFailure, err: errReported}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the source file")
	cmd.Flags().BoolVar(&check, "check", false, "report files that are not canonical and exit 1")
	return cmd
}

func (a *app) formatOne(path string, write, check bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	format, err := clay.FormatFromPath(path)
	if err != nil {
		return err
	}
	doc, err := clay.Parse(raw, format)
	if err != nil {
		a.reportInvalid(path, err)
		return errReported
	}
	canonical, err := clay.Encode(doc, format)
	if err != nil {
		return err
	}

	switch {
	case check:
		if !bytes.Equal(raw, canonical) {
			fmt.Fprintf(a.stdout, "%s is not formatted\n", path)
			return errReported
		}
		return nil
	case write:
		if bytes.Equal(raw, canonical) {
			return nil
		}
		if err := a.writeOutput(path, canonical); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s %s formatted\n", a.ok.Sprint("✓"), path)
		return nil
	default:
		_, err := a.stdout.Write(canonical)
		return err
	}
}

func (a *app) schemaCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of settings documents",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := json.MarshalIndent(clay.JSONSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			return a.writeOutput(out, append(data, '\n'))
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file atomically instead of stdout")
	return cmd
}
