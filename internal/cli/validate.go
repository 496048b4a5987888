// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ManuGH/skwatch/internal/clay"
	"github.com/ManuGH/skwatch/internal/metrics"
)

func (a *app) validateCmd() *cobra.Command {
	var outline bool

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate settings documents",
		Long: `Validate one or more settings documents (.json, .js, .yaml). Without
arguments the bundled document is validated.

Exit codes:
  0  every document is valid
  1  a document is invalid or unreadable
  2  usage error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{""}
			}

			failed := 0
			for _, path := range paths {
				if !a.validateOne(path, outline) {
					failed++
				}
			}
			if failed > 0 {
				return &exitError{code: ExitFailure, err: errReported}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&outline, "outline", false, "print the descriptor outline of valid documents")
	return cmd
}

func (a *app) validateOne(path string, outline bool) bool {
	src, err := loadSource(path)
	if err == nil {
		err = clay.Validate(src.doc)
	}
	metrics.RecordValidation(err)
	if err != nil {
		a.reportInvalid(src.name, err)
		return false
	}

	fmt.Fprintf(a.stdout, "%s %s is valid\n", a.ok.Sprint("✓"), src.name)
	if outline {
		for _, entry := range src.doc.Outline() {
			fmt.Fprintf(a.stdout, "  %s\n", entry)
		}
	}
	return true
}
