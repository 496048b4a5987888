// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ManuGH/skwatch/internal/clay"
	"github.com/ManuGH/skwatch/internal/metrics"
)

func (a *app) defaultsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print each messageKey with its default color",
		Long: `Print every color messageKey with its default value and the 8-bit color
the watch renders for it (2 bits per channel).`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := loadSource(file)
			if err != nil {
				a.reportInvalid(src.name, err)
				return &exitError{code: ExitFailure, err: errReported}
			}
			a.printSettings(src.doc.Defaults())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "document to read (default: bundled document)")
	return cmd
}

func (a *app) settingsCmd() *cobra.Command {
	var file string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "settings submission.json",
		Short: "Decode a settings submission against a document",
		Long: `Decode the key/value object the settings page submits ("-" reads stdin),
overlay it on the document defaults and print the result.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(file)
			if err != nil {
				a.reportInvalid(src.name, err)
				return &exitError{code: ExitFailure, err: errReported}
			}
			payload, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			settings, err := clay.DecodeSubmission(src.doc, payload)
			metrics.RecordSubmission(err)
			if err != nil {
				a.reportInvalid(args[0], err)
				return &exitError{code: ExitFailure, err: errReported}
			}

			if asJSON {
				data, err := json.MarshalIndent(settings, "", "  ")
				if err != nil {
					return err
				}
				return a.writeOutput("", append(data, '\n'))
			}
			a.printSettings(settings)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "document to decode against (default: bundled document)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the merged settings as JSON")
	return cmd
}

func (a *app) printSettings(s clay.Settings) {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tGCOLOR8")
	for _, key := range s.Keys() {
		c := s[key]
		g, _ := c.GColor8()
		fmt.Fprintf(tw, "%s\t%s\t0x%02x\n", key, c, g)
	}
	_ = tw.Flush()
}
