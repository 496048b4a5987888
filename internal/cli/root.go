// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package cli implements the skwatch command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	xglog "github.com/ManuGH/skwatch/internal/log"
	"github.com/ManuGH/skwatch/internal/validate"
	"github.com/ManuGH/skwatch/internal/version"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// exitError carries a specific exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: ExitUsage, err: err} }

// errReported marks a failure whose details were already printed.
var errReported = errors.New("reported")

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// app holds the global flags and output streams shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	noColor    bool

	ok   *color.Color
	fail *color.Color
	dim  *color.Color
}

// NewRootCmd builds the skwatch command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		ok:     color.New(color.FgGreen, color.Bold),
		fail:   color.New(color.FgRed, color.Bold),
		dim:    color.New(color.Faint),
	}

	root := &cobra.Command{
		Use:   "skwatch",
		Short: "Skwatch watchface settings document toolkit",
		Long: `skwatch validates, converts and serves the settings document that the
Skwatch watchface companion app renders as its configuration page.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to application config file (YAML)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.validateCmd(),
		a.exportCmd(),
		a.fmtCmd(),
		a.schemaCmd(),
		a.defaultsCmd(),
		a.settingsCmd(),
		a.serveCmd(),
		a.versionCmd(),
	)
	return root
}

// setup applies the global flags before any command runs.
func (a *app) setup() error {
	if a.logLevel != "" {
		if _, err := validate.ParseLogLevel(a.logLevel); err != nil {
			return usageError(fmt.Errorf("invalid --log-level %q", a.logLevel))
		}
	}
	level := a.logLevel
	if level == "" {
		level = "warn"
	}
	xglog.Configure(xglog.Config{
		Level:   level,
		Output:  a.stderr,
		Service: "skwatch",
		Version: version.Version,
	})

	if a.noColor || color.NoColor {
		for _, c := range []*color.Color{a.ok, a.fail, a.dim} {
			c.DisableColor()
		}
	}
	return nil
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	code := ExitFailure
	if errors.As(err, &ee) {
		code = ee.code
	}
	if !errors.Is(err, errReported) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if code == ExitUsage {
			fmt.Fprintln(stderr, "Run 'skwatch --help' for usage.")
		}
	}
	return code
}
