// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/skwatch/internal/api"
	"github.com/ManuGH/skwatch/internal/config"
	"github.com/ManuGH/skwatch/internal/document"
	xglog "github.com/ManuGH/skwatch/internal/log"
	"github.com/ManuGH/skwatch/internal/telemetry"
	"github.com/ManuGH/skwatch/internal/version"
)

type serveFlags struct {
	listen   string
	document string
	watch    bool
	envFile  string
}

func (a *app) serveCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the settings document over HTTP",
		Long: `Serve the settings document and the validation endpoints over HTTP.
Configuration precedence: flags > environment (SKWATCH_*) > config file > defaults.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.serveConfig(cmd, f)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&f.listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&f.document, "document", "", "document to serve (overrides config; default: bundled)")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "reload the document when its file changes")
	cmd.Flags().StringVar(&f.envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before environment overrides")
	return cmd
}

// serveConfig loads the application config and applies the command flags.
func (a *app) serveConfig(cmd *cobra.Command, f serveFlags) (config.AppConfig, error) {
	cfg, err := config.NewLoader(a.configPath, version.Version).WithEnvFile(f.envFile).Load()
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("listen") {
		cfg.API.ListenAddr = f.listen
	}
	if cmd.Flags().Changed("document") {
		abs, err := filepath.Abs(f.document)
		if err != nil {
			return cfg, fmt.Errorf("resolve document path: %w", err)
		}
		cfg.Document = abs
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = f.watch
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, usageError(err)
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Output:  a.stderr,
		Service: cfg.LogService,
		Version: cfg.Version,
	})
	return cfg, nil
}

// serve runs the HTTP server and, when enabled, the document watcher until
// ctx is cancelled or either of them fails.
func serve(ctx context.Context, cfg config.AppConfig) error {
	logger := xglog.WithComponent("serve")

	tp, err := telemetry.NewProvider(ctx, telemetry.FromAppConfig(cfg))
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn().Err(err).Str(xglog.FieldEvent, "telemetry.shutdown_failed").Msg("telemetry shutdown failed")
		}
	}()

	holder, err := document.Open(ctx, cfg.Document)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}

	var opts []api.Option
	if cfg.Telemetry.Enabled {
		opts = append(opts, api.WithTracing(cfg.LogService))
	}
	srv := api.New(cfg.API, holder, opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.ListenAndServe(gctx) })
	if cfg.Watch {
		g.Go(func() error { return holder.Watch(gctx) })
	}

	logger.Info().
		Str(xglog.FieldEvent, "serve.started").
		Str(xglog.FieldListenAddr, cfg.API.ListenAddr).
		Str(xglog.FieldPath, holder.Get().Name()).
		Bool("watch", cfg.Watch).
		Msg("skwatch serving settings document")

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Str(xglog.FieldEvent, "serve.stopped").Msg("skwatch stopped")
	return nil
}
