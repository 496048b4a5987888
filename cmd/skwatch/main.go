// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// skwatch validates, converts and serves the Skwatch watchface settings
// document.
//
// Usage:
//
//	skwatch validate [files...]
//	skwatch export --format js -o src/pkjs/config.js
//	skwatch serve --config skwatch.yaml
//
// Exit codes:
//   - 0: success
//   - 1: invalid document or runtime failure
//   - 2: usage error
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ManuGH/skwatch/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
