// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads the skwatch application configuration used by the CLI
// and the HTTP server.
//
// Precedence is ENV > file > defaults. The YAML file is parsed strictly:
// unknown keys and multiple documents are rejected. Environment variables use
// the SKWATCH_ prefix and may be supplied through a .env file.
package config
