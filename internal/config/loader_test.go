// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/skwatch/internal/validate"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader("", "v1.2.3").WithEnvFile("").Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "skwatch", cfg.LogService)
	assert.Equal(t, "", cfg.Document)
	assert.Equal(t, ":8088", cfg.API.ListenAddr)
	assert.Equal(t, 120, cfg.API.RateLimit)
	assert.True(t, cfg.API.EnableMetrics)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "v1.2.3", cfg.Version)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "config.js", "module.exports = [];\n")
	path := writeFile(t, dir, "skwatch.yaml", `
logLevel: debug
document: `+doc+`
watch: true
api:
  listenAddr: 127.0.0.1:9000
  readTimeout: 3s
  rateLimit: 0
  enableMetrics: false
telemetry:
  enabled: true
  exporter: http
  endpoint: collector:4318
  samplingRate: 0.25
`)

	cfg, err := NewLoader(path, "").WithEnvFile("").Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, doc, cfg.Document)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "127.0.0.1:9000", cfg.API.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.API.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.API.WriteTimeout, "unset keys keep defaults")
	assert.Equal(t, 0, cfg.API.RateLimit)
	assert.False(t, cfg.API.EnableMetrics)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "http", cfg.Telemetry.Exporter)
	assert.InDelta(t, 0.25, cfg.Telemetry.SamplingRate, 1e-9)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "skwatch.yaml", "logLevel: debug\napi:\n  listenAddr: :9000\n")

	t.Setenv("SKWATCH_LOG_LEVEL", "warn")
	t.Setenv("SKWATCH_LISTEN", ":9100")
	t.Setenv("SKWATCH_RATE_LIMIT", "not-a-number")

	l := NewLoader(path, "").WithEnvFile("")
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":9100", cfg.API.ListenAddr)
	assert.Equal(t, 120, cfg.API.RateLimit, "invalid env value falls back")
	assert.Contains(t, l.ConsumedEnvKeys, "SKWATCH_LISTEN")
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, "skwatch.env", "SKWATCH_LOG_SERVICE=from-dotenv\nSKWATCH_LOG_LEVEL=error\n")
	t.Setenv("SKWATCH_LOG_LEVEL", "debug")
	t.Cleanup(func() { _ = os.Unsetenv("SKWATCH_LOG_SERVICE") })

	cfg, err := NewLoader("", "").WithEnvFile(envFile).Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.LogService)
	assert.Equal(t, "debug", cfg.LogLevel, "process env wins over dotenv")
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	_, err := NewLoader("", "").WithEnvFile(filepath.Join(t.TempDir(), "missing.env")).Load()
	require.Error(t, err)
}

func TestLoad_StrictFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unknown key", "a.yaml", "logLevel: info\nport: 80\n"},
		{"multiple documents", "b.yaml", "logLevel: info\n---\nlogLevel: debug\n"},
		{"bad duration", "c.yaml", "api:\n  readTimeout: soon\n"},
		{"wrong extension", "d.json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := NewLoader(path, "").WithEnvFile("").Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yaml", "")
	cfg, err := NewLoader(path, "").WithEnvFile("").Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, Validate(cfg))

	cfg.LogLevel = "verbose"
	cfg.Watch = true
	cfg.API.ListenAddr = "localhost"
	cfg.API.ShutdownTimeout = 0
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Exporter = "zipkin"
	cfg.Document = filepath.Join(t.TempDir(), "missing.json")

	err := Validate(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, validate.ErrValue))

	var fields []string
	for _, issue := range validate.Issues(err) {
		fields = append(fields, issue.Field)
	}
	assert.Equal(t, []string{
		"logLevel", "document", "api.listenAddr", "api.shutdownTimeout", "telemetry.exporter",
	}, fields)
}

func TestValidate_TelemetryEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		wantErr  bool
	}{
		{"host and port", "collector:4317", false},
		{"ipv6", "[::1]:4318", false},
		{"url scheme", "http://collector:4318", true},
		{"missing port", "collector", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.Telemetry.Enabled = true
			cfg.Telemetry.Endpoint = tt.endpoint

			err := Validate(cfg)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			issues := validate.Issues(err)
			require.NotEmpty(t, issues)
			assert.Equal(t, "telemetry.endpoint", issues[0].Field)
		})
	}
}

func TestValidate_TelemetryIgnoredWhenDisabled(t *testing.T) {
	cfg := Defaults()
	cfg.Telemetry.Endpoint = "http://collector:4318"
	cfg.Telemetry.SamplingRate = 3
	assert.NoError(t, Validate(cfg))
}
