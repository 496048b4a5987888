// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"time"
)

func mergeFileConfig(dst *AppConfig, src *FileConfig) error {
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogService != "" {
		dst.LogService = src.LogService
	}
	if src.Document != "" {
		dst.Document = expandEnv(src.Document)
	}
	if src.Watch != nil {
		dst.Watch = *src.Watch
	}

	if src.API.ListenAddr != "" {
		dst.API.ListenAddr = expandEnv(src.API.ListenAddr)
	}
	durations := []struct {
		field string
		raw   string
		dst   *time.Duration
	}{
		{"api.readTimeout", src.API.ReadTimeout, &dst.API.ReadTimeout},
		{"api.writeTimeout", src.API.WriteTimeout, &dst.API.WriteTimeout},
		{"api.idleTimeout", src.API.IdleTimeout, &dst.API.IdleTimeout},
		{"api.shutdownTimeout", src.API.ShutdownTimeout, &dst.API.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", d.field, err)
		}
		*d.dst = v
	}
	if src.API.RateLimit != nil {
		dst.API.RateLimit = *src.API.RateLimit
	}
	if src.API.MaxBodyBytes != nil {
		dst.API.MaxBodyBytes = *src.API.MaxBodyBytes
	}
	if src.API.EnableMetrics != nil {
		dst.API.EnableMetrics = *src.API.EnableMetrics
	}

	if src.Telemetry.Enabled != nil {
		dst.Telemetry.Enabled = *src.Telemetry.Enabled
	}
	if src.Telemetry.Exporter != "" {
		dst.Telemetry.Exporter = src.Telemetry.Exporter
	}
	if src.Telemetry.Endpoint != "" {
		dst.Telemetry.Endpoint = expandEnv(src.Telemetry.Endpoint)
	}
	if src.Telemetry.SamplingRate != nil {
		dst.Telemetry.SamplingRate = *src.Telemetry.SamplingRate
	}
	return nil
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.LogLevel = l.envString(EnvPrefix+"LOG_LEVEL", cfg.LogLevel)
	cfg.LogService = l.envString(EnvPrefix+"LOG_SERVICE", cfg.LogService)
	cfg.Document = l.envString(EnvPrefix+"DOCUMENT", cfg.Document)
	cfg.Watch = l.envBool(EnvPrefix+"WATCH", cfg.Watch)

	cfg.API.ListenAddr = l.envString(EnvPrefix+"LISTEN", cfg.API.ListenAddr)
	cfg.API.ReadTimeout = l.envDuration(EnvPrefix+"READ_TIMEOUT", cfg.API.ReadTimeout)
	cfg.API.WriteTimeout = l.envDuration(EnvPrefix+"WRITE_TIMEOUT", cfg.API.WriteTimeout)
	cfg.API.IdleTimeout = l.envDuration(EnvPrefix+"IDLE_TIMEOUT", cfg.API.IdleTimeout)
	cfg.API.ShutdownTimeout = l.envDuration(EnvPrefix+"SHUTDOWN_TIMEOUT", cfg.API.ShutdownTimeout)
	cfg.API.RateLimit = l.envInt(EnvPrefix+"RATE_LIMIT", cfg.API.RateLimit)
	cfg.API.MaxBodyBytes = l.envInt(EnvPrefix+"MAX_BODY_BYTES", cfg.API.MaxBodyBytes)
	cfg.API.EnableMetrics = l.envBool(EnvPrefix+"METRICS", cfg.API.EnableMetrics)

	cfg.Telemetry.Enabled = l.envBool(EnvPrefix+"TELEMETRY_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = l.envString(EnvPrefix+"TELEMETRY_EXPORTER", cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = l.envString(EnvPrefix+"TELEMETRY_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = l.envFloat(EnvPrefix+"TELEMETRY_SAMPLING_RATE", cfg.Telemetry.SamplingRate)
}
