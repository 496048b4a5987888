// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ManuGH/skwatch/internal/validate"
)

// Validate checks the effective configuration.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.OneOf("logLevel", cfg.LogLevel, validate.LogLevels)
	v.NotEmpty("logService", cfg.LogService)
	if cfg.Document != "" {
		v.File("document", cfg.Document)
	}
	if cfg.Watch && cfg.Document == "" {
		v.AddError("watch", "watch requires a document path", cfg.Watch)
	}

	v.ListenAddr("api.listenAddr", cfg.API.ListenAddr)
	v.NonNegative("api.rateLimit", cfg.API.RateLimit)
	v.Range("api.maxBodyBytes", cfg.API.MaxBodyBytes, 1, 64<<20)
	timeouts := []struct {
		field string
		d     time.Duration
	}{
		{"api.readTimeout", cfg.API.ReadTimeout},
		{"api.writeTimeout", cfg.API.WriteTimeout},
		{"api.idleTimeout", cfg.API.IdleTimeout},
		{"api.shutdownTimeout", cfg.API.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.d <= 0 {
			v.AddError(t.field, "timeout must be positive", t.d.String())
		}
	}

	if cfg.Telemetry.Enabled {
		v.Merge("telemetry", validateTelemetry(cfg.Telemetry))
	}

	return v.Err()
}

func validateTelemetry(t TelemetryConfig) error {
	v := validate.New()
	v.OneOf("telemetry.exporter", t.Exporter, []string{"grpc", "http"})
	v.NotEmpty("telemetry.endpoint", t.Endpoint)
	if strings.TrimSpace(t.Endpoint) != "" {
		v.Custom("telemetry.endpoint", t.Endpoint, collectorEndpoint)
	}
	v.RangeFloat("telemetry.samplingRate", t.SamplingRate, 0, 1)
	return v.Err()
}

// collectorEndpoint accepts the host:port form the OTLP exporters expect.
func collectorEndpoint(value interface{}) error {
	s, _ := value.(string)
	if strings.Contains(s, "://") {
		return errors.New("endpoint must be host:port without a URL scheme")
	}
	if _, _, err := net.SplitHostPort(s); err != nil {
		return fmt.Errorf("endpoint must be host:port: %w", err)
	}
	return nil
}
