// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// AppConfig is the effective configuration after defaults, file and
// environment have been merged.
type AppConfig struct {
	Version    string
	LogLevel   string
	LogService string

	// Document is the settings document to serve; empty selects the bundled one.
	Document string
	// Watch reloads Document when the file changes.
	Watch bool

	API       APIConfig
	Telemetry TelemetryConfig
}

// APIConfig configures the HTTP surface.
type APIConfig struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	// RateLimit is the per-client request budget per minute; 0 disables it.
	RateLimit     int
	MaxBodyBytes  int
	EnableMetrics bool
}

// TelemetryConfig configures OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled      bool
	Exporter     string // grpc|http
	Endpoint     string
	SamplingRate float64
}

// FileConfig is the on-disk YAML representation. Pointer fields distinguish
// "unset" from the zero value.
type FileConfig struct {
	LogLevel   string              `yaml:"logLevel,omitempty"`
	LogService string              `yaml:"logService,omitempty"`
	Document   string              `yaml:"document,omitempty"`
	Watch      *bool               `yaml:"watch,omitempty"`
	API        APIFileConfig       `yaml:"api,omitempty"`
	Telemetry  TelemetryFileConfig `yaml:"telemetry,omitempty"`
}

// APIFileConfig is the api: block of FileConfig.
type APIFileConfig struct {
	ListenAddr      string `yaml:"listenAddr,omitempty"`
	ReadTimeout     string `yaml:"readTimeout,omitempty"`
	WriteTimeout    string `yaml:"writeTimeout,omitempty"`
	IdleTimeout     string `yaml:"idleTimeout,omitempty"`
	ShutdownTimeout string `yaml:"shutdownTimeout,omitempty"`
	RateLimit       *int   `yaml:"rateLimit,omitempty"`
	MaxBodyBytes    *int   `yaml:"maxBodyBytes,omitempty"`
	EnableMetrics   *bool  `yaml:"enableMetrics,omitempty"`
}

// TelemetryFileConfig is the telemetry: block of FileConfig.
type TelemetryFileConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		LogLevel:   "info",
		LogService: "skwatch",
		API: APIConfig{
			ListenAddr:      ":8088",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			RateLimit:       120,
			MaxBodyBytes:    1 << 20,
			EnableMetrics:   true,
		},
		Telemetry: TelemetryConfig{
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
	}
}
