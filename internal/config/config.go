// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Hospital HospitalConfig
	Upload   UploadConfig
	Logging  LoggingConfig
	CORS     CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8001)
	Port int `env:"SERVER_PORT" default:"8001"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 120s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"120s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 90s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"90s"`
}

// HospitalConfig holds settings for the upstream hospital directory API.
type HospitalConfig struct {
	// BaseURL is the root URL of the hospital directory service.
	// Supports both HOSPITAL_API_BASE and HOSPITAL_BASE_URL env vars for compatibility.
	BaseURL string `env:"HOSPITAL_API_BASE" envAlt:"HOSPITAL_BASE_URL" default:"https://hospital-directory.onrender.com"`

	// Timeout is the per-call timeout for requests to the directory (default: 10s)
	Timeout time.Duration `env:"HOSPITAL_TIMEOUT" default:"10s"`
}

// UploadConfig holds CSV bulk upload processing settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 1MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"1048576"`

	// MaxRows is the maximum number of data rows per upload (default: 20)
	MaxRows int `env:"UPLOAD_MAX_ROWS" default:"20"`

	// Concurrency is the maximum number of in-flight hospital creation
	// calls within a single upload (default: 5)
	Concurrency int `env:"UPLOAD_CONCURRENCY" default:"5"`

	// MaxConcurrent is the maximum number of parallel bulk uploads (default: 2)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"2"`

	// MaxWaitTime is how long to wait for an upload slot (default: 30s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"30s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// CORSConfig holds cross-origin settings for the JSON API.
type CORSConfig struct {
	// AllowedOrigins is a comma-separated list of origins (default: *)
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
