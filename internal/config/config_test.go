package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8001 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8001)
	}
	if cfg.Hospital.BaseURL != "https://hospital-directory.onrender.com" {
		t.Errorf("Hospital.BaseURL = %q, want default directory URL", cfg.Hospital.BaseURL)
	}
	if cfg.Hospital.Timeout != 10*time.Second {
		t.Errorf("Hospital.Timeout = %v, want %v", cfg.Hospital.Timeout, 10*time.Second)
	}
	if cfg.Upload.MaxRows != 20 {
		t.Errorf("Upload.MaxRows = %d, want %d", cfg.Upload.MaxRows, 20)
	}
	if cfg.Upload.Concurrency != 5 {
		t.Errorf("Upload.Concurrency = %d, want %d", cfg.Upload.Concurrency, 5)
	}
	if cfg.Upload.MaxConcurrent != 2 {
		t.Errorf("Upload.MaxConcurrent = %d, want %d", cfg.Upload.MaxConcurrent, 2)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("UPLOAD_MAX_ROWS", "50")
	os.Setenv("UPLOAD_CONCURRENCY", "8")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("UPLOAD_MAX_ROWS")
		os.Unsetenv("UPLOAD_CONCURRENCY")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Upload.MaxRows != 50 {
		t.Errorf("Upload.MaxRows = %d, want %d", cfg.Upload.MaxRows, 50)
	}
	if cfg.Upload.Concurrency != 8 {
		t.Errorf("Upload.Concurrency = %d, want %d", cfg.Upload.Concurrency, 8)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	// Test that HOSPITAL_BASE_URL works as fallback
	os.Setenv("HOSPITAL_BASE_URL", "http://localhost:9000")
	defer os.Unsetenv("HOSPITAL_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Hospital.BaseURL != "http://localhost:9000" {
		t.Errorf("Hospital.BaseURL = %q, want %q", cfg.Hospital.BaseURL, "http://localhost:9000")
	}
}

func TestLoad_Duration(t *testing.T) {
	os.Setenv("HOSPITAL_TIMEOUT", "45s")
	os.Setenv("UPLOAD_MAX_WAIT_TIME", "1m30s")
	defer func() {
		os.Unsetenv("HOSPITAL_TIMEOUT")
		os.Unsetenv("UPLOAD_MAX_WAIT_TIME")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Hospital.Timeout != 45*time.Second {
		t.Errorf("Hospital.Timeout = %v, want %v", cfg.Hospital.Timeout, 45*time.Second)
	}
	if cfg.Upload.MaxWaitTime != 90*time.Second {
		t.Errorf("Upload.MaxWaitTime = %v, want %v", cfg.Upload.MaxWaitTime, 90*time.Second)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com ,https://c.example.com")
	defer os.Unsetenv("CORS_ALLOWED_ORIGINS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}
	if len(cfg.CORS.AllowedOrigins) != len(expected) {
		t.Fatalf("AllowedOrigins length = %d, want %d", len(cfg.CORS.AllowedOrigins), len(expected))
	}
	for i, v := range expected {
		if cfg.CORS.AllowedOrigins[i] != v {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.CORS.AllowedOrigins[i], v)
		}
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error should mention SERVER_PORT: %v", err)
	}
}

func TestValidate_RelativeBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Hospital.BaseURL = "hospital-directory.onrender.com"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for relative base URL")
	}
	if !strings.Contains(err.Error(), "HOSPITAL_API_BASE") {
		t.Errorf("error should mention HOSPITAL_API_BASE: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("error should mention LOG_LEVEL: %v", err)
	}
}

func TestValidate_NonPositiveRowLimit(t *testing.T) {
	cfg := validConfig()
	cfg.Upload.MaxRows = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for zero row limit")
	}
	if !strings.Contains(err.Error(), "UPLOAD_MAX_ROWS") {
		t.Errorf("error should mention UPLOAD_MAX_ROWS: %v", err)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8001, ":8001"},
		{"0.0.0.0", 8001, "0.0.0.0:8001"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"localhost", 443, "localhost:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		got := cfg.Addr()
		if got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8001, ShutdownTimeout: time.Second},
		Hospital: HospitalConfig{
			BaseURL: "https://hospital-directory.onrender.com",
			Timeout: 10 * time.Second,
		},
		Upload: UploadConfig{
			MaxFileSize:   1 << 20,
			MaxRows:       20,
			Concurrency:   5,
			MaxConcurrent: 2,
			MaxWaitTime:   30 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}
