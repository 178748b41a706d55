package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 0},
		Backend: BackendConfig{BaseURL: "http://localhost:8108"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingBackendURL(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing backend base_url")
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Backend: BackendConfig{BaseURL: "http://localhost:8108", APIKey: "test-key"},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Backend.TimeoutSec != 10 {
		t.Errorf("expected Backend.TimeoutSec=10, got %d", cfg.Backend.TimeoutSec)
	}
	if cfg.Cache.TTLSec != 120 {
		t.Errorf("expected Cache.TTLSec=120, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Cache.MaxSize != 100 {
		t.Errorf("expected Cache.MaxSize=100, got %d", cfg.Cache.MaxSize)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Backend: BackendConfig{TimeoutSec: 3},
		Cache:   CacheConfig{TTLSec: 300, MaxSize: 1000},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Backend.TimeoutSec != 3 {
		t.Errorf("expected Backend.TimeoutSec=3, got %d", cfg.Backend.TimeoutSec)
	}
	if cfg.Cache.TTLSec != 300 {
		t.Errorf("expected Cache.TTLSec=300, got %d", cfg.Cache.TTLSec)
	}
	if cfg.Cache.MaxSize != 1000 {
		t.Errorf("expected Cache.MaxSize=1000, got %d", cfg.Cache.MaxSize)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("FEDSEARCH_TEST_KEY", "secret")

	in := []byte("api_key: ${FEDSEARCH_TEST_KEY}\nurl: ${FEDSEARCH_TEST_URL:-http://localhost:8108}\n")
	out := string(expandEnvVars(in))

	want := "api_key: secret\nurl: http://localhost:8108\n"
	if out != want {
		t.Errorf("unexpected expansion:\ngot:  %q\nwant: %q", out, want)
	}
}
