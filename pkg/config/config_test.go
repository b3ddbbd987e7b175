package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(lookupFrom(nil), writeEnvFile(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvFileThenEnvironment(t *testing.T) {
	file := writeEnvFile(t, `
JOBFORM_BASE_URL=https://ci.example.com/
JOBFORM_ENV=staging
JOBFORM_ADDR=:9000
JOBFORM_SHUTDOWN_GRACE=10s
`)
	cfg, err := load(lookupFrom(map[string]string{
		"JOBFORM_ENV":        "qa",
		"JOBFORM_LOG_FORMAT": "json",
	}), file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.BaseURL != "https://ci.example.com" {
		t.Fatalf("base url = %q", cfg.BaseURL)
	}
	if cfg.Env != "qa" {
		t.Fatalf("process env must win over the file, env = %q", cfg.Env)
	}
	if cfg.Addr != ":9000" || cfg.ShutdownGrace != 10*time.Second || cfg.LogFormat != "json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"relative url":  {"JOBFORM_BASE_URL": "jenkins.internal"},
		"ftp url":       {"JOBFORM_BASE_URL": "ftp://jenkins.internal"},
		"query in url":  {"JOBFORM_BASE_URL": "http://jenkins.internal?x=1"},
		"bad format":    {"JOBFORM_LOG_FORMAT": "xml"},
		"bad duration":  {"JOBFORM_SHUTDOWN_GRACE": "soon"},
		"variant alone": {"JOBFORM_THEME_VARIANT": "dark"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(lookupFrom(env), writeEnvFile(t, ""))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := load(lookupFrom(nil), filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing env file")
	}
}
