package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`api_url: http://example.test/api/stock/
columns:
  - key: id
    label: ID
  - key: title
    label: Title
    detail_link: true
csrf:
  header: X-CSRF-TOKEN
  token: abc
features:
  export: false
timeout: 3s
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://example.test/api/stock" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIURL)
	}
	if len(cfg.Columns) != 2 || !cfg.Columns[1].DetailLink || cfg.Columns[0].DetailLink {
		t.Fatalf("unexpected columns: %+v", cfg.Columns)
	}
	if !cfg.CSRF.Enabled() {
		t.Fatalf("expected csrf pair, got %+v", cfg.CSRF)
	}
	if cfg.Features.Export {
		t.Fatal("expected export disabled")
	}
	if !cfg.Features.Search || !cfg.Features.Delete {
		t.Fatalf("expected untouched features to default on: %+v", cfg.Features)
	}
	if cfg.Timeout != 3*time.Second {
		t.Fatalf("timeout = %v", cfg.Timeout)
	}
	if cfg.DetailFields.RegDate != "regDate" {
		t.Fatalf("expected default detail field, got %q", cfg.DetailFields.RegDate)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("UNIFIEDLIST_API_URL", "http://env.test/api/x")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://env.test/api/x" {
		t.Fatalf("expected api url from env, got %q", cfg.APIURL)
	}
	if len(cfg.Columns) == 0 {
		t.Fatal("expected default columns")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.CSRF = CSRF{Header: "X-CSRF-TOKEN", Token: "t"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.APIURL != cfg.APIURL || len(got.Columns) != len(cfg.Columns) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.CSRF != cfg.CSRF {
		t.Fatalf("csrf = %+v, want %+v", got.CSRF, cfg.CSRF)
	}
}

func TestSaveRequiresAPIURL(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "c.yaml"), Config{}); err == nil {
		t.Fatal("expected error for empty api_url")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{APIURL: "http://x", Columns: []Column{{Key: "id"}}}, false},
		{"no url", Config{Columns: []Column{{Key: "id"}}}, true},
		{"no columns", Config{APIURL: "http://x"}, true},
		{"blank key", Config{APIURL: "http://x", Columns: []Column{{Key: " "}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	want := filepath.Join(dir, "unifiedlist", "config.yaml")
	if got := DefaultPath(); got != want {
		t.Fatalf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestDefaultPathUsesHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", dir)
	want := filepath.Join(dir, ".config", "unifiedlist", "config.yaml")
	if got := DefaultPath(); got != want {
		t.Fatalf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestLoadWithFlagsOverridesOnlySetFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api_url: http://file.test/api\nlog:\n  level: debug\n"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	fs.String("log-level", "", "")
	fs.String("log-file", "", "")
	if err := fs.Parse([]string{"--api-url", "http://flag.test/api/"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := LoadWithFlags(path, fs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://flag.test/api" {
		t.Fatalf("flag must win: %q", cfg.APIURL)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unset flag must not shadow the file: %q", cfg.Log.Level)
	}
}
