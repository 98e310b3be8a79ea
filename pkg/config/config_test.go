package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `server:
  url: https://chat.example.com
  user_id: u1
  token: secret
  username: joan
storage:
  path: /tmp/quill-test.db
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.URL != "https://chat.example.com" || cfg.Server.Username != "joan" {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Storage.Path != "/tmp/quill-test.db" {
		t.Fatalf("unexpected storage path: %q", cfg.Storage.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path == "" {
		t.Fatal("expected default storage path")
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected default log level: %q", cfg.Log.Level)
	}
}

func TestValidateRequiresCredentials(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty server url")
	}
	cfg.Server.URL = "https://chat.example.com"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing user id")
	}
	cfg.Server.UserID = "u1"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing token")
	}
	cfg.Server.Token = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
