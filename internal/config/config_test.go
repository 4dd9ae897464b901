package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Tiliavir/myhours-cli/internal/config"
	"github.com/Tiliavir/myhours-cli/internal/model"
)

func TestLoadFromFirstRun(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != config.DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Credentials.Backend != config.BackendFile {
		t.Errorf("Backend = %q", cfg.Credentials.Backend)
	}
	if cfg.Credentials.Path != filepath.Join(dir, "my-hours-cli.json") {
		t.Errorf("Path = %q", cfg.Credentials.Path)
	}
	if cfg.Tags.HexColor != config.DefaultHexColor || cfg.Fudge.Marker != config.DefaultMarker {
		t.Errorf("cfg = %+v", cfg)
	}
	if _, err := os.Stat(filepath.Join(dir, "my-hours-cli.yaml")); err != nil {
		t.Errorf("template not written: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	doc := `api:
  base_url: "http://localhost:9999/api"
credentials:
  backend: keyring
fudge:
  marker: "backfill"
  tags: [auto, week]
`
	if err := os.WriteFile(filepath.Join(dir, "my-hours-cli.yaml"), []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:9999/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Credentials.Backend != config.BackendKeyring {
		t.Errorf("Backend = %q", cfg.Credentials.Backend)
	}
	if cfg.Fudge.Marker != "backfill" || len(cfg.Fudge.Tags) != 2 || cfg.Fudge.Tags[1] != "week" {
		t.Errorf("Fudge = %+v", cfg.Fudge)
	}
	if cfg.Tags.HexColor != config.DefaultHexColor {
		t.Errorf("HexColor = %q, want default", cfg.Tags.HexColor)
	}
}

func TestLoadFromEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MYHOURS_API_BASE_URL", "http://env.example/api")

	cfg, err := config.LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != "http://env.example/api" {
		t.Errorf("BaseURL = %q, want env override", cfg.API.BaseURL)
	}
}

func TestLoadFromInvalidBackend(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "my-hours-cli.yaml"), []byte("credentials:\n  backend: cloud\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadFrom(dir); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestLoadFromCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "my-hours-cli.yaml"), []byte("api: [unclosed\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadFrom(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDirPrefersXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	dir, err := config.Dir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/xdg-test" {
		t.Errorf("Dir = %q", dir)
	}
}
