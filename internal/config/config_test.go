package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/studylit/internal/constants"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate() error: %v", err)
	}
	if cfg.DB != constants.DefaultDBPath {
		t.Errorf("DB = %q, want %q", cfg.DB, constants.DefaultDBPath)
	}
	if cfg.UserID == "" {
		t.Error("expected a generated user id")
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("second LoadOrCreate() error: %v", err)
	}
	if again.UserID != cfg.UserID {
		t.Errorf("user id changed between loads: %q != %q", again.UserID, cfg.UserID)
	}
}

func TestLoadOrCreateFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("debug = true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate() error: %v", err)
	}
	if !cfg.Debug {
		t.Error("Debug should be read from file")
	}
	if cfg.DB == "" || cfg.UserID == "" {
		t.Errorf("missing fields not filled: %+v", cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), cfg.UserID) {
		t.Error("filled user id was not persisted")
	}
}

func TestLoadOrCreateRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("db = [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/x/y.db"); got != filepath.Join(home, "x/y.db") {
		t.Errorf("ExpandPath() = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath() changed absolute path: %q", got)
	}
}

func TestReadServerEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STUDYLIT_ENV", "dev")
	t.Setenv("STUDYLIT_HTTP_PORT", "9090")
	t.Setenv("STUDYLIT_HTTP_SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("STUDYLIT_JWT_SECRET", "secret")

	cfg, err := ReadServerEnv()
	if err != nil {
		t.Fatalf("ReadServerEnv() error: %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.ShutdownTimeout != 2*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.JWTSecret != "secret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}

func TestReadServerEnvRejectsUnknownEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STUDYLIT_ENV", "staging")

	if _, err := ReadServerEnv(); err == nil {
		t.Error("expected error for unknown env")
	}
}

func TestLoadOrCreateKeepsFilledUserID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("db = \"/tmp/x.db\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	first, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("LoadOrCreate() error: %v", err)
	}
	second, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("second LoadOrCreate() error: %v", err)
	}
	if first.UserID == "" || first.UserID != second.UserID {
		t.Errorf("user id not stable across loads: %q then %q", first.UserID, second.UserID)
	}
	if second.DB != "/tmp/x.db" {
		t.Errorf("DB = %q, want the configured path", second.DB)
	}
}
