package backups

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/config"
	"github.com/julianstephens/studylit/internal/storage/postgres"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
)

func setupContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	orig := cli.Out
	cli.Out = &out
	t.Cleanup(func() { cli.Out = orig })

	return cli.NewContext(context.Background(), store, config.Config{}, "", "user-1"), &out
}

func TestBackupCreateListRestore(t *testing.T) {
	ctx, out := setupContext(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create: %v", err)
	}
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created:"))

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list: %v", err)
	}
	if !strings.Contains(out.String(), name) {
		t.Errorf("list output missing %s:\n%s", name, out.String())
	}

	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("backup restore: %v", err)
	}
	if !strings.Contains(out.String(), "restored successfully") {
		t.Errorf("restore output = %q", out.String())
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := setupContext(t)
	if err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx); err == nil {
		t.Fatal("expected error for missing backup")
	}
}

func TestResolveBackupPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "studylit-20250101-000000.db")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := resolveBackupPath("studylit-20250101-000000.db", dir)
	if err != nil || got != file {
		t.Errorf("resolveBackupPath(name) = %q, %v", got, err)
	}
	got, err = resolveBackupPath(file, "/elsewhere")
	if err != nil || got != file {
		t.Errorf("resolveBackupPath(abs) = %q, %v", got, err)
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx := cli.NewContext(context.Background(), postgres.New("host=localhost dbname=studylit"), config.Config{}, "", "user-1")
	if err := (&BackupCreateCmd{}).Run(ctx); err != errNotSQLite {
		t.Fatalf("BackupCreateCmd error = %v, want errNotSQLite", err)
	}
}
