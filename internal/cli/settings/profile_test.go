package settings

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/config"
	"github.com/julianstephens/studylit/internal/storage/sqlite"
)

func TestProfileCommands(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	var out bytes.Buffer
	orig := cli.Out
	cli.Out = &out
	defer func() { cli.Out = orig }()
	ctx := cli.NewContext(context.Background(), store, config.Config{}, "", "user-1")

	if err := (&ProfileShowCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "(default)") {
		t.Errorf("fresh profile should show the default hour:\n%s", out.String())
	}

	bad := 24
	if err := (&ProfileSetCmd{RolloverHour: &bad}).Run(ctx); err == nil {
		t.Error("expected error for hour 24")
	}

	hour, name := 5, "kai"
	if err := (&ProfileSetCmd{RolloverHour: &hour, Username: &name}).Run(ctx); err != nil {
		t.Fatalf("profile set: %v", err)
	}
	got, err := ctx.RolloverHour()
	if err != nil || got != 5 {
		t.Fatalf("RolloverHour() = %d, %v", got, err)
	}

	if err := (&ProfileSetCmd{ResetRolloverHour: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := ctx.RolloverHour(); got != 3 {
		t.Errorf("RolloverHour() after reset = %d, want 3", got)
	}

	out.Reset()
	if err := (&ProfileShowCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "kai") {
		t.Errorf("username not shown:\n%s", out.String())
	}
}
