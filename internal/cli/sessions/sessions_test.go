package sessions

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

func TestSessionLogAndTotals(t *testing.T) {
	ctx, out := setupContext(t)

	for _, m := range []int{30, 45} {
		if err := (&SessionLogCmd{Minutes: m}).Run(ctx); err != nil {
			t.Fatalf("session log: %v", err)
		}
	}
	if err := (&SessionLogCmd{Minutes: 0}).Run(ctx); err == nil {
		t.Error("expected error for zero minutes")
	}

	out.Reset()
	if err := (&SessionTotalsCmd{}).Run(ctx); err != nil {
		t.Fatalf("session totals: %v", err)
	}
	if !strings.Contains(out.String(), "total       1h15m") {
		t.Errorf("totals output:\n%s", out.String())
	}

	out.Reset()
	if err := (&StatsCmd{}).Run(ctx); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out.String(), "This week:        1h15m") {
		t.Errorf("stats output:\n%s", out.String())
	}
}

func TestSessionRangeRejectsReversed(t *testing.T) {
	ctx, _ := setupContext(t)
	err := (&SessionListCmd{Range: Range{From: "2025-06-05", To: "2025-06-01"}}).Run(ctx)
	if err == nil {
		t.Fatal("expected error for reversed range")
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := map[int]string{0: "0m", 59: "59m", 60: "1h00m", 135: "2h15m"}
	for in, want := range tests {
		if got := formatMinutes(in); got != want {
			t.Errorf("formatMinutes(%d) = %q, want %q", in, got, want)
		}
	}
}
