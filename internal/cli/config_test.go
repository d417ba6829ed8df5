package cli

import (
	"context"
	"testing"

	"github.com/faizmokh/jejak/internal/config"
)

func TestConfigCommandPrintsDefaults(t *testing.T) {
	mgr := newTempManager(t)

	out := executeCommand(t, newRootCommand(context.Background(), mgr, fixedClock("2025-11-21 12:00")), "config")
	assertContains(t, out, mgr.ConfigPath())
	assertContains(t, out, "backups: true")
	assertContains(t, out, "backup_limit: 10")
	assertContains(t, out, "day_end:")
	assertContains(t, out, "23:59")
}

func TestConfigCommandInit(t *testing.T) {
	ctx := context.Background()
	mgr := newTempManager(t)
	now := fixedClock("2025-11-21 12:00")

	out := executeCommand(t, newRootCommand(ctx, mgr, now), "config", "--init")
	assertContains(t, out, "Wrote "+mgr.ConfigPath())

	cfg, err := config.Load(mgr.ConfigPath())
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Fatalf("written config = %+v, want defaults", cfg)
	}

	if _, err := executeCommandErr(t, newRootCommand(ctx, mgr, now), "config", "--init"); err == nil {
		t.Fatalf("expected second --init to refuse overwriting")
	}
}
