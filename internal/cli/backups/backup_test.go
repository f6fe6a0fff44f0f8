package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/config"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/storage"
	"github.com/julianstephens/elevate/internal/storage/sqlite"
)

func setupTestContext(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	prefs := models.DefaultPreferences()
	prefs.Timezone = "UTC"
	if err := storage.NewRecordStore(store).SavePreferences(prefs); err != nil {
		t.Fatalf("failed to save preferences: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:  store,
		Config: config.Default(),
		Out:    out,
		Clock:  func() time.Time { return time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC) },
	}
	ctx.Open()
	return ctx, out
}

func TestBackupCreateListRestore(t *testing.T) {
	ctx, out := setupTestContext(t, sqlite.NewStore(filepath.Join(t.TempDir(), "elevate.db")))
	ctx.Registry.Add(models.Habit{Name: "Read", Category: models.CategoryLearning, TargetValue: 1, IsActive: true})

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %s", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: elevate-") {
		t.Errorf("unexpected output: %s", out.String())
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	backups, err := mgr.List()
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d (%v)", len(backups), err)
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") || !strings.Contains(out.String(), filepath.Base(backups[0].Path)) {
		t.Errorf("unexpected listing:\n%s", out.String())
	}

	out.Reset()
	restore := &BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}
	if err := restore.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Database restored successfully!") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestRestoreMissingFile(t *testing.T) {
	ctx, _ := setupTestContext(t, sqlite.NewStore(filepath.Join(t.TempDir(), "elevate.db")))
	if err := (&BackupRestoreCmd{BackupFile: "elevate-19990101-000000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for a missing backup")
	}
}

func TestBackupsRequireSQLite(t *testing.T) {
	ctx, _ := setupTestContext(t, storage.NewJSONStore(filepath.Join(t.TempDir(), "elevate.json")))

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected error creating a backup of a JSON store")
	}
	if err := (&BackupListCmd{}).Run(ctx); err == nil {
		t.Error("expected error listing backups of a JSON store")
	}
}
