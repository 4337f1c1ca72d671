package system

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/storage"
	"github.com/julianstephens/daypilot/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)

	ctx := &cli.Context{
		Store: store,
		Out:   io.Discard,
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, dbPath, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}

	if err := ctx.Settings().SetField(constants.SettingTimeFormat, models.TimeFormat24h); err != nil {
		t.Fatalf("failed to save modified settings: %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatalf("database file was not recreated after force")
	}
	if _, err := ctx.Store.Get(constants.SettingsStorageKey); err != storage.ErrNotFound {
		t.Errorf("expected settings record to be gone after force, got %v", err)
	}

	// The wiped database is backed up first
	entries, err := os.ReadDir(filepath.Join(filepath.Dir(dbPath), constants.BackupDirName))
	if err != nil || len(entries) != 1 {
		t.Errorf("expected one backup before reset, got %d (%v)", len(entries), err)
	}
}

func TestInitCmd_ForceWithNonExistentDatabase(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatalf("database file should not exist initially")
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("init with force on non-existent database failed: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created")
	}
}

func TestInitCmd_ForceRejectsSameSource(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("expected error when source and destination are the same")
	}
}

func TestInitCmd_ForceRequiresSQLite(t *testing.T) {
	ctx := &cli.Context{Store: storage.NewMemoryStore(0), Out: io.Discard}
	if err := (&InitCmd{Force: true}).Run(ctx); err == nil {
		t.Error("expected --force to be rejected for in-memory storage")
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "source.json")
	source := storage.NewJSONStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatalf("failed to init source: %v", err)
	}
	event := models.Event{
		ID:       "evt-1",
		Title:    "Imported",
		Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local),
		Time:     "08:15",
		Category: models.CategoryOther,
	}
	if err := source.AddEvent(event); err != nil {
		t.Fatalf("failed to add event: %v", err)
	}
	if err := source.Set(constants.SettingsStorageKey, []byte(`{"dateFormat":"dd/MM/yyyy"}`)); err != nil {
		t.Fatalf("failed to store settings: %v", err)
	}

	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	got, err := ctx.Store.GetEvent("evt-1")
	if err != nil {
		t.Fatalf("expected copied event: %v", err)
	}
	if got.Title != "Imported" || got.Time != "08:15" {
		t.Errorf("unexpected copied event: %+v", got)
	}
	if ctx.Settings().Get().DateFormat != models.DateFormatEU {
		t.Errorf("expected copied date format, got %s", ctx.Settings().Get().DateFormat)
	}
}
