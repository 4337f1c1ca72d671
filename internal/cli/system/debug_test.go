package system

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/constants"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/storage"
	"github.com/julianstephens/daypilot/internal/storage/sqlite"
)

func setupTestDebugDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store: store,
		Out:   out,
	}

	cleanup := func() {
		store.Close()
	}

	return ctx, out, cleanup
}

func TestDebugDBPathCmd(t *testing.T) {
	ctx, out, cleanup := setupTestDebugDB(t)
	defer cleanup()

	cmd := &DebugDBPathCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("debug db-path command failed: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["backend"] != "sqlite" || got["path"] != ctx.Store.GetConfigPath() {
		t.Errorf("unexpected output: %v", got)
	}
}

func TestDebugDBPathCmd_Memory(t *testing.T) {
	out := &bytes.Buffer{}
	ctx := &cli.Context{Store: storage.NewMemoryStore(0), Out: out}

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug db-path command failed: %v", err)
	}
	if !strings.Contains(out.String(), `"backend": "memory"`) {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestDebugDumpEventCmd(t *testing.T) {
	ctx, out, cleanup := setupTestDebugDB(t)
	defer cleanup()

	event := models.Event{
		ID:       "test-event-id",
		Title:    "Test Event",
		Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local),
		Time:     "09:30",
		Category: models.CategoryHealth,
	}
	if err := ctx.Store.AddEvent(event); err != nil {
		t.Fatalf("failed to add test event: %v", err)
	}

	if err := (&DebugDumpEventCmd{ID: "test-event-id"}).Run(ctx); err != nil {
		t.Fatalf("debug dump-event command failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["date"] != "2024-03-05" || got["time"] != "09:30" || got["category"] != "health" {
		t.Errorf("unexpected dump: %v", got)
	}
}

func TestDebugDumpEventCmd_NotFound(t *testing.T) {
	ctx, _, cleanup := setupTestDebugDB(t)
	defer cleanup()

	err := (&DebugDumpEventCmd{ID: "non-existent-id"}).Run(ctx)
	if err == nil {
		t.Fatal("expected error for non-existent event")
	}
	if !strings.Contains(err.Error(), "event not found") {
		t.Errorf("expected 'event not found' error, got: %v", err)
	}
}

func TestDebugDumpEventsCmd_Empty(t *testing.T) {
	ctx, out, cleanup := setupTestDebugDB(t)
	defer cleanup()

	if err := (&DebugDumpEventsCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug dump-events command failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Errorf("expected empty JSON array, got %q", out.String())
	}
}

func TestDebugDumpSettingsCmd(t *testing.T) {
	ctx, out, cleanup := setupTestDebugDB(t)
	defer cleanup()

	record := `{"timeFormat":"24h","weekStartDay":7,"theme":"dark"}`
	if err := ctx.Store.Set(constants.SettingsStorageKey, []byte(record)); err != nil {
		t.Fatalf("failed to store settings: %v", err)
	}

	if err := (&DebugDumpSettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug dump-settings command failed: %v", err)
	}

	var got struct {
		Stored    map[string]any `json:"stored"`
		Effective map[string]any `json:"effective"`
		Ignored   []string       `json:"ignored"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Stored["theme"] != "dark" {
		t.Errorf("expected raw record in output, got %v", got.Stored)
	}
	if got.Effective["timeFormat"] != "24h" {
		t.Errorf("expected merged time format, got %v", got.Effective["timeFormat"])
	}
	if got.Effective["weekStartDay"] != float64(0) {
		t.Errorf("expected invalid week start to fall back, got %v", got.Effective["weekStartDay"])
	}
	if len(got.Ignored) != 1 {
		t.Errorf("expected one ignored value, got %v", got.Ignored)
	}
}

func TestDebugDumpSettingsCmd_Unparsable(t *testing.T) {
	ctx, out, cleanup := setupTestDebugDB(t)
	defer cleanup()

	if err := ctx.Store.Set(constants.SettingsStorageKey, []byte("not json")); err != nil {
		t.Fatalf("failed to store settings: %v", err)
	}
	if err := (&DebugDumpSettingsCmd{}).Run(ctx); err != nil {
		t.Fatalf("debug dump-settings command failed: %v", err)
	}
	if !strings.Contains(out.String(), `"stored": "not json"`) {
		t.Errorf("expected unparsable record quoted, got %s", out.String())
	}
}
