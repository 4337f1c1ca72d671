package system

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/config"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/notifier"
	"github.com/julianstephens/daypilot/internal/storage/sqlite"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeSender) Notify(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

var notifyNow = time.Date(2024, time.March, 5, 14, 20, 30, 0, time.Local)

func setupNotifyTest(t *testing.T) (*cli.Context, *bytes.Buffer, *fakeSender) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	fake := &fakeSender{}
	prevSender, prevClock := newSender, clock
	newSender = func() sender { return fake }
	clock = func() time.Time { return notifyNow }
	t.Cleanup(func() {
		newSender = prevSender
		clock = prevClock
	})

	out := &bytes.Buffer{}
	cfg := config.DefaultConfig()
	cfg.Notify.LeadMinutes = 10
	return &cli.Context{Store: store, Out: out, Config: cfg}, out, fake
}

func addEvent(t *testing.T, ctx *cli.Context, title, at string) {
	t.Helper()
	e := models.Event{
		ID:       title,
		Title:    title,
		Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local),
		Time:     at,
		Category: models.CategoryWork,
	}
	if err := ctx.Store.AddEvent(e); err != nil {
		t.Fatalf("failed to add event: %v", err)
	}
}

func TestNotifyCmd_SendsDueReminders(t *testing.T) {
	ctx, _, fake := setupNotifyTest(t)
	addEvent(t, ctx, "Dentist", "14:30")
	addEvent(t, ctx, "Later", "15:00")

	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	got := fake.messages()
	if len(got) != 1 || got[0] != "Dentist in 10 min (2:30 PM)" {
		t.Errorf("unexpected notifications: %v", got)
	}
}

func TestNotifyCmd_DryRun(t *testing.T) {
	ctx, out, fake := setupNotifyTest(t)
	addEvent(t, ctx, "Dentist", "14:20")

	lead := 0
	if err := (&NotifyCmd{DryRun: true, Lead: &lead}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	if !strings.Contains(out.String(), "[DryRun] Dentist now (2:20 PM)") {
		t.Errorf("unexpected dry run output: %q", out.String())
	}
	if len(fake.messages()) != 0 {
		t.Error("dry run should not send notifications")
	}
}

func TestNotifyCmd_Disabled(t *testing.T) {
	ctx, out, fake := setupNotifyTest(t)
	addEvent(t, ctx, "Dentist", "14:30")
	if err := ctx.Settings().SetField("notifications", false); err != nil {
		t.Fatalf("failed to disable notifications: %v", err)
	}

	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if !strings.Contains(out.String(), "Notifications are disabled") {
		t.Errorf("expected disabled message, got %q", out.String())
	}
	if len(fake.messages()) != 0 {
		t.Error("expected no notifications when disabled")
	}
}

func TestNotifyCmd_TrayNotRunning(t *testing.T) {
	ctx, _, fake := setupNotifyTest(t)
	addEvent(t, ctx, "Dentist", "14:30")
	fake.err = notifier.ErrTrayNotRunning

	if err := (&NotifyCmd{}).Run(ctx); err == nil {
		t.Error("expected tray error to be returned")
	}
}

func TestNotifyCmd_NegativeLead(t *testing.T) {
	ctx, _, _ := setupNotifyTest(t)
	lead := -5
	if err := (&NotifyCmd{Lead: &lead}).Run(ctx); err == nil {
		t.Error("expected error for negative lead")
	}
}

func TestNotifyCmd_CheckDeduplicates(t *testing.T) {
	ctx, _, fake := setupNotifyTest(t)
	addEvent(t, ctx, "Dentist", "14:30")

	cmd := &NotifyCmd{}
	tracker := notifier.NewTracker()
	for i := 0; i < 3; i++ {
		if _, err := cmd.check(ctx, tracker, 10); err != nil {
			t.Fatalf("check failed: %v", err)
		}
	}

	if got := fake.messages(); len(got) != 1 {
		t.Errorf("expected a single reminder, got %v", got)
	}
}

func TestNotifyCmd_WatchInvalidSchedule(t *testing.T) {
	ctx, _, _ := setupNotifyTest(t)
	cfg := config.NotifyConfig{LeadMinutes: 10, Schedule: "not a schedule"}

	if err := (&NotifyCmd{}).watch(context.Background(), ctx, cfg); err == nil {
		t.Error("expected error for invalid cron schedule")
	}
}

func TestNotifyCmd_Watch(t *testing.T) {
	ctx, _, fake := setupNotifyTest(t)
	cfg := config.NotifyConfig{LeadMinutes: 10, Schedule: "@every 1s"}

	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- (&NotifyCmd{}).watch(runCtx, ctx, cfg)
	}()

	// Added after the watcher starts; each tick reloads from storage.
	addEvent(t, ctx, "Dentist", "14:30")

	deadline := time.After(5 * time.Second)
	for len(fake.messages()) == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("timed out waiting for a reminder")
		case <-time.After(50 * time.Millisecond):
		}
	}
	// Give the scheduler another tick to prove de-duplication.
	time.Sleep(1200 * time.Millisecond)
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("watch returned error: %v", err)
	}
	if got := fake.messages(); len(got) != 1 {
		t.Errorf("expected exactly one reminder across ticks, got %v", got)
	}
}
