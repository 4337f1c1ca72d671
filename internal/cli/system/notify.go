package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/config"
	"github.com/julianstephens/daypilot/internal/logger"
	"github.com/julianstephens/daypilot/internal/notifier"
)

type sender interface {
	Notify(text string) error
}

var (
	newSender = func() sender { return notifier.New() }
	clock     = time.Now
)

type NotifyCmd struct {
	DryRun bool   `help:"Print notifications to stdout instead of sending them."`
	Watch  bool   `help:"Keep running and check for reminders on the configured schedule."`
	Lead   *int   `help:"Minutes before an event to remind (overrides config)."`
	Cron   string `help:"Cron schedule for --watch (overrides config)."`
}

func (c *NotifyCmd) settings(ctx *cli.Context) config.NotifyConfig {
	cfg := config.DefaultConfig().Notify
	if ctx.Config != nil {
		cfg = ctx.Config.Notify
	}
	if c.Lead != nil {
		cfg.LeadMinutes = *c.Lead
	}
	if c.Cron != "" {
		cfg.Schedule = c.Cron
	}
	return cfg
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	cfg := c.settings(ctx)
	if cfg.LeadMinutes < 0 {
		return fmt.Errorf("lead must not be negative, got %d", cfg.LeadMinutes)
	}

	if !c.Watch {
		_, err := c.check(ctx, nil, cfg.LeadMinutes)
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(sigCtx, ctx, cfg)
}

func (c *NotifyCmd) watch(runCtx context.Context, ctx *cli.Context, cfg config.NotifyConfig) error {
	tracker := notifier.NewTracker()

	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.Schedule, func() {
		// Pick up edits made by other processes since the last tick.
		ctx.Reload()
		if _, err := c.check(ctx, tracker, cfg.LeadMinutes); err != nil {
			logger.Warn("Reminder check failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid notify schedule %q: %w", cfg.Schedule, err)
	}

	logger.Info("Watching for reminders", "schedule", cfg.Schedule, "lead_minutes", cfg.LeadMinutes)
	ctx.Printf("Watching for reminders (%s, %d min lead). Press Ctrl+C to stop.\n", cfg.Schedule, cfg.LeadMinutes)

	scheduler.Start()
	<-runCtx.Done()
	<-scheduler.Stop().Done()
	logger.Info("Stopped watching for reminders")
	return nil
}

// check announces the reminders due now and returns how many were sent or
// printed. A nil tracker disables de-duplication.
func (c *NotifyCmd) check(ctx *cli.Context, tracker *notifier.Tracker, leadMin int) (int, error) {
	s := ctx.Settings().Get()
	if !s.Notifications {
		if c.DryRun {
			ctx.Println("Notifications are disabled in settings.")
		}
		return 0, nil
	}

	mgr, err := ctx.Events()
	if err != nil {
		return 0, err
	}

	now := clock()
	due := notifier.DueReminders(mgr.All(), now, leadMin)
	if len(due) == 0 {
		if c.DryRun {
			ctx.Println("No reminders due.")
		}
		return 0, nil
	}

	n := newSender()
	sent := 0
	for _, e := range due {
		if tracker != nil && !tracker.MarkSent(e, now) {
			continue
		}
		msg := notifier.Message(e, s, leadMin)
		if c.DryRun {
			ctx.Println("[DryRun] " + msg)
			sent++
			continue
		}
		if err := n.Notify(msg); err != nil {
			if errors.Is(err, notifier.ErrTrayNotRunning) {
				return sent, err
			}
			logger.Warn("Failed to send notification", "event", e.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
