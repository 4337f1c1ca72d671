package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/julianstephens/daypilot/internal/backup"
	"github.com/julianstephens/daypilot/internal/config"
	"github.com/julianstephens/daypilot/internal/events"
	"github.com/julianstephens/daypilot/internal/logger"
	"github.com/julianstephens/daypilot/internal/models"
	"github.com/julianstephens/daypilot/internal/settings"
	"github.com/julianstephens/daypilot/internal/storage"
	"github.com/julianstephens/daypilot/internal/storage/sqlite"
	"github.com/julianstephens/daypilot/internal/utils"
)

type Context struct {
	Store      storage.Provider
	Config     *config.Config
	ConfigPath string

	// Out and In default to stdout and stdin.
	Out io.Writer
	In  io.Reader

	events   *events.Manager
	settings *settings.Store

	persistMu   sync.Mutex
	persistErrs []error
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Confirm asks a yes/no question on the context's input.
func (c *Context) Confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Settings returns the settings store backed by the loaded storage.
func (c *Context) Settings() *settings.Store {
	if c.settings == nil {
		c.settings = settings.New(c.Store)
	}
	return c.settings
}

// Events returns the event manager, seeded from storage on first use, with
// every mutation mirrored back to storage. Storage failures are collected
// for PersistError.
func (c *Context) Events() (*events.Manager, error) {
	if c.events != nil {
		return c.events, nil
	}
	stored, err := c.Store.GetAllEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	c.events = events.New(
		events.WithEvents(stored),
		events.WithSink(c.Store),
		events.WithSinkErrorHandler(c.recordPersistError),
	)
	return c.events, nil
}

func (c *Context) recordPersistError(err error) {
	c.persistMu.Lock()
	c.persistErrs = append(c.persistErrs, err)
	c.persistMu.Unlock()
}

// PersistError returns the storage failures since the last call, joined, and
// clears them. Commands check it after mutating events: once the process
// exits, an unsaved change is gone.
func (c *Context) PersistError() error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()
	err := errors.Join(c.persistErrs...)
	c.persistErrs = nil
	return err
}

// Reload re-reads events and settings from storage. Existing managers are
// refreshed in place so their subscribers keep working.
func (c *Context) Reload() {
	if c.events != nil {
		stored, err := c.Store.GetAllEvents()
		if err != nil {
			logger.Warn("Failed to reload events, dropping cached copy", "error", err)
			c.events = nil
		} else {
			c.events.Replace(stored)
		}
	}
	if c.settings != nil {
		c.settings.Reload()
	}
}

// SQLitePath returns the database file when the store is a SQLite file.
func (c *Context) SQLitePath() (string, bool) {
	s, ok := c.Store.(*sqlite.Store)
	if !ok || s.GetConfigPath() == ":memory:" {
		return "", false
	}
	return s.GetConfigPath(), true
}

// PerformAutomaticBackup creates a backup before a destructive operation.
// Failures are logged and never interrupt the command.
func (c *Context) PerformAutomaticBackup() {
	path, ok := c.SQLitePath()
	if !ok {
		logger.Debug("Skipping automatic backup for non-SQLite storage", "storage", c.Store.GetConfigPath())
		return
	}
	if _, err := backup.NewManager(path).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FormatEventLine renders one event as a single list line.
func FormatEventLine(e models.Event, s models.Settings, withDate bool) string {
	when := utils.FormatTime(e.Time, s.TimeFormat)
	if withDate {
		when = utils.FormatEventWhen(e, s)
	}
	line := fmt.Sprintf("%-22s %-40s [%s]  %s", when, e.Title, e.Category.Label(), e.ID)
	if e.Description != "" {
		line += "\n" + strings.Repeat(" ", 23) + e.Description
	}
	return line
}
