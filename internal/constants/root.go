package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "daypilot"
	DefaultKeyringUser = "database-connection"
	DefaultDBPath      = "~/.config/daypilot/daypilot.db"
	DefaultConfigFile  = "~/.config/daypilot/config.yaml"
	Version            = "v0.1.0"

	// ConnectionEnvVar holds a PostgreSQL connection string when the keyring is unavailable
	ConnectionEnvVar = "DAYPILOT_DB_CONNECTION"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daypilot-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "daypilot-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.daypilot"
	DefaultNotifyLeadMin   = 10
	DefaultNotifySchedule  = "* * * * *"

	// API constants
	DefaultListenAddr = "127.0.0.1:8080"
	APIReadTimeout    = 10 * time.Second
	APIWriteTimeout   = 10 * time.Second

	// Event defaults used by forms and the add command
	DefaultEventTime        = "09:00"
	DefaultEventDurationMin = 30

	// Calendar cells show this many events before collapsing to "+N more"
	MaxEventsPerCell = 2
)

// Session States
const (
	StateCalendar SessionState = iota
	StateList
	StateToday
	StateSettings
	StateAddEvent
	StateEditEvent
	StateEditSettings
	StateConfirmDelete
	StateConfirmReset
)
