package constants

const (
	// SettingsStorageKey is the durable record holding the settings object
	SettingsStorageKey = "date-day-pilot-settings"

	// StorageProbeKey is written and removed to check that storage accepts writes
	StorageProbeKey = "__storage_test__"

	// LastTabStorageKey remembers the TUI tab between sessions
	LastTabStorageKey = "ui.last-tab"

	// Setting field names, matching the JSON keys of the settings record
	SettingTimeFormat           = "timeFormat"
	SettingWeekStartDay         = "weekStartDay"
	SettingDefaultEventCategory = "defaultEventCategory"
	SettingNotifications        = "notifications"
	SettingDateFormat           = "dateFormat"

	// Default Settings Values
	DefaultTimeFormat    = "12h"
	DefaultWeekStartDay  = 0 // Sunday
	DefaultEventCategory = "personal"
	DefaultNotifications = true
	DefaultDateFormat    = "MM/dd/yyyy"

	// DefaultLocaleDateLayout renders dates whose pattern is not recognized
	DefaultLocaleDateLayout = "January 2, 2006"

	// DefaultMemoryQuotaBytes caps the in-memory store, mirroring browser storage limits
	DefaultMemoryQuotaBytes = 5 * 1024 * 1024
)
