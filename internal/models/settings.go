package models

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daypilot/internal/constants"
)

type TimeFormat string

const (
	TimeFormat12h TimeFormat = "12h"
	TimeFormat24h TimeFormat = "24h"
)

func (f TimeFormat) Valid() bool {
	return f == TimeFormat12h || f == TimeFormat24h
}

// WeekStartDay is 0 for Sunday and 1 for Monday.
type WeekStartDay int

const (
	WeekStartSunday WeekStartDay = 0
	WeekStartMonday WeekStartDay = 1
)

func (w WeekStartDay) Valid() bool {
	return w == WeekStartSunday || w == WeekStartMonday
}

func (w WeekStartDay) String() string {
	if w == WeekStartMonday {
		return "Monday"
	}
	return "Sunday"
}

type DateFormat string

const (
	DateFormatUS  DateFormat = "MM/dd/yyyy"
	DateFormatEU  DateFormat = "dd/MM/yyyy"
	DateFormatISO DateFormat = "yyyy-MM-dd"
)

// DateFormats lists the supported date patterns in display order
var DateFormats = []DateFormat{DateFormatUS, DateFormatEU, DateFormatISO}

func (f DateFormat) Valid() bool {
	switch f {
	case DateFormatUS, DateFormatEU, DateFormatISO:
		return true
	}
	return false
}

// Settings represents the user's display preferences
type Settings struct {
	TimeFormat           TimeFormat   `json:"timeFormat"`
	WeekStartDay         WeekStartDay `json:"weekStartDay"`
	DefaultEventCategory Category     `json:"defaultEventCategory"`
	Notifications        bool         `json:"notifications"`
	DateFormat           DateFormat   `json:"dateFormat"`

	// Extra holds fields of the stored record this version does not know about.
	// They are written back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// DefaultSettings returns the settings used when nothing has been stored.
func DefaultSettings() Settings {
	return Settings{
		TimeFormat:           constants.DefaultTimeFormat,
		WeekStartDay:         constants.DefaultWeekStartDay,
		DefaultEventCategory: constants.DefaultEventCategory,
		Notifications:        constants.DefaultNotifications,
		DateFormat:           constants.DefaultDateFormat,
	}
}

// SettingKeys lists the known setting fields in display order
var SettingKeys = []string{
	constants.SettingTimeFormat,
	constants.SettingWeekStartDay,
	constants.SettingDefaultEventCategory,
	constants.SettingNotifications,
	constants.SettingDateFormat,
}

// Clone returns a copy that shares no state with s.
func (s Settings) Clone() Settings {
	out := s
	if s.Extra != nil {
		out.Extra = make(map[string]json.RawMessage, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func (s Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+len(SettingKeys))
	for k, v := range s.Extra {
		out[k] = v
	}
	out[constants.SettingTimeFormat] = s.TimeFormat
	out[constants.SettingWeekStartDay] = s.WeekStartDay
	out[constants.SettingDefaultEventCategory] = s.DefaultEventCategory
	out[constants.SettingNotifications] = s.Notifications
	out[constants.SettingDateFormat] = s.DateFormat
	return json.Marshal(out)
}

// UnmarshalJSON merges the record over the defaults. See MergeSettings.
func (s *Settings) UnmarshalJSON(data []byte) error {
	merged, _ := MergeSettings(data)
	*s = merged
	return nil
}

// MergeSettings decodes a stored settings record over the defaults, field by
// field. Missing fields and fields that fail to decode or hold a value outside
// their enumeration keep the default. A record that is not a JSON object
// yields the defaults. The returned warnings describe what was ignored.
func MergeSettings(raw []byte) (Settings, []string) {
	s := DefaultSettings()
	if len(raw) == 0 {
		return s, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s, []string{fmt.Sprintf("settings record is not a JSON object: %v", err)}
	}

	var warnings []string
	for key, value := range fields {
		if err := s.decodeField(key, value); err != nil {
			warnings = append(warnings, err.Error())
		}
	}
	return s, warnings
}

func (s *Settings) decodeField(key string, value json.RawMessage) error {
	switch key {
	case constants.SettingTimeFormat:
		var v TimeFormat
		if err := json.Unmarshal(value, &v); err != nil || !v.Valid() {
			return fmt.Errorf("ignoring %s=%s", key, value)
		}
		s.TimeFormat = v
	case constants.SettingWeekStartDay:
		var v WeekStartDay
		if err := json.Unmarshal(value, &v); err != nil || !v.Valid() {
			return fmt.Errorf("ignoring %s=%s", key, value)
		}
		s.WeekStartDay = v
	case constants.SettingDefaultEventCategory:
		var v Category
		if err := json.Unmarshal(value, &v); err != nil || !v.Valid() {
			return fmt.Errorf("ignoring %s=%s", key, value)
		}
		s.DefaultEventCategory = v
	case constants.SettingNotifications:
		var v bool
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("ignoring %s=%s", key, value)
		}
		s.Notifications = v
	case constants.SettingDateFormat:
		var v DateFormat
		if err := json.Unmarshal(value, &v); err != nil || !v.Valid() {
			return fmt.Errorf("ignoring %s=%s", key, value)
		}
		s.DateFormat = v
	default:
		if s.Extra == nil {
			s.Extra = make(map[string]json.RawMessage)
		}
		s.Extra[key] = append(json.RawMessage(nil), value...)
	}
	return nil
}
