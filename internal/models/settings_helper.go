package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/daypilot/internal/constants"
)

var (
	// ErrUnknownSetting is returned for a key that names no settings field
	ErrUnknownSetting = errors.New("unknown setting")
	// ErrInvalidValue is returned when a value has the wrong type or is outside the field's allowed values
	ErrInvalidValue = errors.New("invalid setting value")
)

// Field returns the value of a single setting by its key.
func (s Settings) Field(key string) (any, error) {
	switch key {
	case constants.SettingTimeFormat:
		return s.TimeFormat, nil
	case constants.SettingWeekStartDay:
		return s.WeekStartDay, nil
	case constants.SettingDefaultEventCategory:
		return s.DefaultEventCategory, nil
	case constants.SettingNotifications:
		return s.Notifications, nil
	case constants.SettingDateFormat:
		return s.DateFormat, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
}

// WithField returns a copy of s with exactly one field replaced. The value may
// be the field's own type or its underlying JSON-decoded form (string, bool,
// float64 or int).
func (s Settings) WithField(key string, value any) (Settings, error) {
	out := s.Clone()
	switch key {
	case constants.SettingTimeFormat:
		v, ok := asString[TimeFormat](value)
		if !ok || !v.Valid() {
			return s, invalid(key, value)
		}
		out.TimeFormat = v
	case constants.SettingWeekStartDay:
		v, ok := asWeekStart(value)
		if !ok || !v.Valid() {
			return s, invalid(key, value)
		}
		out.WeekStartDay = v
	case constants.SettingDefaultEventCategory:
		v, ok := asString[Category](value)
		if !ok || !v.Valid() {
			return s, invalid(key, value)
		}
		out.DefaultEventCategory = v
	case constants.SettingNotifications:
		v, ok := value.(bool)
		if !ok {
			return s, invalid(key, value)
		}
		out.Notifications = v
	case constants.SettingDateFormat:
		v, ok := asString[DateFormat](value)
		if !ok || !v.Valid() {
			return s, invalid(key, value)
		}
		out.DateFormat = v
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	return out, nil
}

// ParseSettingValue converts a command-line or query string into the typed
// value for key.
func ParseSettingValue(key, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch key {
	case constants.SettingTimeFormat:
		v := TimeFormat(strings.ToLower(raw))
		if !v.Valid() {
			return nil, fmt.Errorf("%w: time format must be 12h or 24h, got %q", ErrInvalidValue, raw)
		}
		return v, nil
	case constants.SettingWeekStartDay:
		switch strings.ToLower(raw) {
		case "0", "sun", "sunday":
			return WeekStartSunday, nil
		case "1", "mon", "monday":
			return WeekStartMonday, nil
		}
		return nil, fmt.Errorf("%w: week start must be sunday or monday, got %q", ErrInvalidValue, raw)
	case constants.SettingDefaultEventCategory:
		c, err := ParseCategory(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return c, nil
	case constants.SettingNotifications:
		switch strings.ToLower(raw) {
		case "on", "yes":
			return true, nil
		case "off", "no":
			return false, nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: notifications must be true or false, got %q", ErrInvalidValue, raw)
		}
		return b, nil
	case constants.SettingDateFormat:
		v := DateFormat(raw)
		if !v.Valid() {
			return nil, fmt.Errorf("%w: date format must be one of MM/dd/yyyy, dd/MM/yyyy, yyyy-MM-dd, got %q", ErrInvalidValue, raw)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
}

func invalid(key string, value any) error {
	return fmt.Errorf("%w for %s: %v", ErrInvalidValue, key, value)
}

func asString[T ~string](value any) (T, bool) {
	switch v := value.(type) {
	case T:
		return v, true
	case string:
		return T(v), true
	}
	return "", false
}

func asWeekStart(value any) (WeekStartDay, bool) {
	switch v := value.(type) {
	case WeekStartDay:
		return v, true
	case int:
		return WeekStartDay(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return WeekStartDay(int(v)), true
	}
	return 0, false
}
