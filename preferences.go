package invers

import (
	"fmt"
	"strings"

	"github.com/etnz/invers/date"
)

// Color themes.
const (
	Emerald = "green"
	Rose    = "pink"
)

// ColorName returns the display name of a color key, "" if unknown.
func ColorName(key string) string {
	switch key {
	case Emerald:
		return "Emerald"
	case Rose:
		return "Rose"
	default:
		return ""
	}
}

// Theme is the visual preference of the user.
type Theme struct {
	Dark     bool   `json:"dark"`
	ColorKey string `json:"colorKey"`
}

// DefaultTheme is light emerald.
func DefaultTheme() Theme { return Theme{ColorKey: Emerald} }

// normalize falls back to Emerald for unknown colors.
func (t Theme) normalize() Theme {
	if ColorName(t.ColorKey) == "" {
		t.ColorKey = Emerald
	}
	return t
}

// DefaultReminderTime is the reminder time of a fresh install.
var DefaultReminderTime = date.Clock(9, 0)

// NotificationConfig is the persisted part of the reminder settings.
type NotificationConfig struct {
	Enabled bool           `json:"enabled"`
	Time    date.TimeOfDay `json:"time"`
}

// DefaultNotificationConfig is disabled, at 09:00.
func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{Time: DefaultReminderTime}
}

// Permission is the user's answer to showing reminders.
type Permission int

const (
	PermissionUndetermined Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

// ParsePermission parses "undetermined", "granted" or "denied". The empty
// string is undetermined.
func ParsePermission(s string) (Permission, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "undetermined", "default":
		return PermissionUndetermined, nil
	case "granted":
		return PermissionGranted, nil
	case "denied":
		return PermissionDenied, nil
	}
	return PermissionUndetermined, fmt.Errorf("unknown permission %q: want undetermined, granted or denied", s)
}

func (p Permission) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Permission) UnmarshalText(b []byte) error {
	v, err := ParsePermission(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
