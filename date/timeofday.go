package date

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTime is returned when a time of day is not a valid 24-hour HH:MM.
var ErrInvalidTime = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time with minute granularity.
type TimeOfDay struct {
	hour, minute int
}

// Clock returns a valid TimeOfDay, normalizing overflowing values.
func Clock(hour, minute int) TimeOfDay {
	m := ((hour*60+minute)%(24*60) + 24*60) % (24 * 60)
	return TimeOfDay{m / 60, m % 60}
}

// TimeOf returns the time of day of t, truncated to the minute.
func TimeOf(t time.Time) TimeOfDay { return TimeOfDay{t.Hour(), t.Minute()} }

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

// String returns the zero padded "HH:MM" form.
func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.hour, t.minute) }

// ParseTime parses a 24-hour "HH:MM" time. Single digit hours are accepted.
func ParseTime(s string) (TimeOfDay, error) {
	var h, m int
	var rest string
	n, _ := fmt.Sscanf(s, "%d:%d%s", &h, &m, &rest)
	if n != 2 || h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%w %q want HH:MM", ErrInvalidTime, s)
	}
	return TimeOfDay{h, m}, nil
}

// MustParseTime is like ParseTime but panics on error.
func MustParseTime(s string) TimeOfDay {
	t, err := ParseTime(s)
	if err != nil {
		panic(err.Error())
	}
	return t
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Clocker gives the current wall-clock time. It is injected wherever time
// drives behaviour so tests can control it.
type Clocker interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
