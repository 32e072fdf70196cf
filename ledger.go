package invers

import (
	"cmp"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/invers/date"
)

// DayKey identifies a ledger day: a zero-based month index and a day of the month.
type DayKey struct {
	Month int // 0-11
	Day   int // 1-31
}

// Day returns the key for monthIndex and day.
func Day(monthIndex, day int) DayKey { return DayKey{Month: monthIndex, Day: day} }

// Valid reports whether the key is within the ledger's bounds.
func (k DayKey) Valid() bool {
	return k.Month >= 0 && k.Month < date.Months && k.Day >= 1 && k.Day <= 31
}

// String returns the persisted "month-day" form, e.g. "0-15" for January 15th.
func (k DayKey) String() string { return strconv.Itoa(k.Month) + "-" + strconv.Itoa(k.Day) }

// ParseDayKey parses the persisted "month-day" form.
func ParseDayKey(s string) (DayKey, error) {
	m, d, ok := strings.Cut(s, "-")
	if !ok {
		return DayKey{}, fmt.Errorf("invalid day key %q: want <month>-<day>", s)
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return DayKey{}, fmt.Errorf("invalid day key %q: %w", s, err)
	}
	day, err := strconv.Atoi(d)
	if err != nil {
		return DayKey{}, fmt.Errorf("invalid day key %q: %w", s, err)
	}
	k := DayKey{month, day}
	if !k.Valid() {
		return DayKey{}, fmt.Errorf("invalid day key %q: out of range", s)
	}
	return k, nil
}

func compareKeys(a, b DayKey) int {
	if c := cmp.Compare(a.Month, b.Month); c != 0 {
		return c
	}
	return cmp.Compare(a.Day, b.Day)
}

// Ledger is the map of per-day contribution flags.
//
// Entries are created by the first Toggle of a day and are never removed: a
// day toggled twice is kept as an explicit false.
type Ledger struct {
	days map[DayKey]bool
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{days: make(map[DayKey]bool)}
}

// Toggle flips the contribution flag of a day and returns its new value.
// Keys outside the ledger's bounds are ignored.
func (l *Ledger) Toggle(k DayKey) bool {
	if !k.Valid() {
		return false
	}
	if l.days == nil {
		l.days = make(map[DayKey]bool)
	}
	l.days[k] = !l.days[k]
	return l.days[k]
}

// IsContributed reports whether a contribution was marked on that day.
// Unknown days are not contributed.
func (l *Ledger) IsContributed(k DayKey) bool { return l.days[k] }

// Len returns the number of recorded entries, contributed or not.
func (l *Ledger) Len() int { return len(l.days) }

// Count returns the number of contributed days across all months.
func (l *Ledger) Count() int {
	n := 0
	for _, v := range l.days {
		if v {
			n++
		}
	}
	return n
}

// MonthCount returns the number of contributed days in a month.
func (l *Ledger) MonthCount(monthIndex int) int {
	n := 0
	for k, v := range l.days {
		if v && k.Month == monthIndex {
			n++
		}
	}
	return n
}

// Days returns an iterator over all recorded entries in (month, day) order.
func (l *Ledger) Days() iter.Seq2[DayKey, bool] {
	return func(yield func(DayKey, bool) bool) {
		for _, k := range slices.SortedFunc(maps.Keys(l.days), compareKeys) {
			if !yield(k, l.days[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	c := NewLedger()
	maps.Copy(c.days, l.days)
	return c
}

// Equal reports whether both ledgers hold the same entries.
func (l *Ledger) Equal(o *Ledger) bool { return maps.Equal(l.days, o.days) }

// MarshalJSON encodes the ledger as an object keyed by "month-day".
func (l *Ledger) MarshalJSON() ([]byte, error) {
	m := make(map[string]bool, len(l.days))
	for k, v := range l.days {
		m[k.String()] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the "month-day" object. Malformed keys are skipped
// and reported by decodeLedger, not as errors.
func (l *Ledger) UnmarshalJSON(b []byte) error {
	_, err := l.decode(b)
	return err
}

// decode fills the ledger and returns the keys it had to skip.
func (l *Ledger) decode(b []byte) (skipped []string, err error) {
	var m map[string]bool
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("invalid ledger: %w", err)
	}
	l.days = make(map[DayKey]bool, len(m))
	for s, v := range m {
		k, err := ParseDayKey(s)
		if err != nil {
			skipped = append(skipped, s)
			continue
		}
		l.days[k] = v
	}
	slices.Sort(skipped)
	return skipped, nil
}
