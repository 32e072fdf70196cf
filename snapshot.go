package invers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/invers/date"
	"github.com/shopspring/decimal"
)

// SnapshotVersion is the version written by EncodeSnapshot.
const SnapshotVersion = 5

// Snapshot is the single unit of durable state: the ledger, the monthly
// reports, the profile and the preferences.
type Snapshot struct {
	Ledger       *Ledger
	Reports      *Reports
	Profile      Profile
	Theme        Theme
	Notification NotificationConfig
	Permission   Permission
}

// DefaultSnapshot is the state of a fresh install: empty ledger, no reports,
// default profile, light theme, notifications disabled, permission never asked.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Ledger:       NewLedger(),
		Reports:      NewReports(),
		Profile:      DefaultProfile(),
		Theme:        DefaultTheme(),
		Notification: DefaultNotificationConfig(),
	}
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.Ledger = s.Ledger.Clone()
	c.Reports = s.Reports.Clone()
	return &c
}

// Equal reports whether both snapshots hold the same state.
func (s *Snapshot) Equal(o *Snapshot) bool {
	return s.Ledger.Equal(o.Ledger) &&
		s.Reports.Equal(o.Reports) &&
		s.Profile == o.Profile &&
		s.Theme == o.Theme &&
		s.Notification == o.Notification &&
		s.Permission == o.Permission
}

// jsnapshot is the persisted layout.
type jsnapshot struct {
	Version      int                   `json:"version"`
	Ledger       *Ledger               `json:"ledger"`
	Reports      map[int]MonthlyReport `json:"reports"`
	Profile      Profile               `json:"profile"`
	Theme        Theme                 `json:"theme"`
	Notification NotificationConfig    `json:"notification"`
	Permission   Permission            `json:"permission"`
}

// EncodeSnapshot serializes the full snapshot.
func EncodeSnapshot(s *Snapshot) ([]byte, error) {
	js := jsnapshot{
		Version:      SnapshotVersion,
		Ledger:       s.Ledger,
		Reports:      make(map[int]MonthlyReport, s.Reports.Len()),
		Profile:      s.Profile,
		Theme:        s.Theme,
		Notification: s.Notification,
		Permission:   s.Permission,
	}
	for m, rep := range s.Reports.All() {
		js.Reports[m] = rep
	}
	b, err := json.Marshal(js)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// legacyKeys are the top level keys of the un-versioned layout written by the
// first releases.
var legacyKeys = []string{"investments", "monthlyData", "darkMode", "colorTheme", "notificationsEnabled", "notificationTime"}

// DecodeSnapshot parses a snapshot.
//
// It only fails when the document is not a JSON object. Any section that
// cannot be read falls back to its default and is described in warnings.
// Unknown fields are ignored and missing ones take their default value.
func DecodeSnapshot(b []byte) (s *Snapshot, warnings []string, err error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if doc == nil {
		return nil, nil, fmt.Errorf("decode snapshot: not a JSON object")
	}
	d := &decoder{doc: doc, s: DefaultSnapshot()}
	if _, versioned := doc["version"]; !versioned && d.hasAny(legacyKeys...) {
		d.legacy()
	} else {
		d.current()
	}
	return d.s, d.warnings, nil
}

type decoder struct {
	doc      map[string]json.RawMessage
	s        *Snapshot
	warnings []string
}

func (d *decoder) warnf(format string, args ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

func (d *decoder) hasAny(keys ...string) bool {
	for _, k := range keys {
		if _, ok := d.doc[k]; ok {
			return true
		}
	}
	return false
}

// section unmarshals a present, non null key into v. It returns false if the
// key is absent or could not be read.
func (d *decoder) section(key string, v any) bool {
	raw, ok := d.doc[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		d.warnf("%s: %v, using default", key, err)
		return false
	}
	return true
}

func (d *decoder) current() {
	d.ledger("ledger")
	d.reports("reports", "locked")

	p := DefaultProfile()
	if d.section("profile", &p) {
		d.s.Profile = p
	}

	t := DefaultTheme()
	if d.section("theme", &t) {
		if ColorName(t.ColorKey) == "" {
			d.warnf("theme: unknown color %q, using %q", t.ColorKey, Emerald)
		}
		d.s.Theme = t.normalize()
	}

	var n struct {
		Enabled bool   `json:"enabled"`
		Time    string `json:"time"`
	}
	if d.section("notification", &n) {
		d.s.Notification.Enabled = n.Enabled
		d.s.Notification.Time = d.reminderTime("notification.time", n.Time)
	}

	var perm Permission
	if d.section("permission", &perm) {
		d.s.Permission = perm
	}
}

func (d *decoder) legacy() {
	d.ledger("investments")
	d.reports("monthlyData", "isSaved")

	p := DefaultProfile()
	if d.section("profile", &p) {
		d.s.Profile = p
	}

	var dark bool
	if d.section("darkMode", &dark) {
		d.s.Theme.Dark = dark
	}
	var color string
	if d.section("colorTheme", &color) {
		d.s.Theme.ColorKey = color
		d.s.Theme = d.s.Theme.normalize()
	}

	var enabled bool
	if d.section("notificationsEnabled", &enabled) {
		d.s.Notification.Enabled = enabled
	}
	var hhmm string
	if d.section("notificationTime", &hhmm) {
		d.s.Notification.Time = d.reminderTime("notificationTime", hhmm)
	}
}

func (d *decoder) reminderTime(key, hhmm string) date.TimeOfDay {
	if hhmm == "" {
		return DefaultReminderTime
	}
	t, err := date.ParseTime(hhmm)
	if err != nil {
		d.warnf("%s: %v, using %v", key, err, DefaultReminderTime)
		return DefaultReminderTime
	}
	return t
}

func (d *decoder) ledger(key string) {
	raw, ok := d.doc[key]
	if !ok {
		return
	}
	l := NewLedger()
	skipped, err := l.decode(raw)
	if err != nil {
		d.warnf("%s: %v, using an empty ledger", key, err)
		return
	}
	if len(skipped) > 0 {
		d.warnf("%s: skipped invalid days %s", key, strings.Join(skipped, ", "))
	}
	d.s.Ledger = l
}

// reports decodes the monthly reports leniently: amounts may be numbers or
// strings, empty amounts are absent. lockedKey names the lock flag.
func (d *decoder) reports(key, lockedKey string) {
	var records map[string]json.RawMessage
	if !d.section(key, &records) {
		return
	}
	for k, raw := range records {
		m, err := strconv.Atoi(k)
		if err != nil || m < 0 || m >= date.Months {
			d.warnf("%s: skipped invalid month %q", key, k)
			continue
		}
		var rec map[string]json.RawMessage
		if err := json.Unmarshal(raw, &rec); err != nil {
			d.warnf("%s[%s]: skipped, not a report: %v", key, k, err)
			continue
		}
		if rec == nil {
			continue
		}
		var rep MonthlyReport
		rep.Profit = d.amount(key, k, "profit", rec["profit"])
		rep.Loss = d.amount(key, k, "loss", rec["loss"])
		if raw, ok := rec["note"]; ok {
			if err := json.Unmarshal(raw, &rep.Note); err != nil {
				d.warnf("%s[%s].note: %v", key, k, err)
			}
		}
		if raw, ok := rec[lockedKey]; ok {
			if err := json.Unmarshal(raw, &rep.Locked); err != nil {
				d.warnf("%s[%s].%s: %v", key, k, lockedKey, err)
			}
		}
		d.s.Reports.set(m, rep)
	}
}

func (d *decoder) amount(key, month, field string, raw json.RawMessage) decimal.NullDecimal {
	if len(raw) == 0 {
		return decimal.NullDecimal{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		d.warnf("%s[%s].%s: %v", key, month, field, err)
		return decimal.NullDecimal{}
	}
	var text string
	switch x := v.(type) {
	case nil:
		return decimal.NullDecimal{}
	case string:
		text = x
	case float64:
		text = string(raw)
	default:
		d.warnf("%s[%s].%s: unexpected %T", key, month, field, v)
		return decimal.NullDecimal{}
	}
	amount, err := parseAmount(text)
	if err != nil {
		d.warnf("%s[%s].%s: %v", key, month, field, err)
		return decimal.NullDecimal{}
	}
	return amount
}
