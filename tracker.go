package invers

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Saver persists a snapshot. Implementations must not keep or mutate the
// snapshot they are given beyond the call.
type Saver interface {
	Save(ctx context.Context, s *Snapshot) error
}

// Tracker owns the in-memory authoritative state of the application.
//
// Every mutation that changes the state is followed by a Save of the full
// snapshot. A failed save is logged and the in-memory state is kept as is:
// persistence is fire-and-forget.
//
// A Tracker is not safe for concurrent use: it is driven by a single loop.
type Tracker struct {
	state       *Snapshot
	quote       Quote
	saver       Saver
	log         zerolog.Logger
	subscribers []func(Stats)
}

// NewTracker returns a tracker over state. saver may be nil for a volatile tracker.
func NewTracker(state *Snapshot, saver Saver, log zerolog.Logger) *Tracker {
	if state == nil {
		state = DefaultSnapshot()
	}
	return &Tracker{
		state: state,
		quote: DefaultQuote(),
		saver: saver,
		log:   log,
	}
}

// Subscribe registers fn to receive the recomputed stats after every change,
// price ticks included.
func (t *Tracker) Subscribe(fn func(Stats)) {
	t.subscribers = append(t.subscribers, fn)
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() *Snapshot { return t.state.Clone() }

// Stats computes the current figures.
func (t *Tracker) Stats() Stats { return Compute(t.state.Ledger, t.state.Reports, t.quote) }

// Quote returns the latest price quote.
func (t *Tracker) Quote() Quote { return t.quote }

// IsContributed reports whether a contribution was marked on that day.
func (t *Tracker) IsContributed(k DayKey) bool { return t.state.Ledger.IsContributed(k) }

// Report returns the report of a month.
func (t *Tracker) Report(monthIndex int) (MonthlyReport, bool) { return t.state.Reports.Get(monthIndex) }

// Profile returns the user's profile.
func (t *Tracker) Profile() Profile { return t.state.Profile }

// Theme returns the visual preference.
func (t *Tracker) Theme() Theme { return t.state.Theme }

// Notification returns the reminder settings.
func (t *Tracker) Notification() NotificationConfig { return t.state.Notification }

// Permission returns the recorded answer to showing reminders.
func (t *Tracker) Permission() Permission { return t.state.Permission }

// changed persists the state and notifies subscribers.
func (t *Tracker) changed(ctx context.Context, what string) {
	if t.saver != nil {
		if err := t.saver.Save(ctx, t.state.Clone()); err != nil {
			t.log.Warn().Err(err).Str("change", what).Msg("state kept in memory, snapshot not saved")
		}
	}
	t.publish()
}

func (t *Tracker) publish() {
	if len(t.subscribers) == 0 {
		return
	}
	s := t.Stats()
	for _, fn := range t.subscribers {
		fn(s)
	}
}

// Toggle flips a ledger day and returns its new value.
func (t *Tracker) Toggle(ctx context.Context, k DayKey) bool {
	if !k.Valid() {
		t.log.Debug().Stringer("day", k).Msg("ignoring toggle of an invalid day")
		return false
	}
	v := t.state.Ledger.Toggle(k)
	t.changed(ctx, "ledger")
	return v
}

// UpdateReport edits a field of a month's draft report. It returns false,
// without error, when the month is locked.
func (t *Tracker) UpdateReport(ctx context.Context, monthIndex int, field Field, value string) (bool, error) {
	applied, err := t.state.Reports.Update(monthIndex, field, value)
	if err != nil || !applied {
		return applied, err
	}
	t.changed(ctx, "reports")
	return true, nil
}

// SaveReport locks a month's report.
func (t *Tracker) SaveReport(ctx context.Context, monthIndex int) bool {
	if !t.state.Reports.Save(monthIndex) {
		return false
	}
	t.changed(ctx, "reports")
	return true
}

// DeleteReport removes a month's report. Ledger days are untouched.
func (t *Tracker) DeleteReport(ctx context.Context, monthIndex int) bool {
	if !t.state.Reports.Delete(monthIndex) {
		return false
	}
	t.changed(ctx, "reports")
	return true
}

// SetProfileName changes the display name.
func (t *Tracker) SetProfileName(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == t.state.Profile.Name {
		return
	}
	t.state.Profile.Name = name
	t.changed(ctx, "profile")
}

// SetProfileImage validates and stores a profile image. An invalid payload
// is rejected with a warning and leaves the profile unchanged.
func (t *Tracker) SetProfileImage(ctx context.Context, payload []byte) error {
	img, err := EncodeImage(payload)
	if err != nil {
		t.log.Warn().Err(err).Int("size", len(payload)).Msg("profile image rejected")
		return err
	}
	t.state.Profile.Image = img
	t.changed(ctx, "profile")
	return nil
}

// SetTheme changes the visual preference. Unknown colors fall back to Emerald.
func (t *Tracker) SetTheme(ctx context.Context, theme Theme) {
	theme = theme.normalize()
	if theme == t.state.Theme {
		return
	}
	t.state.Theme = theme
	t.changed(ctx, "theme")
}

// SetNotification changes the reminder settings.
func (t *Tracker) SetNotification(ctx context.Context, cfg NotificationConfig) {
	if cfg == t.state.Notification {
		return
	}
	t.state.Notification = cfg
	t.changed(ctx, "notification")
}

// SetPermission records the user's answer to showing reminders.
func (t *Tracker) SetPermission(ctx context.Context, p Permission) {
	if p == t.state.Permission {
		return
	}
	t.state.Permission = p
	t.changed(ctx, "permission")
}

// Reload replaces the state with s, read back from storage after another
// process saved it. Nothing is saved. It returns false if s holds the
// current state.
func (t *Tracker) Reload(s *Snapshot) bool {
	if s == nil || s.Equal(t.state) {
		return false
	}
	t.state = s.Clone()
	t.publish()
	return true
}

// SetQuote records the latest price quote. Quotes are not persisted.
func (t *Tracker) SetQuote(q Quote) {
	t.quote = q
	t.publish()
}
