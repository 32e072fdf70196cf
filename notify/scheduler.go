package notify

import (
	"context"
	"errors"
	"time"

	"github.com/etnz/invers"
	"github.com/etnz/invers/date"
	"github.com/etnz/invers/metrics"
	"github.com/rs/zerolog"
)

// DefaultPoll is the cadence at which the scheduler is expected to be ticked.
const DefaultPoll = 30 * time.Second

// State is the scheduler state, derived from its configuration and the date
// of the last fire.
type State int

const (
	Disabled State = iota
	Armed
	FiredToday
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case FiredToday:
		return "fired today"
	default:
		return "disabled"
	}
}

// Scheduler fires the daily reminder once per date, on the first tick whose
// wall clock HH:MM equals the configured time.
//
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	cfg       invers.NotificationConfig
	clock     date.Clocker
	cap       Capability
	lastFired date.Date
	log       zerolog.Logger
	metrics   *metrics.Collectors
}

// NewScheduler returns a scheduler. m may be nil.
func NewScheduler(cfg invers.NotificationConfig, clock date.Clocker, c Capability, log zerolog.Logger, m *metrics.Collectors) *Scheduler {
	if clock == nil {
		clock = date.SystemClock{}
	}
	s := &Scheduler{cfg: cfg, clock: clock, cap: c, log: log, metrics: m}
	s.metrics.State(int(s.State()))
	return s
}

// Config returns the current reminder settings.
func (s *Scheduler) Config() invers.NotificationConfig { return s.cfg }

// LastFired returns the date of the last fire, zero if none.
func (s *Scheduler) LastFired() date.Date { return s.lastFired }

// State returns the current state.
func (s *Scheduler) State() State {
	switch {
	case !s.cfg.Enabled:
		return Disabled
	case s.lastFired == date.Of(s.clock.Now()):
		return FiredToday
	default:
		return Armed
	}
}

// Enable arms the scheduler. The permission is requested now if undetermined.
func (s *Scheduler) Enable(ctx context.Context) Permission {
	s.cfg.Enabled = true
	s.metrics.State(int(s.State()))
	return s.permit(ctx)
}

// Disable stops any further fire until enabled again.
func (s *Scheduler) Disable() {
	s.cfg.Enabled = false
	s.metrics.State(int(s.State()))
}

// SetTime changes the time of day of the reminder.
func (s *Scheduler) SetTime(t date.TimeOfDay) { s.cfg.Time = t }

// SaveTime changes the time of day of the reminder and, when enabled, makes
// sure the permission has been asked for.
func (s *Scheduler) SaveTime(ctx context.Context, t date.TimeOfDay) Permission {
	s.cfg.Time = t
	if !s.cfg.Enabled {
		return s.cap.Permission(ctx)
	}
	return s.permit(ctx)
}

// Tick compares the clock to the reminder time and fires if it is due. It
// returns true when a delivery was attempted.
//
// The date is recorded before delivery: a denied or failed delivery is not
// retried that day.
func (s *Scheduler) Tick(ctx context.Context) bool {
	defer func() { s.metrics.State(int(s.State())) }()
	if !s.cfg.Enabled {
		return false
	}
	now := s.clock.Now()
	if date.TimeOf(now) != s.cfg.Time {
		return false
	}
	today := date.Of(now)
	if s.lastFired == today {
		return false
	}
	s.lastFired = today
	s.log.Info().Stringer("date", today).Stringer("time", s.cfg.Time).Msg("reminder due")
	s.deliver(ctx, "daily", Reminder())
	return true
}

// Test delivers a test notification immediately, whatever the time and the
// state. It does not count as the daily fire.
func (s *Scheduler) Test(ctx context.Context) error {
	return s.deliver(ctx, "test", TestReminder())
}

// permit returns the permission, asking for it if undetermined. A failed
// request counts as a denial.
func (s *Scheduler) permit(ctx context.Context) Permission {
	p := s.cap.Permission(ctx)
	if p != Undetermined {
		return p
	}
	p, err := s.cap.Request(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("notification permission request failed")
		return Denied
	}
	s.log.Info().Stringer("permission", p).Msg("notification permission answered")
	return p
}

func (s *Scheduler) deliver(ctx context.Context, kind string, n Notification) error {
	if s.permit(ctx) != Granted {
		s.metrics.Reminder(kind, "denied")
		s.log.Debug().Str("kind", kind).Msg("notification skipped, permission not granted")
		return ErrDenied
	}
	if err := s.cap.Deliver(ctx, n); err != nil {
		result := "error"
		if errors.Is(err, ErrDenied) {
			result = "denied"
		}
		s.metrics.Reminder(kind, result)
		s.log.Warn().Err(err).Str("kind", kind).Msg("notification not delivered")
		return err
	}
	s.metrics.Reminder(kind, "delivered")
	s.log.Info().Str("kind", kind).Stringer("id", n.ID).Msg("notification delivered")
	return nil
}
