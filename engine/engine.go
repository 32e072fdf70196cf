// Package engine runs the tracker: a single goroutine owns the state and
// reacts, one event at a time, to price ticks, reminder polls and user
// actions.
package engine

import (
	"context"
	"errors"
	"iter"
	"sync"
	"time"

	"github.com/etnz/invers"
	"github.com/etnz/invers/metrics"
	"github.com/etnz/invers/notify"
	"github.com/rs/zerolog"
)

// ErrStopped is returned when posting to an engine that is not running anymore.
var ErrStopped = errors.New("engine stopped")

// Options tune the loop. Zero values take the defaults.
type Options struct {
	PriceInterval time.Duration // invers.DefaultFeedInterval
	PollInterval  time.Duration // notify.DefaultPoll
	Log           zerolog.Logger
	Metrics       *metrics.Collectors
}

type event func(ctx context.Context)

// Engine owns the tracker, the price feed and the reminder scheduler. Only
// Run's goroutine touches them; other goroutines go through Post.
type Engine struct {
	tracker   *invers.Tracker
	feed      *invers.Feed
	scheduler *notify.Scheduler
	opts      Options
	log       zerolog.Logger

	inbox   chan event
	done    chan struct{}
	once    sync.Once
	polling bool // owned by Run's goroutine
}

// New returns an engine. The scheduler is reconciled with the tracker's
// notification settings when Run starts.
func New(t *invers.Tracker, f *invers.Feed, s *notify.Scheduler, opts Options) *Engine {
	if opts.PriceInterval <= 0 {
		opts.PriceInterval = invers.DefaultFeedInterval
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = notify.DefaultPoll
	}
	return &Engine{
		tracker:   t,
		feed:      f,
		scheduler: s,
		opts:      opts,
		log:       opts.Log.With().Str("component", "engine").Logger(),
		inbox:     make(chan event),
		done:      make(chan struct{}),
	}
}

// Subscribe registers fn to receive the stats after every event. It must be
// called before Run; fn runs on the engine goroutine.
func (e *Engine) Subscribe(fn func(invers.Stats)) { e.tracker.Subscribe(fn) }

// Run processes events until ctx is done. It must be called once.
func (e *Engine) Run(ctx context.Context) {
	defer e.once.Do(func() { close(e.done) })
	e.log.Info().Dur("price", e.opts.PriceInterval).Dur("poll", e.opts.PollInterval).Msg("engine started")

	prices := time.NewTicker(e.opts.PriceInterval)
	defer prices.Stop()
	next, stop := iter.Pull(e.feed.Quotes())
	defer stop()

	var poll *time.Ticker
	var pollC <-chan time.Time
	defer func() {
		if poll != nil {
			poll.Stop()
		}
	}()
	// arm starts or stops the poll ticker to follow the scheduler state.
	arm := func() {
		enabled := e.scheduler.State() != notify.Disabled
		switch {
		case enabled && poll == nil:
			poll = time.NewTicker(e.opts.PollInterval)
			pollC = poll.C
			e.log.Debug().Msg("reminder poll started")
		case !enabled && poll != nil:
			poll.Stop()
			poll, pollC = nil, nil
			e.log.Debug().Msg("reminder poll stopped")
		}
		e.polling = poll != nil
	}

	e.reconcile(ctx)
	arm()
	for {
		select {
		case <-ctx.Done():
			e.log.Info().Msg("engine stopped")
			return
		case <-prices.C:
			q, _ := next()
			e.tracker.SetQuote(q)
			e.opts.Metrics.Prices(q.A.Decimal().InexactFloat64(), q.B.Decimal().InexactFloat64())
		case <-pollC:
			e.scheduler.Tick(ctx)
		case ev := <-e.inbox:
			ev(ctx)
			e.reconcile(ctx)
			arm()
		}
	}
}

// reconcile applies the tracker's notification settings to the scheduler.
func (e *Engine) reconcile(ctx context.Context) {
	want, got := e.tracker.Notification(), e.scheduler.Config()
	if want == got {
		return
	}
	switch {
	case want.Enabled && !got.Enabled:
		e.scheduler.SetTime(want.Time)
		p := e.scheduler.Enable(ctx)
		e.log.Info().Stringer("time", want.Time).Stringer("permission", p).Msg("reminders enabled")
	case !want.Enabled && got.Enabled:
		e.scheduler.SetTime(want.Time)
		e.scheduler.Disable()
		e.log.Info().Msg("reminders disabled")
	default:
		e.scheduler.SaveTime(ctx, want.Time)
		e.log.Info().Stringer("time", want.Time).Msg("reminder time changed")
	}
}

// Post enqueues fn to run on the engine goroutine. It returns once the engine
// has taken the event, without waiting for it to complete: use Do for that.
func (e *Engine) Post(ctx context.Context, fn func(context.Context, *invers.Tracker)) error {
	return e.enqueue(ctx, func(ctx context.Context) { fn(ctx, e.tracker) })
}

// Do runs fn on the engine goroutine and waits for it to complete.
func (e *Engine) Do(ctx context.Context, fn func(context.Context, *invers.Tracker)) error {
	return e.call(ctx, func(ctx context.Context) { fn(ctx, e.tracker) })
}

// TestReminder delivers a test notification now.
func (e *Engine) TestReminder(ctx context.Context) error {
	var err error
	if cerr := e.call(ctx, func(ctx context.Context) { err = e.scheduler.Test(ctx) }); cerr != nil {
		return cerr
	}
	return err
}

// Polling reports whether the reminder poll ticker is running.
func (e *Engine) Polling(ctx context.Context) (bool, error) {
	var p bool
	err := e.call(ctx, func(context.Context) { p = e.polling })
	return p, err
}

// Source reports snapshots saved outside the engine.
type Source interface {
	Changed(ctx context.Context) (*invers.Snapshot, bool)
}

// Follow checks src every interval and loads into the tracker the snapshot
// another process saved, until ctx is done or the engine stops. The reminder
// schedule follows the loaded settings.
func (e *Engine) Follow(ctx context.Context, src Source, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		err := e.Post(ctx, func(ctx context.Context, tr *invers.Tracker) {
			if s, ok := src.Changed(ctx); ok && tr.Reload(s) {
				e.log.Info().Msg("state reloaded, saved by another process")
			}
		})
		if err != nil {
			return
		}
	}
}

// ReminderState returns the scheduler state.
func (e *Engine) ReminderState(ctx context.Context) (notify.State, error) {
	var s notify.State
	err := e.call(ctx, func(context.Context) { s = e.scheduler.State() })
	return s, err
}

func (e *Engine) enqueue(ctx context.Context, ev event) error {
	select {
	case e.inbox <- ev:
		return nil
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// call enqueues ev and waits for it. The inbox is unbuffered: once taken, the
// event runs to completion before the loop does anything else.
func (e *Engine) call(ctx context.Context, ev event) error {
	finished := make(chan struct{})
	if err := e.enqueue(ctx, func(ctx context.Context) {
		defer close(finished)
		ev(ctx)
	}); err != nil {
		return err
	}
	<-finished
	return nil
}
