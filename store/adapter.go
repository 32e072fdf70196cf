package store

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/etnz/invers"
	"github.com/etnz/invers/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Adapter reads and writes the tracker snapshot under a single key.
//
// It keeps the last successfully written document: the only copy of durable
// state it owns. It never mutates the snapshots it is given.
type Adapter struct {
	kv      KV
	key     string
	log     zerolog.Logger
	metrics *metrics.Collectors

	warn rate.Sometimes // throttles repeated save failure warnings
	last []byte
}

// NewAdapter returns an adapter over kv. m may be nil.
func NewAdapter(kv KV, key string, log zerolog.Logger, m *metrics.Collectors) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{
		kv:      kv,
		key:     key,
		log:     log.With().Str("key", key).Logger(),
		metrics: m,
		warn:    rate.Sometimes{Interval: time.Minute},
	}
}

// Key returns the name of the snapshot record.
func (a *Adapter) Key() string { return a.key }

// Load reads the snapshot. A missing record, an unreadable store or a corrupt
// document all yield the default snapshot: Load never fails.
func (a *Adapter) Load(ctx context.Context) *invers.Snapshot {
	data, err := a.kv.Get(ctx, a.key)
	switch {
	case errors.Is(err, ErrNotFound):
		a.metrics.Load("missing")
		a.log.Info().Msg("no snapshot yet, starting from defaults")
		return invers.DefaultSnapshot()
	case err != nil:
		a.metrics.Load("error")
		a.log.Warn().Err(err).Msg("cannot read snapshot, starting from defaults")
		return invers.DefaultSnapshot()
	}

	s, warnings, err := invers.DecodeSnapshot(data)
	if err != nil {
		a.metrics.Load("corrupt")
		a.log.Error().Err(err).Int("bytes", len(data)).Msg("corrupt snapshot, starting from defaults")
		// keep the unreadable document aside before the next save replaces it.
		if err := a.kv.Set(ctx, a.key+".corrupt", data); err != nil {
			a.log.Warn().Err(err).Msg("cannot keep a copy of the corrupt snapshot")
		}
		return invers.DefaultSnapshot()
	}
	for _, w := range warnings {
		a.log.Warn().Msg(w)
	}
	a.metrics.Load("ok")
	a.last = data
	return s
}

// Save writes the full snapshot. On failure the error is logged and
// returned; nothing is retried and the last known good document is kept.
func (a *Adapter) Save(ctx context.Context, s *invers.Snapshot) error {
	data, err := invers.EncodeSnapshot(s)
	if err != nil {
		a.metrics.Save("error", 0)
		a.log.Error().Err(err).Msg("cannot encode snapshot")
		return err
	}
	if err := a.kv.Set(ctx, a.key, data); err != nil {
		a.metrics.Save("error", 0)
		a.warn.Do(func() {
			a.log.Warn().Err(err).Bool("quota", errors.Is(err, ErrQuotaExceeded)).Int("bytes", len(data)).Msg("snapshot not saved")
		})
		return err
	}
	a.metrics.Save("ok", len(data))
	a.last = data
	return nil
}

// Changed reads the snapshot back and returns it if it differs from the last
// document this adapter read or wrote, which happens when another process
// saved it. A missing, unreadable or corrupt record is not a change.
func (a *Adapter) Changed(ctx context.Context) (*invers.Snapshot, bool) {
	data, err := a.kv.Get(ctx, a.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.log.Debug().Err(err).Msg("cannot read snapshot back")
		}
		return nil, false
	}
	if bytes.Equal(data, a.last) {
		return nil, false
	}
	s, warnings, err := invers.DecodeSnapshot(data)
	if err != nil {
		a.log.Warn().Err(err).Msg("ignoring a corrupt snapshot saved by another process")
		return nil, false
	}
	for _, w := range warnings {
		a.log.Warn().Msg(w)
	}
	a.metrics.Load("ok")
	a.last = data
	return s, true
}

// LastSaved returns the last document read or written successfully, nil if none.
func (a *Adapter) LastSaved() []byte { return a.last }

// Raw returns the stored document as is.
func (a *Adapter) Raw(ctx context.Context) ([]byte, error) { return a.kv.Get(ctx, a.key) }

var _ invers.Saver = (*Adapter)(nil)
