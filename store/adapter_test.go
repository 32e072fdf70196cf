package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/invers"
	"github.com/etnz/invers/date"
	"github.com/etnz/invers/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *invers.Snapshot {
	t.Helper()
	s := invers.DefaultSnapshot()
	s.Ledger.Toggle(invers.Day(0, 1))
	s.Ledger.Toggle(invers.Day(4, 12))
	_, err := s.Reports.Update(0, invers.Profit, "500")
	require.NoError(t, err)
	s.Reports.Save(0)
	s.Profile.Name = "Asha"
	s.Theme = invers.Theme{Dark: true, ColorKey: invers.Rose}
	s.Notification = invers.NotificationConfig{Enabled: true, Time: date.Clock(8, 15)}
	s.Permission = invers.PermissionDenied
	return s
}

func TestAdapter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, kv := range map[string]KV{
		"memory": NewMemory(0),
		"file":   mustFile(t, 0),
	} {
		t.Run(name, func(t *testing.T) {
			a := NewAdapter(kv, "", zerolog.Nop(), nil)
			s := sample(t)
			require.NoError(t, a.Save(ctx, s))

			got := NewAdapter(kv, "", zerolog.Nop(), nil).Load(ctx)
			assert.True(t, got.Equal(s), "loaded snapshot differs from the saved one")
		})
	}
}

func TestAdapter_LoadMissing(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	a := NewAdapter(NewMemory(0), DefaultKey, zerolog.Nop(), m)
	got := a.Load(context.Background())
	assert.True(t, got.Equal(invers.DefaultSnapshot()))
	assert.Nil(t, a.LastSaved())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotLoads.WithLabelValues("missing")))
}

func TestAdapter_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0)
	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(`{"ledger":`)))

	a := NewAdapter(kv, DefaultKey, zerolog.Nop(), nil)
	got := a.Load(ctx)
	assert.True(t, got.Equal(invers.DefaultSnapshot()))

	kept, err := kv.Get(ctx, DefaultKey+".corrupt")
	require.NoError(t, err)
	assert.Equal(t, `{"ledger":`, string(kept))
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Set(context.Context, string, []byte) error   { return f.err }
func (f failingKV) Close() error                                 { return nil }

func TestAdapter_LoadReadError(t *testing.T) {
	a := NewAdapter(failingKV{errors.New("disk on fire")}, "", zerolog.Nop(), nil)
	assert.True(t, a.Load(context.Background()).Equal(invers.DefaultSnapshot()))
}

func TestAdapter_SaveQuotaExceeded(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(250)
	m := metrics.New(prometheus.NewRegistry())
	a := NewAdapter(kv, "", zerolog.Nop(), m)

	small := invers.DefaultSnapshot()
	require.NoError(t, a.Save(ctx, small))
	good := a.LastSaved()

	big := invers.DefaultSnapshot()
	big.Profile.Image = "data:image/png;base64," + strings.Repeat("A", 300)
	err := a.Save(ctx, big)
	require.ErrorIs(t, err, ErrQuotaExceeded)

	assert.Equal(t, good, a.LastSaved(), "last known good document must survive a failed save")
	stored, err := kv.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, good, stored)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotSaves.WithLabelValues("error")))
}

func TestAdapter_TrackerIntegration(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0)
	a := NewAdapter(kv, "", zerolog.Nop(), nil)
	tr := invers.NewTracker(a.Load(ctx), a, zerolog.Nop())
	tr.Toggle(ctx, invers.Day(2, 2))
	tr.SetProfileName(ctx, "Ravi")

	again := NewAdapter(kv, "", zerolog.Nop(), nil).Load(ctx)
	assert.True(t, again.Ledger.IsContributed(invers.Day(2, 2)))
	assert.Equal(t, "Ravi", again.Profile.Name)
}

func TestAdapter_Changed(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory(0)
	a := NewAdapter(kv, "", zerolog.Nop(), nil)

	_, changed := a.Changed(ctx)
	assert.False(t, changed, "a missing record is not a change")

	tr := invers.NewTracker(a.Load(ctx), a, zerolog.Nop())
	tr.Toggle(ctx, invers.Day(0, 1))
	_, changed = a.Changed(ctx)
	assert.False(t, changed, "its own save is not a change")

	other := NewAdapter(kv, "", zerolog.Nop(), nil)
	s := other.Load(ctx)
	s.Notification.Enabled = true
	s.Permission = invers.PermissionDenied
	require.NoError(t, other.Save(ctx, s))

	got, changed := a.Changed(ctx)
	require.True(t, changed)
	assert.True(t, got.Notification.Enabled)
	assert.Equal(t, invers.PermissionDenied, got.Permission)
	assert.True(t, got.Ledger.IsContributed(invers.Day(0, 1)))

	_, changed = a.Changed(ctx)
	assert.False(t, changed, "the same document is reported once")

	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(`{"ledger":`)))
	_, changed = a.Changed(ctx)
	assert.False(t, changed, "a corrupt document is ignored")
}

func mustFile(t *testing.T, quota int) *File {
	t.Helper()
	f, err := NewFile(t.TempDir(), quota)
	require.NoError(t, err)
	return f
}
