package invers

import (
	"context"
	"errors"
	"testing"
)

// memorySaver records every saved snapshot and can be told to fail.
type memorySaver struct {
	saved []*Snapshot
	err   error
}

func (m *memorySaver) Save(_ context.Context, s *Snapshot) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, s)
	return nil
}

func (m *memorySaver) last(t *testing.T) *Snapshot {
	t.Helper()
	if len(m.saved) == 0 {
		t.Fatal("no snapshot saved")
	}
	return m.saved[len(m.saved)-1]
}

var errQuota = errors.New("quota exceeded")

// report builds a report from float amounts, negative meaning absent.
func report(profit, loss float64, locked bool) MonthlyReport {
	var r MonthlyReport
	if profit >= 0 {
		r.Profit = newNull(profit)
	}
	if loss >= 0 {
		r.Loss = newNull(loss)
	}
	r.Locked = locked
	return r
}
