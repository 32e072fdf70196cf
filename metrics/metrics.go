// Package metrics holds the Prometheus collectors of the tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups every metric the tracker exports. A nil *Collectors is
// valid and records nothing.
type Collectors struct {
	SnapshotSaves  *prometheus.CounterVec
	SnapshotLoads  *prometheus.CounterVec
	SnapshotBytes  prometheus.Gauge
	Reminders      *prometheus.CounterVec
	SchedulerState prometheus.Gauge
	PriceA         prometheus.Gauge
	PriceB         prometheus.Gauge
}

// New creates the collectors and registers them into reg.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		SnapshotSaves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invers_snapshot_saves_total",
				Help: "Snapshot writes by result (ok, error)",
			},
			[]string{"result"},
		),
		SnapshotLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invers_snapshot_loads_total",
				Help: "Snapshot reads by result (ok, missing, corrupt, error)",
			},
			[]string{"result"},
		),
		SnapshotBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "invers_snapshot_bytes",
				Help: "Size of the last snapshot written",
			},
		),
		Reminders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invers_reminders_total",
				Help: "Reminder delivery attempts by kind (daily, test) and result (delivered, denied, error)",
			},
			[]string{"kind", "result"},
		),
		SchedulerState: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "invers_scheduler_state",
				Help: "Reminder scheduler state: 0 disabled, 1 armed, 2 fired today",
			},
		),
		PriceA: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "invers_price_a",
				Help: "Simulated unit price of asset A",
			},
		),
		PriceB: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "invers_price_b",
				Help: "Simulated unit price of asset B",
			},
		),
	}
	reg.MustRegister(c.SnapshotSaves, c.SnapshotLoads, c.SnapshotBytes, c.Reminders, c.SchedulerState, c.PriceA, c.PriceB)
	return c
}

// Save counts a snapshot write.
func (c *Collectors) Save(result string, size int) {
	if c == nil {
		return
	}
	c.SnapshotSaves.WithLabelValues(result).Inc()
	if result == "ok" {
		c.SnapshotBytes.Set(float64(size))
	}
}

// Load counts a snapshot read.
func (c *Collectors) Load(result string) {
	if c == nil {
		return
	}
	c.SnapshotLoads.WithLabelValues(result).Inc()
}

// Reminder counts a delivery attempt.
func (c *Collectors) Reminder(kind, result string) {
	if c == nil {
		return
	}
	c.Reminders.WithLabelValues(kind, result).Inc()
}

// State records the scheduler state.
func (c *Collectors) State(state int) {
	if c == nil {
		return
	}
	c.SchedulerState.Set(float64(state))
}

// Prices records the latest quote.
func (c *Collectors) Prices(a, b float64) {
	if c == nil {
		return
	}
	c.PriceA.Set(a)
	c.PriceB.Set(b)
}
