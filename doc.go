// Package invers is the state engine of a habit tracker for disciplined
// micro-investing: every day the user contributes a fixed amount into two
// assets, a BTC-like one and a gold-like one, and ticks the day in a planner.
//
// The core functionalities include:
//   - Ledger: the per-day contribution flags, keyed by month index and day.
//   - Monthly reports: profit, loss and a note per month, editable as a draft
//     and frozen once locked.
//   - Stats: a pure computation of days contributed, amounts invested, units
//     acquired at the current price and the net balance of locked reports.
//   - Price feed: a local random walk standing in for live quotes.
//   - Snapshot: the single JSON document holding all durable state.
//
// A Tracker owns the in-memory state and saves the full Snapshot after every
// mutation. The store package persists snapshots, the notify package schedules
// the daily reminder and the engine package drives both timers from one loop.
package invers
