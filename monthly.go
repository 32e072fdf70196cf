package invers

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/invers/date"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a report amount is not a non-negative decimal.
var ErrInvalidAmount = errors.New("invalid amount")

// Field names an editable attribute of a monthly report.
type Field int

const (
	Profit Field = iota
	Loss
	Note
)

func (f Field) String() string {
	switch f {
	case Profit:
		return "profit"
	case Loss:
		return "loss"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// ParseField parses a field name.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "profit":
		return Profit, nil
	case "loss":
		return Loss, nil
	case "note", "notes":
		return Note, nil
	default:
		return 0, fmt.Errorf("unknown report field %q: want profit, loss or note", s)
	}
}

// MonthlyReport holds the financial notes of a month.
//
// A report starts as a draft. Once Locked it is immutable and can only be
// deleted as a whole.
type MonthlyReport struct {
	Profit decimal.NullDecimal `json:"profit"`
	Loss   decimal.NullDecimal `json:"loss"`
	Note   string              `json:"note,omitempty"`
	Locked bool                `json:"locked"`
}

// ProfitAmount returns the profit, zero when not set.
func (r MonthlyReport) ProfitAmount() Money { return INR(r.Profit.Decimal) }

// LossAmount returns the loss, zero when not set.
func (r MonthlyReport) LossAmount() Money { return INR(r.Loss.Decimal) }

// Net returns profit minus loss.
func (r MonthlyReport) Net() Money { return r.ProfitAmount().Sub(r.LossAmount()) }

// Reports is the Monthly Report Manager: one optional report per month index.
type Reports struct {
	months map[int]*MonthlyReport
}

// NewReports returns an empty set of reports.
func NewReports() *Reports {
	return &Reports{months: make(map[int]*MonthlyReport)}
}

// Get returns a copy of the report of a month and whether it exists.
func (r *Reports) Get(monthIndex int) (MonthlyReport, bool) {
	rep, ok := r.months[monthIndex]
	if !ok {
		return MonthlyReport{}, false
	}
	return *rep, true
}

// IsLocked reports whether the month has a locked report.
func (r *Reports) IsLocked(monthIndex int) bool {
	rep, ok := r.months[monthIndex]
	return ok && rep.Locked
}

// parseAmount parses a non negative amount. The empty string clears the amount.
func parseAmount(value string) (decimal.NullDecimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w %q: %v", ErrInvalidAmount, value, err)
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, fmt.Errorf("%w %q: must not be negative", ErrInvalidAmount, value)
	}
	return decimal.NewNullDecimal(d), nil
}

// Update sets a field of a month's draft report, creating the draft if the
// month has no report yet.
//
// Editing a locked month is silently ignored: Update returns false and no
// error. A malformed or negative amount is rejected before anything changes.
func (r *Reports) Update(monthIndex int, field Field, value string) (bool, error) {
	if monthIndex < 0 || monthIndex >= date.Months {
		return false, fmt.Errorf("invalid month index %d", monthIndex)
	}
	if r.IsLocked(monthIndex) {
		return false, nil
	}
	var amount decimal.NullDecimal
	switch field {
	case Profit, Loss:
		var err error
		if amount, err = parseAmount(value); err != nil {
			return false, err
		}
	case Note:
	default:
		return false, fmt.Errorf("unknown report field %v", field)
	}

	rep := r.draft(monthIndex)
	switch field {
	case Profit:
		rep.Profit = amount
	case Loss:
		rep.Loss = amount
	case Note:
		rep.Note = value
	}
	return true, nil
}

func (r *Reports) draft(monthIndex int) *MonthlyReport {
	if r.months == nil {
		r.months = make(map[int]*MonthlyReport)
	}
	rep, ok := r.months[monthIndex]
	if !ok {
		rep = &MonthlyReport{}
		r.months[monthIndex] = rep
	}
	return rep
}

// Save locks the report of a month. Saving a month with no report locks an
// empty one. It returns false if the month was already locked.
func (r *Reports) Save(monthIndex int) bool {
	if monthIndex < 0 || monthIndex >= date.Months {
		return false
	}
	rep := r.draft(monthIndex)
	if rep.Locked {
		return false
	}
	rep.Locked = true
	return true
}

// Delete removes the report of a month, locked or not. It returns false if
// there was nothing to delete.
func (r *Reports) Delete(monthIndex int) bool {
	if _, ok := r.months[monthIndex]; !ok {
		return false
	}
	delete(r.months, monthIndex)
	return true
}

// Len returns the number of reports, drafts included.
func (r *Reports) Len() int { return len(r.months) }

// All returns an iterator over all reports in month order.
func (r *Reports) All() iter.Seq2[int, MonthlyReport] {
	return func(yield func(int, MonthlyReport) bool) {
		for _, m := range slices.Sorted(maps.Keys(r.months)) {
			if !yield(m, *r.months[m]) {
				return
			}
		}
	}
}

// Locked returns an iterator over locked reports in month order.
func (r *Reports) Locked() iter.Seq2[int, MonthlyReport] {
	return func(yield func(int, MonthlyReport) bool) {
		for m, rep := range r.All() {
			if !rep.Locked {
				continue
			}
			if !yield(m, rep) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (r *Reports) Clone() *Reports {
	c := NewReports()
	for m, rep := range r.months {
		cp := *rep
		c.months[m] = &cp
	}
	return c
}

// Equal reports whether both sets hold the same reports.
func (r *Reports) Equal(o *Reports) bool {
	return maps.EqualFunc(r.months, o.months, func(a, b *MonthlyReport) bool {
		return a.Locked == b.Locked && a.Note == b.Note &&
			nullEqual(a.Profit, b.Profit) && nullEqual(a.Loss, b.Loss)
	})
}

func nullEqual(a, b decimal.NullDecimal) bool {
	return a.Valid == b.Valid && (!a.Valid || a.Decimal.Equal(b.Decimal))
}

// set installs a decoded report, used by the snapshot codec.
func (r *Reports) set(monthIndex int, rep MonthlyReport) {
	if r.months == nil {
		r.months = make(map[int]*MonthlyReport)
	}
	r.months[monthIndex] = &rep
}
