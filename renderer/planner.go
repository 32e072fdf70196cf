package renderer

import (
	"strconv"
	"time"

	"github.com/etnz/invers"
	"github.com/etnz/invers/date"
)

// Planner is the calendar of one month with its monthly report.
type Planner struct {
	Month     int // zero-based index
	Year      int
	Weeks     [][]string
	Days      int // contributed days in the month
	Report    invers.MonthlyReport
	HasReport bool
}

// NewPlanner lays out the month on the planner calendar year.
func NewPlanner(monthIndex int, l *invers.Ledger, r *invers.Reports) *Planner {
	p := &Planner{
		Month: monthIndex,
		Year:  date.PlannerYear,
		Days:  l.MonthCount(monthIndex),
	}
	p.Report, p.HasReport = r.Get(monthIndex)

	week := make([]string, 0, 7)
	for range date.FirstWeekday(monthIndex, p.Year) - time.Sunday {
		week = append(week, "")
	}
	for day := 1; day <= date.DaysInMonth(monthIndex, p.Year); day++ {
		cell := strconv.Itoa(day)
		if l.IsContributed(invers.Day(monthIndex, day)) {
			cell = "**" + cell + "** ✓"
		}
		week = append(week, cell)
		if len(week) == 7 {
			p.Weeks = append(p.Weeks, week)
			week = make([]string, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, "")
		}
		p.Weeks = append(p.Weeks, week)
	}
	return p
}

// Name returns the month name.
func (p *Planner) Name() string { return date.MonthName(p.Month) }

// Invested returns the amount contributed in the month, both assets.
func (p *Planner) Invested() invers.Money {
	n := invers.Q(p.Days)
	return invers.DailyAmountA.Mul(n).Add(invers.DailyAmountB.Mul(n))
}

func (p *Planner) Profit() string { return amount(p.Report.Profit.Valid, p.Report.ProfitAmount()) }
func (p *Planner) Loss() string   { return amount(p.Report.Loss.Valid, p.Report.LossAmount()) }

func amount(set bool, m invers.Money) string {
	if !set {
		return "-"
	}
	return m.Whole()
}
