package renderer

import (
	"github.com/etnz/invers"
	"github.com/etnz/invers/date"
)

// Record is a locked monthly report.
type Record struct {
	Name   string
	Report invers.MonthlyReport
}

func (r Record) Profit() string { return r.Report.ProfitAmount().Whole() }
func (r Record) Loss() string   { return r.Report.LossAmount().Whole() }
func (r Record) Net() string    { return r.Report.Net().SignedString() }

// Storage is the list of locked reports and their balance.
type Storage struct {
	Balance invers.Balance
	Records []Record
}

// NewStorage collects the locked reports, drafts are left out.
func NewStorage(r *invers.Reports) *Storage {
	s := &Storage{Balance: invers.NewBalance(r)}
	for m, rep := range r.Locked() {
		s.Records = append(s.Records, Record{Name: date.MonthName(m), Report: rep})
	}
	return s
}
