package invers

import "github.com/shopspring/decimal"

// The two fixed daily allocations of a contributed day.
var (
	DailyAmountA = INR(100) // BTC-like asset
	DailyAmountB = INR(10)  // gold-like asset
)

// daysPerYear is the target of the yearly progress bar.
const daysPerYear = 365

// Stats are the aggregate figures derived from the ledger, the monthly
// reports and the latest price quote.
type Stats struct {
	TotalDays int
	InvestedA Money
	InvestedB Money
	UnitsA    Quantity // estimated units bought at the current price A
	UnitsB    Quantity // estimated units bought at the current price B
	Balance   Balance
	Quote     Quote
}

// TotalInvested returns the sum invested in both assets.
func (s Stats) TotalInvested() Money { return s.InvestedA.Add(s.InvestedB) }

// YearProgress returns the fraction of a year of contributions done, capped to 1.
func (s Stats) YearProgress() decimal.Decimal {
	p := decimal.NewFromInt(int64(s.TotalDays)).Div(decimal.NewFromInt(daysPerYear))
	return decimal.Min(p, decimal.NewFromInt(1))
}

// YearPercent returns YearProgress as a percentage.
func (s Stats) YearPercent() Percent {
	return Percent(s.YearProgress().InexactFloat64() * 100)
}

// Balance is the net result of the locked monthly reports. Drafts never count.
type Balance struct {
	Profit  Money
	Loss    Money
	Net     Money
	Records int // number of locked reports
}

// NewBalance sums profit and loss over the locked reports.
func NewBalance(r *Reports) Balance {
	b := Balance{Profit: INR(0), Loss: INR(0)}
	for _, rep := range r.Locked() {
		b.Profit = b.Profit.Add(rep.ProfitAmount())
		b.Loss = b.Loss.Add(rep.LossAmount())
		b.Records++
	}
	b.Net = b.Profit.Sub(b.Loss)
	return b
}

// Compute derives Stats from its three inputs. It is a pure function, callers
// invoke it again after any mutation or price tick.
func Compute(l *Ledger, r *Reports, q Quote) Stats {
	days := l.Count()
	s := Stats{
		TotalDays: days,
		InvestedA: DailyAmountA.Mul(Q(days)),
		InvestedB: DailyAmountB.Mul(Q(days)),
		Balance:   NewBalance(r),
		Quote:     q,
	}
	s.UnitsA = s.InvestedA.DivPrice(q.A)
	s.UnitsB = s.InvestedB.DivPrice(q.B)
	return s
}
