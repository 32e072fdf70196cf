package cmd

import (
	"flag"
	"time"

	"github.com/etnz/invers/date"
)

// monthVar defines a -m flag holding a month, current month by default.
func monthVar(f *flag.FlagSet, p *string) {
	f.StringVar(p, "m", date.MonthName(int(time.Now().Month())-1), "Month, as a number from 1 to 12 or an English name")
}
