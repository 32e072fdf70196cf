package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/invers"
	"github.com/etnz/invers/date"
	"github.com/google/subcommands"
)

type toggleCmd struct{}

func (*toggleCmd) Name() string     { return "toggle" }
func (*toggleCmd) Synopsis() string { return "mark or unmark a day as contributed" }
func (*toggleCmd) Usage() string {
	return `invers toggle <month> <day>

  Flips the contribution flag of a day. The month is a number from 1 to 12
  or an English name.

Usage Examples:
$ invers toggle march 14
`
}

func (*toggleCmd) SetFlags(*flag.FlagSet) {}

// parseDay parses the month and day arguments of a ledger day.
func parseDay(month, day string) (invers.DayKey, error) {
	m, err := date.ParseMonth(month)
	if err != nil {
		return invers.DayKey{}, err
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return invers.DayKey{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	if n := date.DaysInMonth(m, date.PlannerYear); d < 1 || d > n {
		return invers.DayKey{}, fmt.Errorf("invalid day %d: %s has %d days", d, date.MonthName(m), n)
	}
	return invers.Day(m, d), nil
}

func (*toggleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: want <month> <day>")
		return subcommands.ExitUsageError
	}
	k, err := parseDay(f.Arg(0), f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withSession(ctx, func(s *session) subcommands.ExitStatus {
		on := s.tracker.Toggle(ctx, k)
		what := "unmarked"
		if on {
			what = "marked as contributed"
		}
		fmt.Printf("%s %d %s, %d days contributed in total.\n", date.MonthName(k.Month), k.Day, what, s.tracker.Stats().TotalDays)
		return subcommands.ExitSuccess
	})
}
