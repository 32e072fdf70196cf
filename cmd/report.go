package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/invers"
	"github.com/etnz/invers/date"
	"github.com/etnz/invers/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "edit, lock or delete a monthly report" }
func (*reportCmd) Usage() string {
	return `invers report <set|lock|delete|show> [-m <month>] [<field> <value>]

  set    sets a field (profit, loss or note) of the month's draft report.
         An empty value clears the field.
  lock   saves and locks the report. A locked report cannot be edited.
  delete removes the report, locked or not.
  show   shows the report.

Usage Examples:
$ invers report set -m jan profit 500
$ invers report lock -m jan
`
}

func (*reportCmd) SetFlags(*flag.FlagSet) {}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	verb := f.Arg(0)

	var month string
	fs := flag.NewFlagSet("report "+verb, flag.ContinueOnError)
	monthVar(fs, &month)
	if err := fs.Parse(f.Args()[1:]); err != nil {
		return subcommands.ExitUsageError
	}
	m, err := date.ParseMonth(month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	name := date.MonthName(m)

	switch verb {
	case "set":
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "Error: want <field> [<value>]")
			return subcommands.ExitUsageError
		}
		field, err := invers.ParseField(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		value := strings.Join(fs.Args()[1:], " ")
		return withSession(ctx, func(s *session) subcommands.ExitStatus {
			applied, err := s.tracker.UpdateReport(ctx, m, field, value)
			switch {
			case err != nil:
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			case !applied:
				fmt.Fprintf(os.Stderr, "%s report is locked, edit ignored.\n", name)
			default:
				fmt.Printf("%s report: %s updated.\n", name, field)
			}
			return subcommands.ExitSuccess
		})

	case "lock", "save":
		return withSession(ctx, func(s *session) subcommands.ExitStatus {
			if s.tracker.SaveReport(ctx, m) {
				fmt.Printf("%s report saved.\n", name)
			} else {
				fmt.Printf("%s report was already saved.\n", name)
			}
			return subcommands.ExitSuccess
		})

	case "delete":
		return withSession(ctx, func(s *session) subcommands.ExitStatus {
			if s.tracker.DeleteReport(ctx, m) {
				fmt.Printf("%s report deleted.\n", name)
			} else {
				fmt.Printf("%s has no report.\n", name)
			}
			return subcommands.ExitSuccess
		})

	case "show":
		return withSession(ctx, func(s *session) subcommands.ExitStatus {
			snap := s.tracker.Snapshot()
			printMarkdown(renderer.RenderPlanner(renderer.NewPlanner(m, snap.Ledger, snap.Reports)), snap.Theme.Dark)
			return subcommands.ExitSuccess
		})
	}
	fmt.Fprintf(os.Stderr, "Error: unknown action %q\n", verb)
	return subcommands.ExitUsageError
}
