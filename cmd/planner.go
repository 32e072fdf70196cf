package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invers/date"
	"github.com/etnz/invers/renderer"
	"github.com/google/subcommands"
)

type plannerCmd struct {
	month string
}

func (*plannerCmd) Name() string     { return "planner" }
func (*plannerCmd) Synopsis() string { return "show the calendar of a month" }
func (*plannerCmd) Usage() string {
	return `invers planner [-m <month>]

  Shows the contributed days of a month and its report.
`
}

func (c *plannerCmd) SetFlags(f *flag.FlagSet) { monthVar(f, &c.month) }

func (c *plannerCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, err := date.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withSession(ctx, func(s *session) subcommands.ExitStatus {
		snap := s.tracker.Snapshot()
		printMarkdown(renderer.RenderPlanner(renderer.NewPlanner(m, snap.Ledger, snap.Reports)), snap.Theme.Dark)
		return subcommands.ExitSuccess
	})
}
