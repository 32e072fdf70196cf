package cmd

import (
	"context"
	"flag"

	"github.com/etnz/invers/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the total invested and the estimated units" }
func (*dashboardCmd) Usage() string {
	return `invers dashboard

  Shows the profile, the total invested, the prices and the yearly progress.
`
}

func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (*dashboardCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) subcommands.ExitStatus {
		d := renderer.NewDashboard(s.tracker.Profile(), s.tracker.Stats())
		printMarkdown(renderer.RenderDashboard(d), s.tracker.Theme().Dark)
		return subcommands.ExitSuccess
	})
}
