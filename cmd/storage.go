package cmd

import (
	"context"
	"flag"

	"github.com/etnz/invers/renderer"
	"github.com/google/subcommands"
)

type storageCmd struct{}

func (*storageCmd) Name() string     { return "storage" }
func (*storageCmd) Synopsis() string { return "list the saved monthly reports and the net balance" }
func (*storageCmd) Usage() string {
	return `invers storage

  Lists the locked monthly reports. The net balance is the sum of their
  profits minus the sum of their losses. Drafts are not counted.
`
}

func (*storageCmd) SetFlags(*flag.FlagSet) {}

func (*storageCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) subcommands.ExitStatus {
		snap := s.tracker.Snapshot()
		printMarkdown(renderer.RenderStorage(renderer.NewStorage(snap.Reports)), snap.Theme.Dark)
		return subcommands.ExitSuccess
	})
}
