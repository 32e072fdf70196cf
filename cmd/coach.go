package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/invers/coach"
	"github.com/etnz/invers/date"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type coachCmd struct {
	month string
}

func (*coachCmd) Name() string     { return "coach" }
func (*coachCmd) Synopsis() string { return "get a commentary on your monthly reports" }
func (*coachCmd) Usage() string {
	return `invers coach [-m <month>] [<question>...]

  Asks a Gemini model for a commentary on a month's report, or on the whole
  year without -m. Needs the GEMINI_API_KEY environment variable.
`
}

func (c *coachCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to comment on, the whole year by default")
}

func (c *coachCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month := -1
	if c.month != "" {
		var err error
		if month, err = date.ParseMonth(c.month); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return withSession(ctx, func(s *session) subcommands.ExitStatus {
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
			return subcommands.ExitFailure
		}
		co := coach.New(s.cfg.Coach.Model, s.tracker.Snapshot(), s.tracker.Quote())
		if err := co.Start(ctx, client); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		questions := []string{coach.Prompt(month)}
		if f.NArg() > 0 {
			questions = append(questions, strings.Join(f.Args(), " "))
		}
		dark := s.tracker.Theme().Dark
		for _, q := range questions {
			answer, err := co.Ask(ctx, &genai.Part{Text: q})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Coach failed: %v\n", err)
				return subcommands.ExitFailure
			}
			printMarkdown(answer, dark)
		}
		return subcommands.ExitSuccess
	})
}
