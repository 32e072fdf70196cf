package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invers/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	dark bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `invers topic [<topic>...]

  Shows documentation for the given topics, the list of topics by default.
  "*" shows all of them.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dark, "dark", false, "Style for a dark terminal")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{docs.Index}
	}
	doc, err := docs.Concat(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc, c.dark)
	return subcommands.ExitSuccess
}
