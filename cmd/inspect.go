package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/invers/store"
	"github.com/google/subcommands"
)

type inspectCmd struct{}

func (*inspectCmd) Name() string     { return "inspect" }
func (*inspectCmd) Synopsis() string { return "query the saved document with a JSONPath expression" }
func (*inspectCmd) Usage() string {
	return `invers inspect [<jsonpath>]

  Evaluates a JSONPath expression on the saved document, as stored.
  The default expression "$" prints the whole document.

Usage Examples:
$ invers inspect '$.reports'
$ invers inspect '$.ledger["0-15"]'
`
}

func (*inspectCmd) SetFlags(*flag.FlagSet) {}

func (*inspectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	expr := "$"
	if f.NArg() > 0 {
		expr = f.Arg(0)
	}
	return withSession(ctx, func(s *session) subcommands.ExitStatus {
		raw, err := s.adapter.Raw(ctx)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(os.Stderr, "Nothing saved yet.")
			return subcommands.ExitFailure
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		out, err := inspect(raw, expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	})
}

// inspect evaluates expr on the JSON document raw and returns the indented result.
func inspect(raw []byte, expr string) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("saved document is not valid JSON: %w", err)
	}
	v, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", expr, err)
	}
	return json.MarshalIndent(v, "", "  ")
}
