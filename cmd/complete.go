package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/invers/date"
	"github.com/etnz/invers/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	months := make(predict.Set, 0, date.Months)
	for i := 0; i < date.Months; i++ {
		months = append(months, strings.ToLower(date.MonthName(i)))
	}
	topics, _ := docs.Topics()
	month := map[string]complete.Predictor{"m": months}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.yaml"),
			"v":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"dashboard": {},
			"toggle":    {Args: months},
			"planner":   {Flags: month},
			"storage":   {},
			"report": {
				Sub: map[string]*complete.Command{
					"set":    {Flags: month, Args: predict.Set{"profit", "loss", "note"}},
					"lock":   {Flags: month},
					"delete": {Flags: month},
					"show":   {Flags: month},
				},
			},
			"coach": {Flags: month},
			"profile": {Flags: map[string]complete.Predictor{
				"name":         predict.Something,
				"image":        predict.Files("*"),
				"export-image": predict.Files("*"),
			}},
			"theme": {Flags: map[string]complete.Predictor{
				"mode":  predict.Set{"light", "dark"},
				"color": predict.Set{"green", "pink"},
			}},
			"notify": {Flags: map[string]complete.Predictor{
				"enable":  predict.Nothing,
				"disable": predict.Nothing,
				"time":    predict.Something,
				"test":    predict.Nothing,
			}},
			"run": {Flags: map[string]complete.Predictor{
				"for": predict.Something,
				"q":   predict.Nothing,
			}},
			"inspect":  {Args: predict.Set{"$", "$.ledger", "$.reports", "$.profile", "$.theme", "$.notification"}},
			"topic":    {Args: predict.Set(topics)},
			"complete": {},
		},
	}
}

type completeCmd struct{}

func (*completeCmd) Name() string     { return "complete" }
func (*completeCmd) Synopsis() string { return "print the shell completion setup" }
func (*completeCmd) Usage() string {
	return `invers complete

  Prints the line to add to ~/.bashrc to complete invers commands.
`
}

func (*completeCmd) SetFlags(*flag.FlagSet) {}

func (*completeCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	exe, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("complete -C %s invers\n", exe)
	return subcommands.ExitSuccess
}
