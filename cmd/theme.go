package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invers"
	"github.com/google/subcommands"
)

type themeCmd struct {
	mode  string
	color string
}

func (*themeCmd) Name() string     { return "theme" }
func (*themeCmd) Synopsis() string { return "show or change the appearance" }
func (*themeCmd) Usage() string {
	return `invers theme [-mode light|dark] [-color green|pink]

  Shows or changes the appearance. Dark mode styles the markdown output for
  dark terminals.
`
}

func (c *themeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", "", "light or dark")
	f.StringVar(&c.color, "color", "", "green (Emerald) or pink (Rose)")
}

func (c *themeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.color != "" && invers.ColorName(c.color) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown color %q: want %s or %s\n", c.color, invers.Emerald, invers.Rose)
		return subcommands.ExitUsageError
	}
	return withSession(ctx, func(s *session) subcommands.ExitStatus {
		t := s.tracker.Theme()
		switch c.mode {
		case "":
		case "dark":
			t.Dark = true
		case "light":
			t.Dark = false
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q: want light or dark\n", c.mode)
			return subcommands.ExitUsageError
		}
		if c.color != "" {
			t.ColorKey = c.color
		}
		s.tracker.SetTheme(ctx, t)

		t = s.tracker.Theme()
		mode := "light"
		if t.Dark {
			mode = "dark"
		}
		fmt.Printf("Mode:  %s\nColor: %s (%s)\n", mode, invers.ColorName(t.ColorKey), t.ColorKey)
		return subcommands.ExitSuccess
	})
}
