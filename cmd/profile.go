package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invers"
	"github.com/google/subcommands"
)

type profileCmd struct {
	name        string
	image       string
	exportImage string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "show or change the profile" }
func (*profileCmd) Usage() string {
	return `invers profile [-name <name>] [-image <file>] [-export-image <file>]

  Shows the profile, or changes its name or picture. Pictures are limited to
  500 KB.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New display name")
	f.StringVar(&c.image, "image", "", "Image file to use as profile picture")
	f.StringVar(&c.exportImage, "export-image", "", "Write the profile picture to this file")
}

func (c *profileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) subcommands.ExitStatus {
		if c.name != "" {
			s.tracker.SetProfileName(ctx, c.name)
		}
		if c.image != "" {
			payload, err := os.ReadFile(c.image)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
			if err := s.tracker.SetProfileImage(ctx, payload); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: picture not changed: %v\n", err)
				return subcommands.ExitFailure
			}
		}

		p := s.tracker.Profile()
		if c.exportImage != "" {
			if p.Image == "" {
				fmt.Fprintln(os.Stderr, "Error: the profile has no picture")
				return subcommands.ExitFailure
			}
			_, payload, err := invers.DecodeImage(p.Image)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
			if err := os.WriteFile(c.exportImage, payload, 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}

		picture := "none"
		if p.Image != "" {
			if mime, payload, err := invers.DecodeImage(p.Image); err == nil {
				picture = fmt.Sprintf("%s, %d bytes", mime, len(payload))
			}
		}
		fmt.Printf("Name:    %s\nPicture: %s\n", p.Name, picture)
		return subcommands.ExitSuccess
	})
}
