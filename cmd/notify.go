package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invers/date"
	"github.com/etnz/invers/notify"
	"github.com/google/subcommands"
)

type notifyCmd struct {
	enable  bool
	disable bool
	time    string
	test    bool
}

func (*notifyCmd) Name() string     { return "notify" }
func (*notifyCmd) Synopsis() string { return "configure the daily reminder" }
func (*notifyCmd) Usage() string {
	return `invers notify [-enable|-disable] [-time HH:MM] [-test]

  Configures the daily reminder. Enabling it asks for the permission to show
  reminders if it was never given. -test sends a reminder right away.
`
}

func (c *notifyCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.enable, "enable", false, "Enable the daily reminder")
	f.BoolVar(&c.disable, "disable", false, "Disable the daily reminder")
	f.StringVar(&c.time, "time", "", "Time of the reminder, HH:MM")
	f.BoolVar(&c.test, "test", false, "Send a test reminder now")
}

func (c *notifyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.enable && c.disable {
		fmt.Fprintln(os.Stderr, "Error: -enable and -disable are exclusive")
		return subcommands.ExitUsageError
	}
	var at date.TimeOfDay
	if c.time != "" {
		var err error
		if at, err = date.ParseTime(c.time); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	return withSession(ctx, func(s *session) subcommands.ExitStatus {
		capability := notify.NewTerminal(os.Stdin, os.Stdout, s.permissions(ctx))
		sched := notify.NewScheduler(s.tracker.Notification(), date.SystemClock{}, capability, s.log, nil)

		switch {
		case c.enable:
			sched.Enable(ctx)
		case c.disable:
			sched.Disable()
		}
		if c.time != "" {
			sched.SaveTime(ctx, at)
		}
		s.tracker.SetNotification(ctx, sched.Config())

		if c.test {
			err := sched.Test(ctx)
			switch {
			case errors.Is(err, notify.ErrDenied):
				fmt.Fprintln(os.Stderr, "Permission denied, test reminder not shown.")
			case err != nil:
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}

		cfg := sched.Config()
		fmt.Printf("Reminder: %s at %s (permission %s)\n", sched.State(), cfg.Time, capability.Permission(ctx))
		return subcommands.ExitSuccess
	})
}
