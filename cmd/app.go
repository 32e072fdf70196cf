// Package cmd implements the invers command line application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/invers"
	"github.com/etnz/invers/config"
	"github.com/etnz/invers/metrics"
	"github.com/etnz/invers/notify"
	"github.com/etnz/invers/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&dashboardCmd{}, "tracking")
	c.Register(&toggleCmd{}, "tracking")
	c.Register(&plannerCmd{}, "tracking")

	c.Register(&reportCmd{}, "reports")
	c.Register(&storageCmd{}, "reports")
	c.Register(&coachCmd{}, "reports")

	c.Register(&profileCmd{}, "settings")
	c.Register(&themeCmd{}, "settings")
	c.Register(&notifyCmd{}, "settings")

	c.Register(&runCmd{}, "")
	c.Register(&inspectCmd{}, "")
	c.Register(&topicCmd{}, "")
	c.Register(&completeCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configPath = flag.String("config", config.DefaultPath(), "Path to the YAML configuration file")

// Verbose enables debug logging.
var Verbose = flag.Bool("v", false, "Verbose logging")

// session is the state opened by a command.
type session struct {
	cfg     *config.Config
	log     zerolog.Logger
	kv      store.KV
	adapter *store.Adapter
	tracker *invers.Tracker
}

// openSession loads the configuration and the saved state. m may be nil.
func openSession(ctx context.Context, m *metrics.Collectors) (*session, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.Level()
	if *Verbose {
		level = zerolog.DebugLevel
	}
	log := newLogger(os.Stderr, level)

	kv, err := openKV(cfg.Store)
	if err != nil {
		return nil, err
	}
	adapter := store.NewAdapter(kv, cfg.Store.Key, log, m)
	return &session{
		cfg:     cfg,
		log:     log,
		kv:      kv,
		adapter: adapter,
		tracker: invers.NewTracker(adapter.Load(ctx), adapter, log),
	}, nil
}

// permissions returns where the notification permission is kept: the saved
// state. The configured permission stands for an answer never given.
func (s *session) permissions(ctx context.Context) notify.PermissionStore {
	if s.tracker.Permission() == notify.Undetermined {
		if p := s.cfg.Permission(); p != notify.Undetermined {
			s.tracker.SetPermission(ctx, p)
		}
	}
	return s.tracker
}

func (s *session) Close() error { return s.kv.Close() }

func openKV(c config.StoreConfig) (store.KV, error) {
	switch c.Backend {
	case config.BackendFile:
		return store.NewFile(c.Dir, c.QuotaBytes)
	case config.BackendMemory:
		return store.NewMemory(c.QuotaBytes), nil
	case config.BackendRedis:
		return store.DialRedis(c.Redis.Addr, c.Redis.DB, c.Redis.Prefix), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", c.Backend)
}

// withSession opens a session, runs fn and closes the session. Errors are
// reported on stderr.
func withSession(ctx context.Context, fn func(*session) subcommands.ExitStatus) subcommands.ExitStatus {
	s, err := openSession(ctx, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	status := fn(s)
	if err := s.Close(); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn().Err(err).Msg("cannot close the store")
	}
	return status
}
