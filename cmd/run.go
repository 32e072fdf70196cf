package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/etnz/invers"
	"github.com/etnz/invers/date"
	"github.com/etnz/invers/engine"
	"github.com/etnz/invers/metrics"
	"github.com/etnz/invers/notify"
	"github.com/google/subcommands"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

type runCmd struct {
	duration time.Duration
	quiet    bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "follow the live prices and fire the daily reminder" }
func (*runCmd) Usage() string {
	return `invers run [-for <duration>] [-q]

  Runs the tracker: prices move every few seconds and the daily reminder is
  checked every 30 seconds. Changes saved by other invers commands, such as
  notify -disable, are picked up at the same cadence. Stops on interrupt or
  after -for.
  When metrics.addr is configured, /metrics and /healthz are served there.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.duration, "for", 0, "Stop after this duration, 0 runs until interrupted")
	f.BoolVar(&c.quiet, "q", false, "Do not print the prices")
}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if c.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.duration)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	s, err := openSession(ctx, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	capability := notify.NewLog(s.log, s.permissions(ctx))
	sched := notify.NewScheduler(s.tracker.Notification(), date.SystemClock{}, capability, s.log, m)

	seed := s.cfg.Feed.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	e := engine.New(s.tracker, invers.NewFeed(invers.DefaultQuote(), seed), sched, engine.Options{
		PriceInterval: s.cfg.Feed.Interval,
		PollInterval:  s.cfg.Notify.Poll,
		Log:           s.log,
		Metrics:       m,
	})
	if !c.quiet {
		e.Subscribe(ticker(term.IsTerminal(int(os.Stdout.Fd()))))
	}

	if addr := s.cfg.Metrics.Addr; addr != "" {
		srv := &http.Server{Addr: addr, Handler: router(reg), ReadHeaderTimeout: 5 * time.Second}
		go serve(ctx, srv, s.log)
	}

	// changes saved by other invers commands reach the running engine.
	go e.Follow(ctx, s.adapter, s.cfg.Notify.Poll)
	e.Run(ctx)
	if !c.quiet {
		fmt.Println()
	}
	return subcommands.ExitSuccess
}

// ticker prints one line per stats update, in place on a terminal.
func ticker(tty bool) func(invers.Stats) {
	return func(st invers.Stats) {
		line := fmt.Sprintf("BTC %s  Gold %s  invested %s  est. %s BTC  %s g",
			st.Quote.A.Whole(), st.Quote.B.Whole(), st.TotalInvested().Whole(), st.UnitsA.Fixed(8), st.UnitsB.Fixed(4))
		if tty {
			fmt.Printf("\r%s", line)
			return
		}
		fmt.Println(line)
	}
}

func router(reg *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods(http.MethodGet)
	return r
}

func serve(ctx context.Context, srv *http.Server, log zerolog.Logger) {
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()
	log.Info().Str("addr", srv.Addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("metrics server failed")
	}
}
