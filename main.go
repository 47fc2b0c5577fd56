package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"r90calc/internal/clock"
	"r90calc/internal/prefs"
	"r90calc/internal/render"
	"r90calc/internal/sleep"
)

const appVersion = "0.2.0"

// Layouts accepted by --at and --wake besides a bare HH:MM.
var dateLayouts = []string{"2006-01-02 15:04", "2006-01-02T15:04"}

type options struct {
	wake       string
	at         string
	configPath string
	port       int
	watch      bool
	verbose    bool
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:   "r90calc",
		Short: "R90 bedtime calculator (CLI, live view or web)",
		Long: "r90calc counts whole 90-minute sleep cycles back from your wake-up time,\n" +
			"plus 15 minutes to fall asleep, and lists the bedtimes still ahead of you.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, _ := cmd.Flags().GetBool("version"); ok {
				fmt.Printf("r90calc v%s\n", appVersion)
				return nil
			}
			return run(cmd.Context(), opts)
		},
	}

	cmd.Version = appVersion
	cmd.SetVersionTemplate("r90calc v{{.Version}}\n")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.Flags().StringVar(&opts.wake, "wake", "", "Set and remember the wake-up time (HH:MM, or YYYY-MM-DD HH:MM from a picker)")
	cmd.Flags().StringVar(&opts.at, "at", "", "Evaluate at this local time instead of now (YYYY-MM-DD HH:MM or HH:MM)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Preferences file (default $"+prefs.EnvConfig+" or user config dir)")
	cmd.Flags().IntVar(&opts.port, "port", 0, "Run web UI on this port (e.g. 8490)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Redraw every second until interrupted")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	path := opts.configPath
	if path == "" {
		if path, err = prefs.DefaultPath(); err != nil {
			return err
		}
	}
	store, err := prefs.Open(path, logger)
	if err != nil {
		return err
	}

	if strings.TrimSpace(opts.wake) != "" {
		t, err := parseClock(opts.wake, time.Now())
		if err != nil {
			return fmt.Errorf("invalid --wake: %w", err)
		}
		if err := store.SetFromTime(t); err != nil {
			return err
		}
	}

	var clk clock.Clock = clock.System{}
	if opts.at != "" {
		t, err := parseClock(opts.at, time.Now())
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		clk = clock.Fixed{T: t}
	}

	switch {
	case opts.port > 0:
		printListenAddrs(opts.port)
		return serveWeb(ctx, opts.port, store, clk, logger)
	case opts.watch:
		return watch(ctx, store.WakeUp(), clk, logger)
	}

	p, err := sleep.NewPlan(store.WakeUp(), clk.Now())
	if err != nil {
		return err
	}
	render.Text(os.Stdout, p)
	return nil
}

func watch(ctx context.Context, w sleep.WallClock, clk clock.Clock, logger *zap.SugaredLogger) error {
	logger.Debugw("watch started", "wake_up", w.String())
	err := clock.Tick(ctx, clk, time.Second, func(now time.Time) {
		p, err := sleep.NewPlan(w, now)
		if err != nil {
			logger.Errorw("compute plan", "error", err)
			return
		}
		render.Clear(os.Stdout)
		render.Text(os.Stdout, p)
	})
	logger.Debugw("watch stopped", "reason", err)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// parseClock reads a local time as "YYYY-MM-DD HH:MM" or a bare HH:MM,
// which lands on ref's day.
func parseClock(s string, ref time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if w, err := sleep.ParseWallClock(s); err == nil {
		return time.Date(ref.Year(), ref.Month(), ref.Day(), w.Hour, w.Minute, 0, 0, ref.Location()), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, ref.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q, expected YYYY-MM-DD HH:MM or HH:MM", s)
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return l.Sugar(), nil
}
