package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"layoutkit/internal/config"
	"layoutkit/internal/layout"
	"layoutkit/internal/metrics"
	"layoutkit/internal/trace"
	"layoutkit/internal/ui"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// flags shared by every command.
type flags struct {
	configPath  string
	metricsAddr string
	verbose     bool
}

func main() {
	var f flags
	rootCmd := &cobra.Command{
		Use:   "layoutdemo",
		Short: "Constraint layout demo in the terminal",
		Long: `layoutdemo lays out a small list editor with the layoutkit constraint
engine and draws it in the terminal.

Resize the terminal to watch the layout follow. Scroll the list with the
mouse wheel, add rows with a and delete the selected row with d. Press
space for the command menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), f)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "config file (default ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log every edge change")

	rootCmd.AddCommand(
		dumpCmd(&f),
		configCmd(&f),
		versionCmd(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and lets flags override it.
func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	if f.metricsAddr != "" {
		cfg.Metrics.Addr = f.metricsAddr
	}
	if f.verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// session holds what a command needs to build a UI, and how to tear it
// down.
type session struct {
	cfg     config.Config
	logger  *log.Logger
	options []ui.Option
	closers []func(context.Context) error
}

// openSession loads the config, applies flags and starts tracing and the
// metrics server as configured. logOut receives the log when verbose.
func openSession(ctx context.Context, f flags, logOut io.Writer) (*session, error) {
	cfg, err := loadConfig(f)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: log.New(io.Discard, "", 0)}
	if cfg.Verbose {
		s.logger = log.New(logOut, "layoutdemo ", log.LstdFlags)
	}

	tp, err := trace.NewProvider(ctx, trace.Options{
		Endpoint:    cfg.Trace.Endpoint,
		ServiceName: cfg.Trace.ServiceName,
		Insecure:    cfg.Trace.Insecure,
	})
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, tp.Shutdown)
	observers := []layout.Observer{layout.LogObserver{Logger: s.logger}}

	if cfg.Metrics.Addr != "" {
		collector := metrics.New()
		srv := metrics.NewServer(cfg.Metrics.Addr, collector.Gatherer())
		if err := srv.Start(); err != nil {
			s.close()
			return nil, err
		}
		s.logger.Printf("main.openSession: metrics on http://%s/metrics", srv.Addr())
		s.closers = append(s.closers, srv.Stop)
		observers = append(observers, collector)
	}

	s.options = []ui.Option{ui.WithSolverOptions(
		layout.WithTracer(tp.Tracer()),
		layout.WithObserver(layout.NewMultiObserver(observers...)),
	)}
	return s, nil
}

// close stops everything openSession started, newest first.
func (s *session) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			s.logger.Printf("main.close: %v", err)
		}
	}
}
