package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JPM1118/pawshower/internal/config"
	"github.com/JPM1118/pawshower/internal/logging"
	"github.com/JPM1118/pawshower/internal/metrics"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	metricsAddr string
	logLevel    string
)

// env is resolved once by the root command before any subcommand runs.
var env struct {
	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Collectors
	closer  io.Closer
}

var rootCmd = &cobra.Command{
	Use:   "pawshower",
	Short: "Pawshower: a terminal shower of random dog and cat pictures",
	Long: `Pawshower fetches random dog and cat images from public APIs and keeps
the twelve most recent in a gallery, optionally refilling it on a timer.

Run without arguments to launch the interactive home screen.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context(), "")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// setup loads configuration, applies flag overrides and builds the
// logger and metric collectors.
func setup() error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	if metricsAddr != "" {
		cfg.Metrics.Addr = metricsAddr
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log, closer, err := logging.New(logging.Opts{File: cfg.Log.File, Level: level})
	if err != nil {
		return err
	}

	env.cfg = cfg
	env.log = log
	env.closer = closer
	env.metrics = metrics.New()
	log.Debug("config loaded", "path", path, "interval", cfg.AutoPlay.Interval.String())
	return nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if env.closer != nil {
		_ = env.closer.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
