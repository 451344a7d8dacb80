package cmd

import (
	"context"
	"fmt"

	"github.com/JPM1118/pawshower/internal/autoplay"
	"github.com/JPM1118/pawshower/internal/gallery"
	"github.com/JPM1118/pawshower/internal/metrics"
	"github.com/JPM1118/pawshower/internal/notify"
	"github.com/JPM1118/pawshower/internal/source"
	"github.com/JPM1118/pawshower/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var galleryCmd = &cobra.Command{
	Use:       "gallery <dog|cat>",
	Short:     "Open the interactive gallery for one animal",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{source.NameDog, source.NameCat},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(galleryCmd)
}

// controller is one gallery with its source and auto-play driver wired
// together.
type controller struct {
	store  *gallery.Store
	driver *autoplay.Driver
}

func newController(name string) (*controller, error) {
	cfg := env.cfg
	endpoint := cfg.Sources.DogEndpoint
	if name == source.NameCat {
		endpoint = cfg.Sources.CatEndpoint
	}

	src, err := source.New(name,
		source.WithEndpoint(endpoint),
		source.WithTimeout(cfg.Sources.RequestTimeout.Duration),
	)
	if err != nil {
		return nil, err
	}

	log := env.log.With("source", name)
	driver, err := autoplay.New(cfg.AutoPlay.Interval.Duration, autoplay.WithLogger(log))
	if err != nil {
		return nil, err
	}

	store := gallery.New(source.Instrument(src, env.metrics),
		gallery.WithBlockAutoPlayOnError(cfg.AutoPlay.BlockOnError),
		gallery.WithLogger(log),
		gallery.WithAutoPlayObserver(func(enabled bool) {
			if err := driver.Sync(enabled); err != nil {
				log.Error("auto-play sync failed", "error", err)
			}
		}),
	)
	return &controller{store: store, driver: driver}, nil
}

func (c *controller) stop() {
	c.store.SetAutoPlay(false)
	_ = c.driver.Stop()
}

// startMetrics serves the collectors when a metrics address is configured.
func startMetrics(ctx context.Context) error {
	if env.cfg.Metrics.Addr == "" {
		return nil
	}
	srv, err := metrics.Listen(env.cfg.Metrics.Addr, env.metrics, env.log)
	if err != nil {
		return err
	}
	srv.Serve(ctx)
	return nil
}

func runTUI(ctx context.Context, start string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var panels []*tui.Panel
	for _, name := range []string{source.NameDog, source.NameCat} {
		c, err := newController(name)
		if err != nil {
			return err
		}
		defer c.stop()
		panels = append(panels, &tui.Panel{Store: c.store, Driver: c.driver})
	}

	if err := startMetrics(ctx); err != nil {
		return err
	}

	n := env.cfg.Notifications
	opts := []tui.Option{
		tui.WithContext(ctx),
		tui.WithBell(notify.NewBell(n.TerminalBell, n.BellDebounce.Duration)),
		tui.WithEventBar(notify.NewBar(n.EventBuffer)),
		tui.WithMetrics(env.metrics),
	}
	if start != "" {
		opts = append(opts, tui.WithStartGallery(start))
	}

	program := tea.NewProgram(tui.NewApp(panels, opts...), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("gallery: %w", err)
	}
	return nil
}
