package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/JPM1118/pawshower/internal/gallery"
	"github.com/JPM1118/pawshower/internal/source"
	"github.com/spf13/cobra"
)

var watchFor time.Duration

var watchCmd = &cobra.Command{
	Use:       "watch <dog|cat>",
	Short:     "Run the auto-play shower headlessly, printing each new image",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{source.NameDog, source.NameCat},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Requests share this context, so an interrupt or the --for
		// deadline aborts an in-flight fetch too.
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if watchFor > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, watchFor)
			defer cancel()
		}

		if err := startMetrics(ctx); err != nil {
			return err
		}

		c, err := newController(args[0])
		if err != nil {
			return err
		}
		defer c.stop()

		return runWatch(ctx, c, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchFor, "for", 0, "stop after this long (0 runs until interrupted)")
	rootCmd.AddCommand(watchCmd)
}

// runWatch drives one gallery from its auto-play ticks until ctx is done.
func runWatch(ctx context.Context, c *controller, out, errOut io.Writer) error {
	name := c.store.Source().Name()

	// Priming fetch, then the flag flips whatever its outcome.
	c.store.ToggleAutoPlay(ctx)
	if ctx.Err() != nil {
		return nil
	}
	printLatest(out, errOut, c.store, nil)

	for {
		select {
		case <-c.driver.Ticks():
			before := c.store.State()
			_ = c.store.FetchOne(ctx)
			if ctx.Err() != nil {
				return nil
			}
			printLatest(out, errOut, c.store, &before)
			st := c.store.State()
			env.metrics.ObserveGallery(name, len(st.Items), st.AutoPlay)
		case <-ctx.Done():
			env.log.Info("watch stopped", "source", name, "reason", context.Cause(ctx).Error())
			return nil
		}
	}
}

// printLatest reports the outcome of the most recent fetch relative to
// the state before it.
func printLatest(out, errOut io.Writer, s *gallery.Store, before *gallery.State) {
	st := s.State()
	if st.HasError() {
		fmt.Fprintf(errOut, "%s  error: %s\n", time.Now().Format(time.TimeOnly), st.Err)
		return
	}
	if st.Empty() {
		return
	}
	latest := st.Items[0]
	if before != nil && !before.Empty() && before.Items[0].ID == latest.ID {
		return
	}
	fmt.Fprintf(out, "%s  %s  %s\n", latest.FetchedAt.Format(time.TimeOnly), latest.ID, latest.URL)
}
