package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/JPM1118/pawshower/internal/source"
	"github.com/spf13/cobra"
)

var fetchCount int

var fetchCmd = &cobra.Command{
	Use:       "fetch <dog|cat>",
	Short:     "Fetch images and print the gallery (non-interactive)",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{source.NameDog, source.NameCat},
	RunE: func(cmd *cobra.Command, args []string) error {
		if fetchCount < 1 {
			return fmt.Errorf("-n must be at least 1, got %d", fetchCount)
		}

		c, err := newController(args[0])
		if err != nil {
			return err
		}
		defer c.stop()

		for i := 0; i < fetchCount; i++ {
			_ = c.store.GetOne(cmd.Context())
		}

		st := c.store.State()
		if !st.Empty() {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tID\tURL")
			fmt.Fprintln(w, "─\t──\t───")
			for i, it := range st.Items {
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, it.ID, it.URL)
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}

		if st.HasError() {
			if st.Empty() {
				return fmt.Errorf("fetch %s: %s", args[0], st.Err)
			}
			fmt.Fprintf(os.Stderr, "last error: %s\n", st.Err)
		}
		return nil
	},
}

func init() {
	fetchCmd.Flags().IntVarP(&fetchCount, "count", "n", 1, "number of images to fetch")
	rootCmd.AddCommand(fetchCmd)
}
