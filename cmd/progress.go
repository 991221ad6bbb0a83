package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/milesrun/hubhop/internal/model"
	"github.com/milesrun/hubhop/internal/refdata"
	"github.com/milesrun/hubhop/internal/store"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect or reset search progress",
}

var progressStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how much of the route space is resolved",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ds, err := refdata.Load()
		if err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := st.Results(ctx)
		if err != nil {
			return err
		}

		byStatus := make(map[model.ItineraryStatus]int)
		for _, it := range results {
			byStatus[it.Status]++
		}

		total := ds.Combinations()
		resolved := st.ResolvedCount()
		fmt.Printf("Route space:   %d routes\n", total)
		fmt.Printf("Resolved:      %d (%.1f%%)\n", resolved, float64(resolved)/float64(total)*100)
		fmt.Printf("Complete:      %d itineraries\n", byStatus[model.ItineraryStatusComplete])
		if resolved < total {
			fmt.Printf("Remaining:     %d routes; run `hubhop search` to continue\n", total-resolved)
		}
		return nil
	},
}

var progressClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget resolved routes so they are searched again",
	Long:  "Removes the resolved-signature record. Completed results are kept. Errored routes are never retried automatically, so this is the way to re-queue them after a transient outage.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Store.Driver != "" && cfg.Store.Driver != "file" {
			return eris.Errorf("progress clear supports the file driver only; truncate resolved_routes manually for %q", cfg.Store.Driver)
		}
		if err := os.Remove(cfg.Store.ProgressFile); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("No progress recorded.")
				return nil
			}
			return eris.Wrap(err, "remove progress file")
		}
		fmt.Printf("Cleared %s; all routes are pending again.\n", cfg.Store.ProgressFile)
		return nil
	},
}

func init() {
	progressCmd.AddCommand(progressStatusCmd)
	progressCmd.AddCommand(progressClearCmd)
	rootCmd.AddCommand(progressCmd)
}
