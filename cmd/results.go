package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milesrun/hubhop/internal/store"
)

var resultsLimit int

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show the cheapest complete itineraries found so far",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := st.Results(ctx)
		if err != nil {
			return err
		}

		complete := filterComplete(results)
		if len(complete) == 0 {
			fmt.Println("No complete itineraries recorded yet.")
			return nil
		}

		limit := resultsLimit
		if limit <= 0 || limit > len(complete) {
			limit = len(complete)
		}

		fmt.Printf("%d complete itineraries, cheapest first:\n", len(complete))
		for i, it := range complete[:limit] {
			fmt.Printf("\n%d. total %s | easy visa %d/%d | %s by %s\n",
				i+1, formatPrice(it.TotalPrice), it.Route.EasyVisaCount(), len(it.Route),
				it.CompletedAt.Format("2006-01-02 15:04"), it.WorkerID)
			fmt.Printf("   %s\n", it.Route.String())
			for _, seg := range it.Segments {
				fmt.Printf("     • %s: %s - %s (via %v)\n",
					seg.Segment, seg.Flight.Price, seg.Flight.Duration, seg.Flight.Route)
			}
		}
		return nil
	},
}

func init() {
	resultsCmd.Flags().IntVar(&resultsLimit, "limit", 5, "max itineraries to print (0 = all)")
	rootCmd.AddCommand(resultsCmd)
}
