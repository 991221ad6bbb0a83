package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/milesrun/hubhop/internal/refdata"
	"github.com/milesrun/hubhop/internal/route"
)

var routesLimit int

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Enumerate and print the ranked candidate routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := refdata.Load()
		if err != nil {
			return err
		}

		fmt.Printf("Available cities per continent (visa-easy only):\n")
		for _, continent := range ds.Continents {
			cities := ds.ContinentCities[continent]
			sample := ""
			for i, c := range cities {
				if i == 3 {
					sample += ", …"
					break
				}
				if i > 0 {
					sample += ", "
				}
				sample += c.Name
			}
			fmt.Printf("  %-14s %3d cities (%s)\n", continent, len(cities), sample)
		}
		fmt.Printf("Total combinations: %d\n\n", ds.Combinations())

		enum := route.NewEnumerator(ds)
		if cfg.Routes.Ceiling > 0 {
			enum.Ceiling = cfg.Routes.Ceiling
		}
		if cfg.Routes.MaxSampled > 0 {
			enum.MaxSampled = cfg.Routes.MaxSampled
		}
		routes := enum.Enumerate()

		limit := routesLimit
		if limit <= 0 || limit > len(routes) {
			limit = len(routes)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tSCORE\tVISA\tROUTE")
		for i, r := range routes[:limit] {
			fmt.Fprintf(w, "%d\t%d\t%d/%d\t%s\n",
				i+1, route.Score(r), r.EasyVisaCount(), len(r), r.String())
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d of %d routes shown\n", limit, len(routes))
		return nil
	},
}

func init() {
	routesCmd.Flags().IntVar(&routesLimit, "limit", 20, "max routes to print (0 = all)")
	rootCmd.AddCommand(routesCmd)
}
