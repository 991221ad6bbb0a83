package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milesrun/hubhop/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "hubhop",
	Short: "Cheapest single-carrier six-continent itinerary search",
	Long:  "Enumerates six-continent routes, confirms every segment is flyable on the target airline via its hub, and ranks complete itineraries by total fare. Re-runnable: resolved routes are skipped on subsequent invocations.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
