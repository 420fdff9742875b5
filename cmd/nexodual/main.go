package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "nexodual",
	Short: "Dual-investment deal analyzer",
	Long: `nexodual evaluates fixed-term, fixed-rate dual-investment deals against
the statistical behavior of the underlying asset: support levels, momentum,
volume anomalies and a Monte Carlo price forecast, combined into a single
enter/wait/avoid recommendation.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
