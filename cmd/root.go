package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "pairbot",
	Short: "Polymarket binary-pair arbitrage bot",
	Long: `Pairbot scans keyword-filtered binary markets on the Polymarket CLOB,
detects arbitrage when the YES and NO buy prices sum below a threshold,
and locks the spread with two sequential fill-or-kill buys.

The bot polls the CLOB REST API on a fixed interval, tracks daily and
cumulative results in a ledger, and posts a daily summary to Discord.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	// Flags can be added here if needed
}
