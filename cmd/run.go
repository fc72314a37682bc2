package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jvaldes/pairbot/internal/app"
	"github.com/jvaldes/pairbot/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the arbitrage bot",
	Long: `Starts the pairbot scan loop, which will:
1. Build a catalog of keyword-matching binary markets from the CLOB API
2. Poll both legs' buy prices for every cataloged pair on a fixed interval
3. Detect arbitrage when YES price + NO price < threshold
4. Execute both legs sequentially with fill-or-kill buys

Use --keyword to restrict the catalog to a single keyword for debugging.`,
	RunE: runBot,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("keyword", "k", "", "Catalog only markets matching this single keyword (for debugging)")
}

func runBot(cmd *cobra.Command, args []string) error {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	keyword, _ := cmd.Flags().GetString("keyword")

	opts := &app.Options{
		SingleKeyword: keyword,
	}

	application, err := app.New(cfg, logger, opts)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
