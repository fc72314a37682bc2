package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jvaldes/pairbot/internal/arbitrage"
	"github.com/jvaldes/pairbot/internal/catalog"
	"github.com/jvaldes/pairbot/internal/clob"
	"github.com/jvaldes/pairbot/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single detection pass without executing",
	Long: `Performs one scan over the keyword-matching market pairs: fetches both
legs' buy prices, runs arbitrage detection, and prints any opportunities.
No orders are placed and the ledger is not touched.`,
	RunE: runScan,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

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

	client, err := clob.NewClient(&clob.ClientConfig{
		Host:   cfg.ClobHost,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("create clob client: %w", err)
	}

	cat := catalog.New(&catalog.Config{
		Lister:             client,
		Keywords:           cfg.MarketKeywords,
		InvertOutcomeOrder: cfg.InvertOutcomeOrder,
		Logger:             logger,
	})

	err = cat.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}

	detector := arbitrage.New(arbitrage.Config{
		Threshold: cfg.ArbThreshold,
		Logger:    logger,
	})

	pairs := cat.Pairs()
	fmt.Printf("Scanning %d pairs (threshold %.4f)...\n\n", len(pairs), cfg.ArbThreshold)

	found := 0
	for _, pair := range pairs {
		yesPrice, err := client.BuyPrice(ctx, pair.YesTokenID)
		if err != nil {
			fmt.Printf("  %s: YES price unavailable (%v)\n", truncate(pair.Question, 50), err)
			continue
		}

		noPrice, err := client.BuyPrice(ctx, pair.NoTokenID)
		if err != nil {
			fmt.Printf("  %s: NO price unavailable (%v)\n", truncate(pair.Question, 50), err)
			continue
		}

		opp, ok := detector.Check(pair, yesPrice, noPrice)
		if !ok {
			fmt.Printf("  %s: combined %.4f, no edge\n",
				truncate(pair.Question, 50), yesPrice+noPrice)
			continue
		}

		found++
		fmt.Printf("  🎯 %s\n", opp)
	}

	fmt.Printf("\n%d opportunities found in %d pairs\n", found, len(pairs))

	return nil
}
