package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jvaldes/pairbot/internal/catalog"
	"github.com/jvaldes/pairbot/internal/clob"
	"github.com/jvaldes/pairbot/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listMarketsCmd = &cobra.Command{
	Use:   "list-markets",
	Short: "List markets the catalog would admit",
	Long: `Fetches the simplified-markets listing from the CLOB API, runs it
through the configured keyword filter, and prints the resulting market
pairs for debugging.`,
	RunE: runListMarkets,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(listMarketsCmd)
	listMarketsCmd.Flags().BoolP("all", "a", false, "Skip the keyword filter and show every binary market")
	listMarketsCmd.Flags().IntP("limit", "l", 50, "Maximum number of pairs to print")
}

func runListMarkets(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
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

	all, _ := cmd.Flags().GetBool("all")
	limit, _ := cmd.Flags().GetInt("limit")

	client, err := clob.NewClient(&clob.ClientConfig{
		Host:   cfg.ClobHost,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("create clob client: %w", err)
	}

	keywords := cfg.MarketKeywords
	if all {
		keywords = nil
	}

	cat := catalog.New(&catalog.Config{
		Lister:             client,
		Keywords:           keywords,
		InvertOutcomeOrder: cfg.InvertOutcomeOrder,
		Logger:             logger,
	})

	fmt.Println("Fetching markets from the CLOB API...")

	err = cat.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}

	pairs := cat.Pairs()
	if len(pairs) == 0 {
		fmt.Println("No matching markets found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "QUESTION\tYES TOKEN\tNO TOKEN")
	for i, pair := range pairs {
		if i >= limit {
			break
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			truncate(pair.Question, 60),
			truncate(pair.YesTokenID, 16),
			truncate(pair.NoTokenID, 16))
	}
	w.Flush()

	fmt.Printf("\n%d matching pairs (showing up to %d)\n", len(pairs), limit)

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
