package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jvaldes/pairbot/internal/ledger"
	"github.com/jvaldes/pairbot/internal/report"
	"github.com/jvaldes/pairbot/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var sendReportCmd = &cobra.Command{
	Use:   "send-report",
	Short: "Send a test report to the configured Discord webhook",
	Long: `Sends a daily report with sample numbers to DISCORD_WEBHOOK_URL to
verify the webhook configuration and the embed formatting.`,
	RunE: runSendReport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(sendReportCmd)
	sendReportCmd.Flags().Float64P("profit", "p", 1.23, "Daily profit to show in the test report")
}

func runSendReport(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cfg.DiscordWebhookURL == "" {
		return fmt.Errorf("DISCORD_WEBHOOK_URL is not set")
	}

	logger, err := config.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	profit, _ := cmd.Flags().GetFloat64("profit")

	snap := ledger.Snapshot{
		Date:             time.Now().UTC().Format("2006-01-02"),
		Scans:            1234,
		Opportunities:    5,
		SuccessfulTrades: 3,
		DailyProfit:      profit,
		TotalProfit:      profit,
		Invested:         100.0,
	}

	reporter := report.NewDiscordReporter(cfg.DiscordWebhookURL, logger)

	fmt.Println("Sending test report...")

	err = reporter.SendDailyReport(ctx, snap)
	if err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	fmt.Println("Report delivered.")

	return nil
}
