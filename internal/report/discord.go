package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/internal/ledger"
)

// Embed colors: green for a profitable day, red otherwise.
const (
	colorGreen = 0x00ff00
	colorRed   = 0xff0000
)

// DiscordReporter delivers daily summaries via a Discord webhook.
type DiscordReporter struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDiscordReporter creates a DiscordReporter for the given webhook URL.
func NewDiscordReporter(webhookURL string, logger *zap.Logger) *DiscordReporter {
	return &DiscordReporter{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Color       int            `json:"color"`
	Fields      []discordField `json:"fields"`
	Timestamp   string         `json:"timestamp"`
}

type discordPayload struct {
	Username string         `json:"username"`
	Embeds   []discordEmbed `json:"embeds"`
}

// SendDailyReport posts the ledger summary as a Discord embed. Discord
// returns 204 No Content on success.
func (d *DiscordReporter) SendDailyReport(ctx context.Context, snap ledger.Snapshot) error {
	color := colorGreen
	if snap.DailyProfit < 0 {
		color = colorRed
	}

	payload := discordPayload{
		Username: "Arb Bot",
		Embeds: []discordEmbed{
			{
				Title:       "Daily Arbitrage Report",
				Description: fmt.Sprintf("Report for %s", snap.Date),
				Color:       color,
				Fields: []discordField{
					{Name: "Daily Profit", Value: fmt.Sprintf("$%.2f", snap.DailyProfit), Inline: true},
					{Name: "Total Profit", Value: fmt.Sprintf("$%.2f", snap.TotalProfit), Inline: true},
					{Name: "Opportunities (Day)", Value: fmt.Sprintf("%d", snap.Opportunities), Inline: true},
					{Name: "Successful Trades (Day)", Value: fmt.Sprintf("%d", snap.SuccessfulTrades), Inline: true},
					{Name: "Total Invested", Value: fmt.Sprintf("$%.2f", snap.Invested), Inline: true},
				},
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal report payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		ReportsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("send report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ReportsTotal.WithLabelValues("rejected").Inc()
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	ReportsTotal.WithLabelValues("delivered").Inc()

	d.logger.Info("daily-report-sent",
		zap.String("date", snap.Date),
		zap.Float64("daily-profit", snap.DailyProfit),
		zap.Int64("trades", snap.SuccessfulTrades))

	return nil
}
