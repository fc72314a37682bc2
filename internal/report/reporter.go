// Package report delivers daily ledger summaries to an external
// notification channel. Delivery is best-effort: a failed report is logged
// by the caller and never retried within the same rollover.
package report

import (
	"context"

	"github.com/jvaldes/pairbot/internal/ledger"
)

// Reporter sends a ledger summary to an external channel.
type Reporter interface {
	SendDailyReport(ctx context.Context, snap ledger.Snapshot) error
}

// NopReporter discards reports. Used when no webhook is configured.
type NopReporter struct{}

// SendDailyReport does nothing.
func (NopReporter) SendDailyReport(ctx context.Context, snap ledger.Snapshot) error {
	return nil
}
