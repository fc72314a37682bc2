// Package scanner runs the sequential scan loop that drives the bot: one
// tick fetches prices for every cataloged pair, hands detections to the
// execution engine, and keeps the ledger and daily reporting current.
package scanner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jvaldes/pairbot/internal/arbitrage"
	"github.com/jvaldes/pairbot/internal/catalog"
	"github.com/jvaldes/pairbot/internal/execution"
	"github.com/jvaldes/pairbot/internal/ledger"
	"github.com/jvaldes/pairbot/internal/report"
	"github.com/jvaldes/pairbot/internal/storage"
	"github.com/jvaldes/pairbot/pkg/types"
)

// PriceSource supplies the current best buy price for a token.
type PriceSource interface {
	BuyPrice(ctx context.Context, tokenID string) (float64, error)
}

// Executor runs one execution attempt for a detected opportunity.
type Executor interface {
	Execute(ctx context.Context, opp *arbitrage.Opportunity) *execution.Result
}

// Driver owns the scan loop. Everything it does is strictly sequential:
// one tick at a time, one pair at a time, one leg at a time further down.
// Cancellation is only honored between ticks so a tick that has started
// always observes a consistent world.
type Driver struct {
	catalog     *catalog.Catalog
	prices      PriceSource
	detector    *arbitrage.Detector
	engine      Executor
	ledger      *ledger.Ledger
	store       storage.Storage
	reporter    report.Reporter
	interval    time.Duration
	refreshEvry int64
	cooldown    time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// Config holds driver configuration.
type Config struct {
	Catalog  *catalog.Catalog
	Prices   PriceSource
	Detector *arbitrage.Detector
	Engine   Executor
	Ledger   *ledger.Ledger
	Storage  storage.Storage
	Reporter report.Reporter
	// Interval is the pause between ticks.
	Interval time.Duration
	// RefreshEveryScans re-runs catalog discovery once per this many scans.
	RefreshEveryScans int64
	// Cooldown is the pause after a faulted tick before the next attempt.
	Cooldown time.Duration
	Logger   *zap.Logger
}

// New creates a scan driver.
func New(cfg *Config) *Driver {
	return &Driver{
		catalog:     cfg.Catalog,
		prices:      cfg.Prices,
		detector:    cfg.Detector,
		engine:      cfg.Engine,
		ledger:      cfg.Ledger,
		store:       cfg.Storage,
		reporter:    cfg.Reporter,
		interval:    cfg.Interval,
		refreshEvry: cfg.RefreshEveryScans,
		cooldown:    cfg.Cooldown,
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

// Run executes the scan loop until the context is cancelled. A faulted
// tick never stops the loop: the fault is logged, the driver cools down
// and tries again. On shutdown a final report for the in-progress day is
// sent best-effort.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("scanner-starting",
		zap.Duration("interval", d.interval),
		zap.Int64("refresh-every-scans", d.refreshEvry))

	if err := d.catalog.Refresh(ctx); err != nil {
		d.logger.Error("initial-catalog-refresh-failed", zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return d.shutdown()
		default:
		}

		if err := d.tick(ctx); err != nil {
			if ctx.Err() != nil {
				return d.shutdown()
			}

			TickFaultsTotal.Inc()
			d.logger.Error("tick-faulted",
				zap.Duration("cooldown", d.cooldown),
				zap.Error(err))

			if !d.sleep(ctx, d.cooldown) {
				return d.shutdown()
			}
			continue
		}

		if !d.sleep(ctx, d.interval) {
			return d.shutdown()
		}
	}
}

// tick runs one full scan pass. Any error aborts the remainder of the
// pass; the caller decides what happens next.
func (d *Driver) tick(ctx context.Context) error {
	TicksTotal.Inc()

	// Day boundary first: the closing day's numbers must go out before
	// any of this tick's activity lands on the new day.
	if closing, rolled := d.ledger.Rollover(d.now().UTC()); rolled {
		d.sendReport(ctx, closing)
	}

	scans := d.ledger.RecordScan()

	// Snapshot before scanning; a refresh this tick only affects the next.
	pairs := d.catalog.Pairs()
	PairsScanned.Set(float64(len(pairs)))

	d.logger.Debug("tick-started",
		zap.Int64("scan", scans),
		zap.Int("pairs", len(pairs)))

	for i := range pairs {
		if err := d.scanPair(ctx, &pairs[i]); err != nil {
			return err
		}
	}

	if d.refreshEvry > 0 && scans%d.refreshEvry == 0 {
		if err := d.catalog.Refresh(ctx); err != nil {
			// Keep scanning against the previous catalog.
			d.logger.Warn("catalog-refresh-failed", zap.Error(err))
		}
	}

	return nil
}

// scanPair fetches both legs' prices for one pair and runs detection and,
// when warranted, execution.
func (d *Driver) scanPair(ctx context.Context, pair *types.MarketPair) error {
	yesPrice, err := d.prices.BuyPrice(ctx, pair.YesTokenID)
	if err != nil {
		return err
	}

	noPrice, err := d.prices.BuyPrice(ctx, pair.NoTokenID)
	if err != nil {
		return err
	}

	opp, found := d.detector.Check(*pair, yesPrice, noPrice)
	if !found {
		return nil
	}

	d.ledger.RecordOpportunity()

	if err := d.store.StoreOpportunity(ctx, opp); err != nil {
		// Persistence is advisory; the trade matters more.
		d.logger.Warn("store-opportunity-failed",
			zap.String("opportunity-id", opp.ID),
			zap.Error(err))
	}

	result := d.engine.Execute(ctx, opp)

	if err := d.store.StoreTrade(ctx, opp, result); err != nil {
		d.logger.Warn("store-trade-failed",
			zap.String("opportunity-id", opp.ID),
			zap.Error(err))
	}

	return nil
}

// sendReport delivers a daily summary. Reporting is never allowed to take
// the bot down.
func (d *Driver) sendReport(ctx context.Context, snap ledger.Snapshot) {
	if err := d.reporter.SendDailyReport(ctx, snap); err != nil {
		d.logger.Error("daily-report-failed",
			zap.String("date", snap.Date),
			zap.Error(err))
	}
}

// shutdown emits the final report for the unfinished day and returns.
func (d *Driver) shutdown() error {
	d.logger.Info("scanner-stopping")

	// The loop context is already cancelled; give the final report its
	// own short deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	d.sendReport(ctx, d.ledger.Snapshot())

	d.logger.Info("scanner-stopped")
	return nil
}

// sleep waits for the duration and reports false when cancelled.
func (d *Driver) sleep(ctx context.Context, duration time.Duration) bool {
	if duration <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
